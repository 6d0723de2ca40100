package printer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/nxtrace/NShor/shor"
)

const (
	baseColumn     = 14
	estimateColumn = 36
)

var outcomeColor = map[shor.AttemptOutcome]*color.Color{
	shor.OutcomeGCD:      color.New(color.FgGreen),
	shor.OutcomeFactored: color.New(color.FgGreen, color.Bold),
	shor.OutcomeUnknown:  color.New(color.FgHiBlack),
	shor.OutcomeOdd:      color.New(color.FgYellow),
	shor.OutcomeRejected: color.New(color.FgYellow),
}

// AttemptLine formats one attempt as "#i  N  a=base  estimates  outcome".
func AttemptLine(att shor.Attempt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%-3d %s ", att.Index, att.N)
	b.WriteString(runewidth.FillRight("a="+att.Base.String(), baseColumn))

	est := make([]string, 0, len(att.Estimates))
	for _, e := range att.Estimates {
		switch {
		case e.Known():
			est = append(est, fmt.Sprintf("%s:r=%s", e.Source, e.Period))
		case e.Outcome != nil:
			est = append(est, fmt.Sprintf("%s:y=%s,r=?", e.Source, e.Outcome))
		default:
			est = append(est, fmt.Sprintf("%s:r=?", e.Source))
		}
	}
	if att.Shortcut {
		est = append(est, "gcd shortcut")
	}
	b.WriteString(runewidth.FillRight(strings.Join(est, " "), estimateColumn))

	c, ok := outcomeColor[att.Outcome]
	if !ok {
		c = color.New(color.Reset)
	}
	b.WriteString(c.Sprint(att.Outcome))
	return b.String()
}

// RealtimePrinter returns an OnAttempt hook writing one line per attempt.
// Lines from concurrent requests are serialised.
func RealtimePrinter(w io.Writer) func(att shor.Attempt) {
	return func(att shor.Attempt) {
		realtimeMu.Lock()
		defer realtimeMu.Unlock()
		fmt.Fprintln(w, AttemptLine(att))
	}
}

var realtimeMu sync.Mutex
