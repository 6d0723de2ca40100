package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nxtrace/NShor/config"
	"github.com/nxtrace/NShor/shor"
)

var version = config.Version
var buildDate = config.BuildDate
var commitID = config.CommitID

func Version() {
	fmt.Fprintf(color.Output, "%s %s %s %s\n",
		color.New(color.FgWhite, color.Bold).Sprintf("%s", "NShor"),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", version),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", buildDate),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", commitID),
	)
}

func CopyRight() {
	fmt.Fprintf(color.Output, "\n%s\n%s %s\n",
		color.New(color.FgCyan, color.Bold).Sprintf("%s", "NShor"),
		color.New(color.FgWhite, color.Bold).Sprintf("%s", "Shor-style factoring with pluggable period oracles"),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", "github.com/nxtrace/NShor"),
	)
}

// PrintFactorNav prints the run header: target count, oracle order and budget.
func PrintFactorNav(w io.Writer, targets int, order []shor.Source, attempts int, shots int) {
	names := make([]string, 0, len(order))
	for _, s := range order {
		names = append(names, string(s))
	}
	fmt.Fprintf(w, "Period oracles: %s\n", strings.Join(names, " -> "))
	fmt.Fprintf(w, "factoring %d numbers, %d attempts max, %d shots per estimate\n", targets, attempts, shots)
}
