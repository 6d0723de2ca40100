package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/nxtrace/NShor/shor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func found(n, p, q int64, stage shor.Stage, attempts int) shor.Outcome {
	return shor.Outcome{
		N: big.NewInt(n),
		Result: &shor.Result{
			N:        big.NewInt(n),
			Factors:  &shor.Pair{P: big.NewInt(p), Q: big.NewInt(q)},
			Stage:    stage,
			Attempts: make([]shor.Attempt, attempts),
		},
	}
}

func TestOutcomePrinterFound(t *testing.T) {
	var buf bytes.Buffer
	OutcomePrinter(&buf, found(15, 3, 5, shor.StagePeriod, 1))
	assert.Equal(t, "\nFactoring 15\nFactors: [3, 5]\nVerification: 3 * 5 = 15\n", buf.String())
}

func TestOutcomePrinterNotFound(t *testing.T) {
	var buf bytes.Buffer
	o := shor.Outcome{N: big.NewInt(13), Result: &shor.Result{N: big.NewInt(13), Stage: shor.StageExhausted}}
	OutcomePrinter(&buf, o)
	assert.Equal(t, "\nFactoring 13\nCould not factor 13\n", buf.String())
}

func TestOutcomePrinterError(t *testing.T) {
	var buf bytes.Buffer
	o := shor.Outcome{N: big.NewInt(13), Err: errors.New("backend down")}
	OutcomePrinter(&buf, o)
	assert.Equal(t, "\nFactoring 13\nError factoring 13: backend down\n", buf.String())
}

func TestAttemptLine(t *testing.T) {
	att := shor.Attempt{
		N:     big.NewInt(15),
		Index: 2,
		Base:  big.NewInt(7),
		Estimates: []shor.Estimate{
			{Source: shor.Simulated, Outcome: big.NewInt(0)},
			{Source: shor.Classical, Period: big.NewInt(4)},
		},
		Outcome: shor.OutcomeFactored,
	}
	line := AttemptLine(att)
	assert.True(t, strings.HasPrefix(line, "#2   15 a=7"))
	assert.Contains(t, line, "simulated:y=0,r=? classical:r=4")
	assert.True(t, strings.HasSuffix(line, "factored"))

	short := AttemptLine(shor.Attempt{N: big.NewInt(15), Index: 1, Base: big.NewInt(6), Shortcut: true, Outcome: shor.OutcomeGCD})
	assert.Contains(t, short, "gcd shortcut")
}

func TestRealtimePrinter(t *testing.T) {
	var buf bytes.Buffer
	hook := RealtimePrinter(&buf)
	hook(shor.Attempt{N: big.NewInt(21), Index: 1, Base: big.NewInt(2), Outcome: shor.OutcomeUnknown})
	hook(shor.Attempt{N: big.NewInt(21), Index: 2, Base: big.NewInt(3), Shortcut: true, Outcome: shor.OutcomeGCD})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "#2   21 a=3"))
}

func TestBatchTablePrinter(t *testing.T) {
	var buf bytes.Buffer
	BatchTablePrinter(&buf, []shor.Outcome{
		found(15, 3, 5, shor.StagePeriod, 2),
		{N: big.NewInt(13), Result: &shor.Result{N: big.NewInt(13), Stage: shor.StageExhausted}},
		{N: big.NewInt(91), Err: errors.New("backend down")},
	})
	out := buf.String()
	assert.Contains(t, out, "Factors")
	assert.Contains(t, out, "3 x 5")
	assert.Contains(t, out, "exhausted")
	assert.Contains(t, out, "backend down")
}

func TestJSONPrinter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONPrinter(&buf, []shor.Outcome{found(21, 3, 7, shor.StageGCD, 1)}))
	var reports []shor.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "21", reports[0].N)
	assert.Equal(t, []string{"3", "7"}, reports[0].Factors)
	assert.Equal(t, shor.StageGCD, reports[0].Stage)
	assert.Equal(t, 1, reports[0].Attempts)
}

func TestOutcomePrinterBadInput(t *testing.T) {
	var buf bytes.Buffer
	Outcomes(&buf, []shor.Outcome{{Input: " 12x ", Err: errors.New("invalid input")}})
	assert.Equal(t, "\nFactoring 12x\nError factoring 12x: invalid input\n", buf.String())
}

func TestPrintFactorNav(t *testing.T) {
	var buf bytes.Buffer
	PrintFactorNav(&buf, 5, shor.DefaultOrder, 10, 256)
	assert.Equal(t, "Period oracles: simulated -> classical\nfactoring 5 numbers, 10 attempts max, 256 shots per estimate\n", buf.String())
}
