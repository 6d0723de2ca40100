package printer

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/nxtrace/NShor/shor"
)

// OutcomePrinter writes the per-target block of the driver:
//
//	Factoring 15
//	Factors: [3, 5]
//	Verification: 3 * 5 = 15
func OutcomePrinter(w io.Writer, o shor.Outcome) {
	label := o.Label()
	fmt.Fprintf(w, "\nFactoring %s\n", label)
	if o.Err != nil {
		fmt.Fprintln(w, color.New(color.FgRed).Sprintf("Error factoring %s: %v", label, o.Err))
		return
	}
	if !o.Result.Found() {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprintf("Could not factor %s", label))
		return
	}
	p, q := o.Result.Factors.P, o.Result.Factors.Q
	fmt.Fprintf(w, "Factors: [%s, %s]\n", color.New(color.FgGreen, color.Bold).Sprint(p), color.New(color.FgGreen, color.Bold).Sprint(q))
	fmt.Fprintf(w, "Verification: %s * %s = %s\n", p, q, new(big.Int).Mul(p, q))
}

func Outcomes(w io.Writer, outcomes []shor.Outcome) {
	for _, o := range outcomes {
		OutcomePrinter(w, o)
	}
}
