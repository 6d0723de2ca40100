package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nxtrace/NShor/shor"
	"github.com/rodaine/table"
)

type rowData struct {
	N        string
	Factors  string
	Stage    string
	Attempts string
	Note     string
}

func BatchTablePrinter(w io.Writer, outcomes []shor.Outcome) {
	tbl := New(w)
	for _, o := range outcomes {
		data := tableDataGenerator(o)
		tbl.AddRow(data.N, data.Factors, data.Stage, data.Attempts, data.Note)
	}
	tbl.Print()
}

func New(w io.Writer) table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("N", "Factors", "Stage", "Attempts", "Note")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt).WithWriter(w)
	return tbl
}

func tableDataGenerator(o shor.Outcome) *rowData {
	r := shor.NewReport(o)
	row := &rowData{
		N:        r.N,
		Factors:  "-",
		Stage:    string(r.Stage),
		Attempts: fmt.Sprint(r.Attempts),
	}
	if len(r.Factors) == 2 {
		row.Factors = strings.Join(r.Factors, " x ")
	}
	if r.Error != "" {
		row.Stage = "error"
		row.Note = r.Error
	}
	return row
}

// JSONPrinter writes all outcomes as one JSON array of reports.
func JSONPrinter(w io.Writer, outcomes []shor.Outcome) error {
	reports := make([]shor.Report, 0, len(outcomes))
	for _, o := range outcomes {
		reports = append(reports, shor.NewReport(o))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
