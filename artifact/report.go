package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"attrib/reporting"
)

// ReportHeader is the final report's column set: the channel_reporting
// schema plus the two derived metrics.
var ReportHeader = []string{"channel_name", "date", "cost", "ihc", "ihc_revenue", "CPO", "ROAS"}

// WriteReport persists the finished channel report to path. This is
// the pipeline's terminal artifact.
func WriteReport(path string, rows []reporting.ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ReportHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.ChannelName,
			r.Date,
			num(r.Cost),
			num(r.IHC),
			num(r.IHCRevenue),
			num(r.CPO),
			num(r.ROAS),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return f.Close()
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
