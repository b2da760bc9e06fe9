package reportsink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
)

// FormatCSV is the format name of CSVSink.
const FormatCSV = "csv"

// CSVSink writes each report to <Dir>/<name>.csv with a header row.
type CSVSink struct {
	Dir string
}

// NewCSVSink creates a CSV sink writing into dir.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{Dir: dir}
}

// Ensure implementation matches interface
var _ portssvc.ReportSink = (*CSVSink)(nil)

// Format returns "csv".
func (s *CSVSink) Format() string { return FormatCSV }

// WriteReport writes table, replacing any previous file of the same name.
func (s *CSVSink) WriteReport(ctx context.Context, table domain.ReportTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomic(s.Dir, table.Name+"."+FormatCSV, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(table.Headers); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", table.Name, err)
		}
		if err := cw.WriteAll(table.Rows); err != nil {
			return fmt.Errorf("failed to write rows of %s: %w", table.Name, err)
		}
		return nil
	})
}
