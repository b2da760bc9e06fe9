package reportsink

import (
	"context"
	"fmt"
	"io"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// FormatXLSX is the format name of XLSXSink.
const FormatXLSX = "xlsx"

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// numericHeaders are the columns written as numbers rather than text.
var numericHeaders = map[string]bool{
	"Total Loan Amount": true,
	"loan_count":        true,
}

// XLSXSink writes each report to <Dir>/<name>.xlsx as a single-sheet workbook.
type XLSXSink struct {
	Dir string
}

// NewXLSXSink creates an XLSX sink writing into dir.
func NewXLSXSink(dir string) *XLSXSink {
	return &XLSXSink{Dir: dir}
}

// Ensure implementation matches interface
var _ portssvc.ReportSink = (*XLSXSink)(nil)

// Format returns "xlsx".
func (s *XLSXSink) Format() string { return FormatXLSX }

// SheetName returns the worksheet name used for a report.
func SheetName(report string) string {
	if len(report) > maxSheetName {
		return report[:maxSheetName]
	}
	return report
}

// WriteReport writes table, replacing any previous workbook of the same name.
func (s *XLSXSink) WriteReport(ctx context.Context, table domain.ReportTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(table.Name)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, toCells(table.Headers, nil)); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := setRow(f, sheet, i+2, toCells(row, table.Headers)); err != nil {
			return err
		}
	}

	return writeFileAtomic(s.Dir, table.Name+"."+FormatXLSX, func(w io.Writer) error {
		if err := f.Write(w); err != nil {
			return fmt.Errorf("failed to write workbook %s: %w", table.Name, err)
		}
		return nil
	})
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

// toCells converts a row to cell values, turning numeric columns into float64.
func toCells(row []string, headers []string) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
		if i >= len(headers) || !numericHeaders[headers[i]] {
			continue
		}
		if d, err := decimal.NewFromString(v); err == nil {
			cells[i] = d.InexactFloat64()
		}
	}
	return cells
}
