package services

import (
	"context"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
)

// ReportSink writes a rendered report to durable output.
type ReportSink interface {
	// Format names the output format, e.g. "csv".
	Format() string
	// WriteReport writes one table, replacing any earlier output of the same name.
	WriteReport(ctx context.Context, table domain.ReportTable) error
}
