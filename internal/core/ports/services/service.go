package services

import (
	"context"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
)

// IngestionService turns a source document into the stored loan set.
type IngestionService interface {
	Ingest(ctx context.Context, sourcePath string) (*domain.IngestionResult, error)
}

// ReportingService derives summaries and reports from the stored loan set.
type ReportingService interface {
	// Summary returns the grand total and the top broker by single largest loan.
	Summary(ctx context.Context) (domain.LoanTotal, *domain.BrokerMaxLoan, error)

	// BuildReports aggregates every stored loan into the five reports.
	BuildReports(ctx context.Context) (domain.ReportSet, error)

	// PublishReports writes each report to every sink. A failed write does not
	// stop the others; all failures are returned joined. It returns the
	// "<name>.<format>" outputs that were written.
	PublishReports(ctx context.Context, set domain.ReportSet, sinks []ReportSink) ([]string, error)
}

// PipelineService runs one document through extraction, storage and reporting.
type PipelineService interface {
	Run(ctx context.Context, sourcePath string) (*domain.RunSummary, error)
}

// ServiceContainer holds all the services.
type ServiceContainer struct {
	Ingestion IngestionService
	Reporting ReportingService
	Pipeline  PipelineService
}
