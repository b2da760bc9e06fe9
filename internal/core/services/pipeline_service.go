package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
	"github.com/SscSPs/loan_report_app/internal/platform/logging"
)

type pipelineService struct {
	BaseService
	ingestion portssvc.IngestionService
	reporting portssvc.ReportingService
	sinks     []portssvc.ReportSink
}

// NewPipelineService creates the service that runs one document end to end.
func NewPipelineService(ingestion portssvc.IngestionService, reporting portssvc.ReportingService, sinks []portssvc.ReportSink) portssvc.PipelineService {
	return &pipelineService{
		ingestion: ingestion,
		reporting: reporting,
		sinks:     sinks,
	}
}

// Ensure pipelineService implements the PipelineService interface
var _ portssvc.PipelineService = (*pipelineService)(nil)

// Run ingests sourcePath, then reads the store back for the summary and the
// reports. Extraction and storage failures abort the run; report write
// failures are returned after every report has been attempted, alongside the
// summary.
func (s *pipelineService) Run(ctx context.Context, sourcePath string) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{RunID: logging.RunIDFromContext(ctx)}

	ingested, err := s.ingestion.Ingest(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	summary.Ingestion = *ingested

	summary.Total, summary.TopBroker, err = s.reporting.Summary(ctx)
	if err != nil {
		return nil, apperrors.NewStageError(apperrors.StageStore, "failed to query summary", err)
	}

	set, err := s.reporting.BuildReports(ctx)
	if err != nil {
		return nil, apperrors.NewStageError(apperrors.StageStore, "failed to read loans for reporting", err)
	}

	summary.ReportsWritten, err = s.reporting.PublishReports(ctx, set, s.sinks)
	if err != nil {
		return summary, err
	}

	s.LogInfo(ctx, "Pipeline run completed",
		slog.String("source", sourcePath),
		slog.Int("reports_written", len(summary.ReportsWritten)))
	return summary, nil
}
