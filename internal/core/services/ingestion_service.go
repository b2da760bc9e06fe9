package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_report_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
	"github.com/SscSPs/loan_report_app/internal/utils/statement"
)

type ingestionService struct {
	BaseService
	extractor portssvc.TextExtractor
	loanRepo  portsrepo.LoanWriter
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(extractor portssvc.TextExtractor, repo portsrepo.LoanWriter) portssvc.IngestionService {
	return &ingestionService{
		extractor: extractor,
		loanRepo:  repo,
	}
}

// Ensure ingestionService implements the IngestionService interface
var _ portssvc.IngestionService = (*ingestionService)(nil)

// Ingest extracts the document text, parses and normalizes every loan row and
// replaces the stored loan set with the result. Nothing is written when
// extraction fails.
func (s *ingestionService) Ingest(ctx context.Context, sourcePath string) (*domain.IngestionResult, error) {
	text, err := s.extractor.ExtractText(ctx, sourcePath)
	if err != nil {
		s.LogError(ctx, err, "Failed to extract document text", slog.String("source", sourcePath))
		return nil, apperrors.NewStageError(apperrors.StageExtract, fmt.Sprintf("failed to extract %s", sourcePath), err)
	}

	result := &domain.IngestionResult{
		SourcePath:    sourcePath,
		CandidateRows: statement.CountCandidates(text),
		AbsentFields:  map[string]int{},
	}

	var loans []domain.LoanRecord
	for raw := range statement.ParseRecords(text) {
		loan, absent, err := statement.Normalize(raw)
		if err != nil {
			result.SkippedRows++
			s.LogDebug(ctx, "Skipping row with unusable settlement date",
				slog.String("app_id", raw.Get("app_id")),
				slog.String("error", err.Error()))
			continue
		}
		for _, field := range absent {
			result.AbsentFields[field]++
		}
		if len(absent) > 0 {
			s.LogDebug(ctx, "Row has unparseable numeric fields",
				slog.String("app_id", loan.AppID),
				slog.Any("fields", absent))
		}
		loans = append(loans, loan)
	}
	result.ParsedRows = len(loans)
	stats := statement.ScanStats{Candidates: result.CandidateRows, Matched: result.ParsedRows + result.SkippedRows}
	result.SkippedRows += stats.Skipped()

	stored, err := s.loanRepo.ReplaceLoans(ctx, loans)
	if err != nil {
		s.LogError(ctx, err, "Failed to replace stored loans", slog.Int("parsed_rows", result.ParsedRows))
		return nil, apperrors.NewStageError(apperrors.StageStore, "failed to replace stored loans", err)
	}
	result.StoredRows = stored
	result.Duplicates = result.ParsedRows - stored

	if result.SkippedRows > 0 {
		s.LogWarn(ctx, "Some statement rows did not match the loan row shape",
			slog.Int("skipped_rows", result.SkippedRows),
			slog.Int("candidate_rows", result.CandidateRows))
	}
	s.LogInfo(ctx, "Statement ingested",
		slog.String("source", sourcePath),
		slog.Int("parsed_rows", result.ParsedRows),
		slog.Int("stored_rows", result.StoredRows),
		slog.Int("duplicates", result.Duplicates),
		slog.Any("absent_fields", result.AbsentFields))
	return result, nil
}
