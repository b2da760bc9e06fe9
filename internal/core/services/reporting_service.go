package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_report_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
	"github.com/SscSPs/loan_report_app/internal/utils/reporting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	loanRepo portsrepo.LoanReader
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.LoanReader) portssvc.ReportingService {
	return &reportingService{
		loanRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Summary returns the grand total loan amount and the top broker by single largest loan
func (s *reportingService) Summary(ctx context.Context) (domain.LoanTotal, *domain.BrokerMaxLoan, error) {
	total, err := s.loanRepo.TotalLoanAmount(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve total loan amount")
		return domain.LoanTotal{}, nil, fmt.Errorf("failed to retrieve total loan amount: %w", err)
	}

	top, err := s.loanRepo.TopBrokerByMaxLoan(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve top broker")
		return domain.LoanTotal{}, nil, fmt.Errorf("failed to retrieve top broker: %w", err)
	}

	if total.AbsentCount > 0 {
		s.LogWarn(ctx, "Loans without a total loan amount were excluded from the total",
			slog.Int("absent_count", total.AbsentCount))
	}
	return total, top, nil
}

// BuildReports aggregates every stored loan into the five reports
func (s *reportingService) BuildReports(ctx context.Context) (domain.ReportSet, error) {
	loans, err := s.loanRepo.ListLoans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stored loans")
		return domain.ReportSet{}, fmt.Errorf("failed to list stored loans: %w", err)
	}

	set := reporting.BuildReportSet(loans)

	s.LogInfo(ctx, "Reports generated successfully",
		slog.Int("loan_count", len(loans)),
		slog.Int("report_count", len(set.Tables)))
	return set, nil
}

// PublishReports writes every report to every sink, isolating failures per report
func (s *reportingService) PublishReports(ctx context.Context, set domain.ReportSet, sinks []portssvc.ReportSink) ([]string, error) {
	var written []string
	var errs []error

	for _, table := range set.Tables {
		for _, sink := range sinks {
			output := table.Name + "." + sink.Format()
			if err := ctx.Err(); err != nil {
				return written, apperrors.NewStageError(apperrors.StageReport,
					fmt.Sprintf("report publishing interrupted after %d writes", len(written)), errors.Join(append(errs, err)...))
			}
			if err := sink.WriteReport(ctx, table); err != nil {
				s.LogError(ctx, err, "Failed to write report", slog.String("report", output))
				errs = append(errs, fmt.Errorf("%w: %s: %w", apperrors.ErrOutputWrite, output, err))
				continue
			}
			s.LogDebug(ctx, "Report written", slog.String("report", output), slog.Int("rows", len(table.Rows)))
			written = append(written, output)
		}
	}

	if len(errs) > 0 {
		return written, apperrors.NewStageError(apperrors.StageReport,
			fmt.Sprintf("%d of %d report writes failed", len(errs), len(errs)+len(written)), errors.Join(errs...))
	}
	return written, nil
}
