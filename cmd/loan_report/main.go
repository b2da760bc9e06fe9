package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/loan_report_app/internal/adapters/extraction"
	"github.com/SscSPs/loan_report_app/internal/adapters/reportsink"
	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_report_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
	"github.com/SscSPs/loan_report_app/internal/core/services"
	"github.com/SscSPs/loan_report_app/internal/platform/logging"
	"github.com/SscSPs/loan_report_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/loan_report_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/loan_report_app/internal/utils/reporting"
	"github.com/SscSPs/loan_report_app/pkg/config"
	"github.com/SscSPs/loan_report_app/pkg/database"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	// Bootstrap logger until the configured level is known
	logger := slog.New(slog.NewJSONHandler(stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		return apperrors.NewStageError(apperrors.StageConfig, "failed to load config", err)
	}

	logger, err = logging.New(stderr, cfg.LogLevel)
	if err != nil {
		slog.Error("Failed to build logger", slog.String("error", err.Error()))
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, runID := logging.WithRunLogger(ctx, logger)
	logger = logging.FromContext(ctx)

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open loan store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		return apperrors.NewStageError(apperrors.StageStore, "failed to open loan store", err)
	}
	defer closeStore()

	sinks, err := buildSinks(cfg.OutputDir, cfg.ReportFormats)
	if err != nil {
		logger.Error("Failed to configure report sinks", slog.String("error", err.Error()))
		return apperrors.NewStageError(apperrors.StageConfig, "failed to configure report sinks", err)
	}

	container := services.NewServiceContainer(extraction.NewFileExtractor(), repo, sinks)

	logger.Info("Run starting",
		slog.String("source", cfg.SourceDocument),
		slog.String("store", cfg.StoreDriver),
		slog.String("output_dir", cfg.OutputDir),
		slog.Any("formats", cfg.ReportFormats))

	summary, err := container.Pipeline.Run(ctx, cfg.SourceDocument)
	if summary != nil {
		printSummary(stdout, summary)
	}
	if err != nil {
		stage, _ := apperrors.StageOf(err)
		logger.Error("Run failed", slog.String("stage", string(stage)), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Run finished", slog.String("run_id", runID), slog.Int("reports_written", len(summary.ReportsWritten)))
	return nil
}

// openStore opens the configured loan store and makes sure loan_info exists.
func openStore(ctx context.Context, cfg *config.Config) (portsrepo.LoanRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		applied, err := database.MigratePostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
		}
		if applied {
			slog.InfoContext(ctx, "Database migrations applied successfully.")
		} else {
			slog.DebugContext(ctx, "No new migrations to apply.")
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
		}
		return pgsql.NewPgxLoanRepository(pool), func() { database.ClosePgxPool(pool) }, nil

	default:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
		}
		closeDB := func() {
			if err := database.CloseSQLiteDB(db); err != nil {
				slog.Warn("Error closing sqlite database", slog.String("error", err.Error()))
			}
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			closeDB()
			return nil, nil, err
		}
		return sqlite.NewLoanRepository(db), closeDB, nil
	}
}

// buildSinks returns one report sink per configured format, in order.
func buildSinks(dir string, formats []string) ([]portssvc.ReportSink, error) {
	sinks := make([]portssvc.ReportSink, 0, len(formats))
	for _, format := range formats {
		switch format {
		case reportsink.FormatCSV:
			sinks = append(sinks, reportsink.NewCSVSink(dir))
		case reportsink.FormatXLSX:
			sinks = append(sinks, reportsink.NewXLSXSink(dir))
		default:
			return nil, fmt.Errorf("%w: unknown report format %q", apperrors.ErrValidation, format)
		}
	}
	return sinks, nil
}

// printSummary writes the operator-facing totals of a run.
func printSummary(w io.Writer, s *domain.RunSummary) {
	total := "n/a"
	if s.Total.Total.Valid {
		total = reporting.FormatAmount(s.Total.Total.Decimal)
	}
	fmt.Fprintf(w, "Total loan amount: %s\n", total)

	if s.TopBroker == nil {
		fmt.Fprintln(w, "Top broker by single loan: n/a")
	} else {
		fmt.Fprintf(w, "Top broker by single loan: %s (%s)\n", s.TopBroker.Broker, reporting.FormatAmount(s.TopBroker.HighestLoan))
	}

	fmt.Fprintf(w, "Rows stored: %d (duplicates %d, skipped %d)\n",
		s.Ingestion.StoredRows, s.Ingestion.Duplicates, s.Ingestion.SkippedRows)
}
