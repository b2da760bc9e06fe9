// Package sqlite stores loans in a local SQLite file through gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_report_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_report_app/internal/models"
	"github.com/SscSPs/loan_report_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

// LoanRepository implements the loan store on SQLite.
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a loan repository over an open gorm connection.
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Ensure implementation matches interface
var _ portsrepo.LoanRepository = (*LoanRepository)(nil)

// EnsureSchema creates loan_info and its (xref, total_loan_amount) unique index if missing.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&models.LoanInfo{}); err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", apperrors.ErrStorage, models.LoanInfoTable, err)
	}
	return nil
}

// ReplaceLoans deletes every stored loan and inserts loans in one transaction.
// Conflicting (xref, total_loan_amount) pairs are ignored, so the first wins.
func (r *LoanRepository) ReplaceLoans(ctx context.Context, loans []domain.LoanRecord) (int, error) {
	rows := mapping.ToModelLoanInfoSlice(loans)
	inserted := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.LoanInfo{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", models.LoanInfoTable, err)
		}
		if len(rows) == 0 {
			return nil
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, insertBatchSize)
		if res.Error != nil {
			return fmt.Errorf("failed to insert loans: %w", res.Error)
		}
		inserted = int(res.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return inserted, nil
}

// TotalLoanAmount sums present amounts in integer cents to avoid float drift.
func (r *LoanRepository) TotalLoanAmount(ctx context.Context) (domain.LoanTotal, error) {
	var row struct {
		Cents       *int64
		RecordCount int
		AbsentCount int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			SUM(CAST(ROUND(total_loan_amount * 100) AS INTEGER)) AS cents,
			COUNT(*) AS record_count,
			COUNT(*) - COUNT(total_loan_amount) AS absent_count
		FROM loan_info
	`).Scan(&row).Error
	if err != nil {
		return domain.LoanTotal{}, fmt.Errorf("%w: failed to sum total loan amount: %w", apperrors.ErrStorage, err)
	}

	total := domain.LoanTotal{RecordCount: row.RecordCount, AbsentCount: row.AbsentCount}
	if row.Cents != nil {
		total.Total = decimal.NewNullDecimal(decimal.New(*row.Cents, -2))
	}
	return total, nil
}

// TopBrokerByMaxLoan returns the broker with the highest single amount, ties by name.
func (r *LoanRepository) TopBrokerByMaxLoan(ctx context.Context) (*domain.BrokerMaxLoan, error) {
	var rows []struct {
		Broker  string
		Highest float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT broker, MAX(total_loan_amount) AS highest
		FROM loan_info
		WHERE total_loan_amount IS NOT NULL
		GROUP BY broker
		ORDER BY highest DESC, broker ASC
		LIMIT 1
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find top broker: %w", apperrors.ErrStorage, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &domain.BrokerMaxLoan{
		Broker:      rows[0].Broker,
		HighestLoan: decimal.NewFromFloat(rows[0].Highest).Round(2),
	}, nil
}

// ListLoans returns every stored loan ordered by date, app id, xref and amount.
func (r *LoanRepository) ListLoans(ctx context.Context) ([]domain.LoanRecord, error) {
	var rows []models.LoanInfo
	err := r.db.WithContext(ctx).
		Order("date, app_id, xref, total_loan_amount").
		Find(&rows).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: failed to list loans: %w", apperrors.ErrStorage, err)
	}
	return mapping.ToDomainLoanRecordSlice(rows), nil
}
