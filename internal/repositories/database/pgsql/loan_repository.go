package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_report_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_report_app/internal/models"
	"github.com/SscSPs/loan_report_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLoanRepository implements the loan store on PostgreSQL.
type PgxLoanRepository struct {
	BaseRepository
}

// NewPgxLoanRepository creates a new loan repository backed by pool.
func NewPgxLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

const insertLoanQuery = `
	INSERT INTO loan_info (app_id, xref, date, broker, sub_broker, borrower_name, description,
		total_loan_amount, comm_rate, upfront, upfront_incl_gst)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (xref, total_loan_amount) DO NOTHING;
`

// ReplaceLoans truncates loan_info and inserts loans in one transaction.
func (r *PgxLoanRepository) ReplaceLoans(ctx context.Context, loans []domain.LoanRecord) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx) // no-op after commit
	}()

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE loan_info;`); err != nil {
		return 0, fmt.Errorf("%w: failed to clear loan_info: %w", apperrors.ErrStorage, err)
	}

	batch := &pgx.Batch{}
	for _, loan := range loans {
		m := mapping.ToModelLoanInfo(loan)
		batch.Queue(insertLoanQuery,
			m.AppID,
			m.Xref,
			m.Date,
			m.Broker,
			m.SubBroker,
			m.BorrowerName,
			m.Description,
			m.TotalLoanAmount,
			m.CommRate,
			m.Upfront,
			m.UpfrontInclGST,
		)
	}

	inserted := 0
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return 0, fmt.Errorf("%w: failed to insert loan %d: %w", apperrors.ErrStorage, i, err)
			}
			inserted += int(tag.RowsAffected())
		}
		// Important: Close the batch results before using tx again
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("%w: failed to execute loan batch: %w", apperrors.ErrStorage, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// TotalLoanAmount sums every present total loan amount.
func (r *PgxLoanRepository) TotalLoanAmount(ctx context.Context) (domain.LoanTotal, error) {
	query := `
		SELECT
			SUM(total_loan_amount),
			COUNT(*),
			COUNT(*) - COUNT(total_loan_amount)
		FROM loan_info
	`

	var total domain.LoanTotal
	err := r.Pool.QueryRow(ctx, query).Scan(&total.Total, &total.RecordCount, &total.AbsentCount)
	if err != nil {
		return domain.LoanTotal{}, fmt.Errorf("%w: error querying total loan amount: %w", apperrors.ErrStorage, err)
	}
	return total, nil
}

// TopBrokerByMaxLoan returns the broker holding the single largest loan, ties by name.
func (r *PgxLoanRepository) TopBrokerByMaxLoan(ctx context.Context) (*domain.BrokerMaxLoan, error) {
	query := `
		SELECT broker, MAX(total_loan_amount) AS highest
		FROM loan_info
		WHERE total_loan_amount IS NOT NULL
		GROUP BY broker
		ORDER BY highest DESC, broker ASC
		LIMIT 1
	`

	var top domain.BrokerMaxLoan
	err := r.Pool.QueryRow(ctx, query).Scan(&top.Broker, &top.HighestLoan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error querying top broker: %w", apperrors.ErrStorage, err)
	}
	top.HighestLoan = top.HighestLoan.Round(2)
	return &top, nil
}

// ListLoans returns every stored loan ordered by date, app id, xref and amount.
func (r *PgxLoanRepository) ListLoans(ctx context.Context) ([]domain.LoanRecord, error) {
	query := `
		SELECT app_id, xref, date, broker, sub_broker, borrower_name, description,
		       total_loan_amount, comm_rate, upfront, upfront_incl_gst
		FROM loan_info
		ORDER BY date, app_id, xref, total_loan_amount
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying loans: %w", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var result []models.LoanInfo
	for rows.Next() {
		var m models.LoanInfo
		if err := rows.Scan(
			&m.AppID,
			&m.Xref,
			&m.Date,
			&m.Broker,
			&m.SubBroker,
			&m.BorrowerName,
			&m.Description,
			&m.TotalLoanAmount,
			&m.CommRate,
			&m.Upfront,
			&m.UpfrontInclGST,
		); err != nil {
			return nil, fmt.Errorf("%w: error scanning loan row: %w", apperrors.ErrStorage, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating loan rows: %w", apperrors.ErrStorage, err)
	}

	return mapping.ToDomainLoanRecordSlice(result), nil
}
