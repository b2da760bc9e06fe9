package pgsql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	"github.com/SscSPs/loan_report_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LoanRepositoryTestSuite runs against the database named by PGSQL_TEST_URL.
type LoanRepositoryTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxLoanRepository
}

func TestLoanRepositoryTestSuite(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	suite.Run(t, &LoanRepositoryTestSuite{})
}

func (s *LoanRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()
	url := os.Getenv("PGSQL_TEST_URL")

	_, err := database.MigratePostgres(ctx, url)
	s.Require().NoError(err)

	s.pool, err = database.NewPgxPool(ctx, url)
	s.Require().NoError(err)
	s.repo = NewPgxLoanRepository(s.pool)
}

func (s *LoanRepositoryTestSuite) TearDownSuite() {
	if s.pool != nil {
		_, _ = s.pool.Exec(context.Background(), `TRUNCATE TABLE loan_info;`)
		database.ClosePgxPool(s.pool)
	}
}

func (s *LoanRepositoryTestSuite) loan(appID, xref, date, broker, amt string) domain.LoanRecord {
	d, err := time.Parse(domain.DateLayout, date)
	s.Require().NoError(err)
	l := domain.LoanRecord{
		AppID:          appID,
		Xref:           xref,
		SettlementDate: d,
		Broker:         broker,
		BorrowerName:   "SMITH JOHN",
		Description:    "Loan Settlement",
	}
	if amt != "" {
		l.TotalLoanAmount = decimal.NewNullDecimal(decimal.RequireFromString(amt))
	}
	return l
}

func (s *LoanRepositoryTestSuite) TestReplaceLoans_DeduplicatesAndReplaces() {
	ctx := context.Background()

	stored, err := s.repo.ReplaceLoans(ctx, []domain.LoanRecord{
		s.loan("00000001", "100000001", "2024-03-01", "ACME", "10.00"),
		s.loan("00000009", "100000001", "2024-03-02", "OTHER", "10.00"),
		s.loan("00000002", "100000002", "2024-03-01", "BETA", ""),
		s.loan("00000002", "100000002", "2024-03-01", "BETA", ""),
	})
	s.Require().NoError(err)
	s.Equal(3, stored)

	stored, err = s.repo.ReplaceLoans(ctx, []domain.LoanRecord{
		s.loan("00000003", "100000003", "2024-03-04", "ACME", "99.99"),
	})
	s.Require().NoError(err)
	s.Equal(1, stored)

	loans, err := s.repo.ListLoans(ctx)
	s.Require().NoError(err)
	s.Require().Len(loans, 1)
	s.Equal("00000003", loans[0].AppID)
	s.Equal("2024-03-04", loans[0].SettlementDate.Format(domain.DateLayout))
}

func (s *LoanRepositoryTestSuite) TestSummaryQueries() {
	ctx := context.Background()

	_, err := s.repo.ReplaceLoans(ctx, []domain.LoanRecord{
		s.loan("00000001", "100000001", "2024-03-01", "ZETA", "500.00"),
		s.loan("00000002", "100000002", "2024-03-01", "ACME", "500.00"),
		s.loan("00000003", "100000003", "2024-03-02", "BETA", "0.25"),
		s.loan("00000004", "100000004", "2024-03-02", "BETA", ""),
	})
	s.Require().NoError(err)

	total, err := s.repo.TotalLoanAmount(ctx)
	s.Require().NoError(err)
	s.True(total.Total.Valid)
	s.Equal("1000.25", total.Total.Decimal.StringFixed(2))
	s.Equal(4, total.RecordCount)
	s.Equal(1, total.AbsentCount)

	top, err := s.repo.TopBrokerByMaxLoan(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(top)
	s.Equal("ACME", top.Broker)
	s.Equal("500.00", top.HighestLoan.StringFixed(2))
}

func (s *LoanRepositoryTestSuite) TestEmptyStore() {
	ctx := context.Background()

	_, err := s.repo.ReplaceLoans(ctx, nil)
	s.Require().NoError(err)

	total, err := s.repo.TotalLoanAmount(ctx)
	s.Require().NoError(err)
	s.False(total.Total.Valid)

	top, err := s.repo.TopBrokerByMaxLoan(ctx)
	s.Require().NoError(err)
	s.Nil(top)
}

func (s *LoanRepositoryTestSuite) TestReplaceLoans_FailureKeepsPreviousRows() {
	ctx := context.Background()

	_, err := s.repo.ReplaceLoans(ctx, []domain.LoanRecord{
		s.loan("00000001", "100000001", "2024-03-01", "ACME", "10.00"),
	})
	s.Require().NoError(err)

	_, err = s.pool.Exec(ctx, `
		CREATE OR REPLACE FUNCTION reject_boom() RETURNS trigger AS $$
		BEGIN
			IF NEW.app_id = 'BOOM' THEN
				RAISE EXCEPTION 'boom';
			END IF;
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql;
	`)
	s.Require().NoError(err)
	_, err = s.pool.Exec(ctx, `
		CREATE TRIGGER reject_boom BEFORE INSERT ON loan_info
		FOR EACH ROW EXECUTE FUNCTION reject_boom();
	`)
	s.Require().NoError(err)
	defer func() {
		_, _ = s.pool.Exec(ctx, `DROP TRIGGER IF EXISTS reject_boom ON loan_info;`)
		_, _ = s.pool.Exec(ctx, `DROP FUNCTION IF EXISTS reject_boom();`)
	}()

	stored, err := s.repo.ReplaceLoans(ctx, []domain.LoanRecord{
		s.loan("00000002", "100000002", "2024-03-02", "BETA", "20.00"),
		s.loan("BOOM", "100000003", "2024-03-02", "BETA", "30.00"),
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrStorage)
	s.Zero(stored)

	loans, err := s.repo.ListLoans(ctx)
	s.Require().NoError(err)
	s.Require().Len(loans, 1)
	s.Equal("00000001", loans[0].AppID)
}
