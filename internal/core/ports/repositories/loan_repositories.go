package repositories

import (
	"context"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
)

// LoanWriter replaces the stored loan set.
type LoanWriter interface {
	// ReplaceLoans swaps the whole table for loans in one transaction. Rows whose
	// (xref, total_loan_amount) pair was already written are dropped silently;
	// the first occurrence wins. It returns how many rows were stored. On error
	// the previous table contents are left intact.
	ReplaceLoans(ctx context.Context, loans []domain.LoanRecord) (int, error)
}

// LoanReader answers queries over the stored loan set.
type LoanReader interface {
	// TotalLoanAmount sums every present total loan amount.
	TotalLoanAmount(ctx context.Context) (domain.LoanTotal, error)

	// TopBrokerByMaxLoan returns the broker holding the single largest loan,
	// ties broken by broker name. It returns nil when no loan has an amount.
	TopBrokerByMaxLoan(ctx context.Context) (*domain.BrokerMaxLoan, error)

	// ListLoans returns every stored loan in a stable order.
	ListLoans(ctx context.Context) ([]domain.LoanRecord, error)
}

// LoanRepository is the deduplicated loan store.
type LoanRepository interface {
	LoanWriter
	LoanReader
}
