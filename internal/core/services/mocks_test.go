package services_test

import (
	"context"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) ReplaceLoans(ctx context.Context, loans []domain.LoanRecord) (int, error) {
	args := m.Called(ctx, loans)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) TotalLoanAmount(ctx context.Context) (domain.LoanTotal, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LoanTotal), args.Error(1)
}

func (m *MockLoanRepository) TopBrokerByMaxLoan(ctx context.Context) (*domain.BrokerMaxLoan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BrokerMaxLoan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context) ([]domain.LoanRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}

// --- Mock TextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// --- Mock ReportSink ---
type MockReportSink struct {
	mock.Mock
	format string
}

func (m *MockReportSink) Format() string {
	return m.format
}

func (m *MockReportSink) WriteReport(ctx context.Context, table domain.ReportTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}
