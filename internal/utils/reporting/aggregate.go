package reporting

import (
	"cmp"
	"slices"
	"time"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// periodStart maps a settlement date onto the first day of its reporting period.
func periodStart(period domain.Period, t time.Time) time.Time {
	switch period {
	case domain.Weekly:
		return domain.WeekStart(t)
	case domain.Monthly:
		return domain.MonthStart(t)
	default:
		return domain.DateOnly(t)
	}
}

type brokerKey struct {
	start  time.Time
	broker string
}

// BrokerTotals groups loans by (period, broker) and sums their total loan
// amounts. Absent amounts add nothing but the group is still reported.
// Rows are ordered by period ascending, total descending, broker ascending.
func BrokerTotals(loans []domain.LoanRecord, period domain.Period) []domain.BrokerPeriodTotal {
	sums := make(map[brokerKey]decimal.Decimal)
	for _, loan := range loans {
		key := brokerKey{start: periodStart(period, loan.SettlementDate), broker: loan.Broker}
		sum := sums[key]
		if loan.TotalLoanAmount.Valid {
			sum = sum.Add(loan.TotalLoanAmount.Decimal)
		}
		sums[key] = sum
	}

	rows := make([]domain.BrokerPeriodTotal, 0, len(sums))
	for key, total := range sums {
		rows = append(rows, domain.BrokerPeriodTotal{PeriodStart: key.start, Broker: key.broker, Total: total})
	}

	slices.SortFunc(rows, func(a, b domain.BrokerPeriodTotal) int {
		if c := a.PeriodStart.Compare(b.PeriodStart); c != 0 {
			return c
		}
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Broker, b.Broker)
	})
	return rows
}

// DateTotals sums total loan amounts per settlement date, oldest first.
func DateTotals(loans []domain.LoanRecord) []domain.DateTotal {
	sums := make(map[time.Time]decimal.Decimal)
	for _, loan := range loans {
		day := domain.DateOnly(loan.SettlementDate)
		sum := sums[day]
		if loan.TotalLoanAmount.Valid {
			sum = sum.Add(loan.TotalLoanAmount.Decimal)
		}
		sums[day] = sum
	}

	rows := make([]domain.DateTotal, 0, len(sums))
	for day, total := range sums {
		rows = append(rows, domain.DateTotal{Date: day, Total: total})
	}
	slices.SortFunc(rows, func(a, b domain.DateTotal) int {
		return a.Date.Compare(b.Date)
	})
	return rows
}

type tierKey struct {
	day  time.Time
	tier domain.Tier
}

// TierCounts counts loans per (settlement date, tier), ordered by date then tier label.
func TierCounts(loans []domain.LoanRecord) []domain.TierCount {
	counts := make(map[tierKey]int)
	for _, loan := range loans {
		counts[tierKey{day: domain.DateOnly(loan.SettlementDate), tier: loan.Tier()}]++
	}

	rows := make([]domain.TierCount, 0, len(counts))
	for key, n := range counts {
		rows = append(rows, domain.TierCount{Date: key.day, Tier: key.tier, Count: n})
	}
	slices.SortFunc(rows, func(a, b domain.TierCount) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Tier, b.Tier)
	})
	return rows
}
