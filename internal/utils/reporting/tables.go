package reporting

import (
	"strconv"
	"time"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const amountPlaces = 2

// FormatAmount renders a money value with two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountPlaces)
}

// BrokerTable renders a broker report; the period column is named after its grouping.
func BrokerTable(name string, period domain.Period, rows []domain.BrokerPeriodTotal) domain.ReportTable {
	periodHeader := "Settlement Date"
	periodKey := func(t time.Time) string { return t.Format(domain.DateLayout) }
	switch period {
	case domain.Weekly:
		periodHeader = "week_start"
	case domain.Monthly:
		periodHeader, periodKey = "month", domain.MonthKey
	}

	table := domain.ReportTable{
		Name:    name,
		Headers: []string{periodHeader, "Broker", "Total Loan Amount"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{periodKey(r.PeriodStart), r.Broker, FormatAmount(r.Total)})
	}
	return table
}

// DateTable renders the total-by-date report.
func DateTable(rows []domain.DateTotal) domain.ReportTable {
	table := domain.ReportTable{
		Name:    domain.TotalLoanByDateReport,
		Headers: []string{"Settlement Date", "Total Loan Amount"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.Date.Format(domain.DateLayout), FormatAmount(r.Total)})
	}
	return table
}

// TierTable renders the tier-count report.
func TierTable(rows []domain.TierCount) domain.ReportTable {
	table := domain.ReportTable{
		Name:    domain.LoanCountByTierAndDateReport,
		Headers: []string{"Settlement Date", "tier", "loan_count"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.Date.Format(domain.DateLayout), string(r.Tier), strconv.Itoa(r.Count)})
	}
	return table
}

// BuildReportSet aggregates loans into all five reports, in output order.
func BuildReportSet(loans []domain.LoanRecord) domain.ReportSet {
	return domain.ReportSet{Tables: []domain.ReportTable{
		BrokerTable(domain.DailyBrokerReport, domain.Daily, BrokerTotals(loans, domain.Daily)),
		BrokerTable(domain.WeeklyBrokerReport, domain.Weekly, BrokerTotals(loans, domain.Weekly)),
		BrokerTable(domain.MonthlyBrokerReport, domain.Monthly, BrokerTotals(loans, domain.Monthly)),
		DateTable(DateTotals(loans)),
		TierTable(TierCounts(loans)),
	}}
}
