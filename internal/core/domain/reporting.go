package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report names, also used as output file stems.
const (
	DailyBrokerReport            = "daily_broker_report"
	WeeklyBrokerReport           = "weekly_broker_report"
	MonthlyBrokerReport          = "monthly_broker_report"
	TotalLoanByDateReport        = "total_loan_by_date_report"
	LoanCountByTierAndDateReport = "loan_count_by_tier_and_date_report"
)

// Period is the grouping granularity of a broker report.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// BrokerPeriodTotal is one row of a daily, weekly or monthly broker report.
type BrokerPeriodTotal struct {
	PeriodStart time.Time       `json:"periodStart"`
	Broker      string          `json:"broker"`
	Total       decimal.Decimal `json:"total"`
}

// DateTotal is one row of the total-by-date report.
type DateTotal struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// TierCount is one row of the tier-count report.
type TierCount struct {
	Date  time.Time `json:"date"`
	Tier  Tier      `json:"tier"`
	Count int       `json:"count"`
}

// ReportTable is a rendered report: a name, a header row and string cells.
type ReportTable struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// ReportSet holds every report produced by one run, in output order.
type ReportSet struct {
	Tables []ReportTable
}
