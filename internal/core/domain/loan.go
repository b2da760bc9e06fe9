package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementDateLayout is the day/month/year layout used by commission statements.
const SettlementDateLayout = "2/1/2006"

// LoanRecord represents one settled loan line item from a commission statement.
type LoanRecord struct {
	AppID           string              `json:"appID"` // 8 digits, leading zeros significant
	Xref            string              `json:"xref"`  // 9 digits
	SettlementDate  time.Time           `json:"settlementDate"`
	Broker          string              `json:"broker"`
	SubBroker       string              `json:"subBroker"` // Empty when the statement has none
	BorrowerName    string              `json:"borrowerName"`
	Description     string              `json:"description"`
	TotalLoanAmount decimal.NullDecimal `json:"totalLoanAmount"` // Invalid when the text did not parse
	CommRate        decimal.NullDecimal `json:"commRate"`
	Upfront         decimal.NullDecimal `json:"upfront"`
	UpfrontInclGST  decimal.NullDecimal `json:"upfrontInclGST"`
}

// DedupKey is the uniqueness key of a stored loan: xref plus total loan amount.
type DedupKey struct {
	Xref            string
	TotalLoanAmount string // Empty when the amount is absent
}

// Key returns the record's uniqueness key.
func (l LoanRecord) Key() DedupKey {
	key := DedupKey{Xref: l.Xref}
	if l.TotalLoanAmount.Valid {
		key.TotalLoanAmount = l.TotalLoanAmount.Decimal.StringFixed(2)
	}
	return key
}

// Tier classifies the record by its total loan amount.
func (l LoanRecord) Tier() Tier {
	return ClassifyTier(l.TotalLoanAmount)
}

// LoanTotal is the grand total of stored loan amounts.
type LoanTotal struct {
	Total       decimal.NullDecimal `json:"total"` // Invalid when no record has an amount
	RecordCount int                 `json:"recordCount"`
	AbsentCount int                 `json:"absentCount"` // Records excluded from Total
}

// BrokerMaxLoan names the broker holding the single largest loan.
type BrokerMaxLoan struct {
	Broker      string          `json:"broker"`
	HighestLoan decimal.Decimal `json:"highestLoan"`
}
