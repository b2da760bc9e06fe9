package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanInfoTable is the table holding the current run's loans.
const LoanInfoTable = "loan_info"

// LoanInfo is the storage shape of a loan record, one row of loan_info.
type LoanInfo struct {
	AppID           string              `gorm:"column:app_id;not null"`
	Xref            string              `gorm:"column:xref;not null;uniqueIndex:idx_loan_info_xref_amount"`
	Date            time.Time           `gorm:"column:date;type:date;not null"`
	Broker          string              `gorm:"column:broker;not null"`
	SubBroker       string              `gorm:"column:sub_broker;not null;default:''"`
	BorrowerName    string              `gorm:"column:borrower_name;not null"`
	Description     string              `gorm:"column:description;not null"`
	TotalLoanAmount decimal.NullDecimal `gorm:"column:total_loan_amount;type:numeric(14,2);uniqueIndex:idx_loan_info_xref_amount"` // NULL when unparseable
	CommRate        decimal.NullDecimal `gorm:"column:comm_rate;type:numeric(6,2)"`
	Upfront         decimal.NullDecimal `gorm:"column:upfront;type:numeric(14,2)"`
	UpfrontInclGST  decimal.NullDecimal `gorm:"column:upfront_incl_gst;type:numeric(14,2)"`
}

// TableName pins the gorm table name.
func (LoanInfo) TableName() string {
	return LoanInfoTable
}
