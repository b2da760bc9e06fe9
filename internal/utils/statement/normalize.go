package statement

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/loan_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var plainDecimal = regexp.MustCompile(`^\d+\.\d+$`)

// ParseAmount strips thousands separators and parses a non-negative decimal.
// Text without a decimal point, or with anything but digits around it, is absent.
func ParseAmount(text string) decimal.NullDecimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if !plainDecimal.MatchString(cleaned) {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseSettlementDate parses day/month/year text into a UTC date.
func ParseSettlementDate(text string) (time.Time, error) {
	t, err := time.Parse(domain.SettlementDateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid settlement date %q: %w", text, err)
	}
	return t, nil
}

// Normalize converts a raw row into a LoanRecord. Numeric fields that do not
// parse are left absent and their names returned; the record is still usable.
// Only an impossible settlement date makes the row unusable.
func Normalize(raw RawRecord) (domain.LoanRecord, []string, error) {
	settled, err := ParseSettlementDate(raw[2])
	if err != nil {
		return domain.LoanRecord{}, nil, err
	}

	rec := domain.LoanRecord{
		AppID:           strings.TrimSpace(raw[0]),
		Xref:            strings.TrimSpace(raw[1]),
		SettlementDate:  settled,
		Broker:          strings.TrimSpace(raw[3]),
		SubBroker:       strings.TrimSpace(raw[4]),
		BorrowerName:    collapseSpace(raw[5]),
		Description:     strings.TrimSpace(raw[6]),
		TotalLoanAmount: ParseAmount(raw[7]),
		CommRate:        ParseAmount(raw[8]),
		Upfront:         ParseAmount(raw[9]),
		UpfrontInclGST:  ParseAmount(raw[10]),
	}

	var absent []string
	for i, v := range []decimal.NullDecimal{rec.TotalLoanAmount, rec.CommRate, rec.Upfront, rec.UpfrontInclGST} {
		if !v.Valid {
			absent = append(absent, FieldNames[7+i])
		}
	}
	return rec, absent, nil
}

// collapseSpace joins a borrower name that the extractor split over several lines.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
