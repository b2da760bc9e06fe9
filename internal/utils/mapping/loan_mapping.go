package mapping

import (
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	"github.com/SscSPs/loan_report_app/internal/models"
)

// ToModelLoanInfo converts a domain LoanRecord to a model LoanInfo
func ToModelLoanInfo(d domain.LoanRecord) models.LoanInfo {
	return models.LoanInfo{
		AppID:           d.AppID,
		Xref:            d.Xref,
		Date:            domain.DateOnly(d.SettlementDate),
		Broker:          d.Broker,
		SubBroker:       d.SubBroker,
		BorrowerName:    d.BorrowerName,
		Description:     d.Description,
		TotalLoanAmount: d.TotalLoanAmount,
		CommRate:        d.CommRate,
		Upfront:         d.Upfront,
		UpfrontInclGST:  d.UpfrontInclGST,
	}
}

// ToDomainLoanRecord converts a model LoanInfo to a domain LoanRecord
func ToDomainLoanRecord(m models.LoanInfo) domain.LoanRecord {
	return domain.LoanRecord{
		AppID:           m.AppID,
		Xref:            m.Xref,
		SettlementDate:  domain.DateOnly(m.Date),
		Broker:          m.Broker,
		SubBroker:       m.SubBroker,
		BorrowerName:    m.BorrowerName,
		Description:     m.Description,
		TotalLoanAmount: m.TotalLoanAmount,
		CommRate:        m.CommRate,
		Upfront:         m.Upfront,
		UpfrontInclGST:  m.UpfrontInclGST,
	}
}

// ToModelLoanInfoSlice converts a slice of domain LoanRecords to model LoanInfos
func ToModelLoanInfoSlice(ds []domain.LoanRecord) []models.LoanInfo {
	ms := make([]models.LoanInfo, len(ds))
	for i, d := range ds {
		ms[i] = ToModelLoanInfo(d)
	}
	return ms
}

// ToDomainLoanRecordSlice converts a slice of model LoanInfos to domain LoanRecords
func ToDomainLoanRecordSlice(ms []models.LoanInfo) []domain.LoanRecord {
	ds := make([]domain.LoanRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoanRecord(m)
	}
	return ds
}
