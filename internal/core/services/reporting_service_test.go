package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/SscSPs/loan_report_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
	"github.com/SscSPs/loan_report_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLoanRepository
	service  portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLoanRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func (suite *ReportingServiceTestSuite) TestSummary_Success() {
	ctx := context.Background()
	total := domain.LoanTotal{
		Total:       decimal.NewNullDecimal(decimal.RequireFromString("762500.00")),
		RecordCount: 3,
		AbsentCount: 1,
	}
	top := &domain.BrokerMaxLoan{Broker: "John Smith", HighestLoan: decimal.RequireFromString("450000.00")}
	suite.mockRepo.On("TotalLoanAmount", ctx).Return(total, nil).Once()
	suite.mockRepo.On("TopBrokerByMaxLoan", ctx).Return(top, nil).Once()

	gotTotal, gotTop, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	suite.Equal(total, gotTotal)
	suite.Equal(top, gotTop)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSummary_EmptyStore() {
	ctx := context.Background()
	suite.mockRepo.On("TotalLoanAmount", ctx).Return(domain.LoanTotal{}, nil).Once()
	suite.mockRepo.On("TopBrokerByMaxLoan", ctx).Return(nil, nil).Once()

	total, top, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	suite.False(total.Total.Valid)
	suite.Nil(top)
}

func (suite *ReportingServiceTestSuite) TestSummary_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("TotalLoanAmount", ctx).Return(domain.LoanTotal{}, apperrors.ErrStorage).Once()

	_, top, err := suite.service.Summary(ctx)

	suite.Require().Error(err)
	suite.Nil(top)
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.mockRepo.AssertNotCalled(suite.T(), "TopBrokerByMaxLoan", mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestBuildReports_Success() {
	ctx := context.Background()
	loans := []domain.LoanRecord{
		{SettlementDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Broker: "BrokerA", TotalLoanAmount: decimal.NewNullDecimal(decimal.NewFromInt(500))},
		{SettlementDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Broker: "BrokerB", TotalLoanAmount: decimal.NewNullDecimal(decimal.NewFromInt(900))},
	}
	suite.mockRepo.On("ListLoans", ctx).Return(loans, nil).Once()

	set, err := suite.service.BuildReports(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(set.Tables, 5)
	suite.Equal(domain.DailyBrokerReport, set.Tables[0].Name)
	suite.Equal([][]string{
		{"2024-01-01", "BrokerB", "900.00"},
		{"2024-01-01", "BrokerA", "500.00"},
	}, set.Tables[0].Rows)
}

func (suite *ReportingServiceTestSuite) TestBuildReports_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListLoans", ctx).Return(nil, apperrors.ErrStorage).Once()

	_, err := suite.service.BuildReports(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorage)
}

func (suite *ReportingServiceTestSuite) TestPublishReports_CancelledMidway() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	set := domain.ReportSet{Tables: []domain.ReportTable{
		{Name: "first"},
		{Name: "second"},
	}}
	csvSink := &MockReportSink{format: "csv"}
	xlsxSink := &MockReportSink{format: "xlsx"}
	csvSink.On("WriteReport", ctx, set.Tables[0]).Run(func(mock.Arguments) { cancel() }).Return(nil).Once()

	written, err := suite.service.PublishReports(ctx, set, []portssvc.ReportSink{csvSink, xlsxSink})

	suite.Require().Error(err)
	suite.ErrorIs(err, context.Canceled)
	stage, ok := apperrors.StageOf(err)
	suite.True(ok)
	suite.Equal(apperrors.StageReport, stage)
	suite.Equal([]string{"first.csv"}, written)
	csvSink.AssertExpectations(suite.T())
	xlsxSink.AssertNotCalled(suite.T(), "WriteReport", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestPublishReports_IsolatesFailures() {
	ctx := context.Background()
	set := domain.ReportSet{Tables: []domain.ReportTable{
		{Name: "first"},
		{Name: "second"},
		{Name: "third"},
	}}
	csvSink := &MockReportSink{format: "csv"}
	xlsxSink := &MockReportSink{format: "xlsx"}
	csvSink.On("WriteReport", ctx, set.Tables[0]).Return(nil).Once()
	csvSink.On("WriteReport", ctx, set.Tables[1]).Return(assert.AnError).Once()
	csvSink.On("WriteReport", ctx, set.Tables[2]).Return(nil).Once()
	xlsxSink.On("WriteReport", ctx, mock.AnythingOfType("domain.ReportTable")).Return(nil).Times(3)

	written, err := suite.service.PublishReports(ctx, set, []portssvc.ReportSink{csvSink, xlsxSink})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOutputWrite)
	suite.ErrorIs(err, assert.AnError)
	suite.Contains(err.Error(), "second.csv")
	stage, _ := apperrors.StageOf(err)
	suite.Equal(apperrors.StageReport, stage)
	suite.Equal([]string{"first.csv", "first.xlsx", "second.xlsx", "third.csv", "third.xlsx"}, written)
	csvSink.AssertExpectations(suite.T())
	xlsxSink.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPublishReports_AllWritten() {
	ctx := context.Background()
	set := domain.ReportSet{Tables: []domain.ReportTable{{Name: "only"}}}
	sink := &MockReportSink{format: "csv"}
	sink.On("WriteReport", ctx, set.Tables[0]).Return(nil).Once()

	written, err := suite.service.PublishReports(ctx, set, []portssvc.ReportSink{sink})

	suite.Require().NoError(err)
	suite.Equal([]string{"only.csv"}, written)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
