package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	"github.com/TyroGames/api-sub001/internal/core/domain"
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetOpeningSums(ctx context.Context, accountID string, before time.Time, fiscalPeriodID *string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, before, fiscalPeriodID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetLedgerMovements(ctx context.Context, accountID string, from, to time.Time, fiscalPeriodID *string) ([]domain.LedgerMovement, error) {
	args := m.Called(ctx, accountID, from, to, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerMovement), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, from, to time.Time, fiscalPeriodID *string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, from, to, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccounts      *MockAccountReader
	service           portssvc.ReportingSvcFacade

	cashAccount   domain.Account
	incomeAccount domain.Account
	from          time.Time
	to            time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccounts = new(MockAccountReader)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccounts)

	suite.cashAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "1105.05",
		Name:          "Caja general",
		NormalBalance: domain.DebitNormal,
		AllowsEntries: true,
		IsActive:      true,
	}
	suite.incomeAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "4135.01",
		Name:          "Ingresos operacionales",
		NormalBalance: domain.CreditNormal,
		AllowsEntries: true,
		IsActive:      true,
	}
	suite.from = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGetLibroMayor_RunningBalances() {
	ctx := context.Background()
	accountID := suite.cashAccount.AccountID

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(&suite.cashAccount, nil).Once()
	suite.mockReportingRepo.On("GetOpeningSums", ctx, accountID, suite.from, (*string)(nil)).
		Return(decimal.NewFromInt(100), decimal.Zero, nil).Once()
	suite.mockReportingRepo.On("GetLedgerMovements", ctx, accountID, suite.from, suite.to, (*string)(nil)).
		Return([]domain.LedgerMovement{
			{EntryNumber: "CI-000001", Date: suite.from.AddDate(0, 0, 4), Debit: decimal.NewFromInt(50), Credit: decimal.Zero},
			{EntryNumber: "CE-000001", Date: suite.from.AddDate(0, 0, 9), Debit: decimal.Zero, Credit: decimal.NewFromInt(90)},
		}, nil).Once()

	report, err := suite.service.GetLibroMayor(ctx, accountID, suite.from, suite.to, nil)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(report.Movements, 2)
	suite.True(report.Movements[0].RunningBalance.Equal(decimal.NewFromInt(150)))
	suite.True(report.Movements[1].RunningBalance.Equal(decimal.NewFromInt(60)))
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(60)))
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(50)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(90)))
}

func (suite *ReportingServiceTestSuite) TestGetLibroMayor_CreditNormalSign() {
	ctx := context.Background()
	accountID := suite.incomeAccount.AccountID

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(&suite.incomeAccount, nil).Once()
	suite.mockReportingRepo.On("GetOpeningSums", ctx, accountID, suite.from, (*string)(nil)).
		Return(decimal.Zero, decimal.Zero, nil).Once()
	suite.mockReportingRepo.On("GetLedgerMovements", ctx, accountID, suite.from, suite.to, (*string)(nil)).
		Return([]domain.LedgerMovement{
			{EntryNumber: "CI-000001", Date: suite.from, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		}, nil).Once()

	report, err := suite.service.GetLibroMayor(ctx, accountID, suite.from, suite.to, nil)

	suite.Require().NoError(err)
	// A credit grows a credit-normal account.
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(100)))
}

func (suite *ReportingServiceTestSuite) TestGetLibroMayor_InvertedRange() {
	ctx := context.Background()

	_, err := suite.service.GetLibroMayor(ctx, suite.cashAccount.AccountID, suite.to, suite.from, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetLedgerMovements")
}

func (suite *ReportingServiceTestSuite) TestGetBalanceComprobacion_Balanced() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.from, suite.to, (*string)(nil)).
		Return([]domain.TrialBalanceRow{
			{
				AccountID:     suite.cashAccount.AccountID,
				AccountCode:   suite.cashAccount.Code,
				AccountName:   suite.cashAccount.Name,
				NormalBalance: domain.DebitNormal,
				TotalDebit:    decimal.NewFromInt(140),
				TotalCredit:   decimal.Zero,
			},
			{
				AccountID:     suite.incomeAccount.AccountID,
				AccountCode:   suite.incomeAccount.Code,
				AccountName:   suite.incomeAccount.Name,
				NormalBalance: domain.CreditNormal,
				TotalDebit:    decimal.Zero,
				TotalCredit:   decimal.NewFromInt(140),
			},
		}, nil).Once()

	report, err := suite.service.GetBalanceComprobacion(ctx, suite.from, suite.to, nil, false)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].DebtorBalance.Equal(decimal.NewFromInt(140)))
	suite.True(report.Rows[0].CreditorBalance.IsZero())
	suite.True(report.Rows[1].CreditorBalance.Equal(decimal.NewFromInt(140)))
	suite.True(report.Rows[1].DebtorBalance.IsZero())
	suite.True(report.Totals.TotalDebit.Equal(decimal.NewFromInt(140)))
	suite.True(report.Totals.TotalCredit.Equal(decimal.NewFromInt(140)))
	suite.True(report.Totals.DebtorBalance.Equal(report.Totals.CreditorBalance))
	suite.True(report.BalanceCheck.Balanced)
	suite.True(report.BalanceCheck.DebitCreditDiff.IsZero())
}

func (suite *ReportingServiceTestSuite) TestGetBalanceComprobacion_NegativeBalanceSwitchesColumn() {
	ctx := context.Background()

	// A debit-normal account driven net-credit lands on the creditor side.
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.from, suite.to, (*string)(nil)).
		Return([]domain.TrialBalanceRow{
			{
				AccountID:     suite.cashAccount.AccountID,
				AccountCode:   suite.cashAccount.Code,
				NormalBalance: domain.DebitNormal,
				TotalDebit:    decimal.NewFromInt(30),
				TotalCredit:   decimal.NewFromInt(80),
			},
		}, nil).Once()

	report, err := suite.service.GetBalanceComprobacion(ctx, suite.from, suite.to, nil, false)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.True(report.Rows[0].DebtorBalance.IsZero())
	suite.True(report.Rows[0].CreditorBalance.Equal(decimal.NewFromInt(50)))
}

func (suite *ReportingServiceTestSuite) TestGetBalanceComprobacion_IncludeZeroBalances() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.from, suite.to, (*string)(nil)).
		Return([]domain.TrialBalanceRow{
			{
				AccountID:     suite.incomeAccount.AccountID,
				AccountCode:   suite.incomeAccount.Code,
				NormalBalance: domain.CreditNormal,
				TotalDebit:    decimal.Zero,
				TotalCredit:   decimal.NewFromInt(10),
			},
		}, nil).Once()
	suite.mockAccounts.On("ListPostableAccounts", ctx).
		Return([]domain.Account{suite.cashAccount, suite.incomeAccount}, nil).Once()

	report, err := suite.service.GetBalanceComprobacion(ctx, suite.from, suite.to, nil, true)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	// Ordered by code; the movement-less cash account shows zeros.
	suite.Equal(suite.cashAccount.Code, report.Rows[0].AccountCode)
	suite.True(report.Rows[0].TotalDebit.IsZero())
	suite.True(report.Rows[0].DebtorBalance.IsZero())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
