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
	"github.com/TyroGames/api-sub001/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (string, error) {
	args := m.Called(ctx, entry, lines)
	return args.String(0), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) PostEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveReversal(ctx context.Context, reversing domain.JournalEntry, lines []domain.EntryLine) error {
	args := m.Called(ctx, reversing, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock VoucherTypeReader ---
type MockVoucherTypeReader struct {
	mock.Mock
}

var _ portsrepo.VoucherTypeReader = (*MockVoucherTypeReader)(nil)

func (m *MockVoucherTypeReader) FindVoucherTypeByID(ctx context.Context, voucherTypeID string) (*domain.VoucherType, error) {
	args := m.Called(ctx, voucherTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherType), args.Error(1)
}

func (m *MockVoucherTypeReader) ListVoucherTypes(ctx context.Context) ([]domain.VoucherType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherType), args.Error(1)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListPostableAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock FiscalPeriodReader ---
type MockFiscalPeriodReader struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodReader = (*MockFiscalPeriodReader)(nil)

func (m *MockFiscalPeriodReader) FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) ListFiscalPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

// --- Test Suite Setup ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo     *MockEntryRepository
	mockVoucherTypes  *MockVoucherTypeReader
	mockAccounts      *MockAccountReader
	mockFiscalPeriods *MockFiscalPeriodReader
	service           portssvc.EntrySvcFacade

	cashAccount   domain.Account
	incomeAccount domain.Account
	openPeriod    domain.FiscalPeriod
	voucherType   domain.VoucherType
	userID        string
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockVoucherTypes = new(MockVoucherTypeReader)
	suite.mockAccounts = new(MockAccountReader)
	suite.mockFiscalPeriods = new(MockFiscalPeriodReader)
	suite.service = services.NewEntryService(suite.mockEntryRepo, suite.mockVoucherTypes, suite.mockAccounts, suite.mockFiscalPeriods)

	suite.userID = uuid.NewString()

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
	suite.openPeriod = domain.FiscalPeriod{
		FiscalPeriodID: uuid.NewString(),
		Name:           "2026-03",
		StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		IsClosed:       false,
	}
	suite.voucherType = domain.VoucherType{
		VoucherTypeID: uuid.NewString(),
		Name:          "Comprobante de ingreso",
		Prefix:        "CI-",
		Padding:       6,
		NextNumber:    42,
	}
}

func (suite *EntryServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:   suite.cashAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
}

func (suite *EntryServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		VoucherTypeID:  suite.voucherType.VoucherTypeID,
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description:    "Venta de contado",
		CurrencyID:     "COP",
		FiscalPeriodID: suite.openPeriod.FiscalPeriodID,
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: amount},
			{AccountID: suite.incomeAccount.AccountID, Credit: amount},
		},
	}
}

// --- Test Cases ---

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockVoucherTypes.On("FindVoucherTypeByID", ctx, suite.voucherType.VoucherTypeID).Return(&suite.voucherType, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).Return("CI-000042", nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("CI-000042", entry.EntryNumber)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].OrderNumber)
	suite.Equal(2, entry.Lines[1].OrderNumber)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(50))
	req.Lines[1].Credit = decimal.NewFromInt(40)

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *EntryServiceTestSuite) TestCreateEntry_WithinTolerance() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))
	// One half-cent of rounding noise must still balance.
	req.Lines[1].Credit = decimal.RequireFromString("99.995")

	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockVoucherTypes.On("FindVoucherTypeByID", ctx, suite.voucherType.VoucherTypeID).Return(&suite.voucherType, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).Return("CI-000042", nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))
	req.Lines[0].Credit = decimal.NewFromInt(100)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_ClosedPeriod() {
	ctx := context.Background()
	closed := suite.openPeriod
	closed.IsClosed = true
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&closed, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *EntryServiceTestSuite) TestCreateEntry_DateOutsidePeriod() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))
	req.Date = time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&suite.openPeriod, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDateOutsidePeriod)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NonPostableAccount() {
	ctx := context.Background()
	header := suite.cashAccount
	header.AllowsEntries = false
	accounts := suite.accountsMap()
	accounts[header.AccountID] = header
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockAccounts.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotPostable)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_NotDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, EntryNumber: "CI-000001", Status: domain.EntryPosted}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	req := dto.UpdateEntryRequest{
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description:    "edit attempt",
		CurrencyID:     "COP",
		FiscalPeriodID: suite.openPeriod.FiscalPeriodID,
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(10)},
		},
	}
	_, err := suite.service.UpdateEntry(ctx, entryID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntry")
}

func (suite *EntryServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:        entryID,
		EntryNumber:    "CI-000001",
		Status:         domain.EntryDraft,
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		FiscalPeriodID: suite.openPeriod.FiscalPeriodID,
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, OrderNumber: 1, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), EntryID: entryID, OrderNumber: 2, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockEntryRepo.On("PostEntry", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, EntryNumber: "CI-000001", Status: domain.EntryPosted}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *EntryServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:        entryID,
		EntryNumber:    "CI-000001",
		VoucherTypeID:  suite.voucherType.VoucherTypeID,
		Status:         domain.EntryPosted,
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		FiscalPeriodID: suite.openPeriod.FiscalPeriodID,
		TotalDebit:     decimal.NewFromInt(100),
		TotalCredit:    decimal.NewFromInt(100),
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, OrderNumber: 1, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), EntryID: entryID, OrderNumber: 2, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	var savedReversal domain.JournalEntry
	var savedLines []domain.EntryLine
	suite.mockEntryRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(1).(domain.JournalEntry)
			savedLines = args.Get(2).([]domain.EntryLine)
		}).Return(nil).Once()

	reversing, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Equal(domain.EntryPosted, reversing.Status)
	suite.Require().NotNil(reversing.OriginalEntryID)
	suite.Equal(entryID, *reversing.OriginalEntryID)

	// The mirror swaps debit and credit per line and in the totals.
	suite.Equal(entryID, *savedReversal.OriginalEntryID)
	suite.True(savedReversal.TotalDebit.Equal(original.TotalCredit))
	suite.True(savedReversal.TotalCredit.Equal(original.TotalDebit))
	suite.Require().Len(savedLines, 2)
	suite.True(savedLines[0].Credit.Equal(lines[0].Debit))
	suite.True(savedLines[1].Debit.Equal(lines[1].Credit))
}

func (suite *EntryServiceTestSuite) TestReverseEntry_Draft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, EntryNumber: "CI-000001", Status: domain.EntryDraft}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveReversal")
}

func (suite *EntryServiceTestSuite) TestReverseEntry_ClosedPeriod() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:        entryID,
		EntryNumber:    "CI-000001",
		VoucherTypeID:  suite.voucherType.VoucherTypeID,
		Status:         domain.EntryPosted,
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		FiscalPeriodID: suite.openPeriod.FiscalPeriodID,
	}
	closed := suite.openPeriod
	closed.IsClosed = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockFiscalPeriods.On("FindFiscalPeriodByID", ctx, suite.openPeriod.FiscalPeriodID).Return(&closed, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveReversal")
}

func (suite *EntryServiceTestSuite) TestReverseEntry_OfReversal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	originalID := uuid.NewString()
	mirror := &domain.JournalEntry{
		EntryID:         entryID,
		EntryNumber:     "CI-000002",
		Status:          domain.EntryPosted,
		OriginalEntryID: &originalID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(mirror, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_Draft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, Status: domain.EntryDraft}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_Posted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, EntryNumber: "CI-000001", Status: domain.EntryPosted}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry")
}

func (suite *EntryServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()

	suite.mockEntryRepo.On("ListEntries", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.Limit == 20 && !f.IncludeReversals
	})).Return([]domain.JournalEntry{}, int64(0), nil).Once()

	page, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Equal(int64(0), page.Total)
	suite.Equal(20, page.Limit)
}

func (suite *EntryServiceTestSuite) TestListEntries_UnknownStatus() {
	ctx := context.Background()
	status := "LIMBO"

	_, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{Status: &status})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ListEntries")
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
