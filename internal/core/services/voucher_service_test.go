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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindEntryForDocumentVoucher(ctx context.Context, documentID, voucherTypeID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, documentID, voucherTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockDocumentRepository) FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockDocumentRepository) CancelDocumentCascade(ctx context.Context, documentID, reason, userID string, now time.Time) error {
	args := m.Called(ctx, documentID, reason, userID, now)
	return args.Error(0)
}

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

// --- Test Suite Setup ---
type VoucherServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo *MockDocumentRepository
	mockEntrySvc     *MockEntryService
	service          portssvc.VoucherSvcFacade

	documentTypeID string
	voucherTypeID  string
	cashAccountID  string
	salesAccountID string
	document       domain.Document
	userID         string
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockEntrySvc = new(MockEntryService)

	suite.documentTypeID = uuid.NewString()
	suite.voucherTypeID = uuid.NewString()
	suite.cashAccountID = uuid.NewString()
	suite.salesAccountID = uuid.NewString()
	suite.userID = uuid.NewString()

	builders := map[string]services.LineBuilder{
		suite.documentTypeID: services.TwoLineBuilder(suite.cashAccountID, suite.salesAccountID, false),
	}
	suite.service = services.NewVoucherService(suite.mockDocumentRepo, suite.mockEntrySvc, builders)

	suite.document = domain.Document{
		DocumentID:     uuid.NewString(),
		DocumentTypeID: suite.documentTypeID,
		DocumentNumber: "FV-2026-0001",
		Status:         domain.DocumentApproved,
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Total:          decimal.NewFromInt(250),
		CurrencyID:     "COP",
		ExchangeRate:   decimal.NewFromInt(1),
		FiscalPeriodID: uuid.NewString(),
	}
}

// --- Test Cases ---

func (suite *VoucherServiceTestSuite) TestGenerateVoucher_Success() {
	ctx := context.Background()
	docID := suite.document.DocumentID

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, docID).Return(&suite.document, nil).Once()
	suite.mockDocumentRepo.On("FindEntryForDocumentVoucher", ctx, docID, suite.voucherTypeID).Return(nil, apperrors.ErrNotFound).Once()

	var capturedReq dto.CreateEntryRequest
	created := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "CI-000001", Status: domain.EntryDraft}
	suite.mockEntrySvc.On("CreateEntry", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			capturedReq = args.Get(1).(dto.CreateEntryRequest)
		}).Return(created, nil).Once()

	entry, err := suite.service.GenerateVoucherFromDocument(ctx, docID, suite.voucherTypeID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(created.EntryID, entry.EntryID)

	suite.Require().Len(capturedReq.Lines, 2)
	suite.Equal(suite.cashAccountID, capturedReq.Lines[0].AccountID)
	suite.True(capturedReq.Lines[0].Debit.Equal(suite.document.Total))
	suite.Equal(suite.salesAccountID, capturedReq.Lines[1].AccountID)
	suite.True(capturedReq.Lines[1].Credit.Equal(suite.document.Total))
	suite.Require().NotNil(capturedReq.DocumentID)
	suite.Equal(docID, *capturedReq.DocumentID)
	suite.mockEntrySvc.AssertNotCalled(suite.T(), "PostEntry")
}

func (suite *VoucherServiceTestSuite) TestGenerateVoucher_PostsImmediately() {
	ctx := context.Background()
	docID := suite.document.DocumentID

	builders := map[string]services.LineBuilder{
		suite.documentTypeID: services.TwoLineBuilder(suite.cashAccountID, suite.salesAccountID, true),
	}
	suite.service = services.NewVoucherService(suite.mockDocumentRepo, suite.mockEntrySvc, builders)

	created := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "CI-000001", Status: domain.EntryDraft}
	posted := &domain.JournalEntry{EntryID: created.EntryID, EntryNumber: "CI-000001", Status: domain.EntryPosted}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, docID).Return(&suite.document, nil).Once()
	suite.mockDocumentRepo.On("FindEntryForDocumentVoucher", ctx, docID, suite.voucherTypeID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEntrySvc.On("CreateEntry", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).Return(created, nil).Once()
	suite.mockEntrySvc.On("PostEntry", ctx, created.EntryID, suite.userID).Return(posted, nil).Once()

	entry, err := suite.service.GenerateVoucherFromDocument(ctx, docID, suite.voucherTypeID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.mockEntrySvc.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestGenerateVoucher_PostFailureNamesDraft() {
	ctx := context.Background()
	docID := suite.document.DocumentID

	builders := map[string]services.LineBuilder{
		suite.documentTypeID: services.TwoLineBuilder(suite.cashAccountID, suite.salesAccountID, true),
	}
	suite.service = services.NewVoucherService(suite.mockDocumentRepo, suite.mockEntrySvc, builders)

	created := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "CI-000007", Status: domain.EntryDraft}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, docID).Return(&suite.document, nil).Once()
	suite.mockDocumentRepo.On("FindEntryForDocumentVoucher", ctx, docID, suite.voucherTypeID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEntrySvc.On("CreateEntry", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).Return(created, nil).Once()
	suite.mockEntrySvc.On("PostEntry", ctx, created.EntryID, suite.userID).Return(nil, services.ErrPeriodClosed).Once()

	// The draft is already committed; the error must name it so the caller
	// can recover by posting it instead of regenerating.
	_, err := suite.service.GenerateVoucherFromDocument(ctx, docID, suite.voucherTypeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.Contains(err.Error(), created.EntryNumber)
	suite.Contains(err.Error(), suite.document.DocumentNumber)
}

func (suite *VoucherServiceTestSuite) TestGenerateVoucher_Duplicate() {
	ctx := context.Background()
	docID := suite.document.DocumentID
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "CI-000009"}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, docID).Return(&suite.document, nil).Once()
	suite.mockDocumentRepo.On("FindEntryForDocumentVoucher", ctx, docID, suite.voucherTypeID).Return(existing, nil).Once()

	_, err := suite.service.GenerateVoucherFromDocument(ctx, docID, suite.voucherTypeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntrySvc.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *VoucherServiceTestSuite) TestGenerateVoucher_DocumentNotApproved() {
	ctx := context.Background()
	draftDoc := suite.document
	draftDoc.Status = domain.DocumentDraft

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, draftDoc.DocumentID).Return(&draftDoc, nil).Once()

	_, err := suite.service.GenerateVoucherFromDocument(ctx, draftDoc.DocumentID, suite.voucherTypeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *VoucherServiceTestSuite) TestGenerateVoucher_NoRuleForDocumentType() {
	ctx := context.Background()
	unknownDoc := suite.document
	unknownDoc.DocumentTypeID = uuid.NewString()

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, unknownDoc.DocumentID).Return(&unknownDoc, nil).Once()
	suite.mockDocumentRepo.On("FindEntryForDocumentVoucher", ctx, unknownDoc.DocumentID, suite.voucherTypeID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GenerateVoucherFromDocument(ctx, unknownDoc.DocumentID, suite.voucherTypeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestCancelDocument_Success() {
	ctx := context.Background()
	docID := suite.document.DocumentID
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), EntryNumber: "CI-000001", Status: domain.EntryDraft},
	}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, docID).Return(&suite.document, nil).Once()
	suite.mockDocumentRepo.On("FindEntriesByDocumentID", ctx, docID).Return(entries, nil).Once()
	suite.mockDocumentRepo.On("CancelDocumentCascade", ctx, docID, "duplicate billing", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelDocument(ctx, docID, "duplicate billing", suite.userID)

	suite.Require().NoError(err)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCancelDocument_AfterReversal() {
	ctx := context.Background()
	docID := suite.document.DocumentID

	// A reversed voucher leaves two linked entries: the REVERSED original
	// and its POSTED mirror. Together they net to zero, so neither may
	// block the cancellation.
	originalID := uuid.NewString()
	mirrorID := uuid.NewString()
	entries := []domain.JournalEntry{
		{EntryID: originalID, EntryNumber: "CI-000001", Status: domain.EntryReversed, ReversingEntryID: &mirrorID},
		{EntryID: mirrorID, EntryNumber: "CI-000002", Status: domain.EntryPosted, OriginalEntryID: &originalID},
	}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, docID).Return(&suite.document, nil).Once()
	suite.mockDocumentRepo.On("FindEntriesByDocumentID", ctx, docID).Return(entries, nil).Once()
	suite.mockDocumentRepo.On("CancelDocumentCascade", ctx, docID, "billing error", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelDocument(ctx, docID, "billing error", suite.userID)

	suite.Require().NoError(err)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCancelDocument_BlockedByPostedEntry() {
	ctx := context.Background()
	docID := suite.document.DocumentID
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), EntryNumber: "CI-000001", Status: domain.EntryPosted},
	}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, docID).Return(&suite.document, nil).Once()
	suite.mockDocumentRepo.On("FindEntriesByDocumentID", ctx, docID).Return(entries, nil).Once()

	err := suite.service.CancelDocument(ctx, docID, "duplicate billing", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "CancelDocumentCascade")
}

func (suite *VoucherServiceTestSuite) TestCancelDocument_AlreadyCancelled() {
	ctx := context.Background()
	cancelled := suite.document
	cancelled.Status = domain.DocumentCancelled

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, cancelled.DocumentID).Return(&cancelled, nil).Once()

	err := suite.service.CancelDocument(ctx, cancelled.DocumentID, "again", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *VoucherServiceTestSuite) TestCancelDocument_MissingReason() {
	ctx := context.Background()

	err := suite.service.CancelDocument(ctx, suite.document.DocumentID, "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindDocumentByID")
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
