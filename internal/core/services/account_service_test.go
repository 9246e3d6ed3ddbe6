package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/clubledger/clubledger/internal/core/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber: "1000",
		Name:          "Cash on Hand",
		AccountType:   domain.Asset,
	}

	suite.mockRepo.On("FindAccountByNumber", ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(req.Name, account.Name)
	suite.Equal(req.AccountType, account.AccountType)
	suite.True(account.IsActive)
	suite.Equal(creatorID, account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{AccountNumber: "1000", Name: "Cash", AccountType: domain.Asset}

	existing := &domain.Account{AccountID: uuid.NewString(), AccountNumber: "1000"}
	suite.mockRepo.On("FindAccountByNumber", ctx, "1000").Return(existing, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingParent() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber:   "1010",
		Name:            "Checking",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByNumber", ctx, "1010").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsParentCycle() {
	ctx := context.Background()
	accountID := "acc-a"
	childID := "acc-b"

	account := &domain.Account{AccountID: accountID, Name: "A"}
	child := &domain.Account{AccountID: childID, Name: "B", ParentAccountID: accountID}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	// Walking up from the proposed parent lands back on the account itself.
	suite.mockRepo.On("FindAccountByID", ctx, childID).Return(child, nil).Once()

	req := dto.UpdateAccountRequest{ParentAccountID: &childID}
	_, err := suite.service.UpdateAccount(ctx, accountID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByMovements() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("HasActiveChildren", ctx, accountID).Return(false, nil).Once()
	suite.mockRepo.On("CountMovements", ctx, accountID).Return(3, nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID, "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// The message carries the exact movement count.
	suite.Contains(err.Error(), "3 transaction(s)")
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ReassignsThenDeletes() {
	ctx := context.Background()
	accountID := "acc-old"
	targetID := "acc-new"
	memberID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockRepo.On("HasActiveChildren", ctx, accountID).Return(false, nil).Once()
	suite.mockRepo.On("CountMovements", ctx, accountID).Return(5, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, targetID).Return(&domain.Account{AccountID: targetID}, nil).Once()
	suite.mockRepo.On("ReassignMovements", ctx, accountID, targetID, memberID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID, targetID, memberID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByActiveChildren() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockRepo.On("HasActiveChildren", ctx, accountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID, "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountMovements", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NoMovementsDeletesDirectly() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockRepo.On("HasActiveChildren", ctx, accountID).Return(false, nil).Once()
	suite.mockRepo.On("CountMovements", ctx, accountID).Return(0, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID, "", uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReassignMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSetupStandardChart_SkipsExisting() {
	ctx := context.Background()
	memberID := uuid.NewString()

	// First catalog number already exists; every other one is created.
	first := services.StandardChart[0]
	suite.mockRepo.On("FindAccountByNumber", ctx, first.Number).
		Return(&domain.Account{AccountNumber: first.Number}, nil).Once()
	suite.mockRepo.On("FindAccountByNumber", ctx, mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	created, skipped, err := suite.service.SetupStandardChart(ctx, memberID)

	suite.Require().NoError(err)
	suite.Equal(1, skipped)
	suite.Equal(len(services.StandardChart)-1, created)
}

func (suite *AccountServiceTestSuite) TestSetupStandardChart_ToleratesConcurrentDuplicate() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByNumber", ctx, mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound)
	// Another setup won the race on every insert.
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate)

	created, skipped, err := suite.service.SetupStandardChart(ctx, uuid.NewString())

	suite.Require().NoError(err)
	suite.Zero(created)
	suite.Equal(len(services.StandardChart), skipped)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_PassesFilter() {
	ctx := context.Background()
	expected := []domain.Account{{AccountID: uuid.NewString(), Name: "Cash"}}

	suite.mockRepo.On("ListAccounts", ctx, mock.Anything).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{AccountType: "ASSET"})

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{AccountNumber: "1000", Name: "Cash", AccountType: domain.Asset}

	suite.mockRepo.On("FindAccountByNumber", ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(assert.AnError).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, assert.AnError)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
