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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockMovementRepo *MockMovementRepository
	service          *services.TransactionService
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewTransactionService(suite.mockAccountRepo, suite.mockMovementRepo)
}

func (suite *TransactionServiceTestSuite) request() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		AccountID:   "acc-cash",
		Amount:      decimal.NewFromInt(120),
		Type:        "INCOME",
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Description: "Raffle takings",
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	memberID := uuid.NewString()
	req := suite.request()

	account := &domain.Account{AccountID: "acc-cash", AccountType: domain.Asset, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-cash").Return(account, nil).Once()
	suite.mockMovementRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, memberID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.TxnIncome, txn.Type)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(120)))
	suite.Equal(memberID, txn.CreatedBy)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	req := suite.request()
	req.Amount = decimal.Zero

	_, err := suite.service.CreateTransaction(context.Background(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsUnknownAccount() {
	ctx := context.Background()
	req := suite.request()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-cash").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsInactiveAccount() {
	ctx := context.Background()
	req := suite.request()

	account := &domain.Account{AccountID: "acc-cash", AccountType: domain.Asset, IsActive: false}
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-cash").Return(account, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
