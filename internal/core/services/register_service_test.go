package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/clubledger/clubledger/internal/core/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RegisterServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	mockBalanceSvc   *MockBalanceSvc
	service          *services.RegisterService
}

func (suite *RegisterServiceTestSuite) SetupTest() {
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.mockBalanceSvc = new(MockBalanceSvc)
	suite.service = services.NewRegisterService(suite.mockMovementRepo, suite.mockBalanceSvc)
}

func (suite *RegisterServiceTestSuite) params() dto.RegisterParams {
	return dto.RegisterParams{
		DateFrom: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_RunningBalances() {
	ctx := context.Background()

	// One cash account: +500, +200, -50 should fold to 500, 700, 650.
	movements := []domain.Movement{
		{EntryID: "t1", EntryDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), AccountID: "cash", AccountName: "Cash", AccountNumber: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero, Source: domain.SourceTransaction},
		{EntryID: "t2", EntryDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), AccountID: "cash", AccountName: "Cash", AccountNumber: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(200), Credit: decimal.Zero, Source: domain.SourceTransaction},
		{EntryID: "t3", EntryDate: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), AccountID: "cash", AccountName: "Cash", AccountNumber: "1000", AccountType: domain.Asset, Debit: decimal.Zero, Credit: decimal.NewFromInt(50), Source: domain.SourceTransaction},
	}

	suite.mockMovementRepo.On("FetchMovements", ctx, mock.Anything).Return(movements, nil).Once()
	suite.mockBalanceSvc.On("OpeningBalance", ctx, "cash", mock.Anything).Return(decimal.Zero, nil).Once()

	result, err := suite.service.BuildRegister(ctx, suite.params())

	suite.Require().NoError(err)
	suite.Require().Len(result.Rows, 3)
	suite.True(result.Rows[0].RunningBalance.Equal(decimal.NewFromInt(500)))
	suite.True(result.Rows[1].RunningBalance.Equal(decimal.NewFromInt(700)))
	suite.True(result.Rows[2].RunningBalance.Equal(decimal.NewFromInt(650)))
	suite.True(result.TotalDebit.Equal(decimal.NewFromInt(700)))
	suite.True(result.TotalCredit.Equal(decimal.NewFromInt(50)))
	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_SeedsFromOpeningBalance() {
	ctx := context.Background()

	movements := []domain.Movement{
		{EntryID: "t1", EntryDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), AccountID: "dues", AccountType: domain.Income, Debit: decimal.Zero, Credit: decimal.NewFromInt(100), Source: domain.SourceTransaction},
	}

	suite.mockMovementRepo.On("FetchMovements", ctx, mock.Anything).Return(movements, nil).Once()
	suite.mockBalanceSvc.On("OpeningBalance", ctx, "dues", mock.Anything).Return(decimal.NewFromInt(900), nil).Once()

	result, err := suite.service.BuildRegister(ctx, suite.params())

	suite.Require().NoError(err)
	suite.Require().Len(result.Rows, 1)
	suite.True(result.Rows[0].RunningBalance.Equal(decimal.NewFromInt(1000)))
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_Deterministic() {
	ctx := context.Background()

	movements := []domain.Movement{
		{EntryID: "t1", EntryDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), AccountID: "cash", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero, Source: domain.SourceTransaction},
	}

	suite.mockMovementRepo.On("FetchMovements", ctx, mock.Anything).Return(movements, nil).Twice()
	suite.mockBalanceSvc.On("OpeningBalance", ctx, "cash", mock.Anything).Return(decimal.Zero, nil).Twice()

	first, err := suite.service.BuildRegister(ctx, suite.params())
	suite.Require().NoError(err)
	second, err := suite.service.BuildRegister(ctx, suite.params())
	suite.Require().NoError(err)

	suite.Require().Len(second.Rows, len(first.Rows))
	for i := range first.Rows {
		suite.True(first.Rows[i].RunningBalance.Equal(second.Rows[i].RunningBalance))
	}
	suite.True(first.TotalDebit.Equal(second.TotalDebit))
	suite.True(first.TotalCredit.Equal(second.TotalCredit))
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_UnresolvedAccountRows() {
	ctx := context.Background()

	movements := []domain.Movement{
		{EntryID: "t1", EntryDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), AccountID: "", AccountType: "", Debit: decimal.NewFromInt(30), Credit: decimal.Zero, Source: domain.SourceTransaction},
		{EntryID: "t2", EntryDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), AccountID: "cash", AccountType: domain.Asset, Debit: decimal.NewFromInt(10), Credit: decimal.Zero, Source: domain.SourceTransaction},
	}

	suite.mockMovementRepo.On("FetchMovements", ctx, mock.Anything).Return(movements, nil).Once()
	suite.mockBalanceSvc.On("OpeningBalance", ctx, "cash", mock.Anything).Return(decimal.Zero, nil).Once()

	result, err := suite.service.BuildRegister(ctx, suite.params())

	suite.Require().NoError(err)
	suite.True(result.Rows[0].RunningBalance.IsZero(), "orphan rows carry a zero balance")
	suite.True(result.Rows[1].RunningBalance.Equal(decimal.NewFromInt(10)))
	// Orphan amounts still count toward grand totals.
	suite.True(result.TotalDebit.Equal(decimal.NewFromInt(40)))
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_EmptyPlaceholderGroup() {
	ctx := context.Background()

	suite.mockMovementRepo.On("FetchMovements", ctx, mock.Anything).Return([]domain.Movement{}, nil).Once()

	result, err := suite.service.BuildRegister(ctx, suite.params())

	suite.Require().NoError(err)
	suite.Empty(result.Rows)
	suite.Require().Len(result.Groups, 1)
	suite.Equal(domain.AccountType(""), result.Groups[0].Category)
	suite.Zero(result.Groups[0].RowCount)
	suite.True(result.TotalDebit.IsZero())
	suite.True(result.TotalCredit.IsZero())
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_GroupsByCategoryThenAccount() {
	ctx := context.Background()

	movements := []domain.Movement{
		{EntryID: "t1", EntryDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), AccountID: "dues", AccountNumber: "4000", AccountType: domain.Income, Debit: decimal.Zero, Credit: decimal.NewFromInt(100), Source: domain.SourceTransaction},
		{EntryID: "t2", EntryDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), AccountID: "cash", AccountNumber: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(100), Credit: decimal.Zero, Source: domain.SourceTransaction},
		{EntryID: "t3", EntryDate: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), AccountID: "bank", AccountNumber: "1010", AccountType: domain.Asset, Debit: decimal.NewFromInt(20), Credit: decimal.Zero, Source: domain.SourceTransaction},
	}

	suite.mockMovementRepo.On("FetchMovements", ctx, mock.Anything).Return(movements, nil).Once()
	suite.mockBalanceSvc.On("OpeningBalance", ctx, mock.Anything, mock.Anything).Return(decimal.Zero, nil)

	result, err := suite.service.BuildRegister(ctx, suite.params())

	suite.Require().NoError(err)
	suite.Require().Len(result.Groups, 2)
	// Assets sort before income, and accounts sort by number within a group.
	suite.Equal(domain.Asset, result.Groups[0].Category)
	suite.Equal(2, result.Groups[0].RowCount)
	suite.Equal("1000", result.Groups[0].Accounts[0].AccountNumber)
	suite.Equal("1010", result.Groups[0].Accounts[1].AccountNumber)
	suite.Equal(domain.Income, result.Groups[1].Category)
	suite.Equal(1, result.Groups[1].RowCount)
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_RejectsInvertedDates() {
	ctx := context.Background()
	params := dto.RegisterParams{
		DateFrom: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.BuildRegister(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "FetchMovements", mock.Anything, mock.Anything)
}

func (suite *RegisterServiceTestSuite) TestBuildRegister_RejectsBadAmountFilter() {
	ctx := context.Background()
	params := suite.params()
	params.MinAmount = "not-a-number"

	_, err := suite.service.BuildRegister(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestRegisterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegisterServiceTestSuite))
}
