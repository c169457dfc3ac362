package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/core/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "111201",
		Name:        "Main Bank",
		AccountType: domain.Asset,
		Level:       5,
		Category:    domain.CategoryPosting,
		Role:        domain.RoleBank,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(req.Code, account.Code)
	suite.Equal(domain.RoleBank, account.Role)
	suite.True(account.IsPostable)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())
	suite.Equal("admin", account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ControlIsNotPostable() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "11",
		Name:        "Current Assets",
		AccountType: domain.Asset,
		Level:       2,
		Category:    domain.CategoryControl,
	}
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.False(account.IsPostable)
	suite.False(account.CanReceiveLines())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RoleRequiresAsset() {
	req := dto.CreateAccountRequest{
		Code:        "2101",
		Name:        "Payables",
		AccountType: domain.Liability,
		Category:    domain.CategoryPosting,
		Role:        domain.RoleCash,
	}

	_, err := suite.service.CreateAccount(context.Background(), req, "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "111201", Name: "Dup", AccountType: domain.Asset, Category: domain.CategoryPosting}
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, req, "admin")

	suite.Nil(account)
	suite.True(errors.Is(err, apperrors.ErrDuplicate))
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, "missing")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultsAndEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, 100, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 0, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestGetAccountByIDs() {
	ctx := context.Background()
	ids := []string{"bank", "rent"}
	suite.mockRepo.On("FindAccountsByIDs", ctx, ids).Return(fixtureAccounts(), nil).Once()

	accounts, err := suite.service.GetAccountByIDs(ctx, ids)

	suite.Require().NoError(err)
	suite.Contains(accounts, "bank")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
