package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// MockVoucherRepository is a mock type for the VoucherRepositoryFacade interface
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindReversalOf(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Voucher), next, args.Error(2)
}

func (m *MockVoucherRepository) ListVouchersForExport(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) CreateVoucher(ctx context.Context, voucher domain.Voucher) (string, error) {
	args := m.Called(ctx, voucher)
	return args.String(0), args.Error(1)
}

func (m *MockVoucherRepository) ReplaceVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, from, to domain.VoucherStatus, userID string, now time.Time) error {
	args := m.Called(ctx, voucherID, from, to, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) PostVoucher(ctx context.Context, voucher domain.Voucher, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) (*domain.Voucher, error) {
	args := m.Called(ctx, voucher, balanceChanges, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListLedgerEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}

// --- Fixtures ---

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func postingAccount(id string, accountType domain.AccountType, role domain.AccountRole) domain.Account {
	return domain.Account{
		AccountID:   id,
		Code:        id,
		Name:        id,
		AccountType: accountType,
		Level:       5,
		Category:    domain.CategoryPosting,
		IsPostable:  true,
		IsActive:    true,
		Role:        role,
	}
}

// fixtureAccounts is a small chart of accounts keyed by ID.
func fixtureAccounts() map[string]domain.Account {
	accounts := map[string]domain.Account{
		"bank":      postingAccount("bank", domain.Asset, domain.RoleBank),
		"cash":      postingAccount("cash", domain.Asset, domain.RoleCash),
		"rent":      postingAccount("rent", domain.Expense, domain.RoleNone),
		"utilities": postingAccount("utilities", domain.Expense, domain.RoleNone),
		"sales":     postingAccount("sales", domain.Revenue, domain.RoleNone),
		"capital":   postingAccount("capital", domain.Equity, domain.RoleNone),
		"payable":   postingAccount("payable", domain.Liability, domain.RoleNone),
	}
	control := postingAccount("control", domain.Asset, domain.RoleNone)
	control.Category = domain.CategoryControl
	control.IsPostable = false
	accounts["control"] = control

	inactive := postingAccount("inactive", domain.Expense, domain.RoleNone)
	inactive.IsActive = false
	accounts["inactive"] = inactive
	return accounts
}

var voucherDate = time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)

func debitLine(accountID, amount string) domain.VoucherLine {
	return domain.VoucherLine{AccountID: accountID, Debit: d(amount), Credit: decimal.Zero, Origin: domain.OriginManual}
}

func creditLine(accountID, amount string) domain.VoucherLine {
	return domain.VoucherLine{AccountID: accountID, Debit: decimal.Zero, Credit: d(amount), Origin: domain.OriginManual}
}
