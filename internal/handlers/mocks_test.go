package handlers_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/SscSPs/voucher_engine/internal/handlers"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/SscSPs/voucher_engine/internal/platform/config"
	"github.com/SscSPs/voucher_engine/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/ulule/limiter/v3"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) voucherResult(args mock.Arguments) (*domain.Voucher, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID))
}

func (m *MockVoucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}

func (m *MockVoucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, req, userID))
}

func (m *MockVoucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, req, userID))
}

func (m *MockVoucherService) ReverseVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, userID))
}

func (m *MockVoucherService) SubmitVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, userID))
}

func (m *MockVoucherService) ApproveVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, userID))
}

func (m *MockVoucherService) PostVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, userID))
}

func (m *MockVoucherService) ExportVouchers(ctx context.Context, w io.Writer, params dto.ExportVouchersParams) error {
	args := m.Called(ctx, w, params)
	if out, ok := args.Get(0).(string); ok && out != "" {
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return args.Error(1)
}

var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetAccountLedger(ctx context.Context, accountID string, params dto.ListLedgerParams) (*dto.LedgerResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LedgerResponse), args.Error(1)
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

const testUserID = "user-1"

// testServer wires the real routes to mocked services.
type testServer struct {
	router   *gin.Engine
	accounts *MockAccountService
	vouchers *MockVoucherService
	ledger   *MockLedgerService
	registry *prometheus.Registry
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)

	s := &testServer{
		router:   gin.New(),
		accounts: new(MockAccountService),
		vouchers: new(MockVoucherService),
		ledger:   new(MockLedgerService),
		registry: prometheus.NewRegistry(),
	}
	cfg := &config.Config{
		RateLimit:          limiter.Rate{Period: time.Minute, Limit: 1000},
		CORSAllowedOrigins: []string{"*"},
	}
	services := &portssvc.ServiceContainer{Account: s.accounts, Voucher: s.vouchers, Ledger: s.ledger}

	handlers.RegisterRoutes(s.router, cfg, services, metrics.NewMetricsWithRegistry(s.registry), s.registry)
	return s
}

// do sends a request as testUserID unless asUser is empty.
func (s *testServer) do(method, url, body, asUser string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set(middleware.ActorHeader, asUser)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) assertExpectations(t mock.TestingT) {
	s.accounts.AssertExpectations(t)
	s.vouchers.AssertExpectations(t)
	s.ledger.AssertExpectations(t)
}

