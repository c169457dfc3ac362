package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherReader defines read operations for vouchers
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header with all of its lines.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// FindReversalOf returns the reversal voucher created for voucherID, or ErrNotFound.
	FindReversalOf(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a page of voucher headers (without lines) using token-based pagination.
	ListVouchers(ctx context.Context, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error)

	// ListVouchersForExport retrieves every voucher header matching filter, ordered by date and number.
	ListVouchersForExport(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for vouchers. Each method is a single
// database transaction covering the header and the full line set.
type VoucherWriter interface {
	// CreateVoucher allocates the next voucher number and persists header and lines.
	// It returns the allocated voucher number.
	CreateVoucher(ctx context.Context, voucher domain.Voucher) (string, error)

	// ReplaceVoucher overwrites header fields and the full line set of a draft voucher.
	ReplaceVoucher(ctx context.Context, voucher domain.Voucher) error

	// UpdateVoucherStatus moves a voucher from one status to another, failing with
	// ErrInvalidTransition if the stored status is no longer `from`.
	UpdateVoucherStatus(ctx context.Context, voucherID string, from, to domain.VoucherStatus, userID string, now time.Time) error

	// PostVoucher applies balanceChanges, records per-line running balances and
	// flips the voucher from APPROVED to POSTED atomically.
	PostVoucher(ctx context.Context, voucher domain.Voucher, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) (*domain.Voucher, error)
}

// LedgerReader defines read operations over posted voucher lines
type LedgerReader interface {
	// ListLedgerEntries retrieves posted lines for an account, newest first, using token-based pagination.
	ListLedgerEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
	LedgerReader
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
