package services

import (
	"context"
	"io"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/dto"
)

// VoucherReaderSvc defines read operations for vouchers. Reads never mutate
// amount, status or lines.
type VoucherReaderSvc interface {
	// GetVoucher retrieves a voucher with its full line set.
	GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a page of voucher headers.
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines operations that create or replace voucher content
type VoucherWriterSvc interface {
	// CreateVoucher validates, generates the system line, computes the amount and persists a draft.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error)

	// UpdateVoucher replaces the header and full line set of a draft voucher.
	UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)

	// ReverseVoucher creates a draft journal voucher negating a posted voucher.
	ReverseVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)
}

// VoucherLifecycleSvc defines the status transitions
type VoucherLifecycleSvc interface {
	// SubmitVoucher moves a draft to SUBMITTED after re-validating it.
	SubmitVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)

	// ApproveVoucher moves a submitted voucher to APPROVED.
	ApproveVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)

	// PostVoucher applies an approved voucher to account balances and freezes it.
	PostVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)
}

// VoucherExportSvc defines export operations
type VoucherExportSvc interface {
	// ExportVouchers writes matching vouchers as CSV, echoing the persisted amount.
	ExportVouchers(ctx context.Context, w io.Writer, params dto.ExportVouchersParams) error
}

// VoucherSvcFacade combines all voucher-related service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
	VoucherLifecycleSvc
	VoucherExportSvc
}
