package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/dto"
)

var voucherExportHeader = []string{
	"VoucherNumber", "Type", "Date", "Status", "PaymentMethod",
	"ReferenceNumber", "AccountID", "Description", "Amount", "ReversalOf",
}

// ExportVouchers writes matching vouchers as CSV. Amount is the persisted
// value; it is never recomputed from lines here.
func (s *voucherService) ExportVouchers(ctx context.Context, w io.Writer, params dto.ExportVouchersParams) error {
	filter := domain.VoucherFilter{From: params.From, To: params.To}
	if params.Type != "" {
		t := params.Type
		filter.Type = &t
	}
	if params.Status != "" {
		st := params.Status
		filter.Status = &st
	}

	vouchers, err := s.voucherRepo.ListVouchersForExport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load vouchers for export")
		return fmt.Errorf("failed to get vouchers: %w", err)
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(voucherExportHeader); err != nil {
		return fmt.Errorf("failed to write header to CSV: %w", err)
	}
	for _, v := range vouchers {
		reversalOf := ""
		if v.ReversalOfID != nil {
			reversalOf = *v.ReversalOfID
		}
		row := []string{
			v.VoucherNumber,
			string(v.Type),
			v.Date.Format("2006-01-02"),
			string(v.Status),
			string(v.PaymentMethod),
			v.ReferenceNumber,
			v.AccountID,
			v.Description,
			v.Amount.String(),
			reversalOf,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row to CSV: %w", err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.LogDebug(ctx, "Vouchers exported", slog.Int("count", len(vouchers)))
	return nil
}
