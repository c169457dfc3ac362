package mapping

import (
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelVoucher converts the header of a domain Voucher. Lines are mapped separately.
func ToModelVoucher(d domain.Voucher) models.Voucher {
	attachments := make([]models.Attachment, len(d.Attachments))
	for i, a := range d.Attachments {
		attachments[i] = models.Attachment{FileName: a.FileName, URL: a.URL}
	}
	return models.Voucher{
		VoucherID:       d.VoucherID,
		VoucherNumber:   d.VoucherNumber,
		VoucherType:     string(d.Type),
		VoucherDate:     d.Date,
		PaymentMethod:   string(d.PaymentMethod),
		ReferenceNumber: d.ReferenceNumber,
		AccountID:       d.AccountID,
		Description:     d.Description,
		Amount:          d.Amount,
		Status:          string(d.Status),
		Attachments:     attachments,
		ReversalOfID:    d.ReversalOfID,
		SubmittedBy:     d.SubmittedBy,
		SubmittedAt:     d.SubmittedAt,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher and its lines to a domain Voucher.
func ToDomainVoucher(m models.Voucher, lines []models.VoucherLine) domain.Voucher {
	attachments := make([]domain.Attachment, len(m.Attachments))
	for i, a := range m.Attachments {
		attachments[i] = domain.Attachment{FileName: a.FileName, URL: a.URL}
	}
	return domain.Voucher{
		VoucherID:       m.VoucherID,
		VoucherNumber:   m.VoucherNumber,
		Type:            domain.VoucherType(m.VoucherType),
		Date:            m.VoucherDate,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		ReferenceNumber: m.ReferenceNumber,
		AccountID:       m.AccountID,
		Description:     m.Description,
		Amount:          m.Amount,
		Status:          domain.VoucherStatus(m.Status),
		Lines:           ToDomainVoucherLines(lines),
		Attachments:     attachments,
		ReversalOfID:    m.ReversalOfID,
		SubmittedBy:     m.SubmittedBy,
		SubmittedAt:     m.SubmittedAt,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVoucherLine converts a domain VoucherLine. Running balances are
// written only by posting, so a draft line maps to NULL.
func ToModelVoucherLine(d domain.VoucherLine) models.VoucherLine {
	return models.VoucherLine{
		LineID:            d.LineID,
		VoucherID:         d.VoucherID,
		LineNo:            d.LineNo,
		AccountID:         d.AccountID,
		Debit:             d.Debit,
		Credit:            d.Credit,
		Description:       d.Description,
		IsSystemGenerated: d.IsSystemGenerated,
		Origin:            string(d.Origin),
	}
}

// ToDomainVoucherLine converts a model VoucherLine to a domain VoucherLine
func ToDomainVoucherLine(m models.VoucherLine) domain.VoucherLine {
	running := decimal.Zero
	if m.RunningBalance.Valid {
		running = m.RunningBalance.Decimal
	}
	return domain.VoucherLine{
		LineID:            m.LineID,
		VoucherID:         m.VoucherID,
		LineNo:            m.LineNo,
		AccountID:         m.AccountID,
		Debit:             m.Debit,
		Credit:            m.Credit,
		Description:       m.Description,
		IsSystemGenerated: m.IsSystemGenerated,
		Origin:            domain.LineOrigin(m.Origin),
		RunningBalance:    running,
	}
}

// ToDomainVoucherLines converts a slice of model lines
func ToDomainVoucherLines(ms []models.VoucherLine) []domain.VoucherLine {
	ds := make([]domain.VoucherLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucherLine(m)
	}
	return ds
}

// ToDomainLedgerEntry converts a joined ledger row
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	line := ToDomainVoucherLine(m.VoucherLine)
	return domain.LedgerEntry{
		LineID:         line.LineID,
		VoucherID:      line.VoucherID,
		VoucherNumber:  m.VoucherNumber,
		VoucherType:    domain.VoucherType(m.VoucherType),
		VoucherDate:    m.VoucherDate,
		AccountID:      line.AccountID,
		Description:    line.Description,
		Debit:          line.Debit,
		Credit:         line.Credit,
		RunningBalance: line.RunningBalance,
		PostedAt:       m.PostedAt,
	}
}
