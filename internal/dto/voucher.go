package dto

import (
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherLineRequest is a user-entered line. IsSystemGenerated is accepted only
// so that clients echoing generated lines back are rejected explicitly.
type VoucherLineRequest struct {
	AccountID         string          `json:"accountID"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	Description       string          `json:"description" binding:"max=500"`
	IsSystemGenerated bool            `json:"isSystemGenerated"`
}

// AttachmentRequest references an uploaded document.
type AttachmentRequest struct {
	FileName string `json:"fileName" binding:"required,max=255"`
	URL      string `json:"url" binding:"required,url"`
}

// CreateVoucherRequest defines the data needed to create a draft voucher.
// Required-field rules are enforced by the voucher validator so that they are
// reported with the engine's messages.
type CreateVoucherRequest struct {
	Type            domain.VoucherType   `json:"type"`
	Date            Date                 `json:"date"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"max=50"`
	ReferenceNumber string               `json:"referenceNumber" binding:"max=64"`
	AccountID       string               `json:"accountID"`
	Description     string               `json:"description" binding:"max=1000"`
	Lines           []VoucherLineRequest `json:"lines" binding:"dive"`
	Attachments     []AttachmentRequest  `json:"attachments" binding:"dive"`
}

// UpdateVoucherRequest replaces every editable field and the full line set of a
// draft voucher. The voucher type cannot change.
type UpdateVoucherRequest struct {
	Date            Date                 `json:"date"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"max=50"`
	ReferenceNumber string               `json:"referenceNumber" binding:"max=64"`
	AccountID       string               `json:"accountID"`
	Description     string               `json:"description" binding:"max=1000"`
	Lines           []VoucherLineRequest `json:"lines" binding:"dive"`
	Attachments     []AttachmentRequest  `json:"attachments" binding:"dive"`
}

// ListVouchersParams holds filters and token pagination for voucher listings.
type ListVouchersParams struct {
	Type      domain.VoucherType   `form:"type" binding:"omitempty,vouchertype"`
	Status    domain.VoucherStatus `form:"status" binding:"omitempty,voucherstatus"`
	Limit     int                  `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string              `form:"nextToken"`
}

// ExportVouchersParams holds the filters of a CSV export.
type ExportVouchersParams struct {
	Type   domain.VoucherType   `form:"type" binding:"omitempty,vouchertype"`
	Status domain.VoucherStatus `form:"status" binding:"omitempty,voucherstatus"`
	From   *time.Time           `form:"from" time_format:"2006-01-02"`
	To     *time.Time           `form:"to" time_format:"2006-01-02"`
}

// VoucherLineResponse defines the data returned for a voucher line.
type VoucherLineResponse struct {
	LineID            string            `json:"lineID"`
	LineNo            int               `json:"lineNo"`
	AccountID         string            `json:"accountID"`
	Debit             decimal.Decimal   `json:"debit"`
	Credit            decimal.Decimal   `json:"credit"`
	Description       string            `json:"description"`
	IsSystemGenerated bool              `json:"isSystemGenerated"`
	Origin            domain.LineOrigin `json:"origin"`
	RunningBalance    *decimal.Decimal  `json:"runningBalance,omitempty"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID       string                `json:"voucherID"`
	VoucherNumber   string                `json:"voucherNumber"`
	Type            domain.VoucherType    `json:"type"`
	Date            time.Time             `json:"date"`
	PaymentMethod   domain.PaymentMethod  `json:"paymentMethod,omitempty"`
	ReferenceNumber string                `json:"referenceNumber,omitempty"`
	AccountID       string                `json:"accountID"`
	Description     string                `json:"description"`
	Amount          decimal.Decimal       `json:"amount"`
	Status          domain.VoucherStatus  `json:"status"`
	Lines           []VoucherLineResponse `json:"lines,omitempty"`
	Attachments     []domain.Attachment   `json:"attachments,omitempty"`
	ReversalOfID    *string               `json:"reversalOfID,omitempty"`
	SubmittedBy     *string               `json:"submittedBy,omitempty"`
	SubmittedAt     *time.Time            `json:"submittedAt,omitempty"`
	ApprovedBy      *string               `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time            `json:"approvedAt,omitempty"`
	PostedBy        *string               `json:"postedBy,omitempty"`
	PostedAt        *time.Time            `json:"postedAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy   string                `json:"lastUpdatedBy"`
}

// ListVouchersResponse wraps a page of vouchers.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToVoucherLineResponse converts a domain line. Running balances are only
// meaningful once the voucher is posted.
func ToVoucherLineResponse(l domain.VoucherLine, posted bool) VoucherLineResponse {
	resp := VoucherLineResponse{
		LineID:            l.LineID,
		LineNo:            l.LineNo,
		AccountID:         l.AccountID,
		Debit:             l.Debit,
		Credit:            l.Credit,
		Description:       l.Description,
		IsSystemGenerated: l.IsSystemGenerated,
		Origin:            l.Origin,
	}
	if posted {
		rb := l.RunningBalance
		resp.RunningBalance = &rb
	}
	return resp
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:       v.VoucherID,
		VoucherNumber:   v.VoucherNumber,
		Type:            v.Type,
		Date:            v.Date,
		PaymentMethod:   v.PaymentMethod,
		ReferenceNumber: v.ReferenceNumber,
		AccountID:       v.AccountID,
		Description:     v.Description,
		Amount:          v.Amount,
		Status:          v.Status,
		Attachments:     v.Attachments,
		ReversalOfID:    v.ReversalOfID,
		SubmittedBy:     v.SubmittedBy,
		SubmittedAt:     v.SubmittedAt,
		ApprovedBy:      v.ApprovedBy,
		ApprovedAt:      v.ApprovedAt,
		PostedBy:        v.PostedBy,
		PostedAt:        v.PostedAt,
		CreatedAt:       v.CreatedAt,
		CreatedBy:       v.CreatedBy,
		LastUpdatedAt:   v.LastUpdatedAt,
		LastUpdatedBy:   v.LastUpdatedBy,
	}
	if len(v.Lines) > 0 {
		posted := v.Status == domain.StatusPosted
		resp.Lines = make([]VoucherLineResponse, len(v.Lines))
		for i, l := range v.Lines {
			resp.Lines[i] = ToVoucherLineResponse(l, posted)
		}
	}
	return resp
}

// ToVoucherResponses converts a slice of domain vouchers.
func ToVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	resp := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		resp[i] = ToVoucherResponse(&vouchers[i])
	}
	return resp
}

// ToDomainLines converts request lines into unsaved manual voucher lines.
func ToDomainLines(reqs []VoucherLineRequest) []domain.VoucherLine {
	lines := make([]domain.VoucherLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.VoucherLine{
			LineNo:            i + 1,
			AccountID:         r.AccountID,
			Debit:             r.Debit,
			Credit:            r.Credit,
			Description:       r.Description,
			IsSystemGenerated: r.IsSystemGenerated,
			Origin:            domain.OriginManual,
		}
	}
	return lines
}

// ToDomainAttachments converts attachment references.
func ToDomainAttachments(reqs []AttachmentRequest) []domain.Attachment {
	attachments := make([]domain.Attachment, len(reqs))
	for i, r := range reqs {
		attachments[i] = domain.Attachment{FileName: r.FileName, URL: r.URL}
	}
	return attachments
}
