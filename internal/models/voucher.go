package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attachment is stored inside the vouchers.attachments JSONB column.
type Attachment struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

// Voucher is a row of the vouchers table.
type Voucher struct {
	VoucherID       string          `db:"voucher_id"`
	VoucherNumber   string          `db:"voucher_number"`
	VoucherType     string          `db:"voucher_type"`
	VoucherDate     time.Time       `db:"voucher_date"`
	PaymentMethod   string          `db:"payment_method"`
	ReferenceNumber string          `db:"reference_number"`
	AccountID       string          `db:"account_id"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	Status          string          `db:"status"`
	Attachments     []Attachment    `db:"attachments"`
	ReversalOfID    *string         `db:"reversal_of_id"` // Nullable
	SubmittedBy     *string         `db:"submitted_by"`
	SubmittedAt     *time.Time      `db:"submitted_at"`
	ApprovedBy      *string         `db:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at"`
	PostedBy        *string         `db:"posted_by"`
	PostedAt        *time.Time      `db:"posted_at"`
	AuditFields
}

// VoucherLine is a row of the voucher_lines table.
type VoucherLine struct {
	LineID            string              `db:"line_id"`
	VoucherID         string              `db:"voucher_id"`
	LineNo            int                 `db:"line_no"`
	AccountID         string              `db:"account_id"`
	Debit             decimal.Decimal     `db:"debit"`
	Credit            decimal.Decimal     `db:"credit"`
	Description       string              `db:"description"`
	IsSystemGenerated bool                `db:"is_system_generated"`
	Origin            string              `db:"origin"`
	RunningBalance    decimal.NullDecimal `db:"running_balance"` // NULL until posted
}

// LedgerEntry is a posted voucher line joined with its voucher header.
type LedgerEntry struct {
	VoucherLine
	VoucherNumber string    `db:"voucher_number"`
	VoucherType   string    `db:"voucher_type"`
	VoucherDate   time.Time `db:"voucher_date"`
	PostedAt      time.Time `db:"posted_at"`
}
