package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SystemLineTag prefixes the description of generated lines. It is display
// only; IsSystemGenerated is the authoritative signal.
const SystemLineTag = "[SYSTEM]"

// LineOrigin records which rule produced a voucher line.
type LineOrigin string

const (
	OriginManual       LineOrigin = "MANUAL"
	OriginCounterEntry LineOrigin = "COUNTER_ENTRY"
	OriginReversal     LineOrigin = "REVERSAL"
)

// PaymentMethod is how a payment or receipt was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentCheque   PaymentMethod = "Cheque"
	PaymentTransfer PaymentMethod = "Transfer"
	PaymentOnline   PaymentMethod = "Online"
)

// RequiresReference reports whether the method implies a traceable instrument
// whose reference number must be captured.
func (m PaymentMethod) RequiresReference() bool {
	switch strings.ToLower(strings.TrimSpace(string(m))) {
	case "cheque", "check", "transfer", "bank transfer", "online":
		return true
	}
	return false
}

// VoucherLine is a single debit or credit against one account.
type VoucherLine struct {
	LineID            string          `json:"lineID"`
	VoucherID         string          `json:"voucherID"`
	LineNo            int             `json:"lineNo"`
	AccountID         string          `json:"accountID"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	Description       string          `json:"description"`
	IsSystemGenerated bool            `json:"isSystemGenerated"`
	Origin            LineOrigin      `json:"origin"`
	RunningBalance    decimal.Decimal `json:"runningBalance"` // Account balance after this line; set when posted
}

// Attachment references a document stored elsewhere.
type Attachment struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

// Voucher is the header of a double-entry voucher together with its lines.
type Voucher struct {
	VoucherID       string        `json:"voucherID"`
	VoucherNumber   string        `json:"voucherNumber"` // e.g. BPV-202510-0007
	Type            VoucherType   `json:"type"`
	Date            time.Time     `json:"date"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ReferenceNumber string        `json:"referenceNumber"`
	AccountID       string        `json:"accountID"` // Primary bank/cash account; required but unused for JV
	Description     string        `json:"description"`
	// Amount is persisted and only recalculated on a full line-set replacement.
	Amount       decimal.Decimal `json:"amount"`
	Status       VoucherStatus   `json:"status"`
	Lines        []VoucherLine   `json:"lines"`
	Attachments  []Attachment    `json:"attachments"`
	ReversalOfID *string         `json:"reversalOfID"`
	SubmittedBy  *string         `json:"submittedBy"`
	SubmittedAt  *time.Time      `json:"submittedAt"`
	ApprovedBy   *string         `json:"approvedBy"`
	ApprovedAt   *time.Time      `json:"approvedAt"`
	PostedBy     *string         `json:"postedBy"`
	PostedAt     *time.Time      `json:"postedAt"`
	AuditFields
}

// UserLines returns the lines that were not produced by the engine.
func (v Voucher) UserLines() []VoucherLine {
	lines := make([]VoucherLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		if !l.IsSystemGenerated {
			lines = append(lines, l)
		}
	}
	return lines
}

// SystemLines returns generated lines that target the primary account.
func (v Voucher) SystemLines() []VoucherLine {
	var lines []VoucherLine
	for _, l := range v.Lines {
		if l.IsSystemGenerated && l.AccountID == v.AccountID {
			lines = append(lines, l)
		}
	}
	return lines
}

// Totals returns the debit and credit sums over all lines.
func (v Voucher) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range v.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsReversal reports whether v was created to reverse another voucher.
func (v Voucher) IsReversal() bool {
	return v.ReversalOfID != nil && *v.ReversalOfID != ""
}

// CalendarDate keeps the calendar day of t as written, at midnight UTC. It is
// the value stored in the DATE column and used for numbering.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// VoucherPeriod returns the numbering period (YYYYMM) for a voucher date.
func VoucherPeriod(date time.Time) string {
	return date.UTC().Format("200601")
}

// FormatVoucherNumber returns a number like "BPV-202510-0007".
func FormatVoucherNumber(t VoucherType, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", t, VoucherPeriod(date), seq)
}

// VoucherFilter narrows voucher listings and exports.
type VoucherFilter struct {
	Type   *VoucherType
	Status *VoucherStatus
	From   *time.Time
	To     *time.Time
}
