package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a posted voucher line as seen from one account's ledger.
// Generated lines appear exactly like user lines.
type LedgerEntry struct {
	LineID         string          `json:"lineID"`
	VoucherID      string          `json:"voucherID"`
	VoucherNumber  string          `json:"voucherNumber"`
	VoucherType    VoucherType     `json:"voucherType"`
	VoucherDate    time.Time       `json:"voucherDate"`
	AccountID      string          `json:"accountID"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	PostedAt       time.Time       `json:"postedAt"`
}
