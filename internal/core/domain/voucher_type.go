package domain

// VoucherType is one of the five supported voucher kinds.
type VoucherType string

const (
	BankPayment  VoucherType = "BPV"
	CashPayment  VoucherType = "CPV"
	BankReceipt  VoucherType = "BRV"
	CashReceipt  VoucherType = "CRV"
	JournalEntry VoucherType = "JV"
)

// Side is the debit or credit side of a line.
type Side string

const (
	SideNone   Side = ""
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
	SideBoth   Side = "BOTH"
)

// BalanceMode says how a voucher type reaches debit/credit equality.
type BalanceMode string

const (
	// BalanceByCounterEntry types are balanced by the generated system line.
	BalanceByCounterEntry BalanceMode = "COUNTER_ENTRY"
	// BalanceByUserLines types must be balanced by the submitted lines alone.
	BalanceByUserLines BalanceMode = "USER_LINES"
)

// VoucherTypeRule is one row of the voucher type rule table.
type VoucherTypeRule struct {
	Type            VoucherType
	Name            string
	ManualSide      Side        // Sides allowed on user-submitted lines
	SystemSide      Side        // Side of the generated counter-entry, SideNone for JV
	SystemRole      AccountRole // Role the primary account must carry
	BalanceMode     BalanceMode
	RequiresPayment bool // paymentMethod is a required header field
	MinManualLines  int
}

var voucherTypeRules = map[VoucherType]VoucherTypeRule{
	BankPayment: {
		Type: BankPayment, Name: "Bank Payment Voucher",
		ManualSide: SideDebit, SystemSide: SideCredit, SystemRole: RoleBank,
		BalanceMode: BalanceByCounterEntry, RequiresPayment: true, MinManualLines: 1,
	},
	CashPayment: {
		Type: CashPayment, Name: "Cash Payment Voucher",
		ManualSide: SideDebit, SystemSide: SideCredit, SystemRole: RoleCash,
		BalanceMode: BalanceByCounterEntry, RequiresPayment: true, MinManualLines: 1,
	},
	BankReceipt: {
		Type: BankReceipt, Name: "Bank Receipt Voucher",
		ManualSide: SideCredit, SystemSide: SideDebit, SystemRole: RoleBank,
		BalanceMode: BalanceByCounterEntry, RequiresPayment: true, MinManualLines: 1,
	},
	CashReceipt: {
		Type: CashReceipt, Name: "Cash Receipt Voucher",
		ManualSide: SideCredit, SystemSide: SideDebit, SystemRole: RoleCash,
		BalanceMode: BalanceByCounterEntry, RequiresPayment: true, MinManualLines: 1,
	},
	JournalEntry: {
		Type: JournalEntry, Name: "Journal Voucher",
		ManualSide: SideBoth, SystemSide: SideNone, SystemRole: RoleNone,
		BalanceMode: BalanceByUserLines, RequiresPayment: false, MinManualLines: 2,
	},
}

// RuleFor returns the rule table row for t.
func RuleFor(t VoucherType) (VoucherTypeRule, bool) {
	rule, ok := voucherTypeRules[t]
	return rule, ok
}

// IsValid reports whether t is a known voucher type.
func (t VoucherType) IsValid() bool {
	_, ok := voucherTypeRules[t]
	return ok
}

// HasSystemLine reports whether vouchers of type t carry a generated counter-entry.
func (t VoucherType) HasSystemLine() bool {
	rule, ok := voucherTypeRules[t]
	return ok && rule.SystemSide != SideNone
}

// VoucherTypes lists the supported types in a stable order.
func VoucherTypes() []VoucherType {
	return []VoucherType{BankPayment, CashPayment, BankReceipt, CashReceipt, JournalEntry}
}
