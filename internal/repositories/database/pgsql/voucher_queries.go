package pgsql

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

const voucherColumns = `voucher_id, voucher_number, voucher_type, voucher_date, payment_method, reference_number,
	account_id, description, amount, status, attachments, reversal_of_id,
	submitted_by, submitted_at, approved_by, approved_at, posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, voucher_id, line_no, account_id, debit, credit, description,
	is_system_generated, origin, running_balance`

// queryBuilder accumulates WHERE conditions with positional arguments.
type queryBuilder struct {
	conditions []string
	args       []any
}

// arg registers a value and returns its placeholder.
func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *queryBuilder) where(condition string) {
	b.conditions = append(b.conditions, condition)
}

// whereClause returns "" or "WHERE c1 AND c2 ...".
func (b *queryBuilder) whereClause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}

// applyVoucherFilter adds the conditions of filter to b.
func applyVoucherFilter(b *queryBuilder, filter domain.VoucherFilter) {
	if filter.Type != nil {
		b.where("voucher_type = " + b.arg(string(*filter.Type)))
	}
	if filter.Status != nil {
		b.where("status = " + b.arg(string(*filter.Status)))
	}
	if filter.From != nil {
		b.where("voucher_date >= " + b.arg(*filter.From))
	}
	if filter.To != nil {
		b.where("voucher_date <= " + b.arg(*filter.To))
	}
}

// voucherListQuery builds the keyset-paginated listing query. The cursor is
// the (voucher_date, created_at, voucher_id) of the last row already returned.
func voucherListQuery(filter domain.VoucherFilter, cursor *voucherCursor, fetchLimit int) (string, []any) {
	b := &queryBuilder{}
	applyVoucherFilter(b, filter)
	if cursor != nil {
		b.where("(voucher_date, created_at, voucher_id) < (" +
			b.arg(cursor.voucherDate) + ", " + b.arg(cursor.createdAt) + ", " + b.arg(cursor.voucherID) + ")")
	}
	query := "SELECT " + voucherColumns + " FROM vouchers " + b.whereClause() +
		" ORDER BY voucher_date DESC, created_at DESC, voucher_id DESC LIMIT " + b.arg(fetchLimit) + ";"
	return query, b.args
}

// voucherExportQuery builds the unpaginated export query in chronological order.
func voucherExportQuery(filter domain.VoucherFilter) (string, []any) {
	b := &queryBuilder{}
	applyVoucherFilter(b, filter)
	query := "SELECT " + voucherColumns + " FROM vouchers " + b.whereClause() +
		" ORDER BY voucher_date, voucher_number;"
	return query, b.args
}

// ledgerQuery builds the query of posted lines for one account, newest first.
func ledgerQuery(accountID string, cursor *ledgerCursor, fetchLimit int) (string, []any) {
	b := &queryBuilder{}
	b.where("l.account_id = " + b.arg(accountID))
	b.where("v.status = " + b.arg(string(domain.StatusPosted)))
	if cursor != nil {
		b.where("(v.posted_at, v.voucher_id, l.line_no) < (" +
			b.arg(cursor.postedAt) + ", " + b.arg(cursor.voucherID) + ", " + b.arg(cursor.lineNo) + ")")
	}
	query := `SELECT l.line_id, l.voucher_id, l.line_no, l.account_id, l.debit, l.credit, l.description,
		l.is_system_generated, l.origin, l.running_balance,
		v.voucher_number, v.voucher_type, v.voucher_date, v.posted_at
		FROM voucher_lines l
		JOIN vouchers v ON v.voucher_id = l.voucher_id ` + b.whereClause() +
		" ORDER BY v.posted_at DESC, v.voucher_id DESC, l.line_no DESC LIMIT " + b.arg(fetchLimit) + ";"
	return query, b.args
}

type voucherCursor struct {
	voucherDate time.Time
	createdAt   time.Time
	voucherID   string
}

type ledgerCursor struct {
	postedAt  time.Time
	voucherID string
	lineNo    int
}

// statusActorColumn returns the column prefix recording who moved a voucher
// into status to. Posting has its own transactional path.
func statusActorColumn(to domain.VoucherStatus) (string, bool) {
	switch to {
	case domain.StatusSubmitted:
		return "submitted", true
	case domain.StatusApproved:
		return "approved", true
	}
	return "", false
}
