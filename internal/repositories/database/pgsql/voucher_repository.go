package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	"github.com/SscSPs/voucher_engine/internal/models"
	"github.com/SscSPs/voucher_engine/internal/utils/accounting"
	"github.com/SscSPs/voucher_engine/internal/utils/mapping"
	"github.com/SscSPs/voucher_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const reversalConstraint = "uq_vouchers_reversal_of"

type PgxVoucherRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxVoucherRepository creates a new repository for vouchers and their lines.
func newPgxVoucherRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxVoucherRepository {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

func scanVoucher(row rowScanner) (models.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.VoucherNumber,
		&m.VoucherType,
		&m.VoucherDate,
		&m.PaymentMethod,
		&m.ReferenceNumber,
		&m.AccountID,
		&m.Description,
		&m.Amount,
		&m.Status,
		&m.Attachments,
		&m.ReversalOfID,
		&m.SubmittedBy,
		&m.SubmittedAt,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row rowScanner) (models.VoucherLine, error) {
	var m models.VoucherLine
	err := row.Scan(
		&m.LineID,
		&m.VoucherID,
		&m.LineNo,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.IsSystemGenerated,
		&m.Origin,
		&m.RunningBalance,
	)
	return m, err
}

// nextVoucherNumber allocates the next number of the voucher's type and month.
// The upsert holds the sequence row lock until tx ends, so numbers are never reused.
func nextVoucherNumber(ctx context.Context, tx pgx.Tx, voucherType domain.VoucherType, date time.Time) (string, error) {
	query := `
		INSERT INTO voucher_sequences (voucher_type, period, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (voucher_type, period) DO UPDATE SET last_value = voucher_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, string(voucherType), domain.VoucherPeriod(date)).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate voucher number for %s: %w", voucherType, err)
	}
	return domain.FormatVoucherNumber(voucherType, date, seq), nil
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.VoucherLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `INSERT INTO voucher_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelVoucherLine(line)
		batch.Queue(query,
			m.LineID,
			m.VoucherID,
			m.LineNo,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.IsSystemGenerated,
			m.Origin,
			m.RunningBalance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for _, line := range lines {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert voucher line %d: %w", line.LineNo, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close voucher line batch: %w", err)
	}
	return batchErr
}

// CreateVoucher numbers and saves a voucher with its lines in a single transaction.
func (r *PgxVoucherRepository) CreateVoucher(ctx context.Context, voucher domain.Voucher) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback voucher creation", "voucher_id", voucher.VoucherID, "error", rbErr)
		}
	}()

	number, err := nextVoucherNumber(ctx, tx, voucher.Type, voucher.Date)
	if err != nil {
		return "", err
	}
	voucher.VoucherNumber = number
	m := mapping.ToModelVoucher(voucher)

	query := `INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);`
	_, err = tx.Exec(ctx, query,
		m.VoucherID,
		m.VoucherNumber,
		m.VoucherType,
		m.VoucherDate,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.AccountID,
		m.Description,
		m.Amount,
		m.Status,
		m.Attachments,
		m.ReversalOfID,
		m.SubmittedBy,
		m.SubmittedAt,
		m.ApprovedBy,
		m.ApprovedAt,
		m.PostedBy,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == reversalConstraint {
				return "", fmt.Errorf("%w: voucher %s already has a reversal", apperrors.ErrDuplicate, *m.ReversalOfID)
			}
			return "", fmt.Errorf("%w: voucher %s", apperrors.ErrDuplicate, m.VoucherNumber)
		}
		return "", fmt.Errorf("failed to insert voucher %s: %w", m.VoucherID, err)
	}

	if err := insertLines(ctx, tx, voucher.Lines); err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return number, nil
}

// lockVoucherStatus reads the stored status of a voucher and locks its row.
func lockVoucherStatus(ctx context.Context, tx pgx.Tx, voucherID string) (domain.VoucherStatus, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM vouchers WHERE voucher_id = $1 FOR UPDATE;`, voucherID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock voucher %s: %w", voucherID, err)
	}
	return domain.VoucherStatus(status), nil
}

// ReplaceVoucher overwrites the header and the full line set of a draft voucher.
// The stored status is checked under a row lock so a concurrent submit wins cleanly.
func (r *PgxVoucherRepository) ReplaceVoucher(ctx context.Context, voucher domain.Voucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback voucher replacement", "voucher_id", voucher.VoucherID, "error", rbErr)
		}
	}()

	status, err := lockVoucherStatus(ctx, tx, voucher.VoucherID)
	if err != nil {
		return err
	}
	if err := status.EnsureEditable(); err != nil {
		return err
	}

	m := mapping.ToModelVoucher(voucher)
	query := `
		UPDATE vouchers
		SET voucher_date = $2, payment_method = $3, reference_number = $4, account_id = $5,
			description = $6, amount = $7, attachments = $8, last_updated_at = $9, last_updated_by = $10
		WHERE voucher_id = $1;
	`
	if _, err := tx.Exec(ctx, query,
		m.VoucherID,
		m.VoucherDate,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.AccountID,
		m.Description,
		m.Amount,
		m.Attachments,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to update voucher %s: %w", m.VoucherID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM voucher_lines WHERE voucher_id = $1;`, m.VoucherID); err != nil {
		return fmt.Errorf("failed to delete lines of voucher %s: %w", m.VoucherID, err)
	}
	if err := insertLines(ctx, tx, voucher.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateVoucherStatus performs a compare-and-set on the voucher status and
// records who made the change.
func (r *PgxVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, from, to domain.VoucherStatus, userID string, now time.Time) error {
	column, ok := statusActorColumn(to)
	if !ok {
		return fmt.Errorf("%w: status %s cannot be set directly", apperrors.ErrInternal, to)
	}

	query := `
		UPDATE vouchers
		SET status = $3, ` + column + `_by = $4, ` + column + `_at = $5, last_updated_at = $5, last_updated_by = $4
		WHERE voucher_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, voucherID, string(from), string(to), userID, now)
	if err != nil {
		return fmt.Errorf("failed to update status of voucher %s: %w", voucherID, err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = r.Pool.QueryRow(ctx, `SELECT status FROM vouchers WHERE voucher_id = $1;`, voucherID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read status of voucher %s: %w", voucherID, err)
	}
	return fmt.Errorf("%w: voucher %s is %s, expected %s", domain.ErrInvalidTransition, voucherID, current, from)
}

// PostVoucher applies the balance changes of an approved voucher, stamps every
// line with the running balance of its account and marks the voucher POSTED.
func (r *PgxVoucherRepository) PostVoucher(ctx context.Context, voucher domain.Voucher, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) (*domain.Voucher, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback voucher posting", "voucher_id", voucher.VoucherID, "error", rbErr)
		}
	}()

	status, err := lockVoucherStatus(ctx, tx, voucher.VoucherID)
	if err != nil {
		return nil, err
	}
	if _, err := status.Transition(domain.ActionPost); err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(voucher.Lines))
	seen := make(map[string]bool)
	for _, line := range voucher.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	sort.Strings(accountIDs)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	lines, err := accounting.ApplyRunningBalances(voucher.Lines, locked)
	if err != nil {
		return nil, err
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`UPDATE voucher_lines SET running_balance = $2 WHERE line_id = $1;`, line.LineID, line.RunningBalance)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for _, line := range lines {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to record running balance of line %d: %w", line.LineNo, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close running balance batch: %w", err)
	}
	if batchErr != nil {
		return nil, batchErr
	}

	query := `
		UPDATE vouchers
		SET status = $2, posted_by = $3, posted_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE voucher_id = $1;
	`
	if _, err := tx.Exec(ctx, query, voucher.VoucherID, string(domain.StatusPosted), userID, now); err != nil {
		return nil, fmt.Errorf("failed to mark voucher %s posted: %w", voucher.VoucherID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	posted := voucher
	posted.Lines = lines
	posted.Status = domain.StatusPosted
	posted.PostedBy = &userID
	posted.PostedAt = &now
	posted.LastUpdatedBy = userID
	posted.LastUpdatedAt = now
	return &posted, nil
}

func (r *PgxVoucherRepository) findLines(ctx context.Context, voucherID string) ([]models.VoucherLine, error) {
	query := `SELECT ` + lineColumns + ` FROM voucher_lines WHERE voucher_id = $1 ORDER BY line_no;`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	var lines []models.VoucherLine
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher line row: %w", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher line rows: %w", err)
	}
	return lines, nil
}

func (r *PgxVoucherRepository) findVoucher(ctx context.Context, where string, arg any) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE ` + where + ` = $1;`
	m, err := scanVoucher(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by %s: %w", where, err)
	}

	lines, err := r.findLines(ctx, m.VoucherID)
	if err != nil {
		return nil, err
	}
	v := mapping.ToDomainVoucher(m, lines)
	return &v, nil
}

// FindVoucherByID retrieves a voucher with its lines ordered by line number.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return r.findVoucher(ctx, "voucher_id", voucherID)
}

// FindReversalOf retrieves the voucher that reverses voucherID.
func (r *PgxVoucherRepository) FindReversalOf(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return r.findVoucher(ctx, "reversal_of_id", voucherID)
}

func (r *PgxVoucherRepository) queryHeaders(ctx context.Context, query string, args []any) ([]models.Voucher, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vouchers", err)
	}
	defer rows.Close()

	var headers []models.Voucher
	for rows.Next() {
		m, err := scanVoucher(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}
	return headers, nil
}

// ListVouchers retrieves a page of voucher headers, newest first.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	var cursor *voucherCursor
	if nextToken != nil && *nextToken != "" {
		voucherDate, createdAt, voucherID, decodeErr := pagination.DecodeVoucherToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		cursor = &voucherCursor{voucherDate: voucherDate, createdAt: createdAt, voucherID: voucherID}
	}

	query, args := voucherListQuery(filter, cursor, fetchLimit)
	headers, err := r.queryHeaders(ctx, query, args)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeVoucherToken(last.VoucherDate, last.CreatedAt, last.VoucherID)
		nextTokenVal = &token
		headers = headers[:limit]
	}

	vouchers := make([]domain.Voucher, len(headers))
	for i, m := range headers {
		vouchers[i] = mapping.ToDomainVoucher(m, nil)
	}
	return vouchers, nextTokenVal, nil
}

// ListVouchersForExport retrieves every matching voucher header in date and number order.
func (r *PgxVoucherRepository) ListVouchersForExport(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, error) {
	query, args := voucherExportQuery(filter)
	headers, err := r.queryHeaders(ctx, query, args)
	if err != nil {
		return nil, err
	}

	vouchers := make([]domain.Voucher, len(headers))
	for i, m := range headers {
		vouchers[i] = mapping.ToDomainVoucher(m, nil)
	}
	return vouchers, nil
}

// ListLedgerEntries retrieves the posted lines of an account, most recent posting first.
func (r *PgxVoucherRepository) ListLedgerEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	var cursor *ledgerCursor
	if nextToken != nil && *nextToken != "" {
		postedAt, voucherID, lineNo, decodeErr := pagination.DecodeLedgerToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		cursor = &ledgerCursor{postedAt: postedAt, voucherID: voucherID, lineNo: lineNo}
	}

	query, args := ledgerQuery(accountID, cursor, fetchLimit)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		scanErr := rows.Scan(
			&m.LineID,
			&m.VoucherID,
			&m.LineNo,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.IsSystemGenerated,
			&m.Origin,
			&m.RunningBalance,
			&m.VoucherNumber,
			&m.VoucherType,
			&m.VoucherDate,
			&m.PostedAt,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, scanErr)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeLedgerToken(last.PostedAt, last.VoucherID, last.LineNo)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	result := make([]domain.LedgerEntry, len(entries))
	for i, m := range entries {
		result[i] = mapping.ToDomainLedgerEntry(m)
	}
	return result, nextTokenVal, nil
}
