package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Tokens travel in query strings, so the URL alphabet is used.
var encoding = base64.RawURLEncoding

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	return encoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := encoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeVoucherToken creates the cursor of a voucher listing ordered by
// voucher date, creation time and ID.
func EncodeVoucherToken(voucherDate, createdAt time.Time, voucherID string) string {
	return EncodeMultiFieldToken(voucherDate.Format(timeFormat), createdAt.Format(timeFormat), voucherID)
}

// DecodeVoucherToken parses a token made by EncodeVoucherToken.
func DecodeVoucherToken(token string) (time.Time, time.Time, string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	voucherDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (voucher date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return voucherDate, createdAt, parts[2], nil
}

// EncodeLedgerToken creates the cursor of an account ledger ordered by
// posting time, voucher and line number.
func EncodeLedgerToken(postedAt time.Time, voucherID string, lineNo int) string {
	return EncodeMultiFieldToken(postedAt.Format(timeFormat), voucherID, strconv.Itoa(lineNo))
}

// DecodeLedgerToken parses a token made by EncodeLedgerToken.
func DecodeLedgerToken(token string) (time.Time, string, int, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, "", 0, err
	}
	if len(parts) != 3 {
		return time.Time{}, "", 0, fmt.Errorf("invalid pagination token format (split)")
	}

	postedAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", 0, fmt.Errorf("invalid pagination token format (posted_at parse): %w", err)
	}
	lineNo, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, "", 0, fmt.Errorf("invalid pagination token format (line number parse): %w", err)
	}
	return postedAt, parts[1], lineNo, nil
}
