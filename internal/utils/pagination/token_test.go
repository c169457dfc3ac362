package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeVoucherToken(t *testing.T) {
	voucherDate := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 10, 12, 14, 30, 45, 123456789, time.UTC)

	token := EncodeVoucherToken(voucherDate, createdAt, "8c1f0e9a-voucher")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.NotContains(t, token, "=")

	decodedDate, decodedCreatedAt, id, err := DecodeVoucherToken(token)
	require.NoError(t, err)
	assert.Equal(t, voucherDate, decodedDate)
	assert.Equal(t, createdAt, decodedCreatedAt)
	assert.Equal(t, "8c1f0e9a-voucher", id)

	// Zero time values
	zero := time.Time{}
	decodedZeroDate, decodedZeroTime, _, err := DecodeVoucherToken(EncodeVoucherToken(zero, zero, ""))
	require.NoError(t, err)
	assert.Equal(t, zero, decodedZeroDate)
	assert.Equal(t, zero, decodedZeroTime)
}

func TestDecodeVoucherTokenError(t *testing.T) {
	_, _, _, err := DecodeVoucherToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, _, err = DecodeVoucherToken(EncodeMultiFieldToken("2025-10-12T00:00:00Z"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, _, err = DecodeVoucherToken(EncodeMultiFieldToken("notadate", "2025-10-12T00:00:00Z", "id"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "voucher date parse")
}

func TestEncodeDecodeLedgerToken(t *testing.T) {
	now := time.Now().UTC()

	postedAt, voucherID, lineNo, err := DecodeLedgerToken(EncodeLedgerToken(now, "v-1", 3))
	require.NoError(t, err)
	assert.True(t, now.Equal(postedAt))
	assert.Equal(t, "v-1", voucherID)
	assert.Equal(t, 3, lineNo)

	_, _, _, err = DecodeLedgerToken(EncodeMultiFieldToken(now.Format(time.RFC3339Nano), "v-1", "three"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line number parse")
}

func TestMultiFieldToken(t *testing.T) {
	fields, err := DecodeMultiFieldToken(EncodeMultiFieldToken("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}
