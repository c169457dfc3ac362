package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"plain date", `"2025-11-19"`, time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", `"2025-10-12T00:00:00Z"`, time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC), false},
		{"empty string", `""`, time.Time{}, false},
		{"null", `null`, time.Time{}, false},
		{"day first", `"19/11/2025"`, time.Time{}, true},
		{"number", `20251119`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dto.Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %s", d.Time)
		})
	}
}

func TestDate_OffsetIsKept(t *testing.T) {
	var d dto.Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-10-31T23:00:00-05:00"`), &d))

	assert.Equal(t, 31, d.Day())
	_, offset := d.Zone()
	assert.Equal(t, -5*60*60, offset)
}

func TestDate_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(dto.NewDate(time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2025-11-19"`, string(out))

	out, err = json.Marshal(dto.Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
