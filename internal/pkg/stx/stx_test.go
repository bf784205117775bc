package stx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMicro(t *testing.T) {
	tests := []struct {
		name  string
		micro uint64
		want  string
	}{
		{"zero", 0, "0.000000"},
		{"one micro", 1, "0.000001"},
		{"one and a half", 1500000, "1.500000"},
		{"exact unit", 1000000, "1.000000"},
		{"sub unit", 999999, "0.999999"},
		{"large", 123456789012, "123456.789012"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMicro(tt.micro))
		})
	}
}

func TestToMicroTruncates(t *testing.T) {
	// Floor, never round: 1.9999995 STX is 1999999 µSTX.
	amount, err := decimal.NewFromString("1.9999995")
	require.NoError(t, err)

	micro, err := ToMicro(amount)
	require.NoError(t, err)
	assert.Equal(t, uint64(1999999), micro)
}

func TestToMicro(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    uint64
		wantErr bool
	}{
		{"whole", "2", 2000000, false},
		{"six digits", "0.000001", 1, false},
		{"below one micro", "0.0000009", 0, false},
		{"zero", "0", 0, false},
		{"negative", "-1", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			micro, err := ToMicro(d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, micro)
		})
	}
}

func TestParseMicro(t *testing.T) {
	v, err := ParseMicro("123456")
	require.NoError(t, err)
	assert.Equal(t, uint64(123456), v)

	v, err = ParseMicro("0x1e240")
	require.NoError(t, err)
	assert.Equal(t, uint64(123456), v)

	_, err = ParseMicro("not-a-number")
	assert.Error(t, err)

	_, err = ParseMicro("-5")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 1.25 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1.25")))

	_, err = ParseAmount("abc")
	assert.Error(t, err)
}
