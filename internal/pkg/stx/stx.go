// Package stx converts between STX display amounts and micro-STX, the
// smallest indivisible unit (1 STX = 1_000_000 µSTX). All conversions are
// integer-safe; float accumulation is never used so display boundaries do
// not drift.
package stx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MicroPerSTX is the number of micro-STX in one STX.
const MicroPerSTX = 1_000_000

var microFactor = decimal.NewFromInt(MicroPerSTX)

// FormatMicro renders a micro-STX amount as an STX decimal string with
// exactly 6 fractional digits. FormatMicro(1500000) == "1.500000".
func FormatMicro(micro uint64) string {
	return fmt.Sprintf("%d.%06d", micro/MicroPerSTX, micro%MicroPerSTX)
}

// ToMicro converts an STX amount to micro-STX by truncation toward zero:
// sub-micro-STX fractions are dropped, never rounded up. Negative amounts
// are rejected.
func ToMicro(amount decimal.Decimal) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", amount)
	}
	micro := amount.Mul(microFactor).Truncate(0)
	v := micro.BigInt()
	if !v.IsUint64() {
		return 0, fmt.Errorf("amount out of range: %s", amount)
	}
	return v.Uint64(), nil
}

// ParseAmount parses a user-supplied STX amount string.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid STX amount %q: %w", s, err)
	}
	return d, nil
}

// ParseMicro parses a micro-STX balance as reported by the node: a decimal
// integer string, or a hex string with an 0x prefix on older nodes.
func ParseMicro(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hex micro-STX balance %q: %w", s, err)
		}
		return v, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid micro-STX balance %q: %w", s, err)
	}
	return v, nil
}
