package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TONDecimals = 9 // TON has 9 decimals (nanotons)
)

// NanoToTON converts nanotons to TON string without float precision loss
func NanoToTON(nano uint64) string {
	return formatWithDecimals(nano, TONDecimals)
}

// TONToNano converts TON string to nanotons without float precision loss
func TONToNano(ton string) (uint64, error) {
	return parseWithDecimals(ton, TONDecimals)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.024981836", 9) = 24981836
// Digits beyond the precision are rejected rather than truncated.
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("signed amounts are not allowed")
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	if hasPoint && strings.Contains(frac, ".") {
		return 0, fmt.Errorf("invalid decimal format")
	}
	if whole == "" {
		whole = "0"
	}
	if hasPoint && frac == "" {
		return 0, fmt.Errorf("invalid decimal format")
	}

	if len(frac) > decimals {
		return 0, fmt.Errorf("too many decimal places, max %d", decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	return strconv.ParseUint(whole+frac, 10, 64)
}
