package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

const (
	// DecimalScale represents the scaling factor for amounts (10^6)
	DecimalScale = 1_000_000
	// DecimalPlaces is the number of fractional digits a micro-unit amount carries
	DecimalPlaces = 6
)

// GetDecimalScale returns the decimal scale factor that clients should use
func GetDecimalScale() uint64 {
	return DecimalScale
}

// ToMicroUnits converts a decimal amount such as "12.5" or "1_000" into integer
// micro-units. More than six fractional digits or a value above uint64 is rejected.
func ToMicroUnits(amount string) (uint64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(amount), "_", "")
	if s == "" || s == "." {
		return 0, fmt.Errorf("empty amount")
	}
	if s[0] == '-' || s[0] == '+' {
		return 0, fmt.Errorf("amount %q must be an unsigned decimal", amount)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > DecimalPlaces {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", amount, DecimalPlaces)
	}
	for _, c := range frac {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("amount %q has invalid fraction", amount)
		}
	}

	w, err := uint256.FromDecimal(whole)
	if err != nil {
		return 0, fmt.Errorf("could not parse amount %q: %w", amount, err)
	}
	scaled, overflow := new(uint256.Int).MulOverflow(w, uint256.NewInt(DecimalScale))
	if overflow {
		return 0, fmt.Errorf("amount %q overflows", amount)
	}
	if frac != "" {
		frac += strings.Repeat("0", DecimalPlaces-len(frac))
		f, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse amount %q: %w", amount, err)
		}
		if _, overflow = scaled.AddOverflow(scaled, uint256.NewInt(f)); overflow {
			return 0, fmt.Errorf("amount %q overflows", amount)
		}
	}
	if !scaled.IsUint64() {
		return 0, fmt.Errorf("amount %q exceeds uint64 micro-units", amount)
	}
	return scaled.Uint64(), nil
}

// FromMicroUnits renders micro-units as a decimal string without trailing zeros
func FromMicroUnits(micro uint64) string {
	whole := micro / DecimalScale
	frac := micro % DecimalScale
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	f := strings.TrimRight(fmt.Sprintf("%06d", frac), "0")
	return strconv.FormatUint(whole, 10) + "." + f
}
