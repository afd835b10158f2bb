package validation

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/canopy-network/swap/errors"
)

func invalid(format string, args ...interface{}) error {
	return errors.NewError(errors.ErrCodeInvalidParameter, fmt.Sprintf(format, args...))
}

// ValidateMemo checks the memo is valid UTF-8 and within MaxMemoLength bytes.
// The memo is signed as-is, so it is never normalized here.
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoLength {
		return invalid(errors.ErrMsgMemoTooLong, MaxMemoLength)
	}
	if !utf8.ValidString(memo) {
		return invalid(errors.ErrMsgMemoInvalidUTF8)
	}
	return nil
}

// ValidateNonNegative rejects v < 0
func ValidateNonNegative(fieldName string, v int64) error {
	if v < 0 {
		return invalid(errors.ErrMsgNonNegative, fieldName)
	}
	return nil
}

// ValidatePositive rejects v <= 0
func ValidatePositive(fieldName string, v int64) error {
	if v <= 0 {
		return invalid(errors.ErrMsgPositive, fieldName)
	}
	return nil
}

// ValidateNonZero rejects a zero unsigned amount or id
func ValidateNonZero(fieldName string, v uint64) error {
	if v == 0 {
		return invalid(errors.ErrMsgPositive, fieldName)
	}
	return nil
}

// ValidateRequired rejects an empty byte field
func ValidateRequired(fieldName string, b []byte) error {
	if len(b) == 0 {
		return invalid(errors.ErrMsgEmptyField, fieldName)
	}
	return nil
}

// ValidateEmpty rejects a byte field that must be left unset
func ValidateEmpty(fieldName string, b []byte) error {
	if len(b) != 0 {
		return invalid("Field '%s' must be empty", fieldName)
	}
	return nil
}

// ValidateAddress checks a ledger address is exactly AddressSize bytes
func ValidateAddress(fieldName string, addr []byte) error {
	if len(addr) != AddressSize {
		return invalid(errors.ErrMsgFieldLength, fieldName, AddressSize, len(addr))
	}
	return nil
}

// DecodeHex parses an optional hex field; "" decodes to nil
func DecodeHex(fieldName, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, fmt.Sprintf(errors.ErrMsgInvalidHexField, fieldName))
	}
	return b, nil
}
