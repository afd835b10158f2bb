package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/canopy-network/swap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMemo(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		wantMsg string
	}{
		{
			name:  "empty",
			value: "",
		},
		{
			name:  "at limit",
			value: strings.Repeat("a", MaxMemoLength),
		},
		{
			name:    "one over limit",
			value:   strings.Repeat("a", MaxMemoLength+1),
			wantErr: true,
			wantMsg: fmt.Sprintf(errors.ErrMsgMemoTooLong, MaxMemoLength),
		},
		{
			name:    "multibyte counted in bytes",
			value:   strings.Repeat("é", 101),
			wantErr: true,
			wantMsg: fmt.Sprintf(errors.ErrMsgMemoTooLong, MaxMemoLength),
		},
		{
			name:    "invalid utf8",
			value:   "\xff\xfe",
			wantErr: true,
			wantMsg: errors.ErrMsgMemoInvalidUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMemo(tt.value)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			we, ok := err.(*errors.WalletError)
			require.True(t, ok, "expected *errors.WalletError, got %T", err)
			assert.Equal(t, errors.ErrCodeInvalidParameter, we.Code)
			assert.Equal(t, tt.wantMsg, we.Message)
		})
	}
}

func TestNumericValidators(t *testing.T) {
	assert.NoError(t, ValidateNonNegative(FeeField, 0))
	assert.ErrorIs(t, ValidateNonNegative(FeeField, -1), errors.ErrInvalidParameter)

	assert.NoError(t, ValidatePositive(NetworkIDField, 1))
	assert.ErrorIs(t, ValidatePositive(NetworkIDField, 0), errors.ErrInvalidParameter)
	assert.ErrorIs(t, ValidatePositive(NetworkIDField, -5), errors.ErrInvalidParameter)

	assert.NoError(t, ValidateNonZero(AmountField, 1))
	assert.ErrorIs(t, ValidateNonZero(AmountField, 0), errors.ErrInvalidParameter)
}

func TestByteValidators(t *testing.T) {
	assert.NoError(t, ValidateAddress(FromAddressField, make([]byte, AddressSize)))
	err := ValidateAddress(FromAddressField, make([]byte, 19))
	require.Error(t, err)
	assert.Contains(t, err.Error(), FromAddressField)

	assert.NoError(t, ValidateRequired(OrderIDField, []byte{1}))
	assert.ErrorIs(t, ValidateRequired(OrderIDField, nil), errors.ErrInvalidParameter)

	assert.NoError(t, ValidateEmpty(OrderIDField, nil))
	assert.ErrorIs(t, ValidateEmpty(OrderIDField, []byte{1}), errors.ErrInvalidParameter)
}

func TestDecodeHex(t *testing.T) {
	b, err := DecodeHex(DataField, "")
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = DecodeHex(DataField, "0aff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xff}, b)

	_, err = DecodeHex(DataField, "abc")
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)
}
