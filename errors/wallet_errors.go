package errors

import (
	"errors"

	"github.com/canopy-network/swap/jsonx"
)

// WalletErrorCode classifies failures of the signing core
type WalletErrorCode string

const (
	ErrCodeInvalidPassword          WalletErrorCode = "invalid_password"
	ErrCodeCorruptedKeyfile         WalletErrorCode = "corrupted_keyfile"
	ErrCodeInvalidParameter         WalletErrorCode = "invalid_parameter"
	ErrCodeEncodingMismatch         WalletErrorCode = "encoding_mismatch"
	ErrCodeSigningFailure           WalletErrorCode = "signing_failure"
	ErrCodeNetworkSubmissionFailure WalletErrorCode = "network_submission_failure"

	// ErrCodeUnknown is reported by CodeOf for errors outside the taxonomy
	ErrCodeUnknown WalletErrorCode = "unknown"
)

// Error message constants
const (
	ErrMsgInvalidPassword       = "Password is incorrect or keyfile was tampered with"
	ErrMsgInvalidHexField       = "Field '%s' is not valid hex"
	ErrMsgEmptyField            = "Field '%s' is required"
	ErrMsgFieldLength           = "Field '%s' must be %d bytes, got %d"
	ErrMsgCiphertextTooShort    = "Encrypted key is shorter than the authentication tag"
	ErrMsgMemoTooLong           = "Memo length exceeds maximum (%d bytes)"
	ErrMsgMemoInvalidUTF8       = "Memo is not valid UTF-8"
	ErrMsgNonNegative           = "Field '%s' must not be negative"
	ErrMsgPositive              = "Field '%s' must be greater than zero"
	ErrMsgUnknownMessageType    = "Message type '%s' is not supported"
	ErrMsgMissingMessage        = "Transaction message is missing"
	ErrMsgMessageTypeMismatch   = "Message payload %T does not match type '%s'"
	ErrMsgUnsupportedCurve      = "Public key of %d bytes does not map to a supported curve"
	ErrMsgMalformedPrivateKey   = "Private key is malformed for curve %s"
	ErrMsgKeyPairMismatch       = "Private key does not match the keyfile public key"
	ErrMsgSelfVerifyFailed      = "Produced signature failed verification"
	ErrMsgSubmissionRejected    = "Network rejected transaction with status %d: %s"
	ErrMsgSubmissionUnreachable = "Network could not be reached"
)

// WalletError is the typed error returned by every package of the signing core.
// Two WalletErrors match under errors.Is when the target carries no message and the
// codes are equal, so the exported sentinels act as kind matchers.
type WalletError struct {
	Code    WalletErrorCode `json:"code"`
	Message string          `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *WalletError) Error() string {
	msg := e.Message
	if e.cause != nil {
		if msg == "" {
			msg = e.cause.Error()
		} else {
			msg = msg + ": " + e.cause.Error()
		}
	}
	out, _ := jsonx.Marshal(WalletError{
		Code:    e.Code,
		Message: msg,
	})
	return string(out)
}

func (e *WalletError) Unwrap() error {
	return e.cause
}

func (e *WalletError) Is(target error) bool {
	t, ok := target.(*WalletError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// Kind sentinels for errors.Is
var (
	ErrInvalidPassword          = &WalletError{Code: ErrCodeInvalidPassword}
	ErrCorruptedKeyfile         = &WalletError{Code: ErrCodeCorruptedKeyfile}
	ErrInvalidParameter         = &WalletError{Code: ErrCodeInvalidParameter}
	ErrEncodingMismatch         = &WalletError{Code: ErrCodeEncodingMismatch}
	ErrSigningFailure           = &WalletError{Code: ErrCodeSigningFailure}
	ErrNetworkSubmissionFailure = &WalletError{Code: ErrCodeNetworkSubmissionFailure}
)

// NewError creates a new WalletError and returns it as error interface
func NewError(code WalletErrorCode, message string) error {
	return &WalletError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a code and message to an underlying cause
func Wrap(code WalletErrorCode, cause error, message string) error {
	return &WalletError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// CodeOf returns the code of the first WalletError in err's chain
func CodeOf(err error) WalletErrorCode {
	var we *WalletError
	if errors.As(err, &we) {
		return we.Code
	}
	return ErrCodeUnknown
}
