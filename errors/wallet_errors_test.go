package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := NewError(ErrCodeInvalidPassword, ErrMsgInvalidPassword)

	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.NotErrorIs(t, err, ErrCorruptedKeyfile)
	assert.ErrorIs(t, fmt.Errorf("build: %w", err), ErrInvalidPassword)

	// a sentinel with a message only matches that exact message
	assert.NotErrorIs(t, err, &WalletError{Code: ErrCodeInvalidPassword, Message: "other"})
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeNetworkSubmissionFailure, io.ErrUnexpectedEOF, ErrMsgSubmissionUnreachable)

	assert.ErrorIs(t, err, ErrNetworkSubmissionFailure)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t,
		`{"code":"network_submission_failure","message":"Network could not be reached: unexpected EOF"}`,
		err.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeSigningFailure, CodeOf(fmt.Errorf("x: %w", NewError(ErrCodeSigningFailure, "boom"))))
	assert.Equal(t, ErrCodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, ErrCodeUnknown, CodeOf(nil))
}

func TestErrorJSON(t *testing.T) {
	err := NewError(ErrCodeInvalidParameter, fmt.Sprintf(ErrMsgPositive, "networkID"))
	assert.Equal(t, `{"code":"invalid_parameter","message":"Field 'networkID' must be greater than zero"}`, err.Error())
}
