// Package transaction turns an encrypted keyfile, a password and order parameters
// into a signed transaction ready for submission.
package transaction

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/canopy-network/swap/codec"
	"github.com/canopy-network/swap/curve"
	"github.com/canopy-network/swap/errors"
	"github.com/canopy-network/swap/keyvault"
	"github.com/canopy-network/swap/logx"
	"github.com/canopy-network/swap/monitoring"
	"github.com/canopy-network/swap/security/validation"
	"github.com/canopy-network/swap/types"
	"github.com/canopy-network/swap/utils"
	"github.com/google/uuid"
)

// NetworkParams come from the chain-context layer. Signed integers let an upstream
// bug (a negative fee or height) surface as a validation error instead of wrapping.
type NetworkParams struct {
	NetworkID int64
	ChainID   int64
	Height    int64
	Fee       int64
}

// Request is one signing call. The password is used for this call only.
type Request struct {
	Keyfile  *keyvault.Keyfile
	Password string
	Message  types.Message
	Network  NetworkParams
	Memo     string
}

// Builder runs decrypt, curve detection, assembly, canonical encoding and signing
// in a single pass with no retries. It is stateless and safe for concurrent use.
type Builder struct {
	vault *keyvault.Vault
	now   func() time.Time

	// onSecret observes the decrypted key buffer; tests use it to check wiping
	onSecret func(keyvault.Secret)
}

func NewBuilder(vault *keyvault.Vault) *Builder {
	if vault == nil {
		vault = keyvault.Default()
	}
	return &Builder{vault: vault, now: time.Now}
}

// WithClock returns a copy of the builder reading time from now
func (b *Builder) WithClock(now func() time.Time) *Builder {
	c := *b
	c.now = now
	return &c
}

// BuildAndSign produces a SignedTransaction or nothing. Parameters are validated
// before any cryptographic work; the decrypted key is wiped on every return path.
func (b *Builder) BuildAndSign(ctx context.Context, req Request) (signed *types.SignedTransaction, err error) {
	reqID := uuid.NewString()
	start := time.Now()
	curveName := curve.Unknown.String()
	defer func() {
		outcome := monitoring.SignOK
		if err != nil {
			outcome = monitoring.SignOutcome(errors.CodeOf(err))
			logx.Error("TX BUILDER", "request ", reqID, " failed: ", err)
		}
		monitoring.RecordBuild(curveName, outcome, time.Since(start))
	}()

	if req.Keyfile == nil {
		return nil, errors.NewError(errors.ErrCodeCorruptedKeyfile, fmt.Sprintf(errors.ErrMsgEmptyField, "keyfile"))
	}
	msg, err := withKeyAddress(req.Message, req.Keyfile.KeyAddress)
	if err != nil {
		return nil, err
	}
	if err = validateRequest(msg, req.Network, req.Memo); err != nil {
		return nil, err
	}

	pub, err := hex.DecodeString(req.Keyfile.PublicKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedKeyfile, err, fmt.Sprintf(errors.ErrMsgInvalidHexField, "publicKey"))
	}
	typ, err := curve.DetectBytes(pub)
	if err != nil {
		return nil, err
	}
	curveName = typ.String()
	signer, err := curve.SignerFor(typ)
	if err != nil {
		return nil, err
	}

	logx.Info("TX BUILDER", "request ", reqID, " building ", msg.MessageType(), " for ", utils.ShortenLog(req.Keyfile.PublicKey), " on ", curveName)

	secret, err := b.vault.Decrypt(ctx, req.Keyfile, req.Password)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe()
	if b.onSecret != nil {
		b.onSecret(secret)
	}

	derived, err := signer.PublicKey(secret.Bytes())
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(derived, pub) {
		return nil, errors.NewError(errors.ErrCodeSigningFailure, errors.ErrMsgKeyPairMismatch)
	}

	unsigned := types.UnsignedTransaction{
		Type:          msg.MessageType(),
		Msg:           msg,
		Time:          uint64(b.now().UnixMicro()),
		CreatedHeight: uint64(req.Network.Height),
		Fee:           uint64(req.Network.Fee),
		Memo:          req.Memo,
		NetworkID:     uint64(req.Network.NetworkID),
		ChainID:       uint64(req.Network.ChainID),
	}
	signBytes, err := codec.CanonicalBytes(&unsigned)
	if err != nil {
		return nil, err
	}

	sig, err := signer.Sign(signBytes, secret.Bytes())
	if err != nil {
		return nil, err
	}
	if !signer.Verify(pub, signBytes, sig) {
		return nil, errors.NewError(errors.ErrCodeSigningFailure, errors.ErrMsgSelfVerifyFailed)
	}

	signed = &types.SignedTransaction{
		UnsignedTransaction: unsigned,
		Signature: &types.Signature{
			PublicKey: pub,
			Signature: sig,
		},
	}
	if hash, hashErr := codec.TxHash(signed); hashErr == nil {
		logx.Info("TX BUILDER", "request ", reqID, " signed tx ", utils.ShortenLog(hash))
	}
	return signed, nil
}

func validateRequest(msg types.Message, n NetworkParams, memo string) error {
	if err := validation.ValidateNonNegative(validation.FeeField, n.Fee); err != nil {
		return err
	}
	if err := validation.ValidatePositive(validation.NetworkIDField, n.NetworkID); err != nil {
		return err
	}
	if err := validation.ValidatePositive(validation.ChainIDField, n.ChainID); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative(validation.HeightField, n.Height); err != nil {
		return err
	}
	if err := validation.ValidateMemo(memo); err != nil {
		return err
	}
	if types.IsNilMessage(msg) {
		return errors.NewError(errors.ErrCodeInvalidParameter, errors.ErrMsgMissingMessage)
	}
	if t := msg.MessageType(); !types.IsKnownMessageType(t) {
		return errors.NewError(errors.ErrCodeInvalidParameter, fmt.Sprintf(errors.ErrMsgUnknownMessageType, t))
	}
	return msg.Check()
}

// withKeyAddress fills the sender side of send and create-order messages from the
// keyfile address when the caller left it empty. The caller's message is not modified.
func withKeyAddress(msg types.Message, keyAddress string) (types.Message, error) {
	if types.IsNilMessage(msg) {
		return msg, nil
	}
	switch m := msg.(type) {
	case *types.MessageSend:
		if len(m.FromAddress) > 0 {
			return msg, nil
		}
		addr, err := decodeKeyAddress(keyAddress)
		if err != nil {
			return nil, err
		}
		c := *m
		c.FromAddress = addr
		return &c, nil
	case *types.MessageCreateOrder:
		if len(m.SellerSendAddress) > 0 {
			return msg, nil
		}
		addr, err := decodeKeyAddress(keyAddress)
		if err != nil {
			return nil, err
		}
		c := *m
		c.SellerSendAddress = addr
		return &c, nil
	}
	return msg, nil
}

func decodeKeyAddress(keyAddress string) (types.HexBytes, error) {
	if keyAddress == "" {
		return nil, nil
	}
	addr, err := hex.DecodeString(keyAddress)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedKeyfile, err, fmt.Sprintf(errors.ErrMsgInvalidHexField, "keyAddress"))
	}
	return addr, nil
}
