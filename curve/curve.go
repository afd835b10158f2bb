// Package curve selects and runs the signature algorithm behind a wallet key.
//
// There is no curve tag on the wire: the ledger infers the algorithm from the public
// key length, so Detect is the single place that rule lives.
package curve

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/canopy-network/swap/errors"
)

// Type is the elliptic-curve signature family of a key pair
type Type int

const (
	Unknown Type = iota
	ED25519
	BLS12381
)

const (
	ED25519PublicKeySize  = 32
	BLS12381PublicKeySize = 48

	ED25519SignatureSize  = 64
	BLS12381SignatureSize = 96
)

func (t Type) String() string {
	switch t {
	case ED25519:
		return "ed25519"
	case BLS12381:
		return "bls12381"
	default:
		return "unknown"
	}
}

// SignatureSize is the raw signature length produced under the curve
func (t Type) SignatureSize() int {
	switch t {
	case ED25519:
		return ED25519SignatureSize
	case BLS12381:
		return BLS12381SignatureSize
	default:
		return 0
	}
}

// ParseType maps a CLI/config name to a Type
func ParseType(name string) (Type, error) {
	switch name {
	case "ed25519", "ED25519":
		return ED25519, nil
	case "bls", "bls12381", "BLS12381":
		return BLS12381, nil
	}
	return Unknown, fmt.Errorf("unknown curve %q", name)
}

// DetectBytes derives the curve from a raw public key: 32 bytes is ED25519, 48 bytes is BLS12381.
func DetectBytes(publicKey []byte) (Type, error) {
	switch len(publicKey) {
	case ED25519PublicKeySize:
		return ED25519, nil
	case BLS12381PublicKeySize:
		return BLS12381, nil
	}
	return Unknown, errors.NewError(errors.ErrCodeSigningFailure,
		fmt.Sprintf(errors.ErrMsgUnsupportedCurve, len(publicKey)))
}

// Detect derives the curve from a hex public key (64 or 96 hex characters)
func Detect(publicKeyHex string) (Type, error) {
	pub, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return Unknown, errors.Wrap(errors.ErrCodeCorruptedKeyfile, err,
			fmt.Sprintf(errors.ErrMsgInvalidHexField, "publicKey"))
	}
	return DetectBytes(pub)
}

// Signer is one signature algorithm. Implementations hold no state.
type Signer interface {
	Type() Type
	// Sign returns the raw signature of msg under privateKey
	Sign(msg, privateKey []byte) ([]byte, error)
	Verify(publicKey, msg, signature []byte) bool
	// PublicKey derives the serialized public key of privateKey
	PublicKey(privateKey []byte) ([]byte, error)
	// GenerateKey returns a fresh (private, public) pair read from rand
	GenerateKey(rand io.Reader) (privateKey, publicKey []byte, err error)
}

var signers = map[Type]Signer{
	ED25519:  ed25519Signer{},
	BLS12381: blsSigner{},
}

// SignerFor returns the signer of a curve type
func SignerFor(t Type) (Signer, error) {
	s, ok := signers[t]
	if !ok {
		return nil, errors.NewError(errors.ErrCodeSigningFailure,
			fmt.Sprintf("Curve %s is not supported", t))
	}
	return s, nil
}

// ForPublicKey detects the curve of a hex public key and returns its signer
func ForPublicKey(publicKeyHex string) (Signer, error) {
	t, err := Detect(publicKeyHex)
	if err != nil {
		return nil, err
	}
	return SignerFor(t)
}

func malformedKey(t Type, cause error) error {
	return errors.Wrap(errors.ErrCodeSigningFailure, cause,
		fmt.Sprintf(errors.ErrMsgMalformedPrivateKey, t))
}
