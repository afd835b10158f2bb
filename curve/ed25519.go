package curve

import (
	"crypto/ed25519"
	"fmt"
	"io"
)

type ed25519Signer struct{}

func (ed25519Signer) Type() Type { return ED25519 }

// expand accepts a 32-byte seed or a 64-byte expanded key. The public half of an
// expanded key is re-derived from its seed, never trusted as stored.
func (ed25519Signer) expand(privateKey []byte) (ed25519.PrivateKey, error) {
	switch l := len(privateKey); l {
	case ed25519.SeedSize, ed25519.PrivateKeySize:
		return ed25519.NewKeyFromSeed(privateKey[:ed25519.SeedSize]), nil
	default:
		return nil, malformedKey(ED25519, fmt.Errorf("unsupported private key length %d", l))
	}
}

func (s ed25519Signer) Sign(msg, privateKey []byte) ([]byte, error) {
	priv, err := s.expand(privateKey)
	if err != nil {
		return nil, err
	}
	defer clear(priv)
	return ed25519.Sign(priv, msg), nil
}

func (ed25519Signer) Verify(publicKey, msg, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), msg, signature)
}

func (s ed25519Signer) PublicKey(privateKey []byte) ([]byte, error) {
	priv, err := s.expand(privateKey)
	if err != nil {
		return nil, err
	}
	defer clear(priv)
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv.Public().(ed25519.PublicKey))
	return pub, nil
}

func (ed25519Signer) GenerateKey(rand io.Reader) ([]byte, []byte, error) {
	pub, priv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, nil, err
	}
	seed := make([]byte, ed25519.SeedSize)
	copy(seed, priv.Seed())
	clear(priv)
	return seed, pub, nil
}
