package curve

import (
	cryptorand "crypto/rand"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BLSDomainSeparationTag is the hash-to-G2 tag the ledger verifies against
// (minimal-pubkey-size scheme: public keys on G1, signatures on G2).
const BLSDomainSeparationTag = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"

const blsPrivateKeySize = fr.Bytes

type blsSigner struct{}

func (blsSigner) Type() Type { return BLS12381 }

// scalar parses a 32-byte big-endian secret in (0, r)
func (blsSigner) scalar(privateKey []byte) (*big.Int, error) {
	if len(privateKey) != blsPrivateKeySize {
		return nil, malformedKey(BLS12381, fmt.Errorf("unsupported private key length %d", len(privateKey)))
	}
	s := new(big.Int).SetBytes(privateKey)
	if s.Sign() == 0 || s.Cmp(fr.Modulus()) >= 0 {
		return nil, malformedKey(BLS12381, fmt.Errorf("scalar out of range"))
	}
	return s, nil
}

func (b blsSigner) Sign(msg, privateKey []byte) ([]byte, error) {
	s, err := b.scalar(privateKey)
	if err != nil {
		return nil, err
	}
	defer wipeScalar(s)

	h, err := bls12381.HashToG2(msg, []byte(BLSDomainSeparationTag))
	if err != nil {
		return nil, malformedKey(BLS12381, err)
	}
	var sig bls12381.G2Affine
	sig.ScalarMultiplication(&h, s)
	out := sig.Bytes()
	return out[:], nil
}

// Verify checks e(pk, H(m)) == e(g1, sig)
func (blsSigner) Verify(publicKey, msg, signature []byte) bool {
	if len(publicKey) != BLS12381PublicKeySize || len(signature) != BLS12381SignatureSize {
		return false
	}
	var pk bls12381.G1Affine
	if _, err := pk.SetBytes(publicKey); err != nil || pk.IsInfinity() {
		return false
	}
	var sig bls12381.G2Affine
	if _, err := sig.SetBytes(signature); err != nil {
		return false
	}
	h, err := bls12381.HashToG2(msg, []byte(BLSDomainSeparationTag))
	if err != nil {
		return false
	}
	_, _, g1, _ := bls12381.Generators()
	var negG1 bls12381.G1Affine
	negG1.Neg(&g1)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{pk, negG1},
		[]bls12381.G2Affine{h, sig},
	)
	return err == nil && ok
}

func (b blsSigner) PublicKey(privateKey []byte) ([]byte, error) {
	s, err := b.scalar(privateKey)
	if err != nil {
		return nil, err
	}
	defer wipeScalar(s)

	var pk bls12381.G1Affine
	pk.ScalarMultiplicationBase(s)
	out := pk.Bytes()
	return out[:], nil
}

func (b blsSigner) GenerateKey(rand io.Reader) ([]byte, []byte, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	for {
		s, err := randScalar(rand)
		if err != nil {
			return nil, nil, err
		}
		if s.Sign() == 0 {
			continue
		}
		priv := make([]byte, blsPrivateKeySize)
		s.FillBytes(priv)
		wipeScalar(s)
		pub, err := b.PublicKey(priv)
		if err != nil {
			return nil, nil, err
		}
		return priv, pub, nil
	}
}

// randScalar draws uniformly in [0, r) by rejection sampling 255-bit candidates
func randScalar(rand io.Reader) (*big.Int, error) {
	buf := make([]byte, blsPrivateKeySize)
	defer clear(buf)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= 0x7f
		s := new(big.Int).SetBytes(buf)
		if s.Cmp(fr.Modulus()) < 0 {
			return s, nil
		}
		wipeScalar(s)
	}
}

// wipeScalar zeroes the words backing s before resetting it
func wipeScalar(s *big.Int) {
	clear(s.Bits())
	s.SetInt64(0)
}
