// Package keyvault protects a wallet private key at rest.
//
// The key is sealed with AES-256-GCM under a 32-byte key stretched from the user's
// password with argon2id and a fresh random salt. The GCM nonce is the first 12 bytes
// of that derived key, which keeps the keyfile format readable by the browser wallet
// that produced existing keyfiles; nonce uniqueness therefore rests on salt uniqueness.
package keyvault

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/canopy-network/swap/errors"
	"github.com/canopy-network/swap/exception"
	"github.com/canopy-network/swap/logx"
	"github.com/canopy-network/swap/monitoring"
	"github.com/canopy-network/swap/utils"
	"golang.org/x/crypto/argon2"
)

const (
	nonceSize  = 12
	gcmTagSize = 16
)

// Keyfile is the at-rest wallet record. It is read-only to the signing core.
type Keyfile struct {
	PublicKey   string `json:"publicKey"`
	Encrypted   string `json:"encrypted"`
	Salt        string `json:"salt"`
	KeyAddress  string `json:"keyAddress"`
	KeyNickname string `json:"keyNickname"`
}

// Params tunes the memory-hard derivation
type Params struct {
	Time      uint32 // passes
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   int
}

// DefaultParams are the values every existing keyfile was sealed with
var DefaultParams = Params{
	Time:      3,
	MemoryKiB: 32 * 1024,
	Threads:   4,
	KeyLen:    32,
	SaltLen:   16,
}

// Vault encrypts and decrypts keyfiles. It holds no per-call state and is safe for
// concurrent use; every call derives its own key from its own password and salt.
type Vault struct {
	params Params
	rand   io.Reader
}

// New returns a vault using params. A nil random source means crypto/rand.
func New(params Params, random io.Reader) *Vault {
	if random == nil {
		random = rand.Reader
	}
	return &Vault{params: params, rand: random}
}

// Default is a vault with DefaultParams and crypto/rand
func Default() *Vault {
	return New(DefaultParams, nil)
}

// Encrypt seals privateKey under password. The returned keyfile carries the hex
// public key, ciphertext and salt.
func (v *Vault) Encrypt(ctx context.Context, privateKey, publicKey []byte, password, address string) (*Keyfile, error) {
	if len(privateKey) == 0 {
		return nil, errors.NewError(errors.ErrCodeInvalidParameter, fmt.Sprintf(errors.ErrMsgEmptyField, "privateKey"))
	}
	if v.params.KeyLen < 32 {
		return nil, errors.NewError(errors.ErrCodeInvalidParameter, "Derived key must be at least 32 bytes for AES-256")
	}

	salt := make([]byte, v.params.SaltLen)
	if _, err := io.ReadFull(v.rand, salt); err != nil {
		return nil, fmt.Errorf("keyvault: read salt: %w", err)
	}

	key, err := v.deriveKey(ctx, password, salt)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	ciphertext := aead.Seal(nil, key[:nonceSize], privateKey, nil)

	logx.Debug("KEYVAULT", "sealed key for ", utils.ShortenLog(hex.EncodeToString(publicKey)))
	return &Keyfile{
		PublicKey:  hex.EncodeToString(publicKey),
		Encrypted:  hex.EncodeToString(ciphertext),
		Salt:       hex.EncodeToString(salt),
		KeyAddress: address,
	}, nil
}

// Decrypt opens the keyfile with password. A failed authentication, whether from a
// wrong password or a tampered ciphertext, is reported as ErrInvalidPassword and
// nothing of the plaintext is returned. The caller owns the Secret and must Wipe it.
func (v *Vault) Decrypt(ctx context.Context, kf *Keyfile, password string) (Secret, error) {
	if kf == nil {
		return nil, errors.NewError(errors.ErrCodeCorruptedKeyfile, fmt.Sprintf(errors.ErrMsgEmptyField, "keyfile"))
	}
	salt, err := decodeField("salt", kf.Salt)
	if err != nil {
		return nil, err
	}
	ciphertext, err := decodeField("encrypted", kf.Encrypted)
	if err != nil {
		return nil, err
	}
	if _, err := decodeField("publicKey", kf.PublicKey); err != nil {
		return nil, err
	}
	if len(ciphertext) < gcmTagSize {
		return nil, errors.NewError(errors.ErrCodeCorruptedKeyfile, errors.ErrMsgCiphertextTooShort)
	}

	key, err := v.deriveKey(ctx, password, salt)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	plain, err := aead.Open(nil, key[:nonceSize], ciphertext, nil)
	if err != nil {
		logx.Warn("KEYVAULT", "authentication failed for ", utils.ShortenLog(kf.PublicKey))
		return nil, errors.NewError(errors.ErrCodeInvalidPassword, errors.ErrMsgInvalidPassword)
	}
	return Secret(plain), nil
}

// Verify reports whether password opens the keyfile. Only ErrInvalidPassword maps to
// false; every other failure is returned.
func (v *Vault) Verify(ctx context.Context, kf *Keyfile, password string) (bool, error) {
	secret, err := v.Decrypt(ctx, kf, password)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeInvalidPassword {
			return false, nil
		}
		return false, err
	}
	secret.Wipe()
	return true, nil
}

// deriveKey runs argon2id off the caller's goroutine so a cancelled ctx returns
// immediately. The abandoned result is wiped when the derivation finishes.
func (v *Vault) deriveKey(ctx context.Context, password string, salt []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type derived struct {
		key []byte
		err error
	}
	p := v.params
	done := make(chan derived, 1)
	start := time.Now()
	exception.SafeGo("argon2id", func() {
		pw := []byte(password)
		defer clear(pw)
		done <- derived{key: argon2.IDKey(pw, salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)}
	}, func(err error) {
		done <- derived{err: err}
	})

	select {
	case d := <-done:
		if d.err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParameter, d.err, "Key derivation parameters rejected")
		}
		monitoring.RecordKeyDerivation(time.Since(start))
		return d.key, nil
	case <-ctx.Done():
		go func() {
			clear((<-done).key)
		}()
		return nil, ctx.Err()
	}
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, fmt.Errorf("keyvault: aes: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keyvault: gcm: %w", err)
	}
	return aead, nil
}

func decodeField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, errors.NewError(errors.ErrCodeCorruptedKeyfile, fmt.Sprintf(errors.ErrMsgEmptyField, name))
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedKeyfile, err, fmt.Sprintf(errors.ErrMsgInvalidHexField, name))
	}
	return b, nil
}
