package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/canopy-network/swap/config"
	"github.com/canopy-network/swap/jsonx"
	"github.com/canopy-network/swap/keyvault"
	"github.com/pkg/errors"
)

// PasswordEnv is read when no --password flag is given
const PasswordEnv = "SWAP_PASSWORD"

const addressSize = 20

func resolvePassword(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}
	return "", fmt.Errorf("--password or %s is required", PasswordEnv)
}

func loadSignerConfig(path string) (*config.SignerConfig, error) {
	if path == "" {
		return config.DefaultSignerConfig(), nil
	}
	return config.LoadSignerConfig(path)
}

func newVault(configPath string) (*keyvault.Vault, *config.SignerConfig, error) {
	cfg, err := loadSignerConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	return keyvault.New(cfg.KDF.VaultParams(), nil), cfg, nil
}

func readKeyfile(path string) (*keyvault.Keyfile, error) {
	if path == "" {
		return nil, fmt.Errorf("--keyfile is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read keyfile %s", path)
	}
	var kf keyvault.Keyfile
	if err := jsonx.Unmarshal(raw, &kf); err != nil {
		return nil, errors.Wrapf(err, "decode keyfile %s", path)
	}
	return &kf, nil
}

func writeKeyfile(path string, kf *keyvault.Keyfile) error {
	raw, err := jsonx.MarshalIndent(kf)
	if err != nil {
		return errors.Wrap(err, "encode keyfile")
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "write keyfile %s", path)
	}
	return nil
}

// addressFromPublicKey is the ledger's account address: the first 20 bytes of
// sha256(publicKey), hex encoded
func addressFromPublicKey(pub []byte) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:addressSize])
}
