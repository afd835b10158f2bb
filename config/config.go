package config

import (
	"os"

	"github.com/canopy-network/swap/keyvault"
	"github.com/canopy-network/swap/logx"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadSignerConfig reads the [kdf] and [rpc] sections of an .ini file. Missing keys
// keep their defaults; a missing file is an error.
func LoadSignerConfig(path string) (*SignerConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load signer config %s", path)
	}
	out := &SignerConfig{
		KDF: DefaultKDF,
		RPC: RPCConfig{URL: DefaultRPCURL, TimeoutMs: DefaultRPCTimeoutMs},
	}
	if err := cfg.Section("kdf").MapTo(&out.KDF); err != nil {
		return nil, errors.Wrap(err, "map [kdf]")
	}
	if err := cfg.Section("rpc").MapTo(&out.RPC); err != nil {
		return nil, errors.Wrap(err, "map [rpc]")
	}
	if err := out.KDF.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultSignerConfig is used when no config file is given
func DefaultSignerConfig() *SignerConfig {
	return &SignerConfig{
		KDF: DefaultKDF,
		RPC: RPCConfig{URL: DefaultRPCURL, TimeoutMs: DefaultRPCTimeoutMs},
	}
}

func (c KDFConfig) validate() error {
	switch {
	case c.TimeCost == 0:
		return errors.New("kdf: time_cost must be > 0")
	case c.Parallelism == 0 || c.Parallelism > 255:
		return errors.New("kdf: parallelism must be in 1..255")
	case c.MemoryKiB == 0 || uint64(c.MemoryKiB) < 8*uint64(c.Parallelism):
		return errors.New("kdf: memory_kib must be >= 8 * parallelism")
	case c.KeyLength < 32:
		return errors.New("kdf: key_length must be >= 32")
	case c.SaltLength < 8:
		return errors.New("kdf: salt_length must be >= 8")
	case c != DefaultKDF:
		return errors.Errorf("kdf: keyfiles are sealed with time_cost=%d memory_kib=%d parallelism=%d key_length=%d salt_length=%d, other values cannot be read back",
			DefaultKDF.TimeCost, DefaultKDF.MemoryKiB, DefaultKDF.Parallelism, DefaultKDF.KeyLength, DefaultKDF.SaltLength)
	}
	return nil
}

// VaultParams converts the [kdf] section into keyvault parameters
func (c KDFConfig) VaultParams() keyvault.Params {
	return keyvault.Params{
		Time:      c.TimeCost,
		MemoryKiB: c.MemoryKiB,
		Threads:   uint8(c.Parallelism),
		KeyLen:    c.KeyLength,
		SaltLen:   c.SaltLength,
	}
}

// LoadNetworkProfiles reads the networks.yml file
func LoadNetworkProfiles(path string) ([]NetworkProfile, error) {
	logx.Info("CONFIG", "LoadNetworkProfiles called with path: ", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	var profiles ProfilesFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&profiles); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return profiles.Networks, nil
}

// FindProfile returns the profile called name
func FindProfile(profiles []NetworkProfile, name string) (NetworkProfile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return NetworkProfile{}, errors.Errorf("network profile %q not found", name)
}
