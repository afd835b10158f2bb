package config

import "time"

// KDFConfig restates the keyfile password derivation ([kdf] section). Keyfiles carry
// no parameters, so only DefaultKDF is accepted.
type KDFConfig struct {
	TimeCost    uint32 `ini:"time_cost"`
	MemoryKiB   uint32 `ini:"memory_kib"`
	Parallelism uint   `ini:"parallelism"`
	KeyLength   uint32 `ini:"key_length"`
	SaltLength  int    `ini:"salt_length"`
}

// RPCConfig points at the network submit endpoint ([rpc] section)
type RPCConfig struct {
	URL       string `ini:"url"`
	TimeoutMs int    `ini:"timeout_ms"`
}

func (c RPCConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SignerConfig is the signer.ini file
type SignerConfig struct {
	KDF KDFConfig
	RPC RPCConfig
}

// NetworkProfile holds the network parameters of one ledger
type NetworkProfile struct {
	Name      string `yaml:"name"`
	NetworkID int64  `yaml:"network_id"`
	ChainID   int64  `yaml:"chain_id"`
	Fee       int64  `yaml:"fee"`
	RPCURL    string `yaml:"rpc_url"`
}

// ProfilesFile is the top-level structure for networks.yml
type ProfilesFile struct {
	Networks []NetworkProfile `yaml:"networks"`
}
