package config

const (
	DefaultRPCURL       = "http://localhost:50002"
	DefaultRPCTimeoutMs = 10_000

	DefaultNetworkID = 1
	DefaultChainID   = 1
	DefaultFee       = 10_000
)

// DefaultKDF mirrors the parameters every existing keyfile was sealed with
var DefaultKDF = KDFConfig{
	TimeCost:    3,
	MemoryKiB:   32 * 1024,
	Parallelism: 4,
	KeyLength:   32,
	SaltLength:  16,
}

var DefaultProfile = NetworkProfile{
	Name:      "mainnet",
	NetworkID: DefaultNetworkID,
	ChainID:   DefaultChainID,
	Fee:       DefaultFee,
	RPCURL:    DefaultRPCURL,
}
