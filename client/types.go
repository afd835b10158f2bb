package client

import "time"

const submitPath = "/v1/tx"

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// SubmitResult is what the node reported for an accepted transaction. TxHash is
// empty when the node acknowledged without echoing a hash.
type SubmitResult struct {
	StatusCode int
	TxHash     string
}
