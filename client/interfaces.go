package client

import (
	"context"

	"github.com/canopy-network/swap/types"
)

// Submitter hands a signed transaction to the network. Implementations make a
// single attempt; retry policy belongs to the caller.
type Submitter interface {
	Submit(ctx context.Context, tx *types.SignedTransaction) (SubmitResult, error)
}
