package types

// UnsignedTransaction is the payload covered by the signature. Time is in
// microseconds since the Unix epoch.
type UnsignedTransaction struct {
	Type          string  `json:"type"`
	Msg           Message `json:"msg"`
	Time          uint64  `json:"time"`
	CreatedHeight uint64  `json:"createdHeight"`
	Fee           uint64  `json:"fee"`
	Memo          string  `json:"memo"`
	NetworkID     uint64  `json:"networkID"`
	ChainID       uint64  `json:"chainID"`
}

// Signature pairs a public key with its signature over the canonical bytes
type Signature struct {
	PublicKey HexBytes `json:"publicKey"`
	Signature HexBytes `json:"signature"`
}

// SignedTransaction is the unit handed to the network. It is not modified after
// the builder returns it.
type SignedTransaction struct {
	UnsignedTransaction
	Signature *Signature `json:"signature"`
}

// SubmissionPayload is the request body of the network submit call
type SubmissionPayload struct {
	RawTransaction *SignedTransaction `json:"raw_transaction"`
}

func (tx *SignedTransaction) Payload() SubmissionPayload {
	return SubmissionPayload{RawTransaction: tx}
}
