// Package codec produces the bytes the ledger signs and verifies.
//
// The ledger marshals its protobuf Transaction with the signature field cleared and
// verifies the signature over those bytes. Encoding here follows proto3 exactly:
// fields in ascending number order, varints for integers, length-delimited framing
// for strings, bytes and nested messages, and zero values left out. The message
// payload travels as a google.protobuf.Any. Every field, time included, is covered.
package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/canopy-network/swap/errors"
	"github.com/canopy-network/swap/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Transaction field numbers
const (
	txMessageType   protowire.Number = 1
	txMsg           protowire.Number = 2
	txSignature     protowire.Number = 3
	txCreatedHeight protowire.Number = 4
	txTime          protowire.Number = 5
	txFee           protowire.Number = 6
	txMemo          protowire.Number = 7
	txNetworkID     protowire.Number = 8
	txChainID       protowire.Number = 9
)

// google.protobuf.Any and Signature field numbers
const (
	anyTypeURL protowire.Number = 1
	anyValue   protowire.Number = 2

	sigPublicKey protowire.Number = 1
	sigSignature protowire.Number = 2
)

const typeURLPrefix = "type.googleapis.com/types."

// CanonicalBytes encodes tx as the ledger's sign bytes
func CanonicalBytes(tx *types.UnsignedTransaction) ([]byte, error) {
	if tx == nil {
		return nil, errors.NewError(errors.ErrCodeEncodingMismatch, errors.ErrMsgMissingMessage)
	}
	return appendTransaction(nil, tx, nil)
}

// SignedBytes encodes tx with its signature, as stored and hashed by the ledger
func SignedBytes(tx *types.SignedTransaction) ([]byte, error) {
	if tx == nil || tx.Signature == nil {
		return nil, errors.NewError(errors.ErrCodeEncodingMismatch, "Signed transaction has no signature")
	}
	sig := appendBytes(nil, sigPublicKey, tx.Signature.PublicKey)
	sig = appendBytes(sig, sigSignature, tx.Signature.Signature)
	return appendTransaction(nil, &tx.UnsignedTransaction, sig)
}

// TxHash is the hex sha256 of the signed transaction bytes
func TxHash(tx *types.SignedTransaction) (string, error) {
	b, err := SignedBytes(tx)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// appendTransaction writes the Transaction message; a nil sig leaves field 3 absent
func appendTransaction(b []byte, tx *types.UnsignedTransaction, sig []byte) ([]byte, error) {
	typeURL, value, err := MessageBytes(tx.Type, tx.Msg)
	if err != nil {
		return nil, err
	}
	anyMsg := appendString(nil, anyTypeURL, typeURL)
	anyMsg = appendBytes(anyMsg, anyValue, value)

	b = appendString(b, txMessageType, tx.Type)
	b = appendMessage(b, txMsg, anyMsg)
	if sig != nil {
		b = appendMessage(b, txSignature, sig)
	}
	b = appendVarint(b, txCreatedHeight, tx.CreatedHeight)
	b = appendVarint(b, txTime, tx.Time)
	b = appendVarint(b, txFee, tx.Fee)
	b = appendString(b, txMemo, tx.Memo)
	b = appendVarint(b, txNetworkID, tx.NetworkID)
	b = appendVarint(b, txChainID, tx.ChainID)
	return b, nil
}

// MessageBytes selects the layout for msgType and returns the Any type URL and the
// encoded payload. The payload must be the variant msgType names.
func MessageBytes(msgType string, msg types.Message) (string, []byte, error) {
	if msg == nil {
		return "", nil, errors.NewError(errors.ErrCodeEncodingMismatch, errors.ErrMsgMissingMessage)
	}
	var (
		name  string
		value []byte
		ok    bool
	)
	switch msgType {
	case types.MessageTypeSend:
		var m *types.MessageSend
		if m, ok = msg.(*types.MessageSend); ok && m != nil {
			name, value = "MessageSend", encodeSend(m)
		}
	case types.MessageTypeCreateOrder:
		var m *types.MessageCreateOrder
		if m, ok = msg.(*types.MessageCreateOrder); ok && m != nil {
			name, value = "MessageCreateOrder", encodeCreateOrder(m)
		}
	case types.MessageTypeEditOrder:
		var m *types.MessageEditOrder
		if m, ok = msg.(*types.MessageEditOrder); ok && m != nil {
			name, value = "MessageEditOrder", encodeEditOrder(m)
		}
	case types.MessageTypeDeleteOrder:
		var m *types.MessageDeleteOrder
		if m, ok = msg.(*types.MessageDeleteOrder); ok && m != nil {
			name, value = "MessageDeleteOrder", encodeDeleteOrder(m)
		}
	default:
		return "", nil, errors.NewError(errors.ErrCodeEncodingMismatch,
			fmt.Sprintf(errors.ErrMsgUnknownMessageType, msgType))
	}
	if name == "" {
		return "", nil, errors.NewError(errors.ErrCodeEncodingMismatch,
			fmt.Sprintf(errors.ErrMsgMessageTypeMismatch, msg, msgType))
	}
	return typeURLPrefix + name, value, nil
}

func encodeSend(m *types.MessageSend) []byte {
	b := appendBytes(nil, 1, m.FromAddress)
	b = appendBytes(b, 2, m.ToAddress)
	b = appendVarint(b, 3, m.Amount)
	return b
}

func encodeCreateOrder(m *types.MessageCreateOrder) []byte {
	b := appendVarint(nil, 1, m.ChainID)
	b = appendBytes(b, 2, m.Data)
	b = appendVarint(b, 3, m.AmountForSale)
	b = appendVarint(b, 4, m.RequestedAmount)
	b = appendBytes(b, 5, m.SellerReceiveAddress)
	b = appendBytes(b, 6, m.SellerSendAddress)
	b = appendBytes(b, 7, m.OrderID)
	return b
}

func encodeEditOrder(m *types.MessageEditOrder) []byte {
	b := appendBytes(nil, 1, m.OrderID)
	b = appendVarint(b, 2, m.ChainID)
	b = appendBytes(b, 3, m.Data)
	b = appendVarint(b, 4, m.AmountForSale)
	b = appendVarint(b, 5, m.RequestedAmount)
	b = appendBytes(b, 6, m.SellerReceiveAddress)
	return b
}

func encodeDeleteOrder(m *types.MessageDeleteOrder) []byte {
	b := appendBytes(nil, 1, m.OrderID)
	b = appendVarint(b, 2, m.ChainID)
	return b
}

// proto3 implicit presence: zero scalars and empty strings/bytes are not written

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendMessage always writes a set sub-message, even when its encoding is empty
func appendMessage(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
