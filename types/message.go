package types

import (
	"reflect"

	"github.com/canopy-network/swap/security/validation"
)

// Message type names as carried in the transaction's type field
const (
	MessageTypeSend        = "send"
	MessageTypeCreateOrder = "createOrder"
	MessageTypeEditOrder   = "editOrder"
	MessageTypeDeleteOrder = "deleteOrder"
)

// Message is the operation payload of a transaction
type Message interface {
	MessageType() string
	// Check reports whether the payload is well-formed for its type
	Check() error
}

// IsKnownMessageType reports whether name is one of the supported message types
func IsKnownMessageType(name string) bool {
	switch name {
	case MessageTypeSend, MessageTypeCreateOrder, MessageTypeEditOrder, MessageTypeDeleteOrder:
		return true
	}
	return false
}

// MessageSend transfers funds between two accounts
type MessageSend struct {
	FromAddress HexBytes `json:"fromAddress"`
	ToAddress   HexBytes `json:"toAddress"`
	Amount      uint64   `json:"amount"`
}

func (m *MessageSend) MessageType() string { return MessageTypeSend }

func (m *MessageSend) Check() error {
	if err := validation.ValidateAddress(validation.FromAddressField, m.FromAddress); err != nil {
		return err
	}
	if err := validation.ValidateAddress(validation.ToAddressField, m.ToAddress); err != nil {
		return err
	}
	return validation.ValidateNonZero(validation.AmountField, m.Amount)
}

// MessageCreateOrder opens a sell order. OrderID is always empty here: the ledger
// assigns it from the transaction hash.
type MessageCreateOrder struct {
	ChainID              uint64   `json:"chainId"`
	Data                 HexBytes `json:"data"`
	AmountForSale        uint64   `json:"amountForSale"`
	RequestedAmount      uint64   `json:"requestedAmount"`
	SellerReceiveAddress HexBytes `json:"sellerReceiveAddress"`
	SellerSendAddress    HexBytes `json:"sellerSendAddress"`
	OrderID              HexBytes `json:"orderId"`
}

func (m *MessageCreateOrder) MessageType() string { return MessageTypeCreateOrder }

func (m *MessageCreateOrder) Check() error {
	if err := validation.ValidateNonZero(validation.OrderChainIDField, m.ChainID); err != nil {
		return err
	}
	if err := validation.ValidateNonZero(validation.AmountForSaleField, m.AmountForSale); err != nil {
		return err
	}
	if err := validation.ValidateNonZero(validation.RequestedAmountField, m.RequestedAmount); err != nil {
		return err
	}
	if err := validation.ValidateRequired(validation.SellerReceiveAddressField, m.SellerReceiveAddress); err != nil {
		return err
	}
	if err := validation.ValidateAddress(validation.SellerSendAddressField, m.SellerSendAddress); err != nil {
		return err
	}
	return validation.ValidateEmpty(validation.OrderIDField, m.OrderID)
}

// MessageEditOrder rewrites the terms of an existing order
type MessageEditOrder struct {
	OrderID              HexBytes `json:"orderId"`
	ChainID              uint64   `json:"chainId"`
	Data                 HexBytes `json:"data"`
	AmountForSale        uint64   `json:"amountForSale"`
	RequestedAmount      uint64   `json:"requestedAmount"`
	SellerReceiveAddress HexBytes `json:"sellerReceiveAddress"`
}

func (m *MessageEditOrder) MessageType() string { return MessageTypeEditOrder }

func (m *MessageEditOrder) Check() error {
	if err := validation.ValidateRequired(validation.OrderIDField, m.OrderID); err != nil {
		return err
	}
	if err := validation.ValidateNonZero(validation.OrderChainIDField, m.ChainID); err != nil {
		return err
	}
	if err := validation.ValidateNonZero(validation.AmountForSaleField, m.AmountForSale); err != nil {
		return err
	}
	if err := validation.ValidateNonZero(validation.RequestedAmountField, m.RequestedAmount); err != nil {
		return err
	}
	return validation.ValidateRequired(validation.SellerReceiveAddressField, m.SellerReceiveAddress)
}

// MessageDeleteOrder withdraws an open order
type MessageDeleteOrder struct {
	OrderID HexBytes `json:"orderId"`
	ChainID uint64   `json:"chainId"`
}

func (m *MessageDeleteOrder) MessageType() string { return MessageTypeDeleteOrder }

func (m *MessageDeleteOrder) Check() error {
	if err := validation.ValidateRequired(validation.OrderIDField, m.OrderID); err != nil {
		return err
	}
	return validation.ValidateNonZero(validation.OrderChainIDField, m.ChainID)
}

// IsNilMessage reports whether msg is nil or a typed nil pointer
func IsNilMessage(msg Message) bool {
	if msg == nil {
		return true
	}
	v := reflect.ValueOf(msg)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
