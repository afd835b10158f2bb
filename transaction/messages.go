package transaction

import (
	"github.com/canopy-network/swap/security/validation"
	"github.com/canopy-network/swap/types"
)

// Order parameters as collected by the UI: hex strings for addresses, data and ids,
// amounts already converted to integer micro-units (see utils.ToMicroUnits).

type SendParams struct {
	FromAddress string // defaults to the keyfile address
	ToAddress   string
	Amount      uint64
}

type CreateOrderParams struct {
	ChainID              uint64
	Data                 string
	AmountForSale        uint64
	RequestedAmount      uint64
	SellerReceiveAddress string
	SellerSendAddress    string // defaults to the keyfile address
}

type EditOrderParams struct {
	OrderID              string
	ChainID              uint64
	Data                 string
	AmountForSale        uint64
	RequestedAmount      uint64
	SellerReceiveAddress string
}

type DeleteOrderParams struct {
	OrderID string
	ChainID uint64
}

func NewSend(p SendParams) (*types.MessageSend, error) {
	from, err := validation.DecodeHex(validation.FromAddressField, p.FromAddress)
	if err != nil {
		return nil, err
	}
	to, err := validation.DecodeHex(validation.ToAddressField, p.ToAddress)
	if err != nil {
		return nil, err
	}
	return &types.MessageSend{
		FromAddress: from,
		ToAddress:   to,
		Amount:      p.Amount,
	}, nil
}

// NewCreateOrder leaves the order id empty; the ledger derives it from the tx hash
func NewCreateOrder(p CreateOrderParams) (*types.MessageCreateOrder, error) {
	data, err := validation.DecodeHex(validation.DataField, p.Data)
	if err != nil {
		return nil, err
	}
	receive, err := validation.DecodeHex(validation.SellerReceiveAddressField, p.SellerReceiveAddress)
	if err != nil {
		return nil, err
	}
	send, err := validation.DecodeHex(validation.SellerSendAddressField, p.SellerSendAddress)
	if err != nil {
		return nil, err
	}
	return &types.MessageCreateOrder{
		ChainID:              p.ChainID,
		Data:                 data,
		AmountForSale:        p.AmountForSale,
		RequestedAmount:      p.RequestedAmount,
		SellerReceiveAddress: receive,
		SellerSendAddress:    send,
	}, nil
}

func NewEditOrder(p EditOrderParams) (*types.MessageEditOrder, error) {
	orderID, err := validation.DecodeHex(validation.OrderIDField, p.OrderID)
	if err != nil {
		return nil, err
	}
	data, err := validation.DecodeHex(validation.DataField, p.Data)
	if err != nil {
		return nil, err
	}
	receive, err := validation.DecodeHex(validation.SellerReceiveAddressField, p.SellerReceiveAddress)
	if err != nil {
		return nil, err
	}
	return &types.MessageEditOrder{
		OrderID:              orderID,
		ChainID:              p.ChainID,
		Data:                 data,
		AmountForSale:        p.AmountForSale,
		RequestedAmount:      p.RequestedAmount,
		SellerReceiveAddress: receive,
	}, nil
}

func NewDeleteOrder(p DeleteOrderParams) (*types.MessageDeleteOrder, error) {
	orderID, err := validation.DecodeHex(validation.OrderIDField, p.OrderID)
	if err != nil {
		return nil, err
	}
	return &types.MessageDeleteOrder{
		OrderID: orderID,
		ChainID: p.ChainID,
	}, nil
}
