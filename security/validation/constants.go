package validation

const (
	// MaxMemoLength is the ledger's memo limit, counted in bytes
	MaxMemoLength = 200
	// AddressSize is the length of a ledger account address
	AddressSize = 20

	FeeField                  = "fee"
	NetworkIDField            = "networkID"
	ChainIDField              = "chainID"
	HeightField               = "createdHeight"
	MemoField                 = "memo"
	FromAddressField          = "fromAddress"
	ToAddressField            = "toAddress"
	AmountField               = "amount"
	OrderChainIDField         = "chainId"
	DataField                 = "data"
	AmountForSaleField        = "amountForSale"
	RequestedAmountField      = "requestedAmount"
	SellerReceiveAddressField = "sellerReceiveAddress"
	SellerSendAddressField    = "sellerSendAddress"
	OrderIDField              = "orderId"
	MessageField              = "msg"
)
