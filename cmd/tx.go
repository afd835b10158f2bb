package cmd

import (
	"fmt"

	"github.com/canopy-network/swap/client"
	"github.com/canopy-network/swap/codec"
	"github.com/canopy-network/swap/config"
	"github.com/canopy-network/swap/jsonx"
	"github.com/canopy-network/swap/logx"
	"github.com/canopy-network/swap/transaction"
	"github.com/canopy-network/swap/types"
	"github.com/canopy-network/swap/utils"
	"github.com/spf13/cobra"
)

type TxConfig struct {
	KeyfilePath  string
	Password     string
	ConfigPath   string
	ProfilesPath string
	Profile      string
	NetworkID    int64
	ChainID      int64
	Height       int64
	Fee          int64
	Memo         string
	RPCURL       string
	Submit       bool
}

type OrderConfig struct {
	OrderID         string
	OrderChainID    uint64
	Data            string
	AmountForSale   string
	RequestedAmount string
	ReceiveAddress  string
	SendAddress     string
	To              string
	Amount          string
}

var (
	txConfig    TxConfig
	orderConfig OrderConfig
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Build, sign and optionally submit a transaction",
	Long: `Build a transaction from command line parameters, sign it with the key sealed in
a keyfile and print the submission payload. With --submit the payload is posted once to
the network RPC endpoint.

Network id, chain id, fee and RPC endpoint come from a network profile (--profiles,
--profile) and may be overridden with flags. Amounts are decimal and converted to
micro-units (6 decimal places).`,
}

var txSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Transfer funds to another address",
	Long: `Examples:
  swap tx send -k ./wallet.json --to 0303...03 --amount 12.5 --height 1200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := utils.ToMicroUnits(orderConfig.Amount)
		if err != nil {
			return err
		}
		msg, err := transaction.NewSend(transaction.SendParams{
			ToAddress: orderConfig.To,
			Amount:    amount,
		})
		if err != nil {
			return err
		}
		return runTx(cmd, msg)
	},
}

var txCreateOrderCmd = &cobra.Command{
	Use:   "create-order",
	Short: "Open a sell order",
	RunE: func(cmd *cobra.Command, args []string) error {
		forSale, requested, err := orderAmounts()
		if err != nil {
			return err
		}
		msg, err := transaction.NewCreateOrder(transaction.CreateOrderParams{
			ChainID:              orderConfig.OrderChainID,
			Data:                 orderConfig.Data,
			AmountForSale:        forSale,
			RequestedAmount:      requested,
			SellerReceiveAddress: orderConfig.ReceiveAddress,
			SellerSendAddress:    orderConfig.SendAddress,
		})
		if err != nil {
			return err
		}
		return runTx(cmd, msg)
	},
}

var txEditOrderCmd = &cobra.Command{
	Use:   "edit-order",
	Short: "Rewrite the terms of an open order",
	RunE: func(cmd *cobra.Command, args []string) error {
		forSale, requested, err := orderAmounts()
		if err != nil {
			return err
		}
		msg, err := transaction.NewEditOrder(transaction.EditOrderParams{
			OrderID:              orderConfig.OrderID,
			ChainID:              orderConfig.OrderChainID,
			Data:                 orderConfig.Data,
			AmountForSale:        forSale,
			RequestedAmount:      requested,
			SellerReceiveAddress: orderConfig.ReceiveAddress,
		})
		if err != nil {
			return err
		}
		return runTx(cmd, msg)
	},
}

var txDeleteOrderCmd = &cobra.Command{
	Use:   "delete-order",
	Short: "Withdraw an open order",
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := transaction.NewDeleteOrder(transaction.DeleteOrderParams{
			OrderID: orderConfig.OrderID,
			ChainID: orderConfig.OrderChainID,
		})
		if err != nil {
			return err
		}
		return runTx(cmd, msg)
	},
}

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txSendCmd)
	txCmd.AddCommand(txCreateOrderCmd)
	txCmd.AddCommand(txEditOrderCmd)
	txCmd.AddCommand(txDeleteOrderCmd)

	pf := txCmd.PersistentFlags()
	pf.StringVarP(&txConfig.KeyfilePath, "keyfile", "k", "", "path of the signing keyfile")
	pf.StringVarP(&txConfig.Password, "password", "p", "", "keyfile password (default $"+PasswordEnv+")")
	pf.StringVar(&txConfig.ConfigPath, "config", "", "signer .ini config ([kdf], [rpc])")
	pf.StringVar(&txConfig.ProfilesPath, "profiles", "", "networks.yml with network profiles")
	pf.StringVar(&txConfig.Profile, "profile", config.DefaultProfile.Name, "network profile name")
	pf.Int64Var(&txConfig.NetworkID, "network-id", 0, "network id (overrides the profile)")
	pf.Int64Var(&txConfig.ChainID, "chain-id", 0, "chain id (overrides the profile)")
	pf.Int64Var(&txConfig.Height, "height", 0, "current block height")
	pf.Int64Var(&txConfig.Fee, "fee", 0, "fee in micro-units (overrides the profile)")
	pf.StringVarP(&txConfig.Memo, "memo", "m", "", "transaction memo")
	pf.StringVar(&txConfig.RPCURL, "rpc", "", "RPC endpoint (overrides the profile)")
	pf.BoolVar(&txConfig.Submit, "submit", false, "post the signed transaction to the RPC endpoint")

	txSendCmd.Flags().StringVarP(&orderConfig.To, "to", "t", "", "recipient address in hex")
	txSendCmd.Flags().StringVarP(&orderConfig.Amount, "amount", "a", "", "amount, e.g. 12.5 or 1_000")

	for _, c := range []*cobra.Command{txCreateOrderCmd, txEditOrderCmd, txDeleteOrderCmd} {
		c.Flags().Uint64Var(&orderConfig.OrderChainID, "order-chain-id", 0, "counter-asset chain id of the order")
	}
	for _, c := range []*cobra.Command{txCreateOrderCmd, txEditOrderCmd} {
		c.Flags().StringVar(&orderConfig.Data, "data", "", "order data in hex")
		c.Flags().StringVar(&orderConfig.AmountForSale, "amount-for-sale", "", "amount offered")
		c.Flags().StringVar(&orderConfig.RequestedAmount, "requested-amount", "", "counter-asset amount requested")
		c.Flags().StringVar(&orderConfig.ReceiveAddress, "receive-address", "", "seller address on the counter-asset chain")
	}
	txCreateOrderCmd.Flags().StringVar(&orderConfig.SendAddress, "send-address", "", "seller send address in hex (default keyfile address)")
	for _, c := range []*cobra.Command{txEditOrderCmd, txDeleteOrderCmd} {
		c.Flags().StringVar(&orderConfig.OrderID, "order-id", "", "order id in hex")
	}
}

func orderAmounts() (uint64, uint64, error) {
	forSale, err := utils.ToMicroUnits(orderConfig.AmountForSale)
	if err != nil {
		return 0, 0, fmt.Errorf("amount-for-sale: %w", err)
	}
	requested, err := utils.ToMicroUnits(orderConfig.RequestedAmount)
	if err != nil {
		return 0, 0, fmt.Errorf("requested-amount: %w", err)
	}
	return forSale, requested, nil
}

// resolveNetwork merges the selected profile with flag overrides
func resolveNetwork(cmd *cobra.Command) (transaction.NetworkParams, string, error) {
	profile := config.DefaultProfile
	if txConfig.ProfilesPath != "" {
		profiles, err := config.LoadNetworkProfiles(txConfig.ProfilesPath)
		if err != nil {
			return transaction.NetworkParams{}, "", err
		}
		if profile, err = config.FindProfile(profiles, txConfig.Profile); err != nil {
			return transaction.NetworkParams{}, "", err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("network-id") {
		profile.NetworkID = txConfig.NetworkID
	}
	if flags.Changed("chain-id") {
		profile.ChainID = txConfig.ChainID
	}
	if flags.Changed("fee") {
		profile.Fee = txConfig.Fee
	}
	if flags.Changed("rpc") {
		profile.RPCURL = txConfig.RPCURL
	}

	return transaction.NetworkParams{
		NetworkID: profile.NetworkID,
		ChainID:   profile.ChainID,
		Height:    txConfig.Height,
		Fee:       profile.Fee,
	}, profile.RPCURL, nil
}

func runTx(cmd *cobra.Command, msg types.Message) error {
	kf, err := readKeyfile(txConfig.KeyfilePath)
	if err != nil {
		return err
	}
	password, err := resolvePassword(txConfig.Password)
	if err != nil {
		return err
	}
	vault, cfg, err := newVault(txConfig.ConfigPath)
	if err != nil {
		return err
	}
	network, rpcURL, err := resolveNetwork(cmd)
	if err != nil {
		return err
	}

	ctx := contextOf(cmd)
	signed, err := transaction.NewBuilder(vault).BuildAndSign(ctx, transaction.Request{
		Keyfile:  kf,
		Password: password,
		Message:  msg,
		Network:  network,
		Memo:     txConfig.Memo,
	})
	if err != nil {
		return err
	}

	hash, err := codec.TxHash(signed)
	if err != nil {
		return err
	}
	out, err := jsonx.MarshalIndent(signed.Payload())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, string(out))
	fmt.Fprintf(w, "tx hash: %s\n", hash)

	if !txConfig.Submit {
		return nil
	}
	if !cmd.Flags().Changed("rpc") && txConfig.ProfilesPath == "" && txConfig.ConfigPath != "" {
		rpcURL = cfg.RPC.URL
	}
	rpc, err := client.NewClient(client.Config{Endpoint: rpcURL, Timeout: cfg.RPC.Timeout()})
	if err != nil {
		return err
	}
	res, err := rpc.Submit(ctx, signed)
	if err != nil {
		return err
	}
	logx.Info("TX CLI", "submitted ", utils.ShortenLog(hash), " to ", rpc.Endpoint())
	fmt.Fprintf(w, "submitted: status %d %s\n", res.StatusCode, res.TxHash)
	return nil
}
