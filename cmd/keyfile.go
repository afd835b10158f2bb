package cmd

import (
	"context"
	"fmt"

	"github.com/canopy-network/swap/curve"
	"github.com/canopy-network/swap/logx"
	"github.com/canopy-network/swap/utils"
	"github.com/spf13/cobra"
)

var (
	kfCurve    string
	kfPassword string
	kfNickname string
	kfAddress  string
	kfOut      string
	kfPath     string
	kfConfig   string
)

var keyfileCmd = &cobra.Command{
	Use:   "keyfile",
	Short: "Create and check encrypted wallet keyfiles",
}

var keyfileNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a key pair and seal it into a keyfile",
	Long: `Generate a fresh ED25519 or BLS12-381 key pair and write it to disk encrypted
under the given password.

Examples:
  swap keyfile new --curve bls12381 --nickname trading --out ./trading.json
  SWAP_PASSWORD=secret swap keyfile new --out ./wallet.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if kfOut == "" {
			return fmt.Errorf("--out is required")
		}
		password, err := resolvePassword(kfPassword)
		if err != nil {
			return err
		}
		typ, err := curve.ParseType(kfCurve)
		if err != nil {
			return err
		}
		signer, err := curve.SignerFor(typ)
		if err != nil {
			return err
		}
		vault, _, err := newVault(kfConfig)
		if err != nil {
			return err
		}

		priv, pub, err := signer.GenerateKey(nil)
		if err != nil {
			return err
		}
		defer clear(priv)

		address := kfAddress
		if address == "" {
			address = addressFromPublicKey(pub)
		}
		kf, err := vault.Encrypt(contextOf(cmd), priv, pub, password, address)
		if err != nil {
			return err
		}
		kf.KeyNickname = kfNickname

		if err := writeKeyfile(kfOut, kf); err != nil {
			return err
		}
		logx.Info("KEYFILE CLI", "created ", typ.String(), " keyfile ", utils.ShortenLog(kf.PublicKey), " at ", kfOut)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", typ.String(), kf.PublicKey, kf.KeyAddress)
		return nil
	},
}

var keyfileVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that a password opens a keyfile",
	RunE: func(cmd *cobra.Command, args []string) error {
		kf, err := readKeyfile(kfPath)
		if err != nil {
			return err
		}
		password, err := resolvePassword(kfPassword)
		if err != nil {
			return err
		}
		typ, err := curve.Detect(kf.PublicKey)
		if err != nil {
			return err
		}
		vault, _, err := newVault(kfConfig)
		if err != nil {
			return err
		}
		ok, err := vault.Verify(contextOf(cmd), kf, password)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("password does not open keyfile %s", kfPath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK %s %s\n", typ.String(), kf.KeyAddress)
		return nil
	},
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(keyfileCmd)
	keyfileCmd.AddCommand(keyfileNewCmd)
	keyfileCmd.AddCommand(keyfileVerifyCmd)

	keyfileCmd.PersistentFlags().StringVarP(&kfPassword, "password", "p", "", "keyfile password (default $"+PasswordEnv+")")
	keyfileCmd.PersistentFlags().StringVar(&kfConfig, "config", "", "signer .ini config with [kdf] parameters")

	keyfileNewCmd.Flags().StringVar(&kfCurve, "curve", curve.ED25519.String(), "key curve: ed25519 or bls12381")
	keyfileNewCmd.Flags().StringVar(&kfNickname, "nickname", "", "human readable key name")
	keyfileNewCmd.Flags().StringVar(&kfAddress, "address", "", "account address in hex (default derived from the public key)")
	keyfileNewCmd.Flags().StringVarP(&kfOut, "out", "o", "", "path of the keyfile to write")

	keyfileVerifyCmd.Flags().StringVarP(&kfPath, "keyfile", "k", "", "path of the keyfile to check")
}
