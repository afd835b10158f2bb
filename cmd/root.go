package cmd

import (
	"os"

	"github.com/canopy-network/swap/logx"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swap",
	Short: "Swap wallet keyfile and signing CLI",
	Long: `Command line interface for managing encrypted wallet keyfiles and building
signed order-book transactions for the ledger.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
