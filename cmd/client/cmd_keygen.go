package main

import (
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/client/cli"
	"github.com/dmitrijs2005/gophschedule/internal/client/config"
	"github.com/spf13/cobra"
)

var (
	keygenChainID int64
	keygenForce   bool
)

func init() {
	keygenCmd.Flags().Int64Var(&keygenChainID, "chain-id", 11155111, "chain id recorded in the keystore")
	keygenCmd.Flags().BoolVar(&keygenForce, "force", false, "overwrite an existing keystore")
	rootCmd.AddCommand(keygenCmd)
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Create a wallet keystore",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		addr, err := cli.Keygen(cfg.KeystorePath, keygenChainID, keygenForce, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\nAddress: %s\n", cfg.KeystorePath, addr)
		return nil
	},
}
