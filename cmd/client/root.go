package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/gophschedule/internal/client/cli"
	"github.com/dmitrijs2005/gophschedule/internal/client/config"
	"github.com/dmitrijs2005/gophschedule/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "gophschedule",
	Short:        "Encrypted schedule client",
	Long:         "gophschedule keeps a wallet-owned schedule in a remote key/value store.\nStore flags: -store -a -d -keystore -contract -n -i -c (see the config package).",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive shell (default)",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	app.Run(ctx)
	return nil
}

func openApp(ctx context.Context) (*cli.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, "text")
	return cli.NewApp(ctx, cfg, logger)
}
