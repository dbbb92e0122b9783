package main

import (
	"os"

	"github.com/dmitrijs2005/gophschedule/internal/client/config"
	"github.com/dmitrijs2005/gophschedule/internal/flagx"
)

func main() {
	// Store and wallet flags belong to the config package; cobra only sees
	// the subcommand and its own flags.
	rootCmd.SetArgs(flagx.DropArgs(os.Args[1:], config.FlagNames()))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
