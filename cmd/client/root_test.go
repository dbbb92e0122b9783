package main

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/gophschedule/internal/client/config"
	"github.com/dmitrijs2005/gophschedule/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"repl", "list", "stats", "keygen", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCommand_FindsSubcommandPastStoreFlags(t *testing.T) {
	args := flagx.DropArgs([]string{"-store", "memory", "-a", "127.0.0.1:1", "list"}, config.FlagNames())
	cmd, _, err := rootCmd.Find(args)
	require.NoError(t, err)
	assert.Equal(t, "list", cmd.Name())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Build version:")
}
