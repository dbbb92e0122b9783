// Package cli provides the interactive gophschedule command-line client.
//
// It wires configuration, the selected store backend, the wallet keystore and
// the schedule services into a small REPL. Reading the schedule needs no
// credential; adding items, completing them and revealing durations each ask
// the wallet to sign, which prompts for the keystore passphrase.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// The same commands are reachable non-interactively through App.List and
// App.Stats.
package cli
