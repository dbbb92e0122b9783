package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasWallet() bool
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Reveal(ctx context.Context, id string) error
	Hide(ctx context.Context) error
	Complete(ctx context.Context, id string) error
	Stats(ctx context.Context) error
	Whoami(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands:
//
//	help                  show available commands
//	list | l | refresh    re-sync and list the schedule
//	stats                 counts and productivity score
//	whoami                wallet address
//	add                   create an item (wallet)
//	reveal <id>           show the decrypted duration (wallet)
//	hide                  forget the decrypted view
//	complete <id>         mark an item completed (wallet)
//	exit | quit           leave the program
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.hasWallet() {
				printlnFn("Available commands: (l)ist, refresh, add, reveal <id>, hide, complete <id>, stats, whoami, exit")
			} else {
				printlnFn("Available commands: (l)ist, refresh, stats, whoami, exit (read-only, no wallet)")
			}

		case "l", "list", "refresh":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "reveal":
			cmdErr = a.Reveal(ctx, arg)

		case "hide":
			cmdErr = a.Hide(ctx)

		case "complete":
			cmdErr = a.Complete(ctx, arg)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "whoami":
			cmdErr = a.Whoami(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
