package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasSelection() bool
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Edit(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	Unselect(ctx context.Context) error
	Delete(ctx context.Context) error
	Pin(ctx context.Context) error
	Tag(ctx context.Context, args []string) error
	Untag(ctx context.Context, args []string) error
	Encrypt(ctx context.Context) error
	Decrypt(ctx context.Context) error
	Summary(ctx context.Context) error
	SuggestTags(ctx context.Context) error
	Grammar(ctx context.Context) error
	Translate(ctx context.Context, args []string) error
	Reload(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the notez CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands operating on "the selected note" (edit, delete, pin, tag, untag,
// encrypt, decrypt and the AI helpers) require a prior "select <id>".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("notez %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, show [id], new, select <id>, unselect, reload, exit")
			if a.hasSelection() {
				printlnFn("Selected note: edit, delete, pin, tag <tag>, untag <tag>, encrypt, decrypt")
				printlnFn("AI: summary, suggest, grammar, translate <lang>")
			}

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "new", "add":
			_ = a.New(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "select":
			_ = a.Select(ctx, args)

		case "unselect":
			_ = a.Unselect(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "pin":
			_ = a.Pin(ctx)

		case "tag":
			_ = a.Tag(ctx, args)

		case "untag":
			_ = a.Untag(ctx, args)

		case "encrypt":
			_ = a.Encrypt(ctx)

		case "decrypt":
			_ = a.Decrypt(ctx)

		case "summary":
			_ = a.Summary(ctx)

		case "suggest":
			_ = a.SuggestTags(ctx)

		case "grammar":
			_ = a.Grammar(ctx)

		case "translate":
			_ = a.Translate(ctx, args)

		case "reload":
			_ = a.Reload(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
