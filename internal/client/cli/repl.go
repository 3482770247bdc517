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
	isLoggedIn() bool
	Navigate(ctx context.Context, path string) error
	Logout(ctx context.Context) error
	Rename(ctx context.Context, username string) error
	Watch(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the bloghub CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help              show available commands
//	  - feed              latest blogs                 (/)
//	  - search <text>     search blogs                 (/search?q=)
//	  - view <id>         read one blog                (/blog/:id)
//	  - go <path>         open any route
//	  - watch             print new blogs as they are published
//	  - exit | quit       leave the program
//
//	Not logged in:
//	  - login, signup                                  (/login, /signup)
//
//	Logged in:
//	  - create            write a blog                 (/create)
//	  - profile           your profile and blogs       (/profile)
//	  - rename <name>     change your username
//	  - logout
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("bloghub (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed, search <text>, view <id>, create, profile, rename <name>, watch, go <path>, logout, exit")
			} else {
				printlnFn("Available commands: feed, search <text>, view <id>, watch, go <path>, login, signup, exit")
			}

		case "feed", "home":
			_ = a.Navigate(ctx, PathFeed)

		case "search":
			q := strings.Join(args, " ")
			if q == "" {
				printlnFn("Usage: search <text>")
				continue
			}
			_ = a.Navigate(ctx, SearchPath(q))

		case "view":
			if len(args) != 1 {
				printlnFn("Usage: view <id>")
				continue
			}
			_ = a.Navigate(ctx, BlogPath(args[0]))

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Navigate(ctx, args[0])

		case "login":
			_ = a.Navigate(ctx, PathLogin)

		case "signup", "register":
			_ = a.Navigate(ctx, PathSignUp)

		case "create":
			_ = a.Navigate(ctx, PathCreate)

		case "profile":
			_ = a.Navigate(ctx, PathProfile)

		case "rename":
			if len(args) == 0 {
				printlnFn("Usage: rename <name>")
				continue
			}
			_ = a.Rename(ctx, strings.Join(args, " "))

		case "logout":
			_ = a.Logout(ctx)

		case "watch":
			_ = a.Watch(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
