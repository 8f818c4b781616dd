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
// The real View type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	status() string
	flash()
	Login(ctx context.Context) error
	Code(ctx context.Context) error
	List(ctx context.Context) error
	Upload(ctx context.Context) error
	Select(ctx context.Context) error
	Show(ctx context.Context) error
	Share(ctx context.Context) error
	Unshare(ctx context.Context) error
	Delete(ctx context.Context) error
	Download(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the vault console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'v'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// through the notification channel, which the loop flashes after every
// command. This keeps the REPL resilient and focused on I/O.
func runREPL(ctx context.Context, v execIface, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fv> %s ", v.status()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if v.isAuthenticated() {
				printlnFn("Available commands: (l)ist, upload, select, show, share, unshare, delete, download, logout, exit")
			} else {
				printlnFn("Available commands: login, code, exit")
			}

		case "login":
			_ = v.Login(ctx)

		case "code":
			_ = v.Code(ctx)

		case "l", "list":
			_ = v.List(ctx)

		case "upload":
			_ = v.Upload(ctx)

		case "select":
			_ = v.Select(ctx)

		case "show":
			_ = v.Show(ctx)

		case "share":
			_ = v.Share(ctx)

		case "unshare":
			_ = v.Unshare(ctx)

		case "delete":
			_ = v.Delete(ctx)

		case "download":
			_ = v.Download(ctx)

		case "logout":
			_ = v.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		v.flash()
	}
}
