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
	isLoggedIn() bool
	reportExpired()
	Login(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Home(ctx context.Context) error
	Profile(ctx context.Context) error
	Record(ctx context.Context) error
	Edit(ctx context.Context) error
	Session(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the patient CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - login            authenticate
//	  - reset            request a password reset link
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - home             greeting, week strip and today's consultations
//	  - profile          show the patient profile
//	  - record           show the medical record
//	  - edit             edit name and phone number
//	  - session          show the stored session
//	  - logout           log out
//	  - exit | quit      leave the program
//
// Command errors are not printed here; handlers report their own notices.
// After every command the REPL announces an expired session, if any.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("medesi (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, profile, record, edit, session, logout, exit")
			} else {
				printlnFn("Available commands: login, reset, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "home":
			_ = a.Home(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "record":
			_ = a.Record(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "session":
			_ = a.Session(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.reportExpired()
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "home", "profile", "record", "edit", "session", "logout":
		return true
	}
	return false
}
