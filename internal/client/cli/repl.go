package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	Resend(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error
	Prefs(ctx context.Context) error
	SetPreference(ctx context.Context, name string, args []string) error
	ResetPrefs(ctx context.Context) error
}

// runREPL reads commands from scanner until EOF or exit/quit.
//
//	Always:
//	  - help                    show available commands
//	  - search [text]           find businesses (category:<c>, page:<n>)
//	  - open <path>             go to a screen
//	  - book <id>               book with a business
//	  - prefs                   show preferences
//	  - theme|lang <value>      change a preference
//	  - notify|compact|onboarding on|off
//	  - reset-prefs             restore default preferences
//	  - exit | quit
//
//	Signed out: login, signup, verify [token], resend [email]
//	Signed in:  whoami, logout
//
// Handlers report their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("glamfric %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: search, open, book, whoami, prefs, theme, lang, notify, compact, onboarding, reset-prefs, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, verify, resend, search, open, book, prefs, theme, lang, notify, compact, onboarding, reset-prefs, exit")
			}

		case "login":
			if a.isLoggedIn() {
				printlnFn("Already signed in. Run 'logout' first.")
				continue
			}
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "verify":
			_ = a.Verify(ctx, args)

		case "resend":
			_ = a.Resend(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "s", "search":
			_ = a.Search(ctx, args)

		case "open":
			_ = a.Open(ctx, args)

		case "book":
			_ = a.Book(ctx, args)

		case "prefs":
			_ = a.Prefs(ctx)

		case "theme", "lang", "notify", "compact", "onboarding":
			_ = a.SetPreference(ctx, cmd, args)

		case "reset-prefs":
			_ = a.ResetPrefs(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
