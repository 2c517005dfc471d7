// Package cli implements the interactive authgate client: registration,
// login, and inspecting the authenticated profile.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/authgate/authgate/internal/client/api"
)

type App struct {
	client *api.Client
	reader *bufio.Reader
	out    io.Writer

	// token holds the access token from the last successful login for
	// the lifetime of the session. Expiry is the only termination path.
	token string
	email string
}

func NewApp(client *api.Client) *App {
	return &App{
		client: client,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to authgate CLI (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "agate %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		// Commands read their own arguments interactively, so the
		// scanner and a.reader share stdin; a.reader is rebuilt after
		// each command to drop any buffered remainder.
		a.reader = bufio.NewReader(os.Stdin)

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: whoami, token, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "whoami":
			a.Whoami(ctx)
		case "token":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, a.token)
			} else {
				fmt.Fprintln(a.out, "Not logged in")
			}
		case "logout":
			a.token = ""
			a.email = ""
			fmt.Fprintln(a.out, "Logged out")
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}
