package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solveigbr/holidaze/internal/session"
	"github.com/solveigbr/holidaze/internal/tui"
	"github.com/solveigbr/holidaze/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveAPIURL returns the API base URL, preferring the environment.
func resolveAPIURL(getenv func(string) string) string {
	if u := getenv("HOLIDAZE_API_URL"); u != "" {
		return u
	}
	return client.DefaultBaseURL
}

// newStore wires the HTTP client to the on-disk session and restores
// whatever session survives from the last run.
func newStore() (*client.Client, *session.Store, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return nil, nil, err
	}
	storage, err := session.NewFileStorage(dir)
	if err != nil {
		return nil, nil, err
	}
	c := client.New(resolveAPIURL(os.Getenv), os.Getenv("HOLIDAZE_API_KEY"), "")
	store := session.New(c, storage)
	store.Restore()
	return c, store, nil
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("holidaze " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "whoami":
			return runWhoami()
		case "logout":
			return runLogout()
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printHelp()
			return nil
		}
	}

	c, store, err := newStore()
	if err != nil {
		return err
	}

	app := tui.NewApp(c, store)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runWhoami() error {
	_, store, err := newStore()
	if err != nil {
		return err
	}
	printWhoami(store.User())
	return nil
}

func runLogout() error {
	_, store, err := newStore()
	if err != nil {
		return err
	}
	if !store.LoggedIn() {
		fmt.Println("Already logged out.")
		return nil
	}
	store.Logout()
	fmt.Println("Logged out.")
	return nil
}
