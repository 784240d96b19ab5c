package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempo-sh/tempo/internal/config"
	"github.com/tempo-sh/tempo/internal/store"
	"github.com/tempo-sh/tempo/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   store.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo store.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "tempo",
		Short: "A terminal calendar with draggable time blocks",
		Long: `Tempo is a terminal day planner built around a 15-minute time grid.

It lays your tasks and subscribed calendar feeds out side by side,
lets you create, move, and resize blocks by dragging with the mouse,
and keeps recurring events in sync.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			refresher, err := a.startRefresher()
			if err != nil {
				return err
			}
			if refresher != nil {
				defer refresher.Stop()
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.rmCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.feedsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tempo %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
