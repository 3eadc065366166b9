package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvx/internal/credentials"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing the catalog and editing watchlists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	if err := r.applyLogLevel(); err != nil {
		return err
	}

	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	users, err := r.credentialStore()
	if err != nil {
		return err
	}

	lists, err := r.watchlistStore()
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Deps{
		Auth:      credentials.NewThrottle(users, r.config.Auth.LoginRate, r.config.Auth.LoginBurst),
		Registrar: users,
		Catalog:   c,
		Watchlist: lists,
		Logger:    shared.WithLogger(r.logger, "component", "tui"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
