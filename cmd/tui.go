package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/shared"
	"github.com/poojitha20043/postx/internal/tasks"
	"github.com/poojitha20043/postx/internal/ui"
)

// TUI launches the interactive terminal UI for platform status and posting.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.requireUserID()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/postx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	registry := services.NewRegistry(r.backendClient(ctx))
	engine := tasks.NewStatusEngine(registry, r.cache, tasks.StatusEngineOpts{Logger: r.logger})
	composer := tasks.NewComposer(registry, r.history, nil, r.logger)

	model := ui.NewModel(ctx, userID, registry, engine, composer)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
