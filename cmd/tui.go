package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/marquee/internal/media"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive movie browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil || r.account == nil {
		return fmt.Errorf("%w: movie service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/marquee-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	prober := media.NewProber(r.httpClient, r.config.Media.ProbeRate, fileLogger)

	model := ui.NewModel(ctx, ui.ModelOpts{
		Catalog:   r.catalog,
		Account:   r.account,
		Session:   r.session,
		Prober:    prober,
		MediaHost: r.config.Media.Host,
		Logger:    fileLogger,
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
