package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// runTUI loads the dataset and runs the interactive dashboard until quit.
func runTUI(ctx context.Context, app *App) error {
	c, src, err := app.newController(ctx)
	if err != nil {
		return err
	}

	m := newAppModel(newSharedState(app, c, src))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
