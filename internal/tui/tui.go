// Package tui is the interactive list: a bubbletea program whose rows are
// driven by the listrow gesture engine.
package tui

import (
	"context"
	"fmt"

	"swipelist/internal/config"
	"swipelist/internal/store"
	"swipelist/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("tui")

// Run starts the list UI on the terminal and blocks until it exits.
func Run(ctx context.Context, st store.Store, cfg config.Config) error {
	theme.ApplyColorProfilePreference()
	theme.ApplyBackgroundPreference()

	m := New(ctx, st, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if cfg.Theme.File != "" {
		if _, err := theme.Watch(m.theme, cfg.Theme.File, func(fn func()) {
			p.Send(applyMsg{fn: fn})
		}); err != nil {
			log.Warnw("theme file not watched", "path", cfg.Theme.File, "err", err)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
