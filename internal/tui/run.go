package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/moviesearch/internal/reactor"
)

// Reactor is the part of *reactor.Reactor the UI drives.
type Reactor interface {
	ActionSink
	Subscribe(func(reactor.State)) func()
}

type program interface {
	Run() (tea.Model, error)
	Send(tea.Msg)
}

var newProgram = func(ctx context.Context, m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
}

// Run shows the search UI until the user quits or ctx is cancelled.
// Initial, when non-empty, is typed into the search bar and sent at once.
func Run(ctx context.Context, r Reactor, opts Options, initial string) error {
	m := newModel(r, opts)
	if initial != "" {
		m.input.SetValue(initial)
		m.seq++
		m.sendQuery(initial)
	}

	p := newProgram(ctx, m)
	unsubscribe := r.Subscribe(func(state reactor.State) {
		p.Send(stateMsg{state: state})
	})
	defer unsubscribe()

	finalModel, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	if _, ok := finalModel.(*model); !ok && err == nil {
		return fmt.Errorf("unexpected program result")
	}
	return nil
}
