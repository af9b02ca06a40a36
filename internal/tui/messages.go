package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/filter"
)

// loadedMsg delivers the result of the initial (or retried) load.
type loadedMsg struct {
	ds *dataset.Dataset
}

type loadFailedMsg struct {
	err error
}

// reloadMsg is forwarded from the dataset watcher.
type reloadMsg dataset.Reload

// remainderOptionsMsg answers a remainder picker query for one base.
type remainderOptionsMsg struct {
	base    int
	query   string
	options []filter.Option
	err     error
}

// LoadFunc loads a dataset; dataset.Load in production.
type LoadFunc func(ctx context.Context, source string, opts dataset.LoadOptions) (*dataset.Dataset, error)

func loadCmd(load LoadFunc, source string, opts dataset.LoadOptions) tea.Cmd {
	return func() tea.Msg {
		ds, err := load(context.Background(), source, opts)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{ds: ds}
	}
}

// waitForReload blocks on the watcher channel and returns nil once it is
// closed, which ends the subscription.
func waitForReload(reloads <-chan dataset.Reload) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-reloads
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

func loadRemaindersCmd(engine *filter.Engine, mod filter.Modulo, query string) tea.Cmd {
	if engine == nil || !mod.Active() {
		return nil
	}
	return func() tea.Msg {
		opts, err := engine.LoadRemainderOptions(context.Background(), mod, query)
		return remainderOptionsMsg{base: mod.Base(), query: query, options: opts, err: err}
	}
}
