package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a dashboard application
func New(cfg Config) *App {
	return &App{model: NewModel(cfg)}
}

// Run starts the dashboard and blocks until the user quits. It returns the
// final model so callers can report the last state.
func (a *App) Run() (Model, error) {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// SIGTERM and SIGHUP do not reach bubbletea as key messages
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		a.program.Send(tea.Quit())
	}()

	final, err := a.program.Run()
	if m, ok := final.(Model); ok {
		a.model = m
	}
	return a.model, err
}
