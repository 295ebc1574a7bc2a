package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ferrite/internal/lint"
	"ferrite/internal/ui"
)

type checkOutcome struct {
	results []*lint.Result
	err     error
}

// runChecksWithUI executes the passes in the background and feeds their
// progress events into a Bubble Tea program. The UI owns the terminal
// until every pass finishes or is canceled.
func runChecksWithUI(ctx context.Context, title string, files []string, opts lint.Options) ([]*lint.Result, error) {
	events := make(chan lint.PassEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observe = func(ev lint.PassEvent) { events <- ev }
		results, err := lint.RunFiles(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
