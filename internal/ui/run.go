package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"synscan/internal/driver"
)

// CheckFunc runs a check, calling onFile as each file finishes.
type CheckFunc func(ctx context.Context, onFile func(driver.FileResult)) error

// RunProgress shows the progress view on out while check runs and returns
// check's error once both the check and the view have finished.
func RunProgress(ctx context.Context, out io.Writer, title string, files []string, check CheckFunc) error {
	events := make(chan driver.FileResult, len(files))
	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx), tea.WithInput(nil))

	checkErr := make(chan error, 1)
	go func() {
		defer close(events)
		checkErr <- check(ctx, func(res driver.FileResult) {
			events <- res
		})
	}()

	if _, err := program.Run(); err != nil {
		// вывод сломан, но проверка должна дойти до конца
		err = fmt.Errorf("progress view: %w", err)
		if cerr := <-checkErr; cerr != nil {
			return cerr
		}
		return err
	}
	return <-checkErr
}
