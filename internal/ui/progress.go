package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"synscan/internal/diag"
	"synscan/internal/diagfmt"
	"synscan/internal/driver"
)

type fileState uint8

const (
	stateQueued fileState = iota
	statePassed
	stateWarnings
	stateErrors
)

func (s fileState) String() string {
	switch s {
	case statePassed:
		return "passed"
	case stateWarnings:
		return "warnings"
	case stateErrors:
		return "errors"
	default:
		return "queued"
	}
}

type progressModel struct {
	title   string
	events  <-chan driver.FileResult
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	checked int
	total   diag.Summary
	width   int
	done    bool
}

type fileItem struct {
	path  string
	state fileState
	line  string
}

type eventMsg driver.FileResult
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file check
// progress. The run is over when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.FileResult) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyResult(driver.FileResult(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.checked, len(m.items))
	if m.done {
		header = fmt.Sprintf("done: %s, %s", header, diagfmt.StatusLine(m.total))
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := item.path
		if item.line != "" {
			name += " " + item.line
		}
		name = truncate(name, nameWidth)
		status := styleState(item.state).Render(fmt.Sprintf("%10s", item.state))
		fmt.Fprintf(&b, "  %s %s\n", status, name)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		res, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(res)
	}
}

func (m *progressModel) applyResult(res driver.FileResult) tea.Cmd {
	idx, ok := m.index[res.Path]
	if !ok {
		return nil
	}
	sum := res.Summary()
	item := &m.items[idx]
	if item.state == stateQueued {
		m.checked++
	}
	switch {
	case sum.Errors > 0:
		item.state = stateErrors
	case sum.Warnings > 0:
		item.state = stateWarnings
	default:
		item.state = statePassed
	}
	if !sum.Clean() {
		item.line = "(" + diagfmt.StatusLine(sum) + ")"
	}
	m.total = m.total.Add(sum)
	return m.prog.SetPercent(float64(m.checked) / float64(len(m.items)))
}

func styleState(s fileState) lipgloss.Style {
	switch s {
	case statePassed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case stateErrors:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case stateWarnings:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
