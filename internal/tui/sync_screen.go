package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// activityModel shows a spinner with a label while a long operation runs.
type activityModel struct {
	spinner spinner.Model
	label   string
	running bool
}

func newActivityModel() activityModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return activityModel{spinner: s}
}

func (m activityModel) start(label string) (activityModel, tea.Cmd) {
	m.label = label
	if m.running {
		return m, nil
	}
	m.running = true
	return m, m.spinner.Tick
}

func (m activityModel) stop() activityModel {
	m.running = false
	m.label = ""
	return m
}

func (m activityModel) update(msg spinner.TickMsg) (activityModel, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m activityModel) View() string {
	if !m.running {
		return ""
	}
	return m.spinner.View() + " " + m.label
}
