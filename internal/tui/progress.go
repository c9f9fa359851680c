// Package tui provides Bubble Tea models for terminal UI interactions.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/aim/internal/store"
)

// ProgressMsg reports download progress in bytes.
type ProgressMsg struct {
	Downloaded int64
	Total      int64
}

// doneMsg signals that the download finished.
type doneMsg struct {
	err error
}

// DownloadModel renders a progress bar for one artifact download.
type DownloadModel struct {
	label  string
	bar    progress.Model
	cancel context.CancelFunc

	downloaded int64
	total      int64
	done       bool
	err        error

	labelStyle lipgloss.Style
	infoStyle  lipgloss.Style
}

// NewDownloadModel creates a download progress model. cancel is invoked
// when the user interrupts the download.
func NewDownloadModel(label string, cancel context.CancelFunc) *DownloadModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return &DownloadModel{
		label:  label,
		bar:    bar,
		cancel: cancel,
		total:  -1,
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

// Init implements tea.Model.
func (m *DownloadModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		w := msg.Width - 6
		if w > 10 && w < 80 {
			m.bar.Width = w
		}
		return m, nil

	case ProgressMsg:
		m.downloaded = msg.Downloaded
		m.total = msg.Total
		return m, nil

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m *DownloadModel) View() string {
	if m.done {
		return ""
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.downloaded) / float64(m.total)
	}

	counter := fmt.Sprintf("%dMB", toMB(m.downloaded))
	if m.total > 0 {
		counter = fmt.Sprintf("%dMB/%dMB", toMB(m.downloaded), toMB(m.total))
	}

	return fmt.Sprintf("%s\n%s %s\n",
		m.labelStyle.Render(m.label),
		m.bar.ViewAs(percent),
		m.infoStyle.Render(counter),
	)
}

func toMB(n int64) int64 {
	return n / 1024 / 1024
}

// RunDownload runs fn with a progress bar. fn receives a store.ProgressFunc
// it must report through; the context it receives is canceled when the user
// interrupts the download.
func RunDownload(ctx context.Context, label string, fn func(ctx context.Context, report store.ProgressFunc) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewDownloadModel(label, cancel)
	p := tea.NewProgram(model)

	errCh := make(chan error, 1)
	go func() {
		err := fn(ctx, func(downloaded, total int64) {
			p.Send(ProgressMsg{Downloaded: downloaded, Total: total})
		})
		errCh <- err
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		return <-errCh
	}
	return <-errCh
}
