package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reel/internal/media"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

var docStyle = lipgloss.NewStyle().Margin(1, 2)

// streamItem adapts a result to list.DefaultItem.
type streamItem struct {
	index  int
	result media.StreamResult
}

func (i streamItem) Title() string       { return i.result.Label }
func (i streamItem) Description() string { return Details(i.result) }
func (i streamItem) FilterValue() string { return i.result.Label + " " + i.result.Quality() }

type pickerKeys struct {
	choose key.Binding
	quit   key.Binding
}

var keys = pickerKeys{
	choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
	quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// picker is the bubbletea model behind Pick.
type picker struct {
	list   list.Model
	chosen int
	done   bool
}

func newPicker(title string, results []media.StreamResult) picker {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = streamItem{index: i, result: r}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(accentColor).
		Foreground(accentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	l := list.New(items, delegate, 80, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.choose}
	}

	return picker{list: l, chosen: -1}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil
	case tea.KeyMsg:
		// Keys belong to the filter input while the user is typing.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.choose):
			if item, ok := m.list.SelectedItem().(streamItem); ok {
				m.chosen = item.index
			}
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, keys.quit):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m picker) View() string {
	if m.done {
		return ""
	}
	return docStyle.Render(m.list.View())
}

// Pick shows results in an interactive list on stderr and returns the chosen index.
// A single result is returned without prompting.
func Pick(ctx context.Context, title string, results []media.StreamResult) (int, error) {
	switch len(results) {
	case 0:
		return -1, fmt.Errorf("no streams to choose from")
	case 1:
		return 0, nil
	}

	final, err := tea.NewProgram(
		newPicker(title, results),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(picker)
	if !ok || m.chosen < 0 {
		return -1, ErrCancelled
	}
	return m.chosen, nil
}
