package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/depscope/pkg/depgraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// EntryListModel is the bubbletea model for browsing a view's entries.
// It renders a scrolling window over the result list; Enter copies nothing
// and quits, matching a read-only browser.
type EntryListModel struct {
	Result *depgraph.View
	Cursor int
	Height int
	Offset int
}

// NewEntryListModel creates a list model over the given view.
func NewEntryListModel(v *depgraph.View) EntryListModel {
	return EntryListModel{
		Result: v,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m EntryListModel) Init() tea.Cmd {
	return nil
}

func (m EntryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.Result.Count()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EntryListModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Dependencies of %s", m.Result.Root)
	if m.Result.Reverse {
		title = fmt.Sprintf("Packages depending on %s", m.Result.Root)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.Result.Count() {
		end = m.Result.Count()
	}

	for i := m.Offset; i < end; i++ {
		e := m.Result.Entries[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := cursor + style.Render(e.Name)
		if !m.Result.Reverse {
			line += "  " + listDimStyle.Render(entryCountLabel(e))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.Result.Count() > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, m.Result.Count())))
		b.WriteString("\n")
	}
	return b.String()
}

// runEntryBrowser opens the interactive list over a query result. Empty
// results fall back to the static rendering; there is nothing to browse.
func runEntryBrowser(v *depgraph.View) error {
	if v.Count() == 0 {
		fmt.Print(renderView(v))
		return nil
	}

	p := tea.NewProgram(NewEntryListModel(v))
	_, err := p.Run()
	return err
}
