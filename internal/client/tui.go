package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea program for the todo client: a creation form plus
// a list view over the Store. All business logic lives in the Store; the
// model only captures input and renders.
type Model struct {
	store  *Store
	cursor int

	// Inline add
	adding   bool
	titleIn  textinput.Model
	locIn    textinput.Model
	addErr   string
	focusLoc bool

	spin spinner.Model
}

func NewModel(api API) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	li := textinput.New()
	li.Prompt = "@ "
	li.Placeholder = "Location (optional)"
	// Server truncates to 20 anyway; cap at the source.
	li.CharLimit = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		store:   NewStore(api),
		titleIn: ti,
		locIn:   li,
		spin:    sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.store.Reload())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Store-owned messages first: they drive the sync state machine.
	switch msg.(type) {
	case todosLoadedMsg, loadFailedMsg, mutationDoneMsg, mutationFailedMsg:
		cmd := m.store.Apply(msg)
		if n := len(m.store.Items()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		} else if n == 0 {
			m.cursor = 0
		}
		return m, cmd
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.store.Items())-1 {
				m.cursor++
			}
		case "a":
			m.adding = true
			m.addErr = ""
			m.focusLoc = false
			m.titleIn.SetValue("")
			m.locIn.SetValue("")
			m.titleIn.Focus()
			m.locIn.Blur()
			return m, nil
		case "d":
			items := m.store.Items()
			if m.cursor >= 0 && m.cursor < len(items) {
				return m, m.store.Delete(items[m.cursor].ID)
			}
		case "D":
			// Delete-all only makes sense with something to delete.
			if len(m.store.Items()) > 0 {
				return m, m.store.DeleteAll()
			}
		case "r":
			return m, m.store.Reload()
		}
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.KeyMsg:
		switch x.String() {
		case "enter":
			cmd := m.store.Create(m.titleIn.Value(), m.locIn.Value())
			if cmd == nil {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			m.adding = false
			m.addErr = ""
			m.titleIn.Blur()
			m.locIn.Blur()
			return m, cmd
		case "esc":
			m.adding = false
			m.addErr = ""
			m.titleIn.Blur()
			m.locIn.Blur()
			return m, nil
		case "tab":
			m.focusLoc = !m.focusLoc
			if m.focusLoc {
				m.titleIn.Blur()
				m.locIn.Focus()
			} else {
				m.locIn.Blur()
				m.titleIn.Focus()
			}
			return m, nil
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.titleIn, cmd = m.titleIn.Update(msg)
	cmds = append(cmds, cmd)
	m.locIn, cmd = m.locIn.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var b strings.Builder

	items := m.store.Items()
	b.WriteString(fmt.Sprintf("%s   %s %d\n\n",
		titleStyle.Render("Todos"),
		accentStyle.Render("Total"), len(items),
	))

	if m.store.State() == StateLoading {
		b.WriteString(m.spin.View() + mutedStyle.Render("Loading...") + "\n")
	}
	if err := m.store.Err(); err != "" {
		b.WriteString(errorStyle.Render("✖ "+err) + "\n")
	}

	for i, it := range items {
		box := boxUnchecked
		if it.Completed {
			box = successStyle.Render(boxChecked)
		} else {
			box = mutedStyle.Render(box)
		}
		line := fmt.Sprintf("%s %s", box, it.Title)
		if it.Location != nil {
			line += " " + accentStyle.Render("@ "+*it.Location)
		}
		prefix := "  "
		if i == m.cursor && !m.adding {
			prefix = selectedStyle.Render("> ")
		}
		b.WriteString(prefix + line + "\n")
	}
	if len(items) == 0 && m.store.State() == StateLoaded {
		b.WriteString(mutedStyle.Render("  Nothing to do.") + "\n")
	}

	if m.adding {
		b.WriteString("\n" + m.titleIn.View() + "\n" + m.locIn.View() + "\n")
		if m.addErr != "" {
			b.WriteString(errorStyle.Render(m.addErr) + "\n")
		}
		b.WriteString(helpStyle.Render("enter save • tab field • esc cancel") + "\n")
	} else {
		help := "a add • d delete • r reload • q quit"
		if len(items) > 0 {
			help = "a add • d delete • D delete all • r reload • q quit"
		}
		b.WriteString("\n" + helpStyle.Render(help) + "\n")
	}

	return b.String()
}
