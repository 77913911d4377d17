package client

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/listworks/todo-service/internal/todo"
)

// State is the sync state of the local todo mirror.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

// Messages produced by store commands.
type todosLoadedMsg struct{ items []todo.Todo }
type loadFailedMsg struct{ err error }
type mutationDoneMsg struct{}
type mutationFailedMsg struct{ err error }

// Store mirrors the server-side list and synchronizes it with a
// refetch-after-mutation strategy: every successful write is followed by a
// full reload, and the list is never predicted locally. A failed write
// leaves the mirror exactly as it was.
type Store struct {
	api   API
	state State
	items []todo.Todo
	err   string
}

func NewStore(api API) *Store {
	return &Store{api: api}
}

func (s *Store) State() State       { return s.state }
func (s *Store) Items() []todo.Todo { return s.items }
func (s *Store) Err() string        { return s.err }

// Reload moves to Loading, clears any prior error and returns the fetch
// command.
func (s *Store) Reload() tea.Cmd {
	s.state = StateLoading
	s.err = ""
	api := s.api
	return func() tea.Msg {
		items, err := api.List(context.Background())
		if err != nil {
			return loadFailedMsg{err}
		}
		return todosLoadedMsg{items}
	}
}

// Create issues a create for the trimmed title. An empty title is a no-op:
// no request, no state transition.
func (s *Store) Create(title, location string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	api := s.api
	return func() tea.Msg {
		if _, err := api.Create(context.Background(), title, location); err != nil {
			return mutationFailedMsg{err}
		}
		return mutationDoneMsg{}
	}
}

func (s *Store) Delete(id int64) tea.Cmd {
	api := s.api
	return func() tea.Msg {
		if err := api.Delete(context.Background(), id); err != nil {
			return mutationFailedMsg{err}
		}
		return mutationDoneMsg{}
	}
}

func (s *Store) DeleteAll() tea.Cmd {
	api := s.api
	return func() tea.Msg {
		if err := api.DeleteAll(context.Background()); err != nil {
			return mutationFailedMsg{err}
		}
		return mutationDoneMsg{}
	}
}

// Apply advances the state machine for store-owned messages and returns the
// follow-up command, if any. Unrecognized messages leave the store untouched.
func (s *Store) Apply(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case todosLoadedMsg:
		s.state = StateLoaded
		s.items = m.items
		s.err = ""
	case loadFailedMsg:
		s.state = StateErrored
		s.err = m.err.Error()
	case mutationDoneMsg:
		return s.Reload()
	case mutationFailedMsg:
		s.state = StateErrored
		s.err = m.err.Error()
	}
	return nil
}
