package client

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listworks/todo-service/internal/todo"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAddFormRejectsEmptyTitle(t *testing.T) {
	m := NewModel(&fakeAPI{})

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	require.True(t, m.adding)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.True(t, m.adding)
	assert.Equal(t, "Title cannot be empty", m.addErr)
}

func TestDeleteAllIgnoredWhenListEmpty(t *testing.T) {
	api := &fakeAPI{}
	m := NewModel(api)
	m.store.Apply(todosLoadedMsg{items: nil})

	_, cmd := m.Update(keyMsg("D"))
	assert.Nil(t, cmd)
	assert.Empty(t, api.calls)
}

func TestDeleteAllIssuedWhenListNonEmpty(t *testing.T) {
	api := &fakeAPI{}
	m := NewModel(api)
	m.store.Apply(todosLoadedMsg{items: []todo.Todo{{ID: 1, Title: "Buy milk"}}})

	_, cmd := m.Update(keyMsg("D"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"deleteAll"}, api.calls)
}

func TestViewShowsLocationMarkerAndErrorBanner(t *testing.T) {
	m := NewModel(&fakeAPI{})
	loc := "Kitchen"
	m.store.Apply(todosLoadedMsg{items: []todo.Todo{
		{ID: 1, Title: "Buy milk", Location: &loc},
		{ID: 2, Title: "Walk dog", Completed: true},
	}})

	out := m.View()
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "@ Kitchen")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "delete all")

	m.store.Apply(loadFailedMsg{err: assert.AnError})
	assert.Contains(t, m.View(), assert.AnError.Error())
}

func TestLoadedMsgClampsCursor(t *testing.T) {
	m := NewModel(&fakeAPI{})
	m.store.Apply(todosLoadedMsg{items: []todo.Todo{
		{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"},
	}})
	m.cursor = 2

	next, _ := m.Update(todosLoadedMsg{items: []todo.Todo{{ID: 1, Title: "A"}}})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
}
