package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geia-vip/pet-manager-console/internal/api"
	"github.com/geia-vip/pet-manager-console/internal/listsync"
	"github.com/geia-vip/pet-manager-console/internal/session"
)

func newTestModel(t *testing.T, authenticated bool) *Model {
	t.Helper()

	initial := session.Session{}
	if authenticated {
		initial = session.Session{
			User:        &session.User{Username: "admin", Role: "ADMIN"},
			AccessToken: "tok",
		}
	}
	store := session.NewStore(initial)
	keys := session.NewKeystore(t.TempDir())

	client := api.NewClient("http://127.0.0.1:1")
	manager := session.NewManager(api.NewAuthService(client), store, keys, session.ManagerConfig{}, nil)
	t.Cleanup(manager.Logout)

	petFetch := func(ctx context.Context, filters map[string]string, page, size int) (listsync.Result[api.Pet], error) {
		return listsync.Result[api.Pet]{}, nil
	}
	tutorFetch := func(ctx context.Context, filters map[string]string, page, size int) (listsync.Result[api.Tutor], error) {
		return listsync.Result[api.Tutor]{}, nil
	}

	pets := listsync.New(petFetch, listsync.Config{Debounce: time.Millisecond, PageSize: 10})
	tutors := listsync.New(tutorFetch, listsync.Config{Debounce: time.Millisecond, PageSize: 10})
	t.Cleanup(pets.Close)
	t.Cleanup(tutors.Close)

	return NewModel(manager, pets, tutors, api.NewPetService(client), api.NewTutorService(client))
}

func update(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(*Model)
	require.True(t, ok)
	return model
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModelStartsAtLoginWhenUnauthenticated(t *testing.T) {
	m := newTestModel(t, false)
	assert.Equal(t, ViewLogin, m.currentView)
	assert.NotNil(t, m.loginForm)
}

func TestModelStartsAtPetsWhenAuthenticated(t *testing.T) {
	m := newTestModel(t, true)
	assert.Equal(t, ViewPets, m.currentView)
}

func TestSessionSnapshotSwitchesViews(t *testing.T) {
	m := newTestModel(t, false)

	m = update(t, m, sessionMsg(session.Session{
		User:          &session.User{Username: "admin", Role: "ADMIN"},
		AccessToken:   "tok",
		Authenticated: true,
	}))
	assert.Equal(t, ViewPets, m.currentView)

	m = update(t, m, sessionMsg(session.Session{}))
	assert.Equal(t, ViewLogin, m.currentView)
	assert.NotNil(t, m.loginForm, "a fresh login form is ready after logout")
}

func TestTabSwitchesBetweenListings(t *testing.T) {
	m := newTestModel(t, true)

	m = update(t, m, keyMsg("tab"))
	assert.Equal(t, ViewTutors, m.currentView)

	m = update(t, m, keyMsg("tab"))
	assert.Equal(t, ViewPets, m.currentView)
}

func TestPetSnapshotClampsCursor(t *testing.T) {
	m := newTestModel(t, true)
	m.cursor = 5

	m = update(t, m, petStateMsg(listsync.State[api.Pet]{
		Items: []api.Pet{{ID: 1, Name: "Rex"}, {ID: 2, Name: "Mia"}},
	}))

	assert.Equal(t, 1, m.cursor)
	assert.Len(t, m.petState.Items, 2)
}

func TestFilterTypingReachesSynchronizer(t *testing.T) {
	m := newTestModel(t, true)

	m = update(t, m, keyMsg("/"))
	require.Equal(t, 0, m.filterFocus)

	m = update(t, m, keyMsg("r"))
	m = update(t, m, keyMsg("e"))
	m = update(t, m, keyMsg("x"))

	assert.Equal(t, "rex", m.pets.State().Filters["nome"])

	// Leaving filter mode hands the keyboard back to the table.
	m = update(t, m, keyMsg("esc"))
	assert.Equal(t, -1, m.filterFocus)
}

func TestCursorNavigationStaysInBounds(t *testing.T) {
	m := newTestModel(t, true)
	m = update(t, m, petStateMsg(listsync.State[api.Pet]{
		Items: []api.Pet{{ID: 1}, {ID: 2}},
	}))

	m = update(t, m, keyMsg("up"))
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, keyMsg("down"))
	m = update(t, m, keyMsg("down"))
	m = update(t, m, keyMsg("down"))
	assert.Equal(t, 1, m.cursor)
}

func TestLinksViewMarksLinkedPets(t *testing.T) {
	m := newTestModel(t, true)
	m = update(t, m, petStateMsg(listsync.State[api.Pet]{
		Items: []api.Pet{{ID: 1, Name: "Rex"}, {ID: 2, Name: "Mia"}},
	}))
	m = update(t, m, tutorStateMsg(listsync.State[api.Tutor]{
		Items: []api.Tutor{{ID: 9, Name: "Ana"}},
	}))

	m = update(t, m, keyMsg("tab")) // tutors
	m = update(t, m, keyMsg("l"))   // manage links for Ana
	require.Equal(t, ViewLinks, m.currentView)

	m = update(t, m, linkedPetsMsg{tutorID: 9, pets: []api.Pet{{ID: 2, Name: "Mia"}}})
	assert.True(t, m.isLinked(2))
	assert.False(t, m.isLinked(1))
}

func TestStaleLinkedPetsLoadIsIgnored(t *testing.T) {
	m := newTestModel(t, true)
	m = update(t, m, tutorStateMsg(listsync.State[api.Tutor]{
		Items: []api.Tutor{{ID: 9, Name: "Ana"}},
	}))
	m = update(t, m, keyMsg("tab"))
	m = update(t, m, keyMsg("l"))

	// A load for a tutor we are no longer managing must not apply.
	m = update(t, m, linkedPetsMsg{tutorID: 4, pets: []api.Pet{{ID: 7}}})
	assert.Empty(t, m.linked)
}
