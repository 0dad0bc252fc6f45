// Package tui is the interactive console: login, the pets and tutors
// listings with live filters, record forms, and pet↔tutor linking.
//
// The package is a thin projection layer. All state lives in the
// session store and the list synchronizers; the model only holds the
// latest snapshots it was sent plus transient UI state (focus, cursor,
// open form).
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/geia-vip/pet-manager-console/internal/api"
	"github.com/geia-vip/pet-manager-console/internal/listsync"
	"github.com/geia-vip/pet-manager-console/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewLogin is the credentials form
	ViewLogin ViewType = iota
	// ViewPets is the pets listing
	ViewPets
	// ViewTutors is the tutors listing
	ViewTutors
	// ViewForm is a pet or tutor record form
	ViewForm
	// ViewLinks manages the pets linked to one tutor
	ViewLinks
	// ViewHelp is the help screen
	ViewHelp
)

// Model represents the console application state
type Model struct {
	manager  *session.Manager
	pets     *listsync.Synchronizer[api.Pet]
	tutors   *listsync.Synchronizer[api.Tutor]
	petSvc   *api.PetService
	tutorSvc *api.TutorService

	// Latest snapshots, pushed in by the adapter
	session    session.Session
	petState   listsync.State[api.Pet]
	tutorState listsync.State[api.Tutor]

	// UI state
	currentView ViewType
	lastView    ViewType
	cursor      int
	width       int
	height      int
	quitting    bool
	status      string

	// Filter inputs. filterFocus is the index of the focused input,
	// or -1 when the table has focus.
	nameFilter  textinput.Model
	breedFilter textinput.Model
	filterFocus int

	// Form state
	loginForm  *huh.Form
	loginVals  *loginValues
	recordForm *huh.Form
	petVals    *petFormValues
	tutorVals  *tutorFormValues
	editingID  int64

	// Link management state
	linkTutor  api.Tutor
	linked     []api.Pet
	linkCursor int

	spin   spinner.Model
	styles Styles
}

// Styles contains lipgloss styles for the console
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
	KeyDesc  lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(1, 2),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).  // Purple
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("241")), // Gray
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// NewModel creates the console model. The synchronizers must already
// be wired to their services; the model never fetches lists itself.
func NewModel(
	manager *session.Manager,
	pets *listsync.Synchronizer[api.Pet],
	tutors *listsync.Synchronizer[api.Tutor],
	petSvc *api.PetService,
	tutorSvc *api.TutorService,
) *Model {
	name := textinput.New()
	name.Placeholder = "filter by name"
	name.CharLimit = 64
	name.Width = 24

	breed := textinput.New()
	breed.Placeholder = "filter by breed"
	breed.CharLimit = 64
	breed.Width = 24

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		manager:     manager,
		pets:        pets,
		tutors:      tutors,
		petSvc:      petSvc,
		tutorSvc:    tutorSvc,
		session:     manager.Store().Current(),
		petState:    pets.State(),
		tutorState:  tutors.State(),
		currentView: ViewLogin,
		nameFilter:  name,
		breedFilter: breed,
		filterFocus: -1,
		spin:        sp,
		styles:      DefaultStyles(),
	}

	if m.session.Authenticated {
		m.currentView = ViewPets
	} else {
		m.loginForm, m.loginVals = newLoginForm()
	}

	return m
}

// Messages pushed in by the adapter and by action commands

// sessionMsg carries a session store snapshot.
type sessionMsg session.Session

// petStateMsg carries a pets list snapshot.
type petStateMsg listsync.State[api.Pet]

// tutorStateMsg carries a tutors list snapshot.
type tutorStateMsg listsync.State[api.Tutor]

// loginResultMsg reports the outcome of a login attempt.
type loginResultMsg struct {
	err error
}

// actionResultMsg reports the outcome of a mutating action.
type actionResultMsg struct {
	verb string
	err  error
}

// linkedPetsMsg carries the pets linked to the tutor under management.
type linkedPetsMsg struct {
	tutorID int64
	pets    []api.Pet
	err     error
}

// Init initializes the model (required by Bubble Tea)
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.loginForm != nil {
		cmds = append(cmds, m.loginForm.Init())
	}
	if m.session.Authenticated {
		m.pets.Reload()
		m.tutors.Reload()
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionMsg:
		return m.handleSession(session.Session(msg))

	case petStateMsg:
		m.petState = listsync.State[api.Pet](msg)
		m.clampCursor()
		return m, nil

	case tutorStateMsg:
		m.tutorState = listsync.State[api.Tutor](msg)
		m.clampCursor()
		return m, nil

	case loginResultMsg:
		if msg.err != nil {
			// The store already carries the user-facing message; a
			// fresh form lets the operator retry.
			m.loginForm, m.loginVals = newLoginForm()
			return m, m.loginForm.Init()
		}
		return m, nil

	case actionResultMsg:
		return m.handleActionResult(msg)

	case linkedPetsMsg:
		if msg.tutorID != m.linkTutor.ID {
			// A stale load for a tutor we are no longer looking at.
			return m, nil
		}
		if msg.err != nil {
			m.status = m.styles.Error.Render(msg.err.Error())
			return m, nil
		}
		m.linked = msg.pets
		if m.linkCursor >= len(m.linked) {
			m.linkCursor = max(0, len(m.linked)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

// handleSession applies a session snapshot, switching between the
// login view and the listings as authentication comes and goes.
func (m *Model) handleSession(next session.Session) (tea.Model, tea.Cmd) {
	wasAuthenticated := m.session.Authenticated
	m.session = next

	if next.Authenticated && !wasAuthenticated {
		m.currentView = ViewPets
		m.loginForm = nil
		m.status = m.styles.Success.Render("logged in as " + username(next))
		m.pets.Reload()
		m.tutors.Reload()
		return m, nil
	}

	if !next.Authenticated && wasAuthenticated {
		m.currentView = ViewLogin
		m.loginForm, m.loginVals = newLoginForm()
		m.status = ""
		return m, m.loginForm.Init()
	}

	return m, nil
}

func (m *Model) handleActionResult(msg actionResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = m.styles.Error.Render(msg.verb + " failed: " + msg.err.Error())
		return m, nil
	}
	m.status = m.styles.Success.Render(msg.verb + " done")

	// Mutations invalidate whatever page we are looking at.
	switch m.currentView {
	case ViewPets:
		m.pets.Reload()
	case ViewTutors:
		m.tutors.Reload()
	case ViewLinks:
		m.tutors.Reload()
		return m, m.loadLinkedPets(m.linkTutor.ID)
	}
	return m, nil
}

// handleKey routes keyboard input to the active view.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms own the keyboard while open.
	if m.currentView == ViewLogin || m.currentView == ViewForm {
		return m.updateActiveForm(msg)
	}

	// Filter inputs own printable keys while focused.
	if m.filterFocus >= 0 {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.lastView
		} else {
			m.lastView = m.currentView
			m.currentView = ViewHelp
		}
		return m, nil

	case "esc":
		if m.currentView == ViewLinks || m.currentView == ViewHelp {
			m.currentView = ViewTutors
			if m.lastView == ViewPets {
				m.currentView = ViewPets
			}
		}
		return m, nil

	case "tab":
		if m.currentView == ViewPets {
			m.currentView = ViewTutors
		} else if m.currentView == ViewTutors {
			m.currentView = ViewPets
		}
		m.cursor = 0
		m.syncFilterInputs()
		return m, nil

	case "/":
		if m.currentView == ViewPets || m.currentView == ViewTutors {
			m.filterFocus = 0
			m.nameFilter.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	switch m.currentView {
	case ViewPets:
		return m.handlePetsKey(msg)
	case ViewTutors:
		return m.handleTutorsKey(msg)
	case ViewLinks:
		return m.handleLinksKey(msg)
	}
	return m, nil
}

// updateActiveForm forwards a message to whichever huh form is open.
func (m *Model) updateActiveForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.currentView == ViewLogin && m.loginForm != nil:
		form, cmd := m.loginForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.loginForm = f
			if m.loginForm.State == huh.StateCompleted {
				return m, m.submitLogin()
			}
			if m.loginForm.State == huh.StateAborted {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, cmd

	case m.currentView == ViewForm && m.recordForm != nil:
		form, cmd := m.recordForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.recordForm = f
			if m.recordForm.State == huh.StateCompleted {
				return m, m.submitRecordForm()
			}
			if m.recordForm.State == huh.StateAborted {
				m.recordForm = nil
				m.currentView = m.lastView
				return m, nil
			}
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) clampCursor() {
	var n int
	switch m.currentView {
	case ViewPets:
		n = len(m.petState.Items)
	case ViewTutors:
		n = len(m.tutorState.Items)
	default:
		return
	}
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func username(s session.Session) string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}
