package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/geia-vip/pet-manager-console/internal/api"
)

// loginValues backs the login form fields.
type loginValues struct {
	username string
	password string
}

func newLoginForm() (*huh.Form, *loginValues) {
	vals := &loginValues{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&vals.username).
				Validate(required("username")),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&vals.password).
				Validate(required("password")),
		).Title("Pet Manager Console").
			Description("Sign in to continue"),
	)

	return form, vals
}

// submitLogin runs the login off the Update loop. The session store is
// the source of truth for the outcome; the message only tells the
// model whether to rebuild the form for a retry.
func (m *Model) submitLogin() tea.Cmd {
	username := m.loginVals.username
	password := m.loginVals.password
	return func() tea.Msg {
		err := m.manager.Login(context.Background(), username, password)
		return loginResultMsg{err: err}
	}
}

// petFormValues backs the pet record form. Age is kept as text and
// validated; huh inputs are string-typed.
type petFormValues struct {
	name  string
	breed string
	age   string
}

// openPetForm opens a create form, or an edit form pre-filled from the
// given pet.
func (m *Model) openPetForm(pet *api.Pet) {
	vals := &petFormValues{}
	title := "New Pet"
	m.editingID = 0
	if pet != nil {
		vals.name = pet.Name
		vals.breed = pet.Breed
		vals.age = strconv.Itoa(pet.Age)
		title = fmt.Sprintf("Edit Pet #%d", pet.ID)
		m.editingID = pet.ID
	}

	m.petVals = vals
	m.tutorVals = nil
	m.recordForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&vals.name).Validate(required("name")),
			huh.NewInput().Key("breed").Title("Breed").Value(&vals.breed).Validate(required("breed")),
			huh.NewInput().Key("age").Title("Age").Value(&vals.age).Validate(validAge),
		).Title(title),
	)
	m.lastView = m.currentView
	m.currentView = ViewForm
}

// tutorFormValues backs the tutor record form.
type tutorFormValues struct {
	name    string
	email   string
	phone   string
	address string
	cpf     string
}

// openTutorForm opens a create form, or an edit form pre-filled from
// the given tutor.
func (m *Model) openTutorForm(tutor *api.Tutor) {
	vals := &tutorFormValues{}
	title := "New Tutor"
	m.editingID = 0
	if tutor != nil {
		vals.name = tutor.Name
		vals.email = tutor.Email
		vals.phone = tutor.Phone
		vals.address = tutor.Address
		vals.cpf = tutor.CPF
		title = fmt.Sprintf("Edit Tutor #%d", tutor.ID)
		m.editingID = tutor.ID
	}

	m.tutorVals = vals
	m.petVals = nil
	m.recordForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&vals.name).Validate(required("name")),
			huh.NewInput().Key("email").Title("Email").Value(&vals.email).Validate(required("email")),
			huh.NewInput().Key("phone").Title("Phone").Value(&vals.phone),
			huh.NewInput().Key("address").Title("Address").Value(&vals.address),
			huh.NewInput().Key("cpf").Title("CPF").Value(&vals.cpf),
		).Title(title),
	)
	m.lastView = m.currentView
	m.currentView = ViewForm
}

// submitRecordForm persists whichever record form just completed and
// returns to the listing it was opened from.
func (m *Model) submitRecordForm() tea.Cmd {
	id := m.editingID
	petVals := m.petVals
	tutorVals := m.tutorVals

	m.recordForm = nil
	m.currentView = m.lastView

	switch {
	case petVals != nil:
		age, _ := strconv.Atoi(strings.TrimSpace(petVals.age))
		payload := api.PetPayload{Name: petVals.name, Breed: petVals.breed, Age: age}
		return func() tea.Msg {
			var err error
			if id == 0 {
				_, err = m.petSvc.Create(context.Background(), payload)
				return actionResultMsg{verb: "create pet", err: err}
			}
			_, err = m.petSvc.Update(context.Background(), id, payload)
			return actionResultMsg{verb: "update pet", err: err}
		}

	case tutorVals != nil:
		payload := api.TutorPayload{
			Name:    tutorVals.name,
			Email:   tutorVals.email,
			Phone:   tutorVals.phone,
			Address: tutorVals.address,
			CPF:     tutorVals.cpf,
		}
		return func() tea.Msg {
			var err error
			if id == 0 {
				_, err = m.tutorSvc.Create(context.Background(), payload)
				return actionResultMsg{verb: "create tutor", err: err}
			}
			_, err = m.tutorSvc.Update(context.Background(), id, payload)
			return actionResultMsg{verb: "update tutor", err: err}
		}
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validAge(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("age must be a number")
	}
	if n < 0 {
		return fmt.Errorf("age must not be negative")
	}
	return nil
}
