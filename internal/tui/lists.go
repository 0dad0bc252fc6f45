package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geia-vip/pet-manager-console/internal/api"
)

// handlePetsKey handles table navigation and actions on the pets view.
func (m *Model) handlePetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.petState.Items)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.petState.Page > 0 {
			m.pets.ChangePage(m.petState.Page - 1)
		}
	case "right", "l":
		m.pets.ChangePage(m.petState.Page + 1)
	case "r":
		m.pets.Reload()
	case "n":
		m.openPetForm(nil)
		return m, m.recordForm.Init()
	case "e":
		if pet, ok := m.selectedPet(); ok {
			m.openPetForm(&pet)
			return m, m.recordForm.Init()
		}
	case "d":
		if pet, ok := m.selectedPet(); ok {
			return m, m.deletePet(pet.ID)
		}
	case "o":
		m.manager.Logout()
	}
	return m, nil
}

// handleTutorsKey handles table navigation and actions on the tutors view.
func (m *Model) handleTutorsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tutorState.Items)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.tutorState.Page > 0 {
			m.tutors.ChangePage(m.tutorState.Page - 1)
		}
	case "right":
		m.tutors.ChangePage(m.tutorState.Page + 1)
	case "r":
		m.tutors.Reload()
	case "n":
		m.openTutorForm(nil)
		return m, m.recordForm.Init()
	case "e":
		if tutor, ok := m.selectedTutor(); ok {
			m.openTutorForm(&tutor)
			return m, m.recordForm.Init()
		}
	case "d":
		if tutor, ok := m.selectedTutor(); ok {
			return m, m.deleteTutor(tutor.ID)
		}
	case "l":
		if tutor, ok := m.selectedTutor(); ok {
			m.lastView = ViewTutors
			m.currentView = ViewLinks
			m.linkTutor = tutor
			m.linked = nil
			m.linkCursor = 0
			return m, m.loadLinkedPets(tutor.ID)
		}
	case "o":
		m.manager.Logout()
	}
	return m, nil
}

// handleLinksKey manages the linking view: the current pets page with
// a check mark on each pet already linked to the tutor. Enter toggles
// the link for the pet under the cursor.
func (m *Model) handleLinksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.linkCursor > 0 {
			m.linkCursor--
		}
	case "down", "j":
		if m.linkCursor < len(m.petState.Items)-1 {
			m.linkCursor++
		}
	case "left", "h":
		if m.petState.Page > 0 {
			m.pets.ChangePage(m.petState.Page - 1)
		}
	case "right", "l":
		m.pets.ChangePage(m.petState.Page + 1)
	case "enter", " ":
		if m.linkCursor < len(m.petState.Items) {
			pet := m.petState.Items[m.linkCursor]
			if m.isLinked(pet.ID) {
				return m, m.unlinkPet(m.linkTutor.ID, pet.ID)
			}
			return m, m.linkPet(m.linkTutor.ID, pet.ID)
		}
	}
	return m, nil
}

// handleFilterKey feeds keys to the focused filter input and pushes
// every change into the synchronizer, which debounces the fetch.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.nameFilter.Blur()
		m.breedFilter.Blur()
		m.filterFocus = -1
		return m, nil
	case "tab":
		// Only the pets view has a second filter.
		if m.currentView == ViewPets {
			if m.filterFocus == 0 {
				m.filterFocus = 1
				m.nameFilter.Blur()
				m.breedFilter.Focus()
			} else {
				m.filterFocus = 0
				m.breedFilter.Blur()
				m.nameFilter.Focus()
			}
			return m, textinput.Blink
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.filterFocus == 1 {
		m.breedFilter, cmd = m.breedFilter.Update(msg)
	} else {
		m.nameFilter, cmd = m.nameFilter.Update(msg)
	}
	m.pushFilters()
	return m, cmd
}

// pushFilters sends the current input values to the active list. Empty
// values clear the corresponding filter.
func (m *Model) pushFilters() {
	switch m.currentView {
	case ViewPets:
		m.pets.SetFilters(map[string]string{
			"nome": m.nameFilter.Value(),
			"raca": m.breedFilter.Value(),
		})
	case ViewTutors:
		m.tutors.SetFilters(map[string]string{
			"nome": m.nameFilter.Value(),
		})
	}
}

// syncFilterInputs restores the inputs from the active list's filters
// when the operator switches between pets and tutors.
func (m *Model) syncFilterInputs() {
	switch m.currentView {
	case ViewPets:
		m.nameFilter.SetValue(m.petState.Filters["nome"])
		m.breedFilter.SetValue(m.petState.Filters["raca"])
	case ViewTutors:
		m.nameFilter.SetValue(m.tutorState.Filters["nome"])
		m.breedFilter.SetValue("")
	}
}

func (m *Model) selectedPet() (api.Pet, bool) {
	if m.cursor < len(m.petState.Items) {
		return m.petState.Items[m.cursor], true
	}
	return api.Pet{}, false
}

func (m *Model) selectedTutor() (api.Tutor, bool) {
	if m.cursor < len(m.tutorState.Items) {
		return m.tutorState.Items[m.cursor], true
	}
	return api.Tutor{}, false
}

func (m *Model) isLinked(petID int64) bool {
	for _, p := range m.linked {
		if p.ID == petID {
			return true
		}
	}
	return false
}

// Action commands. Each runs the API call off the Update loop and
// reports back as an actionResultMsg.

func (m *Model) deletePet(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.petSvc.Delete(context.Background(), id)
		return actionResultMsg{verb: "delete pet " + strconv.FormatInt(id, 10), err: err}
	}
}

func (m *Model) deleteTutor(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.tutorSvc.Delete(context.Background(), id)
		return actionResultMsg{verb: "delete tutor " + strconv.FormatInt(id, 10), err: err}
	}
}

func (m *Model) linkPet(tutorID, petID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.tutorSvc.LinkPet(context.Background(), tutorID, petID)
		return actionResultMsg{verb: "link pet", err: err}
	}
}

func (m *Model) unlinkPet(tutorID, petID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.tutorSvc.UnlinkPet(context.Background(), tutorID, petID)
		return actionResultMsg{verb: "unlink pet", err: err}
	}
}

func (m *Model) loadLinkedPets(tutorID int64) tea.Cmd {
	return func() tea.Msg {
		pets, err := m.tutorSvc.LinkedPets(context.Background(), tutorID)
		return linkedPetsMsg{tutorID: tutorID, pets: pets, err: err}
	}
}
