package tui

import (
	"fmt"
	"strings"

	"github.com/geia-vip/pet-manager-console/internal/listsync"
)

// View renders the console (required by Bubble Tea)
func (m *Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewPets:
		return m.renderPets()
	case ViewTutors:
		return m.renderTutors()
	case ViewForm:
		return m.renderForm()
	case ViewLinks:
		return m.renderLinks()
	case ViewHelp:
		return m.renderHelp()
	default:
		return "Unknown view"
	}
}

func (m *Model) renderLogin() string {
	var b strings.Builder

	if m.loginForm != nil {
		b.WriteString(m.loginForm.View())
	}

	if m.session.Loading {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.Muted.Render(" signing in..."))
	}
	if m.session.Err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.session.Err))
	}

	return b.String()
}

func (m *Model) renderPets() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("🐾 Pets"))
	b.WriteString(m.renderFilterLine(true))
	b.WriteString("\n")

	if len(m.petState.Items) == 0 && !m.petState.Loading {
		b.WriteString(m.styles.Muted.Render("No pets match the current filters"))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("%-6s %-24s %-20s %-5s", "ID", "NAME", "BREED", "AGE")
		b.WriteString(m.styles.Header.Render(header))
		b.WriteString("\n")
		for i, pet := range m.petState.Items {
			line := fmt.Sprintf("%-6d %-24s %-20s %-5d", pet.ID, truncate(pet.Name, 24), truncate(pet.Breed, 20), pet.Age)
			if i == m.cursor {
				line = m.styles.Selected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderListFooter(m.petState.Pagination, m.petState.Loading, m.petState.Err))
	b.WriteString(m.renderHelpLine([]helpItem{
		{"/", "filter"}, {"←/→", "page"}, {"n", "new"}, {"e", "edit"}, {"d", "delete"},
		{"tab", "tutors"}, {"o", "logout"}, {"?", "help"}, {"q", "quit"},
	}))

	return b.String()
}

func (m *Model) renderTutors() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("👤 Tutors"))
	b.WriteString(m.renderFilterLine(false))
	b.WriteString("\n")

	if len(m.tutorState.Items) == 0 && !m.tutorState.Loading {
		b.WriteString(m.styles.Muted.Render("No tutors match the current filters"))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("%-6s %-24s %-26s %-14s", "ID", "NAME", "EMAIL", "PHONE")
		b.WriteString(m.styles.Header.Render(header))
		b.WriteString("\n")
		for i, tutor := range m.tutorState.Items {
			line := fmt.Sprintf("%-6d %-24s %-26s %-14s",
				tutor.ID, truncate(tutor.Name, 24), truncate(tutor.Email, 26), truncate(tutor.Phone, 14))
			if i == m.cursor {
				line = m.styles.Selected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderListFooter(m.tutorState.Pagination, m.tutorState.Loading, m.tutorState.Err))
	b.WriteString(m.renderHelpLine([]helpItem{
		{"/", "filter"}, {"←/→", "page"}, {"n", "new"}, {"e", "edit"}, {"d", "delete"},
		{"l", "pets"}, {"tab", "pets list"}, {"o", "logout"}, {"?", "help"}, {"q", "quit"},
	}))

	return b.String()
}

func (m *Model) renderForm() string {
	if m.recordForm == nil {
		return ""
	}
	return m.recordForm.View()
}

func (m *Model) renderLinks() string {
	var b strings.Builder

	title := fmt.Sprintf("🔗 Pets of %s", m.linkTutor.Name)
	b.WriteString(m.renderHeader(title))

	if len(m.petState.Items) == 0 {
		b.WriteString(m.styles.Muted.Render("No pets on this page"))
		b.WriteString("\n")
	}
	for i, pet := range m.petState.Items {
		mark := "○"
		if m.isLinked(pet.ID) {
			mark = m.styles.Success.Render("✓")
		}
		line := fmt.Sprintf("%s %-6d %-24s %-20s", mark, pet.ID, truncate(pet.Name, 24), truncate(pet.Breed, 20))
		if i == m.linkCursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.renderListFooter(m.petState.Pagination, m.petState.Loading, m.petState.Err))
	b.WriteString(m.renderHelpLine([]helpItem{
		{"enter", "link/unlink"}, {"←/→", "page"}, {"esc", "back"}, {"q", "quit"},
	}))

	return b.String()
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("❓ Help"))
	b.WriteString("\n\n")

	hotkeys := []helpItem{
		{"/", "Focus the filter inputs (esc or enter to leave)"},
		{"tab", "Switch between pets and tutors"},
		{"↑/↓", "Move the row cursor"},
		{"←/→", "Previous / next page"},
		{"n", "New record"},
		{"e", "Edit the selected record"},
		{"d", "Delete the selected record"},
		{"l", "Manage a tutor's linked pets"},
		{"r", "Reload the current page"},
		{"o", "Log out"},
		{"q", "Quit"},
		{"Ctrl+C", "Force quit"},
	}
	for _, hk := range hotkeys {
		b.WriteString(m.styles.Key.Render(fmt.Sprintf("%-10s", hk.key)))
		b.WriteString(" ")
		b.WriteString(m.styles.KeyDesc.Render(hk.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press ? or esc to return"))

	return b.String()
}

func (m *Model) renderHeader(title string) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	if user := username(m.session); user != "" {
		b.WriteString("  ")
		role := ""
		if m.session.User != nil {
			role = m.session.User.Role
		}
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s (%s)", user, role)))
	}
	b.WriteString("\n")
	return b.String()
}

// renderFilterLine shows the filter inputs. The breed input only
// applies to pets.
func (m *Model) renderFilterLine(withBreed bool) string {
	var b strings.Builder
	b.WriteString(m.styles.Muted.Render("Name: "))
	b.WriteString(m.nameFilter.View())
	if withBreed {
		b.WriteString("  ")
		b.WriteString(m.styles.Muted.Render("Breed: "))
		b.WriteString(m.breedFilter.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderListFooter(p listsync.Pagination, loading bool, errMsg string) string {
	var b strings.Builder

	pages := p.TotalPages
	if pages == 0 {
		pages = 1
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("page %d/%d · %d total", p.CurrentPage+1, pages, p.TotalItems)))

	if loading {
		b.WriteString("  ")
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.Muted.Render("loading"))
	}
	b.WriteString("\n")

	if errMsg != "" {
		b.WriteString(m.styles.Error.Render(errMsg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return b.String()
}

type helpItem struct {
	key  string
	desc string
}

func (m *Model) renderHelpLine(items []helpItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, m.styles.Key.Render(it.key)+" "+m.styles.KeyDesc.Render(it.desc))
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
