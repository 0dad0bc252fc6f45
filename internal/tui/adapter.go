package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geia-vip/pet-manager-console/internal/api"
	"github.com/geia-vip/pet-manager-console/internal/listsync"
	"github.com/geia-vip/pet-manager-console/internal/session"
)

// PetFetch adapts the pet service to the synchronizer's fetch
// contract. Filter keys are the backend's query parameter names.
func PetFetch(svc *api.PetService) listsync.FetchFunc[api.Pet] {
	return func(ctx context.Context, filters map[string]string, page, size int) (listsync.Result[api.Pet], error) {
		result, err := svc.List(ctx, page, size, api.PetFilter{
			Name:  filters["nome"],
			Breed: filters["raca"],
		})
		if err != nil {
			return listsync.Result[api.Pet]{}, err
		}
		return listsync.Result[api.Pet]{
			Items:     result.Content,
			Page:      result.Page,
			PageCount: result.PageCount,
			Total:     result.Total,
		}, nil
	}
}

// TutorFetch adapts the tutor service to the synchronizer's fetch
// contract.
func TutorFetch(svc *api.TutorService) listsync.FetchFunc[api.Tutor] {
	return func(ctx context.Context, filters map[string]string, page, size int) (listsync.Result[api.Tutor], error) {
		result, err := svc.List(ctx, page, size, api.TutorFilter{Name: filters["nome"]})
		if err != nil {
			return listsync.Result[api.Tutor]{}, err
		}
		return listsync.Result[api.Tutor]{
			Items:     result.Content,
			Page:      result.Page,
			PageCount: result.PageCount,
			Total:     result.Total,
		}, nil
	}
}

// Adapter bridges the observable state (session store and list
// synchronizers) into the Bubble Tea program. Subscriptions deliver
// snapshots in order; program.Send preserves that order into the
// Update loop.
type Adapter struct {
	program *tea.Program
	cancels []func()
}

// Run builds the model, subscribes it to every state source, and
// blocks until the program exits.
func Run(
	manager *session.Manager,
	pets *listsync.Synchronizer[api.Pet],
	tutors *listsync.Synchronizer[api.Tutor],
	petSvc *api.PetService,
	tutorSvc *api.TutorService,
) error {
	model := NewModel(manager, pets, tutors, petSvc, tutorSvc)

	a := &Adapter{
		program: tea.NewProgram(model, tea.WithAltScreen()),
	}

	a.cancels = append(a.cancels,
		manager.Store().Subscribe(func(s session.Session) {
			a.program.Send(sessionMsg(s))
		}),
		pets.Subscribe(func(s listsync.State[api.Pet]) {
			a.program.Send(petStateMsg(s))
		}),
		tutors.Subscribe(func(s listsync.State[api.Tutor]) {
			a.program.Send(tutorStateMsg(s))
		}),
	)
	defer a.stop()

	_, err := a.program.Run()
	return err
}

func (a *Adapter) stop() {
	for _, cancel := range a.cancels {
		cancel()
	}
}
