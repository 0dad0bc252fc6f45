package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geia-vip/pet-manager-console/internal/api"
	"github.com/geia-vip/pet-manager-console/internal/config"
	"github.com/geia-vip/pet-manager-console/internal/listsync"
	"github.com/geia-vip/pet-manager-console/internal/log"
	"github.com/geia-vip/pet-manager-console/internal/session"
	"github.com/geia-vip/pet-manager-console/internal/tui"
)

// app bundles the wired-up application: configuration, logging, the
// session manager, and the authenticated API services. Every command
// builds one in its RunE instead of sharing globals.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	manager *session.Manager
	pets    *api.PetService
	tutors  *api.TutorService
}

// newApp loads configuration, restores any persisted session, and
// builds the authenticated client stack. The --log-level flag wins
// over the config file.
func newApp(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	logger := log.New(log.Config{
		Level:  log.ParseLevel(level),
		Format: log.ParseFormat(cfg.Log.Format),
		Output: log.OutputStderr(),
	})

	store := session.NewStore(session.Session{})
	keys := session.NewKeystore(cfg.Auth.Dir)

	// Login and refresh run on a bare client: they must never pass
	// through the retrying transport they feed tokens into.
	authClient := api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))
	manager := session.NewManager(api.NewAuthService(authClient), store, keys, session.ManagerConfig{}, logger)

	if err := manager.Bootstrap(); err != nil {
		logger.WithError(err).Warn("stored session not restored")
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTransport(api.NewAuthTransport(nil, manager)),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		manager: manager,
		pets:    api.NewPetService(client),
		tutors:  api.NewTutorService(client),
	}, nil
}

// newSynchronizers builds the pets and tutors list synchronizers from
// the app's services and list configuration.
func (a *app) newSynchronizers() (*listsync.Synchronizer[api.Pet], *listsync.Synchronizer[api.Tutor]) {
	cfg := listsync.Config{
		Debounce: a.cfg.List.Debounce,
		PageSize: a.cfg.List.PageSize,
	}
	return listsync.New(tui.PetFetch(a.pets), cfg), listsync.New(tui.TutorFetch(a.tutors), cfg)
}
