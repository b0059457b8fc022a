package main

import (
	"fmt"
	"os"

	"github.com/creativityverse/verse-cli/internal/api"
	"github.com/creativityverse/verse-cli/internal/chat"
	"github.com/creativityverse/verse-cli/internal/config"
	"github.com/creativityverse/verse-cli/internal/contests"
	"github.com/creativityverse/verse-cli/internal/feed"
	"github.com/creativityverse/verse-cli/internal/jobs"
	"github.com/creativityverse/verse-cli/internal/observability"
	"github.com/creativityverse/verse-cli/internal/profile"
	"github.com/creativityverse/verse-cli/internal/session"
	"github.com/creativityverse/verse-cli/internal/storage"
	"github.com/creativityverse/verse-cli/internal/talents"
)

// app wires the stores together: one API client, one session as its
// token source and 401 target, and every domain store on top.
type app struct {
	cfg      *config.Config
	state    *storage.Store
	client   *api.Client
	session  *session.Store
	feed     *feed.Store
	jobs     *jobs.Store
	contests *contests.Store
	talents  *talents.Store
	chat     *chat.Store
	profile  *profile.Store
	printer  *observability.Printer
}

func newApp() (*app, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	state, err := storage.New(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	sess := session.New(state)
	client := api.New(cfg.APIBaseURL, &api.Options{
		Timeout:        cfg.HTTPTimeout,
		Tokens:         sess,
		OnUnauthorized: sess.Logout,
	})
	sess.SetClient(client)
	sess.Restore()

	draft, err := profile.New(state)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		state:    state,
		client:   client,
		session:  sess,
		feed:     feed.New(client),
		jobs:     jobs.New(client, state),
		contests: contests.New(client),
		talents:  talents.New(client),
		chat:     chat.New(client),
		profile:  draft,
		printer:  observability.NewPrinter(os.Stdout),
	}, nil
}
