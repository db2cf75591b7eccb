// Package session keeps one conversation controller per user session in a
// TTL cache. Sessions expire after idling and are recreated on demand; the
// assessment service stays authoritative for anything worth resuming.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ram19prakash/Public-Health-Chatbot/app/client/assessment"
	"github.com/Ram19prakash/Public-Health-Chatbot/app/config"
	"github.com/Ram19prakash/Public-Health-Chatbot/app/service/conversation"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/samber/do"
)

type Service struct {
	cfg      *config.Config
	sessions *cache.Cache
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		cfg:      cfg,
		sessions: cache.New(cfg.Session.TTL, cfg.Session.CleanupInterval),
	}, nil
}

// Create builds a controller with its own assessment client (and cookie jar,
// so the remote session sticks to this conversation) and registers it under
// a fresh id. The active language is taken from the remote session, falling
// back to the configured default when the service cannot be reached.
func (s *Service) Create(ctx context.Context) (string, *conversation.Controller, error) {
	client, err := assessment.NewClient(s.cfg.Assessment.BaseURL, s.cfg.Assessment.Timeout)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create assessment client: %w", err)
	}

	code := s.cfg.Assessment.DefaultLanguage
	name := s.languageName(code)

	if info, err := client.CurrentLanguage(ctx); err != nil {
		slog.Warn("Failed to fetch current language, using default",
			"default", code,
			"error", err)
	} else {
		code = info.Language
		name = info.LanguageName
	}

	controller := conversation.NewController(s.cfg, client, code, name)

	id := uuid.NewString()
	s.sessions.Set(id, controller, cache.DefaultExpiration)

	return id, controller, nil
}

// Get returns the live controller and slides its expiration.
func (s *Service) Get(id string) (*conversation.Controller, bool) {
	x, found := s.sessions.Get(id)
	if !found {
		return nil, false
	}

	controller := x.(*conversation.Controller)
	s.sessions.Set(id, controller, cache.DefaultExpiration)

	return controller, true
}

func (s *Service) Drop(id string) {
	s.sessions.Delete(id)
}

func (s *Service) languageName(code string) string {
	for _, l := range s.cfg.Languages {
		if l.Code == code {
			return l.Name
		}
	}

	return code
}
