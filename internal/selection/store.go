// Package selection keeps the dashboard's current project and persists its id.
package selection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"bugninjaplatform/internal/domain"
)

// PreferenceKey is the preference under which the selected project id is stored.
const PreferenceKey = "selectedProjectId"

// Listener is called with the new selected project id ("" when cleared).
type Listener func(ctx context.Context, projectID string)

// Store is the process-wide selected project. Listeners run after the
// selection changed, outside the store's lock, in subscription order.
type Store struct {
	repo   domain.PreferenceRepository
	logger *slog.Logger

	mu        sync.RWMutex
	selected  *domain.Project
	listeners []Listener
}

func NewStore(repo domain.PreferenceRepository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{repo: repo, logger: logger}
}

// Subscribe registers fn for selection changes.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Selected returns a copy of the selected project.
func (s *Store) Selected() (*domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil, false
	}
	p := *s.selected
	return &p, true
}

// SelectedID returns the selected project id or "".
func (s *Store) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return ""
	}
	return s.selected.ID
}

// Init restores the persisted id and looks it up in projects. An id that is
// not in the list is discarded and the first project, if any, is selected.
func (s *Store) Init(ctx context.Context, projects []domain.Project) (*domain.Project, error) {
	stored, err := s.repo.Get(ctx, PreferenceKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var pick *domain.Project
	if stored != "" {
		pick = find(projects, stored)
		if pick == nil {
			s.logger.Info("discarding stored project selection", "project_id", stored)
		}
	}
	if pick == nil && len(projects) > 0 {
		pick = &projects[0]
	}

	if pick == nil {
		if stored != "" {
			s.deletePreference(ctx)
		}
		s.set(ctx, nil)
		return nil, nil
	}
	if pick.ID != stored {
		s.persist(ctx, pick.ID)
	}
	s.set(ctx, pick)
	p := *pick
	return &p, nil
}

// Select makes projectID current. It must be one of projects.
func (s *Store) Select(ctx context.Context, projectID string, projects []domain.Project) (*domain.Project, error) {
	pick := find(projects, projectID)
	if pick == nil {
		return nil, domain.ErrNotFound
	}
	s.persist(ctx, pick.ID)
	s.set(ctx, pick)
	p := *pick
	return &p, nil
}

// Refresh replaces the cached copy of the selected project without notifying.
func (s *Store) Refresh(project domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.ID == project.ID {
		s.selected = &project
	}
}

// Forget clears the selection if it is projectID, e.g. after the project was deleted.
func (s *Store) Forget(ctx context.Context, projectID string) {
	if projectID == "" || s.SelectedID() != projectID {
		return
	}
	s.Clear(ctx)
}

// Clear drops the selection and its persisted id.
func (s *Store) Clear(ctx context.Context) {
	s.deletePreference(ctx)
	s.set(ctx, nil)
}

func (s *Store) set(ctx context.Context, project *domain.Project) {
	s.mu.Lock()
	prev := ""
	if s.selected != nil {
		prev = s.selected.ID
	}
	next := ""
	if project != nil {
		p := *project
		s.selected = &p
		next = p.ID
	} else {
		s.selected = nil
	}
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if prev == next {
		return
	}
	s.logger.Info("project selection changed", "from", prev, "to", next)
	for _, fn := range listeners {
		fn(ctx, next)
	}
}

// Persistence failures only cost the selection across restarts, so they are logged.
func (s *Store) persist(ctx context.Context, projectID string) {
	if err := s.repo.Set(ctx, PreferenceKey, projectID); err != nil {
		s.logger.Warn("failed to persist project selection", "project_id", projectID, "err", err)
	}
}

func (s *Store) deletePreference(ctx context.Context) {
	if err := s.repo.Delete(ctx, PreferenceKey); err != nil {
		s.logger.Warn("failed to clear persisted project selection", "err", err)
	}
}

func find(projects []domain.Project, id string) *domain.Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}
