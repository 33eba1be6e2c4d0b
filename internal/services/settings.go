package services

import (
	"context"
	"fmt"
	"strings"

	"bugninjaplatform/internal/domain"
	"bugninjaplatform/internal/selection"
	"bugninjaplatform/internal/transform"
)

type settingsService struct {
	api   domain.BugninjaAPI
	store *selection.Store
}

// NewSettingsService manages browser configs and secrets of the selected project.
// These lists are small and fetched whole, without pagination.
func NewSettingsService(api domain.BugninjaAPI, store *selection.Store) domain.SettingsService {
	return &settingsService{api: api, store: store}
}

func (s *settingsService) projectID() (string, error) {
	id := s.store.SelectedID()
	if id == "" {
		return "", domain.ErrNoProjectSelected
	}
	return id, nil
}

func (s *settingsService) ListBrowserConfigs(ctx context.Context) ([]domain.BrowserConfig, error) {
	projectID, err := s.projectID()
	if err != nil {
		return nil, err
	}
	raw, err := s.api.ListBrowserConfigs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BrowserConfig, 0, len(raw))
	for _, bc := range raw {
		out = append(out, transform.BrowserConfig(bc))
	}
	return out, nil
}

func (s *settingsService) CreateBrowserConfig(ctx context.Context, in domain.BrowserConfigInput) (*domain.BrowserConfig, error) {
	projectID, err := s.projectID()
	if err != nil {
		return nil, err
	}
	if err := validateBrowserConfig(in); err != nil {
		return nil, err
	}
	raw, err := s.api.CreateBrowserConfig(ctx, transform.BrowserConfigInput(projectID, in))
	if err != nil {
		return nil, err
	}
	bc := transform.BrowserConfig(*raw)
	return &bc, nil
}

func (s *settingsService) UpdateBrowserConfig(ctx context.Context, id string, in domain.BrowserConfigInput) (*domain.BrowserConfig, error) {
	projectID, err := s.projectID()
	if err != nil {
		return nil, err
	}
	if err := validateBrowserConfig(in); err != nil {
		return nil, err
	}
	raw, err := s.api.UpdateBrowserConfig(ctx, id, transform.BrowserConfigInput(projectID, in))
	if err != nil {
		return nil, err
	}
	bc := transform.BrowserConfig(*raw)
	return &bc, nil
}

func (s *settingsService) DeleteBrowserConfig(ctx context.Context, id string) error {
	return s.api.DeleteBrowserConfig(ctx, id)
}

func (s *settingsService) ListSecrets(ctx context.Context) ([]domain.Secret, error) {
	projectID, err := s.projectID()
	if err != nil {
		return nil, err
	}
	raw, err := s.api.ListSecrets(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Secret, 0, len(raw))
	for _, sec := range raw {
		out = append(out, transform.Secret(sec))
	}
	return out, nil
}

func (s *settingsService) CreateSecret(ctx context.Context, in domain.SecretInput) (*domain.Secret, error) {
	projectID, err := s.projectID()
	if err != nil {
		return nil, err
	}
	if err := validateSecret(in); err != nil {
		return nil, err
	}
	raw, err := s.api.CreateSecret(ctx, transform.SecretInput(projectID, in))
	if err != nil {
		return nil, err
	}
	sec := transform.Secret(*raw)
	return &sec, nil
}

func (s *settingsService) UpdateSecret(ctx context.Context, id string, in domain.SecretInput) (*domain.Secret, error) {
	projectID, err := s.projectID()
	if err != nil {
		return nil, err
	}
	if err := validateSecret(in); err != nil {
		return nil, err
	}
	raw, err := s.api.UpdateSecret(ctx, id, transform.SecretInput(projectID, in))
	if err != nil {
		return nil, err
	}
	sec := transform.Secret(*raw)
	return &sec, nil
}

func (s *settingsService) DeleteSecret(ctx context.Context, id string) error {
	return s.api.DeleteSecret(ctx, id)
}

func validateBrowserConfig(in domain.BrowserConfigInput) error {
	if in.Viewport.Width < 0 || in.Viewport.Height < 0 {
		return fmt.Errorf("%w: viewport size must not be negative", domain.ErrInvalidInput)
	}
	if in.DeviceScaleFactor < 0 {
		return fmt.Errorf("%w: device scale factor must not be negative", domain.ErrInvalidInput)
	}
	if g := in.Geolocation; g != nil && (g.Latitude < -90 || g.Latitude > 90 || g.Longitude < -180 || g.Longitude > 180) {
		return fmt.Errorf("%w: geolocation out of range", domain.ErrInvalidInput)
	}
	return nil
}

func validateSecret(in domain.SecretInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: secret name is required", domain.ErrInvalidInput)
	}
	if in.Value == "" {
		return fmt.Errorf("%w: secret value is required", domain.ErrInvalidInput)
	}
	return nil
}
