package domain

import (
	"context"
	"time"
)

// Viewport is a browser window size in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Geolocation is the emulated position of a browser.
type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// BrowserConfig is the frontend-normalized browser configuration.
// Name is synthetic; the backend does not store one.
// swagger:model BrowserConfig
type BrowserConfig struct {
	ID                string       `json:"id"`
	ProjectID         string       `json:"projectId"`
	Name              string       `json:"name"`
	BrowserChannel    string       `json:"browserChannel"`
	UserAgent         string       `json:"userAgent"`
	Viewport          Viewport     `json:"viewport"`
	DeviceScaleFactor float64      `json:"deviceScaleFactor"`
	ColorScheme       string       `json:"colorScheme"`
	Timezone          string       `json:"timezone"`
	Locale            string       `json:"locale"`
	Geolocation       *Geolocation `json:"geolocation"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// BackendViewport is the viewport as sent by the backend; sizes may be strings.
type BackendViewport struct {
	Width  Numeric `json:"width"`
	Height Numeric `json:"height"`
}

// BackendGeolocation is the geolocation as sent by the backend.
type BackendGeolocation struct {
	Latitude  Numeric `json:"latitude"`
	Longitude Numeric `json:"longitude"`
	Accuracy  Numeric `json:"accuracy"`
}

// BackendBrowserSettings is the nested browser_config object of a backend browser config.
type BackendBrowserSettings struct {
	BrowserChannel    string              `json:"browser_channel"`
	UserAgent         string              `json:"user_agent"`
	Viewport          *BackendViewport    `json:"viewport"`
	DeviceScaleFactor Numeric             `json:"device_scale_factor"`
	ColorScheme       string              `json:"color_scheme"`
	Timezone          string              `json:"timezone"`
	Locale            string              `json:"locale"`
	Geolocation       *BackendGeolocation `json:"geolocation"`
}

// BackendBrowserConfig is the backend wire shape of a browser configuration.
type BackendBrowserConfig struct {
	ID            string                 `json:"id"`
	ProjectID     string                 `json:"project_id"`
	BrowserConfig BackendBrowserSettings `json:"browser_config"`
	CreatedAt     time.Time              `json:"created_at"`
}

// BrowserConfigInput is the writable part of a browser configuration.
type BrowserConfigInput struct {
	BrowserChannel    string       `json:"browserChannel"`
	UserAgent         string       `json:"userAgent"`
	Viewport          Viewport     `json:"viewport"`
	DeviceScaleFactor float64      `json:"deviceScaleFactor"`
	ColorScheme       string       `json:"colorScheme"`
	Timezone          string       `json:"timezone"`
	Locale            string       `json:"locale"`
	Geolocation       *Geolocation `json:"geolocation"`
}

// Secret is a named credential injected into test runs.
// swagger:model Secret
type Secret struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackendSecret is the backend wire shape of a secret.
type BackendSecret struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	SecretName  string    `json:"secret_name"`
	SecretValue string    `json:"secret_value"`
	CreatedAt   time.Time `json:"created_at"`
}

// SecretInput is the writable part of a secret.
type SecretInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SettingsService manages browser configurations and secrets of the selected project.
type SettingsService interface {
	ListBrowserConfigs(ctx context.Context) ([]BrowserConfig, error)
	CreateBrowserConfig(ctx context.Context, in BrowserConfigInput) (*BrowserConfig, error)
	UpdateBrowserConfig(ctx context.Context, id string, in BrowserConfigInput) (*BrowserConfig, error)
	DeleteBrowserConfig(ctx context.Context, id string) error
	ListSecrets(ctx context.Context) ([]Secret, error)
	CreateSecret(ctx context.Context, in SecretInput) (*Secret, error)
	UpdateSecret(ctx context.Context, id string, in SecretInput) (*Secret, error)
	DeleteSecret(ctx context.Context, id string) error
}
