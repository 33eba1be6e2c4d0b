package transform

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bugninjaplatform/internal/domain"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Project maps a backend project to the frontend shape.
func Project(p domain.BackendProject) domain.Project {
	return domain.Project{
		ID:              p.ID,
		Name:            p.Name,
		Description:     deref(p.Description),
		DefaultStartURL: deref(p.DefaultStartURL),
		TestCaseCount:   p.TestCaseCount.Int(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// TestCase maps a backend test case to the frontend shape.
func TestCase(tc domain.BackendTestCase) domain.TestCase {
	domains := tc.AllowedDomains
	if domains == nil {
		domains = []string{}
	}
	browsers := make([]domain.BrowserConfig, 0, len(tc.BrowserConfigs))
	for _, bc := range tc.BrowserConfigs {
		browsers = append(browsers, BrowserConfig(bc))
	}
	secrets := make([]domain.Secret, 0, len(tc.Secrets))
	for _, s := range tc.Secrets {
		secrets = append(secrets, Secret(s))
	}
	return domain.TestCase{
		ID:             tc.ID,
		ProjectID:      tc.ProjectID,
		Code:           tc.TestCode,
		Name:           tc.TestName,
		Description:    deref(tc.TestDescription),
		Goal:           deref(tc.TestGoal),
		StartURL:       deref(tc.URLRoute),
		Priority:       tc.Priority,
		Category:       deref(tc.Category),
		AllowedDomains: domains,
		ExtraRules:     ExtraRules(tc.ID, tc.ExtraRules),
		BrowserConfigs: browsers,
		Secrets:        secrets,
		TotalRuns:      tc.TotalRuns.Int(),
		PassedRuns:     tc.PassedRuns.Int(),
		FailedRuns:     tc.FailedRuns.Int(),
		LastRunAt:      tc.LastRunAt,
		CreatedAt:      tc.CreatedAt,
		UpdatedAt:      tc.UpdatedAt,
	}
}

// TestCaseInput maps a frontend create/update request to the backend body.
func TestCaseInput(projectID string, in domain.TestCaseInput) domain.BackendTestCaseInput {
	nonNil := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return domain.BackendTestCaseInput{
		ProjectID:        projectID,
		TestName:         strings.TrimSpace(in.Name),
		TestDescription:  in.Description,
		TestGoal:         in.Goal,
		URLRoute:         in.StartURL,
		Priority:         in.Priority,
		Category:         in.Category,
		AllowedDomains:   nonNil(in.AllowedDomains),
		ExtraRules:       BackendExtraRules(in.ExtraRules),
		BrowserConfigIDs: nonNil(in.BrowserConfigIDs),
		SecretIDs:        nonNil(in.SecretIDs),
	}
}

// BrowserConfig maps a backend browser configuration to the frontend shape,
// coercing numeric fields and adding a display name.
func BrowserConfig(bc domain.BackendBrowserConfig) domain.BrowserConfig {
	s := bc.BrowserConfig
	out := domain.BrowserConfig{
		ID:                bc.ID,
		ProjectID:         bc.ProjectID,
		BrowserChannel:    s.BrowserChannel,
		UserAgent:         s.UserAgent,
		DeviceScaleFactor: s.DeviceScaleFactor.Float(),
		ColorScheme:       s.ColorScheme,
		Timezone:          s.Timezone,
		Locale:            s.Locale,
		CreatedAt:         bc.CreatedAt,
	}
	if s.Viewport != nil {
		out.Viewport = domain.Viewport{Width: s.Viewport.Width.Int(), Height: s.Viewport.Height.Int()}
	}
	if g := s.Geolocation; g != nil && g.Latitude.Valid && g.Longitude.Valid {
		out.Geolocation = &domain.Geolocation{
			Latitude:  g.Latitude.Float(),
			Longitude: g.Longitude.Float(),
			Accuracy:  g.Accuracy.Float(),
		}
	}
	out.Name = BrowserDisplayName(out)
	return out
}

// BrowserDisplayName builds a name such as "Chrome 1920x1080".
// A cases.Caser is stateful, so each call builds its own.
func BrowserDisplayName(bc domain.BrowserConfig) string {
	channel := strings.TrimSpace(strings.ReplaceAll(bc.BrowserChannel, "-", " "))
	if channel == "" {
		channel = "Browser"
	} else {
		channel = cases.Title(language.English).String(channel)
	}
	if bc.Viewport.Width > 0 && bc.Viewport.Height > 0 {
		return fmt.Sprintf("%s %dx%d", channel, bc.Viewport.Width, bc.Viewport.Height)
	}
	return channel
}

// BrowserConfigInput maps a frontend browser configuration to the backend body.
func BrowserConfigInput(projectID string, in domain.BrowserConfigInput) domain.BackendBrowserConfigInput {
	settings := domain.BackendBrowserSettings{
		BrowserChannel: in.BrowserChannel,
		UserAgent:      in.UserAgent,
		Viewport: &domain.BackendViewport{
			Width:  domain.NewNumeric(float64(in.Viewport.Width)),
			Height: domain.NewNumeric(float64(in.Viewport.Height)),
		},
		ColorScheme: in.ColorScheme,
		Timezone:    in.Timezone,
		Locale:      in.Locale,
	}
	if in.DeviceScaleFactor > 0 {
		settings.DeviceScaleFactor = domain.NewNumeric(in.DeviceScaleFactor)
	}
	if g := in.Geolocation; g != nil {
		settings.Geolocation = &domain.BackendGeolocation{
			Latitude:  domain.NewNumeric(g.Latitude),
			Longitude: domain.NewNumeric(g.Longitude),
			Accuracy:  domain.NewNumeric(g.Accuracy),
		}
	}
	return domain.BackendBrowserConfigInput{ProjectID: projectID, BrowserConfig: settings}
}

// Secret maps a backend secret to the frontend shape.
func Secret(s domain.BackendSecret) domain.Secret {
	return domain.Secret{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		Name:      s.SecretName,
		Value:     s.SecretValue,
		CreatedAt: s.CreatedAt,
	}
}

// SecretInput maps a frontend secret to the backend body.
func SecretInput(projectID string, in domain.SecretInput) domain.BackendSecretInput {
	return domain.BackendSecretInput{
		ProjectID:   projectID,
		SecretName:  strings.TrimSpace(in.Name),
		SecretValue: in.Value,
	}
}

// TestRun maps a backend test run, including its step history, to the frontend shape.
func TestRun(r domain.BackendTestRun) domain.TestRun {
	out := domain.TestRun{
		ID:              r.ID,
		TestCaseID:      r.TestCaseID,
		TestCaseName:    deref(r.TestCaseName),
		ProjectID:       r.ProjectID,
		BrowserConfigID: deref(r.BrowserConfigID),
		Status:          strings.ToLower(r.Status),
		ErrorMessage:    deref(r.ErrorMessage),
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
		Steps:           make([]domain.RunStep, 0, len(r.Steps)),
	}
	if r.StartedAt != nil && r.FinishedAt != nil && r.FinishedAt.After(*r.StartedAt) {
		out.DurationSeconds = r.FinishedAt.Sub(*r.StartedAt).Seconds()
	}
	for i, s := range r.Steps {
		step := RunStep(r.ID, i+1, s)
		switch step.Status {
		case domain.RunPassed:
			out.PassedSteps++
		case domain.RunFailed:
			out.FailedSteps++
		}
		out.Steps = append(out.Steps, step)
	}
	return out
}

// RunStep maps one backend step. position is its 1-based index in the run history,
// used when the backend omits the step number or id.
func RunStep(runID string, position int, s domain.BackendRunStep) domain.RunStep {
	n := s.StepNumber.Int()
	if n < 1 {
		n = position
	}
	id := s.ID
	if id == "" {
		id = fmt.Sprintf("step-%s-%d", runID, position)
	}
	return domain.RunStep{
		ID:            id,
		StepNumber:    n,
		Action:        s.Action,
		Description:   deref(s.Description),
		Status:        strings.ToLower(s.Status),
		ScreenshotURL: deref(s.ScreenshotPath),
		CreatedAt:     s.CreatedAt,
	}
}
