//go:build integration
// +build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/kjstillabower/weather-widget/internal/current"
	"github.com/kjstillabower/weather-widget/internal/models"
	"github.com/kjstillabower/weather-widget/internal/testhelpers"
)

// TestIntegration_GetCurrent_LiveAPI resolves a real forecast end to end.
func TestIntegration_GetCurrent_LiveAPI(t *testing.T) {
	cfg := testhelpers.GetIntegrationConfig(t)
	svc := testhelpers.SetupIntegrationService(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	view, err := svc.GetCurrent(ctx, "London, UK", models.UnitsMetric)
	if err != nil {
		t.Fatalf("GetCurrent() error = %v", err)
	}
	if view.ResolvedAddress == "" {
		t.Error("ResolvedAddress is empty")
	}
	if view.Current.Source == current.SourceNone {
		t.Errorf("Source = none, want a temperature from a full forecast")
	}
}

// TestIntegration_ValidateAPIKey_LiveAPI checks the configured key is accepted.
func TestIntegration_ValidateAPIKey_LiveAPI(t *testing.T) {
	cfg := testhelpers.GetIntegrationConfig(t)
	c := testhelpers.SetupIntegrationClient(t, cfg)

	if err := c.ValidateAPIKey(context.Background()); err != nil {
		t.Errorf("ValidateAPIKey() error = %v", err)
	}
}
