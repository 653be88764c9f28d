//go:build integration
// +build integration

package testhelpers

import (
	"os"
	"testing"
	"time"

	"github.com/kjstillabower/weather-widget/internal/client"
	"github.com/kjstillabower/weather-widget/internal/service"
)

// IntegrationTestConfig holds configuration for tests that call the live Visual Crossing API.
type IntegrationTestConfig struct {
	APIKey string
	APIURL string
}

// GetIntegrationConfig loads integration test configuration from environment.
// Skips test if WEATHER_API_KEY is not set.
func GetIntegrationConfig(t *testing.T) IntegrationTestConfig {
	t.Helper()
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}
	apiURL := os.Getenv("WEATHER_API_URL")
	if apiURL == "" {
		apiURL = client.DefaultBaseURL
	}
	return IntegrationTestConfig{APIKey: apiKey, APIURL: apiURL}
}

// SetupIntegrationClient creates a live forecast client.
func SetupIntegrationClient(t *testing.T, cfg IntegrationTestConfig) *client.VisualCrossingClient {
	t.Helper()
	c, err := client.NewVisualCrossingClient(cfg.APIKey, cfg.APIURL, 10*time.Second)
	if err != nil {
		t.Fatalf("NewVisualCrossingClient() error = %v", err)
	}
	return c
}

// SetupIntegrationService creates a widget service backed by the live client.
func SetupIntegrationService(t *testing.T, cfg IntegrationTestConfig) *service.WidgetService {
	t.Helper()
	return service.NewWidgetService(SetupIntegrationClient(t, cfg), service.Options{})
}
