package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name            string
		env             map[string]string
		expectedBaseURL string
		expectedOrigins []string
		expectedTimeout time.Duration
		expectedProd    bool
	}{
		{
			name:            "defaults_to_sandbox",
			env:             map[string]string{},
			expectedBaseURL: SandboxBaseURL,
			expectedTimeout: 30 * time.Second,
		},
		{
			name:            "production_environment",
			env:             map[string]string{"NODE_ENV": "production"},
			expectedBaseURL: ProductionBaseURL,
			expectedTimeout: 30 * time.Second,
			expectedProd:    true,
		},
		{
			name: "explicit_base_url_wins",
			env: map[string]string{
				"NODE_ENV":       "production",
				"MVOLA_BASE_URL": "http://localhost:9999/",
			},
			expectedBaseURL: "http://localhost:9999",
			expectedTimeout: 30 * time.Second,
			expectedProd:    true,
		},
		{
			name: "origins_and_timeout",
			env: map[string]string{
				"ALLOWED_ORIGINS":    "https://shop.example.mg, https://admin.example.mg,,",
				"MVOLA_HTTP_TIMEOUT": "5s",
			},
			expectedBaseURL: SandboxBaseURL,
			expectedOrigins: []string{"https://shop.example.mg", "https://admin.example.mg"},
			expectedTimeout: 5 * time.Second,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"NODE_ENV", "MVOLA_BASE_URL", "ALLOWED_ORIGINS", "MVOLA_HTTP_TIMEOUT"} {
				t.Setenv(key, "")
			}
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			require.NoError(t, err)

			assert.Equal(t, tc.expectedBaseURL, cfg.BaseURL)
			assert.Equal(t, tc.expectedOrigins, cfg.AllowedOrigins)
			assert.Equal(t, tc.expectedTimeout, cfg.HTTPTimeout)
			assert.Equal(t, tc.expectedProd, cfg.IsProduction())
		})
	}
}

func TestHasCredentials(t *testing.T) {
	assert.False(t, (&Config{ConsumerKey: "key"}).HasCredentials())
	assert.False(t, (&Config{ConsumerSecret: "secret"}).HasCredentials())
	assert.True(t, (&Config{ConsumerKey: "key", ConsumerSecret: "secret"}).HasCredentials())
}
