package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondys/portfolio-auth/internal/config"
)

func TestGenerateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, generateDefaultConfig(path))

	result, err := config.ValidateFile(path)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	t.Setenv("GITHUB_CLIENT_ID", "id")
	t.Setenv("GITHUB_CLIENT_SECRET", "secret")
	t.Setenv("STATE_SIGNING_SECRET", "signing")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "id", cfg.GitHub.ClientID)
	assert.Equal(t, config.DefaultAllowedUser, cfg.GitHub.AllowedUser)
	assert.Equal(t, config.DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, "https://portfolio.example.com", cfg.Relay.AdminOrigin)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_CLIENT_ID", "env-id")
	t.Setenv("ADDR", ":9999")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.GitHub.ClientID)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestValidateConfigReportsErrors(t *testing.T) {
	assert.Error(t, validateConfig(filepath.Join(t.TempDir(), "missing.json")))
}
