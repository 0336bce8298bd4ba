package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCredentials() *OAuthCredentials {
	return &OAuthCredentials{
		ClientID:                "test-client-id.apps.googleusercontent.com",
		ProjectID:               "test-project",
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientSecret:            "test-secret",
		RedirectURIs:            []string{"http://localhost"},
	}
}

func validOAuthClient() *OAuthClientConfig {
	return &OAuthClientConfig{Installed: validCredentials()}
}

func TestValidateOAuthClient_ValidConfig(t *testing.T) {
	assert.NoError(t, ValidateOAuthClient(validOAuthClient()))
}

func TestValidateOAuthClient_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OAuthClientConfig)
	}{
		{"missing client id", func(c *OAuthClientConfig) { c.Installed.ClientID = "" }},
		{"invalid auth uri", func(c *OAuthClientConfig) { c.Installed.AuthURI = "not-a-valid-url" }},
		{"no redirect uris", func(c *OAuthClientConfig) { c.Installed.RedirectURIs = []string{} }},
		{"no credentials section", func(c *OAuthClientConfig) { c.Installed = nil }},
		{"invalid web section alongside installed", func(c *OAuthClientConfig) {
			c.Web = validCredentials()
			c.Web.TokenURI = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validOAuthClient()
			tt.mutate(cfg)

			err := ValidateOAuthClient(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauthClient.test.json")
	content := `{
  "installed": {
    "client_id": "test-client-id",
    "project_id": "test-project",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "test-secret",
    "redirect_uris": ["http://localhost"]
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadOAuthClientFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "test-client-id", cfg.Installed.ClientID)
	assert.Equal(t, []string{"http://localhost"}, cfg.Installed.RedirectURIs)
}

func TestLoadOAuthClientFromPath_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauthClient.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	_, err := LoadOAuthClientFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse oauth client file")
}

func TestValidateOAuthClient_WebSection(t *testing.T) {
	cfg := &OAuthClientConfig{Web: validCredentials()}
	cfg.Web.AuthProviderX509CertURL = ""

	require.NoError(t, ValidateOAuthClient(cfg))
	assert.Same(t, cfg.Web, cfg.Credentials())
}

func TestOAuthClientFileName(t *testing.T) {
	assert.Equal(t, "oauthClient.json", OAuthClientFileName(""))
	assert.Equal(t, "oauthClient.prod.json", OAuthClientFileName("prod"))
}

func TestLoadOAuthClientWithEnv_UsesEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "club-client.json")
	content := `{"web": {
  "client_id": "web-client",
  "project_id": "crewboard",
  "auth_uri": "https://accounts.google.com/o/oauth2/auth",
  "token_uri": "https://oauth2.googleapis.com/token",
  "client_secret": "secret",
  "redirect_uris": ["http://localhost:3000/oauth/callback"]
}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv(OAuthClientEnv, path)

	cfg, err := LoadOAuthClientWithEnv("nonexistent-env")
	require.NoError(t, err)
	assert.Nil(t, cfg.Installed)
	assert.Equal(t, "web-client", cfg.Credentials().ClientID)
}
