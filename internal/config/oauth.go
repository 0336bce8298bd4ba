package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// OAuthClientEnv names an OAuth client file to use instead of searching for one
const OAuthClientEnv = "CREWBOARD_OAUTH_CLIENT"

// OAuthClientConfig is the client file downloaded from the Google Cloud console.
// Desktop clients carry an "installed" section and web clients a "web" section;
// crewboard accepts either.
type OAuthClientConfig struct {
	Installed *OAuthCredentials `json:"installed,omitempty"`
	Web       *OAuthCredentials `json:"web,omitempty"`
}

// OAuthCredentials holds the fields crewboard needs from either section
type OAuthCredentials struct {
	ClientID                string   `json:"client_id" validate:"required"`
	ProjectID               string   `json:"project_id" validate:"required"`
	AuthURI                 string   `json:"auth_uri" validate:"required,url"`
	TokenURI                string   `json:"token_uri" validate:"required,url"`
	AuthProviderX509CertURL string   `json:"auth_provider_x509_cert_url,omitempty" validate:"omitempty,url"`
	ClientSecret            string   `json:"client_secret" validate:"required"`
	RedirectURIs            []string `json:"redirect_uris" validate:"required,min=1,dive,uri"`
}

var errNoOAuthSection = errors.New("oauth client file has neither an installed nor a web section")

// Credentials returns the installed section, falling back to web
func (c *OAuthClientConfig) Credentials() *OAuthCredentials {
	if c.Installed != nil {
		return c.Installed
	}
	return c.Web
}

// OAuthClientFileName is the client file searched for in env, e.g. "oauthClient.test.json"
func OAuthClientFileName(env string) string {
	if env == "" {
		return "oauthClient.json"
	}
	return "oauthClient." + env + ".json"
}

// LoadOAuthClientWithEnv loads the OAuth client for an environment.
// CREWBOARD_OAUTH_CLIENT wins over the file search. Only commands that talk
// to Google call it.
func LoadOAuthClientWithEnv(env string) (*OAuthClientConfig, error) {
	if path := strings.TrimSpace(os.Getenv(OAuthClientEnv)); path != "" {
		return LoadOAuthClientFromPath(path)
	}

	oauthPath, err := findFile(OAuthClientFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find oauth client file: %w", err)
	}

	return LoadOAuthClientFromPath(oauthPath)
}

// LoadOAuthClientFromPath loads and validates the OAuth client configuration from a specific path
func LoadOAuthClientFromPath(path string) (*OAuthClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	var oauthCfg OAuthClientConfig
	if err := json.Unmarshal(data, &oauthCfg); err != nil {
		return nil, fmt.Errorf("failed to parse oauth client file %s: %w", path, err)
	}

	if err := ValidateOAuthClient(&oauthCfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &oauthCfg, nil
}

// ValidateOAuthClient requires one credentials section and validates every section present
func ValidateOAuthClient(cfg *OAuthClientConfig) error {
	if cfg.Credentials() == nil {
		return fmt.Errorf("oauth client validation failed: %w", errNoOAuthSection)
	}
	// nil sections are skipped, present ones are validated field by field
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("oauth client validation failed: %w", err)
	}
	return nil
}
