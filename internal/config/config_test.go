package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "sqlite", URL: "data/crewboard.db"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.OutingsSheetID = "sheet123"
	cfg.MembersSheetID = "roster456"
	cfg.MembersTab = "Members"
	cfg.DefaultRecurrence = "FREQ=WEEKLY;BYDAY=TU,TH"

	assert.NoError(t, Validate(cfg))
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, []string{"Captains", "Coaches"}, cfg.PrivilegedTags)
	assert.Equal(t, "Europe/London", cfg.Timezone)
	assert.Equal(t, 12, cfg.RecurrenceHorizonWeeks)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{PrivilegedTags: []string{"Committee"}, Timezone: "UTC", RecurrenceHorizonWeeks: 4}
	cfg.ApplyDefaults()

	assert.Equal(t, []string{"Committee"}, cfg.PrivilegedTags)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 4, cfg.RecurrenceHorizonWeeks)
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"missing driver", func(c *Config) { c.Database.Driver = "" }, "validation failed"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "validation failed"},
		{"missing url", func(c *Config) { c.Database.URL = "" }, "validation failed"},
		{"blank privileged tag", func(c *Config) { c.PrivilegedTags = []string{"Captains", ""} }, "validation failed"},
		{"members sheet without tab", func(c *Config) { c.MembersSheetID = "roster456" }, "validation failed"},
		{"horizon too long", func(c *Config) { c.RecurrenceHorizonWeeks = 500 }, "validation failed"},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"invalid rrule", func(c *Config) { c.DefaultRecurrence = "INVALID_RRULE_SYNTAX" }, "invalid rrule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "Europe/London", cfg.Location().String())

	cfg.Timezone = ""
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "crewboard_config.test.yaml")

	content := `
database:
  driver: postgres
  url: "postgres://crewboard@localhost:5432/crewboard"
outingsSheetID: "sheet123"
privilegedTags:
  - Captains
  - Coaches
  - Committee
defaultCoach: "Jo Bloggs"
recurrenceHorizonWeeks: 8
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://crewboard@localhost:5432/crewboard", cfg.Database.URL)
	assert.Equal(t, "sheet123", cfg.OutingsSheetID)
	assert.Equal(t, []string{"Captains", "Coaches", "Committee"}, cfg.PrivilegedTags)
	assert.Equal(t, "Jo Bloggs", cfg.DefaultCoach)
	assert.Equal(t, 8, cfg.RecurrenceHorizonWeeks)
	assert.Equal(t, "Europe/London", cfg.Timezone, "defaults are applied")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("database: [unclosed"), 0644))

	_, err := LoadFromPath(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_FromHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	content := "database:\n  driver: sqlite\n  url: crewboard.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "crewboard_config.staging.yaml"), []byte(content), 0644))

	cfg, err := LoadWithEnv("staging")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)

	_, err = LoadWithEnv("prod")
	assert.Error(t, err)
}
