package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimezone               = "Europe/London"
	DefaultRecurrenceHorizonWeeks = 12
)

// DefaultPrivilegedTags see every race and event on the calendar
var DefaultPrivilegedTags = []string{"Captains", "Coaches"}

// DatabaseConfig selects the storage backend
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a postgres connection string or a sqlite file path
	URL string `yaml:"url" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Database               DatabaseConfig `yaml:"database"`
	PrivilegedTags         []string       `yaml:"privilegedTags,omitempty" validate:"dive,required"`
	Timezone               string         `yaml:"timezone,omitempty"`
	OutingsSheetID         string         `yaml:"outingsSheetID,omitempty"`
	MembersSheetID         string         `yaml:"membersSheetID,omitempty"`
	MembersTab             string         `yaml:"membersTab,omitempty" validate:"required_with=MembersSheetID"`
	RecurrenceHorizonWeeks int            `yaml:"recurrenceHorizonWeeks,omitempty" validate:"min=0,max=104"`
	DefaultRecurrence      string         `yaml:"defaultRecurrence,omitempty"`
	DefaultCoach           string         `yaml:"defaultCoach,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" looks for "crewboard_config.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads, defaults and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills in every optional setting left empty
func (c *Config) ApplyDefaults() {
	if len(c.PrivilegedTags) == 0 {
		c.PrivilegedTags = append([]string{}, DefaultPrivilegedTags...)
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.RecurrenceHorizonWeeks == 0 {
		c.RecurrenceHorizonWeeks = DefaultRecurrenceHorizonWeeks
	}
}

// Validate validates the configuration struct, the timezone and the default recurrence rule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	if cfg.DefaultRecurrence != "" {
		if _, err := rrule.StrToRRule(cfg.DefaultRecurrence); err != nil {
			return fmt.Errorf("invalid rrule in defaultRecurrence: %w", err)
		}
	}

	return nil
}

// Location returns the club's timezone, falling back to UTC if it cannot be loaded
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// findConfigFile searches for the config file in the current directory, then the home directory
func findConfigFile(env string) (string, error) {
	configFileName := "crewboard_config.yaml"
	if env != "" {
		configFileName = "crewboard_config." + env + ".yaml"
	}
	return findFile(configFileName)
}

// findFile looks for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
