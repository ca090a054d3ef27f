package stepcalc

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/stepcalc/narration"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Output formats accepted by the CLI
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the stepcalc configuration
type Config struct {
	Locale     string `yaml:"locale"`
	Output     string `yaml:"output"`
	Color      *bool  `yaml:"color"` // Pointer to distinguish between unset and false
	CrossCheck bool   `yaml:"cross_check"`
	LogLevel   string `yaml:"log_level"`
	CaseDir    string `yaml:"case_dir"`
}

// IsColorEnabled returns true unless color: false is set
func (c *Config) IsColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode rejects unknown keys
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateConfig validates the configuration for common errors.
// It is also used after command line overrides are applied.
func ValidateConfig(config *Config) error {
	validOutputs := map[string]bool{
		OutputText: true,
		OutputJSON: true,
		OutputYAML: true,
	}
	if !validOutputs[config.Output] {
		return fmt.Errorf("%w: invalid output '%s': must be one of text, json, yaml", ErrConfigValidation, config.Output)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[config.LogLevel] {
		return fmt.Errorf("%w: invalid log_level '%s': must be one of debug, info, warn, error", ErrConfigValidation, config.LogLevel)
	}

	if _, ok := narration.Lookup(config.Locale); !ok {
		return fmt.Errorf("%w: unsupported locale '%s': must be one of %v", ErrConfigValidation, config.Locale, narration.Supported())
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Locale:   "en",
		Output:   OutputText,
		LogLevel: "info",
		CaseDir:  "./cases",
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Locale == "" {
		config.Locale = defaults.Locale
	}

	if config.Output == "" {
		config.Output = defaults.Output
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.CaseDir == "" {
		config.CaseDir = defaults.CaseDir
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string settings
func expandConfigEnvVars(config *Config) {
	config.Locale = expandEnvVars(config.Locale)
	config.Output = expandEnvVars(config.Output)
	config.LogLevel = expandEnvVars(config.LogLevel)
	config.CaseDir = expandEnvVars(config.CaseDir)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
