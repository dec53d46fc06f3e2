package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/ajithraghavan/qmd/convert"
)

// Config represents the qmd configuration
type Config struct {
	LogFile             string        `yaml:"log_file"`
	LogLevel            string        `yaml:"log_level,omitempty"`
	MarkdownExt         string        `yaml:"markdown_ext"`
	OMDExt              string        `yaml:"omd_ext"`
	UncheckedTaskMarker string        `yaml:"unchecked_task_marker"`
	MatchTimeout        time.Duration `yaml:"-"` // Custom YAML handling below
	ExcludePatterns     []string      `yaml:"exclude_patterns,omitempty"`
	RenderDiff          bool          `yaml:"render_diff"`
	StateFile           string        `yaml:"state_file"`
}

// rawConfig mirrors Config with the duration kept as a string
type rawConfig struct {
	LogFile             string   `yaml:"log_file"`
	LogLevel            string   `yaml:"log_level,omitempty"`
	MarkdownExt         string   `yaml:"markdown_ext"`
	OMDExt              string   `yaml:"omd_ext"`
	UncheckedTaskMarker string   `yaml:"unchecked_task_marker"`
	MatchTimeout        string   `yaml:"match_timeout,omitempty"`
	ExcludePatterns     []string `yaml:"exclude_patterns,omitempty"`
	RenderDiff          *bool    `yaml:"render_diff,omitempty"`
	StateFile           string   `yaml:"state_file"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		LogFile:             filepath.Join(xdg.StateHome, "qmd", "qmd.log"),
		LogLevel:            "info",
		MarkdownExt:         ".md",
		OMDExt:              ".omd",
		UncheckedTaskMarker: convert.Bullet,
		MatchTimeout:        0,
		ExcludePatterns:     []string{},
		RenderDiff:          true,
		StateFile:           StateFilePath(),
	}
}

// ConfigPath returns the path to the config file
// Can be overridden for testing
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "qmd", "config.yaml")
}

// StateFilePath returns the default path to the state file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "qmd", "state.json")
}

// Load reads configuration from the XDG config directory
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	return Parse(data)
}

// Parse builds a configuration from YAML, filling unset fields with defaults
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.LogFile != "" {
		cfg.LogFile = raw.LogFile
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.MarkdownExt != "" {
		cfg.MarkdownExt = raw.MarkdownExt
	}
	if raw.OMDExt != "" {
		cfg.OMDExt = raw.OMDExt
	}
	if raw.UncheckedTaskMarker != "" {
		cfg.UncheckedTaskMarker = raw.UncheckedTaskMarker
	}
	if raw.ExcludePatterns != nil {
		cfg.ExcludePatterns = raw.ExcludePatterns
	}
	if raw.RenderDiff != nil {
		cfg.RenderDiff = *raw.RenderDiff
	}
	if raw.StateFile != "" {
		cfg.StateFile = raw.StateFile
	}

	// Parse match timeout duration
	if raw.MatchTimeout != "" {
		timeout, err := time.ParseDuration(raw.MatchTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid match_timeout format '%s': %w", raw.MatchTimeout, err)
		}
		cfg.MatchTimeout = timeout
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Expand paths
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the XDG config directory
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	renderDiff := c.RenderDiff
	raw := rawConfig{
		LogFile:             c.LogFile,
		LogLevel:            c.LogLevel,
		MarkdownExt:         c.MarkdownExt,
		OMDExt:              c.OMDExt,
		UncheckedTaskMarker: c.UncheckedTaskMarker,
		ExcludePatterns:     c.ExcludePatterns,
		RenderDiff:          &renderDiff,
		StateFile:           c.StateFile,
	}
	if c.MatchTimeout > 0 {
		raw.MatchTimeout = c.MatchTimeout.String()
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.StateFile == "" {
		return fmt.Errorf("state_file cannot be empty")
	}
	if !strings.HasPrefix(c.MarkdownExt, ".") {
		return fmt.Errorf("markdown_ext must start with a dot, got '%s'", c.MarkdownExt)
	}
	if !strings.HasPrefix(c.OMDExt, ".") {
		return fmt.Errorf("omd_ext must start with a dot, got '%s'", c.OMDExt)
	}
	if c.MarkdownExt == c.OMDExt {
		return fmt.Errorf("markdown_ext and omd_ext must differ")
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout cannot be negative")
	}

	if !convert.ValidUncheckedMarker(c.UncheckedTaskMarker) {
		return fmt.Errorf("invalid unchecked_task_marker '%s': must be one of: %s, %s, %s",
			c.UncheckedTaskMarker, convert.Bullet, convert.TaskUnchecked, convert.TaskInProgress)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.LogLevel != "" && !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	c.StateFile, err = expandPath(c.StateFile)
	if err != nil {
		return fmt.Errorf("failed to expand state_file: %w", err)
	}

	return nil
}

// Converter builds a converter configured from c
func (c *Config) Converter() (*convert.Converter, error) {
	return convert.New(
		convert.WithUncheckedTaskMarker(c.UncheckedTaskMarker),
		convert.WithMatchTimeout(c.MatchTimeout),
	)
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
