// Package config loads the optional patchexport.yaml configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "patchexport.yaml"

// Config represents the exporter configuration.
type Config struct {
	Project    string         `yaml:"project,omitempty"` // Patch folder, defaults to the CLI argument
	CSSOut     string         `yaml:"css_out"`           // Stylesheet path relative to the project
	BackupName string         `yaml:"backup_name"`       // Backup of index.html
	Graph      GraphConfig    `yaml:"graph"`
	Registry   RegistryConfig `yaml:"registry"`
	Nodes      NodesConfig    `yaml:"nodes"`
	Anchors    AnchorsConfig  `yaml:"anchors"`
	Watch      WatchConfig    `yaml:"watch"`
	History    HistoryConfig  `yaml:"history"`
	Metrics    MetricsConfig  `yaml:"metrics"`
}

// GraphConfig controls discovery of the patch graph file.
type GraphConfig struct {
	Dir          string `yaml:"dir"`           // Script directory inside the project
	BackupMarker string `yaml:"backup_marker"` // Graph files containing this are skipped
}

// RegistryConfig controls the ops.js default patcher.
type RegistryConfig struct {
	File      string   `yaml:"file"`
	NodeTypes []string `yaml:"node_types"`
	// AllowUnchanged treats a registry without matching defaults as success.
	AllowUnchanged bool `yaml:"allow_unchanged"`
}

// NodesConfig names the node types each stage selects.
type NodesConfig struct {
	Style    string `yaml:"style"`
	Wrapped  string `yaml:"wrapped"`
	Raw      string `yaml:"raw"`
	Markdown string `yaml:"markdown"`
}

// AnchorsConfig identifies insertion points in the HTML shell.
type AnchorsConfig struct {
	CanvasID string `yaml:"canvas_id"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Interval time.Duration `yaml:"interval"` // 0 disables the periodic job
}

// HistoryConfig points at the SQLite run ledger.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig controls the textfile metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads the configuration at configPath. A missing file yields the
// defaults; a .env file in the working directory is loaded first.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Fatal().Build()
	default:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
				WithContext("path", configPath).Fatal().Build()
		}
	}

	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	example := &Config{Project: "patch/my-patch"}
	ApplyDefaults(example)
	example.History.Path = ".patchexport/history.db"

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
