// Package config loads, validates, and persists datalens configuration.
//
// Configuration is resolved in layers: built-in defaults, the global file at
// $DATALENS_HOME/config.yaml (default ~/.datalens), a project overlay
// .datalens.yaml in the working directory, then DATALENS_* environment
// variables. CLI flags are applied by callers on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultSchemaVersion = "1.0.0"
	DefaultPageSize      = 500
	DefaultHeadRows      = 5
	DefaultMaxColWidth   = 24
	DefaultPlotWidth     = 7.0
	DefaultPlotHeight    = 5.0
	DefaultBarLimit      = 20
	DefaultHistBins      = 30
	DefaultCLIHistBins   = 10
	DefaultOutputFormat  = "table"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"

	configDirName     = ".datalens"
	configFileName    = "config.yaml"
	projectFileName   = ".datalens.yaml"
	outputTypeFile    = "file"
	configFilePerm    = 0o600
	configDirPerm     = 0o750
	maxPageSize       = 100000
	supportedFormats  = "table, json, ndjson"
	envHome           = "DATALENS_HOME"
	envPageSize       = "DATALENS_PAGE_SIZE"
	envLogLevel       = "DATALENS_LOG_LEVEL"
	envOutputFormat   = "DATALENS_OUTPUT_FORMAT"
	envSkipProjectCfg = "DATALENS_NO_PROJECT_CONFIG"
)

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the root configuration document.
type Config struct {
	SchemaVersion string        `yaml:"schema_version"`
	Display       DisplayConfig `yaml:"display"`
	Plot          PlotConfig    `yaml:"plot"`
	Output        OutputConfig  `yaml:"output"`
	Logging       LoggingConfig `yaml:"logging"`

	configPath string
}

// DisplayConfig controls table rendering and pagination.
type DisplayConfig struct {
	PageSize    int `yaml:"page_size"`
	HeadRows    int `yaml:"head_rows"`
	MaxColWidth int `yaml:"max_col_width"`
}

// PlotConfig controls chart rendering.
type PlotConfig struct {
	Dir         string  `yaml:"dir"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	BarLimit    int     `yaml:"bar_limit"`
	HistBins    int     `yaml:"hist_bins"`
	CLIHistBins int     `yaml:"cli_hist_bins"`
	Open        bool    `yaml:"open"`
}

// OutputConfig controls one-shot command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Defaults returns a Config populated with built-in defaults only.
func Defaults() *Config {
	home := Home()
	return &Config{
		SchemaVersion: DefaultSchemaVersion,
		Display: DisplayConfig{
			PageSize:    DefaultPageSize,
			HeadRows:    DefaultHeadRows,
			MaxColWidth: DefaultMaxColWidth,
		},
		Plot: PlotConfig{
			Dir:         filepath.Join(home, "plots"),
			Width:       DefaultPlotWidth,
			Height:      DefaultPlotHeight,
			BarLimit:    DefaultBarLimit,
			HistBins:    DefaultHistBins,
			CLIHistBins: DefaultCLIHistBins,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   filepath.Join(home, "logs", "datalens.log"),
		},
		configPath: filepath.Join(home, configFileName),
	}
}

// New returns the fully layered configuration. Unreadable files are skipped
// so the tool always starts; use Load to see the error.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		cfg = Defaults()
		cfg.applyEnv()
	}
	return cfg
}

// Load resolves configuration with path as the global file. An empty path
// uses the default location. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		cfg.configPath = path
	}

	data, err := os.ReadFile(cfg.configPath)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", cfg.configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config %s: %w", cfg.configPath, err)
	}

	if os.Getenv(envSkipProjectCfg) == "" {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			overlay := filepath.Join(wd, projectFileName)
			if _, statErr := os.Stat(overlay); statErr == nil {
				if err = ShallowMergeYAML(cfg, overlay); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies DATALENS_* overrides. Invalid numeric values are ignored.
func (c *Config) applyEnv() {
	if v := os.Getenv(envPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Display.PageSize = n
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(envOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
}

// Home returns the datalens home directory.
func Home() string {
	if dir := os.Getenv(envHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// ConfigPath returns the file this config saves to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file this config saves to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// EnsureLogDir creates the directory of the configured log file.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Logging.File), configDirPerm)
}

// Keys lists every dotted key understood by Get and Set.
func Keys() []string {
	return []string{
		"schema_version",
		"display.page_size", "display.head_rows", "display.max_col_width",
		"plot.dir", "plot.width", "plot.height", "plot.bar_limit",
		"plot.hist_bins", "plot.cli_hist_bins", "plot.open",
		"output.default_format",
		"logging.level", "logging.format", "logging.file",
	}
}

// Get returns the string form of a dotted key.
//
//nolint:cyclop // One case per key keeps the mapping obvious.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "schema_version":
		return c.SchemaVersion, nil
	case "display.page_size":
		return strconv.Itoa(c.Display.PageSize), nil
	case "display.head_rows":
		return strconv.Itoa(c.Display.HeadRows), nil
	case "display.max_col_width":
		return strconv.Itoa(c.Display.MaxColWidth), nil
	case "plot.dir":
		return c.Plot.Dir, nil
	case "plot.width":
		return strconv.FormatFloat(c.Plot.Width, 'g', -1, 64), nil
	case "plot.height":
		return strconv.FormatFloat(c.Plot.Height, 'g', -1, 64), nil
	case "plot.bar_limit":
		return strconv.Itoa(c.Plot.BarLimit), nil
	case "plot.hist_bins":
		return strconv.Itoa(c.Plot.HistBins), nil
	case "plot.cli_hist_bins":
		return strconv.Itoa(c.Plot.CLIHistBins), nil
	case "plot.open":
		return strconv.FormatBool(c.Plot.Open), nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses value for a dotted key and stores it.
//
//nolint:cyclop,funlen // One case per key keeps the mapping obvious.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "schema_version":
		c.SchemaVersion = value
	case "display.page_size":
		c.Display.PageSize, err = strconv.Atoi(value)
	case "display.head_rows":
		c.Display.HeadRows, err = strconv.Atoi(value)
	case "display.max_col_width":
		c.Display.MaxColWidth, err = strconv.Atoi(value)
	case "plot.dir":
		c.Plot.Dir = value
	case "plot.width":
		c.Plot.Width, err = strconv.ParseFloat(value, 64)
	case "plot.height":
		c.Plot.Height, err = strconv.ParseFloat(value, 64)
	case "plot.bar_limit":
		c.Plot.BarLimit, err = strconv.Atoi(value)
	case "plot.hist_bins":
		c.Plot.HistBins, err = strconv.Atoi(value)
	case "plot.cli_hist_bins":
		c.Plot.CLIHistBins, err = strconv.Atoi(value)
	case "plot.open":
		c.Plot.Open, err = strconv.ParseBool(value)
	case "output.default_format":
		c.Output.DefaultFormat = strings.ToLower(value)
	case "logging.level":
		c.Logging.Level = strings.ToLower(value)
	case "logging.format":
		c.Logging.Format = strings.ToLower(value)
	case "logging.file":
		c.Logging.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return c.Validate()
}

//nolint:gochecknoglobals // Process-wide configuration, loaded once per invocation.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// GetGlobalConfig returns the process-wide config, loading it on first use.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// SetGlobalConfig replaces the process-wide config.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetOutputFormat returns flagValue when set, otherwise the configured default.
func GetOutputFormat(flagValue string) string {
	if flagValue != "" {
		return strings.ToLower(flagValue)
	}
	return GetGlobalConfig().Output.DefaultFormat
}
