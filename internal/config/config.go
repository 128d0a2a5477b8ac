// Package config provides configuration types and defaults for glint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"glint/internal/analyzer"
	"glint/internal/log"
	"glint/internal/syntax"
	"glint/internal/tracing"
)

// Analyzer kinds selectable via analyzer.kind.
const (
	// AnalyzerAuto runs the offline pattern scan and adds the OpenAI
	// reviewer when an API key is available.
	AnalyzerAuto = "auto"

	// AnalyzerLocal runs only the offline pattern scan.
	AnalyzerLocal = "local"

	// AnalyzerOpenAI runs only the remote reviewer.
	AnalyzerOpenAI = "openai"
)

// Config holds all configuration options for glint.
type Config struct {
	// Language forces a profile id ("clike", "python", or a custom
	// profile id). Empty means detect from the document.
	Language string         `mapstructure:"language"`
	UI       UIConfig       `mapstructure:"ui"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Store    StoreConfig    `mapstructure:"store"`
	Watcher  WatcherConfig  `mapstructure:"watcher"`
	Tracing  tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowGutter    bool   `mapstructure:"show_gutter"`    // line numbers in the code pane
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// EngineConfig holds segmentation options.
type EngineConfig struct {
	// MaxLineLen is the segmentation cutoff in bytes. Lines at or beyond
	// it render as a single plain token. Zero uses the built-in default.
	MaxLineLen int `mapstructure:"max_line_len"`

	// ProfilesPath points at a YAML file with extra language profiles to
	// register alongside the built-ins.
	ProfilesPath string `mapstructure:"profiles_path"`
}

// AnalyzerConfig selects and tunes the analyzers.
type AnalyzerConfig struct {
	Kind     string        `mapstructure:"kind"`      // "auto" (default), "local", "openai"
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // how long analysis reports are reused
	OpenAI   OpenAIConfig  `mapstructure:"openai"`
}

// OpenAIConfig holds remote reviewer settings.
type OpenAIConfig struct {
	// APIKey authenticates against the OpenAI API. Falls back to the
	// OPENAI_API_KEY environment variable when empty.
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // override for proxies and compatible servers
}

// Key returns the configured API key, falling back to OPENAI_API_KEY.
func (o OpenAIConfig) Key() string {
	if o.APIKey != "" {
		return o.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// StoreConfig holds review history persistence options.
type StoreConfig struct {
	// Path is the SQLite database file. Empty uses DefaultHistoryPath().
	Path string `mapstructure:"path"`
}

// WatcherConfig holds source file watching options.
type WatcherConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultConfigDir returns ~/.config/glint, or "" if the home directory
// is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "glint")
}

// DefaultHistoryPath returns the default review history database path.
func DefaultHistoryPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Language: "",
		UI: UIConfig{
			ShowStatusBar: true,
			ShowGutter:    true,
			MarkdownStyle: "dark",
		},
		Engine: EngineConfig{
			MaxLineLen: syntax.DefaultMaxLineLen,
		},
		Analyzer: AnalyzerConfig{
			Kind:     AnalyzerAuto,
			CacheTTL: analyzer.DefaultCacheTTL,
			OpenAI: OpenAIConfig{
				Model: analyzer.DefaultModel,
			},
		},
		Store: StoreConfig{
			Path: DefaultHistoryPath(),
		},
		Watcher: WatcherConfig{
			Enabled:  true,
			Debounce: time.Second,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the whole configuration and returns the first error.
// Empty values are valid everywhere; they fall back to defaults.
func Validate(cfg Config) error {
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateEngine(cfg.Engine); err != nil {
		return err
	}
	if err := ValidateAnalyzer(cfg.Analyzer); err != nil {
		return err
	}
	if err := ValidateWatcher(cfg.Watcher); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateUI checks user interface configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateEngine checks segmentation configuration for errors.
func ValidateEngine(engine EngineConfig) error {
	if engine.MaxLineLen < 0 {
		return fmt.Errorf("engine.max_line_len must not be negative, got %d", engine.MaxLineLen)
	}
	return nil
}

// ValidateAnalyzer checks analyzer configuration for errors.
func ValidateAnalyzer(a AnalyzerConfig) error {
	switch a.Kind {
	case "", AnalyzerAuto, AnalyzerLocal, AnalyzerOpenAI:
	default:
		return fmt.Errorf("analyzer.kind must be \"auto\", \"local\", or \"openai\", got %q", a.Kind)
	}
	if a.CacheTTL < 0 {
		return fmt.Errorf("analyzer.cache_ttl must not be negative, got %v", a.CacheTTL)
	}
	return nil
}

// ValidateWatcher checks watcher configuration for errors.
func ValidateWatcher(w WatcherConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watcher.debounce must not be negative, got %v", w.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tc.Enabled {
		if tc.Exporter == "file" && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Glint Configuration

# Force a language profile instead of detecting one from the document.
# Built-in profiles: clike, python
# language: python

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom
  show_gutter: true       # Show line numbers in the code pane
  # markdown_style: dark  # Markdown rendering style: "dark" (default) or "light"

# Segmentation engine
engine:
  # Lines at or beyond this many bytes render as a single plain span
  max_line_len: 1000

  # Extra language profiles to register alongside the built-ins
  # profiles_path: ~/.config/glint/profiles.yaml

# Analyzer selection
analyzer:
  # "auto" runs the offline pattern scan and adds the OpenAI reviewer
  # when an API key is configured. "local" and "openai" force one side.
  kind: auto

  # How long analysis reports are reused for unchanged source
  cache_ttl: 30m

  # OpenAI reviewer settings (used when kind is auto or openai)
  openai:
    # api_key:     # or set OPENAI_API_KEY
    model: gpt-4o-mini
    # base_url:    # override for proxies and compatible servers

# Review history
store:
  # path: ~/.config/glint/history.db

# Re-analyze when the reviewed file changes on disk
watcher:
  enabled: true
  debounce: 1s

# Tracing for the analysis pipeline
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/glint/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
