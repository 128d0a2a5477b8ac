package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"glint/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Empty(t, cfg.Language, "language should be auto-detected by default")
	require.True(t, cfg.UI.ShowStatusBar)
	require.True(t, cfg.UI.ShowGutter)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.Equal(t, 1000, cfg.Engine.MaxLineLen)
	require.Equal(t, AnalyzerAuto, cfg.Analyzer.Kind)
	require.Equal(t, 30*time.Minute, cfg.Analyzer.CacheTTL)
	require.Equal(t, "gpt-4o-mini", cfg.Analyzer.OpenAI.Model)
	require.True(t, cfg.Watcher.Enabled)
	require.Equal(t, time.Second, cfg.Watcher.Debounce)
	require.False(t, cfg.Tracing.Enabled, "tracing should be disabled by default")
}

func TestDefaults_AreValid(t *testing.T) {
	err := Validate(Defaults())
	require.NoError(t, err)
}

func TestValidate_ZeroConfigIsValid(t *testing.T) {
	err := Validate(Config{})
	require.NoError(t, err, "empty values should fall back to defaults")
}

func TestValidateUI_ValidStyles(t *testing.T) {
	for _, style := range []string{"", "dark", "light"} {
		err := ValidateUI(UIConfig{MarkdownStyle: style})
		require.NoError(t, err, "style %q should be valid", style)
	}
}

func TestValidateUI_InvalidStyle(t *testing.T) {
	err := ValidateUI(UIConfig{MarkdownStyle: "solarized"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.markdown_style")
}

func TestValidateEngine_NegativeMaxLineLen(t *testing.T) {
	err := ValidateEngine(EngineConfig{MaxLineLen: -1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "engine.max_line_len")
}

func TestValidateEngine_ZeroUsesDefault(t *testing.T) {
	err := ValidateEngine(EngineConfig{MaxLineLen: 0})
	require.NoError(t, err)
}

func TestValidateAnalyzer_ValidKinds(t *testing.T) {
	for _, kind := range []string{"", AnalyzerAuto, AnalyzerLocal, AnalyzerOpenAI} {
		err := ValidateAnalyzer(AnalyzerConfig{Kind: kind})
		require.NoError(t, err, "kind %q should be valid", kind)
	}
}

func TestValidateAnalyzer_InvalidKind(t *testing.T) {
	err := ValidateAnalyzer(AnalyzerConfig{Kind: "clippy"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "analyzer.kind")
}

func TestValidateAnalyzer_NegativeCacheTTL(t *testing.T) {
	err := ValidateAnalyzer(AnalyzerConfig{Kind: AnalyzerLocal, CacheTTL: -time.Minute})
	require.Error(t, err)
	require.Contains(t, err.Error(), "analyzer.cache_ttl")
}

func TestValidateWatcher_NegativeDebounce(t *testing.T) {
	err := ValidateWatcher(WatcherConfig{Debounce: -time.Second})
	require.Error(t, err)
	require.Contains(t, err.Error(), "watcher.debounce")
}

func TestValidateTracing_Defaults(t *testing.T) {
	err := ValidateTracing(tracing.DefaultConfig())
	require.NoError(t, err)
}

func TestValidateTracing_SampleRateOutOfRange(t *testing.T) {
	err := ValidateTracing(tracing.Config{SampleRate: 1.5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample_rate")

	err = ValidateTracing(tracing.Config{SampleRate: -0.1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample_rate")
}

func TestValidateTracing_InvalidExporter(t *testing.T) {
	err := ValidateTracing(tracing.Config{Exporter: "jaeger"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "tracing.exporter")
}

func TestValidateTracing_FileExporterRequiresPath(t *testing.T) {
	err := ValidateTracing(tracing.Config{
		Enabled:  true,
		Exporter: "file",
		FilePath: "",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file_path")
}

func TestValidateTracing_OTLPExporterRequiresEndpoint(t *testing.T) {
	err := ValidateTracing(tracing.Config{
		Enabled:      true,
		Exporter:     "otlp",
		OTLPEndpoint: "",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "otlp_endpoint")
}

func TestValidateTracing_DisabledSkipsPathChecks(t *testing.T) {
	err := ValidateTracing(tracing.Config{
		Enabled:  false,
		Exporter: "file",
		FilePath: "",
	})
	require.NoError(t, err, "path requirements only apply when enabled")
}

func TestOpenAIConfig_Key_ConfigWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	key := OpenAIConfig{APIKey: "file-key"}.Key()
	require.Equal(t, "file-key", key)
}

func TestOpenAIConfig_Key_EnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	key := OpenAIConfig{}.Key()
	require.Equal(t, "env-key", key)
}

func TestOpenAIConfig_Key_Empty(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	key := OpenAIConfig{}.Key()
	require.Empty(t, key)
}

func TestDefaultPaths_UnderConfigDir(t *testing.T) {
	dir := DefaultConfigDir()
	require.NotEmpty(t, dir)
	require.Contains(t, dir, "glint")

	require.Equal(t, filepath.Join(dir, "history.db"), DefaultHistoryPath())
	require.Equal(t, filepath.Join(dir, "traces", "traces.jsonl"), DefaultTracesFilePath())
}

func TestDefaultConfigTemplate_ParsesAsYAML(t *testing.T) {
	var doc map[string]any
	err := yaml.Unmarshal([]byte(DefaultConfigTemplate()), &doc)
	require.NoError(t, err, "template must stay valid YAML")

	analyzerSection, ok := doc["analyzer"].(map[string]any)
	require.True(t, ok, "template should have an analyzer section")
	require.Equal(t, "auto", analyzerSection["kind"])
	require.Equal(t, "30m", analyzerSection["cache_ttl"])

	engineSection, ok := doc["engine"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 1000, engineSection["max_line_len"])
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	err := WriteDefaultConfig(configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "# Glint Configuration"))
}
