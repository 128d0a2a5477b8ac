package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/config"
)

// withConfigFile points initConfig at an explicit config path and restores
// the package-level viper and cfg state afterwards. Tests must never run
// initConfig with an empty cfgFile: that path writes a default config file
// into the real user config directory.
func withConfigFile(t *testing.T, path string) {
	t.Helper()
	cfgFile = path
	t.Cleanup(func() {
		cfgFile = ""
		cfg = config.Config{}
		viper.Reset()
	})
}

// TestInitConfig_ReadsYAML verifies that an explicit config file overrides
// the defaults and that duration strings are decoded into time.Duration.
func TestInitConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `language: python
analyzer:
  kind: local
  cache_ttl: 90s
watcher:
  debounce: 250ms
ui:
  show_gutter: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	withConfigFile(t, path)

	initConfig()

	assert.Equal(t, "python", cfg.Language)
	assert.Equal(t, config.AnalyzerLocal, cfg.Analyzer.Kind)
	assert.Equal(t, 90*time.Second, cfg.Analyzer.CacheTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Watcher.Debounce)
	assert.False(t, cfg.UI.ShowGutter)

	// Keys absent from the file keep their defaults.
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.Equal(t, "dark", cfg.UI.MarkdownStyle)
	assert.True(t, cfg.Watcher.Enabled)
}

// TestInitConfig_MissingExplicitFileKeepsDefaults verifies that a bad
// --config path degrades to the built-in defaults instead of writing a
// fallback config file somewhere else.
func TestInitConfig_MissingExplicitFileKeepsDefaults(t *testing.T) {
	withConfigFile(t, filepath.Join(t.TempDir(), "missing.yaml"))

	initConfig()

	defaults := config.Defaults()
	assert.Equal(t, defaults.Language, cfg.Language)
	assert.Equal(t, config.AnalyzerAuto, cfg.Analyzer.Kind)
	assert.Equal(t, defaults.Analyzer.CacheTTL, cfg.Analyzer.CacheTTL)
	assert.True(t, cfg.Watcher.Enabled)
	assert.Equal(t, "dark", cfg.UI.MarkdownStyle)
	assert.Equal(t, defaults.Engine.MaxLineLen, cfg.Engine.MaxLineLen)
}
