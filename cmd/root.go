package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"glint/internal/app"
	"glint/internal/config"
	"glint/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	debugFlag bool
	noWatch   bool
)

var rootCmd = &cobra.Command{
	Use:   "glint [file]",
	Short: "A terminal ui for code security review",
	Long: `A terminal user interface that annotates source code with security
findings from an offline pattern scan and an optional LLM reviewer.

With a file argument the file is loaded, analyzed, and re-analyzed on
every save. Without one glint starts on an embedded sample snippet.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/glint/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging and the ctrl+x log overlay")
	rootCmd.Flags().StringP("language", "l", "",
		"force a language profile instead of detecting one")
	rootCmd.Flags().StringP("analyzer", "a", "",
		"analyzer kind: auto, local, or openai")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"disable re-analysis when the reviewed file changes on disk")

	// Bind flags to viper
	_ = viper.BindPFlag("language", rootCmd.Flags().Lookup("language"))
	_ = viper.BindPFlag("analyzer.kind", rootCmd.Flags().Lookup("analyzer"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("language", defaults.Language)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_gutter", defaults.UI.ShowGutter)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("engine.max_line_len", defaults.Engine.MaxLineLen)
	viper.SetDefault("analyzer.kind", defaults.Analyzer.Kind)
	viper.SetDefault("analyzer.cache_ttl", defaults.Analyzer.CacheTTL)
	viper.SetDefault("analyzer.openai.model", defaults.Analyzer.OpenAI.Model)
	viper.SetDefault("store.path", defaults.Store.Path)
	viper.SetDefault("watcher.enabled", defaults.Watcher.Enabled)
	viper.SetDefault("watcher.debounce", defaults.Watcher.Debounce)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .glint/config.yaml (current directory)
		// 2. ~/.config/glint/config.yaml (user config)
		if _, err := os.Stat(".glint/config.yaml"); err == nil {
			viper.SetConfigFile(".glint/config.yaml")
		} else if dir := config.DefaultConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default in
		// the user config directory.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if dir := config.DefaultConfigDir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
				// If write fails, just continue with defaults (no config file)
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var sourcePath string
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving source path: %w", err)
		}
		sourcePath = abs
	}

	if debugFlag {
		logPath := os.Getenv("GLINT_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatApp, "Glint starting", "version", version, "logPath", logPath)
	}

	provider, err := buildTracing(cfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	if cfg.Language != "" {
		if _, ok := registry.Get(cfg.Language); !ok {
			return fmt.Errorf("language %q has no profile (available: %s)",
				cfg.Language, strings.Join(registry.IDs(), ", "))
		}
	}

	az, err := buildAnalyzer(cfg, provider.Tracer())
	if err != nil {
		return err
	}

	db, repo := openStore(cfg)
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	// Mouse zones for pane focus and finding selection
	zone.NewGlobal()

	model := app.New(cfg, app.Deps{
		Registry:   registry,
		Analyzer:   az,
		Repo:       repo,
		Segmenter:  buildSegmenter(cfg),
		Tracer:     provider.Tracer(),
		SourcePath: sourcePath,
		DebugMode:  debugFlag,
		NoWatch:    noWatch,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher and listener resources
	model.Close()

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
