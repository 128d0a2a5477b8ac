package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"glint/internal/analyzer"
	"glint/internal/cachemanager"
	"glint/internal/config"
	"glint/internal/log"
	"glint/internal/mask"
	"glint/internal/store"
	"glint/internal/syntax"
	"glint/internal/tracing"
)

// buildRegistry loads the built-in language profiles plus any custom
// definitions configured under engine.profiles_path.
func buildRegistry(cfg config.Config) (*syntax.Registry, error) {
	registry, err := syntax.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading built-in profiles: %w", err)
	}
	if cfg.Engine.ProfilesPath == "" {
		return registry, nil
	}

	defs, err := syntax.LoadDefinitions(expandHome(cfg.Engine.ProfilesPath))
	if err != nil {
		return nil, fmt.Errorf("loading custom profiles: %w", err)
	}
	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("registering profile %q: %w", def.ID, err)
		}
	}
	log.Info(log.CatConfig, "Custom profiles registered", "count", len(defs))
	return registry, nil
}

// buildAnalyzer assembles the analyzer chain for the configured kind and
// wraps it with report caching and tracing. The "auto" kind degrades to
// the offline scanner when no OpenAI key is configured.
func buildAnalyzer(cfg config.Config, tracer trace.Tracer) (analyzer.Analyzer, error) {
	var az analyzer.Analyzer
	var err error

	switch cfg.Analyzer.Kind {
	case config.AnalyzerLocal:
		az = analyzer.NewLocal()

	case config.AnalyzerOpenAI:
		key := cfg.Analyzer.OpenAI.Key()
		if key == "" {
			return nil, fmt.Errorf("analyzer.kind is %q but no API key is configured (set analyzer.openai.api_key or OPENAI_API_KEY)",
				config.AnalyzerOpenAI)
		}
		az, err = newOpenAI(cfg, key)
		if err != nil {
			return nil, err
		}

	default: // auto
		if key := cfg.Analyzer.OpenAI.Key(); key != "" {
			remote, err := newOpenAI(cfg, key)
			if err != nil {
				return nil, err
			}
			az, err = analyzer.NewMulti(analyzer.NewLocal(), remote)
			if err != nil {
				return nil, err
			}
		} else {
			az = analyzer.NewLocal()
		}
	}

	if ttl := cfg.Analyzer.CacheTTL; ttl > 0 {
		az = analyzer.NewCached(az, ttl)
	}
	return tracing.NewAnalyzer(az, tracer), nil
}

// newOpenAI builds the remote reviewer with secret masking enabled.
func newOpenAI(cfg config.Config, key string) (analyzer.Analyzer, error) {
	opts := []analyzer.OpenAIOption{
		analyzer.WithMasker(mask.New(mask.DefaultRules()...)),
	}
	if cfg.Analyzer.OpenAI.Model != "" {
		opts = append(opts, analyzer.WithModel(cfg.Analyzer.OpenAI.Model))
	}
	if cfg.Analyzer.OpenAI.BaseURL != "" {
		opts = append(opts, analyzer.WithBaseURL(cfg.Analyzer.OpenAI.BaseURL))
	}
	return analyzer.NewOpenAI(key, opts...)
}

// buildSegmenter wires the token cache in front of the lexical segmenter.
func buildSegmenter(cfg config.Config) *syntax.CachedSegmenter {
	cache := cachemanager.NewInMemoryCacheManager[string, []syntax.Token](
		"segments", syntax.SegmentTTL, syntax.SegmentTTL)
	return syntax.NewCachedSegmenter(cache, cfg.Engine.MaxLineLen)
}

// tracingConfig fills in the default traces file path when the file
// exporter is selected without one.
func tracingConfig(cfg config.Config) tracing.Config {
	tc := cfg.Tracing
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	return tc
}

// buildTracing creates the trace provider; disabled tracing yields a
// no-op provider.
func buildTracing(cfg config.Config) (*tracing.Provider, error) {
	return tracing.NewProvider(tracingConfig(cfg))
}

// openStore opens the review history database. Failure degrades to a
// session without history rather than aborting startup.
func openStore(cfg config.Config) (*store.DB, *store.ReviewRepository) {
	path := cfg.Store.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if path == "" {
		return nil, nil
	}

	db, err := store.NewDB(expandHome(path))
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to open history store, continuing without it", err, "path", path)
		return nil, nil
	}
	return db, db.ReviewRepository()
}

// expandHome resolves a leading ~/ against the home directory, so config
// values like ~/.config/glint/profiles.yaml work as written.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
