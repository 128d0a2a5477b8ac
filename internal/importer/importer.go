// Package importer loads source snippets into a review: embedded demo
// samples for offline use, or files from the local filesystem.
package importer

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxBytes caps how much of a file the importer will read. Pasted
// snippets are small; a multi-megabyte file is almost certainly a mistake.
const DefaultMaxBytes = 512 * 1024

// DefaultSample is the snippet loaded when the app starts with no input.
const DefaultSample = "vulnerable.js"

// ErrUnknownSample is returned for a sample name that is not embedded.
var ErrUnknownSample = errors.New("unknown sample")

// ErrFileTooLarge is returned when a file exceeds the importer's cap.
var ErrFileTooLarge = errors.New("file too large to import")

// Snippet is a named piece of source ready for review.
type Snippet struct {
	Name     string
	Source   string
	Language string
}

// Importer resolves a reference to source text.
type Importer interface {
	Import(ctx context.Context, ref string) (Snippet, error)
}

//go:embed samples
var sampleFS embed.FS

// SampleImporter serves the embedded demo snippets by file name. It is the
// offline stand-in for remote imports and always behaves the same.
type SampleImporter struct{}

var _ Importer = SampleImporter{}

// Import implements Importer.
func (SampleImporter) Import(_ context.Context, ref string) (Snippet, error) {
	data, err := sampleFS.ReadFile(path.Join("samples", ref))
	if err != nil {
		return Snippet{}, fmt.Errorf("%w: %s", ErrUnknownSample, ref)
	}
	return Snippet{
		Name:     ref,
		Source:   strings.TrimRight(string(data), "\n"),
		Language: languageForName(ref),
	}, nil
}

// Names lists the embedded samples in sorted order.
func (SampleImporter) Names() []string {
	entries, err := sampleFS.ReadDir("samples")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// FileImporter reads snippets from local paths.
type FileImporter struct {
	// MaxBytes overrides DefaultMaxBytes when positive.
	MaxBytes int64
}

var _ Importer = FileImporter{}

// Import implements Importer.
func (f FileImporter) Import(_ context.Context, ref string) (Snippet, error) {
	max := f.MaxBytes
	if max <= 0 {
		max = DefaultMaxBytes
	}

	info, err := os.Stat(ref)
	if err != nil {
		return Snippet{}, fmt.Errorf("import file: %w", err)
	}
	if info.Size() > max {
		return Snippet{}, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, ref, info.Size())
	}

	data, err := os.ReadFile(ref) //nolint:gosec // G304: reviewing a user-named file is the point
	if err != nil {
		return Snippet{}, fmt.Errorf("import file: %w", err)
	}
	return Snippet{
		Name:     filepath.Base(ref),
		Source:   strings.TrimRight(string(data), "\n"),
		Language: languageForName(ref),
	}, nil
}

// languageForName maps a file extension to a profile hint. Unknown
// extensions return "" and leave detection to the heuristic.
func languageForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".py":
		return "python"
	case ".js", ".jsx", ".ts", ".tsx", ".go", ".java", ".c", ".h",
		".cpp", ".cc", ".cs", ".rs", ".php", ".swift", ".kt", ".scala":
		return "clike"
	default:
		return ""
	}
}
