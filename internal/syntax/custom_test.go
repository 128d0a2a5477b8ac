package syntax

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customProfilesYAML = `profiles:
  - id: ini
    rules:
      strings: ['"[^"]*"']
      comments: [';.*']
      keywords: ['\b(?:true|false|yes|no)\b']
      typenames: ['\b[A-Z][A-Za-z0-9_]*\b']
      calls: ['([A-Za-z_][A-Za-z0-9_]*)\(']
      numbers: ['\b\d+\b']
    detect:
      block_def: '(?m)^\[\w+\]'
      header: '(?m)\][ \t]*$'
`

func writeProfileFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefinitions(t *testing.T) {
	path := writeProfileFile(t, customProfilesYAML)

	defs, err := LoadDefinitions(path)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "ini", defs[0].ID)
	require.NotNil(t, defs[0].Detect)
	assert.NotEmpty(t, defs[0].Detect.BlockDef)

	// Loaded definitions register and segment like built-ins.
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.Register(defs[0]))

	p, ok := reg.Get("ini")
	require.True(t, ok)
	tokens := SegmentLine("enabled = true ; toggle", p)
	assert.Equal(t, []Token{
		{Text: "enabled = ", Class: ClassPlain},
		{Text: "true", Class: ClassKeyword},
		{Text: " ", Class: ClassPlain},
		{Text: "; toggle", Class: ClassComment},
	}, tokens)
}

func TestLoadDefinitions_MissingFile(t *testing.T) {
	_, err := LoadDefinitions(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadDefinitions_MalformedYAML(t *testing.T) {
	path := writeProfileFile(t, "profiles: [this is: not: valid")

	_, err := LoadDefinitions(path)
	require.Error(t, err)
}

func TestLoadDefinitions_BadPatternFailsAtRegistration(t *testing.T) {
	path := writeProfileFile(t, `profiles:
  - id: broken
    rules:
      strings: ['(']
      comments: ['//.*']
      keywords: ['\bif\b']
      typenames: ['\b[A-Z]\w*\b']
      calls: ['(\w+)\(']
      numbers: ['\d+']
`)

	defs, err := LoadDefinitions(path)
	require.NoError(t, err, "loading defers validation to registration")

	reg, err := NewDefaultRegistry()
	require.NoError(t, err)
	require.ErrorIs(t, reg.Register(defs[0]), ErrBadPattern)
}
