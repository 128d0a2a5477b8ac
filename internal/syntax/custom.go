package syntax

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk shape for user-supplied profiles.
type profileFile struct {
	Profiles []Definition `yaml:"profiles"`
}

// LoadDefinitions reads additional profile definitions from a YAML file.
// Pattern validation happens later, when the definitions are registered.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}

	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profiles file %s: %w", path, err)
	}
	return f.Profiles, nil
}
