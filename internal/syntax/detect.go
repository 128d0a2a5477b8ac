package syntax

// Detector picks the language profile for a whole document. Implementations
// are free to use any strategy; the registry stays the single source of
// truth for which profiles exist.
type Detector interface {
	// Detect returns the id of the profile to use for document.
	Detect(document string) string
}

// HeuristicDetector scans the full document for profile evidence. The first
// profile in registration order whose detect rules all match wins; with no
// match, or an empty document, the registry default applies.
type HeuristicDetector struct {
	reg *Registry
}

var _ Detector = (*HeuristicDetector)(nil)

// NewHeuristicDetector creates a detector backed by the given registry.
func NewHeuristicDetector(reg *Registry) *HeuristicDetector {
	return &HeuristicDetector{reg: reg}
}

func (d *HeuristicDetector) Detect(document string) string {
	if document != "" {
		for _, id := range d.reg.order {
			p := d.reg.profiles[id]
			if p.detect == nil {
				continue
			}
			if p.detect.matches(document) {
				return p.ID
			}
		}
	}
	return d.reg.Default().ID
}
