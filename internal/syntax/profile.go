package syntax

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrEmptyProfileID = errors.New("profile id cannot be empty")
	ErrMissingRules   = errors.New("profile rule category cannot be empty")
	ErrBadPattern     = errors.New("profile pattern does not compile")
	ErrBadDetectRules = errors.New("profile detect rules are incomplete")
)

// Definition is the serializable form of a language profile: regex pattern
// strings grouped by rule category. NewProfile compiles and validates it;
// a malformed definition is a configuration defect and never reaches
// segmentation.
//
// A pattern containing a capturing group classifies only the span of its
// first group, leaving the rest of the match plain. This stands in for
// lookahead, which Go's regexp does not support: the call category matches
// "name(" but must classify just "name".
type Definition struct {
	ID     string       `yaml:"id"`
	Rules  RuleSet      `yaml:"rules"`
	Detect *DetectRules `yaml:"detect,omitempty"`
}

// RuleSet holds the six rule categories of a profile. Categories apply in
// fixed precedence: strings, comments, keywords, typenames, calls, numbers.
// Within a category, rules run in declaration order. Every category must
// carry at least one pattern.
type RuleSet struct {
	Strings   []string `yaml:"strings"`
	Comments  []string `yaml:"comments"`
	Keywords  []string `yaml:"keywords"`
	Typenames []string `yaml:"typenames"`
	Calls     []string `yaml:"calls"`
	Numbers   []string `yaml:"numbers"`
}

// DetectRules carries the document-level evidence patterns the heuristic
// detector looks for. BlockDef is required; at least one of Header or
// Imports must be present. Profiles without detect rules can only be chosen
// explicitly or as the default.
type DetectRules struct {
	BlockDef string `yaml:"block_def"`
	Header   string `yaml:"header,omitempty"`
	Imports  string `yaml:"imports,omitempty"`
}

type rule struct {
	re    *regexp.Regexp
	group int
}

type category struct {
	class Class
	rules []rule
}

// Profile is a compiled language profile ready for segmentation.
type Profile struct {
	ID string

	cats   []category
	detect *detectMatcher
}

type detectMatcher struct {
	blockDef *regexp.Regexp
	header   *regexp.Regexp
	imports  *regexp.Regexp
}

// NewProfile compiles a definition into a usable profile.
func NewProfile(def Definition) (*Profile, error) {
	if def.ID == "" {
		return nil, ErrEmptyProfileID
	}

	p := &Profile{ID: def.ID}

	cats := []struct {
		name     string
		class    Class
		patterns []string
	}{
		{"strings", ClassString, def.Rules.Strings},
		{"comments", ClassComment, def.Rules.Comments},
		{"keywords", ClassKeyword, def.Rules.Keywords},
		{"typenames", ClassTypename, def.Rules.Typenames},
		{"calls", ClassCall, def.Rules.Calls},
		{"numbers", ClassNumber, def.Rules.Numbers},
	}

	for _, c := range cats {
		if len(c.patterns) == 0 {
			return nil, fmt.Errorf("%w: %s (profile %q)", ErrMissingRules, c.name, def.ID)
		}

		cat := category{class: c.class, rules: make([]rule, 0, len(c.patterns))}
		for _, pat := range c.patterns {
			if pat == "" {
				return nil, fmt.Errorf("%w: empty %s pattern (profile %q)", ErrBadPattern, c.name, def.ID)
			}
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("%w: %s pattern %q (profile %q): %v", ErrBadPattern, c.name, pat, def.ID, err)
			}
			r := rule{re: re}
			if re.NumSubexp() > 0 {
				r.group = 1
			}
			cat.rules = append(cat.rules, r)
		}
		p.cats = append(p.cats, cat)
	}

	if def.Detect != nil {
		m, err := compileDetect(def.ID, *def.Detect)
		if err != nil {
			return nil, err
		}
		p.detect = m
	}

	return p, nil
}

func compileDetect(id string, d DetectRules) (*detectMatcher, error) {
	if d.BlockDef == "" || (d.Header == "" && d.Imports == "") {
		return nil, fmt.Errorf("%w (profile %q)", ErrBadDetectRules, id)
	}

	m := &detectMatcher{}
	var err error
	if m.blockDef, err = regexp.Compile(d.BlockDef); err != nil {
		return nil, fmt.Errorf("%w: block_def %q (profile %q): %v", ErrBadPattern, d.BlockDef, id, err)
	}
	if d.Header != "" {
		if m.header, err = regexp.Compile(d.Header); err != nil {
			return nil, fmt.Errorf("%w: header %q (profile %q): %v", ErrBadPattern, d.Header, id, err)
		}
	}
	if d.Imports != "" {
		if m.imports, err = regexp.Compile(d.Imports); err != nil {
			return nil, fmt.Errorf("%w: imports %q (profile %q): %v", ErrBadPattern, d.Imports, id, err)
		}
	}
	return m, nil
}

// matches reports whether the document shows this profile's evidence: the
// block-definition marker plus either a colon-terminated header or an
// import statement.
func (m *detectMatcher) matches(document string) bool {
	if !m.blockDef.MatchString(document) {
		return false
	}
	if m.header != nil && m.header.MatchString(document) {
		return true
	}
	return m.imports != nil && m.imports.MatchString(document)
}
