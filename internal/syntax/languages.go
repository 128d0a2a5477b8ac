package syntax

// Profile ids compiled into every registry. The registry stays open: custom
// profiles can be layered on from configuration without touching the
// segmenter.
const (
	// ProfileCLike covers curly-brace languages (JavaScript, TypeScript,
	// Go, Java, C). It is the default when detection finds no stronger
	// evidence.
	ProfileCLike = "clike"

	// ProfilePython covers indentation-based code.
	ProfilePython = "python"
)

// BuiltinDefinitions returns the built-in profile definitions. The first
// entry becomes the registry default.
func BuiltinDefinitions() []Definition {
	return []Definition{clikeDefinition(), pythonDefinition()}
}

// NewDefaultRegistry builds a registry holding the built-in profiles.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(BuiltinDefinitions()...)
}

func clikeDefinition() Definition {
	return Definition{
		ID: ProfileCLike,
		Rules: RuleSet{
			Strings: []string{
				`"(?:\\.|[^"\\])*"`,
				`'(?:\\.|[^'\\])*'`,
				"`[^`]*`",
			},
			Comments: []string{
				`//.*`,
				`/\*.*?\*/`,
			},
			Keywords: []string{
				`\b(?:const|let|var|function|class|struct|enum|interface|type|extends|implements|new|this|static|public|private|protected|return)\b`,
				`\b(?:if|else|switch|case|default|for|while|do|break|continue|try|catch|finally|throw|import|export|from|async|await|typeof|instanceof|in|of|delete|void|yield)\b`,
				`\b(?:true|false|null|undefined|nil)\b`,
			},
			Typenames: []string{
				`\b[A-Z][A-Za-z0-9_]*\b`,
			},
			Calls: []string{
				`([A-Za-z_][A-Za-z0-9_]*)\(`,
			},
			Numbers: []string{
				`\b0[xX][0-9a-fA-F]+\b`,
				`\b\d+(?:\.\d+)?\b`,
			},
		},
	}
}

func pythonDefinition() Definition {
	return Definition{
		ID: ProfilePython,
		Rules: RuleSet{
			Strings: []string{
				// Triple-quoted forms must come before the single-line
				// forms, or an empty "" would match inside """.
				`""".*?"""`,
				`'''.*?'''`,
				`\b[rRbBuUfF]{1,2}"(?:\\.|[^"\\])*"|"(?:\\.|[^"\\])*"`,
				`\b[rRbBuUfF]{1,2}'(?:\\.|[^'\\])*'|'(?:\\.|[^'\\])*'`,
			},
			Comments: []string{
				`#.*`,
			},
			Keywords: []string{
				`\b(?:def|class|lambda|import|from|as|global|nonlocal|del|pass|return|yield|raise|assert|with)\b`,
				`\b(?:if|elif|else|for|while|try|except|finally|break|continue|in|is|not|and|or|async|await)\b`,
				`\b(?:True|False|None)\b`,
			},
			Typenames: []string{
				`\b[A-Z][A-Za-z0-9_]*\b`,
			},
			Calls: []string{
				`([A-Za-z_][A-Za-z0-9_]*)\(`,
			},
			Numbers: []string{
				`\b0[xX][0-9a-fA-F]+\b`,
				`\b\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`,
			},
		},
		Detect: &DetectRules{
			BlockDef: `(?m)^[ \t]*(?:def[ \t]+\w+[ \t]*\(|class[ \t]+\w+[^\n]*:[ \t]*$)`,
			Header:   `(?m):[ \t]*$`,
			Imports:  `(?m)^[ \t]*(?:from[ \t]+[\w.]+[ \t]+import[ \t]|import[ \t]+[\w.]+(?:[ \t]*,[ \t]*[\w.]+)*[ \t]*$)`,
		},
	}
}
