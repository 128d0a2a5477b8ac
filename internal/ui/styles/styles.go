// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"glint/internal/finding"
	"glint/internal/syntax"
)

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#2E3436", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Line refs, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Description/body text

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused pane borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane border + title

	// Modal overlays (help, debug log viewer)
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Clean scans, saved cycles
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Stale results, truncation
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Analyzer failures

	// Token class colors (Catppuccin Mocha)
	TokenKeywordColor  = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	TokenStringColor   = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // yellow
	TokenCommentColor  = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"} // overlay0
	TokenNumberColor   = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"} // peach
	TokenTypenameColor = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal
	TokenCallColor     = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue

	// Risk grade colors
	RiskHighColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	RiskMediumColor = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#FF9F43"}
	RiskLowColor    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	RiskHighStyle   = lipgloss.NewStyle().Foreground(RiskHighColor).Bold(true)
	RiskMediumStyle = lipgloss.NewStyle().Foreground(RiskMediumColor)
	RiskLowStyle    = lipgloss.NewStyle().Foreground(RiskLowColor)

	// Suggested-fix diff colors
	DiffAdditionColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffDeletionColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Annotated line tints (background behind flagged source lines)
	LineHighBgColor   = lipgloss.AdaptiveColor{Light: "#FFE3E3", Dark: "#3C2526"}
	LineMediumBgColor = lipgloss.AdaptiveColor{Light: "#FFF3BF", Dark: "#3B3225"}
	LineLowBgColor    = lipgloss.AdaptiveColor{Light: "#F1F3F5", Dark: "#2A2A2E"}

	// Selection
	SelectionBgColor        = lipgloss.AdaptiveColor{Light: "#D0EBFF", Dark: "#264F78"} // Selected source line
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Selection indicator style (used for ">" prefix in the findings list)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Gutter (line numbers)
	GutterColor         = lipgloss.AdaptiveColor{Light: "#ADB5BD", Dark: "#555555"}
	GutterSelectedColor = lipgloss.AdaptiveColor{Light: "#495057", Dark: "#AAAAAA"}

	GutterStyle         = lipgloss.NewStyle().Foreground(GutterColor)
	GutterSelectedStyle = lipgloss.NewStyle().Foreground(GutterSelectedColor).Bold(true)

	// Fixed treatment (findings the reviewer marked as addressed)
	FixedTextColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}
	FixedStyle     = lipgloss.NewStyle().Foreground(FixedTextColor).Strikethrough(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Help footer
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}
)

// ClassStyle returns the foreground style for a token class. Plain tokens
// render in the primary text color.
func ClassStyle(class syntax.Class) lipgloss.Style {
	switch class {
	case syntax.ClassKeyword:
		return lipgloss.NewStyle().Foreground(TokenKeywordColor)
	case syntax.ClassString:
		return lipgloss.NewStyle().Foreground(TokenStringColor)
	case syntax.ClassComment:
		return lipgloss.NewStyle().Foreground(TokenCommentColor)
	case syntax.ClassNumber:
		return lipgloss.NewStyle().Foreground(TokenNumberColor)
	case syntax.ClassTypename:
		return lipgloss.NewStyle().Foreground(TokenTypenameColor)
	case syntax.ClassCall:
		return lipgloss.NewStyle().Foreground(TokenCallColor)
	default:
		return lipgloss.NewStyle().Foreground(TextPrimaryColor)
	}
}

// RiskStyle returns the foreground style for a risk grade. High renders bold.
func RiskStyle(r finding.Risk) lipgloss.Style {
	switch r {
	case finding.RiskHigh:
		return RiskHighStyle
	case finding.RiskMedium:
		return RiskMediumStyle
	default:
		return RiskLowStyle
	}
}

// RiskColor returns the accent color for a risk grade.
func RiskColor(r finding.Risk) lipgloss.AdaptiveColor {
	switch r {
	case finding.RiskHigh:
		return RiskHighColor
	case finding.RiskMedium:
		return RiskMediumColor
	default:
		return RiskLowColor
	}
}

// LineBackground returns the tint painted behind a source line annotated at
// the given risk grade.
func LineBackground(r finding.Risk) lipgloss.AdaptiveColor {
	switch r {
	case finding.RiskHigh:
		return LineHighBgColor
	case finding.RiskMedium:
		return LineMediumBgColor
	default:
		return LineLowBgColor
	}
}
