package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace_Center(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XX\nXX"

	result := Place(5, 3, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	// Middle line should have XX centered (position 1-2 in 0-4)
	assert.Contains(t, lines[1], "XX")
}

func TestPlace_LargeForeground(t *testing.T) {
	bg := "AAA\nAAA\nAAA"
	fg := "XXXXX\nXXXXX"

	result := Place(3, 3, fg, bg)

	// Should not panic; fg is placed starting at x=0, y=0
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "XXXXX") || strings.HasPrefix(lines[1], "XXXXX"))
}

func TestPlace_EmptyBackground(t *testing.T) {
	result := Place(5, 3, "XX\nXX", "")

	// Background is padded to full height before the overlay lands
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, result, "XX")
}

func TestPlace_PreservesBackgroundOnSides(t *testing.T) {
	bg := "ABCDE\nFGHIJ\nKLMNO"
	fg := "X"

	result := Place(5, 3, fg, bg)

	lines := strings.Split(result, "\n")
	// X lands in the middle cell; the rest of the middle row survives
	assert.Equal(t, "FGXIJ", lines[1])
	assert.Equal(t, "ABCDE", lines[0])
	assert.Equal(t, "KLMNO", lines[2])
}

func TestPlace_TallForegroundStopsAtBottom(t *testing.T) {
	bg := "AAAAA\nAAAAA"
	fg := "XX\nXX\nXX\nXX\nXX"

	result := Place(5, 2, fg, bg)

	// Extra foreground lines past the viewport are dropped
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 2)
}
