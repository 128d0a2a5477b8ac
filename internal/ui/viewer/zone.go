package viewer

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone ID constants for mouse click detection in the source pane. Each
// rendered line carries its own zone so a click resolves straight to a
// 1-based source line.
const zoneLinePrefix = "viewer-line:"

// LineZoneID returns the bubblezone ID for a source line.
func LineZoneID(line int) string {
	return fmt.Sprintf("%s%d", zoneLinePrefix, line)
}

// LineFromZoneID parses a zone ID back to its source line. Returns ok
// false for zones that do not belong to the viewer.
func LineFromZoneID(id string) (int, bool) {
	rest, found := strings.CutPrefix(id, zoneLinePrefix)
	if !found {
		return 0, false
	}
	line, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return line, true
}
