package findingslist

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone ID constants for mouse click detection on findings rows.
const zoneRowPrefix = "findings-row:"

// RowZoneID returns the bubblezone ID for a row index.
func RowZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneRowPrefix, index)
}

// RowFromZoneID parses a zone ID back to its row index. Returns ok false
// for zones that do not belong to the findings list.
func RowFromZoneID(id string) (int, bool) {
	rest, found := strings.CutPrefix(id, zoneRowPrefix)
	if !found {
		return 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return index, true
}
