package booking

import (
	"strings"

	"porter/internal/types"
)

// terminals are the NAIA pickup points.
var terminals = map[string]types.Point{
	"terminal 1": {Lat: 14.5086, Lng: 121.0194},
	"terminal 2": {Lat: 14.5113, Lng: 121.0153},
	"terminal 3": {Lat: 14.5204, Lng: 121.0166},
	"terminal 4": {Lat: 14.5252, Lng: 121.0118},
}

// TerminalLocation returns the coordinates of a known terminal. Matching is
// case-insensitive and accepts "T3" as well as "Terminal 3".
func TerminalLocation(name string) (types.Point, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if len(key) == 2 && key[0] == 't' {
		key = "terminal " + key[1:]
	}
	p, ok := terminals[key]
	return p, ok
}
