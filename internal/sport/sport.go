// Package sport maps free-form sport identifiers onto the canonical sport keys.
package sport

import "strings"

// Key is a canonical sport identifier.
type Key string

const (
	Basketball Key = "basketball"
	Football   Key = "football"
	Cricket    Key = "cricket"
)

// Default is returned for any unrecognized identifier.
const Default = Basketball

var aliases = map[string]Key{
	"basketball": Basketball,
	"nba":        Basketball,
	"bball":      Basketball,
	"hoops":      Basketball,
	"wnba":       Basketball,

	"football": Football,
	"soccer":   Football,
	"futbol":   Football,
	"fútbol":   Football,
	"epl":      Football,
	"mls":      Football,

	"cricket": Cricket,
	"ipl":     Cricket,
	"t20":     Cricket,
	"odi":     Cricket,
}

// Normalize maps a sport name or alias to its canonical key.
// Matching is case-insensitive; unknown values fall back to Default.
func Normalize(name string) Key {
	if key, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return key
	}
	return Default
}

// IsKnown reports whether name resolves to a sport without falling back to the default.
func IsKnown(name string) bool {
	_, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// All returns the canonical keys in display order.
func All() []Key {
	return []Key{Basketball, Football, Cricket}
}

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// League returns the default league label for the sport.
func (k Key) League() string {
	switch k {
	case Football:
		return "Football"
	case Cricket:
		return "Cricket"
	default:
		return "NBA"
	}
}
