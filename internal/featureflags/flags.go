package featureflags

import (
	"os"
	"strings"
)

// Known flags. EventStream gates the websocket desk event feed; DemoSeed
// creates the demo admin account on startup for local development.
const (
	EventStream = "event_stream"
	DemoSeed    = "demo_seed"
)

// Enabled returns true if a flag is enabled via environment variable.
// Flags are read from env as FLAG_<NAME>=true/1/yes (case-insensitive)
func Enabled(name string) bool {
	v := os.Getenv("FLAG_" + strings.ToUpper(name))
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
