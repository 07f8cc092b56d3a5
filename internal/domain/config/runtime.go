package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool   // Output in JSON format
	Format         string // table, json or yaml
	Timeout        time.Duration

	// From is the default caller when a command gets no --from
	From string

	// Store selects the world-state backend
	Store StoreBackend

	// Resolved configurations
	Guild     *GuildConfig
	GuildFile string // path guild.toml was read from, empty if defaults
}

// StoreBackend names a world-state persistence backend
type StoreBackend string

const (
	StoreFS      StoreBackend = "fs"
	StoreLevelDB StoreBackend = "leveldb"
)
