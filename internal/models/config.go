package models

// DefaultDBDir is where pacman keeps its databases
const DefaultDBDir = "/var/lib/pacman"

// DatabaseConfig contains configuration for locating and reading a sync database
type DatabaseConfig struct {
	// Location
	Dir  string // Base directory, databases live in Dir/sync
	Name string // Database name, e.g. "core"; lowercased during resolution
	File string // Explicit database file, overrides Dir and Name

	// Parsing
	IgnoreUnknown bool // Skip unrecognized desc keys instead of failing the package
}

