package config

// Mode selects the runtime environment, which drives the default data
// directory when none is configured.
type Mode string

const (
	ModeDevelopment Mode = "development" // data under ./data
	ModeDeployed    Mode = "deployed"    // data under /tmp/data
)

// ParseMode converts a string to Mode, defaulting to ModeDevelopment
func ParseMode(s string) Mode {
	switch s {
	case "deployed", "production":
		return ModeDeployed
	case "development":
		return ModeDevelopment
	default:
		return ModeDevelopment
	}
}

// DefaultDataDir returns the mode's default data directory. The deployed
// default matches the original deployment target, which keeps its data
// under /tmp.
func (m Mode) DefaultDataDir() string {
	if m == ModeDeployed {
		return "/tmp/data"
	}
	return "./data"
}
