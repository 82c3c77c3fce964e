package config

// ZpoolConfig holds configuration for the zpool probe. The command argv
// slices are configurable so tests and callers can substitute fixtures for
// the real zpool binary.
type ZpoolConfig struct {
	ListCmd   []string // pool listing command
	StatusCmd []string // per-pool status command; pool name is appended
	Include   []string // pool names to evaluate (empty = all)
	Exclude   []string // pool names to skip
	Database  string   // optional result journal path
}

// NewZpoolConfig returns a configuration invoking the real zpool binary.
func NewZpoolConfig() *ZpoolConfig {
	return &ZpoolConfig{
		ListCmd:   []string{"zpool", "list", "-H", "-o", "name,capacity,fragmentation,leaked,health"},
		StatusCmd: []string{"zpool", "status"},
	}
}
