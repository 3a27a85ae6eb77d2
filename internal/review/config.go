package review

// Config holds the review service defaults.
type Config struct {
	// DefaultLimit caps Recommendations when the caller passes no limit.
	DefaultLimit int
	// StatsLimit is the recommendation cap Stats is computed over.
	StatsLimit int
	// UpcomingDays is the lookahead window for Upcoming when none is given.
	UpcomingDays int
}

// DefaultConfig returns the standard review limits.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 5,
		StatsLimit:   10,
		UpcomingDays: 14,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.StatsLimit <= 0 {
		c.StatsLimit = d.StatsLimit
	}
	if c.UpcomingDays <= 0 {
		c.UpcomingDays = d.UpcomingDays
	}
	return c
}
