package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	SQLite SQLiteConfig
}

// SQLiteConfig configures the embedded credential database
type SQLiteConfig struct {
	Enabled     bool
	Path        string
	BusyTimeout time.Duration
	MaxConns    int
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 5s
}
