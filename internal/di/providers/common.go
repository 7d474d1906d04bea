package providers

import "time"

const (
	// defaultShutdownTimeout is used when the configuration leaves it unset.
	defaultShutdownTimeout = 10 * time.Second
)
