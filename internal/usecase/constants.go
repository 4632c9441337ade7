package usecase

import "time"

const (
	// DefaultSimulationCacheTTL bounds how long a memoized projection
	// survives without an explicit invalidation.
	DefaultSimulationCacheTTL = 6 * time.Hour

	// DefaultListLimit and MaxListLimit bound pagination.
	DefaultListLimit = 20
	MaxListLimit     = 100
)
