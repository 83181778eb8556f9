// Package shared provides ambient utilities (debug logging, configuration,
// sentinel errors, network/close helpers) shared across the proxy's
// discovery, hub, engine, robot, and admin components.
package shared

import (
	"os"
	"time"
)

// DEBUG_MODE controls debug logging throughout the proxy. Set during
// InitConfig from the DEBUG environment variable, and switched on by the
// --verbose flag when the command runs (cmd/root.go).
var DEBUG_MODE = false

const (
	// DiscoveryRetries is the default number of probe attempts per
	// broadcast address during server discovery (spec section 4.3).
	DiscoveryRetries = 3

	// DiscoveryTimeout is the default per-try wait for a discovery reply.
	DiscoveryTimeout = 500 * time.Millisecond

	// PingerSleepDuration is how often the broadcast pinger re-probes
	// (spec section 4.4).
	PingerSleepDuration = 5 * time.Second

	// PingerProbeTimeout is the short per-probe wait used while connected
	// (state B of the pinger).
	PingerProbeTimeout = 200 * time.Millisecond

	// TickInterval is the Program main loop's sleep between ticks
	// (spec section 4.13: "a small fixed duration (≈10 ms)").
	TickInterval = 10 * time.Millisecond

	// RegisteringWaitCeiling bounds how long a robot can sit unregistered
	// before the robot logs itself as stuck; purely informational, the
	// Engine's own action cycle (spec section 4.7/4.8) has no timeout.
	RegisteringWaitCeiling = 30 * time.Minute
)

// InitConfig loads proxy configuration from the environment. Call once at
// startup, after any .env loading, before parsing CLI flags.
func InitConfig() {
	DEBUG_MODE = os.Getenv("DEBUG") == "true"
}
