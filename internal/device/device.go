// Package device implements the robot-facing actuator handle (spec
// section 4.9's `device` dependency): something a Robot can ask "are you
// ready" and tell to move, fire, or stop.
package device

// Device is what Robot.step drives every tick.
type Device interface {
	// Ready reports whether the device has learned where to send
	// commands (for UDPDevice, whether the robot's first datagram has
	// arrived); StubDevice is always ready.
	Ready() bool
	Move(left, right float64)
	Fire(fire1, fire2 bool)
	Stop()
	// Address reports the learned peer address, or "" if not yet ready.
	Address() string
}
