package device

import "proxyrobots/shared"

// StubDevice logs every call and reports ready immediately; the Go
// equivalent of the original's FakeDevice, used where no real actuator is
// attached.
type StubDevice struct{}

func NewStub() *StubDevice { return &StubDevice{} }

func (d *StubDevice) Ready() bool { return true }

func (d *StubDevice) Move(left, right float64) {
	shared.DebugPrint("stub device: move(%f, %f)", left, right)
}

func (d *StubDevice) Fire(fire1, fire2 bool) {
	shared.DebugPrint("stub device: fire(%v, %v)", fire1, fire2)
}

func (d *StubDevice) Stop() {
	shared.DebugPrint("stub device: stop()")
}

func (d *StubDevice) Address() string { return "stub" }
