package robot

import (
	"testing"

	"proxyrobots/internal/engine"
	"proxyrobots/internal/hub"
)

// scriptedReader yields one scripted frame per Read call, then no data.
type scriptedReader struct {
	frames [][]byte
	i      int
}

func (r *scriptedReader) Read() ([]byte, bool) {
	if r.i >= len(r.frames) {
		return nil, false
	}
	f := r.frames[r.i]
	r.i++
	if f == nil {
		return nil, false
	}
	return f, true
}

type recordingWriter struct {
	writes [][]byte
}

func (w *recordingWriter) Write(payload []byte) error {
	w.writes = append(w.writes, payload)
	return nil
}

type fakeDevice struct {
	ready              bool
	moveCalls          int
	fireCalls          int
	lastLeft, lastRight float64
	lastFire1, lastFire2 bool
}

func (d *fakeDevice) Ready() bool { return d.ready }
func (d *fakeDevice) Move(left, right float64) {
	d.moveCalls++
	d.lastLeft, d.lastRight = left, right
}
func (d *fakeDevice) Fire(fire1, fire2 bool) {
	d.fireCalls++
	d.lastFire1, d.lastFire2 = fire1, fire2
}
func (d *fakeDevice) Stop() {}
func (d *fakeDevice) Address() string {
	if d.ready {
		return "1.2.3.4:9"
	}
	return ""
}

func TestScenario1Registration(t *testing.T) {
	reader := &scriptedReader{frames: [][]byte{
		nil,
		[]byte(`951 Registered {"robot_id":"real_951"}`),
	}}
	writer := &recordingWriter{}
	h := hub.NewFromConnectors(reader, writer)
	wrapper := hub.NewStaticWrapper(h)

	eng := engine.New()
	dev := &fakeDevice{ready: true}
	r := New("951", wrapper, eng, dev)
	r.QueueRegister()

	eng.Step()
	if err := h.Step(); err != nil {
		t.Fatalf("tick 1: %v", err)
	}
	eng.Step()
	if err := h.Step(); err != nil {
		t.Fatalf("tick 2: %v", err)
	}

	if !r.Registered() {
		t.Fatalf("expected robot registered after two ticks")
	}
	if r.RobotID() != "real_951" {
		t.Fatalf("expected robot id real_951, got %s", r.RobotID())
	}
	if len(writer.writes) != 1 {
		t.Fatalf("expected exactly one Register frame posted, got %d", len(writer.writes))
	}
	if got := string(writer.writes[0]); got[:4] != "951 " {
		t.Fatalf("expected Register frame routed to temporary id 951, got %q", got)
	}
}

func registeredRobot(t *testing.T) (*robotFixture) {
	t.Helper()
	reader := &scriptedReader{frames: [][]byte{
		nil,
		[]byte(`951 Registered {"robot_id":"real_951"}`),
	}}
	writer := &recordingWriter{}
	h := hub.NewFromConnectors(reader, writer)
	wrapper := hub.NewStaticWrapper(h)

	eng := engine.New()
	dev := &fakeDevice{ready: true}
	r := New("951", wrapper, eng, dev)
	r.QueueRegister()

	eng.Step()
	h.Step()
	eng.Step()
	h.Step()

	return &robotFixture{robot: r, hub: h, device: dev, reader: reader}
}

type robotFixture struct {
	robot  *Robot
	hub    *hub.MessageHub
	device *fakeDevice
	reader *scriptedReader
}

func TestScenario2InputDispatch(t *testing.T) {
	f := registeredRobot(t)
	f.reader.frames = append(f.reader.frames,
		[]byte(`real_951 Input {"move":{"left":0.5,"right":-0.5},"fire":{"weapon1":true,"weapon2":false}}`))

	if err := f.hub.Step(); err != nil {
		t.Fatalf("input tick: %v", err)
	}
	f.robot.Step()

	if f.device.moveCalls != 1 {
		t.Fatalf("expected exactly one move call, got %d", f.device.moveCalls)
	}
	if f.device.lastLeft != 0.5 || f.device.lastRight != -0.5 {
		t.Fatalf("unexpected move args: %f %f", f.device.lastLeft, f.device.lastRight)
	}
	if f.device.fireCalls != 1 {
		t.Fatalf("expected exactly one fire call, got %d", f.device.fireCalls)
	}
	if !f.device.lastFire1 || f.device.lastFire2 {
		t.Fatalf("unexpected fire args: %v %v", f.device.lastFire1, f.device.lastFire2)
	}
}

func TestScenario3EdgeTriggering(t *testing.T) {
	f := registeredRobot(t)
	input := []byte(`real_951 Input {"move":{"left":0.5,"right":-0.5},"fire":{"weapon1":true,"weapon2":false}}`)
	f.reader.frames = append(f.reader.frames, input, input)

	if err := f.hub.Step(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	f.robot.Step()
	if err := f.hub.Step(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	f.robot.Step()

	if f.device.moveCalls != 1 {
		t.Fatalf("expected move invoked only once across identical inputs, got %d", f.device.moveCalls)
	}
	if f.device.fireCalls != 1 {
		t.Fatalf("expected fire invoked only once across identical inputs, got %d", f.device.fireCalls)
	}
}
