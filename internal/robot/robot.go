// Package robot implements the per-robot state machine (spec section
// 4.9): registration via an Engine Action/Proxy pair, Input subscription
// via direct hub.Listener self-registration, and edge-triggered device
// calls.
package robot

import (
	"fmt"
	"time"

	"proxyrobots/internal/device"
	"proxyrobots/internal/engine"
	"proxyrobots/internal/frame"
	"proxyrobots/internal/hub"
	"proxyrobots/internal/registry"
	"proxyrobots/shared"
)

// Robot binds a robot_id, the hub wrapper, the engine, and a device.
type Robot struct {
	robotID string
	wrapper hub.Wrapper
	engine  *engine.Engine
	device  device.Device

	registered bool

	left, right  float64
	fire1, fire2 bool

	previousLeft, previousRight   float64
	previousFire1, previousFire2 bool

	queuedAt    time.Time
	stuckLogged bool
}

// New builds a Robot identified by robotID (the temporary id used until
// the server assigns a real one).
func New(robotID string, wrapper hub.Wrapper, eng *engine.Engine, dev device.Device) *Robot {
	return &Robot{
		robotID: robotID,
		wrapper: wrapper,
		engine:  eng,
		device:  dev,
	}
}

// RobotID is the current id: the temporary one until Registered arrives,
// the server-assigned one afterward.
func (r *Robot) RobotID() string { return r.robotID }

// Registered reports whether the game server has acknowledged this robot.
func (r *Robot) Registered() bool { return r.registered }

// QueueRegister creates a proxy filtered to Registered at the current
// robot_id and a repeat-eligible action whose doer posts a Register
// frame; the action keeps retrying (per the Engine's repeat semantics)
// until a matching notification arrives (spec section 4.9).
func (r *Robot) QueueRegister() {
	r.queuedAt = time.Now()
	proxy := engine.NewProxy(registry.TypeRegistered, r.robotID, r.wrapper, r.handleRegistered)
	action := engine.NewAction(r.sendRegister, func() bool { return r.registered }, proxy, true)
	r.engine.AddAction(action)
	proxy.Register()
}

// sendRegister posts a Register frame with temporary_robot_id set to the
// robot's current id.
func (r *Robot) sendRegister() {
	if !r.wrapper.IsValid() {
		shared.DebugPrint("robot %s: send_register, hub not valid", r.robotID)
		return
	}
	msg := &registry.RegisterMessage{TemporaryRobotID: r.robotID, Image: "no image"}
	payload, err := msg.MarshalPayload()
	if err != nil {
		shared.DebugError(err)
		return
	}
	f := frame.Frame{RoutingID: r.robotID, MessageType: registry.TypeRegister, Payload: payload}
	r.wrapper.Hub().Post(f.Encode())
}

// handleRegistered is the Proxy callback bound by QueueRegister: it flags
// the robot registered, adopts the server-assigned id, and subscribes
// itself directly to Input at the new id.
func (r *Robot) handleRegistered(payload registry.Payload) error {
	msg, ok := payload.(*registry.RegisteredMessage)
	if !ok {
		return fmt.Errorf("robot %s: Registered payload has unexpected type %T", r.robotID, payload)
	}
	r.registered = true
	r.robotID = msg.RobotID
	if r.wrapper.IsValid() {
		r.wrapper.Hub().RegisterListener(r, registry.TypeInput, r.robotID)
	} else {
		shared.DebugPrint("robot %s: hub not valid, cannot subscribe to Input yet", r.robotID)
	}
	return nil
}

// Notify is the hub.Listener hook for the robot's own direct Input
// subscription (spec section 4.9: "Input updates the four input
// values"). Any other message type here is a programmer error.
func (r *Robot) Notify(messageType, routingID string, payload registry.Payload) error {
	switch messageType {
	case registry.TypeInput:
		msg, ok := payload.(*registry.InputMessage)
		if !ok {
			return fmt.Errorf("robot %s: Input payload has unexpected type %T", r.robotID, payload)
		}
		r.left = msg.Move.Left
		r.right = msg.Move.Right
		r.fire1 = msg.Fire.Weapon1
		r.fire2 = msg.Fire.Weapon2
		return nil
	default:
		return fmt.Errorf("robot %s: unexpected message type %q", r.robotID, messageType)
	}
}

// Step is edge-triggered (spec section 4.9): device calls only fire when
// the device is ready and the relevant input pair actually changed since
// the previous tick. It also logs, once, a robot that has sat unregistered
// past shared.RegisteringWaitCeiling; the Engine's own retry cycle has no
// timeout of its own (spec section 4.7/4.8), so this is purely
// informational and never changes the registration action's behavior.
func (r *Robot) Step() {
	r.checkStuckRegistering()

	if !r.device.Ready() {
		return
	}
	if r.previousLeft != r.left || r.previousRight != r.right {
		r.device.Move(r.left, r.right)
		r.previousLeft, r.previousRight = r.left, r.right
	}
	if r.previousFire1 != r.fire1 || r.previousFire2 != r.fire2 {
		r.device.Fire(r.fire1, r.fire2)
		r.previousFire1, r.previousFire2 = r.fire1, r.fire2
	}
}

// checkStuckRegistering logs once if the robot has been waiting past
// shared.RegisteringWaitCeiling for the server to acknowledge its Register
// frame.
func (r *Robot) checkStuckRegistering() {
	if r.registered || r.stuckLogged || r.queuedAt.IsZero() {
		return
	}
	if time.Since(r.queuedAt) > shared.RegisteringWaitCeiling {
		shared.DebugPrint("robot %s: still unregistered after %s", r.robotID, shared.RegisteringWaitCeiling)
		r.stuckLogged = true
	}
}

// Description is the JSON-friendly self-description used by the admin
// "json list robot" command (SPEC_FULL supplemented feature).
type Description struct {
	RobotID       string  `json:"robot_id"`
	Registered    bool    `json:"registered"`
	Left          float64 `json:"left"`
	Right         float64 `json:"right"`
	Fire1         bool    `json:"fire1"`
	Fire2         bool    `json:"fire2"`
	DeviceAddress string  `json:"device_address"`
}

func (r *Robot) Describe() Description {
	return Description{
		RobotID:       r.robotID,
		Registered:    r.registered,
		Left:          r.left,
		Right:         r.right,
		Fire1:         r.fire1,
		Fire2:         r.fire2,
		DeviceAddress: r.device.Address(),
	}
}
