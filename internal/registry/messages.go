package registry

import "encoding/json"

// Message type names, matching spec section 6's "Message types the core
// must recognise".
const (
	TypeRegister   = "Register"
	TypeRegistered = "Registered"
	TypeInput      = "Input"
)

// RegisterMessage is posted proxy -> server to register a robot.
type RegisterMessage struct {
	TemporaryRobotID string `json:"temporary_robot_id"`
	Image            string `json:"image"`
}

func (m *RegisterMessage) UnmarshalPayload(raw []byte) error { return json.Unmarshal(raw, m) }
func (m *RegisterMessage) MarshalPayload() ([]byte, error)   { return json.Marshal(m) }

// RegisteredMessage is received server -> proxy, assigning the real
// robot_id.
type RegisteredMessage struct {
	RobotID string `json:"robot_id"`
}

func (m *RegisteredMessage) UnmarshalPayload(raw []byte) error { return json.Unmarshal(raw, m) }

// InputMessage is received server -> proxy, carrying movement/fire
// control values for a registered robot.
type InputMessage struct {
	Move struct {
		Left  float64 `json:"left"`
		Right float64 `json:"right"`
	} `json:"move"`
	Fire struct {
		Weapon1 bool `json:"weapon1"`
		Weapon2 bool `json:"weapon2"`
	} `json:"fire"`
}

func (m *InputMessage) UnmarshalPayload(raw []byte) error { return json.Unmarshal(raw, m) }
