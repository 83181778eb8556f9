// Package admin implements the read-a-command, dispatch, reply loop atop
// the admin text endpoint (spec section 4.12): "list robot" and
// "json list robot" are the only two recognised commands; anything else
// is ignored silently.
package admin

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"proxyrobots/internal/robot"
	"proxyrobots/shared"
)

// Endpoint narrows connectors.AdminEndpoint down to what Step needs, so
// tests can drive it without a real TCP listener.
type Endpoint interface {
	Read() (text string, respond func(string), ok bool)
}

// RobotProvider is whatever owns the live robot set (the Program); Admin
// only ever reads from it.
type RobotProvider interface {
	RobotIDs() []string
	DescribeAll() map[string]robot.Description
}

// Admin reads a single command per Step and replies on the spot; unknown
// commands are ignored without a reply (spec section 8 boundary
// behaviour).
type Admin struct {
	endpoint Endpoint
	robots   RobotProvider
}

func New(endpoint Endpoint, robots RobotProvider) *Admin {
	return &Admin{endpoint: endpoint, robots: robots}
}

// Step reads and dispatches at most one command (spec section 4.12/4.13).
func (a *Admin) Step() {
	text, respond, ok := a.endpoint.Read()
	if !ok {
		return
	}

	switch strings.TrimSpace(text) {
	case "list robot":
		respond(a.listRobots())
	case "json list robot":
		respond(a.jsonListRobots())
	default:
		shared.DebugPrint("admin: unrecognised command %q", text)
	}
}

// listRobots renders the bracketed, comma-separated, quoted form spec
// section 6 specifies: `["id1", "id2"]`.
func (a *Admin) listRobots() string {
	ids := append([]string(nil), a.robots.RobotIDs()...)
	sort.Strings(ids)
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (a *Admin) jsonListRobots() string {
	raw, err := json.Marshal(a.robots.DescribeAll())
	if err != nil {
		shared.DebugError(err)
		return "{}"
	}
	return string(raw)
}
