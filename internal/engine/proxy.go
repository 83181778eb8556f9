package engine

import (
	"proxyrobots/internal/hub"
	"proxyrobots/internal/registry"
	"proxyrobots/shared"
)

// Callback is invoked once a Proxy's filter matches an inbound frame.
type Callback func(payload registry.Payload) error

// Proxy binds a message filter (type, routing_id) and a callback to a
// MessageHubWrapper, deferring subscription until the hub becomes valid
// (spec section 4.6/4.8). A Proxy holds a non-owning back-reference to the
// Action it notifies (spec section 9, cyclic-ownership collapse).
type Proxy struct {
	messageType string
	routingID   string
	wrapper     hub.Wrapper
	callback    Callback
	action      *Action
}

// NewProxy builds a proxy for messageType/routingID, bound to wrapper. An
// empty routingID matches any sender, per the hub's own filter semantics.
func NewProxy(messageType, routingID string, wrapper hub.Wrapper, callback Callback) *Proxy {
	return &Proxy{
		messageType: messageType,
		routingID:   routingID,
		wrapper:     wrapper,
		callback:    callback,
	}
}

// Bind attaches the Action this proxy notifies on a matching frame.
func (p *Proxy) Bind(a *Action) { p.action = a }

// Register defers subscription to the wrapper: if the hub is already
// valid, NotifyMessageHub runs immediately; otherwise it runs the next
// time the wrapper gets a hub (spec section 4.8).
func (p *Proxy) Register() {
	p.wrapper.RegisterWaiter(p)
}

// NotifyMessageHub is the hub.Waiter hook: (re-)subscribe to the current
// hub. Called once at registration time, and again every time the
// broadcaster wrapper replaces its inner hub, so a proxy's subscription
// survives a server loss and rediscovery.
func (p *Proxy) NotifyMessageHub(h *hub.MessageHub) {
	h.RegisterListener(p, p.messageType, p.routingID)
}

// Notify is the hub.Listener hook. It validates the filter, runs the
// callback, advances the bound action, and auto-unregisters.
func (p *Proxy) Notify(messageType, routingID string, payload registry.Payload) error {
	if p.messageType != "" && p.messageType != messageType {
		return shared.ErrProxyFilterMismatch
	}
	if p.routingID != "" && p.routingID != routingID {
		return shared.ErrProxyFilterMismatch
	}

	if p.callback != nil {
		if err := p.callback(payload); err != nil {
			return err
		}
	}

	if p.action != nil {
		p.action.notifyArrived()
	}

	if p.wrapper.IsValid() {
		p.wrapper.Hub().UnregisterListener(p, p.messageType, p.routingID)
	}
	return nil
}
