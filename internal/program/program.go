// Package program is the composition root that runs the main tick loop
// (spec section 4.13): advance the hub wrapper, advance the engine,
// service admin, then step each robot in insertion order.
package program

import (
	"context"
	"fmt"
	"net"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"proxyrobots/internal/admin"
	"proxyrobots/internal/beacon"
	"proxyrobots/internal/connectors"
	"proxyrobots/internal/device"
	"proxyrobots/internal/discovery"
	"proxyrobots/internal/engine"
	"proxyrobots/internal/hub"
	"proxyrobots/internal/robot"
	"proxyrobots/shared"
)

// Config bundles the CLI-level settings Program needs to assemble the tick
// loop (spec section 6's flag surface, mapped onto spec section 4.13's
// composition).
type Config struct {
	PublisherPort       int
	PullerPort          int
	ReplierPort         int
	Address             string
	ServerBroadcastPort int
	NoServerBroadcast   bool
	ProxyBroadcastPort  int
	NoProxyBroadcast    bool
	AdminPort           int
	PortsCount          int
}

// Program exclusively owns the hub wrapper, engine, beacon listener,
// admin, socket pool, and the robot_id -> Robot mapping (spec section 3,
// Ownership). Confined to the tick-loop goroutine (spec section 5); the
// background workers it supervises only communicate through the pinger's
// event channel and the beacon listener's port queue, never by touching
// this struct directly.
type Program struct {
	wrapper        hub.Wrapper
	engine         *engine.Engine
	admin          *admin.Admin
	adminEndpoint  *connectors.AdminEndpoint
	beaconListener *beacon.BroadcastListener
	socketPool     *beacon.SocketPool
	pinger         *discovery.Pinger

	robots []string // insertion order
	byID   map[string]*robot.Robot
}

// New assembles every long-lived piece from cfg but starts nothing: no
// socket is read, no background worker is running, until Run is called
// (spec section 4.13's composition is separate from its start, matching
// the original's Program.__init__ versus Program.start).
func New(cfg Config) (*Program, error) {
	wrapper, pinger, err := buildWrapper(cfg)
	if err != nil {
		return nil, err
	}

	socketPool, err := beacon.NewSocketPool(cfg.PortsCount)
	if err != nil {
		return nil, fmt.Errorf("program: socket pool: %w", err)
	}

	var beaconListener *beacon.BroadcastListener
	if !cfg.NoProxyBroadcast {
		beaconListener, err = beacon.NewBroadcastListener(cfg.ProxyBroadcastPort)
		if err != nil {
			socketPool.Close()
			return nil, fmt.Errorf("program: beacon listener: %w", err)
		}
	}

	adminEndpoint, err := connectors.NewAdminEndpoint(fmt.Sprintf(":%d", cfg.AdminPort))
	if err != nil {
		socketPool.Close()
		if beaconListener != nil {
			shared.SafeClose(beaconListener)
		}
		return nil, fmt.Errorf("program: admin endpoint: %w", err)
	}

	p := &Program{
		wrapper:        wrapper,
		engine:         engine.New(),
		adminEndpoint:  adminEndpoint,
		beaconListener: beaconListener,
		socketPool:     socketPool,
		pinger:         pinger,
		byID:           make(map[string]*robot.Robot),
	}
	p.admin = admin.New(adminEndpoint, p)

	return p, nil
}

// buildWrapper dials the server directly (static wrapper) when
// --no-server-broadcast is set, or performs one fail-fast discovery probe
// and sets up the broadcaster wrapper/pinger otherwise (spec section
// 4.6/6). A bounded discovery failure at this point is the "unrecoverable
// error" spec section 6 says should produce a non-zero exit; the pinger
// itself retries forever once running (spec section 4.4), so this
// fail-fast check is startup-only and does not change its steady-state
// reconnect behaviour.
func buildWrapper(cfg Config) (hub.Wrapper, *discovery.Pinger, error) {
	if cfg.NoServerBroadcast {
		endpoints := discovery.Endpoints{
			Push:      fmt.Sprintf("tcp://%s:%d", cfg.Address, cfg.PullerPort),
			Subscribe: fmt.Sprintf("tcp://%s:%d", cfg.Address, cfg.PublisherPort),
			Reply:     fmt.Sprintf("tcp://%s:%d", cfg.Address, cfg.ReplierPort),
		}
		h, err := hub.New(endpoints)
		if err != nil {
			return nil, nil, fmt.Errorf("program: dialing server: %w", err)
		}
		return hub.NewStaticWrapper(h), nil, nil
	}

	if _, err := discovery.Discover(cfg.ServerBroadcastPort, shared.DiscoveryRetries, shared.DiscoveryTimeout); err != nil {
		return nil, nil, fmt.Errorf("program: server discovery: %w", err)
	}

	pinger := discovery.NewPinger(
		cfg.ServerBroadcastPort,
		shared.PingerSleepDuration,
		shared.PingerProbeTimeout,
		shared.DiscoveryRetries,
	)
	return hub.NewBroadcasterWrapper(pinger.Events()), pinger, nil
}

// AddRobot creates a robot bound to a fresh socket-pool device (or a stub,
// if the pool is exhausted), registers its port with the beacon listener
// if one is running, and queues its registration with the server (spec
// section 4.9, grounded on the original's Program.add_robot).
func (p *Program) AddRobot(robotID string) {
	var dev device.Device
	if conn := p.socketPool.PopAvailable(); conn != nil {
		if p.beaconListener != nil {
			if udpAddr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
				p.beaconListener.AddPort(udpAddr.Port)
				shared.DebugPrint("robot %s is using port %d", robotID, udpAddr.Port)
			}
		}
		dev = device.NewUDP(conn)
	} else {
		shared.DebugPrint("robot %s has no device port available", robotID)
		dev = device.NewStub()
	}

	r := robot.New(robotID, p.wrapper, p.engine, dev)
	p.byID[robotID] = r
	p.robots = append(p.robots, robotID)
	r.QueueRegister()
}

// RobotIDs implements admin.RobotProvider. It reports each robot's current
// id: the server-assigned one once Registered has arrived, the temporary
// one until then (robot.Robot.RobotID), matching the original's admin view
// rather than the insertion-order temporary id used for internal lookup.
func (p *Program) RobotIDs() []string {
	ids := make([]string, 0, len(p.robots))
	for _, key := range p.robots {
		ids = append(ids, p.byID[key].RobotID())
	}
	sort.Strings(ids)
	return ids
}

// DescribeAll implements admin.RobotProvider, keyed by each robot's current
// id for the same reason as RobotIDs.
func (p *Program) DescribeAll() map[string]robot.Description {
	out := make(map[string]robot.Description, len(p.byID))
	for _, r := range p.byID {
		out[r.RobotID()] = r.Describe()
	}
	return out
}

// Run starts the background workers (beacon listener, pinger, if present)
// and drives the tick loop (spec section 4.13) until ctx is cancelled or a
// step returns a fatal error. The main loop sleeps shared.TickInterval
// between ticks (spec section 4.13: "≈10 ms").
func (p *Program) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if p.beaconListener != nil {
		g.Go(func() error {
			p.beaconListener.Run()
			return nil
		})
	}
	if p.pinger != nil {
		g.Go(func() error {
			p.pinger.Run()
			return nil
		})
	}

	g.Go(func() error {
		return p.tickLoop(gctx)
	})

	// The workers only exit via Stop, so stop them as soon as the group's
	// context ends (cancellation or a tick-loop error); otherwise Wait
	// would never return.
	g.Go(func() error {
		<-gctx.Done()
		if p.beaconListener != nil {
			p.beaconListener.Stop()
		}
		if p.pinger != nil {
			p.pinger.Stop()
		}
		return nil
	})

	err := g.Wait()
	p.shutdown()
	return err
}

func (p *Program) tickLoop(ctx context.Context) error {
	ticker := time.NewTicker(shared.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.Step(); err != nil {
				return err
			}
		}
	}
}

// Step runs one pass of the tick loop: hub, engine, admin, then every
// robot in insertion order (spec section 4.13, ordering guarantees in
// spec section 5).
func (p *Program) Step() error {
	if err := p.wrapper.Step(); err != nil {
		return fmt.Errorf("program: hub step: %w", err)
	}
	p.engine.Step()
	p.admin.Step()
	for _, id := range p.robots {
		p.byID[id].Step()
	}
	return nil
}

// shutdown signals the background workers to stop and releases every
// owned socket (spec section 5's cancellation/shutdown policy).
func (p *Program) shutdown() {
	if p.beaconListener != nil {
		p.beaconListener.Stop()
	}
	if p.pinger != nil {
		p.pinger.Stop()
	}
	if p.socketPool != nil {
		p.socketPool.Close()
	}
	shared.SafeClose(p.adminEndpoint)
	if p.wrapper.IsValid() {
		shared.SafeClose(p.wrapper.Hub())
	}
}
