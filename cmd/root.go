// Package cmd implements the proxy's command-line entry point (spec
// section 1 treats flag parsing as an external collaborator; section 6
// fixes the exact flag surface). Grounded on USA-RedDragon-DMRHub's use of
// cobra as its CLI layer: the teacher repo itself has no flag parsing at
// all.
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"proxyrobots/internal/program"
	"proxyrobots/shared"
)

// defaultRobotID is the one robot the proxy registers at startup,
// grounded on the original's main()'s hardcoded `robots = ['951']` and
// matching the id used throughout spec section 8's concrete scenarios.
const defaultRobotID = "951"

// NewCommand builds the root cobra command exposing every flag from spec
// section 6, with the defaults from original_source/orwell/proxy_robots/program.py.
func NewCommand(version string) *cobra.Command {
	var (
		publisherPort       int
		pullerPort          int
		replierPort         int
		address             string
		serverBroadcastPort int
		noServerBroadcast   bool
		proxyBroadcastPort  int
		noProxyBroadcast    bool
		adminPort           int
		portsCount          int
		verbose             bool
	)

	cmd := &cobra.Command{
		Use:           "proxyrobots",
		Short:         "Bridge between the game server's message bus and a fleet of robots",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				shared.DEBUG_MODE = true
			}

			cfg := program.Config{
				PublisherPort:       publisherPort,
				PullerPort:          pullerPort,
				ReplierPort:         replierPort,
				Address:             address,
				ServerBroadcastPort: serverBroadcastPort,
				NoServerBroadcast:   noServerBroadcast,
				ProxyBroadcastPort:  proxyBroadcastPort,
				NoProxyBroadcast:    noProxyBroadcast,
				AdminPort:           adminPort,
				PortsCount:          portsCount,
			}

			p, err := program.New(cfg)
			if err != nil {
				return fmt.Errorf("starting proxy: %w", err)
			}

			p.AddRobot(defaultRobotID)
			// Any device capacity beyond the one named robot above gets
			// provisioned with a generated temporary id: these are robots
			// plugged in without a pre-assigned identity, registering
			// under the generated id until the server assigns a real one
			// (spec section 4.9's temporary_robot_id).
			for i := 1; i < portsCount; i++ {
				p.AddRobot(uuid.NewString())
			}

			return p.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&publisherPort, "publisher-port", "P", 9000, "Publisher port (the server publishes, we subscribe)")
	flags.IntVarP(&pullerPort, "puller-port", "p", 9001, "Puller port (the server pulls, we push)")
	flags.IntVar(&replierPort, "replier-port", 9002, "Replier port used only when --no-server-broadcast is set (not discovered)")
	flags.StringVar(&address, "address", "127.0.0.1", "The server address, used only when --no-server-broadcast is set")
	flags.IntVarP(&serverBroadcastPort, "server-broadcast-port", "B", 9080, "The port for the broadcast on the game server")
	flags.BoolVar(&noServerBroadcast, "no-server-broadcast", false, "Do not discover the server via broadcast; dial --address directly")
	flags.IntVarP(&proxyBroadcastPort, "proxy-broadcast-port", "b", 9081, "The port for the broadcast on the proxy")
	flags.BoolVar(&noProxyBroadcast, "no-proxy-broadcast", false, "Do not listen for broadcast messages from robots")
	flags.IntVarP(&adminPort, "admin-port", "a", 9082, "The port the admin endpoint listens on")
	flags.IntVar(&portsCount, "ports-count", 1, "The number of local ports available for robots")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	return cmd
}
