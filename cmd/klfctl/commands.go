package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/commands"
	"github.com/muurk/klf200/internal/config"
	"github.com/muurk/klf200/internal/discovery"
	"github.com/muurk/klf200/internal/gateway"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/monitor"
)

// Connection flags (persistent on root)
var (
	flagHost         string
	flagPort         int
	flagPassword     string
	flagProfile      string
	flagTimeoutMsecs int
)

// Per-command flags
var (
	scanTimeout   int
	sceneVelocity string
	limitMin      int
	limitMax      int
	limitReset    bool
	nodeType      int
	listenAddr    string
	pollSeconds   int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Gateway IP address or hostname (skips discovery)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", gateway.DefaultPort, "Gateway protocol port")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "Gateway password (prompted if not given)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "gateway", "", "Named gateway profile from the config file")
	rootCmd.PersistentFlags().IntVar(&flagTimeoutMsecs, "timeout", config.DefaultTimeoutMsecs, "Per-exchange timeout in milliseconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(firmwareCmd)
	rootCmd.AddCommand(lanCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(sceneCmd)
	rootCmd.AddCommand(limitCmd)
	rootCmd.AddCommand(winkCmd)
	rootCmd.AddCommand(velocityCmd)
	rootCmd.AddCommand(discoverNodesCmd)
	rootCmd.AddCommand(monitorCmd)
}

// withSession resolves the gateway, logs in, runs fn and shuts the
// connection down. Ctrl-C cancels the context.
func withSession(fn func(ctx context.Context, s *session) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, s)
}

func parseNodeID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 || id > 199 {
		return 0, fmt.Errorf("invalid node id %q (expected 0-199)", arg)
	}
	return id, nil
}

func parseVelocity(name string) (commands.Velocity, error) {
	switch name {
	case "default", "":
		return commands.VelocityDefault, nil
	case "silent":
		return commands.VelocitySilent, nil
	case "fast":
		return commands.VelocityFast, nil
	default:
		return 0, fmt.Errorf("invalid velocity %q (expected default, silent or fast)", name)
	}
}

// scanCmd discovers gateways on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for KLF200 gateways on the network",
	Long: `Scan for KLF200 gateways using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from KLF200 gateways and
displays all discovered gateways with their IP addresses and serial
numbers. The gateway only advertises itself on the LAN interface it is
configured for.`,
	Example: `  # Scan for 10 seconds (default)
  klfctl scan

  # Quick 3-second scan
  klfctl scan --scan-timeout 3`,
	RunE: runScanCmd,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for KLF200 gateways (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.ScanForGateways(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No gateways found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the gateway is powered on and connected to the LAN")
		fmt.Println("  - The gateway stops advertising a while after boot; power cycle it")
		fmt.Println("  - Use --host to specify the address manually if discovery fails")
		return nil
	}

	fmt.Printf("Found %d gateway(s):\n\n", len(devices))
	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.Hostname)
		fmt.Printf("   Serial: %s\n", device.Serial)
		fmt.Printf("   IP:     %s:%d\n", device.IP, device.Port)
		fmt.Println()
	}

	fmt.Println("Use 'klfctl status --host <ip>' to check a gateway")
	return nil
}

// statusCmd reports the gateway state machine position
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show gateway state",
	Long: `Query the gateway's current state and sub-state.

The state tells whether the gateway has been configured with actuator
nodes; the sub-state tells what the command handler is busy with.`,
	Example: `  klfctl status --host 192.168.1.50`,
	RunE:    runStatusCmd,
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		tx := commands.NewGetState()
		if err := s.run(ctx, tx); err != nil {
			return err
		}
		fmt.Printf("State:     %s\n", tx.State())
		fmt.Printf("Sub-state: %s\n", tx.SubState())
		return nil
	})
}

// firmwareCmd reports versions
var firmwareCmd = &cobra.Command{
	Use:     "firmware",
	Short:   "Show gateway firmware and hardware versions",
	Example: `  klfctl firmware --host 192.168.1.50`,
	RunE:    runFirmwareCmd,
}

func runFirmwareCmd(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		tx := commands.NewGetFirmware()
		if err := s.run(ctx, tx); err != nil {
			return err
		}
		fmt.Printf("Firmware:      %s\n", tx.Firmware())
		fmt.Printf("Hardware:      %d\n", tx.HardwareVersion())
		fmt.Printf("Product group: %d\n", tx.ProductGroup())
		fmt.Printf("Product type:  %d\n", tx.ProductType())
		return nil
	})
}

// lanCmd reports the gateway's network configuration
var lanCmd = &cobra.Command{
	Use:     "lan",
	Short:   "Show gateway LAN configuration",
	Example: `  klfctl lan --host 192.168.1.50`,
	RunE:    runLANCmd,
}

func runLANCmd(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		tx := commands.NewGetLANConfig()
		if err := s.run(ctx, tx); err != nil {
			return err
		}
		lan := tx.Config()
		fmt.Printf("IP address:      %s\n", lan.IPAddress)
		fmt.Printf("Subnet mask:     %s\n", lan.SubnetMask)
		fmt.Printf("Default gateway: %s\n", lan.DefaultGateway)
		fmt.Printf("DHCP:            %t\n", lan.DHCP)
		return nil
	})
}

// scenesCmd lists the scenes stored on the gateway
var scenesCmd = &cobra.Command{
	Use:     "scenes",
	Short:   "List scenes stored on the gateway",
	Example: `  klfctl scenes --host 192.168.1.50`,
	RunE:    runScenesCmd,
}

func runScenesCmd(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		tx := commands.NewGetScenes()
		if err := s.run(ctx, tx); err != nil {
			return err
		}
		scenes := tx.Scenes()
		if len(scenes) == 0 {
			fmt.Println("No scenes stored on the gateway.")
			return nil
		}
		fmt.Printf("Found %d scene(s):\n\n", len(scenes))
		for _, scene := range scenes {
			fmt.Printf("  %3d  %s\n", scene.ID, scene.Name)
		}
		fmt.Println("\nUse 'klfctl scene run <id>' to activate a scene")
		return nil
	})
}

// sceneCmd activates a stored scene
var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Scene operations",
}

var sceneRunCmd = &cobra.Command{
	Use:   "run <scene-id>",
	Short: "Activate a stored scene",
	Long: `Activate a scene stored on the gateway and wait for it to finish.

The command returns once the gateway reports the scene session as
finished, which can take up to a minute for slow actuators.`,
	Example: `  # Run scene 2 at default speed
  klfctl scene run 2

  # Run scene 2 quietly
  klfctl scene run 2 --velocity silent`,
	Args: cobra.ExactArgs(1),
	RunE: runSceneRunCmd,
}

func init() {
	sceneRunCmd.Flags().StringVar(&sceneVelocity, "velocity", "default", "Actuator velocity (default, silent, fast)")
	sceneCmd.AddCommand(sceneRunCmd)
}

func runSceneRunCmd(cmd *cobra.Command, args []string) error {
	sceneID, err := strconv.Atoi(args[0])
	if err != nil || sceneID < 0 || sceneID > 255 {
		return fmt.Errorf("invalid scene id %q", args[0])
	}
	velocity, err := parseVelocity(sceneVelocity)
	if err != nil {
		return err
	}

	return withSession(func(ctx context.Context, s *session) error {
		fmt.Printf("Running scene %d...\n", sceneID)
		if err := s.run(ctx, commands.NewRunScene(sceneID, velocity)); err != nil {
			return err
		}
		fmt.Println("Scene finished.")
		return nil
	})
}

// limitCmd sets or clears position limitations on a node
var limitCmd = &cobra.Command{
	Use:   "limit <node-id>",
	Short: "Set or clear a node's position limitation",
	Long: `Set the minimum or maximum position limitation of an actuator node,
or clear both.

Positions are in the gateway's native range 0-51200, where 0 is fully
open and 51200 is fully closed.`,
	Example: `  # Stop node 3 from closing past halfway
  klfctl limit 3 --max 25600

  # Clear all limitations on node 3
  klfctl limit 3 --reset`,
	Args: cobra.ExactArgs(1),
	RunE: runLimitCmd,
}

func init() {
	limitCmd.Flags().IntVar(&limitMin, "min", -1, "Minimum position (0-51200)")
	limitCmd.Flags().IntVar(&limitMax, "max", -1, "Maximum position (0-51200)")
	limitCmd.Flags().BoolVar(&limitReset, "reset", false, "Clear all limitations")
}

func runLimitCmd(cmd *cobra.Command, args []string) error {
	nodeID, err := parseNodeID(args[0])
	if err != nil {
		return err
	}

	var tx *commands.SetLimitation
	switch {
	case limitReset:
		tx = commands.NewResetLimitation(nodeID)
	case limitMin >= 0 && limitMax >= 0:
		return fmt.Errorf("set --min and --max in separate invocations")
	case limitMin >= 0:
		tx = commands.NewSetLimitationMinimum(nodeID, limitMin)
	case limitMax >= 0:
		tx = commands.NewSetLimitationMaximum(nodeID, limitMax)
	default:
		return fmt.Errorf("one of --min, --max or --reset is required")
	}

	return withSession(func(ctx context.Context, s *session) error {
		if err := s.run(ctx, tx); err != nil {
			return err
		}
		fmt.Println("Limitation updated.")
		return nil
	})
}

// winkCmd identifies a node physically
var winkCmd = &cobra.Command{
	Use:   "wink <node-id>",
	Short: "Make a node wink to identify it",
	Long: `Ask an actuator node to identify itself by winking for ten seconds.
What winking looks like depends on the product; windows typically move
their handle.`,
	Example: `  klfctl wink 3`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWinkCmd,
}

func runWinkCmd(cmd *cobra.Command, args []string) error {
	nodeID, err := parseNodeID(args[0])
	if err != nil {
		return err
	}
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.run(ctx, commands.NewRunProductIdentification(nodeID)); err != nil {
			return err
		}
		fmt.Printf("Node %d is winking.\n", nodeID)
		return nil
	})
}

// velocityCmd changes a node's default velocity
var velocityCmd = &cobra.Command{
	Use:     "velocity <node-id> <default|silent|fast>",
	Short:   "Set a node's default velocity",
	Example: `  klfctl velocity 3 silent`,
	Args:    cobra.ExactArgs(2),
	RunE:    runVelocityCmd,
}

func runVelocityCmd(cmd *cobra.Command, args []string) error {
	nodeID, err := parseNodeID(args[0])
	if err != nil {
		return err
	}
	velocity, err := parseVelocity(args[1])
	if err != nil {
		return err
	}
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.run(ctx, commands.NewSetNodeVelocity(nodeID, velocity)); err != nil {
			return err
		}
		fmt.Printf("Node %d velocity updated.\n", nodeID)
		return nil
	})
}

// discoverNodesCmd scans the io-homecontrol network for new actuators
var discoverNodesCmd = &cobra.Command{
	Use:   "discover-nodes",
	Short: "Discover new actuator nodes",
	Long: `Ask the gateway to scan its radio network for actuator nodes that are
not yet registered. The scan takes the gateway up to a minute.`,
	Example: `  klfctl discover-nodes --host 192.168.1.50`,
	RunE:    runDiscoverNodesCmd,
}

func init() {
	discoverNodesCmd.Flags().IntVar(&nodeType, "node-type", 0, "Restrict discovery to one node type (0 = all)")
}

func runDiscoverNodesCmd(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		fmt.Println("Discovering nodes, this can take up to a minute...")
		tx := commands.NewRunProductDiscovery(nodeType)
		if err := s.run(ctx, tx); err != nil {
			return err
		}
		added := tx.AddedNodes()
		if len(added) == 0 {
			fmt.Println("No new nodes found.")
			return nil
		}
		fmt.Printf("Added %d node(s): %v\n", len(added), added)
		return nil
	})
}

// monitorCmd streams node position changes over WebSocket
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream node position changes over WebSocket",
	Long: `Enable the gateway's house status monitor and republish every node
position change as a JSON event over a WebSocket endpoint.

Connect any WebSocket client to ws://<listen-addr>/ to receive events.
The monitor runs until interrupted with Ctrl-C.`,
	Example: `  # Serve events on the default address
  klfctl monitor --host 192.168.1.50

  # Serve on all interfaces
  klfctl monitor --host 192.168.1.50 --listen :8080`,
	RunE: runMonitorCmd,
}

func init() {
	monitorCmd.Flags().StringVar(&listenAddr, "listen", "127.0.0.1:8080", "WebSocket listen address")
	monitorCmd.Flags().IntVar(&pollSeconds, "poll", config.DefaultPollSeconds, "Keep-alive poll interval in seconds")
}

func runMonitorCmd(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		if err := s.run(ctx, commands.NewSetHouseStatusMonitor(true)); err != nil {
			return err
		}
		defer func() {
			_ = s.run(context.Background(), commands.NewSetHouseStatusMonitor(false))
		}()

		hub := monitor.NewHub()
		defer hub.Close()

		server := &http.Server{Addr: listenAddr, Handler: hub}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Error("websocket server failed", zap.Error(err))
			}
		}()
		defer server.Close()

		fmt.Printf("Monitoring node events, serving ws://%s/ (Ctrl-C to stop)\n", listenAddr)

		// The keep-alive poll doubles as the connection liveness check:
		// if the gateway goes quiet we still exchange a GetState every
		// poll interval and notice a dead link.
		poll := time.NewTicker(time.Duration(pollSeconds) * time.Second)
		defer poll.Stop()

		conn := s.exec.Connection()
		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopping monitor.")
				return nil
			case <-poll.C:
				if err := s.run(ctx, commands.NewGetState()); err != nil {
					return fmt.Errorf("gateway stopped responding: %w", err)
				}
			default:
			}

			// Drain only when a notification is actually waiting; a
			// receive transaction on a quiet wire would burn through its
			// retry budget on read timeouts.
			if !conn.IsMessageAvailable(gateway.NextConsumerID()) {
				select {
				case <-ctx.Done():
				case <-time.After(100 * time.Millisecond):
				}
				continue
			}

			tx := commands.NewGetHouseStatus()
			ok, err := s.exec.Run(ctx, tx)
			if err != nil {
				if ctx.Err() != nil {
					fmt.Println("\nStopping monitor.")
					return nil
				}
				return err
			}
			if !ok {
				continue
			}

			event := monitor.EventFromNodeState(tx.Node())
			hub.Broadcast(event)
			fmt.Printf("node %d: position %#04x -> %#04x (%ds remaining)\n",
				event.NodeID, event.CurrentPosition, event.TargetPosition, event.RemainingTime)
		}
	})
}
