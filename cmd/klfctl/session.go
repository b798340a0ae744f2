package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/muurk/klf200/internal/commands"
	"github.com/muurk/klf200/internal/config"
	"github.com/muurk/klf200/internal/discovery"
	"github.com/muurk/klf200/internal/gateway"
)

// passwordEnvVar lets scripts supply the gateway password without a
// prompt.
const passwordEnvVar = "KLF200_PASSWORD"

// session is an authenticated connection to one gateway.
type session struct {
	exec *gateway.Executor
}

// openSession resolves the target gateway, connects and logs in. The
// returned closer shuts the connection down.
func openSession(ctx context.Context) (*session, func(), error) {
	cfg, err := resolveGateway()
	if err != nil {
		return nil, nil, err
	}

	password, err := resolvePassword()
	if err != nil {
		return nil, nil, err
	}

	transport := gateway.NewTLSTransport(cfg.Host, cfg.Port, cfg.Timeout)
	conn := gateway.NewConnection(cfg, transport)
	exec := gateway.NewExecutor(conn)

	cleanup := func() {
		_, _ = exec.Run(context.Background(), commands.NewShutdown())
	}

	ok, err := exec.Run(ctx, commands.NewLogin(password))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("connecting to %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	if !ok {
		cleanup()
		return nil, nil, fmt.Errorf("gateway at %s rejected the password", cfg.Host)
	}

	rememberGateway(cfg.Host)
	return &session{exec: exec}, cleanup, nil
}

// run drives one transaction and folds the two failure modes into one
// error for CLI reporting.
func (s *session) run(ctx context.Context, tx gateway.Transaction) error {
	ok, err := s.exec.Run(ctx, tx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s failed", tx.Name())
	}
	return nil
}

// resolveGateway builds the connection policy from, in order of
// precedence: the --host flag, the configured profile, mDNS discovery.
func resolveGateway() (gateway.Config, error) {
	if flagHost != "" {
		return gateway.Config{
			Host:        flagHost,
			Port:        flagPort,
			Timeout:     time.Duration(flagTimeoutMsecs) * time.Millisecond,
			Settle:      config.DefaultSettleMsecs * time.Millisecond,
			BackoffBase: 100 * time.Millisecond,
			Retries:     config.DefaultRetries,
		}, nil
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return gateway.Config{}, err
	}

	name := flagProfile
	if name == "" {
		name = registry.Preferences.DefaultGateway
	}
	if name != "" {
		profile := registry.GetGateway(name)
		if profile == nil {
			return gateway.Config{}, fmt.Errorf("no gateway profile named %q", name)
		}
		return profile.ConnectionConfig(), nil
	}

	if !registry.Preferences.AutoDiscover {
		return gateway.Config{}, fmt.Errorf("no gateway configured. Use --host or 'klfctl scan'")
	}

	fmt.Println("No gateway configured, attempting auto-discovery...")
	timeout := time.Duration(registry.Preferences.DiscoverTimeout) * time.Second
	devices, err := discovery.ScanForGateways(timeout)
	if err != nil {
		return gateway.Config{}, fmt.Errorf("discovery failed: %w", err)
	}
	switch len(devices) {
	case 0:
		return gateway.Config{}, fmt.Errorf("no gateways found. Use --host to specify one manually")
	case 1:
		fmt.Printf("Found gateway: %s\n\n", devices[0])
		return devices[0].ConnectionConfig(), nil
	default:
		fmt.Printf("Found %d gateways:\n", len(devices))
		for i, device := range devices {
			fmt.Printf("%d. %s\n", i+1, device)
		}
		return gateway.Config{}, fmt.Errorf("multiple gateways found. Use --host to specify which one")
	}
}

// resolvePassword takes the password from the flag, the environment,
// or an interactive prompt, in that order.
func resolvePassword() (string, error) {
	if flagPassword != "" {
		return flagPassword, nil
	}
	if password := os.Getenv(passwordEnvVar); password != "" {
		return password, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password given. Use --password or %s", passwordEnvVar)
	}

	fmt.Fprint(os.Stderr, "Gateway password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// rememberGateway records a successful contact in the profile registry.
// Best effort, login already succeeded.
func rememberGateway(host string) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	name := flagProfile
	if name == "" {
		name = registry.Preferences.DefaultGateway
	}
	if name == "" {
		name = host
	}
	registry.UpdateGatewayLastSeen(name, host)
	_ = registry.Save()
}
