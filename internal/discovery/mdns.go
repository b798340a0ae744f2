package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/muurk/klf200/internal/gateway"
)

const (
	// ServiceType is the mDNS service type the KLF200 advertises
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for gateway discovery
	DefaultScanTimeout = 10 * time.Second
)

// serialPattern matches KLF200 hostnames (e.g. "VELUX_KLF_LAN_A1B2.local")
var serialPattern = regexp.MustCompile(`^VELUX_KLF_([0-9A-Za-z_]+)\.local\.?$`)

// Scanner handles mDNS gateway discovery.
type Scanner struct {
	// Timeout is the maximum time to wait for gateway discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForGateways discovers all KLF200 gateways on the local network.
func (s *Scanner) ScanForGateways() ([]*Device, error) {
	return s.ScanForGatewaysWithContext(context.Background())
}

// ScanForGatewaysWithContext discovers gateways with a custom context.
func (s *Scanner) ScanForGatewaysWithContext(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	devices := make([]*Device, 0)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			if device := parseServiceEntry(entry); device != nil {
				devices = append(devices, device)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	return devices, nil
}

// WaitForGateway waits for a specific gateway by serial. Returns the
// device or an error if not found within the timeout.
func (s *Scanner) WaitForGateway(ctx context.Context, serial string) (*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	deviceChan := make(chan *Device, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if device := parseServiceEntry(entry); device != nil && device.Serial == serial {
				deviceChan <- device
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case device := <-deviceChan:
		return device, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("gateway with serial %s not found within timeout", serial)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil if the entry is not a KLF200 gateway.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	matches := serialPattern.FindStringSubmatch(hostname)
	if len(matches) < 2 {
		return nil
	}
	serial := matches[1]

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Device{
		Serial:   serial,
		Hostname: hostname,
		IP:       ip,
		// The advertised port is the gateway's web UI; the protocol
		// always lives on 51200.
		Port:         gateway.DefaultPort,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForGateways is a convenience function to scan with a custom
// timeout.
func ScanForGateways(timeout time.Duration) ([]*Device, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForGateways()
}

// QuickScan performs a fast scan with a 3-second timeout.
func QuickScan() ([]*Device, error) {
	return ScanForGateways(3 * time.Second)
}
