package discovery

import (
	"fmt"
	"time"

	"github.com/muurk/klf200/internal/gateway"
)

// Device represents a discovered KLF200 gateway on the network.
type Device struct {
	// Serial is the identifier embedded in the advertised hostname
	// (e.g. "LAN_A1B2" from "VELUX_KLF_LAN_A1B2.local")
	Serial string

	// Hostname is the mDNS hostname (e.g. "VELUX_KLF_LAN_A1B2.local")
	Hostname string

	// IP is the IPv4 address (e.g. "192.168.1.50")
	IP string

	// Port is the protocol port, always 51200
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the gateway was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device.
func (d *Device) String() string {
	return fmt.Sprintf("KLF200 Gateway %s (%s) at %s:%d", d.Serial, d.Hostname, d.IP, d.Port)
}

// ConnectionConfig returns a connection policy for this device with
// library defaults for the timing parameters.
func (d *Device) ConnectionConfig() gateway.Config {
	return gateway.Config{
		Host:        d.IP,
		Port:        d.Port,
		Timeout:     2 * time.Second,
		Settle:      30 * time.Millisecond,
		BackoffBase: 100 * time.Millisecond,
		Retries:     5,
	}
}

// GetMetadata retrieves a metadata value by key, or returns an empty
// string if not found.
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
