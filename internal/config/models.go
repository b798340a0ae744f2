package config

import (
	"time"

	"github.com/muurk/klf200/internal/gateway"
)

// Connection policy defaults. The settle delay and retry bound match
// what the KLF200 tolerates in practice: the gateway needs a short
// pause between a request and the response read.
const (
	DefaultTimeoutMsecs = 2000
	DefaultSettleMsecs  = 30
	DefaultRetries      = 5
	DefaultPollSeconds  = 15
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int                 `yaml:"version"`
	Gateways    map[string]*Gateway `yaml:"gateways,omitempty"` // keyed by gateway name
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Gateway is one stored connection profile. The password is never
// stored here.
type Gateway struct {
	Host         string    `yaml:"host"`
	Port         int       `yaml:"port,omitempty"`          // defaults to 51200
	TimeoutMsecs int       `yaml:"timeout_msecs,omitempty"` // per read/write
	SettleMsecs  int       `yaml:"settle_msecs,omitempty"`  // delay after each send
	Retries      int       `yaml:"retries,omitempty"`
	LastSeen     time.Time `yaml:"last_seen,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultGateway  string `yaml:"default_gateway,omitempty"` // name used when none is given
	AutoDiscover    bool   `yaml:"auto_discover"`             // run mDNS discovery when no host is known
	DiscoverTimeout int    `yaml:"discover_timeout"`          // mDNS discovery timeout in seconds
	PollSeconds     int    `yaml:"poll_seconds"`              // house status poll interval
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Gateways: make(map[string]*Gateway),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			PollSeconds:     DefaultPollSeconds,
		},
	}
}

// GetGateway retrieves a gateway profile by name. Returns nil if the
// profile doesn't exist in the registry.
func (r *Registry) GetGateway(name string) *Gateway {
	return r.Gateways[name]
}

// EnsureGateway ensures a gateway entry exists in the registry and
// returns it.
func (r *Registry) EnsureGateway(name string) *Gateway {
	if r.Gateways == nil {
		r.Gateways = make(map[string]*Gateway)
	}
	if gw, exists := r.Gateways[name]; exists {
		return gw
	}
	gw := &Gateway{Port: gateway.DefaultPort}
	r.Gateways[name] = gw
	return gw
}

// UpdateGatewayLastSeen records a successful contact with a gateway.
func (r *Registry) UpdateGatewayLastSeen(name, host string) {
	gw := r.EnsureGateway(name)
	gw.Host = host
	gw.LastSeen = time.Now()
}

// ConnectionConfig converts a stored profile into the connection
// policy, filling in defaults for everything the profile leaves unset.
func (g *Gateway) ConnectionConfig() gateway.Config {
	cfg := gateway.Config{
		Host:        g.Host,
		Port:        g.Port,
		Timeout:     time.Duration(g.TimeoutMsecs) * time.Millisecond,
		Settle:      time.Duration(g.SettleMsecs) * time.Millisecond,
		BackoffBase: 100 * time.Millisecond,
		Retries:     g.Retries,
	}
	if cfg.Port == 0 {
		cfg.Port = gateway.DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeoutMsecs * time.Millisecond
	}
	if cfg.Settle == 0 {
		cfg.Settle = DefaultSettleMsecs * time.Millisecond
	}
	if cfg.Retries == 0 {
		cfg.Retries = DefaultRetries
	}
	return cfg
}
