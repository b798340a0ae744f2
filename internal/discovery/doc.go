// Package discovery finds KLF200 gateways on the local network.
//
// The gateway advertises an HTTP service over mDNS under a
// VELUX_KLF-prefixed hostname. Discovery browses for those
// advertisements and resolves them into connectable addresses; the
// protocol port 51200 is fixed and not part of the advertisement.
package discovery
