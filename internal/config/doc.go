// Package config manages the persistent user configuration for the
// KLF200 tools.
//
// Configuration is stored as a single YAML file in the OS-appropriate
// configuration directory (XDG on Linux, ~/.config on macOS,
// %LOCALAPPDATA% on Windows). It holds per-gateway connection profiles
// and application-wide preferences.
//
// Gateway passwords are never written to the file; they are prompted
// when needed.
package config
