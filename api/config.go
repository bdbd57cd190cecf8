// Package api provides the HTTP surface of the session state core: session
// lifecycle, turn commits, context assembly, profiles, sync, and privacy
// operations.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string
}
