// Package timeouts defines the HTTP server durations used by the tracker.
package timeouts

import "time"

// ReadHeader limits how long the server waits for request headers.
const ReadHeader = 5 * time.Second

// Read caps the time to read a full request, body included.
const Read = 15 * time.Second

// Write caps the time to render a response.
const Write = 30 * time.Second

// Idle bounds keep-alive connections between requests.
const Idle = 120 * time.Second

// Shutdown limits how long the server waits for in-flight requests during
// graceful shutdown.
const Shutdown = 10 * time.Second
