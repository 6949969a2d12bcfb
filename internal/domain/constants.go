package domain

import "time"

// ==== WebSocket Constants ====

// MaxMessageSize is the maximum allowed WebSocket frame size in bytes
const MaxMessageSize = 4096

// SendBufferSize is the number of outbound frames queued per connection
const SendBufferSize = 256

// ==== Protocol Constants ====

const (
	// SystemSender is the username attached to server generated messages
	SystemSender = "Admin"

	// WelcomeText is sent to a connection right after it joins a room
	WelcomeText = "Welcome!"

	// ProfanityRejectionText is the ack error for a flagged chat message
	ProfanityRejectionText = "Profanity is not allowed!"

	// MapsBaseURL prefixes every location link
	MapsBaseURL = "https://google.com/maps?q="
)

// ==== Rate Limit Constants ====

const (
	// DefaultRateLimitWS is the default rate for websocket upgrades per IP (req/sec)
	DefaultRateLimitWS = 5

	// DefaultRateLimitEvents is the default inbound event rate per connection (events/sec)
	DefaultRateLimitEvents = 10

	// DefaultEventBurst is the default inbound event burst per connection
	DefaultEventBurst = 20
)

// ==== Timing Constants ====

// ShutdownGracePeriod bounds how long shutdown waits for connections to close
const ShutdownGracePeriod = 10 * time.Second
