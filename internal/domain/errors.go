package domain

import "errors"

// Error kinds surfaced to clients through event acknowledgments.
// Callers wrap them with context and match with errors.Is.
var (
	ErrValidation   = errors.New("username and room are required")
	ErrConflict     = errors.New("username is in use")
	ErrJoined       = errors.New("connection already joined a room")
	ErrUnknownUser  = errors.New("unknown user")
	ErrProfanity    = errors.New("profanity is not allowed")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrUnknownEvent = errors.New("unknown event")
	ErrBadPayload   = errors.New("invalid payload")
)

// ackTexts holds the text clients see for each error kind
var ackTexts = []struct {
	kind error
	text string
}{
	{ErrValidation, "Username and room are required!"},
	{ErrConflict, "Username is in use!"},
	{ErrJoined, "already joined a room"},
	{ErrUnknownUser, "unknown user: join a room first"},
	{ErrProfanity, ProfanityRejectionText},
	{ErrRateLimited, "rate limit exceeded"},
	{ErrUnknownEvent, "unknown event"},
	{ErrBadPayload, "invalid payload"},
}

// AckText returns the client facing text for err.
// Wrapped context is never sent to clients; unclassified errors become a generic text.
func AckText(err error) string {
	if err == nil {
		return ""
	}
	for _, a := range ackTexts {
		if errors.Is(err, a.kind) {
			return a.text
		}
	}
	return "internal error"
}
