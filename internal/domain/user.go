package domain

import "strings"

// User is one active participant, keyed by the connection that joined
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Room     string `json:"room"`
}

// Normalize trims and lower-cases a username or room name.
// Every comparison and every stored value goes through it.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewUser creates a User with normalized username and room
func NewUser(id, username, room string) *User {
	return &User{
		ID:       id,
		Username: Normalize(username),
		Room:     Normalize(room),
	}
}
