package usecase

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// Registry is the authoritative set of active users.
// Rooms are never stored; membership is derived by filtering on demand.
type Registry struct {
	mu    sync.Mutex
	users []domain.User // insertion order
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		users: make([]domain.User, 0),
	}
}

// AddUser validates and inserts a user for connection id.
// Username and room are stored normalized.
func (r *Registry) AddUser(id, username, room string) (domain.User, error) {
	user := domain.NewUser(id, username, room)
	if user.Username == "" || user.Room == "" {
		return domain.User{}, fmt.Errorf("add user %s: %w", id, domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return domain.User{}, fmt.Errorf("add user %s: %w", id, domain.ErrJoined)
		}
		if u.Room == user.Room && u.Username == user.Username {
			return domain.User{}, fmt.Errorf("add user %q to %q: %w", user.Username, user.Room, domain.ErrConflict)
		}
	}

	r.users = append(r.users, *user)
	return *user, nil
}

// RemoveUser removes and returns the user for id. Unknown ids report false.
func (r *Registry) RemoveUser(id string) (domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return u, true
		}
	}
	return domain.User{}, false
}

// GetUser looks up the user for id
func (r *Registry) GetUser(id string) (domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// GetUsersInRoom returns a snapshot of the users in room, in join order
func (r *Registry) GetUsersInRoom(room string) []domain.User {
	room = domain.Normalize(room)

	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.User, 0)
	for _, u := range r.users {
		if u.Room == room {
			result = append(result, u)
		}
	}
	return result
}

// Rooms summarizes every room that currently has members, sorted by name
func (r *Registry) Rooms() []domain.RoomSummary {
	r.mu.Lock()
	counts := make(map[string]int)
	for _, u := range r.users {
		counts[u.Room]++
	}
	r.mu.Unlock()

	result := make([]domain.RoomSummary, 0, len(counts))
	for room, count := range counts {
		result = append(result, domain.RoomSummary{Room: room, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Room < result[j].Room })
	return result
}

// Count returns the number of active users
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
