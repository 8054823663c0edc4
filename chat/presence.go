package chat

import "sync"

// Session is one live bidirectional channel connection for a user. A user
// may hold several at once (tabs, devices); all of them are broadcast
// targets.
type Session interface {
	ID() string
	Emit(event string, payload any) error
}

// Registry maps user ids to their currently connected sessions. Safe for
// concurrent join/leave/lookup from unrelated connections.
type Registry struct {
	mu    sync.RWMutex
	users map[uint]map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[uint]map[string]Session)}
}

func (r *Registry) Join(userID uint, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, ok := r.users[userID]
	if !ok {
		sessions = make(map[string]Session)
		r.users[userID] = sessions
	}
	sessions[s.ID()] = s
}

// Leave removes the session from every channel it was registered under.
// Unknown sessions are ignored.
func (r *Registry) Leave(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, sessions := range r.users {
		delete(sessions, s.ID())
		if len(sessions) == 0 {
			delete(r.users, userID)
		}
	}
}

// SessionsFor returns the live sessions of one user; empty when the user
// is offline, which is not an error.
func (r *Registry) SessionsFor(userID uint) []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]Session, 0, len(r.users[userID]))
	for _, s := range r.users[userID] {
		sessions = append(sessions, s)
	}
	return sessions
}

// All returns every registered session across all users.
func (r *Registry) All() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := []Session{}
	for _, sessions := range r.users {
		for _, s := range sessions {
			all = append(all, s)
		}
	}
	return all
}
