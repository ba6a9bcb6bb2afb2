package shopsdk

import "strings"

// Read-side views over the cached session. Each one is a pure derivation of
// the single cached User; none of them touch the network.

// CurrentUser returns a copy of the cached user, or nil when logged out or
// not yet loaded.
func (s *SessionStore) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loaded reports whether the initial session check has settled.
func (s *SessionStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Err returns the error of the last session fetch, if it failed.
func (s *SessionStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchErr
}

// IsAuthenticated reports whether a user is logged in. It fails closed:
// false while the initial check is still in flight, and false when the last
// fetch errored.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && s.fetchErr == nil && s.user != nil
}

// IsAdmin reports whether the logged-in user is an admin.
func (s *SessionStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && s.fetchErr == nil && s.user != nil && s.user.Role == RoleAdmin
}

// DisplayName returns the user's name, or "Guest" when logged out.
func (s *SessionStore) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || strings.TrimSpace(s.user.Name) == "" {
		return "Guest"
	}
	return s.user.Name
}

// Initials returns up to two uppercase letters for the avatar badge, "G"
// when logged out.
func (s *SessionStore) Initials() string {
	s.mu.Lock()
	name := ""
	if s.user != nil {
		name = s.user.Name
	}
	s.mu.Unlock()

	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "G"
	}

	initials := string([]rune(fields[0])[0])
	if len(fields) > 1 {
		initials += string([]rune(fields[len(fields)-1])[0])
	}
	return strings.ToUpper(initials)
}
