package shopsdk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// SessionStore is the single authority on "who is logged in" for a process.
// It holds exactly one cached User, revalidates it per its Policy, and
// guarantees that a logout always wins over any authentication still in
// flight.
//
// All cache writes replace the whole value; nothing ever merges into a stale
// user.
type SessionStore struct {
	client *Client
	policy Policy
	now    func() time.Time

	mu        sync.Mutex
	user      *User
	fetchErr  error
	fetchedAt time.Time
	loaded    bool
	epoch     uint64

	group singleflight.Group
}

// NewSessionStore creates a store around the client with the default policy.
func NewSessionStore(client *Client) *SessionStore {
	return NewSessionStoreWithPolicy(client, DefaultPolicy())
}

// NewSessionStoreWithPolicy creates a store with an explicit policy.
func NewSessionStoreWithPolicy(client *Client, policy Policy) *SessionStore {
	return &SessionStore{
		client: client,
		policy: policy,
		now:    time.Now,
	}
}

// Refresh fetches the current user from the gateway and installs the result.
// Concurrent calls collapse into one request. Failed fetches are retried per
// the policy; an auth rejection is not a failure, it settles as logged out.
func (s *SessionStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	type result struct {
		user *User
		err  error
	}

	// The epoch keys the flight so a fetch from before a logout can never be
	// shared with callers from after it.
	v, _, _ := s.group.Do(fmt.Sprintf("session-%d", epoch), func() (any, error) {
		user, err := s.fetchWithRetry(ctx)
		return result{user: user, err: err}, nil
	})
	res := v.(result)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A logout moved the epoch while this fetch was in flight. Its result
	// describes a session that no longer exists; drop it.
	if s.epoch != epoch {
		return nil
	}

	s.user = res.user
	s.fetchErr = res.err
	s.fetchedAt = s.now()
	s.loaded = true
	return res.err
}

func (s *SessionStore) fetchWithRetry(ctx context.Context) (*User, error) {
	attempts := 0
	for {
		user, err := s.client.FetchUser(ctx)
		if err == nil {
			return user, nil
		}
		if !s.policy.ShouldRetry(err, attempts) {
			return nil, err
		}

		select {
		case <-time.After(s.policy.Backoff(attempts)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		attempts++
	}
}

// Login validates the input, authenticates against the gateway, and installs
// the returned user. Invalid input never reaches the network. The server's
// error message is surfaced verbatim; nothing is retried.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*User, error) {
	if err := validateLogin(email, password); err != nil {
		return nil, err
	}

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.install(epoch, user)
	return user, nil
}

// Register creates an account and starts a session, same contract as Login.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) (*User, error) {
	if err := validateRegister(name, email, password); err != nil {
		return nil, err
	}

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	user, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	s.install(epoch, user)
	return user, nil
}

// install writes a freshly authenticated user into the cache, unless a
// logout happened after the network call started. Logout always wins.
//
// The entry is installed already stale: the login response is good enough to
// render with, but the next revalidation trigger refetches so the UI converges
// to server truth instead of trusting the mutation's echo indefinitely.
func (s *SessionStore) install(epoch uint64, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return
	}

	s.user = user
	s.fetchErr = nil
	s.fetchedAt = time.Time{}
	s.loaded = true
}

// Logout ends the session. The cached user is cleared before the network
// call and stays cleared whatever the gateway answers; the epoch bump fences
// off any login or refresh still in flight.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.epoch++
	s.user = nil
	s.fetchErr = nil
	s.fetchedAt = s.now()
	s.loaded = true
	s.mu.Unlock()

	return s.client.Logout(ctx)
}

// Invalidate marks the cached user stale so the next revalidation trigger
// refetches it. The current value keeps being served until then.
func (s *SessionStore) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// RevalidateOnFocus refetches the session if it has gone stale, mirroring a
// browser tab regaining focus.
func (s *SessionStore) RevalidateOnFocus(ctx context.Context) error {
	return s.revalidateIfStale(ctx)
}

// RevalidateOnReconnect refetches the session if it has gone stale after
// connectivity returns.
func (s *SessionStore) RevalidateOnReconnect(ctx context.Context) error {
	return s.revalidateIfStale(ctx)
}

func (s *SessionStore) revalidateIfStale(ctx context.Context) error {
	s.mu.Lock()
	stale := s.policy.Stale(s.fetchedAt, s.now())
	s.mu.Unlock()

	if !stale {
		return nil
	}
	return s.Refresh(ctx)
}

// Run drives background revalidation until ctx is cancelled. It revalidates
// once immediately, then on every policy interval. A fresh entry is left
// alone, so a Run started right after a Refresh does not refetch.
func (s *SessionStore) Run(ctx context.Context) {
	_ = s.revalidateIfStale(ctx)

	ticker := time.NewTicker(s.policy.RefetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = s.revalidateIfStale(ctx)
		case <-ctx.Done():
			return
		}
	}
}
