// Package session holds the current authentication state and publishes
// every change to registered subscribers. It is the single source of
// truth for whether a live event channel should exist.
package session

import (
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// TokenStore persists the bearer token across runs. It is implemented by
// the credential package's system keyring; tests use in-memory fakes.
type TokenStore interface {
	Token() (string, error)
	SaveToken(token string) error
	DeleteToken() error
}

// Subscriber receives the new credential after every session transition.
type Subscriber func(model.Credential)

// Store holds the session credential. It is not safe for concurrent use:
// all transitions happen on the application's update loop, and subscribers
// are invoked synchronously, in registration order, on that same loop.
type Store struct {
	cred model.Credential
	ts   TokenStore
	subs []Subscriber
}

// NewStore creates a session store. ts may be nil, in which case tokens
// are not persisted.
func NewStore(ts TokenStore) *Store {
	return &Store{ts: ts}
}

// Load reads a previously persisted token, if any, and applies it as the
// current credential. Subscribers registered before Load observe the
// restored session.
func (s *Store) Load() error {
	if s.ts == nil {
		return nil
	}
	tok, err := s.ts.Token()
	if err != nil {
		return err
	}
	if tok == "" {
		return nil
	}
	s.cred = model.Credential{Token: tok}
	s.publish()
	return nil
}

// Credential returns the current session credential.
func (s *Store) Credential() model.Credential {
	return s.cred
}

// Authenticated reports whether a session token is present.
func (s *Store) Authenticated() bool {
	return s.cred.Authenticated()
}

// Subscribe registers fn to be called after every credential change.
func (s *Store) Subscribe(fn Subscriber) {
	s.subs = append(s.subs, fn)
}

// SetToken installs a new session token, persists it, and publishes the
// change. Setting the token already in place is a no-op.
func (s *Store) SetToken(token string) {
	if s.cred.Token == token {
		return
	}
	s.cred = model.Credential{Token: token}
	if s.ts != nil && token != "" {
		// Persistence failure does not block the in-memory session.
		_ = s.ts.SaveToken(token)
	}
	s.publish()
}

// Clear destroys the session: the token is removed from persistence and
// subscribers observe an unauthenticated credential.
func (s *Store) Clear() {
	if !s.cred.Authenticated() {
		return
	}
	s.cred = model.Credential{}
	if s.ts != nil {
		_ = s.ts.DeleteToken()
	}
	s.publish()
}

func (s *Store) publish() {
	for _, fn := range s.subs {
		fn(s.cred)
	}
}
