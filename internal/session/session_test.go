package session

import (
	"errors"
	"testing"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// memStore is an in-memory TokenStore.
type memStore struct {
	token   string
	loadErr error
	saves   int
	deletes int
}

func (m *memStore) Token() (string, error) {
	return m.token, m.loadErr
}

func (m *memStore) SaveToken(token string) error {
	m.token = token
	m.saves++
	return nil
}

func (m *memStore) DeleteToken() error {
	m.token = ""
	m.deletes++
	return nil
}

func TestAuthenticatedDerivedFromToken(t *testing.T) {
	s := NewStore(nil)
	if s.Authenticated() {
		t.Fatal("empty store must be unauthenticated")
	}

	s.SetToken("abc")
	if !s.Authenticated() {
		t.Fatal("expected authenticated after SetToken")
	}

	s.Clear()
	if s.Authenticated() {
		t.Fatal("expected unauthenticated after Clear")
	}
}

func TestSubscribersSeeEveryTransition(t *testing.T) {
	ts := &memStore{}
	s := NewStore(ts)

	var seen []model.Credential
	s.Subscribe(func(c model.Credential) { seen = append(seen, c) })

	s.SetToken("abc")
	s.SetToken("abc") // unchanged token: no transition
	s.SetToken("xyz")
	s.Clear()
	s.Clear() // already cleared: no transition

	want := []string{"abc", "xyz", ""}
	if len(seen) != len(want) {
		t.Fatalf("got %d transitions, want %d", len(seen), len(want))
	}
	for i, w := range want {
		if seen[i].Token != w {
			t.Fatalf("transition %d: token %q, want %q", i, seen[i].Token, w)
		}
	}
}

func TestTokenPersistence(t *testing.T) {
	ts := &memStore{}
	s := NewStore(ts)

	s.SetToken("abc")
	if ts.token != "abc" || ts.saves != 1 {
		t.Fatalf("token not persisted: %+v", ts)
	}

	s.Clear()
	if ts.token != "" || ts.deletes != 1 {
		t.Fatalf("token not deleted: %+v", ts)
	}
}

func TestLoadRestoresSession(t *testing.T) {
	ts := &memStore{token: "stored"}
	s := NewStore(ts)

	var seen int
	s.Subscribe(func(model.Credential) { seen++ })

	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Authenticated() || s.Credential().Token != "stored" {
		t.Fatalf("unexpected credential: %+v", s.Credential())
	}
	if seen != 1 {
		t.Fatalf("expected one publication, got %d", seen)
	}
}

func TestLoadWithoutStoredToken(t *testing.T) {
	s := NewStore(&memStore{})
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("expected unauthenticated session")
	}
}

func TestLoadPropagatesError(t *testing.T) {
	s := NewStore(&memStore{loadErr: errors.New("locked")})
	if err := s.Load(); err == nil {
		t.Fatal("expected load error")
	}
}
