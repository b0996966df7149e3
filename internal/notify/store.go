// Package notify holds the client-side authoritative view of the user's
// notifications, reconciling bulk fetches with individually pushed
// records without duplication.
package notify

import (
	"github.com/google/uuid"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// Store is an ordered, newest-first collection of notifications. It is
// not safe for concurrent use: all mutation happens synchronously on the
// application's update loop, reducer style.
type Store struct {
	records []model.Notification
}

// NewStore creates an empty notification store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll installs the result of a bulk fetch, fully replacing the
// current collection.
func (s *Store) ReplaceAll(records []model.Notification) {
	s.records = make([]model.Notification, len(records))
	copy(s.records, records)
}

// InsertPushed adds a pushed notification at the head of the collection.
// A record whose ID is already present is dropped, since a bulk fetch may
// have delivered it first. Records arriving without an ID get one
// assigned. Reports whether the record was inserted.
func (s *Store) InsertPushed(n model.Notification) bool {
	if n.ID == "" {
		n.ID = uuid.New().String()
	} else if s.indexOf(n.ID) >= 0 {
		return false
	}

	s.records = append([]model.Notification{n}, s.records...)
	return true
}

// MarkRead sets the read flag on the matching record. It is idempotent:
// marking an already-read or absent record reports false and changes
// nothing. The read flag never reverts to false.
func (s *Store) MarkRead(id string) bool {
	i := s.indexOf(id)
	if i < 0 || s.records[i].Read {
		return false
	}
	s.records[i].Read = true
	return true
}

// MarkAllRead marks every unread record read and returns their IDs, so
// the caller can issue the matching remote calls.
func (s *Store) MarkAllRead() []string {
	var ids []string
	for i := range s.records {
		if !s.records[i].Read {
			s.records[i].Read = true
			ids = append(ids, s.records[i].ID)
		}
	}
	return ids
}

// UnreadCount is the number of unread records. It is recomputed on every
// call rather than cached, so it can never drift.
func (s *Store) UnreadCount() int {
	count := 0
	for i := range s.records {
		if !s.records[i].Read {
			count++
		}
	}
	return count
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []model.Notification {
	out := make([]model.Notification, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (model.Notification, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return model.Notification{}, false
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// FirstUnread returns the newest unread record of the given type.
func (s *Store) FirstUnread(t model.NotificationType) (model.Notification, bool) {
	for i := range s.records {
		if !s.records[i].Read && s.records[i].Type == t {
			return s.records[i], true
		}
	}
	return model.Notification{}, false
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
