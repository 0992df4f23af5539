// Package store holds all application state in memory and mirrors every
// mutation into the blob store, write-through and whole-collection at a
// time. One Store is constructed per process; all operations go through
// it. Reads hand out copies so callers can never mutate internal state
// through aliasing.
package store

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/goaltrack/internal/blob"
	"github.com/iliyamo/goaltrack/internal/model"
)

// Blob keys. The goaltrack_ names are historical and must stay stable
// so existing deployments keep their data across upgrades.
const (
	keyTopics      = "goaltrack_topics"
	keyFollowups   = "goaltrack_followups"
	keyDepartments = "goaltrack_depts"
	keyUsers       = "goaltrack_users"
	keyToken       = "goaltrack_telegram_token"
	keySession     = "goaltrack_current_user_id"
	keyLogs        = "goaltrack_audit_logs"
)

// maxLogEntries caps the audit log; the oldest entry is evicted when a
// new one pushes the list past the cap.
const maxLogEntries = 500

// Store is the in-memory data store and rules engine. A single mutex
// serializes all access, preserving the single-writer model while
// keeping the HTTP surface safe.
type Store struct {
	mu   sync.Mutex
	blob blob.Store

	topics        []model.Topic
	followups     []model.Followup
	departments   []model.Department
	users         []model.User
	logs          []model.LogEntry
	telegramToken string
	sessionUserID int // 0 means no active session
}

// New loads every collection from the blob store, seeding defaults for
// missing or corrupt blobs, and restores the persisted session pointer
// if it still matches an existing user.
func New(b blob.Store) *Store {
	s := &Store{blob: b, departments: model.SeedDepartments(), users: model.SeedUsers()}

	loadJSON(b, keyTopics, &s.topics)
	loadJSON(b, keyFollowups, &s.followups)
	loadJSON(b, keyLogs, &s.logs)

	var depts []model.Department
	if loadJSON(b, keyDepartments, &depts) && len(depts) > 0 {
		s.departments = depts
	}
	var users []model.User
	if loadJSON(b, keyUsers, &users) && len(users) > 0 {
		s.users = users
	}

	if raw, ok, err := b.Get(context.Background(), keyToken); err == nil && ok {
		s.telegramToken = raw
	}
	if raw, ok, err := b.Get(context.Background(), keySession); err == nil && ok {
		if id, err := strconv.Atoi(raw); err == nil {
			if _, found := s.findUser(id); found {
				s.sessionUserID = id
			}
		}
	}
	return s
}

// loadJSON reads and unmarshals one blob. Corrupt or missing blobs are
// swallowed and leave dst untouched, per the silent-fallback contract.
func loadJSON(b blob.Store, key string, dst any) bool {
	raw, ok, err := b.Get(context.Background(), key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false
	}
	return true
}

// save serializes one collection and writes it through. Persistence is
// best effort: failures are logged, never surfaced to the caller.
func (s *Store) save(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("store: marshal %s failed: %v", key, err)
		return
	}
	if err := s.blob.Set(context.Background(), key, string(raw)); err != nil {
		log.Printf("store: persist %s failed: %v", key, err)
	}
}

// saveRaw writes a raw string value (token, session pointer).
func (s *Store) saveRaw(key, value string) {
	if err := s.blob.Set(context.Background(), key, value); err != nil {
		log.Printf("store: persist %s failed: %v", key, err)
	}
}

func (s *Store) deleteKey(key string) {
	if err := s.blob.Delete(context.Background(), key); err != nil {
		log.Printf("store: delete %s failed: %v", key, err)
	}
}

// today returns the current date as a fixed-width ISO string. All date
// comparisons in the store rely on this format.
func today() string { return time.Now().UTC().Format("2006-01-02") }

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }

func (s *Store) findUser(id int) (model.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// logAction appends an audit entry stamped with the current session
// actor, or the "System" sentinel when nobody is logged in. Callers
// must hold the store mutex.
func (s *Store) logAction(action, details string) {
	uid, name := 0, "System"
	if u, ok := s.findUser(s.sessionUserID); ok && s.sessionUserID != 0 {
		uid, name = u.ID, u.Name
	}
	entry := model.LogEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		UserID:    uid,
		UserName:  name,
		Timestamp: nowISO(),
	}
	s.logs = append([]model.LogEntry{entry}, s.logs...)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[:maxLogEntries]
	}
	s.save(keyLogs, s.logs)
}

// Log records an audit entry on behalf of a caller outside the store.
func (s *Store) Log(action, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logAction(action, details)
}

// Logs returns a snapshot copy of the audit log, newest first.
func (s *Store) Logs() []model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

// ClearLogs empties the audit log.
func (s *Store) ClearLogs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
	s.save(keyLogs, []model.LogEntry{})
}
