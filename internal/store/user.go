package store

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/iliyamo/goaltrack/internal/model"
)

// Users returns a snapshot copy of all users. An empty collection is
// re-seeded with the default admin so the system can never lock itself
// out.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) == 0 {
		s.users = model.SeedUsers()
		s.save(keyUsers, s.users)
	}
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// UserByID looks a user up by id.
func (s *Store) UserByID(id int) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUser(id)
}

// AddUser assigns a fresh random id and appends the user.
func (s *Store) AddUser(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = rand.Intn(10000)
	s.users = append(s.users, u)
	s.save(keyUsers, s.users)
	s.logAction("إضافة مستخدم", fmt.Sprintf("تم إضافة المستخدم: %s", u.Name))
	return u
}

// UpdateUser merges a partial patch onto a user record.
func (s *Store) UpdateUser(id int, p model.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.Role != nil {
			u.Role = *p.Role
		}
		if p.DeptID != nil {
			u.DeptID = *p.DeptID
		}
		if p.IsActive != nil {
			u.IsActive = *p.IsActive
		}
		break
	}
	s.save(keyUsers, s.users)
	s.logAction("تحديث مستخدم", fmt.Sprintf("تحديث بيانات المستخدم #%d", id))
}

// DeleteUser removes a user. Deleting the root admin (id 1) is a silent
// no-op.
func (s *Store) DeleteUser(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == 1 {
		return
	}
	ref := strconv.Itoa(id)
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID == id {
			ref = u.Name
			continue
		}
		kept = append(kept, u)
	}
	s.users = kept
	s.save(keyUsers, s.users)
	s.logAction("حذف مستخدم", fmt.Sprintf("تم حذف المستخدم: %s", ref))
}

// Login establishes the process-wide session for an existing user and
// persists the session pointer. Unknown ids fail without any state
// change.
func (s *Store) Login(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.findUser(userID)
	if !ok {
		return false
	}
	s.sessionUserID = u.ID
	s.saveRaw(keySession, strconv.Itoa(u.ID))
	s.logAction("تسجيل دخول", fmt.Sprintf("المستخدم: %s", u.Name))
	return true
}

// Logout clears the session, logging the outgoing user first if one
// was active.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.findUser(s.sessionUserID); ok && s.sessionUserID != 0 {
		s.logAction("تسجيل خروج", fmt.Sprintf("المستخدم: %s", u.Name))
	}
	s.sessionUserID = 0
	s.deleteKey(keySession)
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionUserID != 0
}

// CurrentUser returns the session user, falling back to the first user
// in the list when no session is active. The fallback is a read-time
// guard only and never re-establishes a persisted session.
func (s *Store) CurrentUser() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.findUser(s.sessionUserID); ok && s.sessionUserID != 0 {
		return u
	}
	if len(s.users) == 0 {
		s.users = model.SeedUsers()
		s.save(keyUsers, s.users)
	}
	return s.users[0]
}
