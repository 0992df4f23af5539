package store

import (
	"encoding/json"
	"fmt"

	"github.com/iliyamo/goaltrack/internal/model"
)

// ExportSnapshot dumps every collection plus the Telegram token into a
// backup payload. The export action is logged before the dump is built,
// so the exported audit log carries its own export entry.
func (s *Store) ExportSnapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logAction("نسخ احتياطي", "تم تصدير نسخة احتياطية للنظام")

	snap := model.Snapshot{
		Topics:        make([]model.Topic, len(s.topics)),
		Followups:     make([]model.Followup, len(s.followups)),
		Departments:   make([]model.Department, len(s.departments)),
		Users:         make([]model.User, len(s.users)),
		AuditLogs:     make([]model.LogEntry, len(s.logs)),
		TelegramToken: s.telegramToken,
		Timestamp:     nowISO(),
		Version:       model.SnapshotVersion,
	}
	copy(snap.Topics, s.topics)
	copy(snap.Followups, s.followups)
	copy(snap.Departments, s.departments)
	copy(snap.Users, s.users)
	copy(snap.AuditLogs, s.logs)
	return snap
}

// ImportSnapshot wholesale-replaces every collection with the contents
// of a backup payload. Validation is minimal and all-or-nothing: topics
// and users must be present as sequences, otherwise nothing changes and
// false is returned. A missing departments key keeps the current
// departments (an empty sequence replaces them).
func (s *Store) ImportSnapshot(raw []byte) bool {
	var in struct {
		Topics        *[]model.Topic      `json:"topics"`
		Followups     []model.Followup    `json:"followups"`
		Departments   *[]model.Department `json:"departments"`
		Users         *[]model.User       `json:"users"`
		AuditLogs     []model.LogEntry    `json:"auditLogs"`
		TelegramToken string              `json:"telegramToken"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return false
	}
	if in.Topics == nil || in.Users == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.topics = *in.Topics
	s.followups = in.Followups
	if in.Departments != nil {
		s.departments = *in.Departments
	}
	s.users = *in.Users
	s.logs = in.AuditLogs
	if in.TelegramToken != "" {
		s.setTelegramToken(in.TelegramToken)
	}

	s.save(keyTopics, s.topics)
	s.save(keyFollowups, s.followups)
	s.save(keyDepartments, s.departments)
	s.save(keyUsers, s.users)
	s.save(keyLogs, s.logs)

	s.logAction("استعادة نظام", "تم استعادة النظام من نسخة احتياطية")
	return true
}

// ImportTopics bulk-adds topics, skipping any whose id already exists
// in the store. Duplicate ids inside the incoming batch itself are not
// deduplicated; only the store is consulted. Returns the total topic
// count after the import, not the number added; the log line carries
// the added count.
func (s *Store) ImportTopics(incoming []model.Topic) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[int]bool, len(s.topics))
	for _, t := range s.topics {
		existing[t.ID] = true
	}
	var fresh []model.Topic
	for _, t := range incoming {
		if !existing[t.ID] {
			fresh = append(fresh, t)
		}
	}

	s.topics = append(fresh, s.topics...)
	s.save(keyTopics, s.topics)
	s.logAction("استيراد بيانات", fmt.Sprintf("تم استيراد %d مهمة من ملف خارجي", len(fresh)))
	return len(s.topics)
}

// ResetToFactory clears all data and restores the seed departments and
// default admin. The reset is logged before the audit log is cleared,
// so the entry is visible only in a pre-reset export.
func (s *Store) ResetToFactory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logAction("إعادة ضبط", "تم إعادة ضبط النظام للمصنع")

	s.topics = nil
	s.followups = nil
	s.departments = model.SeedDepartments()
	s.users = model.SeedUsers()
	s.logs = nil
	s.sessionUserID = 0

	s.deleteKey(keyTopics)
	s.deleteKey(keyFollowups)
	s.deleteKey(keyDepartments)
	s.deleteKey(keyUsers)
	s.deleteKey(keySession)
	s.deleteKey(keyLogs)
}
