package store

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/iliyamo/goaltrack/internal/model"
)

// Topics returns a snapshot copy of all topics, newest first.
func (s *Store) Topics() []model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Topic, len(s.topics))
	copy(out, s.topics)
	return out
}

// TopicByID looks a topic up by id.
func (s *Store) TopicByID(id int) (model.Topic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTopic(id)
}

func (s *Store) findTopic(id int) (model.Topic, bool) {
	for _, t := range s.topics {
		if t.ID == id {
			return t, true
		}
	}
	return model.Topic{}, false
}

// AddTopic assigns a fresh random id, stamps lastUpdated and prepends
// the topic. Ids are drawn from a large namespace without a collision
// check; only bulk import deduplicates.
func (s *Store) AddTopic(t model.Topic) model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = rand.Intn(100000) + 1000
	t.LastUpdated = today()
	s.topics = append([]model.Topic{t}, s.topics...)
	s.save(keyTopics, s.topics)
	s.logAction("إضافة مهمة", fmt.Sprintf("تم إضافة المهمة: %s", t.Title))
	return t
}

// UpdateTopic merges a partial patch onto the stored topic and always
// refreshes lastUpdated. An unknown id changes nothing but the
// collection is still persisted and the action logged, matching the
// historical behavior.
func (s *Store) UpdateTopic(id int, p model.TopicPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oldTitle := s.titleOf(id)
	s.updateTopic(id, p)
	s.logAction("تحديث مهمة", fmt.Sprintf("تعديل المهمة #%d - %s", id, oldTitle))
}

func (s *Store) titleOf(id int) string {
	if t, ok := s.findTopic(id); ok {
		return t.Title
	}
	return ""
}

func (s *Store) updateTopic(id int, p model.TopicPatch) {
	for i := range s.topics {
		if s.topics[i].ID != id {
			continue
		}
		t := &s.topics[i]
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Type != nil {
			t.Type = *p.Type
		}
		if p.AssignmentDate != nil {
			t.AssignmentDate = *p.AssignmentDate
		}
		if p.Sender != nil {
			t.Sender = *p.Sender
		}
		if p.DeptID != nil {
			t.DeptID = *p.DeptID
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.DueDate != nil {
			t.DueDate = *p.DueDate
		}
		if p.Details != nil {
			t.Details = *p.Details
		}
		if p.Status != nil {
			t.Status = *p.Status
		}
		if p.ClosingDate != nil {
			t.ClosingDate = *p.ClosingDate
		}
		t.LastUpdated = today()
		break
	}
	s.save(keyTopics, s.topics)
}

// DeleteTopic removes a topic and cascades to its followups.
func (s *Store) DeleteTopic(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := strconv.Itoa(id)
	if t, ok := s.findTopic(id); ok {
		ref = t.Title
	}
	kept := s.topics[:0]
	for _, t := range s.topics {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.topics = kept

	fkept := s.followups[:0]
	for _, f := range s.followups {
		if f.TopicID != id {
			fkept = append(fkept, f)
		}
	}
	s.followups = fkept

	s.save(keyTopics, s.topics)
	s.save(keyFollowups, s.followups)
	s.logAction("حذف مهمة", fmt.Sprintf("تم حذف المهمة: %s", ref))
}

// SetTopicStatus is the invariant-preserving status setter: moving to
// Closed stamps today's closing date, moving anywhere else clears it.
// Every status-changing path, including the followup engine, goes
// through here.
func (s *Store) SetTopicStatus(id int, status model.TopicStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTopicStatus(id, status)
}

func (s *Store) setTopicStatus(id int, status model.TopicStatus) {
	closing := ""
	if status == model.StatusClosed {
		closing = today()
	}
	oldTitle := s.titleOf(id)
	s.updateTopic(id, model.TopicPatch{Status: &status, ClosingDate: &closing})
	s.logAction("تحديث مهمة", fmt.Sprintf("تعديل المهمة #%d - %s", id, oldTitle))
	s.logAction("تغيير حالة", fmt.Sprintf("تغيير حالة المهمة #%d إلى %s", id, status))
}

// OverdueTopics returns topics that are overdue either by their stored
// status or by the derived rule: due date in the past and status not in
// a terminal or paused state. The stored enum and the computed
// predicate deliberately coexist; do not collapse one into the other.
func (s *Store) OverdueTopics() []model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overdueTopics()
}

func (s *Store) overdueTopics() []model.Topic {
	now := today()
	var out []model.Topic
	for _, t := range s.topics {
		if t.Status == model.StatusOverdue || (t.DueDate < now &&
			t.Status != model.StatusClosed &&
			t.Status != model.StatusCancelled &&
			t.Status != model.StatusPhased &&
			t.Status != model.StatusStalled) {
			out = append(out, t)
		}
	}
	return out
}

// Stats summarizes the topic collection. Pending counts both ongoing
// and pending topics; overdue uses the derived predicate.
func (s *Store) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := model.Stats{Total: len(s.topics)}
	for _, t := range s.topics {
		switch t.Status {
		case model.StatusClosed:
			st.Completed++
		case model.StatusOngoing, model.StatusPending:
			st.Pending++
		}
	}
	st.Overdue = len(s.overdueTopics())
	return st
}
