package store

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/iliyamo/goaltrack/internal/model"
)

// The transition vocabulary is data, not logic: the Arabic progress
// labels and completion keywords can be swapped without touching the
// algorithm in AddFollowup.

// completionKeywords mark a result text as "done". Matching is plain
// substring, not word-boundary, so e.g. "لم يتم" also matches "تم".
// That false positive is a known quirk of the historical data entry
// flow and is kept on purpose.
var completionKeywords = []string{"انجز", "منجز", "مكتمل", "تم"}

// advanceLevels are the progress labels that move a topic forward:
// closed when the result text signals completion, ongoing otherwise.
var advanceLevels = map[string]bool{
	"ممتاز":   true,
	"جيد جدا": true,
	"جيد":     true,
	"مقبول":   true,
}

// levelStatus maps the remaining known progress labels straight to a
// status. Unknown labels leave the topic's status untouched.
var levelStatus = map[string]model.TopicStatus{
	"ضعيف":  model.StatusPending,
	"سيئ":   model.StatusPending,
	"ملغي":  model.StatusCancelled,
	"متوقف": model.StatusStalled,
	"توقف":  model.StatusStalled,
}

func resultCompleted(resultText string) bool {
	for _, kw := range completionKeywords {
		if strings.Contains(resultText, kw) {
			return true
		}
	}
	return false
}

// AddFollowup records a progress check-in and runs the auto-transition
// engine against the parent topic. Precedence is fixed: a completion
// keyword in the result text forces Closed no matter what the progress
// level says. A missing parent topic skips the transition silently.
func (s *Store) AddFollowup(f model.Followup) model.Followup {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = rand.Intn(100000)
	s.followups = append([]model.Followup{f}, s.followups...)
	s.save(keyFollowups, s.followups)

	if topic, ok := s.findTopic(f.TopicID); ok {
		completed := resultCompleted(f.ResultText)

		next := topic.Status
		if advanceLevels[f.ProgressLevel] {
			if completed {
				next = model.StatusClosed
			} else {
				next = model.StatusOngoing
			}
		} else if st, ok := levelStatus[f.ProgressLevel]; ok {
			next = st
		}
		if completed {
			next = model.StatusClosed
		}
		s.setTopicStatus(topic.ID, next)
	}

	s.logAction("إضافة متابعة", fmt.Sprintf("متابعة للمهمة #%d", f.TopicID))
	return f
}

// Followups returns a snapshot copy of all followups, newest first.
func (s *Store) Followups() []model.Followup {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Followup, len(s.followups))
	copy(out, s.followups)
	return out
}

// FollowupsByTopic returns the followups recorded against one topic.
func (s *Store) FollowupsByTopic(topicID int) []model.Followup {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Followup
	for _, f := range s.followups {
		if f.TopicID == topicID {
			out = append(out, f)
		}
	}
	return out
}

// FollowupsByDate returns the followups recorded on an exact date,
// which feeds the daily report view.
func (s *Store) FollowupsByDate(date string) []model.Followup {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Followup
	for _, f := range s.followups {
		if f.Date == date {
			out = append(out, f)
		}
	}
	return out
}
