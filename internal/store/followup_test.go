package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/goaltrack/internal/model"
)

func TestAddFollowupTransitions(t *testing.T) {
	cases := []struct {
		name          string
		progressLevel string
		resultText    string
		initial       model.TopicStatus
		want          model.TopicStatus
	}{
		{"excellent and done closes", "ممتاز", "تم الانتهاء", model.StatusPending, model.StatusClosed},
		{"excellent without done keeps going", "ممتاز", "العمل جار", model.StatusPending, model.StatusOngoing},
		{"good advances to ongoing", "جيد", "بدأنا التنفيذ", model.StatusStalled, model.StatusOngoing},
		{"acceptable advances to ongoing", "مقبول", "بطيء", model.StatusPending, model.StatusOngoing},
		{"weak falls back to pending", "ضعيف", "لا تقدم", model.StatusOngoing, model.StatusPending},
		{"bad falls back to pending", "سيئ", "مشاكل", model.StatusOngoing, model.StatusPending},
		{"cancelled label cancels", "ملغي", "لا حاجة", model.StatusOngoing, model.StatusCancelled},
		{"stopped label stalls", "متوقف", "بانتظار الموافقة", model.StatusOngoing, model.StatusStalled},
		{"stopped variant stalls", "توقف", "بانتظار الموافقة", model.StatusOngoing, model.StatusStalled},
		{"unknown label keeps status", "غير معروف", "ملاحظات", model.StatusPostponed, model.StatusPostponed},
		{"completion keyword overrides weak level", "ضعيف", "تم الانجاز رغم كل شيء", model.StatusOngoing, model.StatusClosed},
		{"completion keyword overrides cancel label", "ملغي", "مكتمل", model.StatusOngoing, model.StatusClosed},
		{"completion keyword overrides unknown label", "بلا تقييم", "انجز العمل", model.StatusPending, model.StatusClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			topic := s.AddTopic(model.Topic{Title: "مهمة", Status: tc.initial, DueDate: "2999-01-01"})

			s.AddFollowup(model.Followup{
				TopicID:       topic.ID,
				Date:          testToday(),
				ProgressLevel: tc.progressLevel,
				ResultText:    tc.resultText,
			})

			got, ok := s.TopicByID(topic.ID)
			require.True(t, ok)
			require.Equal(t, tc.want, got.Status)
			if tc.want == model.StatusClosed {
				require.Equal(t, testToday(), got.ClosingDate)
			} else {
				require.Empty(t, got.ClosingDate)
			}
		})
	}
}

// Substring matching is deliberate: a negated phrase like "لم يتم" still
// contains the completion keyword "تم" and closes the topic. The quirk
// is part of the historical contract.
func TestCompletionKeywordSubstringQuirk(t *testing.T) {
	s := newTestStore(t)
	topic := s.AddTopic(model.Topic{Title: "مهمة", Status: model.StatusPending})

	s.AddFollowup(model.Followup{TopicID: topic.ID, ProgressLevel: "ضعيف", ResultText: "لم يتم العمل"})

	got, _ := s.TopicByID(topic.ID)
	require.Equal(t, model.StatusClosed, got.Status)
}

func TestAddFollowupWithMissingTopicIsSilent(t *testing.T) {
	s := newTestStore(t)

	f := s.AddFollowup(model.Followup{TopicID: 424242, ProgressLevel: "ممتاز", ResultText: "تم"})
	require.Equal(t, 424242, f.TopicID)
	require.Len(t, s.Followups(), 1, "the followup is still recorded")
}

func TestFollowupQueries(t *testing.T) {
	s := newTestStore(t)
	a := s.AddTopic(model.Topic{Title: "أ", Status: model.StatusPending})
	b := s.AddTopic(model.Topic{Title: "ب", Status: model.StatusPending})

	s.AddFollowup(model.Followup{TopicID: a.ID, Date: "2025-03-01"})
	s.AddFollowup(model.Followup{TopicID: a.ID, Date: "2025-03-02"})
	s.AddFollowup(model.Followup{TopicID: b.ID, Date: "2025-03-02"})

	require.Len(t, s.FollowupsByTopic(a.ID), 2)
	require.Len(t, s.FollowupsByDate("2025-03-02"), 2)
	require.Empty(t, s.FollowupsByDate("2025-03-03"))
	require.Len(t, s.Followups(), 3)
}
