package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/goaltrack/internal/blob"
	"github.com/iliyamo/goaltrack/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(blob.NewMemory())
}

func testToday() string { return time.Now().UTC().Format("2006-01-02") }

func strPtr(s string) *string { return &s }

func statusPtr(s model.TopicStatus) *model.TopicStatus { return &s }

func TestAddTopicStampsIDAndLastUpdated(t *testing.T) {
	s := newTestStore(t)

	created := s.AddTopic(model.Topic{Title: "مراجعة العقود", Status: model.StatusPending})
	require.NotZero(t, created.ID)
	require.Equal(t, testToday(), created.LastUpdated)

	got, ok := s.TopicByID(created.ID)
	require.True(t, ok)
	require.Equal(t, "مراجعة العقود", got.Title)

	// Newest first.
	second := s.AddTopic(model.Topic{Title: "تقرير شهري", Status: model.StatusPending})
	topics := s.Topics()
	require.Len(t, topics, 2)
	require.Equal(t, second.ID, topics[0].ID)
}

func TestTopicsReturnsSnapshotCopy(t *testing.T) {
	s := newTestStore(t)
	created := s.AddTopic(model.Topic{Title: "أصل", Status: model.StatusPending})

	list := s.Topics()
	list[0].Title = "معدل من الخارج"

	got, _ := s.TopicByID(created.ID)
	require.Equal(t, "أصل", got.Title)
}

func TestUpdateTopicMergesPatch(t *testing.T) {
	s := newTestStore(t)
	created := s.AddTopic(model.Topic{Title: "قديم", Details: "تفاصيل", Status: model.StatusPending})

	s.UpdateTopic(created.ID, model.TopicPatch{Title: strPtr("جديد")})
	got, _ := s.TopicByID(created.ID)
	require.Equal(t, "جديد", got.Title)
	require.Equal(t, "تفاصيل", got.Details, "untouched fields survive")
	require.Equal(t, testToday(), got.LastUpdated)
}

func TestSetStatusEnforcesClosingDateInvariant(t *testing.T) {
	s := newTestStore(t)
	created := s.AddTopic(model.Topic{Title: "مهمة", Status: model.StatusPending})

	s.SetTopicStatus(created.ID, model.StatusClosed)
	got, _ := s.TopicByID(created.ID)
	require.Equal(t, model.StatusClosed, got.Status)
	require.Equal(t, testToday(), got.ClosingDate)

	// Reopening clears the closing date even though it was set.
	s.SetTopicStatus(created.ID, model.StatusOngoing)
	got, _ = s.TopicByID(created.ID)
	require.Equal(t, model.StatusOngoing, got.Status)
	require.Empty(t, got.ClosingDate)
}

func TestDeleteTopicCascadesFollowups(t *testing.T) {
	s := newTestStore(t)
	keep := s.AddTopic(model.Topic{Title: "باقية", Status: model.StatusPending})
	gone := s.AddTopic(model.Topic{Title: "محذوفة", Status: model.StatusPending})

	s.AddFollowup(model.Followup{TopicID: keep.ID, Date: testToday()})
	s.AddFollowup(model.Followup{TopicID: gone.ID, Date: testToday()})
	s.AddFollowup(model.Followup{TopicID: gone.ID, Date: testToday()})

	s.DeleteTopic(gone.ID)

	_, ok := s.TopicByID(gone.ID)
	require.False(t, ok)
	require.Empty(t, s.FollowupsByTopic(gone.ID))
	require.Len(t, s.FollowupsByTopic(keep.ID), 1)
}

func TestOverdueTopicsDerivedPredicate(t *testing.T) {
	s := newTestStore(t)

	mk := func(title, due string, st model.TopicStatus) model.Topic {
		return s.AddTopic(model.Topic{Title: title, DueDate: due, Status: st})
	}

	pastPending := mk("متأخرة فعليا", "2020-01-01", model.StatusPending)
	mk("مغلقة قديمة", "2020-01-01", model.StatusClosed)
	mk("ملغية قديمة", "2020-01-01", model.StatusCancelled)
	mk("مرحلة قديمة", "2020-01-01", model.StatusPhased)
	mk("متوقفة قديمة", "2020-01-01", model.StatusStalled)
	storedOverdue := mk("محددة متأخرة", "2999-01-01", model.StatusOverdue)
	mk("مستقبلية", "2999-01-01", model.StatusPending)

	var ids []int
	for _, o := range s.OverdueTopics() {
		ids = append(ids, o.ID)
	}
	require.ElementsMatch(t, []int{pastPending.ID, storedOverdue.ID}, ids)
}

func TestStatsCounts(t *testing.T) {
	s := newTestStore(t)
	s.AddTopic(model.Topic{Title: "أ", Status: model.StatusClosed, DueDate: "2999-01-01"})
	s.AddTopic(model.Topic{Title: "ب", Status: model.StatusPending, DueDate: "2999-01-01"})
	s.AddTopic(model.Topic{Title: "ج", Status: model.StatusOngoing, DueDate: "2999-01-01"})
	s.AddTopic(model.Topic{Title: "د", Status: model.StatusPending, DueDate: "2020-01-01"})

	st := s.Stats()
	require.Equal(t, 4, st.Total)
	require.Equal(t, 1, st.Completed)
	require.Equal(t, 3, st.Pending)
	require.Equal(t, 1, st.Overdue)
}

func TestManualStatusEditsAreUnrestricted(t *testing.T) {
	s := newTestStore(t)
	created := s.AddTopic(model.Topic{Title: "حرة", Status: model.StatusClosed})

	// No transition graph: any status is reachable from any other.
	s.UpdateTopic(created.ID, model.TopicPatch{Status: statusPtr(model.StatusPostponed)})
	got, _ := s.TopicByID(created.ID)
	require.Equal(t, model.StatusPostponed, got.Status)
}
