package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/goaltrack/internal/blob"
	"github.com/iliyamo/goaltrack/internal/model"
)

func TestLoginKnownAndUnknown(t *testing.T) {
	s := newTestStore(t)

	require.False(t, s.Login(999), "unknown id fails with no state change")
	require.False(t, s.IsAuthenticated())

	require.True(t, s.Login(1))
	require.True(t, s.IsAuthenticated())
	require.Equal(t, 1, s.CurrentUser().ID)

	s.Logout()
	require.False(t, s.IsAuthenticated())
}

func TestCurrentUserFallsBackToFirstUser(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, "مدير النظام", s.CurrentUser().Name, "no session falls back to the first user")
}

func TestSessionSurvivesRestart(t *testing.T) {
	mem := blob.NewMemory()
	s1 := New(mem)
	require.True(t, s1.Login(1))

	s2 := New(mem)
	require.True(t, s2.IsAuthenticated(), "session pointer reloads from the blob store")
	require.Equal(t, 1, s2.CurrentUser().ID)
}

func TestDeleteRootAdminIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.DeleteUser(1)
	_, ok := s.UserByID(1)
	require.True(t, ok)
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)

	u := s.AddUser(model.User{Name: "سعاد", Email: "suad@company.com", Role: model.RoleManager, DeptID: 2, IsActive: true})
	require.NotEqual(t, 0, len(s.Users()))

	newName := "سعاد المحدثة"
	s.UpdateUser(u.ID, model.UserPatch{Name: &newName})
	got, ok := s.UserByID(u.ID)
	require.True(t, ok)
	require.Equal(t, newName, got.Name)
	require.Equal(t, model.RoleManager, got.Role)

	s.DeleteUser(u.ID)
	_, ok = s.UserByID(u.ID)
	require.False(t, ok)
}

func TestAuditActorStamping(t *testing.T) {
	s := newTestStore(t)

	s.Log("تجربة", "قبل الدخول")
	logs := s.Logs()
	require.Equal(t, "System", logs[0].UserName, "no session logs as System")
	require.Zero(t, logs[0].UserID)

	require.True(t, s.Login(1))
	s.Log("تجربة", "بعد الدخول")
	logs = s.Logs()
	require.Equal(t, "مدير النظام", logs[0].UserName)
	require.Equal(t, 1, logs[0].UserID)
}

func TestAuditLogCap(t *testing.T) {
	s := newTestStore(t)

	s.Log("حدث", "الأقدم")
	for i := 0; i < maxLogEntries-1; i++ {
		s.Log("حدث", "حشو")
	}
	s.Log("حدث", "الأحدث")

	logs := s.Logs()
	require.Len(t, logs, maxLogEntries, "the entry past the cap evicts one")
	require.Equal(t, "الأحدث", logs[0].Details)
	for _, entry := range logs {
		require.NotEqual(t, "الأقدم", entry.Details, "the oldest entry is the one evicted")
	}
}
