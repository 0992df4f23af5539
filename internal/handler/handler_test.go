package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/goaltrack/internal/blob"
	"github.com/iliyamo/goaltrack/internal/config"
	"github.com/iliyamo/goaltrack/internal/model"
	"github.com/iliyamo/goaltrack/internal/queue"
	"github.com/iliyamo/goaltrack/internal/store"
)

func testCfg() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTTLMin: 5}
}

func newCtx(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(1)) // what JWTAuth injects for the admin
	c.Set("role", string(model.RoleAdmin))
	return c, rec
}

func TestLoginIssuesTokenForKnownUser(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())
	h := NewAuthHandler(testCfg(), s)

	c, rec := newCtx(e, http.MethodPost, "/v1/auth/login", `{"user_id":1}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token   string    `json:"token"`
		Expires time.Time `json:"expires"`
		User    struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "مدير النظام", resp.User.Name)
	require.True(t, s.IsAuthenticated())
}

func TestLoginUnknownUserIs401(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())
	h := NewAuthHandler(testCfg(), s)

	c, rec := newCtx(e, http.MethodPost, "/v1/auth/login", `{"user_id":999}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, s.IsAuthenticated())
}

func TestCreateFollowupClosesTopicOverHTTP(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())
	topics := NewTopicHandler(s, nil)
	followups := NewFollowupHandler(s)

	c, rec := newCtx(e, http.MethodPost, "/v1/topics",
		`{"title":"مهمة جديدة","dueDate":"2025-01-01","department":"قسم التطوير"}`)
	require.NoError(t, topics.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Topic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, model.StatusPending, created.Status)
	require.Equal(t, 2, created.DeptID)
	require.Equal(t, 1, created.CreatedBy)

	body, _ := json.Marshal(map[string]any{
		"topicId":       created.ID,
		"progressLevel": "ممتاز",
		"resultText":    "تم الانتهاء من العمل",
	})
	c, rec = newCtx(e, http.MethodPost, "/v1/followups", string(body))
	require.NoError(t, followups.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	got, _ := s.TopicByID(created.ID)
	require.Equal(t, model.StatusClosed, got.Status)
	require.NotEmpty(t, got.ClosingDate)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())
	h := NewTopicHandler(s, nil)
	topic := s.AddTopic(model.Topic{Title: "مهمة", Status: model.StatusPending})

	c, rec := newCtx(e, http.MethodPut, "/v1/topics/:id/status", `{"status":"حالة خاطئة"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(topic.ID))
	require.NoError(t, h.SetStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotifyPublishesQueueEvent(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())

	var published queue.TaskNotificationEvent
	h := NewTopicHandler(s, func(ctx context.Context, ev queue.TaskNotificationEvent) error {
		published = ev
		return nil
	})

	chat := "-100777"
	s.UpdateDepartment(2, model.DepartmentPatch{TelegramChatID: &chat})
	topic := s.AddTopic(model.Topic{Title: "مهمة عاجلة", DeptID: 2, Priority: model.PriorityUrgent, Status: model.StatusPending})

	c, rec := newCtx(e, http.MethodPost, "/v1/topics/:id/notify", `{"kind":"reminder"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(topic.ID))
	require.NoError(t, h.Notify(c))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, topic.ID, published.TopicID)
	require.Equal(t, chat, published.ChatID)
	require.Equal(t, "reminder", published.Kind)
}

func TestNotifyWithoutChatIs400(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())
	h := NewTopicHandler(s, nil)
	topic := s.AddTopic(model.Topic{Title: "بلا قناة", DeptID: 1, Status: model.StatusPending})

	c, rec := newCtx(e, http.MethodPost, "/v1/topics/:id/notify", "")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(topic.ID))
	require.NoError(t, h.Notify(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())
	h := NewSystemHandler(testCfg(), s)

	c, rec := newCtx(e, http.MethodPost, "/v1/restore", `{"users":[]}`)
	require.NoError(t, h.Restore(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportMapsRowsAndReturnsTotal(t *testing.T) {
	e := echo.New()
	s := store.New(blob.NewMemory())
	h := NewSystemHandler(testCfg(), s)

	c, rec := newCtx(e, http.MethodPost, "/v1/import",
		`[{"TopicID":5,"Title":"مستوردة","Responsible":"فريق الأمن"},{"TopicID":5,"Title":"مكررة داخل الدفعة"}]`)
	require.NoError(t, h.Import(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total, "batch-internal duplicates are not deduplicated")
	require.Len(t, s.Departments(), 5, "unknown department was auto-created")
}
