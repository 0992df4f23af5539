package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goaltrack/internal/model"
	"github.com/iliyamo/goaltrack/internal/queue"
	"github.com/iliyamo/goaltrack/internal/store"
)

// TopicHandler serves topic CRUD, queries and the notification trigger.
// Publish is injectable so tests can capture events instead of talking
// to a broker.
type TopicHandler struct {
	Store   *store.Store
	Publish func(ctx context.Context, ev queue.TaskNotificationEvent) error
}

func NewTopicHandler(s *store.Store, publish func(context.Context, queue.TaskNotificationEvent) error) *TopicHandler {
	return &TopicHandler{Store: s, Publish: publish}
}

// List handles GET /v1/topics.
func (h *TopicHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.Topics()})
}

// Get handles GET /v1/topics/:id.
func (h *TopicHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, ok := h.Store.TopicByID(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "topic not found"})
	}
	return c.JSON(http.StatusOK, t)
}

type createTopicReq struct {
	Title          string `json:"title"`
	Type           string `json:"type"`
	AssignmentDate string `json:"assignmentDate"`
	Sender         string `json:"sender"`
	DeptID         int    `json:"deptId"`
	Department     string `json:"department"`
	Priority       string `json:"priority"`
	DueDate        string `json:"dueDate"`
	Details        string `json:"details"`
	Status         string `json:"status"`
}

// Create handles POST /v1/topics. A free-text department name may be
// supplied instead of deptId and is resolved (auto-creating the
// department if needed). Status defaults to pending.
func (h *TopicHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTopicReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	deptID := req.DeptID
	if deptID == 0 {
		deptID = h.Store.ResolveDepartment(req.Department)
	}
	status := model.TopicStatus(req.Status)
	if req.Status == "" {
		status = model.StatusPending
	} else if !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	priority := model.PriorityLevel(req.Priority)
	if req.Priority == "" {
		priority = model.PriorityNormal
	}

	t := h.Store.AddTopic(model.Topic{
		Title:          title,
		Type:           req.Type,
		AssignmentDate: req.AssignmentDate,
		Sender:         req.Sender,
		DeptID:         deptID,
		Priority:       priority,
		DueDate:        req.DueDate,
		Details:        req.Details,
		Status:         status,
		CreatedBy:      uid,
	})
	return c.JSON(http.StatusCreated, t)
}

// Update handles PATCH /v1/topics/:id with a partial patch.
func (h *TopicHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, ok := h.Store.TopicByID(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "topic not found"})
	}
	var patch model.TopicPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if patch.Status != nil && !model.ValidStatus(*patch.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	h.Store.UpdateTopic(id, patch)
	updated, _ := h.Store.TopicByID(id)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/topics/:id; followups cascade.
func (h *TopicHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, ok := h.Store.TopicByID(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "topic not found"})
	}
	h.Store.DeleteTopic(id)
	return c.NoContent(http.StatusNoContent)
}

type setStatusReq struct {
	Status string `json:"status"`
}

// SetStatus handles PUT /v1/topics/:id/status through the
// invariant-preserving setter.
func (h *TopicHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, ok := h.Store.TopicByID(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "topic not found"})
	}
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := model.TopicStatus(req.Status)
	if !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	h.Store.SetTopicStatus(id, status)
	updated, _ := h.Store.TopicByID(id)
	return c.JSON(http.StatusOK, updated)
}

// Overdue handles GET /v1/topics/overdue using the derived predicate.
func (h *TopicHandler) Overdue(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.OverdueTopics()})
}

// Stats handles GET /v1/stats.
func (h *TopicHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Stats())
}

type notifyReq struct {
	Kind string `json:"kind"` // "new" (default) or "reminder"
}

// Notify handles POST /v1/topics/:id/notify: it queues a notification
// event for the topic's department chat. Delivery happens in the
// background consumer; the core never waits on it.
func (h *TopicHandler) Notify(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, ok := h.Store.TopicByID(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "topic not found"})
	}
	dept, ok := h.Store.DepartmentByID(t.DeptID)
	if !ok || dept.TelegramChatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "department has no telegram chat"})
	}

	var req notifyReq
	_ = c.Bind(&req)
	kind := req.Kind
	if kind != "reminder" {
		kind = "new"
	}

	ev := queue.TaskNotificationEvent{
		TopicID:  t.ID,
		Title:    t.Title,
		Type:     t.Type,
		Priority: string(t.Priority),
		Sender:   t.Sender,
		DueDate:  t.DueDate,
		Details:  t.Details,
		ChatID:   dept.TelegramChatID,
		Kind:     kind,
	}
	if err := h.Publish(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "queue unavailable"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{"queued": true})
}
