package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goaltrack/internal/model"
	"github.com/iliyamo/goaltrack/internal/store"
)

// FollowupHandler serves followup queries and the check-in endpoint
// that drives the status engine.
type FollowupHandler struct {
	Store *store.Store
}

func NewFollowupHandler(s *store.Store) *FollowupHandler {
	return &FollowupHandler{Store: s}
}

// List handles GET /v1/followups with optional topic_id and date
// filters (date feeds the daily report view).
func (h *FollowupHandler) List(c echo.Context) error {
	if raw := c.QueryParam("topic_id"); raw != "" {
		topicID, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid topic_id"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": h.Store.FollowupsByTopic(topicID)})
	}
	if date := c.QueryParam("date"); date != "" {
		return c.JSON(http.StatusOK, echo.Map{"items": h.Store.FollowupsByDate(date)})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.Followups()})
}

type createFollowupReq struct {
	TopicID       int    `json:"topicId"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Notes         string `json:"notes"`
	ProgressLevel string `json:"progressLevel"`
	ResultText    string `json:"resultText"`
}

// Create handles POST /v1/followups. The store runs the auto-transition
// engine against the parent topic as a side effect; a followup against
// a vanished topic is still recorded.
func (h *FollowupHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createFollowupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.TopicID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "topicId is required"})
	}
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	f := h.Store.AddFollowup(model.Followup{
		TopicID:       req.TopicID,
		Date:          date,
		Type:          req.Type,
		Notes:         req.Notes,
		ProgressLevel: req.ProgressLevel,
		EvaluatorID:   uid,
		ResultText:    req.ResultText,
	})
	return c.JSON(http.StatusCreated, f)
}
