package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goaltrack/internal/store"
)

// SettingsHandler serves the Telegram token and the audit log views.
type SettingsHandler struct {
	Store *store.Store
}

func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{Store: s}
}

// TelegramToken handles GET /v1/settings/telegram-token.
func (h *SettingsHandler) TelegramToken(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"token": h.Store.TelegramToken()})
}

type tokenReq struct {
	Token string `json:"token"`
}

// SetTelegramToken handles PUT /v1/settings/telegram-token.
func (h *SettingsHandler) SetTelegramToken(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Store.SetTelegramToken(req.Token)
	return c.NoContent(http.StatusNoContent)
}

// Logs handles GET /v1/logs.
func (h *SettingsHandler) Logs(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.Logs()})
}

// ClearLogs handles DELETE /v1/logs.
func (h *SettingsHandler) ClearLogs(c echo.Context) error {
	h.Store.ClearLogs()
	return c.NoContent(http.StatusNoContent)
}
