package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goaltrack/internal/config"
	"github.com/iliyamo/goaltrack/internal/importer"
	"github.com/iliyamo/goaltrack/internal/store"
	"github.com/iliyamo/goaltrack/internal/utils"
)

// SystemHandler serves backup, restore, bulk import and factory reset.
type SystemHandler struct {
	Cfg   config.Config
	Store *store.Store
}

func NewSystemHandler(cfg config.Config, s *store.Store) *SystemHandler {
	return &SystemHandler{Cfg: cfg, Store: s}
}

// Backup handles GET /v1/backup and returns the full snapshot as a
// downloadable JSON document.
func (h *SystemHandler) Backup(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="goaltrack-backup.json"`)
	return c.JSON(http.StatusOK, h.Store.ExportSnapshot())
}

// Restore handles POST /v1/restore with a backup payload. The store
// validates and applies it all-or-nothing.
func (h *SystemHandler) Restore(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}
	if !h.Store.ImportSnapshot(raw) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid backup file"})
	}
	return c.JSON(http.StatusOK, echo.Map{"restored": true})
}

type resetReq struct {
	Password string `json:"password"`
}

// Reset handles POST /v1/reset. It is guarded by an operator password
// verified against the bcrypt hash from configuration; with no hash
// configured the endpoint is disabled.
func (h *SystemHandler) Reset(c echo.Context) error {
	if h.Cfg.AdminResetHash == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "factory reset disabled"})
	}
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !utils.VerifyPassword(h.Cfg.AdminResetHash, req.Password) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "wrong password"})
	}
	h.Store.ResetToFactory()
	return c.JSON(http.StatusOK, echo.Map{"reset": true})
}

// Import handles POST /v1/import with an array of already-parsed
// spreadsheet rows. Rows are mapped through the bilingual column
// contract, unknown departments are auto-created, and ids already in
// the store are skipped. The returned total is the topic count after
// the import, not the number added.
func (h *SystemHandler) Import(c echo.Context) error {
	var rows []map[string]any
	if err := c.Bind(&rows); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no rows"})
	}
	topics := importer.MapRows(rows, h.Store)
	total := h.Store.ImportTopics(topics)
	return c.JSON(http.StatusOK, echo.Map{"total": total})
}
