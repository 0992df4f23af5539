package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goaltrack/internal/model"
	"github.com/iliyamo/goaltrack/internal/store"
)

// DepartmentHandler serves the department list, updates and the
// find-or-create resolver.
type DepartmentHandler struct {
	Store *store.Store
}

func NewDepartmentHandler(s *store.Store) *DepartmentHandler {
	return &DepartmentHandler{Store: s}
}

// List handles GET /v1/departments.
func (h *DepartmentHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.Departments()})
}

// Update handles PATCH /v1/departments/:id (email and chat id edits
// from the settings screen, mostly).
func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, ok := h.Store.DepartmentByID(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
	}
	var patch model.DepartmentPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Store.UpdateDepartment(id, patch)
	updated, _ := h.Store.DepartmentByID(id)
	return c.JSON(http.StatusOK, updated)
}

type resolveReq struct {
	Name string `json:"name"`
}

// Resolve handles POST /v1/departments/resolve: free text in, id out,
// creating the department when the name is new. It never fails.
func (h *DepartmentHandler) Resolve(c echo.Context) error {
	var req resolveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deptId": h.Store.ResolveDepartment(req.Name)})
}
