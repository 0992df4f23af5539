package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goaltrack/internal/model"
	"github.com/iliyamo/goaltrack/internal/store"
)

// UserHandler serves user management; mutations are admin-only, wired
// in the router.
type UserHandler struct {
	Store *store.Store
}

func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{Store: s}
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.Users()})
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	DeptID   int    `json:"deptId"`
	IsActive *bool  `json:"isActive"`
}

// Create handles POST /v1/users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	role := model.UserRole(req.Role)
	if req.Role == "" {
		role = model.RoleUser
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	u := h.Store.AddUser(model.User{
		Name:     name,
		Email:    req.Email,
		Role:     role,
		DeptID:   req.DeptID,
		IsActive: active,
	})
	return c.JSON(http.StatusCreated, u)
}

// Update handles PATCH /v1/users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, ok := h.Store.UserByID(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	var patch model.UserPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Store.UpdateUser(id, patch)
	updated, _ := h.Store.UserByID(id)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/users/:id. Deleting the root admin is a
// silent no-op, so the response is 204 either way.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	h.Store.DeleteUser(id)
	return c.NoContent(http.StatusNoContent)
}
