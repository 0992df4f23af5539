package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goaltrack/internal/config"
	"github.com/iliyamo/goaltrack/internal/store"
	"github.com/iliyamo/goaltrack/internal/utils"
)

// AuthHandler bundles dependencies for session endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Store *store.Store
}

func NewAuthHandler(cfg config.Config, s *store.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Store: s}
}

type loginReq struct {
	UserID int `json:"user_id"`
}

type userPart struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	DeptID int    `json:"deptId,omitempty"`
}

type loginResp struct {
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// LoginUsers lists the accounts offered on the login screen, with the
// department name resolved for display.
func (h *AuthHandler) LoginUsers(c echo.Context) error {
	type item struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		DeptName string `json:"deptName,omitempty"`
	}
	var out []item
	for _, u := range h.Store.Users() {
		it := item{ID: u.ID, Name: u.Name}
		if d, ok := h.Store.DepartmentByID(u.DeptID); ok {
			it.DeptName = d.Name
		}
		out = append(out, it)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Login establishes the store session for an existing user and returns
// an access token for the API client. Unknown ids get a 401 with no
// state change.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !h.Store.Login(req.UserID) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
	}
	u, _ := h.Store.UserByID(req.UserID)

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, loginResp{
		User:    userPart{ID: u.ID, Name: u.Name, Role: string(u.Role), DeptID: u.DeptID},
		Token:   access.Token,
		Expires: access.Exp,
	})
}

// Logout clears the store session.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Store.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current session user (or the read-time fallback).
func (h *AuthHandler) Me(c echo.Context) error {
	u := h.Store.CurrentUser()
	return c.JSON(http.StatusOK, echo.Map{
		"user":          userPart{ID: u.ID, Name: u.Name, Role: string(u.Role), DeptID: u.DeptID},
		"authenticated": h.Store.IsAuthenticated(),
	})
}
