// Package handler contains the HTTP glue over the data store. Handlers
// bind requests, call the store and translate absent results into 404s;
// no rules logic lives here.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user id placed in context by the
// JWT middleware. Numeric JWT claims decode as float64.
func getUserID(c echo.Context) (int, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return int(v), nil
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("no user id in context")
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}
