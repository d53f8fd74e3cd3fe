package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64. JWT numeric claims arrive as float64, so a
// type switch covers the representations we may see.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// pageParams reads the optional ?page and ?page_size query parameters.
// Zero means "unset" and leaves paging to the caller's defaults.
func pageParams(c echo.Context) (page, pageSize int) {
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		pageSize = n
	}
	return page, pageSize
}
