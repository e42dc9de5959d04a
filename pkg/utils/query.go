package utils

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

const DateLayout = "2006-01-02"

// ParseDateParam reads a YYYY-MM-DD query parameter in loc. ok is false when absent.
func ParseDateParam(c echo.Context, name string, loc *time.Location) (t time.Time, ok bool, err error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err = time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parâmetro %s inválido: %w", name, err)
	}
	return t, true, nil
}
