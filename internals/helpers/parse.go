// file: internals/helpers/parse.go
package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam membaca path param dan parse jadi uuid.UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

// ParseUUIDQuery: query param opsional; (uuid.Nil, false) kalau kosong/invalid.
func ParseUUIDQuery(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ParseDate menerima RFC3339 atau YYYY-MM-DD.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
