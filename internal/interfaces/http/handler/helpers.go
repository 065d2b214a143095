package handler

import (
	"strings"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/shared"
)

const dateLayout = "2006-01-02"

// parseOptionalDate accepts YYYY-MM-DD or RFC 3339; empty means absent
func parseOptionalDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, shared.NewValidationError("invalid " + field + ": expected YYYY-MM-DD")
	}
	return &t, nil
}

// contentDisposition builds an attachment header with a quoted file name
func contentDisposition(fileName string) string {
	name := strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(fileName)
	return `attachment; filename="` + name + `"`
}
