package notion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NormalizeID validates a block, page, or database identifier before any
// network call. It accepts a dashed UUID, the bare 32-hex form Notion URLs
// use, or a full notion.so URL whose last path segment ends in one, and
// always returns the dashed form.
func NormalizeID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("id is required")
	}

	if strings.Contains(s, "://") {
		s = strings.TrimRight(s, "/")
		if i := strings.LastIndexByte(s, '/'); i >= 0 {
			s = s[i+1:]
		}
		if i := strings.IndexByte(s, '?'); i >= 0 {
			s = s[:i]
		}
		// Page URLs are "Title-<32 hex>"; keep the trailing id part.
		if i := strings.LastIndexByte(s, '-'); i >= 0 && len(s)-i-1 == 32 {
			s = s[i+1:]
		}
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid notion id %q: expected a UUID like 1d1debae43f7805aad97fd68225520f6 (the part after the page title in its URL)", raw)
	}
	return id.String(), nil
}
