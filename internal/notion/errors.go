package notion

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned before any network activity when no API token
// is available from the request or configuration.
var ErrMissingToken = errors.New("notion API token is required (set api.token in ~/.config/notion-ingest/config.json or NOTION_API_TOKEN)")

// NotFoundError reports that the remote API rejected an identifier as
// invalid or inaccessible. The message carries the API's original error text.
type NotFoundError struct {
	ID  string
	Msg string
}

func (e *NotFoundError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("notion object %s not found", e.ID)
	}
	return fmt.Sprintf("notion object %s not found: %s", e.ID, e.Msg)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
