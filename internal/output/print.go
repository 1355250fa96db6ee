package output

import (
	"encoding/json"
	"os"

	"github.com/fatih/color"
)

// UserError is a usage problem the user can fix; printed without the
// "Error:" framing reserved for unexpected failures.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

var (
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

func PrintError(err error) {
	if ue, ok := err.(*UserError); ok {
		_, _ = errorColor.Fprintln(os.Stderr, ue.Message)
		return
	}
	_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
}

func PrintWarning(msg string) {
	_, _ = warnColor.Fprintln(os.Stderr, "Warning: "+msg)
}

func PrintSuccess(msg string) {
	_, _ = successColor.Fprintln(os.Stdout, msg)
}

func PrintInfo(msg string) {
	_, _ = color.New(color.Faint).Fprintln(os.Stdout, msg)
}

func PrintJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
