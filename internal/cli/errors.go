package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacksmith/menu/internal/catalog"
	"github.com/jacksmith/menu/internal/ops"
)

// FormatError renders err for the terminal with an "error: " prefix.
// Validation failures are listed one field per line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var verr *ops.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 1 {
		var b strings.Builder
		b.WriteString(Red("error:") + " invalid product")
		for _, f := range verr.Fields {
			fmt.Fprintf(&b, "\n  %s: %s", f.Field, f.Message)
		}
		return b.String()
	}
	return Red("error:") + " " + err.Error()
}

// FormatWarning renders a non-fatal problem, such as a failed save whose
// in-memory effect still stands.
func FormatWarning(err error) string {
	if err == nil {
		return ""
	}
	return Yellow("warning:") + " " + err.Error()
}

// IsNotFound reports whether err means the referenced product does not
// exist. Commands treat that as a benign no-op.
func IsNotFound(err error) bool {
	var nf *catalog.NotFoundError
	return errors.As(err, &nf)
}

// NotFoundMessage is printed when a product reference matches nothing.
func NotFoundMessage(ref string) string {
	return fmt.Sprintf("%s not found, nothing to do", ref)
}
