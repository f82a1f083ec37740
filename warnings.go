package docstruct

import (
	"fmt"
	"strings"
)

// WarningCode identifies the kind of a non-fatal conversion issue
type WarningCode int

const (
	// WarnDegraded means the source could not be decoded and an error
	// document was produced instead
	WarnDegraded WarningCode = iota + 1

	// WarnKindMismatch means the content does not look like the kind its
	// extension names
	WarnKindMismatch

	// WarnEmpty means the source produced no blocks
	WarnEmpty
)

// String returns a string representation of the warning code
func (c WarningCode) String() string {
	switch c {
	case WarnDegraded:
		return "degraded"
	case WarnKindMismatch:
		return "kind-mismatch"
	case WarnEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue found during conversion
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single line for logging
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// HasWarning reports whether any warning carries the given code
func HasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
