package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for warning diagnostics.
	SevWarning Severity = iota
	// SevError is for compile errors.
	SevError
	// SevFatal is for errors the compiler cannot recover from.
	SevFatal
)

// String returns the severity keyword exactly as the toolchain prints it.
func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal error"
	}
	return "unknown"
}

// IsError reports whether the severity is error-class.
// Fatal errors are error-class; there is no separate class for them.
func (s Severity) IsError() bool {
	return s >= SevError
}

// ParseSeverity maps a severity keyword to its Severity.
// Keywords are case-sensitive and exact: "warning", "error", "fatal error".
func ParseSeverity(keyword string) (Severity, bool) {
	switch keyword {
	case "warning":
		return SevWarning, true
	case "error":
		return SevError, true
	case "fatal error":
		return SevFatal, true
	}
	return 0, false
}
