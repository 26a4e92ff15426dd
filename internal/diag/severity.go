package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning marks a suggestion: the heuristic suspects a problem.
	SevWarning Severity = iota + 1
	// SevError marks a structural violation or a rejected buffer.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lowercase form used in problem lists ("error", "warning").
func (s Severity) Label() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
