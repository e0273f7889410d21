package sanitizer

// Outcome is the overall result of sanitizing one document.
type Outcome int

const (
	// OutcomeClean means the document parsed and nothing was removed.
	OutcomeClean Outcome = iota
	// OutcomeIssues means the document parsed and at least one construct
	// was removed or flagged.
	OutcomeIssues
	// OutcomeFailed means the document could not be sanitized at all.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeIssues:
		return "issues"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Issue records a single construct the engine removed or flagged.
// Line is nil when the source position is unknown.
type Issue struct {
	Message string `json:"message"`
	Line    *int   `json:"line"`
}

// NewIssue creates an Issue at the given source line.
func NewIssue(message string, line int) Issue {
	return Issue{Message: message, Line: &line}
}

// Result is the outcome of a single Sanitize call.
type Result struct {
	Outcome Outcome
	Content []byte  // sanitized document; nil when Outcome is OutcomeFailed
	Issues  []Issue // engine order, populated regardless of Outcome
	Err     error   // cause of an OutcomeFailed result
}

// Failed reports whether the document could not be sanitized.
func (r Result) Failed() bool { return r.Outcome == OutcomeFailed }
