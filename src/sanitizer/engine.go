// Package sanitizer strips unsafe constructs from SVG documents and
// reports every construct it removed.
package sanitizer

// Engine sanitizes a complete document held in memory.
// Implementations perform no I/O and must be safe for concurrent use.
type Engine interface {
	// Name returns a human-readable identifier for logging.
	Name() string

	// Sanitize cleans doc and reports what it removed. Issues are
	// available whatever the Outcome.
	Sanitize(doc []byte) Result
}
