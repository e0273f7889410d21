package scan

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/sanitizer"
)

// MessageNoFiles is reported when a run is given no paths.
const MessageNoFiles = "No files to scan specified"

// Totals summarises a run. Warnings and Fixable are reserved and always
// zero.
type Totals struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Fixable  int `json:"fixable"`
}

// FileResult is the outcome of scanning one path.
type FileResult struct {
	Path     string            `json:"-"`
	Errors   int               `json:"errors"`
	Messages []sanitizer.Issue `json:"messages"`
}

// Report is the aggregated result of a run.
type Report struct {
	Totals   Totals     `json:"totals"`
	Files    *Files     `json:"files"`
	Messages [][]string `json:"messages,omitempty"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Files: NewFiles()}
}

// Files maps paths to results while remembering the order in which
// paths were first recorded.
type Files struct {
	order   []string
	entries map[string]FileResult
}

// NewFiles returns an empty Files.
func NewFiles() *Files {
	return &Files{entries: make(map[string]FileResult)}
}

// Set records fr under its path. A path seen before keeps its position
// and takes the new value.
func (f *Files) Set(fr FileResult) {
	if _, ok := f.entries[fr.Path]; !ok {
		f.order = append(f.order, fr.Path)
	}
	f.entries[fr.Path] = fr
}

// Get returns the result recorded for path.
func (f *Files) Get(path string) (FileResult, bool) {
	fr, ok := f.entries[path]
	return fr, ok
}

// Paths returns the recorded paths in insertion order.
func (f *Files) Paths() []string {
	return append([]string(nil), f.order...)
}

// Len returns the number of distinct paths.
func (f *Files) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// MarshalJSON encodes the files as an object keyed by path, in insertion
// order. JSON text is UTF-8, so invalid bytes in a path are written as
// U+FFFD and such a path does not decode back to the original.
func (f *Files) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if f != nil {
		for i, path := range f.order {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := marshal(path)
			if err != nil {
				return nil, err
			}
			val, err := marshal(f.entries[path])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by path, keeping the document
// order.
func (f *Files) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "decoding files")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Newf("decoding files: expected object, got %v", tok)
	}

	*f = *NewFiles()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "decoding files")
		}
		path, ok := tok.(string)
		if !ok {
			return errors.Newf("decoding files: expected path, got %v", tok)
		}
		var fr FileResult
		if err := dec.Decode(&fr); err != nil {
			return errors.Wrapf(err, "decoding file %q", path)
		}
		fr.Path = path
		if fr.Messages == nil {
			fr.Messages = []sanitizer.Issue{}
		}
		f.Set(fr)
	}
	return nil
}

// marshal encodes v without escaping HTML characters.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
