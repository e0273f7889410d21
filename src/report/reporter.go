// Package report renders a scan report as the pretty-printed JSON
// document consumed by CI pipelines and picks the process exit code.
package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/scan"
)

const (
	ExitClean    = 0
	ExitProblems = 1

	indent = "    "
)

// ExitCode returns ExitClean only when the report holds no errors.
func ExitCode(r *scan.Report) int {
	if r.Totals.Errors == 0 {
		return ExitClean
	}
	return ExitProblems
}

// Emit serializes r and returns it with the matching exit code.
func Emit(r *scan.Report) ([]byte, int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(r); err != nil {
		return nil, ExitProblems, errors.Wrap(err, "encoding report")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), ExitCode(r), nil
}

// Write emits r to w followed by a newline and returns the exit code.
func Write(w io.Writer, r *scan.Report) (int, error) {
	out, code, err := Emit(r)
	if err != nil {
		return code, err
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return ExitProblems, errors.Wrap(err, "writing report")
	}
	return code, nil
}
