package sanitizer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/policy"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;",
	)
)

// attributeRule reports whether an attribute may stay on an allowed
// element. Rules run in order and the first rejection wins.
type attributeRule func(allow *policy.Allowlist, name, value string) bool

var attributeRules = []attributeRule{
	allowedAttribute,
	safeLink,
	localReferencesOnly,
}

// SVGEngine removes everything an Allowlist does not permit from SVG
// documents, along with script-capable links and remote references.
type SVGEngine struct {
	allow *policy.Allowlist
}

// NewSVGEngine creates an engine enforcing allow. Remote references are
// always stripped.
func NewSVGEngine(allow *policy.Allowlist) *SVGEngine {
	return &SVGEngine{allow: allow}
}

func (*SVGEngine) Name() string { return "svg" }

// Sanitize implements Engine.
func (e *SVGEngine) Sanitize(doc []byte) Result {
	w := &walker{allow: e.allow, removedAt: -1}
	if err := w.walk(doc); err != nil {
		return Result{Outcome: OutcomeFailed, Issues: w.issues, Err: err}
	}
	if len(w.issues) == 0 {
		return Result{Outcome: OutcomeClean, Content: w.out.Bytes()}
	}
	return Result{Outcome: OutcomeIssues, Content: w.out.Bytes(), Issues: w.issues}
}

// frame is an element that has been opened but not yet closed.
type frame struct {
	name string
	id   string
	kept bool
}

// walker holds the state of one Sanitize call.
type walker struct {
	allow     *policy.Allowlist
	out       bytes.Buffer
	issues    []Issue
	open      []frame
	removedAt int // index into open of the removed subtree's root, -1 if none
	sawRoot   bool

	// Text of the open <style> element, checked as a whole when it closes.
	style     strings.Builder
	styleLine int
}

func (w *walker) walk(doc []byte) error {
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel

	for {
		// The position before reading is where the next token starts.
		line, _ := d.InputPos()

		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "parsing svg")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := w.start(t, line); err != nil {
				return err
			}
		case xml.EndElement:
			if err := w.end(t); err != nil {
				return err
			}
		case xml.CharData:
			if err := w.text(t, line); err != nil {
				return err
			}
		case xml.ProcInst:
			w.procInst(t, line)
		default:
			// Comments and DOCTYPE declarations are dropped.
		}
	}

	if n := len(w.open); n > 0 {
		return errors.Newf("unexpected end of document inside <%s>", w.open[n-1].name)
	}
	if !w.sawRoot {
		return errors.New("document has no root element")
	}
	return nil
}

func (w *walker) start(t xml.StartElement, line int) error {
	name := qualifiedName(t.Name)
	root := len(w.open) == 0
	if root {
		if w.sawRoot {
			return errors.Newf("second root element <%s>", name)
		}
		w.sawRoot = true
	}

	w.open = append(w.open, frame{name: name, id: attrValue(t.Attr, "id")})
	if w.removedAt >= 0 {
		return nil
	}

	if reason := w.rejectElement(t, name); reason != "" {
		w.report(reason, line)
		if root {
			return errors.Newf("root element <%s> is not allowed", name)
		}
		w.removedAt = len(w.open) - 1
		return nil
	}

	w.open[len(w.open)-1].kept = true
	w.writeStart(name, w.filterAttrs(name, t.Attr, line))
	return nil
}

func (w *walker) end(t xml.EndElement) error {
	name := qualifiedName(t.Name)
	n := len(w.open)
	if n == 0 || w.open[n-1].name != name {
		return errors.Newf("unexpected end element </%s>", name)
	}

	f := w.open[n-1]
	w.open = w.open[:n-1]
	if f.kept && isStyle(name) {
		w.flushStyle()
	}
	if f.kept {
		w.out.WriteString("</")
		w.out.WriteString(name)
		w.out.WriteByte('>')
	}
	if w.removedAt == n-1 {
		w.removedAt = -1
	}
	return nil
}

func (w *walker) text(t xml.CharData, line int) error {
	if len(w.open) == 0 {
		if strings.TrimFunc(string(t), isOutsideSpace) != "" {
			return errors.New("text outside the root element")
		}
		return nil
	}
	if w.removedAt >= 0 {
		return nil
	}
	if isStyle(w.open[len(w.open)-1].name) {
		if w.style.Len() == 0 {
			w.styleLine = line
		}
		w.style.Write(t)
		return nil
	}
	textEscaper.WriteString(&w.out, string(t))
	return nil
}

// flushStyle writes the buffered style sheet, or drops it when it would
// fetch anything.
func (w *walker) flushStyle() {
	sheet := w.style.String()
	w.style.Reset()
	if sheet == "" {
		return
	}
	if styleFetchesRemote(sheet) {
		w.report("Suspicious content in tag 'style'", w.styleLine)
		return
	}
	textEscaper.WriteString(&w.out, sheet)
}

func (w *walker) procInst(t xml.ProcInst, line int) {
	if t.Target == "xml" {
		// The decoder has already converted the input to UTF-8.
		if w.out.Len() == 0 {
			w.out.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
		}
		return
	}
	if w.removedAt >= 0 {
		return
	}
	w.report(fmt.Sprintf("Suspicious processing instruction '%s'", t.Target), line)
}

// rejectElement returns the issue message for an element that must be
// removed, or "" when it may stay.
func (w *walker) rejectElement(t xml.StartElement, name string) string {
	if policy.DeniesTag(name) || !w.allow.AllowsTag(name) {
		return fmt.Sprintf("Suspicious tag '%s'", name)
	}
	// A style sheet is plain text; markup inside it is never kept.
	if n := len(w.open); n > 1 && isStyle(w.open[n-2].name) {
		return fmt.Sprintf("Suspicious tag '%s'", name)
	}
	if strings.EqualFold(name, "use") && w.useTargetsAncestor(t.Attr) {
		return "Invalid 'use' tag"
	}
	return ""
}

// useTargetsAncestor reports whether a <use> references itself or one of
// its ancestors, which would make the renderer recurse.
func (w *walker) useTargetsAncestor(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if !isHrefAttribute(qualifiedName(a.Name)) {
			continue
		}
		ref := strings.TrimSpace(a.Value)
		if !strings.HasPrefix(ref, "#") || len(ref) == 1 {
			continue
		}
		for _, f := range w.open {
			if f.id == ref[1:] {
				return true
			}
		}
	}
	return false
}

func (w *walker) filterAttrs(element string, attrs []xml.Attr, line int) []xml.Attr {
	animatesLink := isAnimation(element) && isHrefAttribute(strings.TrimSpace(attrValue(attrs, "attributeName")))

	kept := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		name := qualifiedName(a.Name)
		if !w.keepAttribute(name, a.Value) || (animatesLink && !safeAnimatedLink(name, a.Value)) {
			w.report(fmt.Sprintf("Suspicious attribute '%s'", name), line)
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func (w *walker) keepAttribute(name, value string) bool {
	// Namespace declarations name vocabularies; they never fetch anything.
	if name == "xmlns" || strings.HasPrefix(name, "xmlns:") {
		return true
	}
	for _, rule := range attributeRules {
		if !rule(w.allow, name, value) {
			return false
		}
	}
	return true
}

func (w *walker) writeStart(name string, attrs []xml.Attr) {
	w.out.WriteByte('<')
	w.out.WriteString(name)
	for _, a := range attrs {
		w.out.WriteByte(' ')
		w.out.WriteString(qualifiedName(a.Name))
		w.out.WriteString(`="`)
		attrEscaper.WriteString(&w.out, a.Value)
		w.out.WriteByte('"')
	}
	w.out.WriteByte('>')
}

func (w *walker) report(message string, line int) {
	w.issues = append(w.issues, NewIssue(message, line))
}

func allowedAttribute(allow *policy.Allowlist, name, _ string) bool {
	return !policy.DeniesAttribute(name) && allow.AllowsAttribute(name)
}

func safeLink(_ *policy.Allowlist, name, value string) bool {
	if !isHrefAttribute(name) {
		return true
	}
	return isSafeHref(value) && !isRemoteURL(value)
}

// safeAnimatedLink checks the values an animation element writes into an
// href. Every value must pass the same checks as a literal href.
func safeAnimatedLink(name, value string) bool {
	switch strings.ToLower(name) {
	case "from", "to", "by", "values":
	default:
		return true
	}
	for _, v := range strings.Split(value, ";") {
		if !isSafeHref(v) || isRemoteURL(v) {
			return false
		}
	}
	return true
}

func localReferencesOnly(_ *policy.Allowlist, _, value string) bool {
	return !hasRemoteReference(value)
}

func isAnimation(element string) bool {
	switch strings.ToLower(element) {
	case "animate", "animatecolor", "animatemotion", "animatetransform", "set":
		return true
	}
	return false
}

func isStyle(element string) bool { return strings.EqualFold(element, "style") }

// isOutsideSpace matches what may surround the root element.
func isOutsideSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\ufeff'
}

// qualifiedName renders a raw token name the way it was written, with
// its namespace prefix.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if strings.EqualFold(qualifiedName(a.Name), name) {
			return a.Value
		}
	}
	return ""
}
