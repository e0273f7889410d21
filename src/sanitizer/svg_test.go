package sanitizer

import (
	"strings"
	"testing"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/policy"
)

func newEngine() *SVGEngine {
	return NewSVGEngine(policy.Default())
}

func messages(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Message)
	}
	return out
}

func TestSVGEngine_Clean(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 10 10">
  <defs><linearGradient id="g"><stop offset="0" stop-color="red"/></linearGradient></defs>
  <rect x="0" y="0" width="10" height="10" fill="url(#g)"/>
  <use xlink:href="#g"/>
</svg>`

	res := newEngine().Sanitize([]byte(doc))
	if res.Outcome != OutcomeClean {
		t.Fatalf("outcome = %v, want clean (issues: %v, err: %v)", res.Outcome, messages(res.Issues), res.Err)
	}
	if len(res.Issues) != 0 {
		t.Errorf("issues = %v, want none", messages(res.Issues))
	}
	if !strings.Contains(string(res.Content), `fill="url(#g)"`) {
		t.Errorf("content lost local reference: %s", res.Content)
	}
}

func TestSVGEngine_ExtensionTagsAllowed(t *testing.T) {
	doc := `<svg><font-face units-per-em="1000"/><missing-glyph horiz-adv-x="10"/><animate from="0" to="1"/></svg>`
	res := newEngine().Sanitize([]byte(doc))
	if res.Outcome != OutcomeClean {
		t.Errorf("outcome = %v, want clean (issues: %v)", res.Outcome, messages(res.Issues))
	}
}

func TestSVGEngine_ScriptRemoved(t *testing.T) {
	doc := "<svg xmlns=\"http://www.w3.org/2000/svg\">\n<script>alert(1)</script>\n</svg>"
	res := newEngine().Sanitize([]byte(doc))

	if res.Outcome != OutcomeIssues {
		t.Fatalf("outcome = %v, want issues", res.Outcome)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("issues = %v, want 1", messages(res.Issues))
	}
	if res.Issues[0].Message != "Suspicious tag 'script'" {
		t.Errorf("message = %q", res.Issues[0].Message)
	}
	if res.Issues[0].Line == nil || *res.Issues[0].Line != 2 {
		t.Errorf("line = %v, want 2", res.Issues[0].Line)
	}
	if strings.Contains(string(res.Content), "alert") {
		t.Errorf("script content survived: %s", res.Content)
	}
}

func TestSVGEngine_IssuesInDocumentOrder(t *testing.T) {
	doc := "<svg>\n" +
		"<rect onclick=\"x()\" width=\"1\"/>\n" +
		"<a href=\"javascript:alert(1)\"><text>hi</text></a>\n" +
		"<image xlink:href=\"https://evil.example/track.png\"/>\n" +
		"<circle r=\"1\" fill=\"url(http://evil.example/p.svg#a)\"/>\n" +
		"</svg>"

	res := newEngine().Sanitize([]byte(doc))
	want := []string{
		"Suspicious attribute 'onclick'",
		"Suspicious attribute 'href'",
		"Suspicious attribute 'xlink:href'",
		"Suspicious attribute 'fill'",
	}
	got := messages(res.Issues)
	if len(got) != len(want) {
		t.Fatalf("issues = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("issue[%d] = %q, want %q", i, got[i], want[i])
		}
		if line := res.Issues[i].Line; line == nil || *line != i+2 {
			t.Errorf("issue[%d] line = %v, want %d", i, line, i+2)
		}
	}
	if res.Outcome != OutcomeIssues {
		t.Errorf("outcome = %v, want issues", res.Outcome)
	}
	if strings.Contains(string(res.Content), "evil.example") {
		t.Errorf("remote reference survived: %s", res.Content)
	}
}

func TestSVGEngine_DeniedConstructsSurviveAllowlistExtension(t *testing.T) {
	allow := policy.Default().Extend([]string{"script", "foreignObject"}, []string{"onload"})
	e := NewSVGEngine(allow)

	res := e.Sanitize([]byte(`<svg onload="x()"><script/><foreignObject/></svg>`))
	want := []string{
		"Suspicious attribute 'onload'",
		"Suspicious tag 'script'",
		"Suspicious tag 'foreignObject'",
	}
	got := messages(res.Issues)
	if len(got) != len(want) {
		t.Fatalf("issues = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("issue[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSVGEngine_StyleImportStripped(t *testing.T) {
	doc := `<svg><style>@import url(https://evil.example/x.css);</style><style>rect { fill: red; }</style></svg>`
	res := newEngine().Sanitize([]byte(doc))
	if len(res.Issues) != 1 || res.Issues[0].Message != "Suspicious content in tag 'style'" {
		t.Fatalf("issues = %v", messages(res.Issues))
	}
	if strings.Contains(string(res.Content), "@import") {
		t.Errorf("import survived: %s", res.Content)
	}
	if !strings.Contains(string(res.Content), "fill: red") {
		t.Errorf("local style dropped: %s", res.Content)
	}
}

func TestSVGEngine_RemoteReferenceBypasses(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "escaped url in style attribute",
			doc:  `<svg><rect style="fill:u\72l(https://evil.example/x.svg#a)"/></svg>`,
			want: "Suspicious attribute 'style'",
		},
		{
			name: "image-set string",
			doc:  `<svg><rect style="background-image:image-set('https://evil.example/x.png' 1x)"/></svg>`,
			want: "Suspicious attribute 'style'",
		},
		{
			name: "escaped import",
			doc:  `<svg><style>@\69mport "https://evil.example/x.css";</style></svg>`,
			want: "Suspicious content in tag 'style'",
		},
		{
			name: "import split by cdata",
			doc:  `<svg><style>@imp<![CDATA[ort "https://evil.example/x.css";]]></style></svg>`,
			want: "Suspicious content in tag 'style'",
		},
		{
			name: "import split by comment",
			doc:  `<svg><style>@imp<!-- x -->ort "https://evil.example/x.css";</style></svg>`,
			want: "Suspicious content in tag 'style'",
		},
		{
			name: "markup inside style",
			doc:  `<svg><style>@imp<g/>ort "https://evil.example/x.css";</style></svg>`,
			want: "Suspicious tag 'g'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newEngine().Sanitize([]byte(tt.doc))
			if res.Outcome != OutcomeIssues {
				t.Fatalf("outcome = %v, want issues (err: %v)", res.Outcome, res.Err)
			}
			got := messages(res.Issues)
			if len(got) == 0 || got[0] != tt.want {
				t.Fatalf("issues = %v, want first %q", got, tt.want)
			}
			if strings.Contains(string(res.Content), "evil.example") {
				t.Errorf("remote reference survived: %s", res.Content)
			}
		})
	}
}

func TestSVGEngine_StyleTextKeptWhole(t *testing.T) {
	doc := "<svg><style>rect { fill: <![CDATA[red]]>; }</style></svg>"
	res := newEngine().Sanitize([]byte(doc))
	if res.Outcome != OutcomeClean {
		t.Fatalf("outcome = %v, issues = %v", res.Outcome, messages(res.Issues))
	}
	if !strings.Contains(string(res.Content), "<style>rect { fill: red; }</style>") {
		t.Errorf("content = %s", res.Content)
	}
}

func TestSVGEngine_AnimatedLinks(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "remote target",
			doc:  `<svg><image><animate attributeName="href" to="https://evil.example/t.png"/></image></svg>`,
			want: []string{"Suspicious attribute 'to'"},
		},
		{
			name: "script in values",
			doc:  `<svg><a><animate attributeName="href" values="#a;javascript:alert(1)"/><text>x</text></a></svg>`,
			want: []string{"Suspicious attribute 'values'"},
		},
		{
			name: "xlink href from and by",
			doc:  `<svg><a><animate attributeName=" xlink:href " from="javascript:x()" by="//evil.example/"/></a></svg>`,
			want: []string{"Suspicious attribute 'from'", "Suspicious attribute 'by'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newEngine().Sanitize([]byte(tt.doc))
			got := messages(res.Issues)
			if len(got) != len(tt.want) {
				t.Fatalf("issues = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("issue[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
			content := string(res.Content)
			if strings.Contains(content, "evil.example") || strings.Contains(content, "javascript") {
				t.Errorf("animated link survived: %s", content)
			}
		})
	}
}

func TestSVGEngine_AnimatedLocalLinkKept(t *testing.T) {
	doc := `<svg><a><animate attributeName="href" values="#a;#b" to="#c"/></a></svg>`
	res := newEngine().Sanitize([]byte(doc))
	if res.Outcome != OutcomeClean {
		t.Fatalf("outcome = %v, issues = %v", res.Outcome, messages(res.Issues))
	}
}

func TestSVGEngine_RecursiveUse(t *testing.T) {
	doc := `<svg><g id="loop"><use href="#loop"/></g></svg>`
	res := newEngine().Sanitize([]byte(doc))
	if len(res.Issues) != 1 || res.Issues[0].Message != "Invalid 'use' tag" {
		t.Fatalf("issues = %v", messages(res.Issues))
	}
}

func TestSVGEngine_ProcessingInstruction(t *testing.T) {
	doc := `<?xml version="1.0"?><?xml-stylesheet href="https://evil.example/a.css"?><svg/>`
	res := newEngine().Sanitize([]byte(doc))
	if len(res.Issues) != 1 || res.Issues[0].Message != "Suspicious processing instruction 'xml-stylesheet'" {
		t.Fatalf("issues = %v", messages(res.Issues))
	}
}

func TestSVGEngine_NamespaceDeclarationsKept(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" inkscape:version="1.0"/>`
	res := newEngine().Sanitize([]byte(doc))
	got := messages(res.Issues)
	if len(got) != 1 || got[0] != "Suspicious attribute 'inkscape:version'" {
		t.Fatalf("issues = %v", got)
	}
	if !strings.Contains(string(res.Content), `xmlns:inkscape=`) {
		t.Errorf("namespace declaration dropped: %s", res.Content)
	}
}

func TestSVGEngine_DeclaredCharset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><title>caf\xe9</title></svg>"
	res := newEngine().Sanitize([]byte(doc))
	if res.Outcome != OutcomeClean {
		t.Fatalf("outcome = %v, err = %v", res.Outcome, res.Err)
	}
	if !strings.Contains(string(res.Content), "café") {
		t.Errorf("content = %s, want UTF-8 text", res.Content)
	}
}

func TestSVGEngine_Failures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"whitespace only", "  \n "},
		{"not xml", "this is not an svg"},
		{"unclosed", "<svg><g></svg>"},
		{"truncated", "<svg><rect"},
		{"unclosed root", "<svg><rect/>"},
		{"two roots", "<svg/><svg/>"},
		{"undefined entity", "<svg><title>&nbsp;</title></svg>"},
		{"disallowed root", "<script>alert(1)</script>"},
		{"text after root", "<svg/>garbage"},
		{"text before root", "garbage<svg/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newEngine().Sanitize([]byte(tt.doc))
			if !res.Failed() {
				t.Fatalf("outcome = %v, want failed", res.Outcome)
			}
			if res.Err == nil {
				t.Error("expected Err to be set")
			}
			if res.Content != nil {
				t.Errorf("content = %q, want nil", res.Content)
			}
		})
	}
}

func TestSVGEngine_WhitespaceAroundRoot(t *testing.T) {
	res := newEngine().Sanitize([]byte("\ufeff\n<svg/>\r\n\t "))
	if res.Outcome != OutcomeClean {
		t.Fatalf("outcome = %v, err = %v", res.Outcome, res.Err)
	}
}

func TestSVGEngine_FailureKeepsIssues(t *testing.T) {
	res := newEngine().Sanitize([]byte(`<svg><script/><g>`))
	if !res.Failed() {
		t.Fatalf("outcome = %v, want failed", res.Outcome)
	}
	if len(res.Issues) != 1 {
		t.Errorf("issues = %v, want the script issue reported before the failure", messages(res.Issues))
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeClean:  "clean",
		OutcomeIssues: "issues",
		OutcomeFailed: "failed",
		Outcome(42):   "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(o), got, want)
		}
	}
}
