package domain

import "strings"

// ContentKind identifies what kind of text payload the user submitted:
// plain text or a source-code language.
type ContentKind string

const (
	KindPlainText ContentKind = "plaintext"

	// Default base names used when the user supplies no filename.
	DefaultTextBaseName = "shared-text"
	DefaultCodeBaseName = "shared-code"
)

type contentKindInfo struct {
	label     string
	extension string
}

var contentKinds = map[ContentKind]contentKindInfo{
	KindPlainText: {"Plain Text", "txt"},
	"javascript":  {"JavaScript", "js"},
	"typescript":  {"TypeScript", "ts"},
	"python":      {"Python", "py"},
	"java":        {"Java", "java"},
	"c":           {"C", "c"},
	"cpp":         {"C++", "cpp"},
	"csharp":      {"C#", "cs"},
	"html":        {"HTML", "html"},
	"css":         {"CSS", "css"},
	"json":        {"JSON", "json"},
	"xml":         {"XML", "xml"},
	"sql":         {"SQL", "sql"},
	"markdown":    {"Markdown", "md"},
	"yaml":        {"YAML", "yml"},
	"shell":       {"Shell Script", "sh"},
}

// IsPlainText reports whether the kind is plain text rather than source code.
// An omitted kind counts as plain text; "text" is accepted as a legacy alias
// of "plaintext".
func (k ContentKind) IsPlainText() bool {
	return k == KindPlainText || k == "text" || k == ""
}

// Extension returns the canonical file extension for the kind, without the
// leading dot. Unknown kinds fall back to "txt".
func (k ContentKind) Extension() string {
	if info, ok := contentKinds[k]; ok {
		return info.extension
	}
	return "txt"
}

// Label returns a human-readable name for the kind, for display in the
// delivery email. Unknown kinds are echoed back as-is.
func (k ContentKind) Label() string {
	if info, ok := contentKinds[k]; ok {
		return info.label
	}
	if k.IsPlainText() {
		return "Plain Text"
	}
	return string(k)
}

// BuildFilename derives the attachment filename for a text submission.
// An empty base falls back to the default per-kind name; the canonical
// extension is always present exactly once.
func BuildFilename(kind ContentKind, base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		if kind.IsPlainText() {
			base = DefaultTextBaseName
		} else {
			base = DefaultCodeBaseName
		}
	}
	ext := kind.Extension()
	base = strings.TrimSuffix(base, "."+ext)
	return base + "." + ext
}
