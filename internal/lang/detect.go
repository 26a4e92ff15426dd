package lang

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Source tells which step of Detect decided the language.
type Source uint8

const (
	SourceNone Source = iota
	SourceOverride
	SourceLexer
	SourceExtension
	SourceContent
)

func (s Source) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceLexer:
		return "lexer"
	case SourceExtension:
		return "extension"
	case SourceContent:
		return "content"
	default:
		return "none"
	}
}

// Detection is the outcome of language detection.
type Detection struct {
	Lang   Language
	Label  string // display label the language was routed from
	Source Source
}

// extensionLabels is consulted when no lexer claims the file name.
var extensionLabels = map[string]string{
	"py":   "Python",
	"pyw":  "Python",
	"cpp":  "C++",
	"cc":   "C++",
	"c":    "C",
	"h":    "C++",
	"hpp":  "C++",
	"java": "Java",
	"html": "HTML",
	"htm":  "HTML",
	"js":   "JavaScript",
	"mjs":  "JavaScript",
	"ts":   "TypeScript",
	"json": "JSON",
	"css":  "CSS",
	"php":  "PHP",
	"sh":   "Bash",
	"bash": "Bash",
	"bat":  "Batch",
	"cmd":  "Batch",
	"sql":  "SQL",
	"asm":  "Assembly",
	"s":    "Assembly",
	"qml":  "QML",
	"xml":  "XML",
	"md":   "Markdown (preinstalled)",
}

var displayLabels = [languageCount]string{
	Text:       "None (Normal Text)",
	Python:     "Python",
	CFamily:    "C++",
	Java:       "Java",
	HTML:       "HTML",
	JavaScript: "JavaScript",
	JSON:       "JSON",
	CSS:        "CSS",
	PHP:        "PHP",
	Shell:      "Bash",
	SQL:        "SQL",
	Assembly:   "Assembly",
	QML:        "QML",
}

// DisplayLabel is the label a language is shown under; FromLabel maps it
// back to l.
func DisplayLabel(l Language) string {
	return labelFor(l)
}

func labelFor(l Language) string {
	if !l.Valid() {
		return displayLabels[Text]
	}
	return displayLabels[l]
}

// Detector picks a language for a file.
//
// Order: user overrides (by base name, then by extension), the chroma lexer
// registry, the built-in extension table, document content.
type Detector struct {
	// Overrides maps ".ext" or an exact base name to a display label.
	Overrides map[string]string
}

// Detect runs the detection chain for path and content. Either may be empty.
func (d Detector) Detect(path, content string) Detection {
	base := filepath.Base(path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))

	if path != "" && len(d.Overrides) > 0 {
		if label, ok := d.Overrides[base]; ok {
			return Detection{Lang: FromLabel(label), Label: label, Source: SourceOverride}
		}
		if ext != "" {
			if label, ok := d.Overrides["."+ext]; ok {
				return Detection{Lang: FromLabel(label), Label: label, Source: SourceOverride}
			}
		}
	}

	if path != "" {
		if lexer := lexers.Match(base); lexer != nil {
			// plaintext (*.txt) says nothing, fall through to content
			if cfg := lexer.Config(); cfg != nil && cfg.Name != "" && !strings.EqualFold(cfg.Name, "plaintext") {
				return Detection{Lang: FromLabel(cfg.Name), Label: cfg.Name, Source: SourceLexer}
			}
		}
		if label, ok := extensionLabels[ext]; ok {
			return Detection{Lang: FromLabel(label), Label: label, Source: SourceExtension}
		}
	}

	if c := FromContent(content); c.Lang != Text {
		return Detection{Lang: c.Lang, Label: labelFor(c.Lang), Source: SourceContent}
	}
	return Detection{Lang: Text, Label: labelFor(Text), Source: SourceNone}
}

// Detect uses a Detector without overrides.
func Detect(path, content string) Detection {
	return Detector{}.Detect(path, content)
}
