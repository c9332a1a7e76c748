// Package syntax picks a language for a file and splits visible text into
// colored spans using chroma lexers and styles.
package syntax

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	DefaultDarkStyle  = "monokai"
	DefaultLightStyle = "github"
)

// Span is a run of text sharing one style
type Span struct {
	Text       string
	Foreground string // "#rrggbb", empty for the terminal default
	Bold       bool
	Italic     bool
	Underline  bool
}

// Classifier detects languages and tokenises lines. It is built once per
// session for a fixed style.
type Classifier struct {
	style *chroma.Style
}

// New creates a classifier using the named chroma style, falling back to the
// default for the background when the name is empty.
func New(dark bool, styleName string) *Classifier {
	if styleName == "" {
		styleName = DefaultLightStyle
		if dark {
			styleName = DefaultDarkStyle
		}
	}
	return &Classifier{style: styles.Get(styleName)}
}

// StyleName returns the resolved chroma style name
func (c *Classifier) StyleName() string {
	return c.style.Name
}

// Detect returns a lexer name for the file, or "" when none applies. The
// filename decides first; otherwise the first non-blank line is analysed,
// which catches shebangs in extensionless scripts.
func (c *Classifier) Detect(path string, lines []string) string {
	if path != "" {
		base := filepath.Base(path)
		if isDotenv(strings.ToLower(base)) {
			if l := lexers.Get("bash"); l != nil {
				return l.Config().Name
			}
		}
		if l := lexers.Match(base); l != nil {
			return l.Config().Name
		}
		if l := lexers.Match(strings.ToLower(base)); l != nil {
			return l.Config().Name
		}
	}

	first := firstNonBlank(lines)
	if first == "" {
		return ""
	}
	if l := lexers.Analyse(first); l != nil {
		return l.Config().Name
	}
	return ""
}

// Spans tokenises text with the named lexer. Unknown languages, blank text and
// tokeniser failures produce a single unstyled span.
func (c *Classifier) Spans(text, language string) []Span {
	plain := []Span{{Text: text}}
	if language == "" || strings.TrimSpace(text) == "" {
		return plain
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return plain
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return plain
	}

	var (
		out    []Span
		joined strings.Builder
	)
	for _, tok := range it.Tokens() {
		v := strings.TrimSuffix(tok.Value, "\n")
		if v == "" {
			continue
		}
		entry := c.style.Get(tok.Type)
		s := Span{
			Text:      v,
			Bold:      entry.Bold == chroma.Yes,
			Italic:    entry.Italic == chroma.Yes,
			Underline: entry.Underline == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			s.Foreground = entry.Colour.String()
		}
		out = append(out, s)
		joined.WriteString(v)
	}
	// spans must cover the text exactly or the pane would shift
	if len(out) == 0 || joined.String() != text {
		return plain
	}
	return out
}

func isDotenv(name string) bool {
	return name == ".env" || strings.HasPrefix(name, ".env.")
}

func firstNonBlank(lines []string) string {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}
