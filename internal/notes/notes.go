// Package notes normalizes reader notes and book descriptions to Markdown.
//
// Rich-text editors and pasted catalog descriptions often arrive as HTML;
// the collection always stores Markdown.
package notes

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Format names the markup of submitted text.
type Format string

// Supported formats. FormatAuto converts only when HTML tags are detected.
const (
	FormatAuto     Format = ""
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Valid returns true if the format is recognized.
func (f Format) Valid() bool {
	switch f {
	case FormatAuto, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// htmlTagPattern matches common HTML tags to detect if a string contains HTML.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|u|s|strong|em|a|ul|ol|li|h[1-6]|blockquote|pre|code)[\s>/]`)

// ContainsHTML reports whether s appears to contain HTML markup.
func ContainsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// ToMarkdown converts text in the given format to Markdown.
// Markdown input is returned as-is; auto input is converted only if it looks
// like HTML.
func ToMarkdown(text string, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return text, nil
	case FormatAuto:
		if !ContainsHTML(text) {
			return text, nil
		}
	case FormatHTML:
	default:
		return "", fmt.Errorf("unsupported notes format %q", format)
	}

	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(text)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
