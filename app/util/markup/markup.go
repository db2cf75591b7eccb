// Package markup renders the transcript's inline markup to HTML.
//
// Assessment service messages use two formatting constructs: bold spans
// delimited by ** and literal newlines. Everything else is escaped.
package markup

import (
	"html"
	"strings"
)

const boldMarker = "**"

// ToHTML escapes text and converts **bold** spans and newlines to
// <strong> and <br> tags. An unpaired marker renders literally.
func ToHTML(text string) string {
	if text == "" {
		return ""
	}

	parts := strings.Split(html.EscapeString(text), boldMarker)

	if len(parts)%2 == 0 {
		// the final marker has no closing pair, keep it as text
		parts[len(parts)-2] += boldMarker + parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}

	var builder strings.Builder

	for i, part := range parts {
		if i%2 == 1 {
			builder.WriteString("<strong>")
			builder.WriteString(part)
			builder.WriteString("</strong>")
		} else {
			builder.WriteString(part)
		}
	}

	return strings.ReplaceAll(builder.String(), "\n", "<br>")
}
