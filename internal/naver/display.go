package naver

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// PlainText strips HTML tags and unescapes entities.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// DisplayTitle returns the title without the API's highlight markup.
func (m Movie) DisplayTitle() string {
	return PlainText(m.Title)
}

// Year returns the publication year, or "?" when unknown.
func (m Movie) Year() string {
	if y := strings.TrimSpace(m.PubDate); y != "" {
		return y
	}
	return "?"
}

// People splits the API's pipe-separated director/actor lists.
func People(list string) []string {
	var out []string
	for _, name := range strings.Split(list, "|") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
