package helpers

import (
	"strings"

	"github.com/a-h/templ"
)

// HighlightSegment represents a split section of text with optional emphasis.
type HighlightSegment struct {
	Text  string
	Match bool
}

// HighlightSegments splits text into segments, marking case-insensitive
// occurrences of term.
func HighlightSegments(text, term string) []HighlightSegment {
	term = strings.TrimSpace(term)
	if text == "" {
		return nil
	}
	if term == "" {
		return []HighlightSegment{{Text: text}}
	}

	lowerText := strings.ToLower(text)
	lowerTerm := strings.ToLower(term)

	var segments []HighlightSegment
	cursor := 0
	for {
		index := strings.Index(lowerText[cursor:], lowerTerm)
		if index < 0 {
			break
		}
		start := cursor + index
		if start > cursor {
			segments = append(segments, HighlightSegment{Text: text[cursor:start]})
		}
		end := start + len(lowerTerm)
		segments = append(segments, HighlightSegment{Text: text[start:end], Match: true})
		cursor = end
	}
	if cursor < len(text) {
		segments = append(segments, HighlightSegment{Text: text[cursor:]})
	}
	return segments
}

// Highlight renders text with matched substrings wrapped in <mark>.
func Highlight(text, term string) templ.Component {
	segments := HighlightSegments(text, term)
	children := make([]templ.Component, 0, len(segments))
	for _, segment := range segments {
		if segment.Match {
			children = append(children, El("mark", Attrs{"class": "bg-amber-100 rounded-sm"}, Text(segment.Text)))
			continue
		}
		children = append(children, Text(segment.Text))
	}
	return Group(children...)
}
