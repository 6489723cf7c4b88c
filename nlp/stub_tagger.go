package nlp

import (
	"strings"
	"unicode"
)

// StubTagger is a deterministic Tagger for tests. It splits on whitespace,
// separates trailing and leading punctuation, and looks tags up in Tags.
// Words missing from Tags get DefaultTag.
type StubTagger struct {
	Tags       map[string]string
	DefaultTag string
	Err        error
}

func (s StubTagger) Tag(text string) ([]TaggedToken, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	var out []TaggedToken
	for _, field := range strings.Fields(text) {
		for _, piece := range splitPunct(field) {
			tag, ok := s.Tags[piece]
			if !ok {
				tag = s.DefaultTag
			}
			out = append(out, TaggedToken{Text: piece, Tag: tag})
		}
	}
	return out, nil
}

func splitPunct(field string) []string {
	runes := []rune(field)
	start, end := 0, len(runes)
	var head, tail []string
	for start < end && unicode.IsPunct(runes[start]) {
		head = append(head, string(runes[start]))
		start++
	}
	for end > start && unicode.IsPunct(runes[end-1]) {
		tail = append([]string{string(runes[end-1])}, tail...)
		end--
	}

	out := head
	if start < end {
		out = append(out, string(runes[start:end]))
	}
	return append(out, tail...)
}
