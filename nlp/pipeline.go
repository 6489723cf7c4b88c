// Package nlp turns sentence text into word and punctuation tokens.
package nlp

import (
	"fmt"
)

type (
	// TaggedToken is one token and its Penn Treebank tag as produced by a
	// Tagger. Ambiguous tags may be slash delimited.
	TaggedToken struct {
		Text string
		Tag  string
	}

	// Tagger tokenizes and part-of-speech tags a piece of text.
	Tagger interface {
		Tag(text string) ([]TaggedToken, error)
	}
)

type Pipeline struct {
	tagger Tagger
}

func NewPipeline(t Tagger) *Pipeline {
	return &Pipeline{tagger: t}
}

// ParseText tokenizes a sentence. Tokens found in the punctuation table
// become PunctuationTokens regardless of their tag.
func (p *Pipeline) ParseText(text string) ([]Token, error) {
	tagged, err := p.tagger.Tag(text)
	if err != nil {
		return nil, fmt.Errorf("parse text: tagging: %w", err)
	}

	tokens := make([]Token, 0, len(tagged))
	for _, tt := range tagged {
		if punct, ok := LookupPunctuation(tt.Text); ok {
			tokens = append(tokens, &PunctuationToken{Raw: tt.Text, Punctuation: punct})
			continue
		}
		tokens = append(tokens, &WordToken{Raw: tt.Text, PosTags: ParsePosTag(tt.Tag)})
	}
	return tokens, nil
}
