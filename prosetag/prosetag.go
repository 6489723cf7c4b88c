// Package prosetag tags sentences with the prose averaged perceptron tagger.
package prosetag

import (
	"fmt"

	"github.com/jdkato/prose/v2"

	"punctuator/nlp"
)

// ProseTagger tokenizes with prose's treebank style tokenizer and tags with
// its Penn Treebank model. Sentence segmentation and entity extraction are
// off since callers pass one sentence at a time.
type ProseTagger struct{}

var _ nlp.Tagger = ProseTagger{}

func (ProseTagger) Tag(text string) ([]nlp.TaggedToken, error) {
	doc, err := prose.NewDocument(
		text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tagging with prose: %w", err)
	}

	toks := doc.Tokens()
	res := make([]nlp.TaggedToken, len(toks))
	for n, t := range toks {
		res[n] = nlp.TaggedToken{Text: t.Text, Tag: t.Tag}
	}
	return res, nil
}
