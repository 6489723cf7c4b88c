// Package talks reads talk collections, tokenizes their reference sentences
// and aligns them with timestamped transcripts.
package talks

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"punctuator/nlp"
)

type (
	Talk struct {
		ID        string
		Title     string
		Sentences []*Sentence
		// TranscriptBlake3 fingerprints the transcript merged into this talk.
		TranscriptBlake3 string
	}

	Sentence struct {
		ID         string
		GoldText   string
		GoldTokens []nlp.Token

		// Zero until a transcript line is merged.
		TimeStart          decimal.Decimal
		TimeEnd            decimal.Decimal
		SpeechText         string
		EnrichedSpeechText string
	}
)

func NewTalk(id, title string) *Talk {
	return &Talk{ID: id, Title: title}
}

func (t *Talk) AddSentence(s *Sentence) {
	t.Sentences = append(t.Sentences, s)
}

// GoldTokens concatenates the tokens of all sentences in order.
func (t *Talk) GoldTokens() []nlp.Token {
	var out []nlp.Token
	for _, s := range t.Sentences {
		out = append(out, s.GoldTokens...)
	}
	return out
}

func (t *Talk) String() string {
	var sb strings.Builder
	for _, s := range t.Sentences {
		sb.WriteString(s.String())
	}
	return fmt.Sprintf(" ID: %s \n TITLE: %s \n \n %s", t.ID, t.Title, sb.String())
}

var thousand = decimal.NewFromInt(1000)

func (s *Sentence) StartMs() uint64 {
	return s.TimeStart.Mul(thousand).BigInt().Uint64()
}

func (s *Sentence) EndMs() uint64 {
	return s.TimeEnd.Mul(thousand).BigInt().Uint64()
}

func (s *Sentence) String() string {
	toks := make([]string, len(s.GoldTokens))
	for i, t := range s.GoldTokens {
		toks[i] = t.String()
	}
	return fmt.Sprintf(" ID: %s \n TIME_START: %s \n TIME_END: %s \n gold_text: %s \n gold_tokens: %s \n speech_text: %s \n enriched_speech_text: %s \n",
		s.ID, s.TimeStart, s.TimeEnd, s.GoldText, strings.Join(toks, ", "), s.SpeechText, s.EnrichedSpeechText)
}
