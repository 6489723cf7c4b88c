package talks

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"punctuator/nlp"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type (
	talkView struct {
		ID               string         `json:"id" yaml:"id"`
		Title            string         `json:"title" yaml:"title"`
		TranscriptBlake3 string         `json:"transcript_blake3,omitempty" yaml:"transcript_blake3,omitempty"`
		Sentences        []sentenceView `json:"sentences" yaml:"sentences"`
	}

	sentenceView struct {
		ID                 string      `json:"id" yaml:"id"`
		GoldText           string      `json:"gold_text" yaml:"gold_text"`
		GoldTokens         []tokenView `json:"gold_tokens" yaml:"gold_tokens"`
		StartMs            uint64      `json:"start_ms" yaml:"start_ms"`
		EndMs              uint64      `json:"end_ms" yaml:"end_ms"`
		SpeechText         string      `json:"speech_text" yaml:"speech_text"`
		EnrichedSpeechText string      `json:"enriched_speech_text" yaml:"enriched_speech_text"`
	}

	tokenView struct {
		Text        string   `json:"text" yaml:"text"`
		PosTags     []string `json:"pos_tags,omitempty" yaml:"pos_tags,omitempty"`
		Punctuation string   `json:"punctuation,omitempty" yaml:"punctuation,omitempty"`
	}
)

func viewTalks(talks []*Talk) []talkView {
	res := make([]talkView, len(talks))
	for n, t := range talks {
		tv := talkView{
			ID:               t.ID,
			Title:            t.Title,
			TranscriptBlake3: t.TranscriptBlake3,
			Sentences:        make([]sentenceView, len(t.Sentences)),
		}
		for i, s := range t.Sentences {
			tv.Sentences[i] = sentenceView{
				ID:                 s.ID,
				GoldText:           s.GoldText,
				GoldTokens:         viewTokens(s.GoldTokens),
				StartMs:            s.StartMs(),
				EndMs:              s.EndMs(),
				SpeechText:         s.SpeechText,
				EnrichedSpeechText: s.EnrichedSpeechText,
			}
		}
		res[n] = tv
	}
	return res
}

func viewTokens(tokens []nlp.Token) []tokenView {
	res := make([]tokenView, len(tokens))
	for n, tok := range tokens {
		switch t := tok.(type) {
		case *nlp.WordToken:
			tags := t.PosTags.Tags()
			names := make([]string, len(tags))
			for i, tag := range tags {
				names[i] = tag.String()
			}
			res[n] = tokenView{Text: t.Raw, PosTags: names}
		case *nlp.PunctuationToken:
			res[n] = tokenView{Text: t.Raw, Punctuation: t.Punctuation.String()}
		}
	}
	return res
}

// Encode writes talks to w in the given format.
func Encode(w io.Writer, format string, talks []*Talk) error {
	switch format {
	case FormatText, "":
		for _, t := range talks {
			if _, err := fmt.Fprintln(w, t); err != nil {
				return fmt.Errorf("writing talk %s: %w", t.ID, err)
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(viewTalks(talks)); err != nil {
			return fmt.Errorf("encoding talks json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(viewTalks(talks)); err != nil {
			return fmt.Errorf("encoding talks yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
