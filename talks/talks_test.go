package talks

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"punctuator/b3"
	"punctuator/nlp"
)

const fixtureXML = `<?xml version="1.0" encoding="UTF-8"?>
<mteval>
<srcset setid="iwslt2012-dev" srclang="english">
<doc docid="1" genre="lectures">
<url>http://example.org/talks/1</url>
<talkid>1</talkid>
<title>First talk</title>
<seg id="1">Hello, world.</seg>
<seg id="2">Can you see it?</seg>
<seg id="3">Yes: we can!</seg>
</doc>
<doc docid="2" genre="lectures">
<talkid>2</talkid>
<title>Second talk</title>
<seg id="1">Short one.</seg>
</doc>
</srcset>
</mteval>
`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testPipeline() *nlp.Pipeline {
	return nlp.NewPipeline(nlp.StubTagger{
		Tags: map[string]string{
			"Hello": "UH",
			"world": "NN",
			"Can":   "MD",
			"you":   "PRP",
			"see":   "VB",
			"it":    "PRP",
			"Yes":   "UH",
			"we":    "PRP",
			"can":   "MD",
			"Short": "JJ",
			"one":   "CD/NN",
		},
	})
}

type fixture struct {
	dir      string
	xmlPath  string
	template string
}

func newFixture(t *testing.T, transcripts map[string]string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		xmlPath:  filepath.Join(dir, "talks.xml"),
		template: filepath.Join(dir, "talk_<id>.txt"),
	}
	if err := os.WriteFile(f.xmlPath, []byte(fixtureXML), 0o644); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	for id, content := range transcripts {
		if err := os.WriteFile(TranscriptPath(f.template, id), []byte(content), 0o644); err != nil {
			t.Fatalf("write transcript %s: %v", id, err)
		}
	}
	return f
}

func newTestParser(opts ...Option) *Parser {
	return NewParser(testPipeline(), append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func TestParseDocument_WithoutTranscripts(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	talks, err := newTestParser().ParseDocument(f.xmlPath, "")
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	if len(talks) != 2 {
		t.Fatalf("expected 2 talks, got %d", len(talks))
	}
	first := talks[0]
	if first.ID != "1" || first.Title != "First talk" {
		t.Errorf("unexpected talk header %q %q", first.ID, first.Title)
	}
	if len(first.Sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(first.Sentences))
	}
	for i, want := range []string{"1", "2", "3"} {
		if first.Sentences[i].ID != want {
			t.Errorf("sentence %d: expected id %s, got %s", i, want, first.Sentences[i].ID)
		}
	}
	if first.Sentences[1].GoldText != "Can you see it?" {
		t.Errorf("unexpected gold text %q", first.Sentences[1].GoldText)
	}

	toks := first.Sentences[2].GoldTokens
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %v", toks)
	}
	if p, ok := toks[1].(*nlp.PunctuationToken); !ok || p.Punctuation != nlp.Comma {
		t.Errorf("expected ':' to be COMMA, got %v", toks[1])
	}
	if p, ok := toks[4].(*nlp.PunctuationToken); !ok || p.Punctuation != nlp.Period {
		t.Errorf("expected '!' to be PERIOD, got %v", toks[4])
	}

	one := talks[1].Sentences[0].GoldTokens[1].(*nlp.WordToken)
	if one.PosTags != nlp.NewPosTagSet(nlp.Numeral, nlp.Noun) {
		t.Errorf("expected NUMERAL|NOUN, got %s", one.PosTags)
	}

	if got := len(first.GoldTokens()); got != 4+5+5 {
		t.Errorf("expected 14 gold tokens, got %d", got)
	}
	for _, s := range first.Sentences {
		if !s.TimeStart.IsZero() || s.SpeechText != "" {
			t.Errorf("sentence %s should keep defaults without transcript", s.ID)
		}
	}
}

func TestParseDocument_AlignsTranscript(t *testing.T) {
	t.Parallel()

	talk1 := "x 0.5 1.25 hello (1)world {$(noise)} again\n" +
		"x 1.25 2 can you see it\n" +
		"x 2 3.5 yes (2)we can\n"
	f := newFixture(t, map[string]string{
		"1": talk1,
		"2": "x 0 1 short one\n",
	})

	talks, err := newTestParser().ParseDocument(f.xmlPath, f.template)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	want := []struct {
		start, end       string
		speech, enriched string
		startMs, endMs   uint64
	}{
		{"0.5", "1.25", "hello world again", "hello world {$(noise)} again", 500, 1250},
		{"1.25", "2", "can you see it", "can you see it", 1250, 2000},
		{"2", "3.5", "yes we can", "yes we can", 2000, 3500},
	}
	for i, w := range want {
		s := talks[0].Sentences[i]
		if !s.TimeStart.Equal(decimal.RequireFromString(w.start)) || !s.TimeEnd.Equal(decimal.RequireFromString(w.end)) {
			t.Errorf("sentence %d: expected times %s-%s, got %s-%s", i, w.start, w.end, s.TimeStart, s.TimeEnd)
		}
		if s.StartMs() != w.startMs || s.EndMs() != w.endMs {
			t.Errorf("sentence %d: expected %d-%d ms, got %d-%d", i, w.startMs, w.endMs, s.StartMs(), s.EndMs())
		}
		if s.SpeechText != w.speech {
			t.Errorf("sentence %d: expected speech %q, got %q", i, w.speech, s.SpeechText)
		}
		if s.EnrichedSpeechText != w.enriched {
			t.Errorf("sentence %d: expected enriched %q, got %q", i, w.enriched, s.EnrichedSpeechText)
		}
	}

	sum, err := b3.HashReader(strings.NewReader(talk1))
	if err != nil {
		t.Fatalf("HashReader failed: %v", err)
	}
	if talks[0].TranscriptBlake3 != sum {
		t.Errorf("expected transcript digest %s, got %s", sum, talks[0].TranscriptBlake3)
	}
}

func TestParseDocument_ShortTranscriptKeepsDefaults(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		"1": "x 0 1 hello world\nx 1 2 can you see it\n",
		"2": "x 0 1 short one\n",
	})

	talks, err := newTestParser().ParseDocument(f.xmlPath, f.template)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	if talks[0].Sentences[1].SpeechText != "can you see it" {
		t.Errorf("second sentence not aligned: %q", talks[0].Sentences[1].SpeechText)
	}
	third := talks[0].Sentences[2]
	if !third.TimeStart.IsZero() || !third.TimeEnd.IsZero() || third.SpeechText != "" || third.EnrichedSpeechText != "" {
		t.Errorf("third sentence should keep defaults, got %+v", third)
	}
}

func TestParseDocument_LongTranscriptIgnoresExcess(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		"1": "x 0 1 a\nx 1 2 b\nx 2 3 c\nx 3 4 d\n",
		"2": "x 0 1 short one\n",
	})

	talks, err := newTestParser().ParseDocument(f.xmlPath, f.template)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if got := talks[0].Sentences[2].SpeechText; got != "c" {
		t.Errorf("expected third sentence %q, got %q", "c", got)
	}
}

func TestParseDocument_StrictAlignment(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		"1": "x 0 1 hello world\nx 1 2 can you see it\n",
		"2": "x 0 1 short one\n",
	})

	_, err := newTestParser(WithStrictAlignment(true)).ParseDocument(f.xmlPath, f.template)
	if !errors.Is(err, ErrAlignmentMismatch) {
		t.Fatalf("expected ErrAlignmentMismatch, got %v", err)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{"1": "x 0 1 a\nx 1 2 b\nx 2 3 c\n"})
	p := newTestParser()

	if _, err := p.ParseDocument(filepath.Join(f.dir, "missing.xml"), ""); err == nil {
		t.Error("expected error for missing xml")
	}
	// talk 2 has no transcript file
	if _, err := p.ParseDocument(f.xmlPath, f.template); err == nil {
		t.Error("expected error for missing transcript")
	}

	bad := filepath.Join(f.dir, "bad.xml")
	if err := os.WriteFile(bad, []byte("<mteval><srcset><doc>"), 0o644); err != nil {
		t.Fatalf("write bad xml: %v", err)
	}
	if _, err := p.ParseDocument(bad, ""); err == nil {
		t.Error("expected error for malformed xml")
	}

	noSrc := filepath.Join(f.dir, "nosrc.xml")
	if err := os.WriteFile(noSrc, []byte("<mteval><refset/></mteval>"), 0o644); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	if _, err := p.ParseDocument(noSrc, ""); err == nil {
		t.Error("expected error for missing srcset")
	}
}

func TestTalk_String(t *testing.T) {
	t.Parallel()

	talk := NewTalk("7", "Title")
	talk.AddSentence(&Sentence{
		ID:         "1",
		GoldText:   "Hi.",
		GoldTokens: []nlp.Token{&nlp.WordToken{Raw: "Hi", PosTags: nlp.NewPosTagSet(nlp.Interjection)}, &nlp.PunctuationToken{Raw: ".", Punctuation: nlp.Period}},
		TimeStart:  decimal.RequireFromString("1.5"),
	})

	want := " ID: 7 \n TITLE: Title \n \n " +
		" ID: 1 \n TIME_START: 1.5 \n TIME_END: 0 \n gold_text: Hi. \n gold_tokens: Hi/INTERJECTION, ./PERIOD \n speech_text:  \n enriched_speech_text:  \n"
	if got := talk.String(); got != want {
		t.Errorf("unexpected rendering:\n%q\nwant\n%q", got, want)
	}
}
