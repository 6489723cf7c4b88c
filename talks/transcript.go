package talks

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"punctuator/b3"
)

var (
	digitMarker    = regexp.MustCompile(`\(\d\)`)
	annotationSpan = regexp.MustCompile(`\{\$\(.*?\)\} `)
	lineEndings    = strings.NewReplacer("\n", "", "\r", "")
)

const maxTranscriptLine = 1 << 20

// TranscriptLine is one parsed line of a sorted transcript file:
// "<ignored> <time_start> <time_end> <text...>".
type TranscriptLine struct {
	TimeStart    decimal.Decimal
	TimeEnd      decimal.Decimal
	SpeechText   string
	EnrichedText string
}

// CleanSentence removes parenthesized single digit markers to get the
// enriched text, then drops "{$(...)} " annotation spans to get the plain
// speech text.
func CleanSentence(unclean string) (speech, enriched string) {
	enriched = digitMarker.ReplaceAllString(lineEndings.Replace(unclean), "")
	speech = annotationSpan.ReplaceAllString(enriched, "")
	return speech, enriched
}

func ParseTranscriptLine(line string) (TranscriptLine, error) {
	parts := strings.Split(lineEndings.Replace(line), " ")
	if len(parts) < 3 {
		return TranscriptLine{}, fmt.Errorf("expected at least 3 space separated fields, got %d", len(parts))
	}

	start, err := decimal.NewFromString(parts[1])
	if err != nil {
		return TranscriptLine{}, fmt.Errorf("time start %q: %w", parts[1], err)
	}
	end, err := decimal.NewFromString(parts[2])
	if err != nil {
		return TranscriptLine{}, fmt.Errorf("time end %q: %w", parts[2], err)
	}

	var text string
	if len(parts) > 3 {
		text = strings.Join(parts[3:], " ")
	}
	speech, enriched := CleanSentence(text)

	return TranscriptLine{
		TimeStart:    start,
		TimeEnd:      end,
		SpeechText:   speech,
		EnrichedText: enriched,
	}, nil
}

// ReadTranscript parses every non-blank line of the transcript at path.
func ReadTranscript(path string) ([]TranscriptLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	var lines []TranscriptLine
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTranscriptLine)
	for n := 1; scanner.Scan(); n++ {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		l, err := ParseTranscriptLine(raw)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript %s: %w", path, err)
	}
	return lines, nil
}

// mergeTranscript assigns line i of the transcript to sentence i of the talk.
func (p *Parser) mergeTranscript(t *Talk, path string) error {
	lines, err := ReadTranscript(path)
	if err != nil {
		return err
	}

	if len(lines) != len(t.Sentences) {
		if p.strict {
			return fmt.Errorf("%w: %s has %d lines for %d sentences", ErrAlignmentMismatch, path, len(lines), len(t.Sentences))
		}
		p.log.WithFields(logrus.Fields{
			"talk":       t.ID,
			"transcript": path,
			"lines":      len(lines),
			"sentences":  len(t.Sentences),
		}).Warn("transcript length differs from talk, aligning by position")
	}

	for i, l := range lines {
		if i >= len(t.Sentences) {
			break
		}
		s := t.Sentences[i]
		s.TimeStart = l.TimeStart
		s.TimeEnd = l.TimeEnd
		s.SpeechText = l.SpeechText
		s.EnrichedSpeechText = l.EnrichedText
	}

	sum, err := b3.HashFile(path)
	if err != nil {
		return err
	}
	t.TranscriptBlake3 = sum
	return nil
}
