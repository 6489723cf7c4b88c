package talks

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"punctuator/nlp"
)

// IDPlaceholder is replaced by the talk id in transcript templates.
const IDPlaceholder = "<id>"

var ErrAlignmentMismatch = errors.New("transcript line count does not match sentence count")

type (
	xmlDocument struct {
		Srcset *xmlSrcset `xml:"srcset"`
	}

	xmlSrcset struct {
		Docs []xmlDoc `xml:"doc"`
	}

	xmlDoc struct {
		TalkID string   `xml:"talkid"`
		Title  string   `xml:"title"`
		Segs   []xmlSeg `xml:"seg"`
	}

	xmlSeg struct {
		ID   string `xml:"id,attr"`
		Text string `xml:",chardata"`
	}
)

type (
	sentenceParser interface {
		ParseText(text string) ([]nlp.Token, error)
	}

	Parser struct {
		nlp    sentenceParser
		strict bool
		log    logrus.FieldLogger
	}

	Option func(*Parser)
)

// WithStrictAlignment makes a transcript whose line count differs from the
// talk's sentence count an ErrAlignmentMismatch instead of a warning.
func WithStrictAlignment(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) { p.log = l }
}

func NewParser(pipeline sentenceParser, opts ...Option) *Parser {
	p := &Parser{nlp: pipeline, log: logrus.StandardLogger()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ParseDocument parses every talk in xmlPath. When template is non-empty the
// transcript at template (with IDPlaceholder replaced by the talk id) is
// merged into each talk line by line.
func (p *Parser) ParseDocument(xmlPath, template string) ([]*Talk, error) {
	talks, err := p.parseXML(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	if template == "" {
		return talks, nil
	}
	for _, t := range talks {
		path := TranscriptPath(template, t.ID)
		if err := p.mergeTranscript(t, path); err != nil {
			return nil, fmt.Errorf("parse document: talk %s: %w", t.ID, err)
		}
	}
	return talks, nil
}

// TranscriptPath substitutes id into template.
func TranscriptPath(template, id string) string {
	return strings.ReplaceAll(template, IDPlaceholder, id)
}

func (p *Parser) parseXML(xmlPath string) ([]*Talk, error) {
	f, err := os.Open(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("opening xml: %w", err)
	}
	defer f.Close()

	var doc xmlDocument
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding xml %s: %w", xmlPath, err)
	}
	if doc.Srcset == nil {
		return nil, fmt.Errorf("decoding xml %s: no srcset element", xmlPath)
	}

	talks := make([]*Talk, 0, len(doc.Srcset.Docs))
	for _, d := range doc.Srcset.Docs {
		talk := NewTalk(d.TalkID, d.Title)
		for _, seg := range d.Segs {
			tokens, err := p.nlp.ParseText(seg.Text)
			if err != nil {
				return nil, fmt.Errorf("talk %s sentence %s: %w", d.TalkID, seg.ID, err)
			}
			talk.AddSentence(&Sentence{ID: seg.ID, GoldText: seg.Text, GoldTokens: tokens})
		}
		p.log.WithFields(logrus.Fields{
			"talk":      talk.ID,
			"sentences": len(talk.Sentences),
		}).Debug("talk parsed")
		talks = append(talks, talk)
	}
	return talks, nil
}
