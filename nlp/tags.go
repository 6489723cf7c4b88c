package nlp

import (
	"strings"
)

// PosTag is a coarse part-of-speech category.
type PosTag uint8

const (
	Other PosTag = iota
	Verb
	Noun
	Determiner
	Adjective
	Adverb
	Numeral
	Conjunction
	Particle
	ExistentialThere
	Marker
	Pronoun
	Interjection
	QuestionWords

	numPosTags
)

var posTagNames = [numPosTags]string{
	Other:            "OTHER",
	Verb:             "VERB",
	Noun:             "NOUN",
	Determiner:       "DETERMINER",
	Adjective:        "ADJECTIVE",
	Adverb:           "ADVERB",
	Numeral:          "NUMERAL",
	Conjunction:      "CONJUNCTION",
	Particle:         "PARTICLE",
	ExistentialThere: "EXISTENTIAL_THERE",
	Marker:           "MARKER",
	Pronoun:          "PRONOUN",
	Interjection:     "INTERJECTION",
	QuestionWords:    "QUESTION_WORDS",
}

func (p PosTag) String() string {
	if p >= numPosTags {
		return "PosTag(?)"
	}
	return posTagNames[p]
}

// Punctuation is the class a punctuation token predicts.
type Punctuation uint8

const (
	Period Punctuation = iota
	Comma
	Question
)

func (p Punctuation) String() string {
	switch p {
	case Period:
		return "PERIOD"
	case Comma:
		return "COMMA"
	case Question:
		return "QUESTION"
	}
	return "Punctuation(?)"
}

var punctuationTable = map[string]Punctuation{
	";": Period,
	".": Period,
	"!": Period,
	",": Comma,
	":": Comma,
	"-": Comma,
	"?": Question,
}

// penn treebank tag -> coarse category, inverted at init
var posTagGroups = map[PosTag][]string{
	Adjective:        {"JJ", "JJR", "JJS"},
	Adverb:           {"RB", "RBR", "RBS"},
	Particle:         {"RP"},
	Conjunction:      {"CC", "IN"},
	Numeral:          {"CD", "LS"},
	Determiner:       {"DT", "PDT"},
	ExistentialThere: {"EX"},
	Noun:             {"FW", "NN", "NNP", "NNPS", "NNS"},
	Verb:             {"MD", "VB", "VBD", "VBG", "VBN", "VBP", "VBZ"},
	Marker:           {"POS", "TO"},
	Pronoun:          {"PRP", "PRP$"},
	Interjection:     {"UH"},
	QuestionWords:    {"WDT", "WP", "WP$", "WRB"},
}

var posTagTable = func() map[string]PosTag {
	m := make(map[string]PosTag)
	for coarse, tags := range posTagGroups {
		for _, t := range tags {
			m[t] = coarse
		}
	}
	return m
}()

// LookupPunctuation reports the class of a raw token if it is one of the
// known punctuation symbols.
func LookupPunctuation(raw string) (Punctuation, bool) {
	p, ok := punctuationTable[raw]
	return p, ok
}

// ParsePosTag maps a tagger tag, possibly slash delimited for ambiguous
// tags, to the set of coarse categories. Unknown or empty parts map to Other.
func ParsePosTag(tag string) PosTagSet {
	var set PosTagSet
	for _, part := range strings.Split(tag, "/") {
		coarse, ok := posTagTable[part]
		if !ok {
			coarse = Other
		}
		set = set.Add(coarse)
	}
	return set
}

// PosTagSet is a bit set of PosTag values.
type PosTagSet uint16

func NewPosTagSet(tags ...PosTag) PosTagSet {
	var s PosTagSet
	for _, t := range tags {
		s = s.Add(t)
	}
	return s
}

func (s PosTagSet) Add(t PosTag) PosTagSet { return s | 1<<t }

func (s PosTagSet) Has(t PosTag) bool { return s&(1<<t) != 0 }

func (s PosTagSet) Len() int {
	n := 0
	for t := PosTag(0); t < numPosTags; t++ {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Tags lists the members in enum order.
func (s PosTagSet) Tags() []PosTag {
	out := make([]PosTag, 0, s.Len())
	for t := PosTag(0); t < numPosTags; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s PosTagSet) String() string {
	names := make([]string, 0, s.Len())
	for _, t := range s.Tags() {
		names = append(names, t.String())
	}
	return strings.Join(names, "|")
}
