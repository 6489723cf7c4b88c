package nlp

// Token is either a *WordToken or a *PunctuationToken.
type Token interface {
	Text() string
	String() string
	token()
}

type WordToken struct {
	Raw     string
	PosTags PosTagSet
}

type PunctuationToken struct {
	Raw         string
	Punctuation Punctuation
}

func (w *WordToken) Text() string   { return w.Raw }
func (w *WordToken) String() string { return w.Raw + "/" + w.PosTags.String() }
func (*WordToken) token()           {}

func (p *PunctuationToken) Text() string   { return p.Raw }
func (p *PunctuationToken) String() string { return p.Raw + "/" + p.Punctuation.String() }
func (*PunctuationToken) token()           {}
