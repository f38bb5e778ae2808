package calc

import (
	"strconv"
	"unicode"
)

// Token is a classified piece of the input.
type Token struct {
	Kind Kind
	// Text is the matched input. It is empty for Start and End.
	Text string
	// Pos is the 0-based rune offset of the token in the original input.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// lexer holds the scanning state for one input.
type lexer struct {
	// src is the input with whitespace removed.
	src []rune
	// cols maps offsets in src to offsets in the original input. It has one
	// more element than src, for the end of input.
	cols []int
	at   int
	// next is the set of kinds permitted at at.
	next KindSet
}

func newLexer(input string) *lexer {
	l := lexer{next: setOf(Start)}
	col := 0
	for _, r := range input {
		if !unicode.IsSpace(r) {
			l.src = append(l.src, r)
			l.cols = append(l.cols, col)
		}
		col++
	}
	l.cols = append(l.cols, col)
	return &l
}

// scan produces the next token. It returns an End token once and only once;
// callers must not call scan after it.
func (l *lexer) scan() (Token, error) {
	for k := Kind(0); k < numKinds; k++ {
		if !l.next.Has(k) {
			continue
		}
		n, ok := k.MatchAt(l.src, l.at)
		if !ok {
			continue
		}
		tok := Token{Kind: k, Text: string(l.src[l.at : l.at+n]), Pos: l.cols[l.at]}
		l.at += n
		l.next = k.Followers()
		return tok, nil
	}
	return Token{}, l.error()
}

func (l *lexer) error() error {
	err := LexError{
		Col:      l.cols[l.at],
		Expected: l.next.Names(),
	}
	if l.at < len(l.src) {
		err.Text = string(l.src[l.at])
	}
	return &err
}

// Tokenize converts an input string into tokens. Whitespace is insignificant.
// The result always begins with a Start token and ends with an End token, and
// each token's kind is a follower of the kind before it. If the input is
// empty or contains anything not permitted by the token grammar, the error is
// a *LexError.
func Tokenize(input string) ([]Token, error) {
	l := newLexer(input)
	var toks []Token
	for {
		tok, err := l.scan()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == End {
			return toks, nil
		}
	}
}
