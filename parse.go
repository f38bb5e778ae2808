package calc

import (
	"slices"
)

// Expr = num | UnaryPlus Expr | UnaryMinus Expr | Expr op Expr | '(' Expr ')'
// op = '+' | '-' | '*' | '/' | '%' | '^'
//
// Parsing is by repeated reduction. Every token becomes a node, and the parser
// reduces one node at a time from the highest precedence level that has a
// node ready to reduce, until a single node remains.

// level is a group of kinds with equal precedence.
type level struct {
	prec  int
	kinds KindSet
	// right indicates that the rightmost ready node reduces first.
	right bool
}

// levels is the list of precedence levels, most binding first.
var levels = buildLevels()

func buildLevels() []level {
	kinds := Kinds()
	slices.SortStableFunc(kinds, func(a, b Kind) int {
		return b.Precedence() - a.Precedence()
	})
	var v []level
	for _, k := range kinds {
		if len(v) == 0 || v[len(v)-1].prec != k.Precedence() {
			v = append(v, level{prec: k.Precedence(), right: k.RightAssoc()})
		}
		v[len(v)-1].kinds |= setOf(k)
	}
	return v
}

// Parse builds an expression tree from a token sequence, normally the result
// of Tokenize. Start and End tokens are discarded. If the tokens do not form
// exactly one expression or contain a kind not listed by Kinds, the error is
// a *ParseError.
func Parse(tokens []Token) (*Node, error) {
	seq := make([]*Node, len(tokens))
	for i, tok := range tokens {
		if !tok.Kind.valid() {
			return nil, &ParseError{Col: tok.Pos, Token: tokenText(tok), Msg: "unknown token kind"}
		}
		seq[i] = &Node{tok: tok}
	}
	return reduce(seq)
}

// reduce reduces a node sequence to a single complete node. It modifies seq.
func reduce(seq []*Node) (*Node, error) {
	for len(seq) > 1 || len(seq) == 1 && !seq[0].reduced {
		var err error
		seq, err = step(seq)
		if err != nil {
			return nil, err
		}
	}
	if len(seq) == 0 {
		return nil, &ParseError{Col: -1, Msg: "no expression"}
	}
	return seq[0], nil
}

// step performs a single reduction and returns the new sequence.
func step(seq []*Node) ([]*Node, error) {
	for _, lv := range levels {
		i := lv.find(seq)
		if i < 0 {
			continue
		}
		n := seq[i]
		switch n.tok.Kind.Arity() {
		case Hidden:
			return slices.Delete(seq, i, i+1), nil
		case Binary:
			n.children = []*Node{seq[i-1], seq[i+1]}
			n.reduced = true
			seq[i-1] = n
			return slices.Delete(seq, i, i+2), nil
		case Unary:
			n.children = []*Node{seq[i+1]}
			n.reduced = true
			return slices.Delete(seq, i+1, i+2), nil
		case Nullary:
			switch n.tok.Kind {
			case Close:
				return group(seq, i)
			case Open:
				// Every close bracket binds more tightly than any open
				// bracket, so this one has no match.
				return nil, &ParseError{Col: n.tok.Pos, Token: n.tok.Text, Msg: "open bracket with no close bracket"}
			default:
				n.reduced = true
				return seq, nil
			}
		default:
			panic("calc: invalid arity for " + n.tok.String())
		}
	}
	return nil, stuck(seq)
}

// find finds the index of the node to reduce at this level, or -1 if none is
// ready.
func (lv level) find(seq []*Node) int {
	r := -1
	for i, n := range seq {
		if !lv.kinds.Has(n.tok.Kind) || !ready(seq, i) {
			continue
		}
		if !lv.right {
			return i
		}
		r = i
	}
	return r
}

// ready returns whether the node at i is unreduced and has complete operands.
func ready(seq []*Node, i int) bool {
	if seq[i].reduced {
		return false
	}
	switch seq[i].tok.Kind.Arity() {
	case Unary:
		return i+1 < len(seq) && seq[i+1].reduced
	case Binary:
		return i > 0 && i+1 < len(seq) && seq[i-1].reduced && seq[i+1].reduced
	default:
		return true
	}
}

// group resolves the close bracket at i with the nearest unmatched open
// bracket before it, replacing the whole bracketed span with the reduction of
// its contents.
func group(seq []*Node, i int) ([]*Node, error) {
	cl := seq[i].tok
	j := i - 1
	for j >= 0 && (seq[j].tok.Kind != Open || seq[j].reduced) {
		j--
	}
	if j < 0 {
		return nil, &ParseError{Col: cl.Pos, Token: cl.Text, Msg: "close bracket with no open bracket"}
	}
	if j+1 == i {
		return nil, &ParseError{Col: cl.Pos, Token: cl.Text, Msg: "no expression up to"}
	}
	inner := slices.Clone(seq[j+1 : i])
	n, err := reduce(inner)
	if err != nil {
		return nil, err
	}
	n.reduced = true
	seq[j] = n
	return slices.Delete(seq, j+1, i+1), nil
}

// stuck creates an error for a sequence with no node ready to reduce.
func stuck(seq []*Node) error {
	for _, n := range seq {
		if !n.reduced {
			return &ParseError{Col: n.tok.Pos, Token: tokenText(n.tok), Msg: "missing operand for"}
		}
	}
	// Every node is complete, but there is more than one.
	n := seq[1]
	return &ParseError{Col: n.tok.Pos, Token: tokenText(n.tok), Msg: "missing operator before"}
}

// tokenText gets the text of a token for error messages, using the kind name
// for tokens that have no text.
func tokenText(tok Token) string {
	if tok.Text == "" {
		return tok.Kind.String()
	}
	return tok.Text
}
