package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Eval computes the value of the tree in float64 arithmetic. All literals are
// parsed as floating-point numbers, including Int tokens. Arithmetic follows
// IEEE-754: division by zero gives an infinity and 0/0 gives NaN. % is the
// remainder of truncated division, with the sign of the dividend, and ^ is
// exponentiation. The only errors are from trees not created by Parse.
func (n *Node) Eval() (float64, error) {
	k := n.tok.Kind
	if k.IsLiteral() {
		v, err := strconv.ParseFloat(n.tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Col: n.tok.Pos, Token: n.tok.Text, Msg: "invalid number"}
		}
		// Out of range literals are already ±Inf or 0.
		return v, nil
	}
	if err := n.checkShape(); err != nil {
		return 0, err
	}
	var x [2]float64
	for i, c := range n.children {
		v, err := c.Eval()
		if err != nil {
			return 0, err
		}
		x[i] = v
	}
	return apply(k, x[:len(n.children)]), nil
}

// checkShape ensures that an operator node has the operands its arity
// requires.
func (n *Node) checkShape() error {
	want := 0
	switch n.tok.Kind.Arity() {
	case Unary:
		want = 1
	case Binary:
		want = 2
	}
	if want == 0 || len(n.children) != want {
		return &ParseError{Col: n.tok.Pos, Token: tokenText(n.tok), Msg: "malformed tree at"}
	}
	return nil
}

// EvalPrec computes the value of the tree using math/big at the given
// precision in bits. Since big.Float has no NaN, operations that would produce
// one in float64 arithmetic instead return an *ArithmeticError: 0/0, ±Inf/±Inf,
// x%0, ±Inf%y, Inf-Inf, 0*Inf, and negative numbers raised to non-integer
// powers. A prec of 0 means 64.
func (n *Node) EvalPrec(prec uint) (*big.Float, error) {
	if prec == 0 {
		prec = 64
	}
	return n.evalBig(prec)
}

func (n *Node) evalBig(prec uint) (r *big.Float, err error) {
	k := n.tok.Kind
	if k.IsLiteral() {
		return parseBig(n.tok, prec)
	}
	if err := n.checkShape(); err != nil {
		return nil, err
	}
	x := make([]*big.Float, len(n.children))
	for i, c := range n.children {
		if x[i], err = c.evalBig(prec); err != nil {
			return nil, err
		}
	}
	fail := func() error {
		e := ArithmeticError{Op: n.tok.Text, X: x[0], Col: n.tok.Pos}
		if len(x) > 1 {
			e.Y = x[1]
		}
		return &e
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if _, ok := p.(big.ErrNaN); !ok {
			panic(p)
		}
		r, err = nil, fail()
	}()
	r = new(big.Float).SetPrec(prec)
	switch k {
	case UnaryPlus:
		r.Set(x[0])
	case UnaryMinus:
		r.Neg(x[0])
	case Add:
		r.Add(x[0], x[1])
	case Sub:
		r.Sub(x[0], x[1])
	case Mul:
		r.Mul(x[0], x[1])
	case Div:
		// Guard against invalid divisions, 0/0 or inf/inf.
		l, d := x[0], x[1]
		if l.Sign() == 0 && d.Sign() == 0 || l.IsInf() && d.IsInf() {
			return nil, fail()
		}
		r.Quo(l, d)
	case Mod:
		if !bigMod(r, x[0], x[1]) {
			return nil, fail()
		}
	case Pow:
		if !bigPow(r, x[0], x[1]) {
			return nil, fail()
		}
	default:
		panic("calc: no evaluation rule for " + k.String())
	}
	return r, nil
}

// parseBig parses a literal token at a precision.
func parseBig(tok Token, prec uint) (*big.Float, error) {
	r, _, err := new(big.Float).SetPrec(prec).Parse(tok.Text, 10)
	if err != nil {
		// Overflowing exponents are the only errors for text the lexer
		// accepts.
		f, ferr := strconv.ParseFloat(tok.Text, 64)
		if ferr == nil || !errors.Is(ferr, strconv.ErrRange) {
			return nil, &ParseError{Col: tok.Pos, Token: tok.Text, Msg: "invalid number"}
		}
		return new(big.Float).SetPrec(prec).SetFloat64(f), nil
	}
	return r, nil
}

// bigMod sets r to the remainder of x/y truncated toward zero, matching
// math.Mod. It returns false if the result is undefined.
func bigMod(r, x, y *big.Float) bool {
	switch {
	case y.Sign() == 0, x.IsInf():
		return false
	case y.IsInf(), x.Sign() == 0:
		r.Set(x)
		return true
	}
	// The quotient's integer part has at most gap+1 bits, so truncating the
	// quotient to gap+2 bits leaves the integer part exact.
	gap := x.MantExp(nil) - y.MantExp(nil)
	if gap < 0 {
		gap = 0
	}
	var q big.Float
	q.SetPrec(uint(gap) + 2).SetMode(big.ToZero).Quo(x, y)
	i, _ := q.Int(nil)
	// i*y and x-i*y are exact at this precision; round only into r.
	var t big.Float
	t.SetPrec(x.MinPrec() + y.MinPrec() + uint(gap) + 2).SetInt(i)
	t.Mul(&t, y)
	t.Sub(x, &t)
	r.Set(&t)
	if r.Sign() == 0 && x.Signbit() {
		r.Neg(r)
	}
	return true
}

// bigPow sets r to x^y. It returns false if the result is undefined.
func bigPow(r, x, y *big.Float) bool {
	if x.IsInf() || y.IsInf() {
		// bigfloat doesn't handle infinities; math.Pow has the IEEE rules.
		a, _ := x.Float64()
		b, _ := y.Float64()
		v := math.Pow(a, b)
		if math.IsNaN(v) {
			return false
		}
		r.SetFloat64(v)
		return true
	}
	switch {
	case y.Sign() == 0:
		r.SetInt64(1)
		return true
	case x.Sign() == 0:
		if y.Sign() < 0 {
			r.SetInf(false)
		} else {
			r.SetInt64(0)
		}
		return true
	}
	if n, acc := y.Int64(); acc == big.Exact && n != math.MinInt64 {
		powInt(r, x, n)
		return true
	}
	if x.Sign() > 0 {
		// Pow may return a new value rather than r.
		r.Set(bigfloat.Pow(r, x, y))
		return true
	}
	// Negative base requires an integer exponent.
	if !y.IsInt() {
		return false
	}
	var a big.Float
	a.SetPrec(r.Prec()).Neg(x)
	r.Set(bigfloat.Pow(r, &a, y))
	if odd(y) {
		r.Neg(r)
	}
	return true
}

// powInt sets r to x^n by repeated squaring with guard bits.
func powInt(r, x *big.Float, n int64) {
	prec := r.Prec() + 64
	acc := new(big.Float).SetPrec(prec).SetInt64(1)
	b := new(big.Float).SetPrec(prec).Set(x)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		if n&1 == 1 {
			acc.Mul(acc, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		acc.Quo(new(big.Float).SetInt64(1), acc)
	}
	r.Set(acc)
}

// odd returns whether an integer-valued y is odd.
func odd(y *big.Float) bool {
	i, _ := y.Int(nil)
	return i.Bit(0) == 1
}
