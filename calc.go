package calc

import (
	"math/big"
	"strconv"
)

// EvalString is a shortcut to tokenize, parse, and evaluate an expression in
// float64 arithmetic.
func EvalString(text string) (float64, error) {
	n, err := ParseString(text)
	if err != nil {
		return 0, err
	}
	return n.Eval()
}

// EvalStringPrec is a shortcut to tokenize, parse, and evaluate an expression
// at a given precision in bits.
func EvalStringPrec(text string, prec uint) (*big.Float, error) {
	n, err := ParseString(text)
	if err != nil {
		return nil, err
	}
	return n.EvalPrec(prec)
}

// ParseString is a shortcut to tokenize and parse an expression.
func ParseString(text string) (*Node, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Result is the outcome of evaluating one expression.
type Result struct {
	// Expression is the original input, if requested with ShowExpression.
	Expression string
	// Value is the result. It is 0 if Err is not nil.
	Value float64
	// Err is a *LexError, *ParseError, or *ArithmeticError.
	Err error
}

// Failed returns whether the evaluation failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Error returns the error message, or the empty string if evaluation
// succeeded.
func (r Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func (r Result) String() string {
	s := r.Error()
	if s == "" {
		s = strconv.FormatFloat(r.Value, 'g', -1, 64)
	}
	if r.Expression == "" {
		return s
	}
	return r.Expression + " = " + s
}

// Option is an option for EvaluateExpression.
type Option interface {
	evalOption(*evalcfg)
}

type evalcfg struct {
	show bool
}

type showopt bool

func (o showopt) evalOption(c *evalcfg) {
	c.show = bool(o)
}

// ShowExpression causes EvaluateExpression to include the original input in
// its result.
func ShowExpression() Option {
	return showopt(true)
}

// EvaluateExpression evaluates a single expression in float64 arithmetic.
// Every failure is reported in the result rather than returned. It is safe to
// call concurrently.
func EvaluateExpression(text string, opts ...Option) Result {
	var c evalcfg
	for _, opt := range opts {
		opt.evalOption(&c)
	}
	var r Result
	if c.show {
		r.Expression = text
	}
	r.Value, r.Err = EvalString(text)
	if r.Err != nil {
		r.Value = 0
	}
	return r
}
