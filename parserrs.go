package calc

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// LexError indicates input that does not match any kind of token permitted at
// its position. It implements InputError.
type LexError struct {
	// Col is the 0-based rune offset of the invalid input, counting
	// whitespace in the original text.
	Col int
	// Text is the rune at Col, or the empty string at the end of input.
	Text string
	// Expected is the names of the token kinds that were permitted at Col.
	Expected []string
}

func (err *LexError) Error() string {
	what := "end of input"
	if err.Text != "" {
		what = strconv.Quote(err.Text)
	}
	return errpos(err.Col, "unexpected "+what+", expected one of "+strings.Join(err.Expected, ", "))
}

func (err *LexError) Pos() int {
	return err.Col
}

// ParseError indicates a token sequence that cannot be reduced to a single
// expression tree, most often because of mismatched brackets. It implements
// InputError.
type ParseError struct {
	// Col is the position of the token that caused the error, or -1 if no
	// single token is responsible.
	Col int
	// Token is the text of the token that caused the error, if any.
	Token string
	// Msg describes the problem.
	Msg string
}

func (err *ParseError) Error() string {
	msg := err.Msg
	if err.Token != "" {
		msg += " " + strconv.Quote(err.Token)
	}
	if err.Col < 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *ParseError) Pos() int {
	return err.Col
}

// ArithmeticError is an error evaluating an operator on operands outside its
// domain. Float64 evaluation follows IEEE-754 and never produces one;
// arbitrary-precision evaluation has no NaN and reports this instead.
// ArithmeticError unwraps to big.ErrNaN.
type ArithmeticError struct {
	// Op is the operator symbol.
	Op string
	// X and Y are the operands. Y is nil for unary operators.
	X, Y *big.Float
	// Col is the position of the operator.
	Col int
}

func (err *ArithmeticError) Error() string {
	var b strings.Builder
	b.WriteString("undefined result: ")
	if err.Y == nil {
		b.WriteString(err.Op)
		b.WriteString(err.X.String())
	} else {
		b.WriteString(err.X.String())
		b.WriteString(" " + err.Op + " ")
		b.WriteString(err.Y.String())
	}
	return errpos(err.Col, b.String())
}

func (err *ArithmeticError) Unwrap() error {
	return big.ErrNaN{}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based rune offset in the original input of the
	// token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
)

// Classify names the stage an error came from: "lex", "parse", "arithmetic",
// or "other".
func Classify(err error) string {
	var (
		le *LexError
		pe *ParseError
		ae *ArithmeticError
	)
	switch {
	case errors.As(err, &le):
		return "lex"
	case errors.As(err, &pe):
		return "parse"
	case errors.As(err, &ae):
		return "arithmetic"
	default:
		return "other"
	}
}
