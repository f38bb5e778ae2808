package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Kind is a lexical category of a token.
type Kind int8

// Kinds in lexing order. The lexer tries candidate kinds in this order, so
// Float must precede Int.
const (
	// Start marks the beginning of the input.
	Start Kind = iota
	// End marks the end of the input.
	End
	// Open is an open bracket, (.
	Open
	// Close is a close bracket, ).
	Close
	// Float is a number with a decimal point or exponent.
	Float
	// Int is a number made only of digits.
	Int
	// UnaryPlus is a leading +, which leaves its operand unchanged.
	UnaryPlus
	// UnaryMinus is a leading -, which negates its operand.
	UnaryMinus
	// Add is binary addition, +.
	Add
	// Sub is binary subtraction, -.
	Sub
	// Mul is multiplication, *.
	Mul
	// Div is division, /.
	Div
	// Mod is the remainder of truncated division, %.
	Mod
	// Pow is exponentiation, ^.
	Pow

	numKinds
)

// Arity is the number of operands a kind consumes when the parser reduces it.
type Arity int8

const (
	// Hidden kinds are removed by the parser and contribute no value.
	Hidden Arity = iota
	// Nullary kinds are leaves: literals and brackets.
	Nullary
	Unary
	Binary
)

func (a Arity) String() string {
	switch a {
	case Hidden:
		return "hidden"
	case Nullary:
		return "nullary"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	default:
		return "arity(" + strconv.Itoa(int(a)) + ")"
	}
}

// KindSet is a set of kinds.
type KindSet uint16

// setOf creates a set from a list of kinds.
func setOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Has returns whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return k >= 0 && k < numKinds && s&(1<<uint(k)) != 0
}

// Kinds lists the kinds in the set in lexing order.
func (s KindSet) Kinds() []Kind {
	var v []Kind
	for k := Kind(0); k < numKinds; k++ {
		if s.Has(k) {
			v = append(v, k)
		}
	}
	return v
}

// Names lists the names of the kinds in the set in lexing order.
func (s KindSet) Names() []string {
	var v []string
	for _, k := range s.Kinds() {
		v = append(v, k.String())
	}
	return v
}

func (s KindSet) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

var (
	literals    = setOf(Float, Int)
	unaryKinds  = setOf(UnaryPlus, UnaryMinus)
	binaryKinds = setOf(Add, Sub, Mul, Div, Mod, Pow)

	// operandStart is what may follow anything that expects an operand.
	operandStart = literals | unaryKinds | setOf(Open)
	// operandEnd is what may follow a complete operand.
	operandEnd = binaryKinds | setOf(Close, End)
)

// kindInfo is the registry entry for a kind.
type kindInfo struct {
	name  string
	match *regexp2.Regexp
	prec  int
	arity Arity
	// right indicates right-associativity.
	right     bool
	followers KindSet
}

// anchored compiles a pattern that only matches at the position where
// matching starts.
func anchored(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(`\G(?:`+pattern+`)`, regexp2.None)
}

// registry is fully built during package initialization and never modified,
// so it is safe for concurrent use.
var registry = [numKinds]kindInfo{
	Start: {
		name:      "START",
		prec:      90,
		arity:     Hidden,
		followers: operandStart,
	},
	End: {
		name:  "END",
		match: anchored(`\z`),
		prec:  90,
		arity: Hidden,
	},
	Open: {
		name:      "OPEN_BRACKET",
		match:     anchored(`\(`),
		prec:      0,
		arity:     Nullary,
		followers: operandStart,
	},
	Close: {
		name:      "CLOSE_BRACKET",
		match:     anchored(`\)`),
		prec:      50,
		arity:     Nullary,
		followers: operandEnd,
	},
	Float: {
		name:      "NUMBER_FLOAT",
		match:     anchored(`(?:[0-9]+\.[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+`),
		prec:      100,
		arity:     Nullary,
		followers: operandEnd,
	},
	Int: {
		name:      "NUMBER_INT",
		match:     anchored(`[0-9]+`),
		prec:      100,
		arity:     Nullary,
		followers: operandEnd,
	},
	UnaryPlus: {
		name:      "UNARY_PLUS",
		match:     anchored(`\+`),
		prec:      25,
		arity:     Unary,
		right:     true,
		followers: operandStart,
	},
	UnaryMinus: {
		name:      "UNARY_MINUS",
		match:     anchored(`-`),
		prec:      25,
		arity:     Unary,
		right:     true,
		followers: operandStart,
	},
	Add: {
		name:      "OPERATOR_ADD",
		match:     anchored(`\+`),
		prec:      10,
		arity:     Binary,
		followers: operandStart,
	},
	Sub: {
		name:      "OPERATOR_SUB",
		match:     anchored(`-`),
		prec:      10,
		arity:     Binary,
		followers: operandStart,
	},
	Mul: {
		name:      "OPERATOR_MUL",
		match:     anchored(`\*`),
		prec:      20,
		arity:     Binary,
		followers: operandStart,
	},
	Div: {
		name:      "OPERATOR_DIV",
		match:     anchored(`/`),
		prec:      20,
		arity:     Binary,
		followers: operandStart,
	},
	Mod: {
		name:      "OPERATOR_MOD",
		match:     anchored(`%`),
		prec:      20,
		arity:     Binary,
		followers: operandStart,
	},
	Pow: {
		name:      "OPERATOR_POW",
		match:     anchored(`\^`),
		prec:      30,
		arity:     Binary,
		right:     true,
		followers: operandStart,
	},
}

func (k Kind) valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	if !k.valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return registry[k].name
}

// Precedence returns the kind's reduction precedence. Higher binds tighter.
func (k Kind) Precedence() int {
	return registry[k].prec
}

// Arity returns the number of operands the kind consumes.
func (k Kind) Arity() Arity {
	return registry[k].arity
}

// RightAssoc returns whether the kind groups right to left among kinds of
// equal precedence.
func (k Kind) RightAssoc() bool {
	return registry[k].right
}

// Followers returns the set of kinds which may immediately follow k.
func (k Kind) Followers() KindSet {
	return registry[k].followers
}

// IsLiteral returns whether k is a number kind.
func (k Kind) IsLiteral() bool {
	return literals.Has(k)
}

// MatchAt attempts to match the kind exactly at offset at in src. The result
// is the number of runes matched. Start matches the empty string only at
// offset 0.
func (k Kind) MatchAt(src []rune, at int) (int, bool) {
	if at < 0 || at > len(src) {
		return 0, false
	}
	if k == Start {
		return 0, at == 0
	}
	if !k.valid() {
		return 0, false
	}
	m, err := registry[k].match.FindRunesMatchStartingAt(src, at)
	if err != nil || m == nil || m.Index != at {
		return 0, false
	}
	return m.Length, true
}

// Kinds returns all kinds in lexing order.
func Kinds() []Kind {
	v := make([]Kind, numKinds)
	for i := range v {
		v[i] = Kind(i)
	}
	return v
}

// apply computes the value of a node of kind k from its children's values.
// Literal kinds are handled by the caller.
func apply(k Kind, x []float64) float64 {
	switch k {
	case UnaryPlus:
		return x[0]
	case UnaryMinus:
		return -x[0]
	case Add:
		return x[0] + x[1]
	case Sub:
		return x[0] - x[1]
	case Mul:
		return x[0] * x[1]
	case Div:
		return x[0] / x[1]
	case Mod:
		return math.Mod(x[0], x[1])
	case Pow:
		return math.Pow(x[0], x[1])
	default:
		panic("calc: no evaluation rule for " + k.String())
	}
}
