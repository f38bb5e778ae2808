package calc_test

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"zero", "0", 0},
		{"int", "42", 42},
		{"float", "3.25", 3.25},
		{"dot", ".5", 0.5},
		{"exp", "1e3", 1000},
		{"exp-neg", "2.5E-1", 0.25},
		{"long", "12345678901234567890", 12345678901234567890},
		{"huge", "1e999", math.Inf(1)},

		{"plus", "+4", 4},
		{"neg", "-4", -4},
		{"negneg", "--4", 4},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"mod", "7%3", 1},
		{"mod-neg", "-7%3", -1},
		{"mod-float", "7.5%2", 1.5},
		{"pow", "4^3^2", 262144},
		{"pow-frac", "2^0.5", math.Sqrt2},
		{"pow-neg", "2^-2", 0.25},

		{"prec", "1+2*3", 7},
		{"pow-mul", "2*3^2", 18},
		{"brackets", "(1+2)*3", 9},
		{"neg-add", "-3+4", 1},
		{"neg-brackets", "-(3+4)", -7},
		{"neg-pow", "-2^2", -4},
		{"left", "1-2+3", 2},
		{"left-div", "8/4/2", 1},
		{"spaces", " 1 + 2 ", 3},
		{"nested", "((2+3)*(4-1))^2/5", 45},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("%q: wrong result: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalNonFinite(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pred func(float64) bool
	}{
		{"div0", "1/0", func(x float64) bool { return math.IsInf(x, 1) }},
		{"negdiv0", "-1/0", func(x float64) bool { return math.IsInf(x, -1) }},
		{"0div0", "0/0", math.IsNaN},
		{"mod0", "1%0", math.IsNaN},
		{"infsubinf", "1/0-1/0", math.IsNaN},
		{"negpowfrac", "(-8)^0.5", math.IsNaN},
		{"zeropowneg", "0^-1", func(x float64) bool { return math.IsInf(x, 1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if !c.pred(r) {
				t.Errorf("%q: wrong result %g", c.src, r)
			}
		})
	}
}

func TestEvalIdempotent(t *testing.T) {
	n, err := calc.ParseString("-(1.5+2)^3%7/0.3")
	if err != nil {
		t.Fatal(err)
	}
	first, err := n.Eval()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		r, err := n.Eval()
		if err != nil {
			t.Fatal(err)
		}
		if r != first {
			t.Fatalf("evaluation %d gave %g, first gave %g", i, r, first)
		}
		s, err := calc.EvalString("-(1.5+2)^3%7/0.3")
		if err != nil {
			t.Fatal(err)
		}
		if s != first {
			t.Fatalf("reparse %d gave %g, first gave %g", i, s, first)
		}
	}
}

func TestEvalPrec(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "42", 42},
		{"add", "1+2*3", 7},
		{"neg", "-(3+4)", -7},
		{"plus", "+3", 3},
		{"div", "1/4", 0.25},
		{"mod", "7%3", 1},
		{"mod-neg", "-7%3", -1},
		{"mod-float", "7.5%2", 1.5},
		{"pow", "2^10", 1024},
		{"pow-frac", "4^0.5", 2},
		{"pow-negexp", "2^-2", 0.25},
		{"pow-negbase-odd", "(-8)^3", -512},
		{"pow-negbase-even", "(-2)^4", 16},
		{"pow-zero", "(-3)^0", 1},
		{"zero-pow", "0^3", 0},
		{"div0", "1/0", math.Inf(1)},
		{"zero-powneg", "0^-2", math.Inf(1)},
		{"inf-pow", "(1/0)^2", math.Inf(1)},
		{"mod-inf", "5%(1/0)", 5},
		{"mod-big", "2^200%3", 1},
		{"mod-big-neg", "(-2^200)%3", -1},
		{"mod-big-float", "2^100%0.75", 0.25},
		{"pow-one", "3^1", 3},
		{"pow-negbase-negexp", "(-2)^-3", -0.125},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalStringPrec(c.src, 128)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			f, _ := r.Float64()
			if math.IsInf(c.r, 0) {
				if f != c.r {
					t.Errorf("%q: wrong result: want %g, got %g", c.src, c.r, r)
				}
				return
			}
			if math.Abs(f-c.r) > 1e-12*math.Max(1, math.Abs(c.r)) {
				t.Errorf("%q: wrong result: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalPrecModLarge(t *testing.T) {
	cases := []struct {
		name string
		x    string
		y    int64
	}{
		{"1e30", "1e30", 7},
		{"1e100", "1e100", 7},
		{"1e300", "1e300", 13},
		{"2^70", "1180591620717411303424", 1000003},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := c.x + "%" + strconv.FormatInt(c.y, 10)
			r, err := calc.EvalStringPrec(src, 64)
			if err != nil {
				t.Fatalf("%q: evaluation error: %v", src, err)
			}
			// The remainder of the operand as rounded to 64 bits.
			x, _, err := new(big.Float).SetPrec(64).Parse(c.x, 10)
			if err != nil {
				t.Fatal(err)
			}
			xi, _ := x.Int(nil)
			want := new(big.Int).Rem(xi, big.NewInt(c.y))
			got, acc := r.Int(nil)
			if acc != big.Exact || got.Cmp(want) != 0 {
				t.Errorf("%q: want %v, got %v", src, want, r)
			}
		})
	}
}

func TestEvalPrecModFloat(t *testing.T) {
	vals := []float64{
		0.5, 1, 3, 7, 0.1, 2.75, 1e10, 1e30, 1e300, 123456789.125,
		math.Ldexp(1, 80), math.Ldexp(3, -40), math.MaxFloat64,
	}
	for _, a := range vals {
		for _, b := range vals {
			for _, neg := range []bool{false, true} {
				x := a
				if neg {
					x = -a
				}
				src := "(" + strconv.FormatFloat(x, 'g', -1, 64) + ")%" + strconv.FormatFloat(b, 'g', -1, 64)
				r, err := calc.EvalStringPrec(src, 53)
				if err != nil {
					t.Errorf("%q: evaluation error: %v", src, err)
					continue
				}
				got, _ := r.Float64()
				if want := math.Mod(x, b); got != want || math.Signbit(got) != math.Signbit(want) {
					t.Errorf("%q: want %g, got %g", src, want, got)
				}
			}
		}
	}
}

func TestEvalPrecThird(t *testing.T) {
	r, err := calc.EvalStringPrec("1/3", 256)
	if err != nil {
		t.Fatal(err)
	}
	if r.Prec() != 256 {
		t.Errorf("result has precision %d, want 256", r.Prec())
	}
	want := new(big.Float).SetPrec(256).Quo(big.NewFloat(1), big.NewFloat(3))
	if r.Cmp(want) != 0 {
		t.Errorf("want %.70g, got %.70g", want, r)
	}
}

func TestEvalPrecDefault(t *testing.T) {
	r, err := calc.EvalStringPrec("1+1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Prec() != 64 {
		t.Errorf("default precision is %d, want 64", r.Prec())
	}
}

func TestEvalPrecErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		op   string
		col  int
	}{
		{"0div0", "0/0", "/", 1},
		{"infdivinf", "(1/0)/(1/0)", "/", 5},
		{"mod0", "1%0", "%", 1},
		{"infmod", "(1/0)%2", "%", 5},
		{"infsubinf", "1/0-1/0", "-", 3},
		{"infaddinf", "1/0+-1/0", "+", 3},
		{"zeromulinf", "0*(1/0)", "*", 1},
		{"negpowfrac", "(-8)^0.5", "^", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalStringPrec(c.src, 64)
			if err == nil {
				t.Fatalf("%q: expected error, got %g", c.src, r)
			}
			var ae *calc.ArithmeticError
			if !errors.As(err, &ae) {
				t.Fatalf("%q: wrong error type %T: %v", c.src, err, err)
			}
			if ae.Op != c.op {
				t.Errorf("%q: error for operator %q, want %q", c.src, ae.Op, c.op)
			}
			if ae.Col != c.col {
				t.Errorf("%q: error at %d, want %d", c.src, ae.Col, c.col)
			}
			if !errors.As(err, new(big.ErrNaN)) {
				t.Errorf("%q: error does not unwrap to big.ErrNaN", c.src)
			}
			if calc.Classify(err) != "arithmetic" {
				t.Errorf("%q: classified as %q", c.src, calc.Classify(err))
			}
		})
	}
}
