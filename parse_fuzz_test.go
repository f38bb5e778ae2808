package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("1")
	f.Add("-(1+2)*3^-4")
	f.Add("((1)")
	f.Add("1 . 5 % 2")
	f.Fuzz(func(t *testing.T, s string) {
		n, err := calc.ParseString(s)
		if err != nil {
			return
		}
		m, err := calc.ParseString(n.String())
		if err != nil {
			t.Fatalf("%q formats as %q which fails to parse: %v", s, n, err)
		}
		if n.String() != m.String() {
			t.Fatalf("%q formats as %q which formats as %q", s, n, m)
		}
	})
}
