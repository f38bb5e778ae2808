package calc

import (
	"testing"
)

func TestMatchAt(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		src  string
		at   int
		n    int
		ok   bool
	}{
		{"int", Int, "123", 0, 3, true},
		{"int-mid", Int, "a12+", 1, 2, true},
		{"int-anchored", Int, "a12", 0, 0, false},
		{"int-past", Int, "12", 3, 0, false},
		{"float", Float, "x1.5", 1, 3, true},
		{"float-int", Float, "15", 0, 0, false},
		{"float-exp", Float, "1e10+", 0, 4, true},
		{"float-no-exp-digits", Float, "1e", 0, 0, false},
		{"open", Open, "((", 1, 1, true},
		{"close-anchored", Close, "1)", 0, 0, false},
		{"minus", UnaryMinus, "1-", 1, 1, true},
		{"pow", Pow, "^", 0, 1, true},
		{"mod", Mod, "%", 0, 1, true},
		{"start", Start, "1", 0, 0, true},
		{"start-late", Start, "1", 1, 0, false},
		{"end", End, "12", 2, 0, true},
		{"end-early", End, "12", 1, 0, false},
		{"end-empty", End, "", 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, ok := c.kind.MatchAt([]rune(c.src), c.at)
			if n != c.n || ok != c.ok {
				t.Errorf("%v.MatchAt(%q, %d): want (%d, %t), got (%d, %t)", c.kind, c.src, c.at, c.n, c.ok, n, ok)
			}
		})
	}
}

func TestFollowersUnambiguous(t *testing.T) {
	// Kinds that match the same text must never be candidates together.
	pairs := [][2]Kind{{UnaryPlus, Add}, {UnaryMinus, Sub}}
	for _, k := range Kinds() {
		f := k.Followers()
		for _, p := range pairs {
			if f.Has(p[0]) && f.Has(p[1]) {
				t.Errorf("%v followers %v contain both %v and %v", k, f, p[0], p[1])
			}
		}
	}
}

func TestFollowers(t *testing.T) {
	if f := End.Followers(); f != 0 {
		t.Errorf("END has followers %v", f)
	}
	if Start.Followers().Has(End) {
		t.Error("END follows START")
	}
	for _, k := range Kinds() {
		if k.Followers().Has(Start) {
			t.Errorf("START follows %v", k)
		}
	}
	for _, k := range []Kind{Int, Float, Close} {
		if !k.Followers().Has(End) {
			t.Errorf("END does not follow %v", k)
		}
	}
}

func TestKindNames(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range Kinds() {
		s := k.String()
		if s == "" {
			t.Errorf("kind %d has no name", k)
		}
		if o, ok := seen[s]; ok {
			t.Errorf("kinds %d and %d have the same name %q", o, k, s)
		}
		seen[s] = k
	}
	if s := Kind(-1).String(); s != "Kind(-1)" {
		t.Errorf("invalid kind has name %q", s)
	}
}

func TestLevels(t *testing.T) {
	var all KindSet
	for i, lv := range levels {
		if i > 0 && levels[i-1].prec <= lv.prec {
			t.Errorf("level %d (prec %d) is not below level %d (prec %d)", i, lv.prec, i-1, levels[i-1].prec)
		}
		for _, k := range lv.kinds.Kinds() {
			if k.Precedence() != lv.prec {
				t.Errorf("%v has prec %d in level with prec %d", k, k.Precedence(), lv.prec)
			}
			if k.RightAssoc() != lv.right {
				t.Errorf("%v associativity differs from its level", k)
			}
		}
		if all&lv.kinds != 0 {
			t.Errorf("level %d repeats kinds %v", i, all&lv.kinds)
		}
		all |= lv.kinds
	}
	if len(all.Kinds()) != len(Kinds()) {
		t.Errorf("levels cover %v, not every kind", all)
	}
}

func TestPrecedenceOrder(t *testing.T) {
	tighter := [][2]Kind{
		{Pow, UnaryMinus},
		{UnaryMinus, Mul},
		{Mul, Add},
		{Close, Pow},
		{Int, Start},
		{Add, Open},
	}
	for _, p := range tighter {
		if p[0].Precedence() <= p[1].Precedence() {
			t.Errorf("%v (%d) should bind tighter than %v (%d)", p[0], p[0].Precedence(), p[1], p[1].Precedence())
		}
	}
}
