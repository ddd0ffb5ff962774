package exprparser

import "testing"

func TestEvaluateLiterals(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"42", 42},
		{"0x2A", 42},
		{"052", 42}, // octal
		{"0b101010", 42},
		{"10u", 10},
		{"10L", 10},
		{"10UL", 10},
	}
	for _, c := range cases {
		r := Evaluate(c.expr, nil)
		if r.Kind != KindNumber || r.Int != c.want {
			t.Errorf("Evaluate(%q) = %+v, want number %d", c.expr, r, c.want)
		}
	}
}

func TestEvaluateFloat(t *testing.T) {
	r := Evaluate("3.14f", nil)
	if r.Kind != KindNumber || !r.IsFloat || r.Float != 3.14 {
		t.Errorf("Evaluate(3.14f) = %+v", r)
	}
}

func TestEvaluatePrecedence(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"1 << 2 + 1", 8}, // shift lower than +: 1 << (2+1)
		{"4 & 2 | 1", 1},
		{"1 == 1 && 2 != 3", 1},
		{"10 % 3", 1},
		{"~0", -1},
		{"!0", 1},
		{"-5 + 10", 5},
	}
	for _, c := range cases {
		r := Evaluate(c.expr, nil)
		if r.Kind != KindNumber || r.Int != c.want {
			t.Errorf("Evaluate(%q) = %+v, want %d", c.expr, r, c.want)
		}
	}
}

func TestEvaluateIdentifierSubstitution(t *testing.T) {
	syms := MapSymbols{
		Enums:  map[string]int64{"RED": 0, "GREEN": 1, "N": 4},
		Macros: map[string]Result{"MAX": Expr("N * 2")},
	}
	r := Evaluate("MAX + 1", syms)
	if r.Kind != KindNumber || r.Int != 9 {
		t.Errorf("Evaluate(MAX + 1) = %+v, want 9", r)
	}

	r2 := Evaluate("GREEN", syms)
	if r2.Kind != KindNumber || r2.Int != 1 {
		t.Errorf("Evaluate(GREEN) = %+v, want 1", r2)
	}
}

func TestEvaluateCyclicMacroGuard(t *testing.T) {
	syms := MapSymbols{
		Macros: map[string]Result{
			"A": Expr("B + 1"),
			"B": Expr("A + 1"),
		},
	}
	r := Evaluate("A", syms)
	if r.Kind != KindExpression {
		t.Errorf("Evaluate(A) with cyclic macros = %+v, want expression passthrough", r)
	}
}

func TestEvaluateUnknownIdentifierPassesThrough(t *testing.T) {
	r := Evaluate("UNKNOWN_SYMBOL", MapSymbols{})
	if r.Kind != KindExpression || r.Text != "UNKNOWN_SYMBOL" {
		t.Errorf("Evaluate(UNKNOWN_SYMBOL) = %+v", r)
	}
}

func TestEvaluateStringAndCharLiterals(t *testing.T) {
	r := Evaluate(`"hello"`, nil)
	if r.Kind != KindString || r.Text != `"hello"` {
		t.Errorf("string literal: %+v", r)
	}

	r2 := Evaluate("'A'", nil)
	if r2.Kind != KindNumber || r2.Int != 65 {
		t.Errorf("char literal: %+v", r2)
	}
}

func TestEvaluateNeverPanics(t *testing.T) {
	inputs := []string{"", "(", ")", "1 +", "+ + +", "@#$%"}
	for _, in := range inputs {
		_ = Evaluate(in, nil)
	}
}
