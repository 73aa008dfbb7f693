package schema

import "testing"

func TestDeepEqualNumbers(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"1", "1.0", true},
		{"1", "1.00", true},
		{"1.5", "1.50", true},
		{"1", "2", false},
		{"0.1", "0.10000", true},
	}
	for _, c := range cases {
		got := DeepEqual(Value{Kind: KindNumber, Num: c.a}, Value{Kind: KindNumber, Num: c.b})
		if got != c.want {
			t.Errorf("DeepEqual(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestDeepEqualObjectsOrderInsensitive(t *testing.T) {
	a := Value{Kind: KindObject, Obj: map[string]Value{
		"x": {Kind: KindNumber, Num: "1"},
		"y": {Kind: KindString, Str: "hi"},
	}, Keys: []string{"x", "y"}}
	b := Value{Kind: KindObject, Obj: map[string]Value{
		"y": {Kind: KindString, Str: "hi"},
		"x": {Kind: KindNumber, Num: "1.0"},
	}, Keys: []string{"y", "x"}}
	if !DeepEqual(a, b) {
		t.Fatalf("expected order-insensitive structural equality")
	}
}

func TestDeepEqualArraysOrderSensitive(t *testing.T) {
	a := Value{Kind: KindArray, Arr: []Value{{Kind: KindNumber, Num: "1"}, {Kind: KindNumber, Num: "2"}}}
	b := Value{Kind: KindArray, Arr: []Value{{Kind: KindNumber, Num: "2"}, {Kind: KindNumber, Num: "1"}}}
	if DeepEqual(a, b) {
		t.Fatalf("array order must matter")
	}
}

func TestIsInteger(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"1.0", true},
		{"1.5", false},
		{"-3", true},
		{"-3.1", false},
	}
	for _, c := range cases {
		if got := IsInteger(c.in); got != c.want {
			t.Errorf("IsInteger(%s) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNumberIsMultipleOf(t *testing.T) {
	cases := []struct {
		n, d string
		want bool
	}{
		{"9", "3", true},
		{"10", "3", false},
		{"1.5", "0.5", true},
		{"1", "0.3", false},
	}
	for _, c := range cases {
		if got := NumberIsMultipleOf(c.n, c.d); got != c.want {
			t.Errorf("NumberIsMultipleOf(%s, %s) = %v, want %v", c.n, c.d, got, c.want)
		}
	}
}
