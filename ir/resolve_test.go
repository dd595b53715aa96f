package ir

import (
	"math"
	"testing"
)

type scalarTest struct {
	in   string
	want *Node
}

func TestFromScalarCoreSchema(t *testing.T) {
	tests := []scalarTest{
		{"~", Null()},
		{"null", Null()},
		{"Null", Null()},
		{"NULL", Null()},
		{"", Null()},
		{"true", FromBool(true)},
		{"True", FromBool(true)},
		{"TRUE", FromBool(true)},
		{"false", FromBool(false)},
		{"False", FromBool(false)},
		{"FALSE", FromBool(false)},
		{"0", FromInt(0)},
		{"-7", FromInt(-7)},
		{"+42", FromInt(42)},
		{"0x1A", FromInt(26)},
		{"0o17", FromInt(15)},
		{"1.5", FromFloatText(1.5, "1.5")},
		{"-2e3", FromFloatText(-2000, "-2e3")},
		{".inf", FromFloatText(math.Inf(1), ".inf")},
		{"-.INF", FromFloatText(math.Inf(-1), "-.INF")},
		{".NaN", FromFloatText(math.NaN(), ".NaN")},
		{"yes", FromString("yes")},
		{"no", FromString("no")},
		{"on", FromString("on")},
		{"off", FromString("off")},
		{"y", FromString("y")},
		{"0x", FromString("0x")},
		{"0xZZ", FromString("0xZZ")},
		{"1e", FromString("1e")},
		{"inf", FromString("inf")},
		{"nan", FromString("nan")},
		{"0x1p-2", FromString("0x1p-2")},
		{"hello", FromString("hello")},
	}
	for _, tst := range tests {
		got := FromScalar(tst.in)
		if !Equal(got, tst.want) {
			t.Errorf("FromScalar(%q) = %v %+v, want %v", tst.in, got.Type, got, tst.want.Type)
		}
	}
}

func TestFromScalarKeepsRealText(t *testing.T) {
	n := FromScalar("1.10")
	if n.Type != RealType {
		t.Fatalf("got %v, want real", n.Type)
	}
	if n.Number != "1.10" {
		t.Errorf("source text %q, want %q", n.Number, "1.10")
	}
	if n.Real != 1.1 {
		t.Errorf("parsed %v, want 1.1", n.Real)
	}
}
