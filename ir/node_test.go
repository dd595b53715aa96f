package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetPairOverwrites(t *testing.T) {
	h := NewHash()
	h.SetPair(FromString("a"), FromInt(1))
	h.SetPair(FromString("b"), FromInt(2))
	h.SetPair(FromString("a"), FromInt(3))
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	if got, _ := h.Get("a").AsInt(); got != 3 {
		t.Errorf("a = %d, want 3", got)
	}
	// overwrite keeps the original position
	if h.Fields[0].String != "a" || h.Fields[1].String != "b" {
		t.Errorf("key order changed: %v %v", h.Fields[0], h.Fields[1])
	}
}

func TestGetChainsThroughBadValue(t *testing.T) {
	h := NewHash()
	h.SetPair(FromString("a"), FromSlice([]*Node{FromInt(10)}))
	if got, ok := h.Get("a").At(0).AsInt(); !ok || got != 10 {
		t.Errorf("a[0] = %d %v, want 10 true", got, ok)
	}
	if v := h.Get("nope").At(3).Get("deeper"); !v.IsBadValue() {
		t.Errorf("miss chain = %v, want badvalue", v)
	}
	if v := h.Get("a").At(9); !v.IsBadValue() {
		t.Errorf("out of range = %v, want badvalue", v)
	}
}

func TestAtIntegerKeyedHash(t *testing.T) {
	h := NewHash()
	h.SetPair(FromInt(0), FromString("zero"))
	h.SetPair(FromInt(2), FromString("two"))
	if got, _ := h.At(2).AsString(); got != "two" {
		t.Errorf("h.At(2) = %q, want %q", got, "two")
	}
	if !h.At(1).IsBadValue() {
		t.Errorf("h.At(1) should miss")
	}
}

func TestOr(t *testing.T) {
	def := FromInt(80)
	if got := Null().Or(def); got != def {
		t.Errorf("null.Or = %v", got)
	}
	if got := BadValue().Or(def); got != def {
		t.Errorf("badvalue.Or = %v", got)
	}
	v := FromInt(8080)
	if got := v.Or(def); got != v {
		t.Errorf("value.Or = %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{Key: FromString("xs"), Val: FromSlice([]*Node{FromInt(1), FromInt(2)})},
		{Key: FromString("s"), Val: FromString("v")},
	})
	cl := orig.Clone()
	if !Equal(orig, cl) {
		t.Fatalf("clone differs:\n%s", cmp.Diff(orig, cl))
	}
	cl.Get("xs").Values[0] = FromInt(99)
	cl.Get("xs").Append(FromInt(3))
	if got, _ := orig.Get("xs").At(0).AsInt(); got != 1 {
		t.Errorf("mutating clone changed original: %d", got)
	}
	if orig.Get("xs").Len() != 2 {
		t.Errorf("mutating clone changed original length")
	}
}

func TestEqualTagsAndReals(t *testing.T) {
	if Equal(FromString("x").WithTag("!a"), FromString("x")) {
		t.Errorf("tagged and untagged compare equal")
	}
	a := FromFloatText(1.5, "1.5")
	b := FromFloatText(1.5, "1.50")
	if !Equal(a, b) {
		t.Errorf("reals with different source text compare unequal")
	}
	if !Equal(FromScalar(".nan"), FromScalar(".NaN")) {
		t.Errorf("nan != nan")
	}
}
