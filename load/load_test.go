package load

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yamlcore/go-yamlcore/ir"
)

func one(t *testing.T, in string) *ir.Node {
	t.Helper()
	docs, err := DocumentsString(in)
	if err != nil {
		t.Fatalf("load %q: %v", in, err)
	}
	if len(docs) != 1 {
		t.Fatalf("load %q: %d documents, want 1", in, len(docs))
	}
	return docs[0]
}

func TestLoadScalarMapping(t *testing.T) {
	doc := one(t, "a: 1\nb: 2\n")
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("a"), Val: ir.FromInt(1)},
		{Key: ir.FromString("b"), Val: ir.FromInt(2)},
	})
	if !ir.Equal(doc, want) {
		t.Errorf("got %+v", doc)
	}
}

func TestLoadNestedCollections(t *testing.T) {
	doc := one(t, "- foo: bar\n- baz:\n  c: [3, 4, 5]\n")
	if doc.Type != ir.ArrayType || doc.Len() != 2 {
		t.Fatalf("got %+v, want a 2-element array", doc)
	}
	if s, _ := doc.At(0).Get("foo").AsString(); s != "bar" {
		t.Errorf("element 0: %+v", doc.At(0))
	}
	if !doc.At(1).Get("baz").IsNull() {
		t.Errorf("baz: %+v", doc.At(1).Get("baz"))
	}
	c := doc.At(1).Get("c")
	if c.Len() != 3 {
		t.Fatalf("c: %+v", c)
	}
	for i, want := range []int64{3, 4, 5} {
		if got, _ := c.At(i).AsInt(); got != want {
			t.Errorf("c[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestLoadCoreSchema(t *testing.T) {
	tests := []struct {
		in   string
		want *ir.Node
	}{
		{"null\n", ir.Null()},
		{"~\n", ir.Null()},
		{"123\n", ir.FromInt(123)},
		{"0x1A\n", ir.FromInt(26)},
		{"3.14\n", ir.FromFloatText(3.14, "3.14")},
		{"true\n", ir.FromBool(true)},
		{"TRUE\n", ir.FromBool(true)},
		{"yes\n", ir.FromString("yes")},
		{"no\n", ir.FromString("no")},
		{"'123'\n", ir.FromString("123")},
		{"\"~\"\n", ir.FromString("~")},
		{"|\n 123\n", ir.FromString("123\n")},
	}
	for _, tst := range tests {
		doc := one(t, tst.in)
		if !ir.Equal(doc, tst.want) {
			t.Errorf("load %q: got %+v, want %+v", tst.in, doc, tst.want)
		}
	}
}

func TestLoadAliasIsIndependentCopy(t *testing.T) {
	doc := one(t, "a: &x 1\nb: *x\n")
	a, b := doc.Get("a"), doc.Get("b")
	if !ir.Equal(a, b) {
		t.Fatalf("a %+v and b %+v differ", a, b)
	}
	if a == b {
		t.Error("a and b share a node")
	}
	a.Int = 99
	if got, _ := b.AsInt(); got != 1 {
		t.Errorf("b changed with a: %d", got)
	}
}

func TestLoadAliasedCollection(t *testing.T) {
	doc := one(t, "a: &x [1, 2]\nb: *x\n")
	b := doc.Get("b")
	if b.Len() != 2 {
		t.Fatalf("b: %+v", b)
	}
	doc.Get("a").Append(ir.FromInt(3))
	if b.Len() != 2 {
		t.Error("appending to a grew b")
	}
}

func TestLoadMultiDocument(t *testing.T) {
	docs, err := DocumentsString("---\na: 1\n---\nb: 2\n")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, docs, 2)
	if v, _ := docs[0].Get("a").AsInt(); v != 1 {
		t.Errorf("doc 0: %+v", docs[0])
	}
	if v, _ := docs[1].Get("b").AsInt(); v != 2 {
		t.Errorf("doc 1: %+v", docs[1])
	}
}

func TestLoadEmptyStream(t *testing.T) {
	for _, in := range []string{"", "# only a comment\n"} {
		docs, err := DocumentsString(in)
		if err != nil {
			t.Errorf("load %q: %v", in, err)
		}
		if len(docs) != 0 {
			t.Errorf("load %q: %d documents, want 0", in, len(docs))
		}
	}
	// An explicit document marker makes one empty document.
	doc := one(t, "---\n")
	if !doc.IsNull() {
		t.Errorf("explicit empty document: %+v", doc)
	}
}

func TestLoadDuplicateKeyLastWins(t *testing.T) {
	doc := one(t, "a: 1\nb: 2\na: 3\n")
	if doc.Len() != 2 {
		t.Fatalf("got %d entries, want 2", doc.Len())
	}
	if v, _ := doc.Get("a").AsInt(); v != 3 {
		t.Errorf("a = %v, want 3", doc.Get("a"))
	}
	// The overwritten key keeps its original position.
	if s, _ := doc.Fields[0].AsString(); s != "a" {
		t.Errorf("first key %+v, want a", doc.Fields[0])
	}
}

func TestLoadCoreTagEnforcement(t *testing.T) {
	good := []struct {
		in   string
		want *ir.Node
	}{
		{"!!int 5\n", ir.FromInt(5)},
		{"!!bool true\n", ir.FromBool(true)},
		{"!!float 1.5\n", ir.FromFloatText(1.5, "1.5")},
		{"!!null ~\n", ir.Null()},
		{"!!str 5\n", ir.FromString("5")},
	}
	for _, tst := range good {
		doc := one(t, tst.in)
		if !ir.Equal(doc, tst.want) {
			t.Errorf("load %q: got %+v, want %+v", tst.in, doc, tst.want)
		}
	}

	bad := []string{
		"!!int foo\n",
		"!!bool yes\n",
		"!!float abc\n",
		"!!null x\n",
	}
	for _, in := range bad {
		_, err := DocumentsString(in)
		if err == nil {
			t.Errorf("load %q: expected error", in)
			continue
		}
		var le *LoadError
		if !errors.As(err, &le) {
			t.Errorf("load %q: error %v is not a *LoadError", in, err)
		}
	}
}

func TestLoadApplicationTags(t *testing.T) {
	doc := one(t, "!point {x: 1}\n")
	if doc.Tag != "!point" || doc.Type != ir.HashType {
		t.Errorf("got %+v", doc)
	}

	doc = one(t, "!degrees 45\n")
	if doc.Tag != "!degrees" {
		t.Errorf("got %+v", doc)
	}
	// Tagged scalars keep their text unresolved.
	if s, _ := doc.AsString(); s != "45" {
		t.Errorf("tagged scalar resolved to %+v", doc)
	}

	doc = one(t, "!<tag:example.com,2024:x> 1\n")
	if doc.Tag != "tag:example.com,2024:x" {
		t.Errorf("got %+v", doc)
	}

	// The non-specific "!" tag forces the default resolution, a
	// string for scalars, and is not recorded.
	doc = one(t, "! 123\n")
	if doc.Tag != "" {
		t.Errorf("bang tag recorded: %+v", doc)
	}
	if s, _ := doc.AsString(); s != "123" {
		t.Errorf("got %+v, want the string 123", doc)
	}
}

func TestLoadTagEquality(t *testing.T) {
	doc := one(t, "a: !t 1\nb: 1\n")
	if ir.Equal(doc.Get("a"), doc.Get("b")) {
		t.Error("tagged and untagged values compare equal")
	}
}

func TestLoadCyclicAliasRejected(t *testing.T) {
	// An alias referencing a still-open ancestor cannot be
	// materialized by value copy.
	_, err := DocumentsString("&a [*a]\n")
	if !errors.Is(err, ErrUndefinedAlias) {
		t.Errorf("got %v, want ErrUndefinedAlias", err)
	}
}

func TestLoadNegativeCorpus(t *testing.T) {
	inputs := []string{
		"\"unterminated",
		"'unterminated",
		"a:\n  b: 1\n\tc: 2\n",
		"a: *nope\n",
		"%YAML abc\n",
		"%YAML 1.2\n%YAML 1.2\n---\nx\n",
		"[a, b",
		"{a: 1",
		"!u!x 1\n",
		"a: |0\n x\n",
	}
	for _, in := range inputs {
		docs, err := DocumentsString(in)
		if err == nil {
			t.Errorf("load %q: expected error, got %d documents", in, len(docs))
		}
		if docs != nil {
			t.Errorf("load %q: partial trees returned with error", in)
		}
	}
}

func toAny(n *ir.Node) any {
	switch n.Type {
	case ir.BoolType:
		return n.Bool
	case ir.IntType:
		return int(n.Int)
	case ir.RealType:
		return n.Real
	case ir.StringType:
		return n.String
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = toAny(v)
		}
		return res
	case ir.HashType:
		res := map[string]any{}
		for i, f := range n.Fields {
			res[f.String] = toAny(n.Values[i])
		}
		return res
	}
	return nil
}

// TestLoadAgreesWithYAMLv3 cross-checks a few documents against an
// independent implementation.
func TestLoadAgreesWithYAMLv3(t *testing.T) {
	inputs := []string{
		"a: 1\nb: [true, ~, 3.5]\nc: hello\n",
		"- x\n- {y: 2}\n- [1, 2]\n",
		"a:\n- b\n- c\n",
		"key: \"quoted: value\"\n",
	}
	for _, in := range inputs {
		doc := one(t, in)
		var ref any
		require.NoError(t, yaml.Unmarshal([]byte(in), &ref), in)
		if d := cmp.Diff(ref, toAny(doc)); d != "" {
			t.Errorf("load %q differs from yaml.v3 (-ref +got):\n%s", in, d)
		}
	}
}
