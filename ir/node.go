package ir

// Node is a single YAML value. It is a tagged union: the Type field
// selects which of the value fields is meaningful.
//
// Scalars use String, Bool, Int or Real. Real values keep the exact
// source text in Number alongside the parsed Real so that emitting a
// loaded document does not reformat numbers.
//
// Arrays keep their elements in Values. Hashes keep keys in Fields and
// the value for Fields[i] in Values[i]; entry order is insertion order
// and keys are unique (a later duplicate key overwrites the earlier
// value in place).
//
// Tag holds an explicit application tag (for example "!mytag" or a
// verbatim "!<tag:example.com,2024:x>"). Core-schema "!!" tags are
// resolved away during loading and never stored here.
type Node struct {
	Type Type
	Tag  string

	String string
	Bool   bool
	Int    int64
	Real   float64
	Number string

	Fields []*Node
	Values []*Node
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	return y
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Tag = y.Tag
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Int = y.Int
	dst.Real = y.Real
	dst.Number = y.Number
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type: IntType,
		Int:  v,
	}
}

func FromFloat(f float64) *Node {
	return FromFloatText(f, "")
}

// FromFloatText builds a real node keeping the source text the value
// was parsed from. An empty text means there is no preferred rendering.
func FromFloatText(f float64, text string) *Node {
	return &Node{
		Type:   RealType,
		Real:   f,
		Number: text,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

func NewHash() *Node {
	return &Node{Type: HashType}
}

func FromSlice(ys []*Node) *Node {
	return &Node{
		Type:   ArrayType,
		Values: ys,
	}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := NewHash()
	for i := range kvs {
		kv := &kvs[i]
		k := kv.Key
		if k == nil {
			k = Null()
		}
		res.SetPair(k, kv.Val)
	}
	return res
}

// Append adds an element to an array node.
func (y *Node) Append(v *Node) {
	y.Values = append(y.Values, v)
}

// SetPair inserts a key/value entry in a hash node. An existing equal
// key keeps its position and gets the new value.
func (y *Node) SetPair(key, val *Node) {
	for i := range y.Fields {
		if Equal(y.Fields[i], key) {
			y.Values[i] = val
			return
		}
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// Len returns the number of elements of an array or entries of a hash,
// and 0 for anything else.
func (y *Node) Len() int {
	switch y.Type {
	case ArrayType:
		return len(y.Values)
	case HashType:
		return len(y.Fields)
	}
	return 0
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yf := range y.Fields {
			if err := yf.Visit(f); err != nil {
				return err
			}
		}
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
