package ir

// badValue is the shared miss sentinel. It is never produced by
// loading, only by the accessors below, and callers must not modify
// it.
var badValue = &Node{Type: BadValueType}

func BadValue() *Node {
	return badValue
}

func (y *Node) IsBadValue() bool {
	return y.Type == BadValueType
}

func (y *Node) IsNull() bool {
	return y.Type == NullType
}

// Get looks up a string key in a hash node. It returns the BadValue
// sentinel on any miss, so lookups chain:
//
//	doc.Get("server").Get("ports").At(0)
func (y *Node) Get(key string) *Node {
	if y.Type != HashType {
		return badValue
	}
	for i := range y.Fields {
		f := y.Fields[i]
		if f.Type == StringType && f.Tag == "" && f.String == key {
			return y.Values[i]
		}
	}
	return badValue
}

// At returns the i'th element of an array. On a hash it looks up the
// integer key i instead. Anything else, or an out-of-range index,
// yields BadValue.
func (y *Node) At(i int) *Node {
	switch y.Type {
	case ArrayType:
		if i < 0 || i >= len(y.Values) {
			return badValue
		}
		return y.Values[i]
	case HashType:
		for j := range y.Fields {
			f := y.Fields[j]
			if f.Type == IntType && f.Tag == "" && f.Int == int64(i) {
				return y.Values[j]
			}
		}
	}
	return badValue
}

func (y *Node) AsString() (string, bool) {
	if y.Type != StringType {
		return "", false
	}
	return y.String, true
}

func (y *Node) AsInt() (int64, bool) {
	if y.Type != IntType {
		return 0, false
	}
	return y.Int, true
}

func (y *Node) AsFloat() (float64, bool) {
	if y.Type != RealType {
		return 0, false
	}
	return y.Real, true
}

func (y *Node) AsBool() (bool, bool) {
	if y.Type != BoolType {
		return false, false
	}
	return y.Bool, true
}

// Or returns other when y is Null or BadValue, and y otherwise.
func (y *Node) Or(other *Node) *Node {
	if y.Type == NullType || y.Type == BadValueType {
		return other
	}
	return y
}
