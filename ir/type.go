package ir

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	RealType
	StringType
	ArrayType
	HashType
	BadValueType
)

var typeStrings = map[Type]string{
	NullType:     "null",
	BoolType:     "bool",
	IntType:      "int",
	RealType:     "real",
	StringType:   "string",
	ArrayType:    "array",
	HashType:     "hash",
	BadValueType: "badvalue",
}

func (t Type) String() string {
	s, ok := typeStrings[t]
	if !ok {
		return "<unknown type>"
	}
	return s
}

// Types returns all node types in rank order.
func Types() []Type {
	return []Type{
		NullType, BoolType, IntType, RealType,
		StringType, ArrayType, HashType, BadValueType,
	}
}
