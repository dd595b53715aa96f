package ir

import (
	"cmp"
	"math"
	"strings"
)

// Equal reports deep equality of two nodes. Real values compare by
// parsed value, not source text, and NaN equals NaN so that loaded
// documents round trip.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	if c := strings.Compare(a.Tag, b.Tag); c != 0 {
		return c
	}

	switch a.Type {
	case IntType:
		return cmp.Compare(a.Int, b.Int)
	case RealType:
		return compareReals(a.Real, b.Real)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case HashType:
		return compareHashes(a, b)
	case NullType, BadValueType:
		return 0
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: BadValue < Null < Bool < Int < Real < String < Array < Hash
func rank(t Type) int {
	switch t {
	case BadValueType:
		return 0
	case NullType:
		return 1
	case BoolType:
		return 2
	case IntType:
		return 3
	case RealType:
		return 4
	case StringType:
		return 5
	case ArrayType:
		return 6
	case HashType:
		return 7
	}
	return 100
}

func compareReals(a, b float64) int {
	if math.IsNaN(a) && math.IsNaN(b) {
		return 0
	}
	if math.IsNaN(a) {
		return -1
	}
	if math.IsNaN(b) {
		return 1
	}
	return cmp.Compare(a, b)
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareHashes(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
