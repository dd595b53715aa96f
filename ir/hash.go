package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// Hash returns a 64-bit hash of the node, consistent with Equal.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)

	h.WriteByte(byte(n.Type))
	h.WriteString(n.Tag)

	switch n.Type {
	case NullType, BadValueType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntType:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n.Int))
		h.Write(b[:])
	case RealType:
		// NaN hashes as one value, matching Equal.
		f := n.Real
		if math.IsNaN(f) {
			f = math.NaN()
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		var b [8]byte
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case HashType:
		var b [8]byte
		for i, field := range n.Fields {
			binary.LittleEndian.PutUint64(b[:], field.Hash())
			h.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}

var hashSeed = maphash.MakeSeed()
