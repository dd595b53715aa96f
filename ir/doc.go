// Package ir provides the value-tree representation for YAML
// documents.
//
// # Overview
//
// All documents, whether loaded from text or created programmatically,
// are trees of ir.Node. The IR is a simple recursive tagged union: the
// Type field selects which value field is meaningful. It carries no
// position information, making it purely semantic.
//
// # Node Types
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - IntType: 64-bit signed integer
//   - RealType: 64-bit IEEE float, keeping its source text
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - HashType: ordered key-value pairs with unique keys
//   - BadValueType: the miss sentinel returned by accessors
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Hashes
//
// For HashType nodes, Fields[i] is the key for the value at Values[i],
// so there are always as many fields as values. Keys may be arbitrary
// nodes, entry order is insertion order, and inserting an equal key
// again overwrites the earlier value in place.
//
// # Indexing
//
// Get and At return the BadValue sentinel rather than nil on any miss,
// so lookups chain without intermediate checks:
//
//	port, ok := doc.Get("server").Get("ports").At(0).AsInt()
//
// BadValue is only ever produced by these accessors; loading a
// document never yields one.
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes
// from multiple goroutines, you must synchronize access yourself or
// clone nodes for each goroutine.
//
// # Related Packages
//
//   - github.com/yamlcore/go-yamlcore/load - Builds IR trees from text
//   - github.com/yamlcore/go-yamlcore/encode - Encodes IR trees to text
package ir
