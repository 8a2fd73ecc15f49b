// Package tree holds the wire-level value model shared by encoders, decoders
// and source drivers: a tagged node over null/bool/number/string/array/object.
//
// Object field order is preserved for output and insignificant for lookup;
// keys are unique within one object. Numbers are carried as decimal text and
// interpreted at the access site, so no precision is lost between a source
// driver and the container layer.
package tree

import (
	"fmt"
	"strconv"
)

// Type tags the variant held by a Node.
type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	default:
		return "unknown"
	}
}

// Field is one ordered entry of an object node.
type Field struct {
	Key   string
	Value *Node
}

// Node is one value in the wire tree. Exactly the fields matching Type are
// meaningful; the rest stay zero.
type Node struct {
	Type   Type
	B      bool    // BoolType
	Num    string  // NumberType, decimal text
	Str    string  // StringType
	Elems  []*Node // ArrayType, order significant
	Fields []Field // ObjectType, ordered, keys unique
}

// ---- constructors ----

func Null() *Node              { return &Node{Type: NullType} }
func Bool(v bool) *Node        { return &Node{Type: BoolType, B: v} }
func String(s string) *Node    { return &Node{Type: StringType, Str: s} }
func Number(text string) *Node { return &Node{Type: NumberType, Num: text} }

func NumberInt(v int64) *Node {
	return &Node{Type: NumberType, Num: strconv.FormatInt(v, 10)}
}

func NumberFloat(v float64) *Node {
	return &Node{Type: NumberType, Num: strconv.FormatFloat(v, 'g', -1, 64)}
}

func NewArray() *Node  { return &Node{Type: ArrayType} }
func NewObject() *Node { return &Node{Type: ObjectType} }

// ---- structural access ----

// IsNull reports whether the node is the wire null marker.
func (n *Node) IsNull() bool { return n == nil || n.Type == NullType }

// Get looks up an object entry by key. Lookup ignores field order.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Type != ObjectType {
		return nil, false
	}
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			return n.Fields[i].Value, true
		}
	}
	return nil, false
}

// Set inserts or overwrites an object entry. An overwrite keeps the key's
// original position; a new key appends.
func (n *Node) Set(key string, v *Node) {
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			n.Fields[i].Value = v
			return
		}
	}
	n.Fields = append(n.Fields, Field{Key: key, Value: v})
}

// Index returns the array element at i.
func (n *Node) Index(i int) (*Node, bool) {
	if n == nil || n.Type != ArrayType || i < 0 || i >= len(n.Elems) {
		return nil, false
	}
	return n.Elems[i], true
}

// Append adds an element to an array node.
func (n *Node) Append(v *Node) { n.Elems = append(n.Elems, v) }

// Len returns the element count of an array node or the field count of an
// object node.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Type {
	case ArrayType:
		return len(n.Elems)
	case ObjectType:
		return len(n.Fields)
	default:
		return 0
	}
}

// Keys lists an object node's keys in field order.
func (n *Node) Keys() []string {
	if n == nil || n.Type != ObjectType {
		return nil
	}
	ks := make([]string, len(n.Fields))
	for i := range n.Fields {
		ks[i] = n.Fields[i].Key
	}
	return ks
}

// ---- scalar access ----

// BoolVal reads a bool scalar.
func (n *Node) BoolVal() (bool, error) {
	if n == nil || n.Type != BoolType {
		return false, typeErr(n, BoolType)
	}
	return n.B, nil
}

// StringVal reads a string scalar.
func (n *Node) StringVal() (string, error) {
	if n == nil || n.Type != StringType {
		return "", typeErr(n, StringType)
	}
	return n.Str, nil
}

// Int64 interprets a number scalar as a signed integer. A fractional or
// out-of-range number text is an error.
func (n *Node) Int64() (int64, error) {
	if n == nil || n.Type != NumberType {
		return 0, typeErr(n, NumberType)
	}
	v, err := strconv.ParseInt(n.Num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("number %q is not a 64-bit integer", n.Num)
	}
	return v, nil
}

// Uint64 interprets a number scalar as an unsigned integer.
func (n *Node) Uint64() (uint64, error) {
	if n == nil || n.Type != NumberType {
		return 0, typeErr(n, NumberType)
	}
	v, err := strconv.ParseUint(n.Num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("number %q is not a 64-bit unsigned integer", n.Num)
	}
	return v, nil
}

// Float64 interprets a number scalar as a float.
func (n *Node) Float64() (float64, error) {
	if n == nil || n.Type != NumberType {
		return 0, typeErr(n, NumberType)
	}
	v, err := strconv.ParseFloat(n.Num, 64)
	if err != nil {
		return 0, fmt.Errorf("number %q is not a float", n.Num)
	}
	return v, nil
}

func typeErr(n *Node, want Type) error {
	got := NullType
	if n != nil {
		got = n.Type
	}
	return fmt.Errorf("expected %s, found %s", want, got)
}

// Clone deep-copies the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Type: n.Type, B: n.B, Num: n.Num, Str: n.Str}
	if n.Elems != nil {
		cp.Elems = make([]*Node, len(n.Elems))
		for i, e := range n.Elems {
			cp.Elems[i] = e.Clone()
		}
	}
	if n.Fields != nil {
		cp.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			cp.Fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
		}
	}
	return cp
}

// Equal reports deep equality. Object comparison is order-sensitive on
// purpose: two trees that print differently compare unequal.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n.IsNull() && o.IsNull()
	}
	if n.Type != o.Type {
		return false
	}
	switch n.Type {
	case NullType:
		return true
	case BoolType:
		return n.B == o.B
	case NumberType:
		return n.Num == o.Num
	case StringType:
		return n.Str == o.Str
	case ArrayType:
		if len(n.Elems) != len(o.Elems) {
			return false
		}
		for i := range n.Elems {
			if !n.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(n.Fields) != len(o.Fields) {
			return false
		}
		for i := range n.Fields {
			if n.Fields[i].Key != o.Fields[i].Key {
				return false
			}
			if !n.Fields[i].Value.Equal(o.Fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
