package wiretree

import "github.com/reoring/wiretree/tree"

// UnkeyedContainer is a cursor over one array node plus a monotonically
// increasing element index. Every encode call appends exactly one element;
// every decode call consumes exactly one element in order.
type UnkeyedContainer struct {
	node     *tree.Node
	path     Path
	encoding bool
	next     int
}

// Path returns the coding path that led to this container.
func (c *UnkeyedContainer) Path() Path { return c.path }

// Count returns the number of elements in the backing array.
func (c *UnkeyedContainer) Count() int { return c.node.Len() }

// Remaining reports how many elements a decoding container has left.
func (c *UnkeyedContainer) Remaining() int {
	if r := c.node.Len() - c.next; r > 0 {
		return r
	}
	return 0
}

// ---- encoding ----

func (c *UnkeyedContainer) append(n *tree.Node) error {
	if !c.encoding {
		return errInvalidState(c.path, "encode into a decoding container")
	}
	c.node.Append(n)
	c.next++
	return nil
}

func (c *UnkeyedContainer) EncodeNull() error             { return c.append(tree.Null()) }
func (c *UnkeyedContainer) EncodeBool(v bool) error       { return c.append(tree.Bool(v)) }
func (c *UnkeyedContainer) EncodeInt64(v int64) error     { return c.append(tree.NumberInt(v)) }
func (c *UnkeyedContainer) EncodeFloat64(v float64) error { return c.append(tree.NumberFloat(v)) }
func (c *UnkeyedContainer) EncodeString(v string) error   { return c.append(tree.String(v)) }

// EncodeNode appends an arbitrary pre-built subtree.
func (c *UnkeyedContainer) EncodeNode(n *tree.Node) error {
	if n == nil {
		n = tree.Null()
	}
	return c.append(n)
}

// EncodeValue runs v's own encode routine and appends the resulting subtree.
func (c *UnkeyedContainer) EncodeValue(v Encodable) error {
	if !c.encoding {
		return errInvalidState(c.path, "encode into a decoding container")
	}
	n, err := encodeInto(c.path.Index(c.node.Len()), v)
	if err != nil {
		return err
	}
	c.node.Append(n)
	c.next++
	return nil
}

// ---- decoding ----

// element consumes the next element; reading past the end fails with
// value_not_found, a null element where a value is required too.
func (c *UnkeyedContainer) element() (*tree.Node, Path, error) {
	p := c.path.Index(c.next)
	n, ok := c.node.Index(c.next)
	if !ok {
		return nil, p, errValueNotFound(p, "unkeyed container is at end")
	}
	c.next++
	if n.IsNull() {
		return nil, p, errValueNotFound(p, "found null where a value was expected")
	}
	return n, p, nil
}

func (c *UnkeyedContainer) DecodeBool() (bool, error) {
	n, p, err := c.element()
	if err != nil {
		return false, err
	}
	v, err := n.BoolVal()
	if err != nil {
		return false, errTypeMismatch(p, err)
	}
	return v, nil
}

func (c *UnkeyedContainer) DecodeInt64() (int64, error) {
	n, p, err := c.element()
	if err != nil {
		return 0, err
	}
	v, err := n.Int64()
	if err != nil {
		return 0, errTypeMismatch(p, err)
	}
	return v, nil
}

func (c *UnkeyedContainer) DecodeFloat64() (float64, error) {
	n, p, err := c.element()
	if err != nil {
		return 0, err
	}
	v, err := n.Float64()
	if err != nil {
		return 0, errTypeMismatch(p, err)
	}
	return v, nil
}

func (c *UnkeyedContainer) DecodeString() (string, error) {
	n, p, err := c.element()
	if err != nil {
		return "", err
	}
	v, err := n.StringVal()
	if err != nil {
		return "", errTypeMismatch(p, err)
	}
	return v, nil
}

// DecodeNode consumes the next element as a raw subtree; null is allowed.
func (c *UnkeyedContainer) DecodeNode() (*tree.Node, error) {
	p := c.path.Index(c.next)
	n, ok := c.node.Index(c.next)
	if !ok {
		return nil, errValueNotFound(p, "unkeyed container is at end")
	}
	c.next++
	return n, nil
}

// DecodeValue runs v's own decode routine against the next element.
func (c *UnkeyedContainer) DecodeValue(v Decodable) error {
	n, p, err := c.element()
	if err != nil {
		return err
	}
	return v.DecodeWire(newChildDecoder(p, n))
}

// ---- nesting ----

// NestedKeyed binds the next element as an object container.
func (c *UnkeyedContainer) NestedKeyed() (*KeyedContainer, error) {
	if c.encoding {
		p := c.path.Index(c.node.Len())
		n := tree.NewObject()
		c.node.Append(n)
		c.next++
		return &KeyedContainer{node: n, path: p, encoding: true}, nil
	}
	n, p, err := c.element()
	if err != nil {
		return nil, err
	}
	if n.Type != tree.ObjectType {
		return nil, errTypeMismatchf(p, "expected object, found %s", n.Type)
	}
	return &KeyedContainer{node: n, path: p}, nil
}

// NestedUnkeyed binds the next element as an array container.
func (c *UnkeyedContainer) NestedUnkeyed() (*UnkeyedContainer, error) {
	if c.encoding {
		p := c.path.Index(c.node.Len())
		n := tree.NewArray()
		c.node.Append(n)
		c.next++
		return &UnkeyedContainer{node: n, path: p, encoding: true}, nil
	}
	n, p, err := c.element()
	if err != nil {
		return nil, err
	}
	if n.Type != tree.ArrayType {
		return nil, errTypeMismatchf(p, "expected array, found %s", n.Type)
	}
	return &UnkeyedContainer{node: n, path: p}, nil
}

// NestedSingleValue binds the next element as a single-value container.
func (c *UnkeyedContainer) NestedSingleValue() (*SingleValueContainer, error) {
	if c.encoding {
		p := c.path.Index(c.node.Len())
		slot := c.node.Len()
		c.node.Append(tree.Null())
		c.next++
		return &SingleValueContainer{
			path:     p,
			encoding: true,
			put: func(n *tree.Node) {
				c.node.Elems[slot] = n
			},
		}, nil
	}
	p := c.path.Index(c.next)
	n, ok := c.node.Index(c.next)
	if !ok {
		return nil, errValueNotFound(p, "unkeyed container is at end")
	}
	c.next++
	return &SingleValueContainer{path: p, node: n}, nil
}
