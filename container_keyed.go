package wiretree

import "github.com/reoring/wiretree/tree"

// KeyedContainer is a cursor over one object node. It is a non-owning
// reference handle: the object node owns every child, and any number of
// routines may hold the same container to read or write flattened key sets
// at one tree level.
//
// Flattening hazard: when two composed types declare overlapping wire keys,
// the last writer wins on encode and each reader simply ignores keys it does
// not recognize; collisions are not detected.
type KeyedContainer struct {
	node     *tree.Node
	path     Path
	encoding bool
}

// Path returns the coding path that led to this container.
func (c *KeyedContainer) Path() Path { return c.path }

// Contains reports whether the wire key is present.
func (c *KeyedContainer) Contains(key string) bool {
	_, ok := c.node.Get(key)
	return ok
}

// Keys lists present wire keys in field order.
func (c *KeyedContainer) Keys() []string { return c.node.Keys() }

// ---- encoding ----

func (c *KeyedContainer) put(key string, n *tree.Node) error {
	if !c.encoding {
		return errInvalidState(c.path, "encode into a decoding container")
	}
	c.node.Set(key, n)
	return nil
}

// EncodeNull writes an explicit null for the key. Optional-absent fields are
// expressed by not encoding at all, never by encoding null.
func (c *KeyedContainer) EncodeNull(key string) error { return c.put(key, tree.Null()) }

func (c *KeyedContainer) EncodeBool(key string, v bool) error { return c.put(key, tree.Bool(v)) }

func (c *KeyedContainer) EncodeInt64(key string, v int64) error {
	return c.put(key, tree.NumberInt(v))
}

func (c *KeyedContainer) EncodeFloat64(key string, v float64) error {
	return c.put(key, tree.NumberFloat(v))
}

func (c *KeyedContainer) EncodeString(key string, v string) error {
	return c.put(key, tree.String(v))
}

// EncodeNode writes an arbitrary pre-built subtree under the key.
func (c *KeyedContainer) EncodeNode(key string, n *tree.Node) error {
	if n == nil {
		n = tree.Null()
	}
	return c.put(key, n)
}

// EncodeValue runs v's own encode routine and stores the resulting subtree
// under the key.
func (c *KeyedContainer) EncodeValue(key string, v Encodable) error {
	if !c.encoding {
		return errInvalidState(c.path, "encode into a decoding container")
	}
	n, err := encodeInto(c.path.Key(key), v)
	if err != nil {
		return err
	}
	c.node.Set(key, n)
	return nil
}

// ---- decoding ----

// child resolves a required key: absent fails with key_not_found, explicit
// null fails with value_not_found.
func (c *KeyedContainer) child(key string) (*tree.Node, error) {
	n, ok := c.node.Get(key)
	if !ok {
		return nil, errKeyNotFound(c.path, key)
	}
	if n.IsNull() {
		return nil, errValueNotFound(c.path.Key(key), "found null where a value was expected")
	}
	return n, nil
}

// childIfPresent resolves an optional key: absent and explicit null both
// report not-present without error.
func (c *KeyedContainer) childIfPresent(key string) (*tree.Node, bool) {
	n, ok := c.node.Get(key)
	if !ok || n.IsNull() {
		return nil, false
	}
	return n, true
}

func (c *KeyedContainer) DecodeBool(key string) (bool, error) {
	n, err := c.child(key)
	if err != nil {
		return false, err
	}
	v, err := n.BoolVal()
	if err != nil {
		return false, errTypeMismatch(c.path.Key(key), err)
	}
	return v, nil
}

func (c *KeyedContainer) DecodeBoolIfPresent(key string) (bool, bool, error) {
	n, ok := c.childIfPresent(key)
	if !ok {
		return false, false, nil
	}
	v, err := n.BoolVal()
	if err != nil {
		return false, false, errTypeMismatch(c.path.Key(key), err)
	}
	return v, true, nil
}

func (c *KeyedContainer) DecodeInt64(key string) (int64, error) {
	n, err := c.child(key)
	if err != nil {
		return 0, err
	}
	v, err := n.Int64()
	if err != nil {
		return 0, errTypeMismatch(c.path.Key(key), err)
	}
	return v, nil
}

func (c *KeyedContainer) DecodeInt64IfPresent(key string) (int64, bool, error) {
	n, ok := c.childIfPresent(key)
	if !ok {
		return 0, false, nil
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false, errTypeMismatch(c.path.Key(key), err)
	}
	return v, true, nil
}

func (c *KeyedContainer) DecodeFloat64(key string) (float64, error) {
	n, err := c.child(key)
	if err != nil {
		return 0, err
	}
	v, err := n.Float64()
	if err != nil {
		return 0, errTypeMismatch(c.path.Key(key), err)
	}
	return v, nil
}

func (c *KeyedContainer) DecodeFloat64IfPresent(key string) (float64, bool, error) {
	n, ok := c.childIfPresent(key)
	if !ok {
		return 0, false, nil
	}
	v, err := n.Float64()
	if err != nil {
		return 0, false, errTypeMismatch(c.path.Key(key), err)
	}
	return v, true, nil
}

func (c *KeyedContainer) DecodeString(key string) (string, error) {
	n, err := c.child(key)
	if err != nil {
		return "", err
	}
	v, err := n.StringVal()
	if err != nil {
		return "", errTypeMismatch(c.path.Key(key), err)
	}
	return v, nil
}

func (c *KeyedContainer) DecodeStringIfPresent(key string) (string, bool, error) {
	n, ok := c.childIfPresent(key)
	if !ok {
		return "", false, nil
	}
	v, err := n.StringVal()
	if err != nil {
		return "", false, errTypeMismatch(c.path.Key(key), err)
	}
	return v, true, nil
}

// DecodeNode returns the raw subtree under a required key.
func (c *KeyedContainer) DecodeNode(key string) (*tree.Node, error) {
	n, ok := c.node.Get(key)
	if !ok {
		return nil, errKeyNotFound(c.path, key)
	}
	return n, nil
}

// DecodeValue runs v's own decode routine against the subtree under a
// required key.
func (c *KeyedContainer) DecodeValue(key string, v Decodable) error {
	n, err := c.child(key)
	if err != nil {
		return err
	}
	return v.DecodeWire(newChildDecoder(c.path.Key(key), n))
}

// DecodeValueIfPresent is the optional variant; it reports whether the key
// was present and non-null.
func (c *KeyedContainer) DecodeValueIfPresent(key string, v Decodable) (bool, error) {
	n, ok := c.childIfPresent(key)
	if !ok {
		return false, nil
	}
	if err := v.DecodeWire(newChildDecoder(c.path.Key(key), n)); err != nil {
		return false, err
	}
	return true, nil
}

// ---- nesting ----

// NestedKeyed returns a keyed container for the object under key. On encode
// a fresh empty object is inserted and retained by this container's node; on
// decode the existing child must be an object.
func (c *KeyedContainer) NestedKeyed(key string) (*KeyedContainer, error) {
	p := c.path.Key(key)
	if c.encoding {
		n := tree.NewObject()
		c.node.Set(key, n)
		return &KeyedContainer{node: n, path: p, encoding: true}, nil
	}
	n, err := c.child(key)
	if err != nil {
		return nil, err
	}
	if n.Type != tree.ObjectType {
		return nil, errTypeMismatchf(p, "expected object, found %s", n.Type)
	}
	return &KeyedContainer{node: n, path: p}, nil
}

// NestedUnkeyed returns an unkeyed container for the array under key.
func (c *KeyedContainer) NestedUnkeyed(key string) (*UnkeyedContainer, error) {
	p := c.path.Key(key)
	if c.encoding {
		n := tree.NewArray()
		c.node.Set(key, n)
		return &UnkeyedContainer{node: n, path: p, encoding: true}, nil
	}
	n, err := c.child(key)
	if err != nil {
		return nil, err
	}
	if n.Type != tree.ArrayType {
		return nil, errTypeMismatchf(p, "expected array, found %s", n.Type)
	}
	return &UnkeyedContainer{node: n, path: p}, nil
}

// NestedSingleValue returns a single-value container bound to the node under
// key.
func (c *KeyedContainer) NestedSingleValue(key string) (*SingleValueContainer, error) {
	p := c.path.Key(key)
	if c.encoding {
		return &SingleValueContainer{
			path:     p,
			encoding: true,
			put:      func(n *tree.Node) { c.node.Set(key, n) },
		}, nil
	}
	n, ok := c.node.Get(key)
	if !ok {
		return nil, errKeyNotFound(c.path, key)
	}
	return &SingleValueContainer{path: p, node: n}, nil
}
