package wiretree

import "github.com/reoring/wiretree/tree"

// SingleValueContainer is a cursor bound to exactly one node with no keyed
// or indexed structure. Its lifetime permits one operation: a second encode
// or decode on the same instance fails with invalid_state. Types that are
// semantically a transformed scalar (a formatted date, a reversed string, a
// closed enumeration) use it for their whole wire representation.
type SingleValueContainer struct {
	path     Path
	node     *tree.Node       // decode source
	put      func(*tree.Node) // encode sink into the parent's slot
	encoding bool
	used     bool
}

// Path returns the coding path that led to this container.
func (c *SingleValueContainer) Path() Path { return c.path }

func (c *SingleValueContainer) consume() error {
	if c.used {
		return errInvalidState(c.path, "single-value container already used")
	}
	c.used = true
	return nil
}

// ---- encoding ----

func (c *SingleValueContainer) write(n *tree.Node) error {
	if !c.encoding {
		return errInvalidState(c.path, "encode into a decoding container")
	}
	if err := c.consume(); err != nil {
		return err
	}
	c.put(n)
	return nil
}

func (c *SingleValueContainer) EncodeNull() error             { return c.write(tree.Null()) }
func (c *SingleValueContainer) EncodeBool(v bool) error       { return c.write(tree.Bool(v)) }
func (c *SingleValueContainer) EncodeInt64(v int64) error     { return c.write(tree.NumberInt(v)) }
func (c *SingleValueContainer) EncodeFloat64(v float64) error { return c.write(tree.NumberFloat(v)) }
func (c *SingleValueContainer) EncodeString(v string) error   { return c.write(tree.String(v)) }

// EncodeNode writes an arbitrary pre-built subtree as the single value.
func (c *SingleValueContainer) EncodeNode(n *tree.Node) error {
	if n == nil {
		n = tree.Null()
	}
	return c.write(n)
}

// EncodeValue runs v's own encode routine and writes the resulting subtree
// as the single value.
func (c *SingleValueContainer) EncodeValue(v Encodable) error {
	if !c.encoding {
		return errInvalidState(c.path, "encode into a decoding container")
	}
	if err := c.consume(); err != nil {
		return err
	}
	n, err := encodeInto(c.path, v)
	if err != nil {
		return err
	}
	c.put(n)
	return nil
}

// ---- decoding ----

func (c *SingleValueContainer) read() (*tree.Node, error) {
	if c.encoding {
		return nil, errInvalidState(c.path, "decode from an encoding container")
	}
	if err := c.consume(); err != nil {
		return nil, err
	}
	if c.node.IsNull() {
		return nil, errValueNotFound(c.path, "found null where a value was expected")
	}
	return c.node, nil
}

// DecodeNil reports whether the bound node is null, consuming the container.
func (c *SingleValueContainer) DecodeNil() (bool, error) {
	if c.encoding {
		return false, errInvalidState(c.path, "decode from an encoding container")
	}
	if err := c.consume(); err != nil {
		return false, err
	}
	return c.node.IsNull(), nil
}

func (c *SingleValueContainer) DecodeBool() (bool, error) {
	n, err := c.read()
	if err != nil {
		return false, err
	}
	v, err := n.BoolVal()
	if err != nil {
		return false, errTypeMismatch(c.path, err)
	}
	return v, nil
}

func (c *SingleValueContainer) DecodeInt64() (int64, error) {
	n, err := c.read()
	if err != nil {
		return 0, err
	}
	v, err := n.Int64()
	if err != nil {
		return 0, errTypeMismatch(c.path, err)
	}
	return v, nil
}

func (c *SingleValueContainer) DecodeFloat64() (float64, error) {
	n, err := c.read()
	if err != nil {
		return 0, err
	}
	v, err := n.Float64()
	if err != nil {
		return 0, errTypeMismatch(c.path, err)
	}
	return v, nil
}

func (c *SingleValueContainer) DecodeString() (string, error) {
	n, err := c.read()
	if err != nil {
		return "", err
	}
	v, err := n.StringVal()
	if err != nil {
		return "", errTypeMismatch(c.path, err)
	}
	return v, nil
}

// DecodeNode returns the bound subtree as-is; null is allowed.
func (c *SingleValueContainer) DecodeNode() (*tree.Node, error) {
	if c.encoding {
		return nil, errInvalidState(c.path, "decode from an encoding container")
	}
	if err := c.consume(); err != nil {
		return nil, err
	}
	if c.node == nil {
		return tree.Null(), nil
	}
	return c.node, nil
}

// DecodeValue runs v's own decode routine against the bound node.
func (c *SingleValueContainer) DecodeValue(v Decodable) error {
	n, err := c.read()
	if err != nil {
		return err
	}
	return v.DecodeWire(newChildDecoder(c.path, n))
}

// DecodeStringEnum decodes a string and validates it against a closed set of
// raw values. An unrecognized raw fails with type_mismatch at this value's
// position; the engine never silently defaults.
func (c *SingleValueContainer) DecodeStringEnum(allowed ...string) (string, error) {
	v, err := c.DecodeString()
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", errTypeMismatchf(c.path, "%q matches no case of the enumeration", v)
}
