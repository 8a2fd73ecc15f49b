package wiretree

import "github.com/reoring/wiretree/tree"

// Decoder drives one decode call over an already-parsed value tree. Like the
// Encoder it is single-shot: one root container request per call.
//
// The tree is treated as read-only for the whole decode; containers are
// cursor handles into it and never copy or mutate nodes.
type Decoder struct {
	path   Path
	root   *tree.Node
	handed bool
}

// NewDecoder returns a decoder over the given root node.
func NewDecoder(n *tree.Node) *Decoder { return &Decoder{root: n} }

func newChildDecoder(p Path, n *tree.Node) *Decoder { return &Decoder{path: p, root: n} }

// Path returns the coding path of the decoder's position.
func (d *Decoder) Path() Path { return d.path }

// ContainerKeyed binds the value at the current position as an object.
func (d *Decoder) ContainerKeyed() (*KeyedContainer, error) {
	if d.handed {
		return nil, errInvalidState(d.path, "root container already requested")
	}
	d.handed = true
	if d.root == nil || d.root.Type != tree.ObjectType {
		return nil, errTypeMismatchf(d.path, "expected object, found %s", nodeType(d.root))
	}
	return &KeyedContainer{node: d.root, path: d.path}, nil
}

// ContainerUnkeyed binds the value at the current position as an array.
func (d *Decoder) ContainerUnkeyed() (*UnkeyedContainer, error) {
	if d.handed {
		return nil, errInvalidState(d.path, "root container already requested")
	}
	d.handed = true
	if d.root == nil || d.root.Type != tree.ArrayType {
		return nil, errTypeMismatchf(d.path, "expected array, found %s", nodeType(d.root))
	}
	return &UnkeyedContainer{node: d.root, path: d.path}, nil
}

// ContainerSingleValue binds the value at the current position directly,
// whatever its shape.
func (d *Decoder) ContainerSingleValue() (*SingleValueContainer, error) {
	if d.handed {
		return nil, errInvalidState(d.path, "root container already requested")
	}
	d.handed = true
	return &SingleValueContainer{path: d.path, node: d.root}, nil
}

func nodeType(n *tree.Node) tree.Type {
	if n == nil {
		return tree.NullType
	}
	return n.Type
}
