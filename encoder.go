package wiretree

import "github.com/reoring/wiretree/tree"

// Encoder drives one encode call. It owns the root of the value tree being
// built and the empty root coding path, and hands out exactly one root
// container; the containers do the rest recursively.
//
// An Encoder is single-shot: after the encoded type returns, Tree yields the
// finished value tree. Requesting a second root container is a usage error.
type Encoder struct {
	path   Path
	root   *tree.Node
	handed bool
}

// NewEncoder returns an encoder positioned at the root path.
func NewEncoder() *Encoder { return &Encoder{} }

// newChildEncoder is used by containers when a nested Encodable value is
// written under a key or index.
func newChildEncoder(p Path) *Encoder { return &Encoder{path: p} }

// Path returns the coding path of the encoder's position.
func (e *Encoder) Path() Path { return e.path }

// ContainerKeyed starts an object at the current position.
func (e *Encoder) ContainerKeyed() (*KeyedContainer, error) {
	if e.handed {
		return nil, errInvalidState(e.path, "root container already requested")
	}
	e.handed = true
	e.root = tree.NewObject()
	return &KeyedContainer{node: e.root, path: e.path, encoding: true}, nil
}

// ContainerUnkeyed starts an array at the current position.
func (e *Encoder) ContainerUnkeyed() (*UnkeyedContainer, error) {
	if e.handed {
		return nil, errInvalidState(e.path, "root container already requested")
	}
	e.handed = true
	e.root = tree.NewArray()
	return &UnkeyedContainer{node: e.root, path: e.path, encoding: true}, nil
}

// ContainerSingleValue prepares a single scalar-or-composite write at the
// current position. The value node materializes when the container's one
// write happens.
func (e *Encoder) ContainerSingleValue() (*SingleValueContainer, error) {
	if e.handed {
		return nil, errInvalidState(e.path, "root container already requested")
	}
	e.handed = true
	return &SingleValueContainer{
		path:     e.path,
		encoding: true,
		put:      func(n *tree.Node) { e.root = n },
	}, nil
}

// Tree returns the finished value tree after the encoded type has written
// itself. Calling it before any value was produced is a usage error.
func (e *Encoder) Tree() (*tree.Node, error) {
	if !e.handed || e.root == nil {
		return nil, errInvalidState(e.path, "encode produced no value")
	}
	return e.root, nil
}

// encodeInto runs a full child encode cycle for v and returns the resulting
// subtree.
func encodeInto(p Path, v Encodable) (*tree.Node, error) {
	child := newChildEncoder(p)
	if err := v.EncodeWire(child); err != nil {
		return nil, err
	}
	return child.Tree()
}
