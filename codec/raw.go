package codec

import (
	wiretree "github.com/reoring/wiretree"
	"github.com/reoring/wiretree/tree"
)

// Raw passes one subtree through uninterpreted, letting a type keep a field
// it does not model. A nil node encodes as the wire null marker.
type Raw struct {
	Node *tree.Node
}

func (r Raw) EncodeWire(e *wiretree.Encoder) error {
	c, err := e.ContainerSingleValue()
	if err != nil {
		return err
	}
	return c.EncodeNode(r.Node)
}

func (r *Raw) DecodeWire(d *wiretree.Decoder) error {
	c, err := d.ContainerSingleValue()
	if err != nil {
		return err
	}
	n, err := c.DecodeNode()
	if err != nil {
		return err
	}
	r.Node = n
	return nil
}
