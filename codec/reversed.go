package codec

import wiretree "github.com/reoring/wiretree"

// Reversed is a string stored reversed on the wire; in memory it reads
// forwards. It exists as the minimal example of a transformed-scalar type:
// one value, custom single-value encode/decode, no keyed structure.
type Reversed string

func (r Reversed) EncodeWire(e *wiretree.Encoder) error {
	c, err := e.ContainerSingleValue()
	if err != nil {
		return err
	}
	return c.EncodeString(reverse(string(r)))
}

func (r *Reversed) DecodeWire(d *wiretree.Decoder) error {
	c, err := d.ContainerSingleValue()
	if err != nil {
		return err
	}
	s, err := c.DecodeString()
	if err != nil {
		return err
	}
	*r = Reversed(reverse(s))
	return nil
}

func reverse(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}
