// Package codec ships reusable wrapper types built on wiretree's custom
// strategies: values whose wire shape is a transformed scalar rather than an
// object of fields.
package codec

import (
	"fmt"
	"time"

	wiretree "github.com/reoring/wiretree"
)

// Time stores a time.Time as a formatted string on the wire. Layout defaults
// to RFC3339; a decode that does not match the layout fails with
// data_corrupted at the value's position.
type Time struct {
	T      time.Time
	Layout string
}

// NewTime wraps t with the default RFC3339 layout.
func NewTime(t time.Time) Time { return Time{T: t} }

func (t Time) layout() string {
	if t.Layout == "" {
		return time.RFC3339
	}
	return t.Layout
}

func (t Time) EncodeWire(e *wiretree.Encoder) error {
	c, err := e.ContainerSingleValue()
	if err != nil {
		return err
	}
	return c.EncodeString(t.T.Format(t.layout()))
}

func (t *Time) DecodeWire(d *wiretree.Decoder) error {
	c, err := d.ContainerSingleValue()
	if err != nil {
		return err
	}
	s, err := c.DecodeString()
	if err != nil {
		return err
	}
	parsed, err := time.Parse(t.layout(), s)
	if err != nil {
		return wiretree.IssueAt(wiretree.CodeDataCorrupted, c.Path(),
			fmt.Sprintf("cannot parse %q with layout %q", s, t.layout()))
	}
	t.T = parsed
	return nil
}
