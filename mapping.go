package wiretree

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldSpec binds one logical field to its wire key.
type FieldSpec struct {
	Logical  string // Go struct field name.
	Wire     string // Key used in the serialized object.
	Optional bool
}

// Mapping is a per-type declaration of wire names, built once at definition
// time and treated as read-only afterwards. Wire and logical names must each
// be unique within one mapping; a violation surfaces as invalid_state when
// the mapping is first used.
type Mapping struct {
	fields []FieldSpec
	err    error
}

// NewMapping starts an empty declaration.
func NewMapping() *Mapping { return &Mapping{} }

// Field declares a required field.
func (m *Mapping) Field(logical, wire string) *Mapping {
	return m.add(FieldSpec{Logical: logical, Wire: wire})
}

// Optional declares a field whose absence on the wire is not an error and
// whose absent state is omitted on encode.
func (m *Mapping) Optional(logical, wire string) *Mapping {
	return m.add(FieldSpec{Logical: logical, Wire: wire, Optional: true})
}

func (m *Mapping) add(fs FieldSpec) *Mapping {
	if m.err != nil {
		return m
	}
	for _, f := range m.fields {
		if f.Wire == fs.Wire {
			m.err = errInvalidState(Path{}, fmt.Sprintf("duplicate wire key %q in mapping", fs.Wire))
			return m
		}
		if f.Logical == fs.Logical {
			m.err = errInvalidState(Path{}, fmt.Sprintf("duplicate logical field %q in mapping", fs.Logical))
			return m
		}
	}
	m.fields = append(m.fields, fs)
	return m
}

// Err reports a declaration error, if any.
func (m *Mapping) Err() error { return m.err }

// Fields returns the declared fields in declaration order.
func (m *Mapping) Fields() []FieldSpec { return m.fields }

// WireKey resolves a logical field to its wire key. A field with no explicit
// declaration keeps its logical name unchanged.
func (m *Mapping) WireKey(logical string) string {
	if m != nil {
		for _, f := range m.fields {
			if f.Logical == logical {
				return f.Wire
			}
		}
	}
	return logical
}

// resolveStructKey resolves a struct field's default wire key.
// Priority: wiretree:"name" tag > json tag name > field name; "-" disables.
func resolveStructKey(sf reflect.StructField) string {
	if wt := sf.Tag.Get("wiretree"); wt != "" {
		if i := strings.IndexByte(wt, ','); i >= 0 {
			wt = wt[:i]
		}
		return wt
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// specsFor produces the effective field list for a struct type: the declared
// mapping when given, otherwise one spec per exported field with the wire
// key resolved from tags and pointer fields treated as optional.
func specsFor(rt reflect.Type, m *Mapping) ([]FieldSpec, error) {
	if m != nil {
		if m.err != nil {
			return nil, m.err
		}
		if len(m.fields) > 0 {
			return m.fields, nil
		}
	}
	specs := make([]FieldSpec, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		wire := resolveStructKey(sf)
		if wire == "-" || wire == "" {
			continue
		}
		specs = append(specs, FieldSpec{
			Logical:  sf.Name,
			Wire:     wire,
			Optional: sf.Type.Kind() == reflect.Pointer,
		})
	}
	return specs, nil
}
