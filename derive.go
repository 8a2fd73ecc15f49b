package wiretree

import (
	"fmt"
	"reflect"
)

// The derived strategy: field order and wire keys come straight from the
// mapping declaration (or the struct's tags when no mapping is declared) and
// the engine walks the fields itself. Types needing transformation or
// validation implement EncodeWire/DecodeWire by hand instead.

var (
	encodableType = reflect.TypeOf((*Encodable)(nil)).Elem()
	decodableType = reflect.TypeOf((*Decodable)(nil)).Elem()
)

// EncodeDerived requests a keyed container from the encoder and writes v's
// fields through the mapping. v must be a struct or pointer to struct.
func EncodeDerived(e *Encoder, v any, m *Mapping) error {
	c, err := e.ContainerKeyed()
	if err != nil {
		return err
	}
	return EncodeFields(c, v, m)
}

// DecodeDerived is the read counterpart; ptr must be a pointer to struct.
func DecodeDerived(d *Decoder, ptr any, m *Mapping) error {
	c, err := d.ContainerKeyed()
	if err != nil {
		return err
	}
	return DecodeFields(c, ptr, m)
}

// EncodeFields writes v's mapped fields into an existing keyed container.
// Taking the container rather than the encoder lets derived types take part
// in flattening alongside hand-written ones.
func EncodeFields(c *KeyedContainer, v any, m *Mapping) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errInvalidState(c.path, "nil value for derived encode")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errInvalidState(c.path, fmt.Sprintf("derived encode needs a struct, got %s", rv.Kind()))
	}
	specs, err := specsFor(rv.Type(), m)
	if err != nil {
		return err
	}
	for _, fs := range specs {
		fv := rv.FieldByName(fs.Logical)
		if !fv.IsValid() {
			return errInvalidState(c.path, fmt.Sprintf("mapping names unknown field %q", fs.Logical))
		}
		if err := encodeReflected(c, fs.Wire, fv, fs.Optional); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFields reads mapped fields from an existing keyed container into the
// struct ptr points at. Unrecognized wire keys are ignored, which is what
// makes flattened composition safe for disjoint key sets.
func DecodeFields(c *KeyedContainer, ptr any, m *Mapping) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errInvalidState(c.path, "derived decode needs a non-nil struct pointer")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errInvalidState(c.path, fmt.Sprintf("derived decode needs a struct, got %s", rv.Kind()))
	}
	specs, err := specsFor(rv.Type(), m)
	if err != nil {
		return err
	}
	for _, fs := range specs {
		fv := rv.FieldByName(fs.Logical)
		if !fv.IsValid() {
			return errInvalidState(c.path, fmt.Sprintf("mapping names unknown field %q", fs.Logical))
		}
		if err := decodeReflected(c, fs.Wire, fv, fs.Optional); err != nil {
			return err
		}
	}
	return nil
}

// ---- encode side ----

func encodeReflected(c *KeyedContainer, wire string, fv reflect.Value, optional bool) error {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			if optional {
				return nil // absent: omit the key entirely
			}
			return c.EncodeNull(wire)
		}
		fv = fv.Elem()
	}
	if enc, ok := asEncodable(fv); ok {
		return c.EncodeValue(wire, enc)
	}
	switch fv.Kind() {
	case reflect.Bool:
		return c.EncodeBool(wire, fv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return c.EncodeInt64(wire, fv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return c.EncodeInt64(wire, int64(fv.Uint()))
	case reflect.Float32, reflect.Float64:
		return c.EncodeFloat64(wire, fv.Float())
	case reflect.String:
		return c.EncodeString(wire, fv.String())
	case reflect.Struct:
		sub, err := c.NestedKeyed(wire)
		if err != nil {
			return err
		}
		return EncodeFields(sub, fv.Interface(), nil)
	case reflect.Slice, reflect.Array:
		sub, err := c.NestedUnkeyed(wire)
		if err != nil {
			return err
		}
		return encodeElems(sub, fv)
	default:
		return errInvalidState(c.path.Key(wire), fmt.Sprintf("unsupported field kind %s", fv.Kind()))
	}
}

func encodeElems(c *UnkeyedContainer, fv reflect.Value) error {
	for i := 0; i < fv.Len(); i++ {
		ev := fv.Index(i)
		if ev.Kind() == reflect.Pointer {
			if ev.IsNil() {
				if err := c.EncodeNull(); err != nil {
					return err
				}
				continue
			}
			ev = ev.Elem()
		}
		if enc, ok := asEncodable(ev); ok {
			if err := c.EncodeValue(enc); err != nil {
				return err
			}
			continue
		}
		switch ev.Kind() {
		case reflect.Bool:
			if err := c.EncodeBool(ev.Bool()); err != nil {
				return err
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if err := c.EncodeInt64(ev.Int()); err != nil {
				return err
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if err := c.EncodeInt64(int64(ev.Uint())); err != nil {
				return err
			}
		case reflect.Float32, reflect.Float64:
			if err := c.EncodeFloat64(ev.Float()); err != nil {
				return err
			}
		case reflect.String:
			if err := c.EncodeString(ev.String()); err != nil {
				return err
			}
		case reflect.Struct:
			sub, err := c.NestedKeyed()
			if err != nil {
				return err
			}
			if err := EncodeFields(sub, ev.Interface(), nil); err != nil {
				return err
			}
		default:
			return errInvalidState(c.path, fmt.Sprintf("unsupported element kind %s", ev.Kind()))
		}
	}
	return nil
}

func asEncodable(fv reflect.Value) (Encodable, bool) {
	if fv.Type().Implements(encodableType) {
		return fv.Interface().(Encodable), true
	}
	if fv.CanAddr() && reflect.PointerTo(fv.Type()).Implements(encodableType) {
		return fv.Addr().Interface().(Encodable), true
	}
	return nil, false
}

// ---- decode side ----

func decodeReflected(c *KeyedContainer, wire string, fv reflect.Value, optional bool) error {
	if optional {
		// Absent and explicit null both read as the absent state, which stays
		// the zero (nil for pointers) value.
		if n, ok := c.node.Get(wire); !ok || n.IsNull() {
			return nil
		}
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		fv = fv.Elem()
	}
	if dec, ok := asDecodable(fv); ok {
		return c.DecodeValue(wire, dec)
	}
	switch fv.Kind() {
	case reflect.Bool:
		v, err := c.DecodeBool(wire)
		if err != nil {
			return err
		}
		fv.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := c.DecodeInt64(wire)
		if err != nil {
			return err
		}
		if fv.OverflowInt(v) {
			return errTypeMismatchf(c.path.Key(wire), "number %d overflows %s", v, fv.Type())
		}
		fv.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := c.DecodeInt64(wire)
		if err != nil {
			return err
		}
		if v < 0 || fv.OverflowUint(uint64(v)) {
			return errTypeMismatchf(c.path.Key(wire), "number %d does not fit %s", v, fv.Type())
		}
		fv.SetUint(uint64(v))
	case reflect.Float32, reflect.Float64:
		v, err := c.DecodeFloat64(wire)
		if err != nil {
			return err
		}
		fv.SetFloat(v)
	case reflect.String:
		v, err := c.DecodeString(wire)
		if err != nil {
			return err
		}
		fv.SetString(v)
	case reflect.Struct:
		sub, err := c.NestedKeyed(wire)
		if err != nil {
			return err
		}
		return DecodeFields(sub, fv.Addr().Interface(), nil)
	case reflect.Slice:
		sub, err := c.NestedUnkeyed(wire)
		if err != nil {
			return err
		}
		return decodeElems(sub, fv)
	default:
		return errInvalidState(c.path.Key(wire), fmt.Sprintf("unsupported field kind %s", fv.Kind()))
	}
	return nil
}

func decodeElems(c *UnkeyedContainer, fv reflect.Value) error {
	et := fv.Type().Elem()
	out := reflect.MakeSlice(fv.Type(), 0, c.Remaining())
	for c.Remaining() > 0 {
		// Null elements decode to nil pointers, mirroring the encode side
		// which writes null for a nil pointer element.
		if n, ok := c.node.Index(c.next); ok && n.IsNull() && et.Kind() == reflect.Pointer {
			c.next++
			out = reflect.Append(out, reflect.Zero(et))
			continue
		}
		ev := reflect.New(et).Elem()
		target := ev
		if et.Kind() == reflect.Pointer {
			target = reflect.New(et.Elem()).Elem()
		}
		if dec, ok := asDecodable(target); ok {
			if err := c.DecodeValue(dec); err != nil {
				return err
			}
		} else {
			switch target.Kind() {
			case reflect.Bool:
				v, err := c.DecodeBool()
				if err != nil {
					return err
				}
				target.SetBool(v)
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				v, err := c.DecodeInt64()
				if err != nil {
					return err
				}
				if target.OverflowInt(v) {
					return errTypeMismatchf(c.path.Index(c.next-1), "number %d overflows %s", v, target.Type())
				}
				target.SetInt(v)
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				v, err := c.DecodeInt64()
				if err != nil {
					return err
				}
				if v < 0 || target.OverflowUint(uint64(v)) {
					return errTypeMismatchf(c.path.Index(c.next-1), "number %d does not fit %s", v, target.Type())
				}
				target.SetUint(uint64(v))
			case reflect.Float32, reflect.Float64:
				v, err := c.DecodeFloat64()
				if err != nil {
					return err
				}
				target.SetFloat(v)
			case reflect.String:
				v, err := c.DecodeString()
				if err != nil {
					return err
				}
				target.SetString(v)
			case reflect.Struct:
				sub, err := c.NestedKeyed()
				if err != nil {
					return err
				}
				if err := DecodeFields(sub, target.Addr().Interface(), nil); err != nil {
					return err
				}
			default:
				return errInvalidState(c.path, fmt.Sprintf("unsupported element kind %s", target.Kind()))
			}
		}
		if et.Kind() == reflect.Pointer {
			ev.Set(target.Addr())
		}
		out = reflect.Append(out, ev)
	}
	fv.Set(out)
	return nil
}

func asDecodable(fv reflect.Value) (Decodable, bool) {
	if fv.CanAddr() && reflect.PointerTo(fv.Type()).Implements(decodableType) {
		return fv.Addr().Interface().(Decodable), true
	}
	return nil, false
}
