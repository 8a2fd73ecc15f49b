// Package json is the wire reader/writer collaborator for the JSON grammar.
// It converts between raw bytes and the value tree and knows nothing about
// containers, mappings or coding paths; structural problems it reports are
// wrapped by the root package.
//
// Parsing rides goccy/go-json's token decoder so object key order and the
// exact number text survive into the tree.
package json

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/wiretree/tree"
)

// Parse reads one top-level JSON value into a tree. Duplicate object keys
// and trailing non-whitespace content are rejected.
func Parse(data []byte) (*tree.Node, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing content after top-level value")
	}
	return n, nil
}

func parseValue(dec *gojson.Decoder) (*tree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of input")
		}
		return nil, err
	}
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected %q", v.String())
		}
	case string:
		return tree.String(v), nil
	case bool:
		return tree.Bool(v), nil
	case gojson.Number:
		return tree.Number(string(v)), nil
	case float64:
		// UseNumber makes this unreachable; kept as a safety net.
		return tree.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case nil:
		return tree.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *gojson.Decoder) (*tree.Node, error) {
	obj := tree.NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}
		if _, dup := obj.Get(key); dup {
			return nil, fmt.Errorf("duplicate object key %q", key)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *gojson.Decoder) (*tree.Node, error) {
	arr := tree.NewArray()
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Append(val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return arr, nil
}

// Marshal emits a tree as compact JSON.
func Marshal(n *tree.Node) ([]byte, error) { return Append(nil, n) }

// Append emits a tree as compact JSON onto dst.
func Append(dst []byte, n *tree.Node) ([]byte, error) {
	if n == nil {
		return append(dst, "null"...), nil
	}
	switch n.Type {
	case tree.NullType:
		return append(dst, "null"...), nil
	case tree.BoolType:
		if n.B {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case tree.NumberType:
		if !validNumberText(n.Num) {
			return nil, fmt.Errorf("invalid number text %q", n.Num)
		}
		return append(dst, n.Num...), nil
	case tree.StringType:
		return appendString(dst, n.Str)
	case tree.ArrayType:
		dst = append(dst, '[')
		for i, e := range n.Elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = Append(dst, e)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case tree.ObjectType:
		dst = append(dst, '{')
		for i, f := range n.Fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendString(dst, f.Key)
			if err != nil {
				return nil, err
			}
			dst = append(dst, ':')
			dst, err = Append(dst, f.Value)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		return nil, fmt.Errorf("unknown node type %d", n.Type)
	}
}

func appendString(dst []byte, s string) ([]byte, error) {
	q, err := gojson.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(dst, q...), nil
}

// validNumberText reports whether s is a JSON number literal, not merely a
// valid JSON value. gojson.Valid pins the grammar (rejecting hex floats,
// leading '+', Inf/NaN and non-number values like strings or null) and the
// float parse rejects the remaining non-numeric values; out-of-range is
// still a legal JSON number, so range errors pass.
func validNumberText(s string) bool {
	if !gojson.Valid([]byte(s)) {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
			return true
		}
		return false
	}
	return true
}
