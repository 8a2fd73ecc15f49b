package wiretree

import (
	srcjson "github.com/reoring/wiretree/source/json"
	srcyaml "github.com/reoring/wiretree/source/yaml"
	"github.com/reoring/wiretree/tree"
)

// MarshalTree runs a full encode cycle and returns the finished value tree,
// exposing the engine's tree boundary directly.
func MarshalTree(v Encodable) (*tree.Node, error) {
	e := NewEncoder()
	if err := v.EncodeWire(e); err != nil {
		return nil, err
	}
	return e.Tree()
}

// UnmarshalTree runs a full decode cycle over an already-parsed tree.
func UnmarshalTree(n *tree.Node, v Decodable) error {
	return v.DecodeWire(NewDecoder(n))
}

// Marshal encodes v and emits it as compact JSON.
func Marshal(v Encodable) ([]byte, error) {
	n, err := MarshalTree(v)
	if err != nil {
		return nil, err
	}
	b, err := srcjson.Marshal(n)
	if err != nil {
		return nil, errDataCorrupted(Path{}, "cannot emit value tree as JSON", err)
	}
	return b, nil
}

// Unmarshal parses JSON bytes through the source driver and decodes the
// resulting tree into v. Grammar-level problems (malformed input, duplicate
// keys, trailing content) surface as data_corrupted at the root path.
func Unmarshal(data []byte, v Decodable) error {
	n, err := srcjson.Parse(data)
	if err != nil {
		return errDataCorrupted(Path{}, "invalid JSON input", err)
	}
	return UnmarshalTree(n, v)
}

// MarshalYAML is Marshal over the YAML driver.
func MarshalYAML(v Encodable) ([]byte, error) {
	n, err := MarshalTree(v)
	if err != nil {
		return nil, err
	}
	b, err := srcyaml.Marshal(n)
	if err != nil {
		return nil, errDataCorrupted(Path{}, "cannot emit value tree as YAML", err)
	}
	return b, nil
}

// UnmarshalYAML is Unmarshal over the YAML driver.
func UnmarshalYAML(data []byte, v Decodable) error {
	n, err := srcyaml.Parse(data)
	if err != nil {
		return errDataCorrupted(Path{}, "invalid YAML input", err)
	}
	return UnmarshalTree(n, v)
}
