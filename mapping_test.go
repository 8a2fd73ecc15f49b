package wiretree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	wiretree "github.com/reoring/wiretree"
)

func TestMapping_DuplicateWireKeyRejected(t *testing.T) {
	m := wiretree.NewMapping().Field("A", "x").Field("B", "x")
	err := m.Err()
	iss, ok := wiretree.AsIssues(err)
	if !ok || iss[0].Code != wiretree.CodeInvalidState {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	// a broken mapping poisons every derived call that consults it
	type two struct{ A, B string }
	e := wiretree.NewEncoder()
	if err := wiretree.EncodeDerived(e, two{}, m); err == nil {
		t.Fatalf("expected derived encode to fail on broken mapping")
	}
}

func TestMapping_DuplicateLogicalRejected(t *testing.T) {
	m := wiretree.NewMapping().Field("A", "x").Field("A", "y")
	if m.Err() == nil {
		t.Fatalf("expected duplicate logical field to be rejected")
	}
}

func TestMapping_WireKeyDefaultsToLogical(t *testing.T) {
	m := wiretree.NewMapping().Field("FirstName", "first_name")
	if got := m.WireKey("FirstName"); got != "first_name" {
		t.Fatalf("WireKey = %q, want first_name", got)
	}
	if got := m.WireKey("Undeclared"); got != "Undeclared" {
		t.Fatalf("WireKey = %q, want Undeclared", got)
	}
}

func TestMapping_UnknownLogicalFieldFails(t *testing.T) {
	type one struct{ A string }
	m := wiretree.NewMapping().Field("Missing", "missing")
	e := wiretree.NewEncoder()
	err := wiretree.EncodeDerived(e, one{A: "v"}, m)
	iss, ok := wiretree.AsIssues(err)
	if !ok || iss[0].Code != wiretree.CodeInvalidState {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

// derived handles nested structs, slices and codable fields without custom
// code on the outer type.
type library struct {
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	Owner  person   `json:"owner"`
	Mirror *person  `json:"mirror"`
}

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (l library) EncodeWire(e *wiretree.Encoder) error {
	return wiretree.EncodeDerived(e, l, nil)
}
func (l *library) DecodeWire(d *wiretree.Decoder) error {
	return wiretree.DecodeDerived(d, l, nil)
}

func TestDerived_NestedAndSlices_RoundTrip(t *testing.T) {
	in := library{
		Name:  "central",
		Tags:  []string{"a", "b"},
		Owner: person{Name: "Ada", Age: 36},
	}
	b, err := wiretree.Marshal(in)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	var out library
	if err := wiretree.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestDerived_NestedErrorPath(t *testing.T) {
	var out library
	err := wiretree.Unmarshal([]byte(`{"name":"x","tags":[],"owner":{"name":"Ada","age":"old"}}`), &out)
	iss, ok := wiretree.AsIssues(err)
	if !ok || iss[0].Code != wiretree.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	if iss[0].Path != "/owner/age" {
		t.Fatalf("path = %s, want /owner/age", iss[0].Path)
	}
}

// ratings has pointer elements: nil encodes as null and null decodes back
// to nil, so the engine can always decode its own output.
type ratings struct {
	Items []*int `json:"items"`
}

func (r ratings) EncodeWire(e *wiretree.Encoder) error {
	return wiretree.EncodeDerived(e, r, nil)
}
func (r *ratings) DecodeWire(d *wiretree.Decoder) error {
	return wiretree.DecodeDerived(d, r, nil)
}

func TestDerived_PointerSliceNullElements_RoundTrip(t *testing.T) {
	one := 1
	in := ratings{Items: []*int{&one, nil}}
	b, err := wiretree.Marshal(in)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if string(b) != `{"items":[1,null]}` {
		t.Fatalf("wire form = %s", b)
	}
	var out ratings
	if err := wiretree.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

type int8Slice struct {
	V []int8 `json:"v"`
}

func (s int8Slice) EncodeWire(e *wiretree.Encoder) error {
	return wiretree.EncodeDerived(e, s, nil)
}
func (s *int8Slice) DecodeWire(d *wiretree.Decoder) error {
	return wiretree.DecodeDerived(d, s, nil)
}

type uint8Slice struct {
	V []uint8 `json:"v"`
}

func (s uint8Slice) EncodeWire(e *wiretree.Encoder) error {
	return wiretree.EncodeDerived(e, s, nil)
}
func (s *uint8Slice) DecodeWire(d *wiretree.Decoder) error {
	return wiretree.DecodeDerived(d, s, nil)
}

func TestDerived_SliceElementOverflowFails(t *testing.T) {
	var small int8Slice
	err := wiretree.Unmarshal([]byte(`{"v":[300]}`), &small)
	iss, ok := wiretree.AsIssues(err)
	if !ok || iss[0].Code != wiretree.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	if iss[0].Path != "/v/0" {
		t.Fatalf("path = %s, want /v/0", iss[0].Path)
	}

	var unsigned uint8Slice
	err = wiretree.Unmarshal([]byte(`{"v":[-1]}`), &unsigned)
	iss, ok = wiretree.AsIssues(err)
	if !ok || iss[0].Code != wiretree.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch for negative into uint, got %v", err)
	}
}

func TestDerived_SliceElementErrorPath(t *testing.T) {
	var out library
	err := wiretree.Unmarshal([]byte(`{"name":"x","tags":["ok",3],"owner":{"name":"Ada","age":1}}`), &out)
	iss, ok := wiretree.AsIssues(err)
	if !ok || iss[0].Code != wiretree.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	if iss[0].Path != "/tags/1" {
		t.Fatalf("path = %s, want /tags/1", iss[0].Path)
	}
}
