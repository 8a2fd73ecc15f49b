package wiretree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	wiretree "github.com/reoring/wiretree"
	srcjson "github.com/reoring/wiretree/source/json"
)

// simpleExample is a plain derived type: wire keys come from json tags.
type simpleExample struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

func (s simpleExample) EncodeWire(e *wiretree.Encoder) error {
	return wiretree.EncodeDerived(e, s, nil)
}
func (s *simpleExample) DecodeWire(d *wiretree.Decoder) error {
	return wiretree.DecodeDerived(d, s, nil)
}

// customUser declares an explicit mapping: logical fields keep their Go
// names, wire keys differ.
type customUser struct {
	FirstName string
	ID        int
}

var customUserMapping = wiretree.NewMapping().
	Field("FirstName", "first_name").
	Field("ID", "user_id")

func (u customUser) EncodeWire(e *wiretree.Encoder) error {
	return wiretree.EncodeDerived(e, u, customUserMapping)
}
func (u *customUser) DecodeWire(d *wiretree.Decoder) error {
	return wiretree.DecodeDerived(d, u, customUserMapping)
}

// pageInfo has an optional field; absent means absent, not zero.
type pageInfo struct {
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
	Total  *int `json:"total"`
}

func (p pageInfo) EncodeWire(e *wiretree.Encoder) error {
	return wiretree.EncodeDerived(e, p, nil)
}
func (p *pageInfo) DecodeWire(d *wiretree.Decoder) error {
	return wiretree.DecodeDerived(d, p, nil)
}

func TestScenario_Simple_RoundTrip(t *testing.T) {
	in := []byte(`{"name":"Simple Example","number":1}`)
	var v simpleExample
	if err := wiretree.Unmarshal(in, &v); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if v.Name != "Simple Example" || v.Number != 1 {
		t.Fatalf("unexpected value: %+v", v)
	}

	out, err := wiretree.Marshal(v)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	// Compare as trees: object key order is insignificant for equality of
	// the key/value set, but our encoder happens to keep declaration order.
	want, err := srcjson.Parse(in)
	if err != nil {
		t.Fatalf("parse want: %v", err)
	}
	got, err := srcjson.Parse(out)
	if err != nil {
		t.Fatalf("parse got: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestScenario_CustomKeys(t *testing.T) {
	var u customUser
	if err := wiretree.Unmarshal([]byte(`{"first_name":"Johnny","user_id":11}`), &u); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if u.FirstName != "Johnny" {
		t.Fatalf("FirstName = %q, want Johnny", u.FirstName)
	}
	if u.ID != 11 {
		t.Fatalf("ID = %d, want 11", u.ID)
	}
}

func TestKeyRemapping_WireKeysOnly(t *testing.T) {
	n, err := wiretree.MarshalTree(customUser{FirstName: "Johnny", ID: 11})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	keys := n.Keys()
	if diff := cmp.Diff([]string{"first_name", "user_id"}, keys); diff != "" {
		t.Fatalf("wire keys mismatch (-want +got):\n%s", diff)
	}
	// Logical field names must never leak onto the wire.
	for _, k := range keys {
		if k == "FirstName" || k == "ID" {
			t.Fatalf("logical field name %q leaked onto the wire", k)
		}
	}
}

func TestScenario_MissingOptional(t *testing.T) {
	var p pageInfo
	if err := wiretree.Unmarshal([]byte(`{"offset":0,"limit":10}`), &p); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if p.Total != nil {
		t.Fatalf("Total should be absent, got %v", *p.Total)
	}
	if p.Offset != 0 || p.Limit != 10 {
		t.Fatalf("unexpected value: %+v", p)
	}
}

func TestOptionalField_OmittedOnEncode(t *testing.T) {
	n, err := wiretree.MarshalTree(pageInfo{Offset: 0, Limit: 10})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if _, ok := n.Get("total"); ok {
		t.Fatalf("absent optional must omit the key entirely, got keys %v", n.Keys())
	}

	total := 42
	n, err = wiretree.MarshalTree(pageInfo{Offset: 0, Limit: 10, Total: &total})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	tn, ok := n.Get("total")
	if !ok {
		t.Fatalf("present optional must encode, got keys %v", n.Keys())
	}
	if v, err := tn.Int64(); err != nil || v != 42 {
		t.Fatalf("total = %v (%v), want 42", v, err)
	}
}

func TestOptionalField_ExplicitNullReadsAsAbsent(t *testing.T) {
	var p pageInfo
	if err := wiretree.Unmarshal([]byte(`{"offset":0,"limit":10,"total":null}`), &p); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if p.Total != nil {
		t.Fatalf("explicit null should read as absent, got %v", *p.Total)
	}
}

func TestRoundTrip_OptionalPresent(t *testing.T) {
	total := 7
	in := pageInfo{Offset: 3, Limit: 25, Total: &total}
	b, err := wiretree.Marshal(in)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	var out pageInfo
	if err := wiretree.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestRequiredKey_MissingFails(t *testing.T) {
	var v simpleExample
	err := wiretree.Unmarshal([]byte(`{"name":"x"}`), &v)
	iss, ok := wiretree.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != wiretree.CodeKeyNotFound {
		t.Fatalf("code = %s, want %s", iss[0].Code, wiretree.CodeKeyNotFound)
	}
}

func TestRequiredKey_NullFails(t *testing.T) {
	var v simpleExample
	err := wiretree.Unmarshal([]byte(`{"name":null,"number":1}`), &v)
	iss, ok := wiretree.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != wiretree.CodeValueNotFound {
		t.Fatalf("code = %s, want %s", iss[0].Code, wiretree.CodeValueNotFound)
	}
	if iss[0].Path != "/name" {
		t.Fatalf("path = %s, want /name", iss[0].Path)
	}
}

func TestTypeMismatch_CarriesPath(t *testing.T) {
	var v simpleExample
	err := wiretree.Unmarshal([]byte(`{"name":"x","number":"one"}`), &v)
	iss, ok := wiretree.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != wiretree.CodeTypeMismatch {
		t.Fatalf("code = %s, want %s", iss[0].Code, wiretree.CodeTypeMismatch)
	}
	if iss[0].Path != "/number" {
		t.Fatalf("path = %s, want /number", iss[0].Path)
	}
}

func TestMalformedInput_DataCorrupted(t *testing.T) {
	var v simpleExample
	for _, in := range []string{`{"name":"x",`, `{"a":1}{"b":2}`, `{"a":1,"a":2}`} {
		err := wiretree.Unmarshal([]byte(in), &v)
		iss, ok := wiretree.AsIssues(err)
		if !ok || len(iss) == 0 {
			t.Fatalf("input %q: expected Issues, got %v", in, err)
		}
		if iss[0].Code != wiretree.CodeDataCorrupted {
			t.Fatalf("input %q: code = %s, want %s", in, iss[0].Code, wiretree.CodeDataCorrupted)
		}
	}
}
