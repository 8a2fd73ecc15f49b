package codec

import (
	"testing"

	wiretree "github.com/reoring/wiretree"
	srcjson "github.com/reoring/wiretree/source/json"
	"github.com/reoring/wiretree/tree"
)

func mustParseObject(t *testing.T, in string) *tree.Node {
	t.Helper()
	n, err := srcjson.Parse([]byte(in))
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return n
}

func TestReversed_WireFormIsReversed(t *testing.T) {
	b, err := wiretree.Marshal(Reversed("stressed"))
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if string(b) != `"desserts"` {
		t.Fatalf("wire form = %s", b)
	}

	var out Reversed
	if err := wiretree.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if out != Reversed("stressed") {
		t.Fatalf("roundtrip mismatch: %q", out)
	}
}

func TestReversed_HandlesMultibyteRunes(t *testing.T) {
	in := Reversed("héllo")
	b, err := wiretree.Marshal(in)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	var out Reversed
	if err := wiretree.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %q != %q", out, in)
	}
}

func TestRaw_PassthroughSubtree(t *testing.T) {
	n := mustParseObject(t, `{"anything":[1,{"x":null}]}`)
	var r Raw
	if err := wiretree.UnmarshalTree(n, &r); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !r.Node.Equal(n) {
		t.Fatalf("raw decode should keep the subtree intact")
	}

	back, err := wiretree.MarshalTree(r)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if !back.Equal(n) {
		t.Fatalf("raw roundtrip mismatch")
	}
}

func TestRaw_NilEncodesAsNull(t *testing.T) {
	b, err := wiretree.Marshal(Raw{})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("wire form = %s, want null", b)
	}
}
