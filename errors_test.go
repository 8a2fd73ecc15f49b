package wiretree_test

import (
	"strings"
	"testing"

	wiretree "github.com/reoring/wiretree"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := wiretree.Issues{
		{Path: "/a", Code: wiretree.CodeKeyNotFound},
		{Path: "/b", Code: wiretree.CodeTypeMismatch, Message: "expected number"},
		{Path: "/c", Code: wiretree.CodeValueNotFound},
		{Path: "/d", Code: wiretree.CodeDataCorrupted},
	}
	s := iss.Error()
	if !strings.Contains(s, "key_not_found at /a") {
		t.Fatalf("summary missing first issue: %q", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("summary missing overflow marker: %q", s)
	}
}

func TestAsIssues(t *testing.T) {
	err := wiretree.IssueAt(wiretree.CodeDataCorrupted, wiretree.Path{}.Key("when"), "bad date")
	iss, ok := wiretree.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues")
	}
	if iss[0].Path != "/when" || iss[0].Code != wiretree.CodeDataCorrupted {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if _, ok := wiretree.AsIssues(nil); ok {
		t.Fatalf("nil error must not yield Issues")
	}
}
