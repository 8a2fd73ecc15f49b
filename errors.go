package wiretree

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeKeyNotFound: a required key is absent from a keyed container.
	CodeKeyNotFound = "key_not_found"
	// CodeValueNotFound: a required value is the wire null marker, or an
	// unkeyed container was read past its last element.
	CodeValueNotFound = "value_not_found"
	// CodeTypeMismatch: the node at the current position does not convert to
	// the requested shape, or an enumeration raw value matches no case.
	CodeTypeMismatch = "type_mismatch"
	// CodeDataCorrupted: structurally valid input that is semantically
	// invalid for the target type; the escape hatch for custom decode logic.
	CodeDataCorrupted = "data_corrupted"
	// CodeInvalidState: programmer-usage error, e.g. reusing a single-value
	// container or requesting a second root container.
	CodeInvalidState = "invalid_state"
)

// Issue represents a single failure entry.
type Issue struct {
	Path    string // Coding path as a JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of failures that implements error. An encode or
// decode call aborts on the first failure, so in practice the slice holds a
// single entry; the collection shape keeps callers uniform.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the first underlying cause for errors.Is/As chains.
func (iss Issues) Unwrap() error {
	if len(iss) == 0 {
		return nil
	}
	return iss[0].Cause
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueAt builds a single-issue error carrying the coding path. Custom
// encode/decode routines use it to report domain failures in the engine's
// error shape:
//
//	return wiretree.IssueAt(wiretree.CodeDataCorrupted, c.Path(), "bad date format")
func IssueAt(code string, path Path, msg string) Issues {
	return Issues{{Path: path.String(), Code: code, Message: msg}}
}

// ---- internal constructors, one per failure kind ----

func errKeyNotFound(p Path, key string) Issues {
	return Issues{{Path: p.String(), Code: CodeKeyNotFound, Message: fmt.Sprintf("no value for key %q", key)}}
}

func errValueNotFound(p Path, msg string) Issues {
	return Issues{{Path: p.String(), Code: CodeValueNotFound, Message: msg}}
}

func errTypeMismatch(p Path, cause error) Issues {
	msg := "type mismatch"
	if cause != nil {
		msg = cause.Error()
	}
	return Issues{{Path: p.String(), Code: CodeTypeMismatch, Message: msg, Cause: cause}}
}

func errTypeMismatchf(p Path, format string, args ...any) Issues {
	return Issues{{Path: p.String(), Code: CodeTypeMismatch, Message: fmt.Sprintf(format, args...)}}
}

func errDataCorrupted(p Path, msg string, cause error) Issues {
	return Issues{{Path: p.String(), Code: CodeDataCorrupted, Message: msg, Cause: cause}}
}

func errInvalidState(p Path, msg string) Issues {
	return Issues{{Path: p.String(), Code: CodeInvalidState, Message: msg}}
}
