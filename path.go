package wiretree

import (
	"strconv"
	"strings"
)

// Step is one element of a coding path: either a wire key into an object or
// an index into an array.
type Step struct {
	key   string
	index int
	isKey bool
}

// KeyStep makes an object-key step.
func KeyStep(key string) Step { return Step{key: key, isKey: true} }

// IndexStep makes an array-index step.
func IndexStep(i int) Step { return Step{index: i} }

// Path is the breadcrumb trail to the current position in the value tree.
// It exists for diagnostics only; traversal never consults it. Paths are
// immutable: Appending copies, nothing mutates in place, so a child
// container can never corrupt its parent's path.
type Path struct {
	steps []Step
}

// Appending returns a new Path with one more step.
func (p Path) Appending(s Step) Path {
	steps := make([]Step, 0, len(p.steps)+1)
	steps = append(steps, p.steps...)
	steps = append(steps, s)
	return Path{steps: steps}
}

// Key is shorthand for Appending(KeyStep(key)).
func (p Path) Key(key string) Path { return p.Appending(KeyStep(key)) }

// Index is shorthand for Appending(IndexStep(i)).
func (p Path) Index(i int) Path { return p.Appending(IndexStep(i)) }

// Len returns the number of steps.
func (p Path) Len() int { return len(p.steps) }

// String renders the path as a JSON Pointer (for example: /items/2/price).
// The root path renders as "/".
func (p Path) String() string {
	if len(p.steps) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p.steps {
		b.WriteByte('/')
		if s.isKey {
			b.WriteString(escapePointerToken(s.key))
		} else {
			b.WriteString(strconv.Itoa(s.index))
		}
	}
	return b.String()
}

// escapePointerToken applies RFC 6901 escaping: "~" -> "~0", "/" -> "~1".
func escapePointerToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
