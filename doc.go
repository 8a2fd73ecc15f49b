package wiretree

// Package wiretree is a type-driven serialization engine over a tree-shaped
// wire model. It provides:
//
// - A value tree (tree.Node) decoupling the engine from any concrete grammar
// - Three reversible containers (keyed, unkeyed, single-value) cursoring the tree
// - Per-type key mappings plus a reflection-derived field strategy
// - A stable error model via Issues (JSON Pointer coding path, code, message)
// - Source drivers for JSON (goccy/go-json) and YAML (yaml.v3)
//
// Design policy:
// - Keep only public APIs in the root package; the tree model lives in tree/,
//   grammar drivers under source/, reusable wrapper types under codec/.
// - Containers are non-owning cursor handles, so independently defined types
//   can read/write the same object node (flattened composition).
// - Every failure aborts the whole encode/decode call and carries the coding
//   path at the point of failure.
//
// Typical usage:
//
//	err := wiretree.Unmarshal(data, &v)
//	out, err := wiretree.Marshal(v)
//
//	func (v *V) DecodeWire(d *wiretree.Decoder) error {
//		c, err := d.ContainerKeyed()
//		...
//	}
