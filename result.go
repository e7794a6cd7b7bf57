package nodewire

import (
	"maps"
	"slices"

	"github.com/creachadair/mds/value"
)

// A Result is a read-only snapshot of annotated values from one get
// or set request, navigable with the same tree topology the values
// were read from. Leaves carry values; interior prefixes are
// navigation only.
type Result struct {
	tree   *Tree
	values map[NodePath]AnnotatedValue
}

// NewResult bundles a response into a navigable snapshot. Values are
// keyed by their (redirected) path.
func NewResult(tree *Tree, values []AnnotatedValue) *Result {
	m := make(map[NodePath]AnnotatedValue, len(values))
	for _, av := range values {
		m[tree.Redirect(av.Path)] = av
	}
	return &Result{tree: tree, values: m}
}

// Timestamp returns the timestamp of the first value in the
// snapshot, if any value carries one.
func (r *Result) Timestamp() value.Maybe[uint64] {
	for _, p := range r.Paths() {
		if ts, ok := r.values[p].Timestamp.GetOK(); ok {
			return value.Just(ts)
		}
	}
	return value.Absent[uint64]()
}

// Paths returns the paths holding values, sorted.
func (r *Result) Paths() []NodePath {
	return slices.Sorted(maps.Keys(r.values))
}

// IsLeafWithValue reports whether prefix is exactly a concrete path
// with an attached value in this snapshot.
func (r *Result) IsLeafWithValue(prefix NodePath) bool {
	_, ok := r.values[r.tree.Redirect(prefix)]
	return ok
}

// Value returns the annotated value at path. It fails with
// [InvalidPathError] if the path holds no value in this snapshot.
func (r *Result) Value(path NodePath) (AnnotatedValue, error) {
	p := r.tree.Redirect(path)
	av, ok := r.values[p]
	if !ok {
		if !r.tree.Valid(p) {
			return AnnotatedValue{}, InvalidPathError{
				Path:   p,
				Reason: "no registered node at or below this prefix",
			}
		}
		return AnnotatedValue{}, InvalidPathError{
			Path:   p,
			Reason: "no value attached in this result",
		}
	}
	return av, nil
}

// Children returns the next navigable segments below prefix, limited
// to paths that hold values in this snapshot.
func (r *Result) Children(prefix NodePath) ([]string, error) {
	prefix = r.tree.Redirect(prefix)
	if !r.tree.Valid(prefix) {
		return nil, InvalidPathError{
			Path:   prefix,
			Reason: "no registered node at or below this prefix",
		}
	}
	depth := len(prefix.Segments())
	var ret []string
	seen := map[string]bool{}
	for _, p := range r.Paths() {
		if !p.IsDescendantOf(prefix) {
			continue
		}
		seg := p.Segments()[depth]
		if !seen[seg] {
			seen[seg] = true
			ret = append(ret, seg)
		}
	}
	return ret, nil
}
