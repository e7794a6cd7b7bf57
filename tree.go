package nodewire

import (
	"fmt"
	"sync"
)

// A Tree is a lazily materialized, read-only view over a path
// registry, exposing tree navigation without ever building the full
// tree up front. Nodes are addressed by path prefix; children of a
// prefix are computed on first use and memoized.
//
// A Tree is safe for concurrent use.
type Tree struct {
	reg     *Registry
	aliases map[NodePath]NodePath

	mu       sync.Mutex
	children map[NodePath][]string
}

// NewTree builds a tree view over reg. aliases redirects source paths
// to canonical target paths before any lookup; it may be nil.
func NewTree(reg *Registry, aliases map[NodePath]NodePath) *Tree {
	return &Tree{
		reg:      reg,
		aliases:  aliases,
		children: make(map[NodePath][]string),
	}
}

// Registry returns the registry the tree was built from.
func (t *Tree) Registry() *Registry { return t.reg }

// Redirect resolves path aliases for p. See [Redirect].
func (t *Tree) Redirect(p NodePath) NodePath {
	return Redirect(p, t.aliases)
}

// Valid reports whether prefix addresses an existing node or subtree:
// some registered path has it as a segment-sequence prefix, including
// equality. Aliases are applied first.
func (t *Tree) Valid(prefix NodePath) bool {
	prefix = t.Redirect(prefix)
	if t.reg.Has(prefix) {
		return true
	}
	for _, p := range t.reg.paths {
		if p.IsDescendantOf(prefix) {
			return true
		}
	}
	return false
}

// IsLeaf reports whether path is a registered concrete path with no
// further segments below it.
func (t *Tree) IsLeaf(path NodePath) bool {
	path = t.Redirect(path)
	if !t.reg.Has(path) {
		return false
	}
	kids, err := t.Children(path)
	return err == nil && len(kids) == 0
}

// Children returns the immediate next segments among registered paths
// below prefix, deduplicated and sorted. The result is computed
// lazily and cached per prefix. It fails with [InvalidPathError] if
// the prefix addresses nothing; the error is raised for the
// already-redirected path, which is not redirected again.
func (t *Tree) Children(prefix NodePath) ([]string, error) {
	prefix = t.Redirect(prefix)

	t.mu.Lock()
	kids, ok := t.children[prefix]
	t.mu.Unlock()
	if ok {
		return kids, nil
	}

	if !t.Valid(prefix) {
		return nil, InvalidPathError{
			Path:   prefix,
			Reason: "no registered node at or below this prefix",
		}
	}

	depth := len(prefix.Segments())
	var ret []string
	seen := map[string]bool{}
	for _, p := range t.reg.paths {
		if !p.IsDescendantOf(prefix) {
			continue
		}
		seg := p.Segments()[depth]
		if !seen[seg] {
			seen[seg] = true
			ret = append(ret, seg)
		}
	}

	t.mu.Lock()
	t.children[prefix] = ret
	t.mu.Unlock()
	return ret, nil
}

// Root returns the prefix from which navigation starts. If every
// registered path shares a single common first segment, that segment
// is collapsed into the root so callers can omit it; with multiple
// distinct first segments the root is "/". Collapsing is an
// addressing convenience only, the registry is unchanged.
func (t *Tree) Root() NodePath {
	first := ""
	for _, p := range t.reg.paths {
		segs := p.Segments()
		if len(segs) == 0 {
			continue
		}
		if first == "" {
			first = segs[0]
			continue
		}
		if segs[0] != first {
			return NodePath(Separator)
		}
	}
	if first == "" {
		return NodePath(Separator)
	}
	return JoinSegments(first)
}

// At verifies that prefix addresses a node or subtree and returns the
// redirected prefix. It fails with [InvalidPathError] otherwise.
//
// Wildcard prefixes are not resolvable to a single node; use
// [Registry.Match] to expand them.
func (t *Tree) At(prefix NodePath) (NodePath, error) {
	if prefix.HasWildcard() {
		return "", InvalidPathError{
			Path:   prefix,
			Reason: fmt.Sprintf("cannot address a single node with wildcard segment %q", Wildcard),
		}
	}
	prefix = t.Redirect(prefix)
	if !t.Valid(prefix) {
		return "", InvalidPathError{
			Path:   prefix,
			Reason: "no registered node at or below this prefix",
		}
	}
	return prefix, nil
}
