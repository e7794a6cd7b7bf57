package nodewire

import "strings"

// A NodePath is an absolute, slash-delimited path addressing one node
// in the instrument tree, for example "/dev1234/demods/0/enable".
//
// A path used as an expression may contain the wildcard segment "*",
// which matches exactly one segment at its position.
type NodePath string

const (
	// Separator separates path segments.
	Separator = "/"
	// Wildcard is the segment that matches any single segment in a
	// path expression.
	Wildcard = "*"
)

// JoinSegments assembles segments into an absolute path. A leading
// separator is always added.
func JoinSegments(segments ...string) NodePath {
	return NodePath(Separator + strings.Join(segments, Separator))
}

// Segments splits p into its segments. A leading separator is
// ignored, and the root path "/" has no segments.
func (p NodePath) Segments() []string {
	if p == "" || p == Separator {
		return nil
	}
	s := string(p)
	s = strings.TrimPrefix(s, Separator)
	return strings.Split(s, Separator)
}

// Prefix returns the path consisting of the first n segments of p. If
// p has fewer than n segments, p is returned unchanged.
func (p NodePath) Prefix(n int) NodePath {
	segs := p.Segments()
	if n > len(segs) {
		n = len(segs)
	}
	return JoinSegments(segs[:n]...)
}

// IsDescendantOf reports whether p's segment sequence extends other's
// by one or more segments. Comparison is positional, per segment, not
// by string containment. A path is not a descendant of itself.
func (p NodePath) IsDescendantOf(other NodePath) bool {
	ps, os := p.Segments(), other.Segments()
	if len(ps) <= len(os) {
		return false
	}
	for i, seg := range os {
		if ps[i] != seg {
			return false
		}
	}
	return true
}

// HasWildcard reports whether p contains at least one wildcard
// segment.
func (p NodePath) HasWildcard() bool {
	for _, seg := range p.Segments() {
		if seg == Wildcard {
			return true
		}
	}
	return false
}

func (p NodePath) String() string { return string(p) }
