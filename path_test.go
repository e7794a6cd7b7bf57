package nodewire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		path NodePath
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"/a", []string{"a"}},
		{"/a/b/c", []string{"a", "b", "c"}},
		{"a/b", []string{"a", "b"}},
		{"/dev1234/demods/0/enable", []string{"dev1234", "demods", "0", "enable"}},
	}
	for _, tc := range tests {
		if got := tc.path.Segments(); !cmp.Equal(got, tc.want) {
			t.Errorf("Segments(%q): got %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		segs []string
		want NodePath
	}{
		{[]string{"a"}, "/a"},
		{[]string{"a", "b", "c"}, "/a/b/c"},
		{nil, "/"},
	}
	for _, tc := range tests {
		if got := JoinSegments(tc.segs...); got != tc.want {
			t.Errorf("JoinSegments(%v): got %q, want %q", tc.segs, got, tc.want)
		}
	}
}

func TestPrefix(t *testing.T) {
	p := NodePath("/a/b/c")
	tests := []struct {
		n    int
		want NodePath
	}{
		{0, "/"},
		{1, "/a"},
		{2, "/a/b"},
		{3, "/a/b/c"},
		{4, "/a/b/c"},
	}
	for _, tc := range tests {
		if got := p.Prefix(tc.n); got != tc.want {
			t.Errorf("Prefix(%d): got %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestIsDescendantOf(t *testing.T) {
	tests := []struct {
		path, other NodePath
		want        bool
	}{
		{"/a/b", "/a", true},
		{"/a/b/c", "/a", true},
		{"/a", "/a", false},
		{"/a", "/a/b", false},
		{"/ab", "/a", false}, // string prefix, not a segment prefix
		{"/a/b", "/a/c", false},
		{"/a", "/", true},
		{"/a", "", true},
	}
	for _, tc := range tests {
		if got := tc.path.IsDescendantOf(tc.other); got != tc.want {
			t.Errorf("IsDescendantOf(%q, %q): got %v, want %v", tc.path, tc.other, got, tc.want)
		}
	}
}

func TestHasWildcard(t *testing.T) {
	tests := []struct {
		path NodePath
		want bool
	}{
		{"/a/b", false},
		{"/a/*/b", true},
		{"/*", true},
		{"/a*b", false}, // wildcard is a whole segment, not a glob
		{"/", false},
	}
	for _, tc := range tests {
		if got := tc.path.HasWildcard(); got != tc.want {
			t.Errorf("HasWildcard(%q): got %v, want %v", tc.path, got, tc.want)
		}
	}
}
