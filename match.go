package nodewire

// MatchExpression resolves a path expression against a set of known
// concrete paths.
//
// A candidate matches if its first K segments (K being the number of
// segments in expr) each satisfy the expression segment at the same
// position, where a wildcard segment matches any single segment and a
// literal segment matches exactly, and the candidate either ends
// there or continues with further segments. An expression therefore
// selects both its exact match and the whole subtree below every
// match.
//
// Matching is case-sensitive. Results preserve the iteration order of
// known; they are not sorted unless known is.
func MatchExpression(expr NodePath, known []NodePath) []NodePath {
	want := expr.Segments()
	var ret []NodePath
	for _, p := range known {
		if matchSegments(want, p.Segments()) {
			ret = append(ret, p)
		}
	}
	return ret
}

func matchSegments(expr, candidate []string) bool {
	if len(candidate) < len(expr) {
		return false
	}
	for i, seg := range expr {
		if seg == Wildcard {
			if candidate[i] == "" {
				return false
			}
			continue
		}
		if candidate[i] != seg {
			return false
		}
	}
	return true
}

// Redirect applies the alias map to p, following redirections
// transitively until no further substitution applies. A cycle or
// self-redirect terminates by returning the last-resolved path before
// the repeat.
func Redirect(p NodePath, aliases map[NodePath]NodePath) NodePath {
	if len(aliases) == 0 {
		return p
	}
	seen := map[NodePath]bool{p: true}
	for {
		next, ok := aliases[p]
		if !ok || seen[next] {
			return p
		}
		seen[next] = true
		p = next
	}
}
