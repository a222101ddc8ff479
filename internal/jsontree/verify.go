package jsontree

// Verify reports whether candidate is the tree's target path.
//
// The candidate is first walked token by token from the root and rejected as
// soon as a token is missing or lands on a leaf. A walk that succeeds is still
// only accepted when the candidate is literally equal to TargetPath, so a
// different path to an equal value does not count.
func Verify(t *Tree, candidate string) bool {
	if _, ok := t.Resolve(candidate); !ok {
		return false
	}
	return candidate == t.TargetPath
}
