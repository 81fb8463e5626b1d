package layout

// NthChild selects every nth element of s beginning at the 1-based position
// start, like the CSS selector :nth-child(n*k + start).
//
// Positions below 1 are skipped but still advance the walk, so
// NthChild(s, 3, -1) yields positions 2, 5, 8 and so on. A non-positive n
// selects at most the element at start. The result is a new slice and s is
// not modified; use a slice of pointers when the caller needs to mutate the
// selected elements.
func NthChild[T any](s []T, n, start int) []T {
	if len(s) == 0 {
		return nil
	}
	if n <= 0 {
		if start >= 1 && start <= len(s) {
			return []T{s[start-1]}
		}
		return nil
	}

	var out []T
	for pos := start; pos <= len(s); pos += n {
		if pos > 0 {
			out = append(out, s[pos-1])
		}
	}
	return out
}

// refs returns pointers to each element of s, in order.
func refs[T any](s []T) []*T {
	out := make([]*T, len(s))
	for i := range s {
		out[i] = &s[i]
	}
	return out
}
