package common

// Unique returns the distinct elements of s in first-seen order.
func Unique[S ~[]E, E comparable](s S) S {
	if len(s) == 0 {
		return s
	}

	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		out = append(out, e)
	}

	return out
}

// Only returns the single element of s and true, or the zero value and
// false if s is empty or has more than one element.
func Only[S ~[]E, E any](s S) (E, bool) {
	if len(s) != 1 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// NonEmpty returns the elements of s that are not the zero value.
func NonEmpty[S ~[]E, E comparable](s S) S {
	var (
		zero E
		out  S
	)

	for _, e := range s {
		if e != zero {
			out = append(out, e)
		}
	}

	return out
}
