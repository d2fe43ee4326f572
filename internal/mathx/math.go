package mathx

func FloorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

// HalfSpan returns the bounds of a square terrain of side span centered on the origin.
// Odd spans round both bounds down, so span=5 gives [-3, 2].
func HalfSpan(span int) (lo, hi int) {
	return FloorDiv(-span, 2), FloorDiv(span, 2)
}

// Steps lists start, start+step, ... while < stop. step must be > 0.
func Steps(start, stop, step int) []int {
	if step <= 0 || stop <= start {
		return nil
	}
	out := make([]int, 0, (stop-start+step-1)/step)
	for v := start; v < stop; v += step {
		out = append(out, v)
	}
	return out
}
