package vals

// Equal reports whether two values are equal. Two arrays are equal when they
// have the same length and their items are pairwise equal; the recorded item
// types do not participate.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case Bool, Int, Float, String:
		return x == y
	case Array:
		y, ok := y.(Array)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	default:
		panic("code bug: unknown value variant")
	}
}
