package jsondoc

// Equal reports whether a and b hold the same JSON value. Object key order
// is not significant.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.values[k]
			if !ok || !Equal(x.values[k], yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		if _, ok := b.(*Object); ok {
			return false
		}
		if _, ok := b.([]any); ok {
			return false
		}
		return a == b
	}
}

// Diff counts the structural additions and deletions needed to turn before
// into after. Objects are compared key by key and recursed into; any other
// value, arrays included, is a leaf: a changed leaf is one addition and one
// deletion.
func Diff(before, after any) (additions, deletions int) {
	bo, bok := before.(*Object)
	ao, aok := after.(*Object)
	if bok && aok {
		for _, k := range bo.keys {
			av, ok := ao.values[k]
			if !ok {
				deletions++
				continue
			}
			a, d := Diff(bo.values[k], av)
			additions += a
			deletions += d
		}
		for _, k := range ao.keys {
			if !bo.Has(k) {
				additions++
			}
		}
		return additions, deletions
	}

	if Equal(before, after) {
		return 0, 0
	}
	return 1, 1
}
