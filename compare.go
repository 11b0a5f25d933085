package ucl

// Equal implements the deep-equality relation used by both schema
// uniqueItems/enum (spec.md §4.9) and the round-trip tests (spec.md §8):
// compare by tag first (with Int/Float/Time treated as one numeric family),
// then by length, then by element/byte content. Object comparison ignores
// key order but requires the same set of keys and, for each, equal
// implicit-array chains in the same order.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat64() == b.AsFloat64()
	}

	if a.tag != b.tag {
		return false
	}

	switch a.tag {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case String:
		return a.s == b.s
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.keys() {
			av, _ := a.obj.get(k)
			bv, ok := b.obj.get(k)
			if !ok {
				return false
			}
			for av != nil && bv != nil {
				if !Equal(av, bv) {
					return false
				}
				av, bv = av.next, bv.next
			}
			if av != nil || bv != nil {
				return false
			}
		}
		return true
	case Userdata:
		return a.ud == b.ud
	default:
		return false
	}
}

// Merge folds other's entries into an Object value using the parser's
// include priority-merge rule (spec.md §4.6): keys already present in v win
// ties (priority >=); object-vs-object collisions merge recursively.
func (v *Value) Merge(other *Value) {
	if v.tag != Object || other.tag != Object {
		panic("ucl: Merge requires two Object values")
	}
	v.obj.mergeAll(other.obj)
}
