package sortedset

import "iter"

// ForEach walks the values of the set in order.
//
// Iteration stops early if callback returns false.
func (s *Set) ForEach(fn func(index int, v Value) bool) {
	if s == nil || fn == nil {
		return
	}
	index := 0
	for _, b := range s.buckets {
		for _, v := range b.data {
			if !fn(index, v) {
				return
			}
			index++
		}
	}
}

// All returns an iterator over all values in ascending order.
func (s *Set) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		s.ForEach(func(_ int, v Value) bool {
			return yield(v)
		})
	}
}

// ToSlice returns all values of the set in ascending order. The length of the
// result equals Size().
func (s *Set) ToSlice() []Value {
	if s == nil {
		return []Value{}
	}
	out := make([]Value, 0, s.size)
	for _, b := range s.buckets {
		out = append(out, b.data...)
	}
	return out
}
