package sortedset

// At returns the value at effective index.
func (s *Set) At(index int) (Value, error) {
	s.requireBuckets("at")
	if index < 0 {
		return nil, ErrIndexOutOfBounds
	}
	remaining := index
	for _, b := range s.buckets {
		if remaining < b.len() {
			return b.data[remaining], nil
		}
		remaining -= b.len()
	}
	return nil, ErrIndexOutOfBounds
}

// Slice returns at most amount values, starting at effective index start.
//
// Slice never fails: if the set holds fewer values from start onward, the
// result is shorter than amount, possibly empty. Negative arguments yield an
// empty result.
func (s *Set) Slice(start, amount int) []Value {
	s.requireBuckets("slice")
	if start < 0 || amount <= 0 || start >= s.size {
		return []Value{}
	}
	result := make([]Value, 0, min(amount, s.size-start))
	bi := 0
	for ; bi < len(s.buckets); bi++ { // seek to the bucket holding start
		if start < s.buckets[bi].len() {
			break
		}
		start -= s.buckets[bi].len()
	}
	for ; bi < len(s.buckets) && amount > 0; bi++ {
		data := s.buckets[bi].data[start:]
		n := min(len(data), amount)
		result = append(result, data[:n]...)
		amount -= n
		start = 0
	}
	return result
}
