package sortedset

import "fmt"

// Check validates the structural invariants of the set:
//
//   - every bucket is strictly ascending,
//   - buckets do not overlap and are ordered,
//   - no bucket exceeds the size a split leaves behind (max-1, or 1 for a
//     maximum bucket size of 1),
//   - the cached size equals the sum of bucket lengths.
//
// Bulk-loaded buckets are checked as well, so Check will report a violated
// AppendBucket contract. This checker is intended for tests.
func (s *Set) Check() error {
	if s == nil {
		return fmt.Errorf("%w: nil set", ErrCorrupted)
	}
	var total int
	var prev Value // last value of the previous non-empty bucket
	limit := max(s.cfg.MaxBucketSize-1, 1)
	for i, b := range s.buckets {
		if b == nil {
			return fmt.Errorf("%w: nil bucket at index %d", ErrCorrupted, i)
		}
		if b.len() > limit {
			return fmt.Errorf("%w: bucket %d holds %d items, max bucket size is %d",
				ErrCorrupted, i, b.len(), s.cfg.MaxBucketSize)
		}
		if err := checkBucket(b, i); err != nil {
			return err
		}
		if prev != nil && b.len() > 0 && Compare(prev, b.first()) >= 0 {
			return fmt.Errorf("%w: bucket %d overlaps its predecessor (%v >= %v)",
				ErrCorrupted, i, prev, b.first())
		}
		if b.len() > 0 {
			prev = b.last()
		}
		total += b.len()
	}
	if total != s.size {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrCorrupted, s.size, total)
	}
	return nil
}

func checkBucket(b *bucket, index int) error {
	for j := 1; j < len(b.data); j++ {
		if Compare(b.data[j-1], b.data[j]) >= 0 {
			return fmt.Errorf("%w: bucket %d not ascending at %d (%v >= %v)",
				ErrCorrupted, index, j, b.data[j-1], b.data[j])
		}
	}
	return nil
}
