package sortedset

import (
	"errors"
	"fmt"
	"slices"
)

// Set is a duplicate-free ordered set of values, stored as an ordered sequence
// of non-overlapping buckets.
//
// A Set is not safe for concurrent use. See the package documentation.
type Set struct {
	cfg     Configuration
	buckets []*bucket
	size    int
}

// Location describes where a value is stored inside a set.
type Location struct {
	Bucket int // index of the bucket holding the value
	Inner  int // index within the bucket
	Index  int // effective index in the flattened set
}

// New creates a set which is seeded with one empty bucket and is immediately
// ready for all operations.
//
// A non-positive cfg.MaxBucketSize is a contract violation and will panic.
func New(cfg Configuration) *Set {
	s := Empty(cfg)
	s.buckets = append(s.buckets, newBucket(0))
	return s
}

// Empty creates a set without any bucket. Sets created this way are meant to be
// bulk-loaded with AppendBucket. Operations other than AppendBucket, Size and
// ToSlice require at least one bucket and will panic with ErrNoBuckets.
//
// A non-positive cfg.MaxBucketSize is a contract violation and will panic.
func Empty(cfg Configuration) *Set {
	mustBePositive(cfg.MaxBucketSize)
	cfg = cfg.normalized()
	return &Set{
		cfg:     cfg,
		buckets: make([]*bucket, 0, cfg.InitialSetCapacity),
	}
}

// Default creates a seeded set with the default configuration.
func Default() *Set {
	return New(DefaultConfiguration())
}

// Configuration returns the configuration the set has been created with.
func (s *Set) Configuration() Configuration {
	return s.cfg
}

// Size returns the number of values in the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return s.size
}

// BucketCount returns the number of buckets currently in use.
func (s *Set) BucketCount() int {
	if s == nil {
		return 0
	}
	return len(s.buckets)
}

// AppendBucket bulk-loads items as a new trailing bucket.
//
// The items are not validated. Callers must supply values which are strictly
// ascending, and which are all greater than every value already in the set.
// Violating this contract leaves the set in an undefined state.
//
// If len(items) is not less than the maximum bucket size, AppendBucket returns
// ErrMaxBucketSizeExceeded and leaves the set unchanged. Items holding nil
// are rejected with ErrUnsupportedValue. items is copied.
func (s *Set) AppendBucket(items []Value) error {
	if len(items) >= s.cfg.MaxBucketSize {
		return fmt.Errorf("%w: %d items, max bucket size is %d",
			ErrMaxBucketSizeExceeded, len(items), s.cfg.MaxBucketSize)
	}
	for _, v := range items {
		if err := Validate(v); err != nil {
			return err
		}
	}
	b := newBucket(len(items))
	b.data = append(b.data, items...)
	s.buckets = append(s.buckets, b)
	s.size += len(items)
	tracer().Debugf("appended bucket #%d with %d items", len(s.buckets)-1, len(items))
	return nil
}

// locateBucket selects the single bucket which may contain v, or into which v
// would have to be inserted.
func (s *Set) locateBucket(v Value) int {
	s.requireBuckets("locate bucket")
	i, found := slices.BinarySearchFunc(s.buckets, v, func(b *bucket, v Value) int {
		return b.rangeTest(v)
	})
	if found {
		return i
	}
	return min(i, len(s.buckets)-1)
}

// effectiveIndex converts a bucket-local index into an index into the flattened set.
func (s *Set) effectiveIndex(bucketIndex, inner int) int {
	index := inner
	for _, b := range s.buckets[:bucketIndex] {
		index += b.len()
	}
	return index
}

// Add inserts v and returns its effective index.
//
// If v is already present, the set is left unchanged and Add returns a
// *DuplicateError (matching ErrDuplicate) carrying the effective index of the
// present value.
func (s *Set) Add(v Value) (int, error) {
	if err := Validate(v); err != nil {
		return 0, err
	}
	bi := s.locateBucket(v)
	b := s.buckets[bi]
	inner, err := b.add(v)
	if err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			return 0, &DuplicateError{Index: s.effectiveIndex(bi, dup.Index)}
		}
		return 0, err
	}
	index := s.effectiveIndex(bi, inner)
	if b.len() >= s.cfg.MaxBucketSize {
		other := b.split()
		s.buckets = slices.Insert(s.buckets, bi+1, other)
		tracer().Debugf("split bucket #%d into %d + %d items", bi, b.len(), other.len())
	}
	s.size++
	return index, nil
}

// FindIndex locates v.
func (s *Set) FindIndex(v Value) (Location, error) {
	if err := Validate(v); err != nil {
		return Location{}, err
	}
	bi := s.locateBucket(v)
	inner, found := s.buckets[bi].search(v)
	if !found {
		return Location{}, ErrNotFound
	}
	return Location{
		Bucket: bi,
		Inner:  inner,
		Index:  s.effectiveIndex(bi, inner),
	}, nil
}

// IndexOf returns the effective index of v.
func (s *Set) IndexOf(v Value) (int, error) {
	loc, err := s.FindIndex(v)
	if err != nil {
		return 0, err
	}
	return loc.Index, nil
}

// Contains reports whether v is a member of the set.
func (s *Set) Contains(v Value) bool {
	_, err := s.FindIndex(v)
	return err == nil
}

// Remove deletes v and returns the effective index it had. If v is not present,
// Remove returns ErrNotFound and leaves the set unchanged.
//
// A bucket which becomes empty is dropped, unless it is the only bucket left.
func (s *Set) Remove(v Value) (int, error) {
	loc, err := s.FindIndex(v)
	if err != nil {
		return 0, err
	}
	if s.size == 0 {
		assert(false, fmt.Sprintf(
			"found %v but size is 0 (bucket index %d, inner index %d, effective index %d, %d buckets)",
			v, loc.Bucket, loc.Inner, loc.Index, len(s.buckets)))
	}
	b := s.buckets[loc.Bucket]
	b.removeAt(loc.Inner)
	if b.len() == 0 && len(s.buckets) > 1 {
		s.buckets = slices.Delete(s.buckets, loc.Bucket, loc.Bucket+1)
		tracer().Debugf("dropped empty bucket #%d", loc.Bucket)
	}
	s.size--
	return loc.Index, nil
}

func (s *Set) requireBuckets(op string) {
	if len(s.buckets) == 0 {
		tracer().Errorf("sortedset: %s called on set without buckets", op)
		panic(fmt.Errorf("%w: %s", ErrNoBuckets, op))
	}
}
