package bridge

import (
	"sync"

	"github.com/npillmayer/sortedset"
)

// Handle references a set within a Registry.
type Handle uint64

// Registry owns sets on behalf of a host. A Registry is safe for concurrent
// use. Each set is guarded by a lock of its own.
type Registry struct {
	mu   sync.Mutex
	next Handle
	sets map[Handle]*resource
}

type resource struct {
	mu  sync.Mutex
	set *sortedset.Set
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sets: make(map[Handle]*resource),
	}
}

// New creates a seeded set and replies with {ok, Handle}.
func (r *Registry) New(initialItemCapacity, maxBucketSize int) sortedset.Value {
	return r.create(initialItemCapacity, maxBucketSize, sortedset.New)
}

// Empty creates a set without buckets, to be bulk-loaded with AppendBucket.
// Replies with {ok, Handle}.
func (r *Registry) Empty(initialItemCapacity, maxBucketSize int) sortedset.Value {
	return r.create(initialItemCapacity, maxBucketSize, sortedset.Empty)
}

// Register adopts an existing set and returns its handle.
func (r *Registry) Register(set *sortedset.Set) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.sets[r.next] = &resource{set: set}
	tracer().P("handle", r.next).Debugf("registered set")
	return r.next
}

func (r *Registry) create(capacity, maxBucketSize int, create func(sortedset.Configuration) *sortedset.Set) sortedset.Value {
	if maxBucketSize <= 0 {
		tracer().Infof("bridge: refusing max bucket size %d", maxBucketSize)
		return errorReply(AtomInvalidConfiguration)
	}
	cfg := sortedset.NewConfiguration(capacity, maxBucketSize)
	h := r.Register(create(cfg))
	return okReply(sortedset.Integer(h))
}

// Release drops the set behind h. Replies ok or {error, bad_reference}.
func (r *Registry) Release(h Handle) sortedset.Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[h]; !ok {
		return errorReply(AtomBadReference)
	}
	delete(r.sets, h)
	tracer().P("handle", h).Debugf("released set")
	return okReply()
}

// Len returns the number of live sets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets)
}

// acquire looks up h and try-locks its set. If a reply is returned, the
// operation must answer with it. Otherwise the caller must call release.
func (r *Registry) acquire(h Handle) (*resource, sortedset.Value) {
	r.mu.Lock()
	res, ok := r.sets[h]
	r.mu.Unlock()
	if !ok {
		return nil, errorReply(AtomBadReference)
	}
	if !res.mu.TryLock() {
		tracer().P("handle", h).Debugf("set is busy")
		return nil, errorReply(AtomLockFail)
	}
	return res, nil
}

func (res *resource) release() {
	res.mu.Unlock()
}

// --- Operations ------------------------------------------------------------

// Add inserts item. Replies {ok, added, I} or {ok, duplicate, I}.
func (r *Registry) Add(h Handle, item any) sortedset.Value {
	res, v := r.acquireWith(h, item)
	if res == nil {
		return v
	}
	defer res.release()
	index, err := res.set.Add(v)
	if idx, dup := sortedset.DuplicateIndex(err); dup {
		return okReply(AtomDuplicate, sortedset.Integer(idx))
	} else if err != nil {
		return errorReplyFor(err)
	}
	return okReply(AtomAdded, sortedset.Integer(index))
}

// Remove deletes item. Replies {ok, removed, I} or {error, not_found}.
func (r *Registry) Remove(h Handle, item any) sortedset.Value {
	res, v := r.acquireWith(h, item)
	if res == nil {
		return v
	}
	defer res.release()
	index, err := res.set.Remove(v)
	if err != nil {
		return errorReplyFor(err)
	}
	return okReply(AtomRemoved, sortedset.Integer(index))
}

// FindIndex replies {ok, I} or {error, not_found}.
func (r *Registry) FindIndex(h Handle, item any) sortedset.Value {
	res, v := r.acquireWith(h, item)
	if res == nil {
		return v
	}
	defer res.release()
	index, err := res.set.IndexOf(v)
	if err != nil {
		return errorReplyFor(err)
	}
	return okReply(sortedset.Integer(index))
}

// acquireWith behaves like acquire, but converts item first. On success the
// converted item is returned in place of a reply.
func (r *Registry) acquireWith(h Handle, item any) (*resource, sortedset.Value) {
	r.mu.Lock()
	_, ok := r.sets[h]
	r.mu.Unlock()
	if !ok {
		return nil, errorReply(AtomBadReference)
	}
	v, err := FromGo(item)
	if err != nil {
		tracer().Debugf("bridge: %v", err)
		return nil, errorReply(AtomUnsupportedType)
	}
	res, reply := r.acquire(h)
	if res == nil {
		return nil, reply
	}
	return res, v
}

// At replies {ok, V} or {error, index_out_of_bounds}.
func (r *Registry) At(h Handle, index int) sortedset.Value {
	res, reply := r.acquire(h)
	if res == nil {
		return reply
	}
	defer res.release()
	v, err := res.set.At(index)
	if err != nil {
		return errorReplyFor(err)
	}
	return okReply(v)
}

// Slice replies with a list of at most amount values, starting at index start.
func (r *Registry) Slice(h Handle, start, amount int) sortedset.Value {
	res, reply := r.acquire(h)
	if res == nil {
		return reply
	}
	defer res.release()
	return sortedset.List(res.set.Slice(start, amount))
}

// ToList replies with the list of all values.
func (r *Registry) ToList(h Handle) sortedset.Value {
	res, reply := r.acquire(h)
	if res == nil {
		return reply
	}
	defer res.release()
	return sortedset.List(res.set.ToSlice())
}

// Size replies with the number of values as a bare integer.
func (r *Registry) Size(h Handle) sortedset.Value {
	res, reply := r.acquire(h)
	if res == nil {
		return reply
	}
	defer res.release()
	return sortedset.Integer(res.set.Size())
}

// AppendBucket bulk-loads items, which must convert to a list. Replies ok,
// {error, max_bucket_size_exceeded} or {error, unsupported_type}.
//
// Items are not validated, see sortedset.Set.AppendBucket.
func (r *Registry) AppendBucket(h Handle, items any) sortedset.Value {
	res, v := r.acquireWith(h, items)
	if res == nil {
		return v
	}
	defer res.release()
	list, ok := v.(sortedset.List)
	if !ok {
		return errorReply(AtomUnsupportedType)
	}
	if err := res.set.AppendBucket(list); err != nil {
		return errorReplyFor(err)
	}
	return okReply()
}

// Debug replies {ok, Dump} with a bitstring dump of the set's internals.
func (r *Registry) Debug(h Handle) sortedset.Value {
	res, reply := r.acquire(h)
	if res == nil {
		return reply
	}
	defer res.release()
	return okReply(sortedset.Bitstring(res.set.Debug()))
}

// With runs fn on the set behind h while holding its lock. It replies like
// the other operations if the set cannot be acquired, and with ok otherwise.
func (r *Registry) With(h Handle, fn func(*sortedset.Set)) sortedset.Value {
	res, reply := r.acquire(h)
	if res == nil {
		return reply
	}
	defer res.release()
	fn(res.set)
	return okReply()
}
