package bridge

import (
	"github.com/npillmayer/sortedset"
	"github.com/pkg/errors"
)

// Atoms used in replies.
const (
	AtomOK    = sortedset.Atom("ok")
	AtomError = sortedset.Atom("error")

	AtomAdded     = sortedset.Atom("added")
	AtomDuplicate = sortedset.Atom("duplicate")
	AtomRemoved   = sortedset.Atom("removed")

	AtomBadReference          = sortedset.Atom("bad_reference")
	AtomLockFail              = sortedset.Atom("lock_fail")
	AtomUnsupportedType       = sortedset.Atom("unsupported_type")
	AtomNotFound              = sortedset.Atom("not_found")
	AtomIndexOutOfBounds      = sortedset.Atom("index_out_of_bounds")
	AtomMaxBucketSizeExceeded = sortedset.Atom("max_bucket_size_exceeded")
	AtomInvalidConfiguration  = sortedset.Atom("invalid_configuration")
)

func okReply(vs ...sortedset.Value) sortedset.Value {
	if len(vs) == 0 {
		return AtomOK
	}
	return append(sortedset.Tuple{AtomOK}, vs...)
}

func errorReply(reason sortedset.Atom) sortedset.Value {
	return sortedset.Tuple{AtomError, reason}
}

// errorReplyFor maps an error of the sortedset package to its reply.
func errorReplyFor(err error) sortedset.Value {
	switch {
	case errors.Is(err, sortedset.ErrNotFound):
		return errorReply(AtomNotFound)
	case errors.Is(err, sortedset.ErrIndexOutOfBounds):
		return errorReply(AtomIndexOutOfBounds)
	case errors.Is(err, sortedset.ErrMaxBucketSizeExceeded):
		return errorReply(AtomMaxBucketSizeExceeded)
	case errors.Is(err, sortedset.ErrInvalidConfig):
		return errorReply(AtomInvalidConfiguration)
	}
	return errorReply(AtomUnsupportedType)
}

// IsError reports whether reply is an {error, Reason} tuple.
func IsError(reply sortedset.Value) bool {
	t, ok := reply.(sortedset.Tuple)
	return ok && len(t) == 2 && sortedset.Equal(t[0], AtomError)
}

// Reason extracts the reason atom of an error reply.
func Reason(reply sortedset.Value) (sortedset.Atom, bool) {
	if !IsError(reply) {
		return "", false
	}
	a, ok := reply.(sortedset.Tuple)[1].(sortedset.Atom)
	return a, ok
}
