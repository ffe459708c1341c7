package bridge

import (
	"math"

	"github.com/npillmayer/sortedset"
	"github.com/pkg/errors"
)

// Tuple is the host representation of a tuple. Plain slices convert to lists.
type Tuple []any

// FromGo converts a host value into a set value.
//
//	int, int8 … int64, uint … uint64  Integer (must fit into int64)
//	bool                              Atom true / false
//	nil                               Atom nil
//	string, []byte                    Bitstring
//	[]any                             List
//	Tuple                             Tuple
//	sortedset.Value                   itself, composites are checked element-wise
//
// Any other value, at any nesting depth, yields an error wrapping
// sortedset.ErrUnsupportedValue.
func FromGo(x any) (sortedset.Value, error) {
	switch v := x.(type) {
	case nil:
		return sortedset.Atom("nil"), nil
	case int:
		return sortedset.Integer(v), nil
	case int8:
		return sortedset.Integer(v), nil
	case int16:
		return sortedset.Integer(v), nil
	case int32:
		return sortedset.Integer(v), nil
	case int64:
		return sortedset.Integer(v), nil
	case uint:
		return fromUnsigned(uint64(v))
	case uint8:
		return sortedset.Integer(v), nil
	case uint16:
		return sortedset.Integer(v), nil
	case uint32:
		return sortedset.Integer(v), nil
	case uint64:
		return fromUnsigned(v)
	case bool:
		if v {
			return sortedset.Atom("true"), nil
		}
		return sortedset.Atom("false"), nil
	case string:
		return sortedset.Bitstring(v), nil
	case []byte:
		return sortedset.Bitstring(v), nil
	case []any:
		elems, err := convertAll(v)
		return sortedset.List(elems), err
	case Tuple:
		elems, err := convertAll(v)
		return sortedset.Tuple(elems), err
	case sortedset.Value:
		if err := sortedset.Validate(v); err != nil {
			return nil, errors.Wrap(err, "host value")
		}
		return v, nil
	}
	return nil, errors.Wrapf(sortedset.ErrUnsupportedValue, "host value of type %T", x)
}

func fromUnsigned(u uint64) (sortedset.Value, error) {
	if u > math.MaxInt64 {
		return nil, errors.Wrapf(sortedset.ErrUnsupportedValue, "integer %d exceeds 64 bit", u)
	}
	return sortedset.Integer(u), nil
}

func convertAll(xs []any) ([]sortedset.Value, error) {
	vs := make([]sortedset.Value, len(xs))
	for i, x := range xs {
		v, err := FromGo(x)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}
