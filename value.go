package sortedset

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates the value kinds a set is able to store. The numeric order of
// kinds is the cross-kind order of values.
type Kind uint8

const (
	KindInteger Kind = iota
	KindAtom
	KindTuple
	KindList
	KindBitstring
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindAtom:
		return "atom"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	case KindBitstring:
		return "bitstring"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged value. The set of implementations is closed:
//
//   - Integer   (signed 64-bit)
//   - Atom      (interned symbol, represented as text)
//   - Tuple     (fixed-arity sequence of values)
//   - List      (variable-length sequence of values)
//   - Bitstring (byte payload)
type Value interface {
	Kind() Kind
	String() string
	sealed() // only types in this package implement Value
}

// Integer is a signed 64-bit integer value.
type Integer int64

// Atom is a symbol value.
type Atom string

// Tuple is a fixed-arity sequence of values.
type Tuple []Value

// List is a variable-length sequence of values.
type List []Value

// Bitstring is a byte/text payload.
type Bitstring string

func (Integer) Kind() Kind   { return KindInteger }
func (Atom) Kind() Kind      { return KindAtom }
func (Tuple) Kind() Kind     { return KindTuple }
func (List) Kind() Kind      { return KindList }
func (Bitstring) Kind() Kind { return KindBitstring }

func (Integer) sealed()   {}
func (Atom) sealed()      {}
func (Tuple) sealed()     {}
func (List) sealed()      {}
func (Bitstring) sealed() {}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal to, or
// greater than b.
//
// Values of different kinds are ordered by kind:
//
//	Integer < Atom < Tuple < List < Bitstring
//
// Values of equal kind compare as follows: integers numerically; atoms and
// bitstrings by byte-wise lexical order. Tuples of different length are ordered
// by length alone, without inspecting their elements; tuples of equal length
// compare element by element. Lists compare element by element up to the
// shorter length, then the shorter list is less. Thus
//
//	{9} < {0,0}     but     [1] < [1,0] < [2]
func Compare(a, b Value) int {
	assert(a != nil && b != nil, "cannot compare nil value")
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case Integer:
		return cmp.Compare(x, b.(Integer))
	case Atom:
		return strings.Compare(string(x), string(b.(Atom)))
	case Tuple:
		y := b.(Tuple)
		if len(x) != len(y) {
			return cmp.Compare(len(x), len(y))
		}
		return compareElements(x, y, len(x))
	case List:
		y := b.(List)
		if c := compareElements(x, y, min(len(x), len(y))); c != 0 {
			return c
		}
		return cmp.Compare(len(x), len(y))
	case Bitstring:
		return strings.Compare(string(x), string(b.(Bitstring)))
	}
	panic(&CorruptionError{Msg: "unknown value kind " + ka.String()})
}

func compareElements(x, y []Value, n int) int {
	for i := 0; i < n; i++ {
		if c := Compare(x[i], y[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Validate checks that v can be ordered: v and, at any depth, every element
// of a composite must be non-nil. Otherwise it returns an error wrapping
// ErrUnsupportedValue.
func Validate(v Value) error {
	switch x := v.(type) {
	case nil:
		return fmt.Errorf("%w: nil value", ErrUnsupportedValue)
	case Tuple:
		return validateElements(x)
	case List:
		return validateElements(x)
	}
	return nil
}

func validateElements(vs []Value) error {
	for i, v := range vs {
		if v == nil {
			return fmt.Errorf("%w: nil element at position %d", ErrUnsupportedValue, i)
		}
		if err := Validate(v); err != nil {
			return err
		}
	}
	return nil
}

// Less reports whether a is ordered before b.
func Less(a, b Value) bool {
	return Compare(a, b) < 0
}

// Equal reports whether a and b are the same value.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// Clone returns a deep copy of v. Scalars are returned as they are.
func Clone(v Value) Value {
	switch x := v.(type) {
	case Tuple:
		return Tuple(cloneElements(x))
	case List:
		return List(cloneElements(x))
	}
	return v
}

func cloneElements(vs []Value) []Value {
	if vs == nil {
		return nil
	}
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Clone(v)
	}
	return out
}

// --- Literal syntax --------------------------------------------------------

// String renders the value in literal syntax: 42, foo, {1,2}, [1,2], "bin".
func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// String renders the atom, quoting it with single quotes unless it is a
// plain identifier starting with a lowercase letter.
func (a Atom) String() string {
	if isPlainAtom(string(a)) {
		return string(a)
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(string(a)) + "'"
}

func (t Tuple) String() string {
	return "{" + joinValues(t) + "}"
}

func (l List) String() string {
	return "[" + joinValues(l) + "]"
}

func (b Bitstring) String() string {
	return strconv.Quote(string(b))
}

func joinValues(vs []Value) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(',')
		}
		if v == nil {
			sb.WriteString("<nil>")
			continue
		}
		sb.WriteString(v.String())
	}
	return sb.String()
}

func isPlainAtom(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '@') {
			return false
		}
	}
	return true
}
