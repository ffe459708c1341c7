package term

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/sortedset"
	"github.com/pkg/errors"
)

// ErrSyntax is the cause of every error returned by Parse and ParseSequence.
var ErrSyntax = errors.New("term: syntax error")

// Parse reads a single value in literal syntax.
func Parse(input string) (sortedset.Value, error) {
	n, err := termParser.ParseString("", input)
	if err != nil {
		tracer().Debugf("term: cannot parse %q: %v", input, err)
		return nil, errors.Wrap(ErrSyntax, err.Error())
	}
	return n.value()
}

// MustParse is like Parse but panics on error. Intended for tests and
// initialization of literals.
func MustParse(input string) sortedset.Value {
	v, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseSequence reads a comma separated sequence of values. An empty or blank
// input yields an empty sequence.
func ParseSequence(input string) ([]sortedset.Value, error) {
	if strings.TrimSpace(input) == "" {
		return []sortedset.Value{}, nil
	}
	ts, err := termsParser.ParseString("", input)
	if err != nil {
		return nil, errors.Wrap(ErrSyntax, err.Error())
	}
	return elements(ts.Elems)
}

// Format writes v in literal syntax. Format(nil) returns the empty string.
func Format(v sortedset.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// FormatSequence writes values comma separated, the inverse of ParseSequence.
func FormatSequence(vs []sortedset.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = Format(v)
	}
	return strings.Join(parts, ",")
}

func (n *node) value() (sortedset.Value, error) {
	switch {
	case n.Int != nil:
		i, err := strconv.ParseInt(*n.Int, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "%s: integer %s out of range", n.Pos, *n.Int)
		}
		return sortedset.Integer(i), nil
	case n.Atom != nil:
		return sortedset.Atom(*n.Atom), nil
	case n.QAtom != nil:
		s, err := unquote(*n.QAtom)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "%s: malformed atom %s", n.Pos, *n.QAtom)
		}
		return sortedset.Atom(s), nil
	case n.Bin != nil:
		s, err := unquote(*n.Bin)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "%s: malformed bitstring %s", n.Pos, *n.Bin)
		}
		return sortedset.Bitstring(s), nil
	case n.Tuple != nil:
		elems, err := elements(n.Tuple.Elems)
		return sortedset.Tuple(elems), err
	case n.List != nil:
		elems, err := elements(n.List.Elems)
		return sortedset.List(elems), err
	}
	return nil, errors.Wrapf(ErrSyntax, "%s: empty term", n.Pos)
}

func elements(nodes []*node) ([]sortedset.Value, error) {
	vs := make([]sortedset.Value, len(nodes))
	for i, n := range nodes {
		v, err := n.value()
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// unquote removes the surrounding quotes of a token and resolves Go escapes.
// Byte escapes like \xff produce raw bytes, not runes.
func unquote(s string) (string, error) {
	quote := s[0]
	s = s[1 : len(s)-1]
	var sb strings.Builder
	for s != "" {
		r, multibyte, tail, err := strconv.UnquoteChar(s, quote)
		if err != nil {
			return "", err
		}
		if r < utf8.RuneSelf || multibyte {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(byte(r))
		}
		s = tail
	}
	return sb.String(), nil
}
