package sortedset

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSetString(t *testing.T) {
	s := New(WithMaxBucketSize(3))
	if s.String() != "#{}" {
		t.Errorf("empty set prints as %s", s)
	}
	mustAdd(t, s, Integer(3), Atom("ok"), Integer(1), Bitstring("x"))
	if got := s.String(); got != `#{1,3,ok,"x"}` {
		t.Errorf("set prints as %s", got)
	}
	if got := fmt.Sprintf("%#v", s); got != `sortedset.Set{size: 4, buckets: [1 | 3 | ok,"x"]}` {
		t.Errorf("GoString() = %s", got)
	}
}

func TestDebug(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sortedset")
	defer teardown()
	//
	s := New(WithMaxBucketSize(3))
	mustAdd(t, s, ints(1, 2, 3, 4)...)
	d := s.Debug()
	t.Logf("debug output:\n%s", d)
	for _, want := range []string{"MaxBucketSize: (int) 3", "Size: (int) 4", `(string) (len=1) "4"`} {
		if !strings.Contains(d, want) {
			t.Errorf("expected debug output to contain %q", want)
		}
	}
	var nilset *Set
	if nilset.Debug() != "<nil set>" {
		t.Errorf("nil set debug output is %q", nilset.Debug())
	}
}

func TestSet2Dot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sortedset")
	defer teardown()
	//
	s := New(WithMaxBucketSize(3))
	mustAdd(t, s, bits("a", "b", "c", "d")...)
	var sb strings.Builder
	Set2Dot(s, &sb)
	dot := sb.String()
	t.Logf("\n%s", dot)
	if !strings.HasPrefix(dot, "strict digraph {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("output is not a DOT graph")
	}
	if n := strings.Count(dot, "\"set\" -> "); n != s.BucketCount() {
		t.Errorf("expected %d bucket edges, have %d", s.BucketCount(), n)
	}
	if !strings.Contains(dot, `\"d\"`) {
		t.Errorf("expected bitstring labels to be escaped")
	}
}
