package textfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sortedset"
	"github.com/npillmayer/sortedset/term"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sortedset")
	defer teardown()
	//
	path := writeFile(t, `# a set file
1
2
3

ok
{a,b}
[1]
"x"
`)
	var mu sync.Mutex
	var lines []int
	set, err := Load(context.Background(), path, sortedset.WithMaxBucketSize(3), func(f Fragment) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, f.FirstLine)
	})
	if err != nil {
		t.Fatalf("cannot load set: %v", err)
	}
	if err := set.Check(); err != nil {
		t.Fatal(err)
	}
	want, _ := term.ParseSequence(`1,2,3,ok,{a,b},[1],"x"`)
	if diff := cmp.Diff(want, set.ToSlice()); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if set.BucketCount() != 4 {
		t.Errorf("expected 4 buckets of at most 2 values, have %#v", set)
	}
	if diff := cmp.Diff([]int{2, 4, 7, 9}, lines); diff != "" {
		t.Errorf("observer saw unexpected fragments (-want +got):\n%s", diff)
	}
	// bulk-loaded sets accept further values
	if _, err := set.Add(sortedset.Integer(0)); err != nil {
		t.Fatal(err)
	}
	if err := set.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	set, err := Load(context.Background(), writeFile(t, "\n# nothing\n"), sortedset.DefaultConfiguration())
	if err != nil {
		t.Fatal(err)
	}
	if set.Size() != 0 || set.BucketCount() != 1 {
		t.Errorf("expected a seeded empty set, have %#v", set)
	}
	if _, err := set.Add(sortedset.Atom("a")); err != nil {
		t.Errorf("cannot add to loaded empty set: %v", err)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sortedset")
	defer teardown()
	//
	ctx := context.Background()
	cfg := sortedset.WithMaxBucketSize(4)
	if _, err := Load(ctx, writeFile(t, "1\n3\n2\n"), cfg); !errors.Is(err, ErrUnordered) {
		t.Errorf("expected ErrUnordered, got %v", err)
	}
	if _, err := Load(ctx, writeFile(t, "1\n1\n"), cfg); !errors.Is(err, ErrUnordered) {
		t.Errorf("expected ErrUnordered for duplicates, got %v", err)
	}
	_, err := Load(ctx, writeFile(t, "1\n{2\n"), cfg)
	if !errors.Is(err, term.ErrSyntax) || !strings.Contains(err.Error(), ":2") {
		t.Errorf("expected syntax error in line 2, got %v", err)
	}
	if _, err := Load(ctx, filepath.Join(t.TempDir(), "missing"), cfg); err == nil {
		t.Errorf("expected error for missing file")
	}
	if _, err := Load(ctx, t.TempDir(), cfg); err == nil {
		t.Errorf("expected error for directory")
	}
	if _, err := Load(ctx, writeFile(t, "1\n"), sortedset.WithMaxBucketSize(1)); !errors.Is(err, sortedset.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := sortedset.New(sortedset.WithMaxBucketSize(5))
	for _, lit := range []string{`"b"`, "'Quoted atom'", "-4", "{1,[]}", `"a\nb"`, "[x,y]"} {
		if _, err := s.Add(term.MustParse(lit)); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := Save(s, &buf); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != s.Size() {
		t.Errorf("expected one line per value, have %d lines", n)
	}
	path := filepath.Join(t.TempDir(), "saved.txt")
	if err := SaveFile(s, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(context.Background(), path, s.Configuration())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s.ToSlice(), loaded.ToSlice()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, writeFile(t, "1\n2\n"), sortedset.DefaultConfiguration()); err == nil {
		t.Errorf("expected cancelled load to fail")
	}
}
