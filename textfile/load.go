package textfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/sortedset"
	"github.com/npillmayer/sortedset/term"
	"github.com/pkg/errors"
)

// ErrUnordered is returned by Load for files which are not strictly ascending.
var ErrUnordered = errors.New("textfile: values not strictly ascending")

// Fragment is a run of consecutive values read from a set file. Each fragment
// becomes one bucket of the loaded set.
type Fragment struct {
	FirstLine int // line number of the first value
	Values    []sortedset.Value
}

// Observer is called for every fragment, in file order. Observers run
// concurrently to the set builder and must not modify the fragment.
type Observer func(Fragment)

// textFile represents an OS file which will be loaded as a set.
type textFile struct {
	path string         // file name
	info os.FileInfo    // result from Stat(path)
	file *os.File       // file handle
	cast *caster.Caster // broadcaster for fragments
}

// endOfFile is broadcast after the last fragment. err is nil for a clean end.
type endOfFile struct {
	err error
}

// Load reads a set file and bulk-loads it into a new set of configuration cfg.
// Buckets are filled up to one less than the maximum bucket size, which
// therefore has to be at least 2.
//
// Loading stops at the first malformed line, or at the first value not
// greater than its predecessor (ErrUnordered). Opening the file is always
// done synchronously.
func Load(ctx context.Context, name string, cfg sortedset.Configuration, observers ...Observer) (*sortedset.Set, error) {
	if cfg.MaxBucketSize < 2 {
		return nil, errors.Wrapf(sortedset.ErrInvalidConfig,
			"bulk loading needs max bucket size >= 2, is %d", cfg.MaxBucketSize)
	}
	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "textfile: loading cancelled")
	}
	tf, err := openFile(ctx, name)
	if err != nil {
		return nil, err
	}
	defer tf.file.Close()
	defer tf.cast.Close()
	//
	builder, ok := tf.cast.Sub(ctx, 4)
	if !ok {
		return nil, errors.Wrap(ctx.Err(), "textfile: loading cancelled")
	}
	var wg sync.WaitGroup
	for _, observe := range observers {
		ch, ok := tf.cast.Sub(ctx, 4)
		if !ok {
			break
		}
		wg.Add(1)
		go func(ch <-chan interface{}, observe Observer) {
			defer wg.Done()
			_ = receive(ctx, ch, observe)
		}(ch, observe)
	}
	go readFragments(tf, cfg.MaxBucketSize-1)
	//
	set := sortedset.Empty(cfg)
	var appendErr error
	err = receive(ctx, builder, func(f Fragment) {
		if appendErr == nil {
			appendErr = set.AppendBucket(f.Values)
		}
	})
	wg.Wait()
	if err == nil {
		err = appendErr
	}
	if err != nil {
		tracer().Errorf("textfile: loading %s: %v", name, err)
		return nil, err
	}
	if set.BucketCount() == 0 { // empty file
		if err = set.AppendBucket(nil); err != nil {
			return nil, err
		}
	}
	tracer().Infof("textfile: loaded %d values into %d buckets from %s",
		set.Size(), set.BucketCount(), name)
	return set, nil
}

// openFile opens an OS file and collects some useful information on it,
// checking for error conditions.
func openFile(ctx context.Context, name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("textfile: %s is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	tf := &textFile{
		path: name,
		info: fi,
		file: file,
		cast: caster.New(ctx), // we will broadcast messages when fragments are loaded
	}
	tracer().Debugf("textfile: opened %s (%d bytes)", name, fi.Size())
	return tf, nil
}

// receive hands fragments to fn until the end of the file is signalled. It
// returns the error the reader ended with.
func receive(ctx context.Context, ch <-chan interface{}, fn func(Fragment)) error {
	for m := range ch {
		switch msg := m.(type) {
		case Fragment:
			fn(msg)
		case endOfFile:
			return msg.err
		}
	}
	// caster closed before end of file
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "textfile: loading cancelled")
	}
	return errors.New("textfile: loading interrupted")
}

// --- File loading goroutine ------------------------------------------------

// readFragments parses the file line by line and broadcasts fragments of at
// most size values, followed by an end marker.
func readFragments(tf *textFile, size int) {
	scanner := bufio.NewScanner(tf.file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var frag Fragment
	var prev sortedset.Value
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := term.Parse(line)
		if err != nil {
			tf.cast.Pub(endOfFile{err: errors.Wrapf(err, "%s:%d", tf.path, lineno)})
			return
		}
		if prev != nil && sortedset.Compare(prev, v) >= 0 {
			tf.cast.Pub(endOfFile{err: errors.Wrapf(ErrUnordered, "%s:%d: %s after %s",
				tf.path, lineno, v, prev)})
			return
		}
		prev = v
		if len(frag.Values) == 0 {
			frag.FirstLine = lineno
		}
		frag.Values = append(frag.Values, v)
		if len(frag.Values) == size {
			if !tf.cast.Pub(frag) {
				return // cancelled
			}
			frag = Fragment{}
		}
	}
	if len(frag.Values) > 0 && !tf.cast.Pub(frag) {
		return
	}
	var err error
	if scanner.Err() != nil {
		err = errors.Wrapf(scanner.Err(), "reading %s", tf.path)
	}
	tf.cast.Pub(endOfFile{err: err})
}

// --- Saving ----------------------------------------------------------------

// Save writes the values of s to w, one per line, in a format Load accepts.
func Save(s *sortedset.Set, w io.Writer) error {
	bw := bufio.NewWriter(w)
	var err error
	s.ForEach(func(_ int, v sortedset.Value) bool {
		_, err = fmt.Fprintln(bw, term.Format(v))
		return err == nil
	})
	if err == nil {
		err = bw.Flush()
	}
	return errors.Wrap(err, "textfile: saving set")
}

// SaveFile writes the values of s to a new file name, replacing any existing file.
func SaveFile(s *sortedset.Set, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = Save(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
