package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/sortedset"
	"github.com/npillmayer/sortedset/bridge"
	"github.com/npillmayer/sortedset/term"
	"github.com/npillmayer/sortedset/textfile"
	"github.com/pkg/errors"
	xterm "golang.org/x/term"
)

// errQuit ends the read loop.
var errQuit = errors.New("quit")

// argTerm marks commands which take the rest of the line as a single term.
const argTerm = -1

type execFunc func(sh *shell, args []string) (sortedset.Value, error)

type command struct {
	usage string
	help  string
	arity []int // accepted numbers of arguments, or argTerm
	exec  execFunc
}

var commands = make(map[string]*command)

func registerCommand(name, usage, help string, exec execFunc, arity ...int) {
	commands[name] = &command{
		usage: usage,
		help:  help,
		arity: arity,
		exec:  exec,
	}
}

func init() {
	registerCommand("new", "new [CAP MAX]", "create a set and select it", execNew, 0, 2)
	registerCommand("empty", "empty [CAP MAX]", "create a set without buckets and select it", execEmpty, 0, 2)
	registerCommand("use", "use H", "select the set with handle H", execUse, 1)
	registerCommand("release", "release", "drop the selected set", execRelease, 0)
	registerCommand("add", "add TERM", "insert a value", execAdd, argTerm)
	registerCommand("remove", "remove TERM", "delete a value", execRemove, argTerm)
	registerCommand("find", "find TERM", "look up the index of a value", execFind, argTerm)
	registerCommand("at", "at N", "value at index N", execAt, 1)
	registerCommand("slice", "slice START AMOUNT", "up to AMOUNT values from index START", execSlice, 2)
	registerCommand("append", "append [TERM,...]", "bulk-load a bucket (no validation)", execAppend, argTerm)
	registerCommand("list", "list", "all values", execList, 0)
	registerCommand("size", "size", "number of values", execSize, 0)
	registerCommand("debug", "debug", "dump the internal structure", execDebug, 0)
	registerCommand("dot", "dot", "print the bucket layout in Graphviz DOT", execDot, 0)
	registerCommand("load", "load FILE", "bulk-load a set file and select it", execLoad, 1)
	registerCommand("save", "save FILE", "write the selected set to a set file", execSave, 1)
	registerCommand("help", "help", "this text", execHelp, 0)
	registerCommand("quit", "quit", "leave the shell", execQuit, 0)
}

// shell reads commands and prints replies. It operates on one selected set
// at a time.
type shell struct {
	reg      *bridge.Registry
	cfg      sortedset.Configuration
	capacity int
	current  bridge.Handle
	in       io.Reader
	out      io.Writer
	prompt   bool
	ok       *color.Color
	fail     *color.Color
}

func newShell(cfg sortedset.Configuration, capacity int, in io.Reader, out io.Writer) *shell {
	sh := &shell{
		reg:      bridge.NewRegistry(),
		cfg:      cfg,
		capacity: capacity,
		in:       in,
		out:      out,
		ok:       color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
	}
	if f, isFile := in.(*os.File); isFile && xterm.IsTerminal(int(f.Fd())) {
		sh.prompt = true
	}
	return sh
}

func (sh *shell) run() error {
	scanner := bufio.NewScanner(sh.in)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for {
		if sh.prompt {
			fmt.Fprint(sh.out, "sortedset> ")
		}
		if !scanner.Scan() {
			break
		}
		if err := sh.execute(scanner.Text()); err == errQuit {
			return nil
		}
	}
	return errors.Wrap(scanner.Err(), "reading commands")
}

// execute runs a single command line and prints its outcome.
//
// Precondition violations of a set are reported and the shell continues.
// Any other panic, including a corrupted set, is fatal.
func (sh *shell) execute(line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, sortedset.ErrNoBuckets) {
				sh.fail.Fprintf(sh.out, "%v\n", e)
				err = nil
				return
			}
			panic(r)
		}
	}()
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	name, rest, _ := strings.Cut(line, " ")
	gtrace.CommandTracer.Debugf("command %q", line)
	cmd, ok := commands[name]
	if !ok {
		sh.fail.Fprintf(sh.out, "unknown command %q, try 'help'\n", name)
		return nil
	}
	args, err := splitArgs(cmd, strings.TrimSpace(rest))
	if err != nil {
		sh.fail.Fprintf(sh.out, "%v, usage: %s\n", err, cmd.usage)
		return nil
	}
	reply, err := cmd.exec(sh, args)
	if err == errQuit {
		return err
	} else if err != nil {
		gtrace.CommandTracer.Infof("%s: %v", name, err)
		sh.fail.Fprintf(sh.out, "%v\n", err)
		return nil
	}
	if reply != nil {
		sh.print(reply)
	}
	return nil
}

func splitArgs(cmd *command, rest string) ([]string, error) {
	if slices.Contains(cmd.arity, argTerm) {
		if rest == "" {
			return nil, errors.New("missing term")
		}
		return []string{rest}, nil
	}
	args := strings.Fields(rest)
	if !slices.Contains(cmd.arity, len(args)) {
		return nil, errors.Errorf("wrong number of arguments (%d)", len(args))
	}
	return args, nil
}

func (sh *shell) print(reply sortedset.Value) {
	if bridge.IsError(reply) {
		sh.fail.Fprintln(sh.out, term.Format(reply))
		return
	}
	sh.ok.Fprintln(sh.out, term.Format(reply))
}

// --- Commands --------------------------------------------------------------

func execNew(sh *shell, args []string) (sortedset.Value, error) {
	return sh.create(args, sh.reg.New)
}

func execEmpty(sh *shell, args []string) (sortedset.Value, error) {
	return sh.create(args, sh.reg.Empty)
}

func (sh *shell) create(args []string, create func(int, int) sortedset.Value) (sortedset.Value, error) {
	capacity, maxBucketSize := sh.capacity, sh.cfg.MaxBucketSize
	if len(args) == 2 {
		n, err := integers(args...)
		if err != nil {
			return nil, err
		}
		capacity, maxBucketSize = n[0], n[1]
	}
	reply := create(capacity, maxBucketSize)
	if t, ok := reply.(sortedset.Tuple); ok && !bridge.IsError(reply) {
		sh.current = bridge.Handle(t[1].(sortedset.Integer))
	}
	return reply, nil
}

func execUse(sh *shell, args []string) (sortedset.Value, error) {
	h, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid handle %q", args[0])
	}
	reply := sh.reg.Size(bridge.Handle(h))
	if bridge.IsError(reply) {
		return reply, nil
	}
	sh.current = bridge.Handle(h)
	return bridge.AtomOK, nil
}

func execRelease(sh *shell, _ []string) (sortedset.Value, error) {
	return sh.reg.Release(sh.current), nil
}

func execAdd(sh *shell, args []string) (sortedset.Value, error) {
	v, err := term.Parse(args[0])
	if err != nil {
		return nil, err
	}
	return sh.reg.Add(sh.current, v), nil
}

func execRemove(sh *shell, args []string) (sortedset.Value, error) {
	v, err := term.Parse(args[0])
	if err != nil {
		return nil, err
	}
	return sh.reg.Remove(sh.current, v), nil
}

func execFind(sh *shell, args []string) (sortedset.Value, error) {
	v, err := term.Parse(args[0])
	if err != nil {
		return nil, err
	}
	return sh.reg.FindIndex(sh.current, v), nil
}

func execAt(sh *shell, args []string) (sortedset.Value, error) {
	n, err := integers(args...)
	if err != nil {
		return nil, err
	}
	return sh.reg.At(sh.current, n[0]), nil
}

func execSlice(sh *shell, args []string) (sortedset.Value, error) {
	n, err := integers(args...)
	if err != nil {
		return nil, err
	}
	return sh.reg.Slice(sh.current, n[0], n[1]), nil
}

func execAppend(sh *shell, args []string) (sortedset.Value, error) {
	v, err := term.Parse(args[0])
	if err != nil {
		return nil, err
	}
	return sh.reg.AppendBucket(sh.current, v), nil
}

func execList(sh *shell, _ []string) (sortedset.Value, error) {
	return sh.reg.ToList(sh.current), nil
}

func execSize(sh *shell, _ []string) (sortedset.Value, error) {
	return sh.reg.Size(sh.current), nil
}

func execDebug(sh *shell, _ []string) (sortedset.Value, error) {
	reply := sh.reg.Debug(sh.current)
	if bridge.IsError(reply) {
		return reply, nil
	}
	dump := reply.(sortedset.Tuple)[1].(sortedset.Bitstring)
	fmt.Fprint(sh.out, string(dump))
	return nil, nil
}

func execDot(sh *shell, _ []string) (sortedset.Value, error) {
	reply := sh.reg.With(sh.current, func(s *sortedset.Set) {
		sortedset.Set2Dot(s, sh.out)
	})
	if bridge.IsError(reply) {
		return reply, nil
	}
	return nil, nil
}

func execLoad(sh *shell, args []string) (sortedset.Value, error) {
	set, err := textfile.Load(context.Background(), args[0], sh.cfg, func(f textfile.Fragment) {
		gtrace.CommandTracer.Debugf("loaded %d values from line %d", len(f.Values), f.FirstLine)
	})
	if err != nil {
		return nil, err
	}
	sh.current = sh.reg.Register(set)
	return sortedset.Tuple{bridge.AtomOK, sortedset.Integer(sh.current)}, nil
}

func execSave(sh *shell, args []string) (sortedset.Value, error) {
	var err error
	reply := sh.reg.With(sh.current, func(s *sortedset.Set) {
		err = textfile.SaveFile(s, args[0])
	})
	return reply, err
}

func execHelp(sh *shell, _ []string) (sortedset.Value, error) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(sh.out, "  %-20s %s\n", commands[name].usage, commands[name].help)
	}
	return nil, nil
}

func execQuit(*shell, []string) (sortedset.Value, error) {
	return nil, errQuit
}

func integers(args ...string) ([]int, error) {
	n := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		n[i] = v
	}
	return n, nil
}
