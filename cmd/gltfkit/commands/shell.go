package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/compressed"
	"github.com/gltfkit/gltfkit-go/pkg/compressed/blockcodec"
	"github.com/gltfkit/gltfkit-go/pkg/persistence"
	"github.com/gltfkit/gltfkit-go/pkg/sourcemap"
)

const shellUsage = `gltfkit shell - Interactive document inspector

Usage:
  gltfkit shell [flags] [file]

With a state file the shell restores the last document and its marks on
start and saves them on exit.
`

// Shell is an interactive inspector over one loaded document.
type Shell struct {
	env    *Env
	out    io.Writer
	rl     *readline.Instance
	doc    *Loaded
	handle *compressed.Handle
	marks  map[string]sourcemap.Ref
	store  *persistence.ShellStateStore
}

func newShell(env *Env, out io.Writer) *Shell {
	return &Shell{
		env:    env,
		out:    out,
		handle: compressed.Init(env.Context, blockcodec.Load),
		marks:  make(map[string]sourcemap.Ref),
	}
}

// NewShell creates a shell reading commands from the terminal.
func NewShell(env *Env) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gltf> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("load"), readline.PcItem("reload"), readline.PcItem("info"),
			readline.PcItem("at"), readline.PcItem("range"), readline.PcItem("source"),
			readline.PcItem("children"), readline.PcItem("accessor"), readline.PcItem("attribute"),
			readline.PcItem("joints"), readline.PcItem("mark"), readline.PcItem("marks"),
			readline.PcItem("help"), readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(env, rl.Stdout())
	s.rl = rl
	return s, nil
}

// RunShell executes the shell command.
func RunShell(env *Env, args []string) int {
	fs := newFlagSet(env, "shell", shellUsage)
	state := fs.String("state", env.Config.Shell.State, "State file for the last document and marks")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	s, err := NewShell(env)
	if err != nil {
		return env.errorf("%v", err)
	}
	if *state != "" {
		if err := s.Restore(persistence.NewShellStateStore(*state)); err != nil {
			env.Logger.Warn("ignoring shell state", "path", *state, "error", err)
		}
	}
	if fs.NArg() > 0 {
		s.Exec("load " + fs.Arg(0))
	}
	ctx, cancel := context.WithCancel(env.Context)
	defer cancel()
	s.Run(ctx, cancel)
	if err := s.Save(); err != nil {
		return env.errorf("saving shell state: %v", err)
	}
	return exitSuccess
}

// Restore loads the last document and marks from store and keeps store
// for Save. A missing state file is not an error.
func (s *Shell) Restore(store *persistence.ShellStateStore) error {
	s.store = store
	state, err := store.Load()
	if err != nil || state == nil {
		return err
	}
	for _, m := range state.Marks {
		fp, err := m.Digest()
		if err != nil {
			return err
		}
		s.marks[m.Pointer] = sourcemap.Ref{Pointer: m.Pointer, Fingerprint: fp}
	}
	if state.Document != "" {
		s.cmdLoad([]string{state.Document})
	}
	return nil
}

// Save writes the current document and marks to the restored store. It
// does nothing when no store was restored.
func (s *Shell) Save() error {
	if s.store == nil {
		return nil
	}
	state := &persistence.ShellState{}
	if s.doc != nil {
		state.Document = s.doc.Path
	}
	for _, p := range s.markPointers() {
		ref := s.marks[p]
		state.Marks = append(state.Marks, persistence.NewMark(ref.Pointer, ref.Fingerprint))
	}
	return s.store.Save(state)
}

func (s *Shell) markPointers() []string {
	ptrs := make([]string, 0, len(s.marks))
	for p := range s.marks {
		ptrs = append(ptrs, p)
	}
	sort.Strings(ptrs)
	return ptrs
}

// Run reads and executes commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
		if s.Exec(line) {
			cancel()
			return
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "load", "l":
		s.cmdLoad(args)
	case "reload":
		s.cmdReload()
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		if s.doc == nil {
			fmt.Fprintln(s.out, "No document loaded (use 'load <file>')")
			return false
		}
		s.execDocument(cmd, args)
	}
	return false
}

func (s *Shell) execDocument(cmd string, args []string) {
	switch cmd {
	case "info":
		printInfo(s.out, s.env.Config.Formatter(), s.doc)
	case "at":
		s.cmdAt(args)
	case "range", "r":
		s.cmdRange(args)
	case "source":
		s.cmdSource(args)
	case "children", "ls":
		s.cmdChildren(args)
	case "accessor", "a":
		s.cmdAccessor(args)
	case "attribute":
		s.cmdAttribute(args)
	case "joints":
		s.cmdJoints(args)
	case "mark":
		s.cmdMark(args)
	case "marks":
		s.cmdMarks()
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
gltfkit shell commands:
  Documents:
    load <file>          - Load a text document or binary container
    reload               - Re-read the current file
    info                 - Summarize the document

  Source index:
    at <offset|line:col> - Pointer at a text location
    range <pointer>      - Text range of a pointer
    source <pointer>     - Source text of a value
    children [pointer]   - Pointers directly below
    mark <pointer>       - Remember a pointer against the current text
    marks                - Check remembered pointers after a reload

  Data:
    accessor <i|pointer> - Decode an accessor
    attribute <pointer>  - Decode a compressed attribute
    joints <skin>        - Joint hierarchy of a skin

  General:
    help                 - Show this help
    quit                 - Exit`)
}

func (s *Shell) cmdLoad(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: load <file>")
		return
	}
	l, err := s.env.Open(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.doc = l
	fmt.Fprintf(s.out, "Loaded %s: %d pointers\n", l.Path, l.Document.Source.Map.Len())
}

func (s *Shell) cmdReload() {
	if s.doc == nil {
		fmt.Fprintln(s.out, "No document loaded")
		return
	}
	s.cmdLoad([]string{s.doc.Path})
}

func (s *Shell) cmdAt(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: at <offset|line:col>")
		return
	}
	m := s.doc.Document.Source.Map
	ptr, found, err := resolveLocation(m, args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if !found {
		fmt.Fprintf(s.out, "No value at %s\n", args[0])
		return
	}
	entry, _ := m.RangeFor(ptr)
	fmt.Fprint(s.out, describeEntry(entry))
}

// pointerArg returns the pointer argument, "" (the root) when absent.
func pointerArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (s *Shell) cmdRange(args []string) {
	ptr := pointerArg(args)
	entry, ok := s.doc.Document.Source.Map.RangeFor(ptr)
	if !ok {
		fmt.Fprintf(s.out, "Pointer %s not found\n", displayPointer(ptr))
		return
	}
	fmt.Fprint(s.out, describeEntry(entry))
}

func (s *Shell) cmdSource(args []string) {
	ptr := pointerArg(args)
	text, ok := s.doc.Document.Source.Source(ptr)
	if !ok {
		fmt.Fprintf(s.out, "Pointer %s not found\n", displayPointer(ptr))
		return
	}
	fmt.Fprintf(s.out, "%s\n", text)
}

func (s *Shell) cmdChildren(args []string) {
	ptr := pointerArg(args)
	if _, ok := s.doc.Document.Source.Map.RangeFor(ptr); !ok {
		fmt.Fprintf(s.out, "Pointer %s not found\n", displayPointer(ptr))
		return
	}
	for _, e := range s.doc.Document.Source.Map.Children(ptr) {
		fmt.Fprintf(s.out, "  %s\n", e.Pointer)
	}
}

func (s *Shell) cmdAccessor(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: accessor <index|pointer>")
		return
	}
	idx, err := accessorTarget(s.doc.Document, args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	session := s.env.Session(s.doc)
	elems, err := accessor.NewReader(s.doc.Document, session, session.Trace()).Read(idx)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	f := s.env.Config.Formatter()
	acc := s.doc.Document.Accessors[idx]
	fmt.Fprintln(s.out, f.FormatSummary(idx, acc))
	fmt.Fprint(s.out, f.FormatElements(elems, acc.Type))
}

func (s *Shell) cmdAttribute(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: attribute <pointer>")
		return
	}
	attr, err := compressed.DecodeAttribute(s.env.Context, s.handle, s.doc.Document, args[0], s.env.Session(s.doc))
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, attr.Format(s.env.Config.Formatter()))
}

func (s *Shell) cmdJoints(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: joints <skin>")
		return
	}
	skin, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid skin index: %s\n", args[0])
		return
	}
	joints, err := s.doc.Document.SkinJoints(skin)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	f := s.env.Config.Formatter()
	for _, j := range joints {
		label := fmt.Sprintf("node %d", j.Node)
		if name := s.doc.Document.Nodes[j.Node].Name; name != "" {
			label = fmt.Sprintf("%s (node %d)", name, j.Node)
		}
		fmt.Fprintln(s.out, f.Indent(j.Depth+1, label))
	}
}

func (s *Shell) cmdMark(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: mark <pointer>")
		return
	}
	ref, ok := s.doc.Document.Source.Map.Capture(args[0])
	if !ok {
		fmt.Fprintf(s.out, "Pointer %s not found\n", args[0])
		return
	}
	s.marks[args[0]] = ref
	fmt.Fprintf(s.out, "Marked %s\n", args[0])
}

func (s *Shell) cmdMarks() {
	if len(s.marks) == 0 {
		fmt.Fprintln(s.out, "No marks")
		return
	}
	for _, p := range s.markPointers() {
		if e, ok := s.doc.Document.Source.Map.Resolve(s.marks[p]); ok {
			fmt.Fprintf(s.out, "  %s at %s\n", p, e.ValueStart)
		} else {
			fmt.Fprintf(s.out, "  %s stale (text changed)\n", p)
		}
	}
}
