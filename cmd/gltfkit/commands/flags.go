package commands

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/pointer"
	"github.com/gltfkit/gltfkit-go/pkg/sourcemap"
)

// newFlagSet returns a flag set that reports to env.Stderr instead of
// exiting.
func newFlagSet(env *Env, name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() {
		fmt.Fprint(env.Stderr, usage)
		if hasFlags(fs) {
			fmt.Fprintln(env.Stderr, "\nFlags:")
			fs.PrintDefaults()
		}
	}
	return fs
}

func hasFlags(fs *flag.FlagSet) bool {
	n := 0
	fs.VisitAll(func(*flag.Flag) { n++ })
	return n > 0
}

// requireArgs checks the positional argument count and prints usage when
// it is short.
func requireArgs(env *Env, fs *flag.FlagSet, n int, what string) bool {
	if fs.NArg() >= n {
		return true
	}
	fmt.Fprintf(env.Stderr, "Error: %s required\n", what)
	fs.Usage()
	return false
}

// replaceExt swaps the extension of path.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// resolveLocation finds the pointer at a location given either as a byte
// offset ("120") or a one-based "line:column".
func resolveLocation(m *sourcemap.Map, loc string) (string, bool, error) {
	if line, col, ok := strings.Cut(loc, ":"); ok {
		l, err1 := strconv.Atoi(line)
		c, err2 := strconv.Atoi(col)
		if err1 != nil || err2 != nil || l < 1 || c < 1 {
			return "", false, fmt.Errorf("invalid location %q (want offset or line:column)", loc)
		}
		ptr, found := m.PointerAt(l-1, c-1)
		return ptr, found, nil
	}
	off, err := strconv.Atoi(loc)
	if err != nil || off < 0 {
		return "", false, fmt.Errorf("invalid location %q (want offset or line:column)", loc)
	}
	ptr, found := m.PointerFor(off)
	return ptr, found, nil
}

// accessorTarget resolves an accessor given by index or by any pointer
// inside an accessor object.
func accessorTarget(doc *gltf.Document, target string) (int, error) {
	if n, err := strconv.Atoi(target); err == nil {
		if n < 0 || n >= len(doc.Accessors) {
			return 0, fmt.Errorf("accessor %d of %d: %w", n, len(doc.Accessors), gltf.ErrIndexOutOfRange)
		}
		return n, nil
	}
	segs, err := pointer.Parse(target)
	if err != nil {
		return 0, err
	}
	if len(segs) < 2 || segs[0] != "accessors" {
		return 0, fmt.Errorf("%q does not address an accessor", target)
	}
	n, err := pointer.Index(segs[1])
	if err != nil {
		return 0, err
	}
	if n >= len(doc.Accessors) {
		return 0, fmt.Errorf("accessor %d of %d: %w", n, len(doc.Accessors), gltf.ErrIndexOutOfRange)
	}
	return n, nil
}

// describeEntry renders an index entry as one-based ranges.
func describeEntry(e sourcemap.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", displayPointer(e.Pointer))
	if e.HasKey {
		fmt.Fprintf(&b, "  key:   %s-%s (bytes %d-%d)\n", e.KeyStart, e.KeyEnd, e.KeyStart.Offset, e.KeyEnd.Offset)
	}
	fmt.Fprintf(&b, "  value: %s-%s (bytes %d-%d)\n", e.ValueStart, e.ValueEnd, e.ValueStart.Offset, e.ValueEnd.Offset)
	return b.String()
}

func displayPointer(ptr string) string {
	if ptr == pointer.Root {
		return "(root)"
	}
	return ptr
}
