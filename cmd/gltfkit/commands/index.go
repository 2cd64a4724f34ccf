package commands

import (
	"fmt"
)

const pointerUsage = `gltfkit pointer - Find the JSON pointer at a text location

Usage:
  gltfkit pointer <file> <offset | line:column>

Lines and columns are one-based, offsets zero-based bytes.
`

// RunPointer executes the pointer command.
func RunPointer(env *Env, args []string) int {
	fs := newFlagSet(env, "pointer", pointerUsage)
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 2, "document path and location") {
		return exitCommandError
	}

	l, err := env.Open(fs.Arg(0))
	if err != nil {
		return env.errorf("%v", err)
	}
	m := l.Document.Source.Map
	ptr, found, err := resolveLocation(m, fs.Arg(1))
	if err != nil {
		return env.errorf("%v", err)
	}
	if !found {
		fmt.Fprintf(env.Stdout, "No value at %s\n", fs.Arg(1))
		return exitInvalid
	}
	entry, _ := m.RangeFor(ptr)
	fmt.Fprint(env.Stdout, describeEntry(entry))
	return exitSuccess
}

const rangeUsage = `gltfkit range - Show the text range of a JSON pointer

Usage:
  gltfkit range [flags] <file> <pointer>
`

// RunRange executes the range command.
func RunRange(env *Env, args []string) int {
	fs := newFlagSet(env, "range", rangeUsage)
	source := fs.Bool("source", false, "Print the value's source text")
	children := fs.Bool("children", false, "List the pointers directly below")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 2, "document path and pointer") {
		return exitCommandError
	}

	l, err := env.Open(fs.Arg(0))
	if err != nil {
		return env.errorf("%v", err)
	}
	src := l.Document.Source
	ptr := fs.Arg(1)
	entry, ok := src.Map.RangeFor(ptr)
	if !ok {
		fmt.Fprintf(env.Stdout, "Pointer %s not found\n", displayPointer(ptr))
		return exitInvalid
	}
	fmt.Fprint(env.Stdout, describeEntry(entry))

	if *source {
		text, _ := src.Source(ptr)
		fmt.Fprintf(env.Stdout, "\n%s\n", text)
	}
	if *children {
		for _, c := range src.Map.Children(ptr) {
			fmt.Fprintf(env.Stdout, "  %s\n", c.Pointer)
		}
	}
	return exitSuccess
}
