package commands

import (
	"fmt"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/compressed"
	"github.com/gltfkit/gltfkit-go/pkg/compressed/blockcodec"
)

const accessorUsage = `gltfkit accessor - Decode and print an accessor

Usage:
  gltfkit accessor [flags] <file> <index | pointer>

The accessor may be given by index or by any pointer inside it,
e.g. /accessors/2/count.
`

// RunAccessor executes the accessor command.
func RunAccessor(env *Env, args []string) int {
	fs := newFlagSet(env, "accessor", accessorUsage)
	precision := fs.Int("precision", env.Config.Format.Precision, "Decimals printed per value")
	maxElems := fs.Int("max", env.Config.Format.MaxElements, "Elements printed before eliding (0 prints all)")
	bounds := fs.Bool("bounds", false, "Print decoded min/max and compare against declared bounds")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 2, "document path and accessor") {
		return exitCommandError
	}

	l, err := env.Open(fs.Arg(0))
	if err != nil {
		return env.errorf("%v", err)
	}
	idx, err := accessorTarget(l.Document, fs.Arg(1))
	if err != nil {
		return env.errorf("%v", err)
	}

	session := env.Session(l)
	elems, err := accessor.NewReader(l.Document, session, session.Trace()).Read(idx)
	if err != nil {
		return env.errorf("%v", err)
	}

	f := env.Config.Formatter()
	f.Precision = *precision
	f.MaxElements = *maxElems
	acc := l.Document.Accessors[idx]
	fmt.Fprintln(env.Stdout, f.FormatSummary(idx, acc))
	fmt.Fprint(env.Stdout, f.FormatElements(elems, acc.Type))

	if *bounds {
		lo, hi := accessor.Bounds(elems)
		fmt.Fprintf(env.Stdout, "min: (%s)\nmax: (%s)\n", joinValues(f, lo), joinValues(f, hi))
		if err := accessor.CheckBounds(acc, elems); err != nil {
			fmt.Fprintf(env.Stdout, "Warning: %v\n", err)
			return exitInvalid
		}
	}
	return exitSuccess
}

func joinValues(f *accessor.Formatter, vals []float64) string {
	s := ""
	for i, v := range vals {
		if i > 0 {
			s += ", "
		}
		s += f.FormatValue(v)
	}
	return s
}

const attributeUsage = `gltfkit attribute - Decode a compressed mesh attribute

Usage:
  gltfkit attribute [flags] <file> <pointer>

The pointer may address the primitive, one of its attributes or the
compression extension block. Without an attribute POSITION is decoded.
`

// RunAttribute executes the attribute command.
func RunAttribute(env *Env, args []string) int {
	fs := newFlagSet(env, "attribute", attributeUsage)
	precision := fs.Int("precision", env.Config.Format.Precision, "Decimals printed per value")
	maxElems := fs.Int("max", env.Config.Format.MaxElements, "Elements printed before eliding (0 prints all)")
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

	h := compressed.Init(env.Context, blockcodec.Load)
	attr, err := compressed.DecodeAttribute(env.Context, h, l.Document, fs.Arg(1), env.Session(l))
	if err != nil {
		return env.errorf("%v", err)
	}

	f := env.Config.Formatter()
	f.Precision = *precision
	f.MaxElements = *maxElems
	fmt.Fprint(env.Stdout, attr.Format(f))
	return exitSuccess
}
