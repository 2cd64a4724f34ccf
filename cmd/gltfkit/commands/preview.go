package commands

import (
	"fmt"
	"os"

	"github.com/gltfkit/gltfkit-go/pkg/preview"
)

const previewUsage = `gltfkit preview - Write a preview bundle for rendering engines

Usage:
  gltfkit preview [flags] <file>
`

// RunPreview executes the preview command.
func RunPreview(env *Env, args []string) int {
	fs := newFlagSet(env, "preview", previewUsage)
	output := fs.String("o", "", "Output file (default: input with .preview extension)")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "document path") {
		return exitCommandError
	}

	in := fs.Arg(0)
	dest := *output
	if dest == "" {
		dest = replaceExt(in, ".preview")
	}

	l, err := env.Open(in)
	if err != nil {
		return env.errorf("%v", err)
	}
	b, err := preview.Build(l.Document, env.Session(l))
	if err != nil {
		return env.errorf("%v", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return env.errorf("%v", err)
	}
	if err := preview.Write(f, b); err != nil {
		f.Close()
		return env.errorf("%v", err)
	}
	if err := f.Close(); err != nil {
		return env.errorf("%v", err)
	}

	fmt.Fprintf(env.Stdout, "Wrote %s: %d buffers, %d images, %d bytes of content\n",
		dest, len(b.Buffers), len(b.Images), b.Size())
	return exitSuccess
}
