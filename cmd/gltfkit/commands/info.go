package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
)

const infoUsage = `gltfkit info - Summarize a document

Usage:
  gltfkit info [flags] <file>
`

// RunInfo executes the info command.
func RunInfo(env *Env, args []string) int {
	fs := newFlagSet(env, "info", infoUsage)
	check := fs.Bool("check", false, "Decode every accessor and compare against declared min/max")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "document path") {
		return exitCommandError
	}

	l, err := env.Open(fs.Arg(0))
	if err != nil {
		return env.errorf("%v", err)
	}

	code := exitSuccess
	if !printInfo(env.Stdout, env.Config.Formatter(), l) {
		code = exitInvalid
	}
	if *check {
		if !checkAccessors(env, l) {
			code = exitInvalid
		}
	}
	return code
}

// printInfo writes the summary and reports whether the document is usable.
func printInfo(w io.Writer, f *accessor.Formatter, l *Loaded) bool {
	doc := l.Document
	ok := true

	kind := "text"
	if l.Binary {
		kind = "binary container"
	}
	fmt.Fprintf(w, "File:    %s (%s)\n", l.Path, kind)
	fmt.Fprintf(w, "Asset:   %s", doc.Asset.Version)
	if doc.Asset.MinVersion != "" {
		fmt.Fprintf(w, " (min %s)", doc.Asset.MinVersion)
	}
	if doc.Asset.Generator != "" {
		fmt.Fprintf(w, " by %s", doc.Asset.Generator)
	}
	fmt.Fprintln(w)
	if err := doc.CheckVersion(); err != nil {
		fmt.Fprintf(w, "Warning: %v\n", err)
		ok = false
	}
	if doc.Source != nil {
		fmt.Fprintf(w, "Index:   %d pointers\n", doc.Source.Map.Len())
	}
	if l.Binary {
		fmt.Fprintf(w, "Payload: %d bytes, %d unknown chunks\n", len(l.Payload), len(l.Extra))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Scenes: %d  Nodes: %d  Meshes: %d  Skins: %d  Animations: %d\n",
		len(doc.Scenes), len(doc.Nodes), len(doc.Meshes), len(doc.Skins), len(doc.Animations))
	fmt.Fprintf(w, "Accessors: %d  BufferViews: %d  Buffers: %d  Images: %d\n",
		len(doc.Accessors), len(doc.BufferViews), len(doc.Buffers), len(doc.Images))
	if len(doc.ExtensionsUsed) > 0 {
		fmt.Fprintf(w, "Extensions: %s\n", strings.Join(doc.ExtensionsUsed, ", "))
	}

	for i := range doc.Scenes {
		fmt.Fprintf(w, "\nScene %d:\n", i)
		if err := printScene(w, f, doc, i); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			ok = false
		}
	}

	if len(doc.Accessors) > 0 {
		fmt.Fprintln(w, "\nAccessors:")
		for i, acc := range doc.Accessors {
			fmt.Fprintln(w, f.Indent(1, f.FormatSummary(i, acc)))
		}
	}
	return ok
}

func printScene(w io.Writer, f *accessor.Formatter, doc *gltf.Document, scene int) error {
	roots, err := doc.SceneRoots(scene)
	if err != nil {
		return err
	}
	return doc.Walk(roots, func(node, _, depth int) error {
		n := doc.Nodes[node]
		label := fmt.Sprintf("node %d", node)
		if n.Name != "" {
			label = fmt.Sprintf("%s (node %d)", n.Name, node)
		}
		if n.Mesh != nil {
			label += fmt.Sprintf(" mesh %d", *n.Mesh)
		}
		if n.Skin != nil {
			label += fmt.Sprintf(" skin %d", *n.Skin)
		}
		fmt.Fprintln(w, f.Indent(depth+1, label))
		return nil
	})
}

// checkAccessors decodes every accessor and reports bounds mismatches.
func checkAccessors(env *Env, l *Loaded) bool {
	session := env.Session(l)
	r := accessor.NewReader(l.Document, session, session.Trace())

	failed := 0
	for i, acc := range l.Document.Accessors {
		elems, err := r.Read(i)
		if err == nil {
			err = accessor.CheckBounds(acc, elems)
		}
		if err != nil {
			fmt.Fprintf(env.Stdout, "accessor %d: %v\n", i, err)
			failed++
		}
	}
	if failed == 0 {
		fmt.Fprintf(env.Stdout, "\nAll %d accessors decoded within bounds\n", len(l.Document.Accessors))
		return true
	}
	fmt.Fprintf(env.Stdout, "\n%d of %d accessors failed\n", failed, len(l.Document.Accessors))
	return false
}
