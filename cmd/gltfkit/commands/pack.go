package commands

import (
	"fmt"
	"os"

	"github.com/gltfkit/gltfkit-go/pkg/glb"
)

const packUsage = `gltfkit pack - Pack a document into a binary container

Usage:
  gltfkit pack [flags] <file.gltf>
`

// RunPack executes the pack command.
func RunPack(env *Env, args []string) int {
	fs := newFlagSet(env, "pack", packUsage)
	output := fs.String("o", "", "Output file (default: input with .glb extension)")
	embedImages := fs.Bool("embed-images", env.Config.Pack.EmbedImages, "Move images into the payload")
	embedShaders := fs.Bool("embed-shaders", env.Config.Pack.EmbedShaders, "Move shaders into the payload")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "document path") {
		return exitCommandError
	}

	in := fs.Arg(0)
	dest := *output
	if dest == "" {
		dest = replaceExt(in, ".glb")
	}
	if dest == in {
		return env.errorf("output would overwrite %s, use -o", in)
	}

	l, err := env.Open(in)
	if err != nil {
		return env.errorf("%v", err)
	}
	opts := env.Config.PackOptions()
	opts.EmbedImages = *embedImages
	opts.EmbedShaders = *embedShaders
	opts.Payload = l.Payload

	data, err := env.codec().Pack(l.Document, l.Path, opts)
	if err != nil {
		return env.errorf("%v", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return env.errorf("%v", err)
	}

	env.Logger.Info("packed", "input", in, "output", dest, "size", len(data))
	fmt.Fprintf(env.Stdout, "Packed %s -> %s (%d bytes)\n", in, dest, len(data))
	return exitSuccess
}

const unpackUsage = `gltfkit unpack - Write a binary container as a text document and .bin file

Usage:
  gltfkit unpack [flags] <file.glb>
`

// RunUnpack executes the unpack command.
func RunUnpack(env *Env, args []string) int {
	fs := newFlagSet(env, "unpack", unpackUsage)
	output := fs.String("o", "", "Output document (default: input with .gltf extension)")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "container path") {
		return exitCommandError
	}

	in := fs.Arg(0)
	dest := *output
	if dest == "" {
		dest = replaceExt(in, ".gltf")
	}
	if dest == in {
		return env.errorf("output would overwrite %s, use -o", in)
	}

	l, err := env.Open(in)
	if err != nil {
		return env.errorf("%v", err)
	}
	if !l.Binary {
		return env.errorf("%s is not a binary container", in)
	}

	u := &glb.Unpacked{Document: l.Document, Payload: l.Payload, Extra: l.Extra}
	if err := glb.Unbundle(u, dest); err != nil {
		return env.errorf("%v", err)
	}
	if len(l.Extra) > 0 {
		env.Logger.Warn("dropped unknown chunks", "count", len(l.Extra))
	}

	env.Logger.Info("unpacked", "input", in, "output", dest)
	fmt.Fprintf(env.Stdout, "Unpacked %s -> %s\n", in, dest)
	return exitSuccess
}
