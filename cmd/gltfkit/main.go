// Command gltfkit packs, unpacks and inspects glTF documents.
//
// Usage:
//
//	gltfkit [global flags] <command> [flags] <args>
//
// Commands:
//
//	pack       Pack a document into a binary container
//	unpack     Write a binary container as .gltf + .bin
//	info       Summarize a document
//	validate   Check a document against the validation rules
//	pointer    Find the JSON pointer at a text location
//	range      Show the text range of a JSON pointer
//	accessor   Decode and print an accessor
//	attribute  Decode a compressed mesh attribute
//	preview    Write a preview bundle for rendering engines
//	shell      Interactive document inspector
//	watch      Re-index a document whenever it changes
//	trace      Inspect codec trace files
//
// Global flags:
//
//	-config string      Configuration file (default ./gltfkit.yaml if present)
//	-log-level string   Log level: debug, info, warn, error
//	-log-format string  Log format: text, json
//	-trace string       Write codec trace events to this file
//
// Examples:
//
//	# Pack with images left external
//	gltfkit pack -embed-images=false -o scene.glb scene.gltf
//
//	# Which value is at line 12, column 7?
//	gltfkit pointer scene.gltf 12:7
//
//	# Decode accessor 3 with 5 decimals and trace everything
//	gltfkit -trace run.glog accessor -precision 5 scene.glb 3
//	gltfkit trace view run.glog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gltfkit/gltfkit-go/cmd/gltfkit/commands"
	"github.com/gltfkit/gltfkit-go/pkg/version"
)

const usage = `gltfkit - glTF document toolkit

Usage:
  gltfkit [global flags] <command> [flags] <args>

Commands:
  pack       Pack a document into a binary container
  unpack     Write a binary container as .gltf + .bin
  info       Summarize a document
  validate   Check a document against the validation rules
  pointer    Find the JSON pointer at a text location
  range      Show the text range of a JSON pointer
  accessor   Decode and print an accessor
  attribute  Decode a compressed mesh attribute
  preview    Write a preview bundle for rendering engines
  shell      Interactive document inspector
  watch      Re-index a document whenever it changes
  trace      Inspect codec trace files
  version    Show version information

Use "gltfkit <command> -help" for more information about a command.
`

type runFunc func(*commands.Env, []string) int

var commandTable = map[string]runFunc{
	"pack":      commands.RunPack,
	"unpack":    commands.RunUnpack,
	"info":      commands.RunInfo,
	"validate":  commands.RunValidate,
	"pointer":   commands.RunPointer,
	"range":     commands.RunRange,
	"accessor":  commands.RunAccessor,
	"attribute": commands.RunAttribute,
	"preview":   commands.RunPreview,
	"shell":     commands.RunShell,
	"watch":     commands.RunWatch,
	"trace":     commands.RunTrace,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("gltfkit", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", "", "Configuration file")
	logLevel := global.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := global.String("log-format", "", "Log format: text, json")
	tracePath := global.String("trace", "", "Write codec trace events to this file")
	if err := global.Parse(args); err != nil {
		return 1
	}
	if global.NArg() < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd, cmdArgs := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "gltfkit %s\n", version.Tool)
		return 0
	}
	runCmd, ok := commandTable[cmd]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return 1
	}

	path, optional := *configPath, false
	if path == "" {
		path, optional = commands.DefaultConfigPath, true
	}
	cfg, err := commands.LoadConfig(path, optional)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *tracePath != "" {
		cfg.Trace = *tracePath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	env, err := commands.NewEnv(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	env.Context = ctx

	return runCmd(env, cmdArgs)
}
