package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gltfkit/gltfkit-go/pkg/watch"
)

const watchUsage = `gltfkit watch - Re-index a document whenever it changes

Usage:
  gltfkit watch [flags] <file>
`

// RunWatch executes the watch command. It returns when env.Context is done.
func RunWatch(env *Env, args []string) int {
	fs := newFlagSet(env, "watch", watchUsage)
	debounce := fs.Duration("debounce", watch.DefaultDebounce, "Quiet period before reloading")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "document path") {
		return exitCommandError
	}

	w, err := watch.New(fs.Arg(0), watch.Config{Debounce: *debounce, Logger: env.Logger, Trace: env.Trace})
	if err != nil {
		return env.errorf("%v", err)
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(env.Context) }()

	for u := range w.Updates() {
		printUpdate(env, u)
	}
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return env.errorf("%v", err)
	}
	return exitSuccess
}

func printUpdate(env *Env, u watch.Update) {
	if u.Err != nil {
		fmt.Fprintf(env.Stdout, "[%d] error: %v\n", u.Generation, u.Err)
		return
	}
	doc := u.Document
	fmt.Fprintf(env.Stdout, "[%d] %d pointers, %d nodes, %d accessors (%s)\n",
		u.Generation, doc.Source.Map.Len(), len(doc.Nodes), len(doc.Accessors), u.Took.Round(time.Microsecond))
}
