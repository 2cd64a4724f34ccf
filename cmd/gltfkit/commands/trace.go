package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gltfkit/gltfkit-go/pkg/log"
)

const traceUsage = `gltfkit trace - Inspect codec trace files

Usage:
  gltfkit trace <view|stats|export|filter> [flags] <file.glog>
`

// RunTrace dispatches the trace subcommands.
func RunTrace(env *Env, args []string) int {
	if len(args) < 1 {
		fmt.Fprint(env.Stderr, traceUsage)
		return exitCommandError
	}
	switch args[0] {
	case "view":
		return runTraceView(env, args[1:])
	case "stats":
		return runTraceStats(env, args[1:])
	case "export":
		return runTraceExport(env, args[1:])
	case "filter":
		return runTraceFilter(env, args[1:])
	default:
		fmt.Fprintf(env.Stderr, "Unknown trace command: %s\n", args[0])
		fmt.Fprint(env.Stderr, traceUsage)
		return exitCommandError
	}
}

// FilterOptions holds the textual filter flags shared by view and filter.
type FilterOptions struct {
	Session   string
	Document  string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string
}

func (o *FilterOptions) register(fs interface {
	StringVar(p *string, name, value, usage string)
}) {
	fs.StringVar(&o.Session, "session", "", "Filter by session ID")
	fs.StringVar(&o.Document, "document", "", "Filter by document path")
	fs.StringVar(&o.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&o.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&o.Layer, "layer", "", "Filter by layer (container, resource, accessor, index, service)")
	fs.StringVar(&o.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&o.Category, "category", "", "Filter by category (chunk, resource, decode, index, error)")
}

// Filter converts the options into a trace filter.
func (o FilterOptions) Filter() (log.Filter, error) {
	filter := log.Filter{SessionID: o.Session, Document: o.Document}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Layer != "" {
		l, err := parseLayer(o.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if o.Direction != "" {
		d, err := parseDirection(o.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}
	if o.Category != "" {
		c, err := parseCategory(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "container":
		return log.LayerContainer, nil
	case "resource":
		return log.LayerResource, nil
	case "accessor":
		return log.LayerAccessor, nil
	case "index":
		return log.LayerIndex, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be container, resource, accessor, index, or service)", s)
	}
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "chunk":
		return log.CategoryChunk, nil
	case "resource":
		return log.CategoryResource, nil
	case "decode":
		return log.CategoryDecode, nil
	case "index":
		return log.CategoryIndex, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be chunk, resource, decode, index, or error)", s)
	}
}

// eachEvent calls fn for every event of path that matches filter.
func eachEvent(path string, filter log.Filter, fn func(log.Event) error) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

func runTraceView(env *Env, args []string) int {
	fs := newFlagSet(env, "view", "gltfkit trace view - View trace file in human-readable format\n\nUsage:\n  gltfkit trace view [flags] <file.glog>\n")
	var opts FilterOptions
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "trace file path") {
		return exitCommandError
	}
	filter, err := opts.Filter()
	if err != nil {
		return env.errorf("%v", err)
	}
	err = eachEvent(fs.Arg(0), filter, func(e log.Event) error {
		formatEvent(env.Stdout, e)
		return nil
	})
	if err != nil {
		return env.errorf("%v", err)
	}
	return exitSuccess
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s\n",
		ts, shortenID(event.SessionID), event.Direction, event.Layer, event.Category)

	if event.Document != "" {
		fmt.Fprintf(w, "  Document: %s\n", event.Document)
	}
	switch {
	case event.Chunk != nil:
		c := event.Chunk
		fmt.Fprintf(w, "  Chunk: %s at %d, %d bytes", c.Tag, c.Offset, c.Length)
		if !c.Known {
			fmt.Fprint(w, " (unknown, preserved)")
		}
		fmt.Fprintln(w)
	case event.Resource != nil:
		r := event.Resource
		fmt.Fprintf(w, "  Resource: %s #%d, %d bytes", r.Kind, r.Index, r.Size)
		if r.Cached {
			fmt.Fprint(w, " (cached)")
		}
		fmt.Fprintln(w)
		if r.Path != "" {
			fmt.Fprintf(w, "  Path: %s\n", r.Path)
		}
	case event.Decode != nil:
		d := event.Decode
		fmt.Fprintf(w, "  Decode: accessor %d, %d elements x %d components", d.Accessor, d.Count, d.Components)
		if d.Sparse {
			fmt.Fprint(w, " (sparse)")
		}
		fmt.Fprintln(w)
		if d.Pointer != "" {
			fmt.Fprintf(w, "  Pointer: %s\n", d.Pointer)
		}
	case event.Index != nil:
		fmt.Fprintf(w, "  Index: %d pointers over %d bytes\n", event.Index.Entries, event.Index.Size)
	case event.Error != nil:
		fmt.Fprintf(w, "  Layer: %s\n", event.Error.Layer)
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}
	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Sessions          map[string]int
	BytesResolved     int
	ElementsDecoded   int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// CollectStats reads path and aggregates its events.
func CollectStats(path string) (*Stats, error) {
	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Sessions:          make(map[string]int),
	}
	err := eachEvent(path, log.Filter{}, func(event log.Event) error {
		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDirection[event.Direction]++
		stats.Sessions[event.SessionID]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}
		if event.Resource != nil && !event.Resource.Cached {
			stats.BytesResolved += event.Resource.Size
		}
		if event.Decode != nil {
			stats.ElementsDecoded += event.Decode.Count
		}
		if event.Error != nil {
			stats.Errors++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func runTraceStats(env *Env, args []string) int {
	fs := newFlagSet(env, "stats", "gltfkit trace stats - Show statistics about a trace file\n\nUsage:\n  gltfkit trace stats <file.glog>\n")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "trace file path") {
		return exitCommandError
	}
	stats, err := CollectStats(fs.Arg(0))
	if err != nil {
		return env.errorf("%v", err)
	}
	printStats(env.Stdout, stats)
	return exitSuccess
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Codec Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerContainer, log.LayerResource, log.LayerAccessor, log.LayerIndex, log.LayerService} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryChunk, log.CategoryResource, log.CategoryDecode, log.CategoryIndex, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Bytes Resolved:   %d\n", stats.BytesResolved)
	fmt.Fprintf(w, "Elements Decoded: %d\n", stats.ElementsDecoded)
	if stats.Errors > 0 {
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

func runTraceExport(env *Env, args []string) int {
	fs := newFlagSet(env, "export", "gltfkit trace export - Export a trace file to JSON lines or CSV\n\nUsage:\n  gltfkit trace export [flags] <file.glog>\n")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "trace file path") {
		return exitCommandError
	}
	if err := RunExport(fs.Arg(0), *format, *output, env.Stdout); err != nil {
		return env.errorf("%v", err)
	}
	return exitSuccess
}

// RunExport exports the trace file at path to output, or to stdout when
// output is empty.
func RunExport(path, format, output string, stdout io.Writer) error {
	w := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		encoder := json.NewEncoder(w)
		return eachEvent(path, log.Filter{}, func(e log.Event) error {
			if err := encoder.Encode(e); err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}
			return nil
		})
	case "csv":
		return exportCSV(path, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportCSV(path string, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "direction", "layer", "category", "document", "type", "size"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return eachEvent(path, log.Filter{}, func(event log.Event) error {
		eventType, size := "unknown", ""
		switch {
		case event.Chunk != nil:
			eventType, size = "chunk:"+event.Chunk.Tag, strconv.Itoa(event.Chunk.Length)
		case event.Resource != nil:
			eventType, size = "resource:"+event.Resource.Kind.String(), strconv.Itoa(event.Resource.Size)
		case event.Decode != nil:
			eventType, size = "decode", strconv.Itoa(event.Decode.Count)
		case event.Index != nil:
			eventType, size = "index", strconv.Itoa(event.Index.Entries)
		case event.Error != nil:
			eventType = "error"
		}
		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Direction.String(),
			event.Layer.String(),
			event.Category.String(),
			event.Document,
			eventType,
			size,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
}

func runTraceFilter(env *Env, args []string) int {
	fs := newFlagSet(env, "filter", "gltfkit trace filter - Filter a trace file into a new file\n\nUsage:\n  gltfkit trace filter [flags] <file.glog>\n")
	output := fs.String("o", "", "Output file (required)")
	var opts FilterOptions
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if !requireArgs(env, fs, 1, "trace file path") {
		return exitCommandError
	}
	if *output == "" {
		fmt.Fprintln(env.Stderr, "Error: output file (-o) required")
		fs.Usage()
		return exitCommandError
	}

	n, err := RunFilter(fs.Arg(0), *output, opts)
	if err != nil {
		return env.errorf("%v", err)
	}
	fmt.Fprintf(env.Stdout, "Filtered %d events to %s\n", n, *output)
	return exitSuccess
}

// RunFilter copies the events of path matching opts to output and returns
// how many were written.
func RunFilter(path, output string, opts FilterOptions) (int, error) {
	filter, err := opts.Filter()
	if err != nil {
		return 0, err
	}

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	err = eachEvent(path, filter, func(e log.Event) error {
		logger.Log(e)
		count++
		return nil
	})
	return count, err
}
