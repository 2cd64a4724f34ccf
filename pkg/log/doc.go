// Package log provides structured codec tracing for gltfkit.
//
// This package defines the Logger interface and Event types for capturing
// codec-level activity at multiple layers (container, resource, accessor,
// index, service). Codec tracing is separate from operational logging
// (slog) and keeps a machine-readable record of what a pack, unpack or
// decode call read and produced.
//
// # Basic Usage
//
// Codecs and resolve sessions take a Logger in their Trace field:
//
//	codec := &glb.Codec{Trace: log.NewSlogAdapter(slog.Default())}
//
//	// For later analysis, write a trace file as well:
//	file, _ := log.NewFileLogger("pack.glog")
//	codec.Trace = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), file)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Container: chunks read from or written to a GLB (ChunkEvent)
//   - Resource: buffer, image and shader bytes resolved (ResourceEvent)
//   - Accessor: accessors and compressed attributes decoded (DecodeEvent)
//   - Index: source indexes built (IndexEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Trace files are a sequence of CBOR-encoded events with the .glog
// extension. The gltfkit trace command prints them.
package log
