// Package resolve loads the bytes behind buffer, image and shader
// references of a document.
//
// A reference is one of three kinds:
//
//   - a data URI, decoded in memory
//   - an external path, read relative to the directory of the document
//   - a buffer view, sliced out of an already resolved buffer (for
//     buffers without a URI this is the payload of the binary container
//     the document was unpacked from)
//
// Resolution happens inside a Session. A session caches buffers by index
// for its own lifetime only; a new session always starts cold. Missing
// files are reported once as *NotFoundError and never retried.
package resolve
