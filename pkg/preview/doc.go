// Package preview builds the bundles handed to preview engines.
//
// A bundle is a single CBOR value carrying the document JSON and the
// resolved bytes of every buffer, image and shader, so that an engine
// never touches the filesystem. Keys are small integers, encoded
// deterministically:
//
//	1: version   uint
//	2: session   text (resolve session id)
//	3: document  bytes (plain JSON)
//	4: buffers   [ {1: index, 2: mime, 3: data}, ... ]
//	5: images    [ ... ]
//	6: shaders   [ ... ]
//
// Bundles are validated on both encode and decode.
package preview
