// Package compressed decodes mesh attributes stored in a compressed
// geometry block (the KHR_draco_mesh_compression extension).
//
// Decoding is delegated to an external service behind the Service
// interface. The service is loaded once, asynchronously, through a
// Handle created with Init; every DecodeAttribute call waits for it and
// then creates and releases its own decoder, geometry and output array.
//
//	h := compressed.Init(ctx, blockcodec.Load)
//	attr, err := compressed.DecodeAttribute(ctx, h, doc, ptr, session)
package compressed
