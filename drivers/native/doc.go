// Package native implements the imagecraft backend built on
// disintegration/imaging and the standard library raster codecs.
//
// The driver covers the full operation vocabulary except AVIF, which it
// marks unsupported at registry construction: resolving an AVIF encode (or
// decoding AVIF input) yields a NotSupportedError rather than a resolution
// failure.
package native
