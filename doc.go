// Package imagecraft is a driver-agnostic image manipulation facade.
//
// Client code issues abstract operations (resize, rotate, fill, encode)
// against an Image; each call is resolved at call time to a concrete handler
// supplied by one of the interchangeable processing backends under drivers/.
// The backends stay fully decoupled from each other and from client code:
// the Image API is written once, and each driver contributes only the
// handlers it can implement.
//
// # Dispatch
//
// Every operation is described by an immutable descriptor (see Operation)
// tagged with a Kind. A driver builds a Registry at construction time that
// maps each Kind to a handler factory; Registry.Verify makes an incomplete
// table a construction-time failure rather than a surprise at first use.
// Resolving an operation a driver has deliberately opted out of yields a
// NotSupportedError; a kind with no binding at all yields a ResolutionError.
//
// # Frames and animation
//
// An Image is an ordered sequence of one or more frames; modifiers are
// written generically over the sequence, so still and animated images take
// the same code paths. Animated sources (GIF, WebP) are composited to
// full-canvas frames at decode time, with per-frame delay and disposal
// preserved for re-encode.
//
// # Concurrency
//
// A Driver is immutable after construction and safe to share across
// goroutines. Images are not internally synchronized; callers serialize
// operations per Image.
//
// # Errors
//
// Operations either fully succeed or fully fail. Failures carry a specific
// type: ResolutionError, NotSupportedError, NotReadableError,
// OperationError, ProfileError, or the ErrImageDestroyed sentinel.
package imagecraft
