package imagecraft

import (
	"image/color"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Modifier is a handler that mutates an Image's frames in place. A modifier
// instance is constructed immediately before use, applied exactly once, and
// discarded.
type Modifier interface {
	Modify(img *Image) error
}

// Encoder is a handler that reads an Image's frames and produces an encoded
// byte buffer without mutating the Image.
type Encoder interface {
	Encode(img *Image) (*Encoded, error)
}

// ModifierFactory builds a modifier bound to a descriptor and the driver
// that resolved it.
type ModifierFactory func(op Operation, d Driver) Modifier

// EncoderFactory builds an encoder bound to a descriptor and the driver
// that resolved it.
type EncoderFactory func(op Operation, d Driver) Encoder

// MetadataReader extracts EXIF fields from encoded image bytes. It accepts
// either a full JPEG stream or a raw TIFF-structured EXIF blob.
type MetadataReader interface {
	Parse(data []byte) (Exif, error)
}

// Exif holds parsed EXIF fields keyed by tag name.
type Exif map[string]string

// Driver is a processing backend: it decodes input into Images, creates
// blank canvases, and resolves operation descriptors to concrete handlers.
//
// A Driver is immutable after construction and may be shared freely across
// Images and goroutines.
type Driver interface {
	// ID names the backend (e.g. "native", "bild").
	ID() string

	// Decode reads encoded bytes and returns a decoded Image whose frames
	// this driver owns resolution for. Undecodable input yields a
	// NotReadableError; a recognized format the driver lacks a codec for
	// yields a NotSupportedError.
	Decode(r io.Reader) (*Image, error)

	// NewCanvas creates a single-frame Image of the given size filled with
	// background. A nil background means transparent.
	NewCanvas(width, height int, background color.Color) (*Image, error)

	// ResolveModifier maps a descriptor to a ready-to-apply Modifier.
	ResolveModifier(op Operation) (Modifier, error)

	// ResolveEncoder maps a descriptor to a ready-to-apply Encoder.
	ResolveEncoder(op Operation) (Encoder, error)

	// MetadataReader returns the EXIF reader for this driver, or nil when
	// the capability is unavailable in this runtime.
	MetadataReader() MetadataReader
}

// Registry maps operation kinds to handler factories for one driver. It
// replaces run-time naming-convention lookup with an explicit table built
// once at driver construction: Verify reports any kind that is neither
// registered nor explicitly marked unsupported, so a missing handler is a
// construction-time failure rather than a surprise at first use.
//
// A Registry is write-once: drivers populate it in their constructor and
// never mutate it afterwards, which is what makes a Driver safe to share.
type Registry struct {
	driver      string
	modifiers   map[Kind]ModifierFactory
	encoders    map[Kind]EncoderFactory
	unsupported map[Kind]struct{}
}

// NewRegistry creates an empty registry for the named driver.
func NewRegistry(driver string) *Registry {
	return &Registry{
		driver:      driver,
		modifiers:   make(map[Kind]ModifierFactory),
		encoders:    make(map[Kind]EncoderFactory),
		unsupported: make(map[Kind]struct{}),
	}
}

// RegisterModifier binds a modifier factory to kind, replacing any previous
// binding.
func (r *Registry) RegisterModifier(kind Kind, f ModifierFactory) {
	r.modifiers[kind] = f
	delete(r.unsupported, kind)
}

// RegisterEncoder binds an encoder factory to kind.
func (r *Registry) RegisterEncoder(kind Kind, f EncoderFactory) {
	r.encoders[kind] = f
	delete(r.unsupported, kind)
}

// MarkUnsupported declares that this driver deliberately provides no handler
// for kind. Resolving the kind yields a NotSupportedError instead of a
// ResolutionError, and Verify treats the kind as covered.
func (r *Registry) MarkUnsupported(kind Kind) {
	r.unsupported[kind] = struct{}{}
}

// Verify checks that every kind in the operation vocabulary is either
// registered or marked unsupported. Drivers call it as the last step of
// construction and fail fast on an incomplete table.
func (r *Registry) Verify() error {
	var missing []string
	for _, k := range ModifierKinds() {
		if _, ok := r.modifiers[k]; ok {
			continue
		}
		if _, ok := r.unsupported[k]; ok {
			continue
		}
		missing = append(missing, string(k))
	}
	for _, k := range EncoderKinds() {
		if _, ok := r.encoders[k]; ok {
			continue
		}
		if _, ok := r.unsupported[k]; ok {
			continue
		}
		missing = append(missing, string(k))
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Errorf("imagecraft: driver %q registry incomplete, missing: %s",
			r.driver, strings.Join(missing, ", "))
	}
	return nil
}

// ResolveModifier returns a modifier for op bound to d. A kind marked
// unsupported yields a NotSupportedError; an unknown kind yields a
// ResolutionError. No partial handler is ever constructed.
func (r *Registry) ResolveModifier(op Operation, d Driver) (Modifier, error) {
	kind := op.Kind()
	if f, ok := r.modifiers[kind]; ok {
		return f(op, d), nil
	}
	if _, ok := r.unsupported[kind]; ok {
		return nil, &NotSupportedError{Driver: r.driver, Capability: string(kind)}
	}
	return nil, &ResolutionError{Driver: r.driver, Kind: kind}
}

// ResolveEncoder returns an encoder for op bound to d.
func (r *Registry) ResolveEncoder(op Operation, d Driver) (Encoder, error) {
	kind := op.Kind()
	if f, ok := r.encoders[kind]; ok {
		return f(op, d), nil
	}
	if _, ok := r.unsupported[kind]; ok {
		return nil, &NotSupportedError{Driver: r.driver, Capability: string(kind)}
	}
	return nil, &ResolutionError{Driver: r.driver, Kind: kind}
}
