package native

import (
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/driftbyte/imagecraft"
	"github.com/driftbyte/imagecraft/internal/codec"
	"github.com/driftbyte/imagecraft/internal/metadata"
)

// DriverID identifies this backend.
const DriverID = "native"

// Options configures a Driver. The zero value is usable.
type Options struct {
	// MaxPixels rejects decoding images whose canvas exceeds this pixel
	// count. Zero disables the guard.
	MaxPixels int64

	// Background is the default background for canvases and rotations.
	// Nil means transparent.
	Background color.Color

	// DisableMetadata drops the EXIF reader, making metadata reads fail
	// with a NotSupportedError.
	DisableMetadata bool
}

// Driver is the processing backend built on disintegration/imaging and the
// standard library raster codecs. It supports every operation kind except
// AVIF, which it deliberately opts out of.
//
// A Driver is immutable after construction and safe for concurrent use.
type Driver struct {
	opts Options
	reg  *imagecraft.Registry
	meta imagecraft.MetadataReader
}

// New constructs a Driver with default options.
func New() (*Driver, error) {
	return NewWith(Options{})
}

// NewWith constructs a Driver with the given options. The handler registry
// is built and verified here, so a missing handler fails construction
// instead of the first operation.
func NewWith(opts Options) (*Driver, error) {
	d := &Driver{opts: opts}
	if !opts.DisableMetadata {
		d.meta = metadata.NewReader()
	}

	reg := imagecraft.NewRegistry(DriverID)
	registerModifiers(reg)
	registerEncoders(reg)
	reg.MarkUnsupported(imagecraft.KindAVIF)

	if err := reg.Verify(); err != nil {
		return nil, err
	}
	d.reg = reg
	return d, nil
}

// ID returns "native".
func (d *Driver) ID() string { return DriverID }

// Decode reads encoded bytes into an Image owned by this driver. AVIF input
// is recognized but unsupported by this backend.
func (d *Driver) Decode(r io.Reader) (*imagecraft.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "native: reading input")
	}

	format, err := codec.Sniff(data)
	if err != nil {
		return nil, err
	}
	if format == codec.FormatAVIF {
		return nil, &imagecraft.NotSupportedError{Driver: DriverID, Capability: "avif decoding"}
	}

	res, err := codec.Decode(data, codec.Options{MaxPixels: d.opts.MaxPixels})
	if err != nil {
		return nil, err
	}

	img, err := imagecraft.New(d, res.Frames...)
	if err != nil {
		return nil, err
	}
	img.SetLoopCount(res.LoopCount)
	if len(res.ICC) > 0 {
		img.AttachProfile(res.ICC)
	}
	if len(res.Exif) > 0 {
		img.AttachRawExif(res.Exif)
	}
	return img, nil
}

// NewCanvas creates a single-frame Image filled with background. Nil
// background falls back to the driver default, then to transparent.
func (d *Driver) NewCanvas(width, height int, background color.Color) (*imagecraft.Image, error) {
	if width < 1 || height < 1 {
		return nil, errors.Errorf("native: invalid canvas size %dx%d", width, height)
	}
	if background == nil {
		background = d.opts.Background
	}
	if background == nil {
		background = color.NRGBA{}
	}
	canvas := imaging.New(width, height, background)
	return imagecraft.New(d, imagecraft.NewFrame(canvas))
}

// ResolveModifier maps op to this backend's modifier implementation.
func (d *Driver) ResolveModifier(op imagecraft.Operation) (imagecraft.Modifier, error) {
	return d.reg.ResolveModifier(op, d)
}

// ResolveEncoder maps op to this backend's encoder implementation.
func (d *Driver) ResolveEncoder(op imagecraft.Operation) (imagecraft.Encoder, error) {
	return d.reg.ResolveEncoder(op, d)
}

// MetadataReader returns the EXIF reader, or nil when disabled.
func (d *Driver) MetadataReader() imagecraft.MetadataReader { return d.meta }

// background resolves the effective background color for an operation.
func (d *Driver) background(requested color.Color) color.Color {
	if requested != nil {
		return requested
	}
	if d.opts.Background != nil {
		return d.opts.Background
	}
	return color.NRGBA{}
}
