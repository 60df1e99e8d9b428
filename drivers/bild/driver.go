package bild

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/pkg/errors"

	"github.com/driftbyte/imagecraft"
	"github.com/driftbyte/imagecraft/internal/codec"
	"github.com/driftbyte/imagecraft/internal/metadata"
	"github.com/driftbyte/imagecraft/internal/paint"
)

// DriverID identifies this backend.
const DriverID = "bild"

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

// Driver is the processing backend built on anthonynsimon/bild. It covers
// the complete operation vocabulary, including the AVIF codec the native
// driver opts out of.
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

// NewWith constructs a Driver with the given options, building and
// verifying the handler registry so gaps fail here rather than at first use.
func NewWith(opts Options) (*Driver, error) {
	d := &Driver{opts: opts}
	if !opts.DisableMetadata {
		d.meta = metadata.NewReader()
	}

	reg := imagecraft.NewRegistry(DriverID)
	registerModifiers(reg)
	registerEncoders(reg)

	if err := reg.Verify(); err != nil {
		return nil, err
	}
	d.reg = reg
	return d, nil
}

// ID returns "bild".
func (d *Driver) ID() string { return DriverID }

// Decode reads encoded bytes into an Image owned by this driver.
func (d *Driver) Decode(r io.Reader) (*imagecraft.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "bild: reading input")
	}

	res, err := codec.Decode(data, codec.Options{MaxPixels: d.opts.MaxPixels, AVIF: true})
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
		return nil, errors.Errorf("bild: invalid canvas size %dx%d", width, height)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg := d.background(background); bg != (color.NRGBA{}) {
		paint.Canvas(canvas, bg)
	}
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

func (d *Driver) background(requested color.Color) color.NRGBA {
	c := requested
	if c == nil {
		c = d.opts.Background
	}
	if c == nil {
		return color.NRGBA{}
	}
	r, g, b, a := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// overBackground composites m onto a canvas of the same size filled with bg.
func overBackground(m image.Image, bg color.NRGBA) *image.RGBA {
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if bg != (color.NRGBA{}) {
		paint.Canvas(dst, bg)
	}
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Over)
	return dst
}
