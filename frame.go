package imagecraft

import (
	"image"
	"image/draw"
	"time"
)

// Disposal controls how a frame's region is treated once the frame has been
// displayed, before the next frame is composited.
type Disposal byte

const (
	// DisposalNone leaves the canvas as-is after the frame is shown.
	DisposalNone Disposal = iota
	// DisposalBackground clears the frame's region to the background.
	DisposalBackground
	// DisposalPrevious restores the canvas to its state before the frame.
	DisposalPrevious
)

// Frame is one still raster buffer plus per-frame animation metadata.
//
// The pixel buffer is exclusively owned by the Frame's Image and is mutated
// in place by modifiers. Width and height only change through explicit
// resize/crop handlers; Delay and Disposal are freely mutable metadata.
type Frame struct {
	// Img holds the frame's pixels. Nil after the owning Image is destroyed.
	Img draw.Image

	// Delay is the display duration of this frame in an animation.
	Delay time.Duration

	// Disposal selects the canvas cleanup applied after this frame.
	Disposal Disposal

	// Offset is the frame's position on the logical canvas. Frames produced
	// by decoding are composited to full-canvas buffers, so this is zero
	// unless a handler explicitly introduces an offset.
	Offset image.Point
}

// NewFrame wraps a pixel buffer in a Frame with zero animation metadata.
func NewFrame(img draw.Image) *Frame {
	return &Frame{Img: img}
}

// Width returns the frame's width in pixels, or 0 for a released frame.
func (f *Frame) Width() int {
	if f.Img == nil {
		return 0
	}
	return f.Img.Bounds().Dx()
}

// Height returns the frame's height in pixels, or 0 for a released frame.
func (f *Frame) Height() int {
	if f.Img == nil {
		return 0
	}
	return f.Img.Bounds().Dy()
}

// Bounds returns the frame's pixel rectangle.
func (f *Frame) Bounds() image.Rectangle {
	if f.Img == nil {
		return image.Rectangle{}
	}
	return f.Img.Bounds()
}

// WithImage returns a new Frame holding img with this frame's metadata.
// Handlers use it to carry delay and disposal across a pixel transformation.
func (f *Frame) WithImage(img draw.Image) *Frame {
	return &Frame{
		Img:      img,
		Delay:    f.Delay,
		Disposal: f.Disposal,
		Offset:   f.Offset,
	}
}

// Clone returns a deep copy of the frame, including its pixel buffer.
func (f *Frame) Clone() *Frame {
	if f.Img == nil {
		return &Frame{Delay: f.Delay, Disposal: f.Disposal, Offset: f.Offset}
	}
	b := f.Img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, f.Img, b.Min, draw.Src)
	return f.WithImage(dst)
}

// Release drops the pixel buffer. The Frame must not be used afterwards.
func (f *Frame) Release() {
	f.Img = nil
}
