package imagecraft

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Image is an ordered, iterable collection of frames representing a still or
// animated image, plus a reference to the Driver that produced it.
//
// Every operation method validates its own arguments, builds the matching
// descriptor, and delegates to Modify or Encode. Modifiers mutate the Image
// in place and return the same Image to support chaining; encoders are pure
// and return an independent byte buffer.
//
// An Image is not safe for concurrent use: callers must serialize operations
// per Image. The Driver it references is immutable and freely shareable.
type Image struct {
	driver    Driver
	frames    []*Frame
	loopCount int
	profile   []byte
	exifData  []byte
	destroyed bool
}

// New creates an Image owned by driver from one or more frames.
func New(driver Driver, frames ...*Frame) (*Image, error) {
	if driver == nil {
		return nil, errors.New("imagecraft: nil driver")
	}
	if len(frames) == 0 {
		return nil, errors.New("imagecraft: image requires at least one frame")
	}
	return &Image{driver: driver, frames: frames}, nil
}

// Driver returns the backend this Image was created by.
func (img *Image) Driver() Driver { return img.driver }

// Frames returns the ordered frame sequence. The slice is the Image's own;
// callers iterate it but must not grow or shrink it directly.
func (img *Image) Frames() []*Frame { return img.frames }

// Count returns the number of frames.
func (img *Image) Count() int { return len(img.frames) }

// IsAnimated reports whether the Image has more than one frame.
func (img *Image) IsAnimated() bool { return len(img.frames) > 1 }

// First returns the first frame, or nil for a destroyed Image.
func (img *Image) First() *Frame {
	if len(img.frames) == 0 {
		return nil
	}
	return img.frames[0]
}

// Frame returns the frame at position i.
func (img *Image) Frame(i int) (*Frame, error) {
	if img.destroyed {
		return nil, ErrImageDestroyed
	}
	if i < 0 || i >= len(img.frames) {
		return nil, errors.Errorf("imagecraft: frame position %d out of range [0,%d)", i, len(img.frames))
	}
	return img.frames[i], nil
}

// EachFrame applies fn to every frame in sequence order, stopping at the
// first error.
func (img *Image) EachFrame(fn func(i int, f *Frame) error) error {
	for i, f := range img.frames {
		if err := fn(i, f); err != nil {
			return err
		}
	}
	return nil
}

// MapFrames computes a replacement for every frame in sequence order and
// swaps the whole sequence in only if every frame succeeded, leaving the
// Image untouched on failure. Modifiers use it to keep a failed operation
// all-or-nothing.
func (img *Image) MapFrames(fn func(i int, f *Frame) (*Frame, error)) error {
	replaced := make([]*Frame, len(img.frames))
	for i, f := range img.frames {
		nf, err := fn(i, f)
		if err != nil {
			return err
		}
		if nf == nil {
			return errors.Errorf("imagecraft: frame %d replaced with nil", i)
		}
		replaced[i] = nf
	}
	img.frames = replaced
	return nil
}

// ReplaceFrames swaps the frame sequence. Used by handlers that change the
// frame count, such as animation removal.
func (img *Image) ReplaceFrames(frames ...*Frame) error {
	if len(frames) == 0 {
		return errors.New("imagecraft: image requires at least one frame")
	}
	img.frames = frames
	return nil
}

// Width returns the canvas width, taken from the first frame.
func (img *Image) Width() int {
	if f := img.First(); f != nil {
		return f.Width()
	}
	return 0
}

// Height returns the canvas height, taken from the first frame.
func (img *Image) Height() int {
	if f := img.First(); f != nil {
		return f.Height()
	}
	return 0
}

// LoopCount returns the animation loop count: 0 loops forever, -1 plays
// once (the image/gif convention).
func (img *Image) LoopCount() int { return img.loopCount }

// SetLoopCount sets the animation loop count carried into GIF/WebP encodes.
// 0 loops forever and -1 plays once; values below -1 clamp to -1.
func (img *Image) SetLoopCount(n int) {
	if n < -1 {
		n = -1
	}
	img.loopCount = n
}

// Profile returns the attached ICC profile bytes, or nil.
func (img *Image) Profile() []byte { return img.profile }

// AttachProfile stores ICC profile bytes on the Image. Profile modifiers
// call it after validation; encoders that can embed profiles read it back.
func (img *Image) AttachProfile(icc []byte) { img.profile = icc }

// AttachRawExif stores raw EXIF bytes captured at decode time.
func (img *Image) AttachRawExif(data []byte) { img.exifData = data }

// Destroyed reports whether Destroy has been called.
func (img *Image) Destroyed() bool { return img.destroyed }

// Destroy releases every frame buffer deterministically. Any operation on
// the Image afterwards fails with ErrImageDestroyed.
func (img *Image) Destroy() {
	for _, f := range img.frames {
		f.Release()
	}
	img.frames = nil
	img.profile = nil
	img.exifData = nil
	img.destroyed = true
}

// Modify resolves op against the Image's driver and applies the resulting
// handler, mutating the frames in place. It returns the same Image so calls
// can be chained. Each call fully applies before the next begins; there is
// no deferred operation queue.
func (img *Image) Modify(op Operation) (*Image, error) {
	if img.destroyed {
		return nil, ErrImageDestroyed
	}
	m, err := img.driver.ResolveModifier(op)
	if err != nil {
		return nil, err
	}
	if err := m.Modify(img); err != nil {
		return nil, err
	}
	return img, nil
}

// Encode resolves op against the Image's driver and applies the resulting
// encoder, producing an immutable byte buffer. The Image is not mutated.
func (img *Image) Encode(op Operation) (*Encoded, error) {
	if img.destroyed {
		return nil, ErrImageDestroyed
	}
	e, err := img.driver.ResolveEncoder(op)
	if err != nil {
		return nil, err
	}
	return e.Encode(img)
}

// Resize resizes every frame to exactly width x height, ignoring aspect
// ratio.
func (img *Image) Resize(width, height int) (*Image, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	return img.Modify(Resize{Width: width, Height: height})
}

// ResizeDown resizes like Resize but never enlarges: each target axis is
// clamped to the current size, so an enlarging request is a no-op.
func (img *Image) ResizeDown(width, height int) (*Image, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	return img.Modify(ResizeDown{Width: width, Height: height})
}

// Scale resizes preserving aspect ratio. A zero width or height is derived
// from the other axis; with both set the image fits within the box.
func (img *Image) Scale(width, height int) (*Image, error) {
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return nil, errors.Errorf("imagecraft: invalid scale target %dx%d", width, height)
	}
	return img.Modify(Scale{Width: width, Height: height})
}

// ScaleDown is the shrink-only variant of Scale.
func (img *Image) ScaleDown(width, height int) (*Image, error) {
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return nil, errors.Errorf("imagecraft: invalid scale target %dx%d", width, height)
	}
	return img.Modify(ScaleDown{Width: width, Height: height})
}

// Fit scales to cover width x height, then center-crops to that exact size.
func (img *Image) Fit(width, height int) (*Image, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	return img.Modify(Fit{Width: width, Height: height})
}

// FitDown is the shrink-only variant of Fit.
func (img *Image) FitDown(width, height int) (*Image, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	return img.Modify(FitDown{Width: width, Height: height})
}

// Pad scales to fit within width x height and centers the result on a
// canvas of that exact size filled with background.
func (img *Image) Pad(width, height int, background color.Color) (*Image, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	return img.Modify(Pad{Width: width, Height: height, Background: background})
}

// PadDown is the shrink-only variant of Pad.
func (img *Image) PadDown(width, height int, background color.Color) (*Image, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	return img.Modify(PadDown{Width: width, Height: height, Background: background})
}

// Crop extracts the width x height rectangle anchored at (x, y).
func (img *Image) Crop(width, height, x, y int) (*Image, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	if x < 0 || y < 0 {
		return nil, errors.Errorf("imagecraft: negative crop anchor (%d,%d)", x, y)
	}
	return img.Modify(Crop{Width: width, Height: height, X: x, Y: y})
}

// Rotate turns the image counterclockwise by angle degrees, filling exposed
// corners with background (transparent when nil).
func (img *Image) Rotate(angle float64, background color.Color) (*Image, error) {
	return img.Modify(Rotate{Angle: angle, Background: background})
}

// FlipH mirrors the image horizontally.
func (img *Image) FlipH() (*Image, error) { return img.Modify(FlipH{}) }

// FlipV mirrors the image vertically.
func (img *Image) FlipV() (*Image, error) { return img.Modify(FlipV{}) }

// Blur applies a Gaussian blur with the given sigma.
func (img *Image) Blur(sigma float64) (*Image, error) {
	if sigma <= 0 {
		return nil, errors.Errorf("imagecraft: blur sigma must be positive, got %v", sigma)
	}
	return img.Modify(Blur{Sigma: sigma})
}

// Sharpen applies a sharpening filter with the given sigma.
func (img *Image) Sharpen(sigma float64) (*Image, error) {
	if sigma <= 0 {
		return nil, errors.Errorf("imagecraft: sharpen sigma must be positive, got %v", sigma)
	}
	return img.Modify(Sharpen{Sigma: sigma})
}

// Pixelate replaces size x size blocks with a single color.
func (img *Image) Pixelate(size int) (*Image, error) {
	if size < 1 {
		return nil, errors.Errorf("imagecraft: pixelate size must be >= 1, got %d", size)
	}
	return img.Modify(Pixelate{Size: size})
}

// Greyscale converts the image to greyscale.
func (img *Image) Greyscale() (*Image, error) { return img.Modify(Greyscale{}) }

// Invert negates every color channel.
func (img *Image) Invert() (*Image, error) { return img.Modify(Invert{}) }

// Brightness adjusts brightness by percent in [-100, 100].
func (img *Image) Brightness(percent float64) (*Image, error) {
	if percent < -100 || percent > 100 {
		return nil, errors.Errorf("imagecraft: brightness percent %v out of range [-100,100]", percent)
	}
	return img.Modify(Brightness{Percent: percent})
}

// Contrast adjusts contrast by percent in [-100, 100].
func (img *Image) Contrast(percent float64) (*Image, error) {
	if percent < -100 || percent > 100 {
		return nil, errors.Errorf("imagecraft: contrast percent %v out of range [-100,100]", percent)
	}
	return img.Modify(Contrast{Percent: percent})
}

// Gamma applies gamma correction; 1.0 is the identity.
func (img *Image) Gamma(g float64) (*Image, error) {
	if g <= 0 {
		return nil, errors.Errorf("imagecraft: gamma must be positive, got %v", g)
	}
	return img.Modify(Gamma{Gamma: g})
}

// Colorize shifts the red, green and blue channels by percentages in
// [-100, 100].
func (img *Image) Colorize(red, green, blue float64) (*Image, error) {
	for _, v := range []float64{red, green, blue} {
		if v < -100 || v > 100 {
			return nil, errors.Errorf("imagecraft: colorize percent %v out of range [-100,100]", v)
		}
	}
	return img.Modify(Colorize{Red: red, Green: green, Blue: blue})
}

// Fill paints the whole canvas with c. Use FillAt to flood-fill from a
// starting pixel instead; the two are semantically different.
func (img *Image) Fill(c color.Color) (*Image, error) {
	if c == nil {
		return nil, errors.New("imagecraft: nil fill color")
	}
	return img.Modify(Fill{Color: c})
}

// FillAt flood-fills the contiguous region containing (x, y) with c.
func (img *Image) FillAt(c color.Color, x, y int) (*Image, error) {
	if c == nil {
		return nil, errors.New("imagecraft: nil fill color")
	}
	return img.Modify(Fill{Color: c, At: &image.Point{X: x, Y: y}})
}

// RemoveAnimation keeps only the frame at position and discards the rest,
// collapsing the Image to a still. Destructive and irreversible.
func (img *Image) RemoveAnimation(position int) (*Image, error) {
	if img.destroyed {
		return nil, ErrImageDestroyed
	}
	if position < 0 || position >= len(img.frames) {
		return nil, errors.Errorf("imagecraft: frame position %d out of range [0,%d)", position, len(img.frames))
	}
	return img.Modify(RemoveAnimation{Position: position})
}

// SetProfile validates and attaches an ICC color profile.
func (img *Image) SetProfile(icc []byte) (*Image, error) {
	if len(icc) == 0 {
		return nil, &ProfileError{Reason: "empty profile"}
	}
	return img.Modify(SetProfile{Profile: icc})
}

// ToJPEG encodes the first frame as JPEG with quality in (0, 100]; 0 selects
// the default quality.
func (img *Image) ToJPEG(quality int) (*Encoded, error) {
	if quality < 0 || quality > 100 {
		return nil, errors.Errorf("imagecraft: jpeg quality %d out of range [0,100]", quality)
	}
	if quality == 0 {
		quality = DefaultQuality
	}
	return img.Encode(EncodeJPEG{Quality: quality})
}

// ToPNG encodes the first frame as PNG.
func (img *Image) ToPNG() (*Encoded, error) { return img.Encode(EncodePNG{}) }

// ToGIF encodes all frames as a GIF, animated when the Image has more than
// one frame.
func (img *Image) ToGIF() (*Encoded, error) { return img.Encode(EncodeGIF{}) }

// ToWebP encodes all frames as WebP. Quality 0 selects the default.
func (img *Image) ToWebP(quality int, lossless bool) (*Encoded, error) {
	if quality < 0 || quality > 100 {
		return nil, errors.Errorf("imagecraft: webp quality %d out of range [0,100]", quality)
	}
	if quality == 0 {
		quality = DefaultQuality
	}
	return img.Encode(EncodeWebP{Quality: quality, Lossless: lossless})
}

// ToBMP encodes the first frame as BMP.
func (img *Image) ToBMP() (*Encoded, error) { return img.Encode(EncodeBMP{}) }

// ToAVIF encodes the first frame as AVIF. Quality 0 selects the default.
// Drivers without an AVIF codec return a NotSupportedError.
func (img *Image) ToAVIF(quality int) (*Encoded, error) {
	if quality < 0 || quality > 100 {
		return nil, errors.Errorf("imagecraft: avif quality %d out of range [0,100]", quality)
	}
	if quality == 0 {
		quality = DefaultQuality
	}
	return img.Encode(EncodeAVIF{Quality: quality})
}

// Exif reads embedded metadata. When no raw EXIF was captured at decode
// time, the Image is first encoded to JPEG purely for extraction; that
// conversion never alters the Image. A driver without a metadata reader
// yields a NotSupportedError; malformed metadata yields a NotReadableError;
// an image that simply carries no EXIF yields an empty result.
func (img *Image) Exif() (Exif, error) {
	if img.destroyed {
		return nil, ErrImageDestroyed
	}
	reader := img.driver.MetadataReader()
	if reader == nil {
		return nil, &NotSupportedError{Driver: img.driver.ID(), Capability: "exif metadata"}
	}
	data := img.exifData
	if len(data) == 0 {
		enc, err := img.Encode(EncodeJPEG{Quality: DefaultQuality})
		if err != nil {
			return nil, err
		}
		data = enc.Bytes()
	}
	return reader.Parse(data)
}

// DefaultQuality is the lossy encode quality used when the caller passes 0.
const DefaultQuality = 85

func validSize(width, height int) error {
	if width < 1 || height < 1 {
		return errors.Errorf("imagecraft: invalid target size %dx%d", width, height)
	}
	return nil
}
