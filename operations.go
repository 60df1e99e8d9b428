package imagecraft

import (
	"image"
	"image/color"
)

// Kind is the backend-independent tag naming an abstract operation. Drivers
// key their handler registries by Kind.
type Kind string

// Modifier kinds.
const (
	KindResize          Kind = "resize"
	KindResizeDown      Kind = "resize-down"
	KindScale           Kind = "scale"
	KindScaleDown       Kind = "scale-down"
	KindFit             Kind = "fit"
	KindFitDown         Kind = "fit-down"
	KindPad             Kind = "pad"
	KindPadDown         Kind = "pad-down"
	KindCrop            Kind = "crop"
	KindRotate          Kind = "rotate"
	KindFlipH           Kind = "flip-horizontal"
	KindFlipV           Kind = "flip-vertical"
	KindBlur            Kind = "blur"
	KindSharpen         Kind = "sharpen"
	KindPixelate        Kind = "pixelate"
	KindGreyscale       Kind = "greyscale"
	KindInvert          Kind = "invert"
	KindBrightness      Kind = "brightness"
	KindContrast        Kind = "contrast"
	KindGamma           Kind = "gamma"
	KindColorize        Kind = "colorize"
	KindFill            Kind = "fill"
	KindRemoveAnimation Kind = "remove-animation"
	KindSetProfile      Kind = "set-profile"
)

// Encoder kinds.
const (
	KindJPEG Kind = "jpeg"
	KindPNG  Kind = "png"
	KindGIF  Kind = "gif"
	KindWebP Kind = "webp"
	KindBMP  Kind = "bmp"
	KindAVIF Kind = "avif"
)

// ModifierKinds returns the complete modifier vocabulary. Registry.Verify
// checks driver registries against this list at construction time.
func ModifierKinds() []Kind {
	return []Kind{
		KindResize, KindResizeDown, KindScale, KindScaleDown,
		KindFit, KindFitDown, KindPad, KindPadDown,
		KindCrop, KindRotate, KindFlipH, KindFlipV,
		KindBlur, KindSharpen, KindPixelate,
		KindGreyscale, KindInvert, KindBrightness, KindContrast,
		KindGamma, KindColorize, KindFill,
		KindRemoveAnimation, KindSetProfile,
	}
}

// EncoderKinds returns the complete encoder vocabulary.
func EncoderKinds() []Kind {
	return []Kind{KindJPEG, KindPNG, KindGIF, KindWebP, KindBMP, KindAVIF}
}

// Operation is an immutable, backend-independent request naming an operation
// and carrying its call-time parameters. Descriptors are constructed by the
// Image methods (which validate arguments), consumed once by resolution, and
// discarded.
type Operation interface {
	Kind() Kind
}

// Resize requests an exact resize to Width x Height, ignoring aspect ratio.
type Resize struct {
	Width, Height int
}

func (Resize) Kind() Kind { return KindResize }

// ResizeDown is Resize with each target axis clamped to the current frame
// size: a request that would enlarge an axis leaves that axis unchanged.
type ResizeDown struct {
	Width, Height int
}

func (ResizeDown) Kind() Kind { return KindResizeDown }

// Scale requests an aspect-preserving resize. A zero Width or Height is
// derived from the other axis; when both are set the image is scaled to the
// largest size that fits within the box.
type Scale struct {
	Width, Height int
}

func (Scale) Kind() Kind { return KindScale }

// ScaleDown is the shrink-only variant of Scale.
type ScaleDown struct {
	Width, Height int
}

func (ScaleDown) Kind() Kind { return KindScaleDown }

// Fit scales the image to cover Width x Height, then center-crops to the
// exact target size.
type Fit struct {
	Width, Height int
}

func (Fit) Kind() Kind { return KindFit }

// FitDown is the shrink-only variant of Fit.
type FitDown struct {
	Width, Height int
}

func (FitDown) Kind() Kind { return KindFitDown }

// Pad scales the image to fit within Width x Height and centers it on a
// canvas of exactly that size filled with Background.
type Pad struct {
	Width, Height int
	Background    color.Color
}

func (Pad) Kind() Kind { return KindPad }

// PadDown is the shrink-only variant of Pad.
type PadDown struct {
	Width, Height int
	Background    color.Color
}

func (PadDown) Kind() Kind { return KindPadDown }

// Crop extracts the Width x Height rectangle anchored at (X, Y).
type Crop struct {
	Width, Height int
	X, Y          int
}

func (Crop) Kind() Kind { return KindCrop }

// Rotate turns the image counterclockwise by Angle degrees. Corners exposed
// by non-right angles are filled with Background.
type Rotate struct {
	Angle      float64
	Background color.Color
}

func (Rotate) Kind() Kind { return KindRotate }

// FlipH mirrors the image horizontally (around the vertical axis).
type FlipH struct{}

func (FlipH) Kind() Kind { return KindFlipH }

// FlipV mirrors the image vertically (around the horizontal axis).
type FlipV struct{}

func (FlipV) Kind() Kind { return KindFlipV }

// Blur applies a Gaussian blur with the given sigma.
type Blur struct {
	Sigma float64
}

func (Blur) Kind() Kind { return KindBlur }

// Sharpen applies a sharpening filter with the given sigma.
type Sharpen struct {
	Sigma float64
}

func (Sharpen) Kind() Kind { return KindSharpen }

// Pixelate replaces Size x Size blocks with a single color.
type Pixelate struct {
	Size int
}

func (Pixelate) Kind() Kind { return KindPixelate }

// Greyscale converts the image to greyscale.
type Greyscale struct{}

func (Greyscale) Kind() Kind { return KindGreyscale }

// Invert negates every color channel.
type Invert struct{}

func (Invert) Kind() Kind { return KindInvert }

// Brightness adjusts brightness by Percent in [-100, 100].
type Brightness struct {
	Percent float64
}

func (Brightness) Kind() Kind { return KindBrightness }

// Contrast adjusts contrast by Percent in [-100, 100].
type Contrast struct {
	Percent float64
}

func (Contrast) Kind() Kind { return KindContrast }

// Gamma applies gamma correction. Gamma 1.0 is the identity.
type Gamma struct {
	Gamma float64
}

func (Gamma) Kind() Kind { return KindGamma }

// Colorize shifts each channel by a percentage in [-100, 100].
type Colorize struct {
	Red, Green, Blue float64
}

func (Colorize) Kind() Kind { return KindColorize }

// Fill paints with Color. A nil At covers the whole canvas; a non-nil At
// flood-fills the contiguous region containing that pixel. The two are
// semantically different and handlers must not conflate them.
type Fill struct {
	Color color.Color
	At    *image.Point
}

func (Fill) Kind() Kind { return KindFill }

// RemoveAnimation collapses a multi-frame image to the single frame at
// Position, discarding all others. Destructive and irreversible.
type RemoveAnimation struct {
	Position int
}

func (RemoveAnimation) Kind() Kind { return KindRemoveAnimation }

// SetProfile attaches an ICC color profile to the image. Encoders that can
// embed profiles (WEBP) carry it into their output.
type SetProfile struct {
	Profile []byte
}

func (SetProfile) Kind() Kind { return KindSetProfile }

// EncodeJPEG encodes the first frame as JPEG with the given quality (1-100).
type EncodeJPEG struct {
	Quality int
}

func (EncodeJPEG) Kind() Kind { return KindJPEG }

// EncodePNG encodes the first frame as PNG.
type EncodePNG struct{}

func (EncodePNG) Kind() Kind { return KindPNG }

// EncodeGIF encodes all frames as a (possibly animated) GIF.
type EncodeGIF struct{}

func (EncodeGIF) Kind() Kind { return KindGIF }

// EncodeWebP encodes all frames as a (possibly animated) WebP.
type EncodeWebP struct {
	Quality  int
	Lossless bool
}

func (EncodeWebP) Kind() Kind { return KindWebP }

// EncodeBMP encodes the first frame as BMP.
type EncodeBMP struct{}

func (EncodeBMP) Kind() Kind { return KindBMP }

// EncodeAVIF encodes the first frame as AVIF with the given quality (1-100).
type EncodeAVIF struct {
	Quality int
}

func (EncodeAVIF) Kind() Kind { return KindAVIF }
