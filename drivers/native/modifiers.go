package native

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/driftbyte/imagecraft"
	"github.com/driftbyte/imagecraft/internal/paint"
)

func registerModifiers(reg *imagecraft.Registry) {
	reg.RegisterModifier(imagecraft.KindResize, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Resize)
		return &resizer{width: o.Width, height: o.Height}
	})
	reg.RegisterModifier(imagecraft.KindResizeDown, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.ResizeDown)
		return &resizer{width: o.Width, height: o.Height, down: true}
	})
	reg.RegisterModifier(imagecraft.KindScale, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Scale)
		return &scaler{width: o.Width, height: o.Height}
	})
	reg.RegisterModifier(imagecraft.KindScaleDown, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.ScaleDown)
		return &scaler{width: o.Width, height: o.Height, down: true}
	})
	reg.RegisterModifier(imagecraft.KindFit, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Fit)
		return &fitter{width: o.Width, height: o.Height}
	})
	reg.RegisterModifier(imagecraft.KindFitDown, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.FitDown)
		return &fitter{width: o.Width, height: o.Height, down: true}
	})
	reg.RegisterModifier(imagecraft.KindPad, func(op imagecraft.Operation, d imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Pad)
		return &padder{width: o.Width, height: o.Height, background: o.Background, driver: d.(*Driver)}
	})
	reg.RegisterModifier(imagecraft.KindPadDown, func(op imagecraft.Operation, d imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.PadDown)
		return &padder{width: o.Width, height: o.Height, background: o.Background, down: true, driver: d.(*Driver)}
	})
	reg.RegisterModifier(imagecraft.KindCrop, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Crop)
		return &cropper{op: o}
	})
	reg.RegisterModifier(imagecraft.KindRotate, func(op imagecraft.Operation, d imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Rotate)
		return &rotator{op: o, driver: d.(*Driver)}
	})
	reg.RegisterModifier(imagecraft.KindFlipH, func(_ imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.FlipH(m) })
	})
	reg.RegisterModifier(imagecraft.KindFlipV, func(_ imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.FlipV(m) })
	})
	reg.RegisterModifier(imagecraft.KindBlur, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Blur)
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.Blur(m, o.Sigma) })
	})
	reg.RegisterModifier(imagecraft.KindSharpen, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Sharpen)
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.Sharpen(m, o.Sigma) })
	})
	reg.RegisterModifier(imagecraft.KindPixelate, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Pixelate)
		return &pixelator{size: o.Size}
	})
	reg.RegisterModifier(imagecraft.KindGreyscale, func(_ imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.Grayscale(m) })
	})
	reg.RegisterModifier(imagecraft.KindInvert, func(_ imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.Invert(m) })
	})
	reg.RegisterModifier(imagecraft.KindBrightness, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Brightness)
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.AdjustBrightness(m, o.Percent) })
	})
	reg.RegisterModifier(imagecraft.KindContrast, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Contrast)
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.AdjustContrast(m, o.Percent) })
	})
	reg.RegisterModifier(imagecraft.KindGamma, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Gamma)
		return frameOp(func(m image.Image) *image.NRGBA { return imaging.AdjustGamma(m, o.Gamma) })
	})
	reg.RegisterModifier(imagecraft.KindColorize, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Colorize)
		return &colorizer{op: o}
	})
	reg.RegisterModifier(imagecraft.KindFill, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.Fill)
		return &filler{op: o}
	})
	reg.RegisterModifier(imagecraft.KindRemoveAnimation, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.RemoveAnimation)
		return &animationRemover{position: o.Position}
	})
	reg.RegisterModifier(imagecraft.KindSetProfile, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Modifier {
		o := op.(imagecraft.SetProfile)
		return &profileSetter{profile: o.Profile}
	})
}

// frameOp adapts a per-frame pixel transformation into a Modifier applying
// it to every frame.
type frameOp func(image.Image) *image.NRGBA

func (fn frameOp) Modify(img *imagecraft.Image) error {
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		return f.WithImage(fn(f.Img)), nil
	})
}

// clampBox caps a requested target box at the current canvas size, one axis
// at a time. All *Down variants share this precondition.
func clampBox(w, h, curW, curH int) (int, int) {
	if w > curW {
		w = curW
	}
	if h > curH {
		h = curH
	}
	return w, h
}

// containSize computes the largest size within the box that preserves the
// source aspect ratio, growing as well as shrinking. A zero target axis is
// derived from the other.
func containSize(curW, curH, w, h int) (int, int) {
	switch {
	case w == 0:
		w = int(math.Round(float64(curW) * float64(h) / float64(curH)))
	case h == 0:
		h = int(math.Round(float64(curH) * float64(w) / float64(curW)))
	default:
		ratio := math.Min(float64(w)/float64(curW), float64(h)/float64(curH))
		w = int(math.Round(float64(curW) * ratio))
		h = int(math.Round(float64(curH) * ratio))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

type resizer struct {
	width, height int
	down          bool
}

func (m *resizer) Modify(img *imagecraft.Image) error {
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		w, h := m.width, m.height
		if m.down {
			w, h = clampBox(w, h, f.Width(), f.Height())
		}
		if w == f.Width() && h == f.Height() {
			return f, nil
		}
		return f.WithImage(imaging.Resize(f.Img, w, h, imaging.Lanczos)), nil
	})
}

type scaler struct {
	width, height int
	down          bool
}

func (m *scaler) Modify(img *imagecraft.Image) error {
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		w, h := m.width, m.height
		if m.down {
			w, h = clampBox(w, h, f.Width(), f.Height())
		}
		// imaging.Fit never enlarges, so the contain size is computed
		// explicitly; only the down variant may turn into a no-op.
		tw, th := containSize(f.Width(), f.Height(), w, h)
		if tw == f.Width() && th == f.Height() {
			return f, nil
		}
		return f.WithImage(imaging.Resize(f.Img, tw, th, imaging.Lanczos)), nil
	})
}

type fitter struct {
	width, height int
	down          bool
}

func (m *fitter) Modify(img *imagecraft.Image) error {
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		w, h := m.width, m.height
		if m.down {
			w, h = clampBox(w, h, f.Width(), f.Height())
		}
		if w == f.Width() && h == f.Height() {
			return f, nil
		}
		return f.WithImage(imaging.Fill(f.Img, w, h, imaging.Center, imaging.Lanczos)), nil
	})
}

type padder struct {
	width, height int
	background    color.Color
	down          bool
	driver        *Driver
}

func (m *padder) Modify(img *imagecraft.Image) error {
	bg := m.driver.background(m.background)
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		w, h := m.width, m.height
		if m.down {
			w, h = clampBox(w, h, f.Width(), f.Height())
		}
		if w == f.Width() && h == f.Height() {
			return f, nil
		}
		tw, th := containSize(f.Width(), f.Height(), w, h)
		scaled := imaging.Resize(f.Img, tw, th, imaging.Lanczos)
		canvas := imaging.New(w, h, bg)
		return f.WithImage(imaging.PasteCenter(canvas, scaled)), nil
	})
}

type cropper struct {
	op imagecraft.Crop
}

func (m *cropper) Modify(img *imagecraft.Image) error {
	rect := image.Rect(m.op.X, m.op.Y, m.op.X+m.op.Width, m.op.Y+m.op.Height)
	return img.MapFrames(func(i int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		if !rect.In(f.Bounds()) {
			return nil, &imagecraft.OperationError{
				Kind: imagecraft.KindCrop,
				Err:  errors.Errorf("region %v outside frame %d bounds %v", rect, i, f.Bounds()),
			}
		}
		return f.WithImage(imaging.Crop(f.Img, rect)), nil
	})
}

type rotator struct {
	op     imagecraft.Rotate
	driver *Driver
}

func (m *rotator) Modify(img *imagecraft.Image) error {
	bg := m.driver.background(m.op.Background)
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		return f.WithImage(imaging.Rotate(f.Img, m.op.Angle, bg)), nil
	})
}

type pixelator struct {
	size int
}

func (m *pixelator) Modify(img *imagecraft.Image) error {
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		if m.size == 1 {
			return f, nil
		}
		w, h := f.Width(), f.Height()
		dw, dh := w/m.size, h/m.size
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		small := imaging.Resize(f.Img, dw, dh, imaging.Box)
		return f.WithImage(imaging.Resize(small, w, h, imaging.NearestNeighbor)), nil
	})
}

type colorizer struct {
	op imagecraft.Colorize
}

func (m *colorizer) Modify(img *imagecraft.Image) error {
	dr := m.op.Red * 255 / 100
	dg := m.op.Green * 255 / 100
	db := m.op.Blue * 255 / 100
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		adjusted := imaging.AdjustFunc(f.Img, func(c color.NRGBA) color.NRGBA {
			c.R = clamp8(float64(c.R) + dr)
			c.G = clamp8(float64(c.G) + dg)
			c.B = clamp8(float64(c.B) + db)
			return c
		})
		return f.WithImage(adjusted), nil
	})
}

type filler struct {
	op imagecraft.Fill
}

func (m *filler) Modify(img *imagecraft.Image) error {
	return img.MapFrames(func(_ int, f *imagecraft.Frame) (*imagecraft.Frame, error) {
		nf := f.Clone()
		if m.op.At == nil {
			paint.Canvas(nf.Img, m.op.Color)
			return nf, nil
		}
		if !paint.Flood(nf.Img, *m.op.At, m.op.Color) {
			return nil, &imagecraft.OperationError{
				Kind: imagecraft.KindFill,
				Err:  errors.Errorf("point %v outside canvas", *m.op.At),
			}
		}
		return nf, nil
	})
}

type animationRemover struct {
	position int
}

func (m *animationRemover) Modify(img *imagecraft.Image) error {
	keep, err := img.Frame(m.position)
	if err != nil {
		return &imagecraft.OperationError{Kind: imagecraft.KindRemoveAnimation, Err: err}
	}
	return img.ReplaceFrames(keep)
}

type profileSetter struct {
	profile []byte
}

func (m *profileSetter) Modify(img *imagecraft.Image) error {
	if len(m.profile) < 132 || !bytes.Equal(m.profile[36:40], []byte("acsp")) {
		return &imagecraft.ProfileError{Reason: "missing acsp signature"}
	}
	icc := make([]byte, len(m.profile))
	copy(icc, m.profile)
	img.AttachProfile(icc)
	return nil
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
