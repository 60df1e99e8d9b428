package codec

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"time"

	"github.com/driftbyte/imagecraft"
)

// gifDelayUnit is the GIF delay resolution (1/100th of a second).
const gifDelayUnit = 10 * time.Millisecond

// decodeGIF decodes every frame of a GIF, compositing sub-frames onto a
// persistent canvas so each resulting frame covers the full canvas. Delay
// and disposal metadata survive for re-encode.
func decodeGIF(data []byte, opts Options) (*Result, error) {
	cfg, err := gif.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "decoding gif header", Err: err}
	}
	if err := checkPixels(cfg.Width, cfg.Height, opts.MaxPixels); err != nil {
		return nil, err
	}

	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "decoding gif", Err: err}
	}
	if len(g.Image) == 0 {
		return nil, &imagecraft.NotReadableError{Reason: "gif has no frames"}
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		w = g.Image[0].Bounds().Dx()
		h = g.Image[0].Bounds().Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	frames := make([]*imagecraft.Frame, 0, len(g.Image))

	for i, pal := range g.Image {
		b := pal.Bounds()

		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		// Save the covered region before compositing so DisposalPrevious
		// can restore it afterwards.
		var saved *image.NRGBA
		if disposal == gif.DisposalPrevious {
			saved = image.NewNRGBA(b)
			draw.Draw(saved, b, canvas, b.Min, draw.Src)
		}

		draw.Draw(canvas, b, pal, b.Min, draw.Over)

		snap := image.NewNRGBA(canvas.Bounds())
		copy(snap.Pix, canvas.Pix)

		frame := imagecraft.NewFrame(snap)
		if i < len(g.Delay) {
			frame.Delay = time.Duration(g.Delay[i]) * gifDelayUnit
		}
		frame.Disposal = mapGIFDisposal(disposal)
		frames = append(frames, frame)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, b, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			draw.Draw(canvas, b, saved, b.Min, draw.Src)
		}
	}

	return &Result{
		Frames:    frames,
		Format:    FormatGIF,
		LoopCount: g.LoopCount,
	}, nil
}

// EncodeGIF encodes frames as a GIF, animated when more than one frame is
// present. Frames are quantized with the Plan9 palette and Floyd-Steinberg
// dithering.
func EncodeGIF(frames []*imagecraft.Frame, loopCount int) ([]byte, error) {
	g := &gif.GIF{LoopCount: loopCount}
	if len(frames) > 0 {
		g.Config = image.Config{
			Width:  frames[0].Width(),
			Height: frames[0].Height(),
		}
	}

	for _, f := range frames {
		b := f.Bounds()
		pal := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, pal.Bounds(), f.Img, b.Min)

		g.Image = append(g.Image, pal)
		g.Delay = append(g.Delay, int(f.Delay/gifDelayUnit))
		g.Disposal = append(g.Disposal, mapDisposal(f.Disposal))
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mapGIFDisposal(d byte) imagecraft.Disposal {
	switch d {
	case gif.DisposalBackground:
		return imagecraft.DisposalBackground
	case gif.DisposalPrevious:
		return imagecraft.DisposalPrevious
	}
	return imagecraft.DisposalNone
}

func mapDisposal(d imagecraft.Disposal) byte {
	switch d {
	case imagecraft.DisposalBackground:
		return gif.DisposalBackground
	case imagecraft.DisposalPrevious:
		return gif.DisposalPrevious
	}
	return gif.DisposalNone
}
