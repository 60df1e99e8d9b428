package codec

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/driftbyte/imagecraft"
)

// Decode sniffs the format of data and decodes it into one or more
// full-canvas frames. Undecodable input yields a NotReadableError. Callers
// are expected to check for AVIF themselves when they do not enable it.
func Decode(data []byte, opts Options) (*Result, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatGIF:
		return decodeGIF(data, opts)
	case FormatWebP:
		return decodeWebP(data, opts)
	case FormatAVIF:
		return decodeAVIF(data, opts)
	}

	res, err := decodeStill(data, format, opts)
	if err != nil {
		return nil, err
	}
	if format == FormatJPEG {
		// Keep the source bytes for metadata extraction: the EXIF reader
		// understands a full JPEG stream.
		res.Exif = data
	}
	return res, nil
}

func decodeStill(data []byte, format Format, opts Options) (*Result, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "decoding " + string(format) + " header", Err: err}
	}
	if err := checkPixels(cfg.Width, cfg.Height, opts.MaxPixels); err != nil {
		return nil, err
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "decoding " + string(format), Err: err}
	}

	return &Result{
		Frames: []*imagecraft.Frame{imagecraft.NewFrame(toNRGBA(m))},
		Format: format,
	}, nil
}

// toNRGBA copies m into a fresh NRGBA buffer anchored at the origin. Decoded
// images arrive in format-native color models (YCbCr, paletted); handlers
// expect a mutable draw.Image.
func toNRGBA(m image.Image) *image.NRGBA {
	if n, ok := m.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	return dst
}
