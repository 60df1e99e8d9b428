package codec

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"

	"github.com/driftbyte/imagecraft"
)

// EncodeJPEG encodes the frame as JPEG. Alpha is flattened onto white since
// JPEG has no transparency.
func EncodeJPEG(frame *imagecraft.Frame, quality int) ([]byte, error) {
	flat := flattenOnWhite(frame.Img)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes the frame as PNG.
func EncodePNG(frame *imagecraft.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBMP encodes the frame as BMP.
func EncodeBMP(frame *imagecraft.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, frame.Img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flattenOnWhite(m image.Image) image.Image {
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Over)
	return dst
}
