// Package codec provides format sniffing and the frame-level decode/encode
// collaborators shared by the drivers. Still formats (PNG, JPEG, BMP) decode
// to exactly one frame; animated formats (GIF, WebP) decode every sub-frame
// composited to a full-canvas buffer so the rest of the module never deals
// with partial-canvas frames.
package codec

import (
	"bytes"

	"github.com/driftbyte/imagecraft"
)

// Format identifies a container format recognized by Sniff.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatWebP Format = "webp"
	FormatBMP  Format = "bmp"
	FormatAVIF Format = "avif"
)

// MediaType returns the IANA media type for the format.
func (f Format) MediaType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatWebP:
		return "image/webp"
	case FormatBMP:
		return "image/bmp"
	case FormatAVIF:
		return "image/avif"
	}
	return "application/octet-stream"
}

// Result is the outcome of decoding one input.
type Result struct {
	Frames    []*imagecraft.Frame
	Format    Format
	LoopCount int
	ICC       []byte
	Exif      []byte
}

// Options controls decoding.
type Options struct {
	// MaxPixels rejects images whose canvas exceeds this pixel count.
	// Zero means no limit.
	MaxPixels int64

	// AVIF enables AVIF decoding. Drivers without the AVIF codec leave it
	// off and report the format as unsupported themselves.
	AVIF bool
}

// Sniff identifies the container format from magic bytes.
func Sniff(data []byte) (Format, error) {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG, nil
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xff, 0xd8, 0xff}):
		return FormatJPEG, nil
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return FormatGIF, nil
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return FormatWebP, nil
	case len(data) >= 2 && bytes.Equal(data[:2], []byte("BM")):
		return FormatBMP, nil
	case len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")) &&
		(bytes.Equal(data[8:12], []byte("avif")) || bytes.Equal(data[8:12], []byte("avis"))):
		return FormatAVIF, nil
	}
	return "", &imagecraft.NotReadableError{Reason: "unrecognized image format"}
}

func checkPixels(width, height int, max int64) error {
	if max <= 0 {
		return nil
	}
	if int64(width)*int64(height) > max {
		return &imagecraft.NotReadableError{
			Reason: "image exceeds pixel limit",
		}
	}
	return nil
}
