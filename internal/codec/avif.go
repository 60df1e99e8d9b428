package codec

import (
	"bytes"

	"github.com/gen2brain/avif"

	"github.com/driftbyte/imagecraft"
)

// decodeAVIF decodes a still AVIF image. Only drivers that enable the AVIF
// codec reach this path.
func decodeAVIF(data []byte, opts Options) (*Result, error) {
	if !opts.AVIF {
		return nil, &imagecraft.NotReadableError{Reason: "avif decoding disabled"}
	}
	cfg, err := avif.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "decoding avif header", Err: err}
	}
	if err := checkPixels(cfg.Width, cfg.Height, opts.MaxPixels); err != nil {
		return nil, err
	}

	m, err := avif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "decoding avif", Err: err}
	}
	return &Result{
		Frames: []*imagecraft.Frame{imagecraft.NewFrame(toNRGBA(m))},
		Format: FormatAVIF,
	}, nil
}

// EncodeAVIF encodes the frame as a still AVIF image.
func EncodeAVIF(frame *imagecraft.Frame, quality int) ([]byte, error) {
	var buf bytes.Buffer
	err := avif.Encode(&buf, frame.Img, avif.Options{
		Quality:      quality,
		QualityAlpha: quality,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
