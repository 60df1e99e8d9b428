package bild

import (
	"github.com/driftbyte/imagecraft"
	"github.com/driftbyte/imagecraft/internal/codec"
)

func registerEncoders(reg *imagecraft.Registry) {
	reg.RegisterEncoder(imagecraft.KindJPEG, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Encoder {
		o := op.(imagecraft.EncodeJPEG)
		return &jpegEncoder{quality: o.Quality}
	})
	reg.RegisterEncoder(imagecraft.KindPNG, func(_ imagecraft.Operation, _ imagecraft.Driver) imagecraft.Encoder {
		return &pngEncoder{}
	})
	reg.RegisterEncoder(imagecraft.KindGIF, func(_ imagecraft.Operation, _ imagecraft.Driver) imagecraft.Encoder {
		return &gifEncoder{}
	})
	reg.RegisterEncoder(imagecraft.KindWebP, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Encoder {
		o := op.(imagecraft.EncodeWebP)
		return &webpEncoder{quality: o.Quality, lossless: o.Lossless}
	})
	reg.RegisterEncoder(imagecraft.KindBMP, func(_ imagecraft.Operation, _ imagecraft.Driver) imagecraft.Encoder {
		return &bmpEncoder{}
	})
	reg.RegisterEncoder(imagecraft.KindAVIF, func(op imagecraft.Operation, _ imagecraft.Driver) imagecraft.Encoder {
		o := op.(imagecraft.EncodeAVIF)
		return &avifEncoder{quality: o.Quality}
	})
}

type jpegEncoder struct {
	quality int
}

func (e *jpegEncoder) Encode(img *imagecraft.Image) (*imagecraft.Encoded, error) {
	data, err := codec.EncodeJPEG(img.First(), e.quality)
	if err != nil {
		return nil, &imagecraft.OperationError{Kind: imagecraft.KindJPEG, Err: err}
	}
	return imagecraft.NewEncoded(data, codec.FormatJPEG.MediaType()), nil
}

type pngEncoder struct{}

func (e *pngEncoder) Encode(img *imagecraft.Image) (*imagecraft.Encoded, error) {
	data, err := codec.EncodePNG(img.First())
	if err != nil {
		return nil, &imagecraft.OperationError{Kind: imagecraft.KindPNG, Err: err}
	}
	return imagecraft.NewEncoded(data, codec.FormatPNG.MediaType()), nil
}

type gifEncoder struct{}

func (e *gifEncoder) Encode(img *imagecraft.Image) (*imagecraft.Encoded, error) {
	data, err := codec.EncodeGIF(img.Frames(), img.LoopCount())
	if err != nil {
		return nil, &imagecraft.OperationError{Kind: imagecraft.KindGIF, Err: err}
	}
	return imagecraft.NewEncoded(data, codec.FormatGIF.MediaType()), nil
}

type webpEncoder struct {
	quality  int
	lossless bool
}

func (e *webpEncoder) Encode(img *imagecraft.Image) (*imagecraft.Encoded, error) {
	data, err := codec.EncodeWebP(img.Frames(), img.LoopCount(), e.quality, e.lossless, img.Profile())
	if err != nil {
		return nil, &imagecraft.OperationError{Kind: imagecraft.KindWebP, Err: err}
	}
	return imagecraft.NewEncoded(data, codec.FormatWebP.MediaType()), nil
}

type bmpEncoder struct{}

func (e *bmpEncoder) Encode(img *imagecraft.Image) (*imagecraft.Encoded, error) {
	data, err := codec.EncodeBMP(img.First())
	if err != nil {
		return nil, &imagecraft.OperationError{Kind: imagecraft.KindBMP, Err: err}
	}
	return imagecraft.NewEncoded(data, codec.FormatBMP.MediaType()), nil
}

type avifEncoder struct {
	quality int
}

func (e *avifEncoder) Encode(img *imagecraft.Image) (*imagecraft.Encoded, error) {
	data, err := codec.EncodeAVIF(img.First(), e.quality)
	if err != nil {
		return nil, &imagecraft.OperationError{Kind: imagecraft.KindAVIF, Err: err}
	}
	return imagecraft.NewEncoded(data, codec.FormatAVIF.MediaType()), nil
}
