// Package metadata implements EXIF extraction for the drivers' metadata
// reader contract. It accepts either a full JPEG stream or a raw
// TIFF-structured EXIF payload (as carried by WebP containers).
package metadata

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/driftbyte/imagecraft"
)

// Reader parses EXIF metadata. The zero value is usable.
type Reader struct{}

// NewReader returns an EXIF reader.
func NewReader() *Reader { return &Reader{} }

// Parse extracts EXIF fields from data. Data that carries no EXIF payload
// at all yields an empty result; a payload that is present but malformed
// yields a NotReadableError.
func (Reader) Parse(data []byte) (imagecraft.Exif, error) {
	if !hasExifPayload(data) {
		return imagecraft.Exif{}, nil
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "parsing exif", Err: err}
	}

	fields := imagecraft.Exif{}
	walker := fieldWalker{fields: fields}
	if err := x.Walk(walker); err != nil {
		return nil, &imagecraft.NotReadableError{Reason: "walking exif fields", Err: err}
	}
	return fields, nil
}

type fieldWalker struct {
	fields imagecraft.Exif
}

func (w fieldWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.fields[string(name)] = tag.String()
	return nil
}

// hasExifPayload reports whether data plausibly contains EXIF: either a
// JPEG APP1 "Exif" marker somewhere in the stream or a bare TIFF header at
// the start (raw EXIF blob).
func hasExifPayload(data []byte) bool {
	if len(data) >= 4 {
		if bytes.Equal(data[:4], []byte("II*\x00")) || bytes.Equal(data[:4], []byte("MM\x00*")) {
			return true
		}
	}
	return bytes.Contains(data, []byte("Exif\x00\x00"))
}
