package imagecraft

import (
	"io"
	"os"
)

// Encoded is the result of an encode operation: a byte buffer and its media
// type. The buffer is produced once by an encoder and must be treated as
// read-only.
type Encoded struct {
	data      []byte
	mediaType string
}

// NewEncoded wraps encoder output. Encoders call this; client code only
// reads the result.
func NewEncoded(data []byte, mediaType string) *Encoded {
	return &Encoded{data: data, mediaType: mediaType}
}

// Bytes returns the encoded bytes. The caller must not modify them.
func (e *Encoded) Bytes() []byte { return e.data }

// Len returns the encoded size in bytes.
func (e *Encoded) Len() int { return len(e.data) }

// MediaType returns the IANA media type, e.g. "image/png".
func (e *Encoded) MediaType() string { return e.mediaType }

// WriteTo writes the encoded bytes to w.
func (e *Encoded) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.data)
	return int64(n), err
}

// Save writes the encoded bytes to a file.
func (e *Encoded) Save(path string) error {
	return os.WriteFile(path, e.data, 0o644)
}
