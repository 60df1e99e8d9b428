package metadata

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"testing"

	"github.com/driftbyte/imagecraft"
)

func TestParse_NoPayloadIsEmpty(t *testing.T) {
	// A plain encoded JPEG carries no APP1 Exif segment.
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}

	fields, err := NewReader().Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("fields = %v, want empty", fields)
	}
}

func TestParse_EmptyInputIsEmpty(t *testing.T) {
	fields, err := NewReader().Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("fields = %v, want empty", fields)
	}
}

func TestParse_MalformedPayload(t *testing.T) {
	cases := [][]byte{
		// APP1 marker present, body is garbage.
		append([]byte("Exif\x00\x00"), []byte("garbage after marker")...),
		// TIFF header, truncated body.
		[]byte("II*\x00\x08\x00"),
		[]byte("MM\x00*\x00\x00"),
	}
	for _, data := range cases {
		_, err := NewReader().Parse(data)
		if !imagecraft.IsNotReadable(err) {
			t.Errorf("Parse(%q) = %v, want NotReadableError", data[:6], err)
		}
	}
}

// rawTIFF builds a minimal little-endian TIFF blob with a single ASCII
// Make tag, the shape of a raw EXIF payload lifted from a WebP container.
func rawTIFF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.WriteString("II*\x00")
	binary.Write(&buf, le, uint32(8)) // IFD0 offset

	value := []byte("Acme\x00")
	binary.Write(&buf, le, uint16(1))      // entry count
	binary.Write(&buf, le, uint16(0x010f)) // Make
	binary.Write(&buf, le, uint16(2))      // ASCII
	binary.Write(&buf, le, uint32(len(value)))
	binary.Write(&buf, le, uint32(8+2+12+4)) // value offset
	binary.Write(&buf, le, uint32(0))        // next IFD
	buf.Write(value)

	return buf.Bytes()
}

func TestParse_RawTIFFPayload(t *testing.T) {
	fields, err := NewReader().Parse(rawTIFF(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := fields["Make"]; got != `"Acme"` {
		t.Errorf("Make = %q, want quoted Acme", got)
	}
}
