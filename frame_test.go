package imagecraft

import (
	"image"
	"image/color"
	"testing"
	"time"
)

func TestFrame_Metadata(t *testing.T) {
	f := NewFrame(image.NewNRGBA(image.Rect(0, 0, 4, 3)))
	if f.Width() != 4 || f.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", f.Width(), f.Height())
	}
	if f.Delay != 0 || f.Disposal != DisposalNone {
		t.Error("new frame should carry zero animation metadata")
	}
}

func TestFrame_WithImageKeepsMetadata(t *testing.T) {
	f := NewFrame(image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	f.Delay = 70 * time.Millisecond
	f.Disposal = DisposalBackground
	f.Offset = image.Pt(1, 1)

	nf := f.WithImage(image.NewNRGBA(image.Rect(0, 0, 9, 9)))
	if nf == f {
		t.Fatal("WithImage must return a new frame")
	}
	if nf.Width() != 9 {
		t.Errorf("width = %d, want 9", nf.Width())
	}
	if nf.Delay != f.Delay || nf.Disposal != f.Disposal || nf.Offset != f.Offset {
		t.Error("WithImage must carry delay, disposal and offset")
	}
}

func TestFrame_CloneIsDeep(t *testing.T) {
	f := solidFrame(2, 2, color.NRGBA{R: 255, A: 255})
	f.Delay = 30 * time.Millisecond

	c := f.Clone()
	if c.Delay != f.Delay {
		t.Error("Clone must keep metadata")
	}
	c.Img.Set(0, 0, color.NRGBA{B: 255, A: 255})

	r, _, b, _ := f.Img.At(0, 0).RGBA()
	if r == 0 || b != 0 {
		t.Error("mutating a clone must not touch the original buffer")
	}
}

func TestFrame_Release(t *testing.T) {
	f := solidFrame(2, 2, color.White)
	f.Release()
	if f.Img != nil || f.Width() != 0 || f.Height() != 0 {
		t.Error("released frame should report empty")
	}
	if !f.Bounds().Empty() {
		t.Error("released frame bounds should be empty")
	}
}
