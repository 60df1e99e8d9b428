package paint

import (
	"image"
	"image/color"
	"testing"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func canvas(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	Canvas(img, c)
	return img
}

func at(img image.Image, x, y int) color.RGBA64 {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
}

func TestCanvas_CoversEveryPixel(t *testing.T) {
	img := canvas(4, 3, red)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if at(img, x, y) != rgba(red) {
				t.Fatalf("pixel (%d,%d) = %v, want red", x, y, img.At(x, y))
			}
		}
	}
}

func TestFlood_StopsAtColorBoundary(t *testing.T) {
	// White canvas with a vertical black wall at x=2 splitting it in two.
	img := canvas(5, 5, white)
	for y := 0; y < 5; y++ {
		img.Set(2, y, black)
	}

	if !Flood(img, image.Pt(0, 0), red) {
		t.Fatal("Flood inside bounds should report true")
	}

	// Left of the wall is filled, the wall and the right side are not.
	if at(img, 1, 4) != rgba(red) {
		t.Error("left region should be filled")
	}
	if at(img, 2, 2) != rgba(black) {
		t.Error("wall must keep its color")
	}
	if at(img, 4, 4) != rgba(white) {
		t.Error("right region must stay untouched")
	}
}

func TestFlood_FourConnectivity(t *testing.T) {
	// Diagonal neighbors do not connect: a checkerboard corner pixel stays.
	img := canvas(2, 2, white)
	img.Set(0, 0, black)
	img.Set(1, 1, black)

	Flood(img, image.Pt(0, 0), red)
	if at(img, 1, 1) != rgba(black) {
		t.Error("diagonal pixel must not be reached through 4-connectivity")
	}
	if at(img, 0, 0) != rgba(red) {
		t.Error("start pixel should be filled")
	}
}

func TestFlood_SameColorNoop(t *testing.T) {
	img := canvas(3, 3, white)
	if !Flood(img, image.Pt(1, 1), white) {
		t.Error("filling with the region color should still report true")
	}
}

func TestFlood_OutsideBounds(t *testing.T) {
	img := canvas(3, 3, white)
	if Flood(img, image.Pt(-1, 0), red) {
		t.Error("start outside bounds should report false")
	}
	if Flood(img, image.Pt(3, 3), red) {
		t.Error("start outside bounds should report false")
	}
	if at(img, 0, 0) != rgba(white) {
		t.Error("canvas must stay untouched")
	}
}
