package native

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftbyte/imagecraft"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func newDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := New()
	require.NoError(t, err)
	return d
}

func newCanvas(t *testing.T, d *Driver, w, h int, bg color.Color) *imagecraft.Image {
	t.Helper()
	img, err := d.NewCanvas(w, h, bg)
	require.NoError(t, err)
	return img
}

func samePixel(t *testing.T, m image.Image, x, y int, want color.Color, msg string) {
	t.Helper()
	gr, gg, gb, ga := m.At(x, y).RGBA()
	wr, wg, wb, wa := want.RGBA()
	assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, msg)
}

func TestNewWith_VerifiesRegistry(t *testing.T) {
	d, err := NewWith(Options{MaxPixels: 1 << 20})
	require.NoError(t, err)
	assert.Equal(t, "native", d.ID())
	assert.NotNil(t, d.MetadataReader())
}

func TestNewCanvas(t *testing.T) {
	d := newDriver(t)

	img := newCanvas(t, d, 6, 4, red)
	assert.Equal(t, 6, img.Width())
	assert.Equal(t, 4, img.Height())
	assert.Equal(t, 1, img.Count())
	samePixel(t, img.First().Img, 3, 2, red, "canvas background")

	_, err := d.NewCanvas(0, 4, nil)
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 10, 8, red)

	out, err := img.Resize(5, 4)
	require.NoError(t, err)
	assert.Same(t, img, out, "modifiers return the receiver")
	assert.Equal(t, 5, img.Width())
	assert.Equal(t, 4, img.Height())
	samePixel(t, img.First().Img, 2, 2, red, "content survives resize")
}

func TestResizeDown_ClampsPerAxis(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 10, 8, red)

	// Width would enlarge and is clamped; height shrinks.
	_, err := img.ResizeDown(20, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width())
	assert.Equal(t, 4, img.Height())
}

func TestResizeDown_EnlargingIsNoop(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 10, 8, red)
	before := img.First()

	_, err := img.ResizeDown(100, 80)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width())
	assert.Equal(t, 8, img.Height())
	assert.Same(t, before, img.First(), "no-op keeps the frame")
}

func TestScale_DerivesMissingAxis(t *testing.T) {
	d := newDriver(t)

	img := newCanvas(t, d, 8, 4, red)
	_, err := img.Scale(4, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 2, img.Height())

	img = newCanvas(t, d, 8, 4, red)
	_, err = img.Scale(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 2, img.Height())
}

func TestScale_FitsWithinBox(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 4, red)

	_, err := img.Scale(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 2, img.Height())
}

func TestScale_Enlarges(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 4, red)

	_, err := img.Scale(80, 40)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Width())
	assert.Equal(t, 40, img.Height())
	samePixel(t, img.First().Img, 40, 20, red, "content survives enlargement")
}

func TestScaleDown_NeverEnlarges(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 4, red)

	_, err := img.ScaleDown(80, 40)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width())
	assert.Equal(t, 4, img.Height())
}

func TestFit_CoversAndCrops(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 4, red)

	_, err := img.Fit(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 4, img.Height())
}

func TestPad_CentersOnBackground(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, red)

	_, err := img.Pad(8, 4, blue)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width())
	assert.Equal(t, 4, img.Height())
	samePixel(t, img.First().Img, 0, 2, blue, "padding uses background")
	samePixel(t, img.First().Img, 4, 2, red, "content is centered")
}

func TestPad_EnlargesContent(t *testing.T) {
	d := newDriver(t)

	// Content grows to fill the box: a square source padded to a square
	// target leaves no background visible.
	img := newCanvas(t, d, 4, 4, red)
	_, err := img.Pad(40, 40, blue)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Width())
	samePixel(t, img.First().Img, 0, 0, red, "scaled content reaches the corner")

	// A wider box enlarges to contain and pads the sides.
	img = newCanvas(t, d, 4, 4, red)
	_, err = img.Pad(16, 8, blue)
	require.NoError(t, err)
	samePixel(t, img.First().Img, 8, 4, red, "content is enlarged to 8x8 and centered")
	samePixel(t, img.First().Img, 1, 4, blue, "sides are background")
	samePixel(t, img.First().Img, 14, 4, blue, "sides are background")
}

func TestPadDown_EnlargingIsNoop(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, red)
	before := img.First()

	_, err := img.PadDown(40, 40, blue)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Same(t, before, img.First())
}

func TestCrop(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 8, red)
	img.First().Img.Set(2, 2, blue)

	_, err := img.Crop(4, 4, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 4, img.Height())
	samePixel(t, img.First().Img, 0, 0, blue, "crop anchors at (x,y)")
}

func TestCrop_OutOfBounds(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 8, red)

	_, err := img.Crop(8, 8, 4, 4)
	require.Error(t, err)
	var opErr *imagecraft.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, imagecraft.KindCrop, opErr.Kind)
	assert.Equal(t, 8, img.Width(), "failed crop leaves the image untouched")
}

func TestRotate_RightAngleSwapsAxes(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 4, red)

	_, err := img.Rotate(90, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 8, img.Height())
}

func TestFlipH(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 1, red)
	img.First().Img.Set(0, 0, blue)

	_, err := img.FlipH()
	require.NoError(t, err)
	samePixel(t, img.First().Img, 3, 0, blue, "left pixel moves right")
	samePixel(t, img.First().Img, 0, 0, red, "")
}

func TestFlipV(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 1, 4, red)
	img.First().Img.Set(0, 0, blue)

	_, err := img.FlipV()
	require.NoError(t, err)
	samePixel(t, img.First().Img, 0, 3, blue, "top pixel moves down")
}

func TestBlurAndSharpen_KeepDimensions(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 6, 6, red)

	_, err := img.Blur(1.5)
	require.NoError(t, err)
	_, err = img.Sharpen(1.0)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Width())
	assert.Equal(t, 6, img.Height())
}

func TestPixelate(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 8, red)
	img.First().Img.Set(0, 0, blue)

	_, err := img.Pixelate(4)
	require.NoError(t, err)
	// Every pixel of a block collapses to one color.
	assert.Equal(t, img.First().Img.At(1, 1), img.First().Img.At(3, 3))

	// Size 1 is the identity.
	before := img.First()
	_, err = img.Pixelate(1)
	require.NoError(t, err)
	assert.Same(t, before, img.First())
}

func TestGreyscale(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 2, 2, red)

	_, err := img.Greyscale()
	require.NoError(t, err)
	r, g, b, _ := img.First().Img.At(0, 0).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestInvert(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 2, 2, black)

	_, err := img.Invert()
	require.NoError(t, err)
	samePixel(t, img.First().Img, 0, 0, white, "black inverts to white")
}

func TestBrightness(t *testing.T) {
	d := newDriver(t)
	mid := color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	img := newCanvas(t, d, 2, 2, mid)

	_, err := img.Brightness(50)
	require.NoError(t, err)
	r, _, _, _ := img.First().Img.At(0, 0).RGBA()
	assert.Greater(t, r>>8, uint32(100))
}

func TestContrast_FullNegativeIsGrey(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 2, 2, black)

	_, err := img.Contrast(-100)
	require.NoError(t, err)
	r, _, _, _ := img.First().Img.At(0, 0).RGBA()
	assert.InDelta(t, 128, int(r>>8), 2)
}

func TestGamma_IdentityAtOne(t *testing.T) {
	d := newDriver(t)
	mid := color.NRGBA{R: 100, G: 150, B: 200, A: 255}
	img := newCanvas(t, d, 2, 2, mid)

	_, err := img.Gamma(1.0)
	require.NoError(t, err)
	samePixel(t, img.First().Img, 0, 0, mid, "gamma 1.0 changes nothing")
}

func TestColorize(t *testing.T) {
	d := newDriver(t)
	grey := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	img := newCanvas(t, d, 2, 2, grey)

	_, err := img.Colorize(100, 0, -100)
	require.NoError(t, err)
	r, g, b, _ := img.First().Img.At(0, 0).RGBA()
	assert.Equal(t, uint32(255), r>>8, "red channel saturates")
	assert.Equal(t, uint32(128), g>>8, "green channel unchanged")
	assert.Equal(t, uint32(0), b>>8, "blue channel floors")
}

func TestFill_WholeCanvasVersusFlood(t *testing.T) {
	d := newDriver(t)

	// A white canvas split by a black wall: flood from the left colors only
	// the left region, whole-canvas fill colors everything.
	img := newCanvas(t, d, 5, 5, white)
	for y := 0; y < 5; y++ {
		img.First().Img.Set(2, y, black)
	}

	_, err := img.FillAt(red, 0, 0)
	require.NoError(t, err)
	samePixel(t, img.First().Img, 1, 4, red, "flood reaches the left region")
	samePixel(t, img.First().Img, 2, 2, black, "flood stops at the wall")
	samePixel(t, img.First().Img, 4, 4, white, "flood never crosses the wall")

	_, err = img.Fill(blue)
	require.NoError(t, err)
	samePixel(t, img.First().Img, 2, 2, blue, "whole-canvas fill covers the wall")
	samePixel(t, img.First().Img, 4, 4, blue, "whole-canvas fill covers everything")
}

func TestFillAt_OutsideCanvas(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, white)

	_, err := img.FillAt(red, 10, 10)
	require.Error(t, err)
	var opErr *imagecraft.OperationError
	assert.ErrorAs(t, err, &opErr)
}

func animatedImage(t *testing.T, d *Driver) *imagecraft.Image {
	t.Helper()
	frames := make([]*imagecraft.Frame, 0, 3)
	for _, c := range []color.NRGBA{red, blue, white} {
		f, err := d.NewCanvas(4, 4, c)
		require.NoError(t, err)
		frames = append(frames, f.First())
	}
	img, err := imagecraft.New(d, frames...)
	require.NoError(t, err)
	return img
}

func TestRemoveAnimation_KeepsChosenFrame(t *testing.T) {
	d := newDriver(t)
	img := animatedImage(t, d)
	require.True(t, img.IsAnimated())

	_, err := img.RemoveAnimation(1)
	require.NoError(t, err)
	assert.Equal(t, 1, img.Count())
	assert.False(t, img.IsAnimated())
	samePixel(t, img.First().Img, 2, 2, blue, "frame 1 survives")
}

func TestModifiersApplyToEveryFrame(t *testing.T) {
	d := newDriver(t)
	img := animatedImage(t, d)

	_, err := img.Resize(2, 2)
	require.NoError(t, err)
	for i, f := range img.Frames() {
		assert.Equal(t, 2, f.Width(), "frame %d width", i)
		assert.Equal(t, 2, f.Height(), "frame %d height", i)
	}
}

func TestSetProfile(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 2, 2, red)

	_, err := img.SetProfile([]byte("not a profile"))
	var profErr *imagecraft.ProfileError
	require.ErrorAs(t, err, &profErr)

	icc := make([]byte, 132)
	copy(icc[36:40], "acsp")
	_, err = img.SetProfile(icc)
	require.NoError(t, err)
	assert.Equal(t, icc, img.Profile())
}

func TestEncode_DoesNotMutate(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, red)
	buf := img.First().Img.(*image.NRGBA)
	before := append([]byte(nil), buf.Pix...)

	first, err := img.ToPNG()
	require.NoError(t, err)
	second, err := img.ToPNG()
	require.NoError(t, err)

	assert.Equal(t, before, buf.Pix, "encoding must not touch the frame buffer")
	assert.Equal(t, first.Bytes(), second.Bytes(), "encoding is repeatable")
}

func TestPNGRoundTrip(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 10, 10, red)

	enc, err := img.ToPNG()
	require.NoError(t, err)
	assert.Equal(t, "image/png", enc.MediaType())

	decoded, err := d.Decode(bytes.NewReader(enc.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 10, decoded.Width())
	samePixel(t, decoded.First().Img, 0, 0, red, "solid color survives the round trip")
}

func TestJPEGEncode(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 8, white)

	enc, err := img.ToJPEG(0)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", enc.MediaType())

	decoded, err := d.Decode(bytes.NewReader(enc.Bytes()))
	require.NoError(t, err)
	r, _, _, _ := decoded.First().Img.At(4, 4).RGBA()
	assert.Greater(t, r>>8, uint32(0xf0))
}

func TestGIFRoundTrip_Animated(t *testing.T) {
	d := newDriver(t)
	img := animatedImage(t, d)
	img.SetLoopCount(2)

	enc, err := img.ToGIF()
	require.NoError(t, err)
	assert.Equal(t, "image/gif", enc.MediaType())

	decoded, err := d.Decode(bytes.NewReader(enc.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Count())
	assert.Equal(t, 2, decoded.LoopCount())
}

func TestWebPRoundTrip(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 8, blue)

	enc, err := img.ToWebP(0, true)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", enc.MediaType())

	decoded, err := d.Decode(bytes.NewReader(enc.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Width())
	samePixel(t, decoded.First().Img, 4, 4, blue, "lossless webp round trip")
}

func TestWebP_EmbedsAttachedProfile(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 8, 8, blue)

	icc := make([]byte, 132)
	copy(icc[36:40], "acsp")
	_, err := img.SetProfile(icc)
	require.NoError(t, err)

	enc, err := img.ToWebP(0, true)
	require.NoError(t, err)

	decoded, err := d.Decode(bytes.NewReader(enc.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Count())
	assert.Equal(t, icc, decoded.Profile(), "profile survives a still webp round trip")
}

func TestBMPEncode(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, red)

	enc, err := img.ToBMP()
	require.NoError(t, err)
	assert.Equal(t, "image/bmp", enc.MediaType())

	decoded, err := d.Decode(bytes.NewReader(enc.Bytes()))
	require.NoError(t, err)
	samePixel(t, decoded.First().Img, 1, 1, red, "bmp round trip")
}

func TestAVIF_NotSupported(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, red)

	_, err := img.ToAVIF(0)
	assert.True(t, imagecraft.IsNotSupported(err), "encode: %v", err)

	avifMagic := []byte("\x00\x00\x00\x1cftypavifrest-of-the-file")
	_, err = d.Decode(bytes.NewReader(avifMagic))
	assert.True(t, imagecraft.IsNotSupported(err), "decode: %v", err)
}

func TestDecode_Garbage(t *testing.T) {
	d := newDriver(t)
	_, err := d.Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.True(t, imagecraft.IsNotReadable(err), "got %v", err)
}

func TestDecode_PixelLimit(t *testing.T) {
	d, err := NewWith(Options{MaxPixels: 8})
	require.NoError(t, err)

	big := newCanvas(t, newDriver(t), 10, 10, red)
	enc, err := big.ToPNG()
	require.NoError(t, err)

	_, err = d.Decode(bytes.NewReader(enc.Bytes()))
	assert.True(t, imagecraft.IsNotReadable(err), "got %v", err)
}

func TestDestroy(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, red)

	img.Destroy()
	_, err := img.Resize(2, 2)
	assert.ErrorIs(t, err, imagecraft.ErrImageDestroyed)
	_, err = img.ToPNG()
	assert.ErrorIs(t, err, imagecraft.ErrImageDestroyed)
}

func TestExif_PlainImageIsEmpty(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 4, 4, red)

	fields, err := img.Exif()
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestExif_Disabled(t *testing.T) {
	d, err := NewWith(Options{DisableMetadata: true})
	require.NoError(t, err)
	img := newCanvas(t, d, 4, 4, red)

	_, err = img.Exif()
	assert.True(t, imagecraft.IsNotSupported(err), "got %v", err)
}

func TestChaining(t *testing.T) {
	d := newDriver(t)
	img := newCanvas(t, d, 16, 16, red)

	out, err := img.Resize(8, 8)
	require.NoError(t, err)
	out, err = out.Greyscale()
	require.NoError(t, err)
	out, err = out.FlipH()
	require.NoError(t, err)

	assert.Same(t, img, out)
	assert.Equal(t, 8, img.Width())
}
