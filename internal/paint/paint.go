// Package paint implements the pixel-level fill primitives shared by the
// drivers: whole-canvas painting and contiguous-region flood fill. Painting
// covers every pixel; flood fill only reaches the region connected to its
// starting point.
package paint

import (
	"image"
	"image/color"
	"image/draw"
)

// Canvas paints every pixel of img with c.
func Canvas(img draw.Image, c color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Flood fills the contiguous region of img containing p with c, using
// 4-connectivity. Pixels belong to the region when they match the color at
// p exactly. Filling with the region's own color is a no-op. A starting
// point outside the image bounds reports false.
func Flood(img draw.Image, p image.Point, c color.Color) bool {
	b := img.Bounds()
	if !p.In(b) {
		return false
	}

	target := rgba(img.At(p.X, p.Y))
	repl := rgba(c)
	if target == repl {
		return true
	}

	// Simple scanline-free BFS; image sizes here are bounded by the
	// driver's pixel guard.
	queue := []image.Point{p}
	visited := make(map[image.Point]struct{}, 64)
	visited[p] = struct{}{}

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		img.Set(q.X, q.Y, c)

		for _, n := range [4]image.Point{
			{q.X + 1, q.Y}, {q.X - 1, q.Y},
			{q.X, q.Y + 1}, {q.X, q.Y - 1},
		} {
			if !n.In(b) {
				continue
			}
			if _, ok := visited[n]; ok {
				continue
			}
			if rgba(img.At(n.X, n.Y)) != target {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return true
}

func rgba(c color.Color) color.RGBA64 {
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
}
