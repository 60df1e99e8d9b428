// Package bild implements the imagecraft backend built on
// anthonynsimon/bild. It covers the complete operation vocabulary,
// including AVIF encoding and decoding, which the native backend lacks.
package bild
