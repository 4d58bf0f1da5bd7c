// package common contains common types and helpers that are used throughout
// this viewer. They are not interface-wrapped structs, just plain functions
// and data-types shared by the scene and renderer packages.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BytesPerPixel is the framebuffer pixel stride: 8-bit RGBA.
const BytesPerPixel = 4

// Clamp01 clamps v to the [0, 1] range.
//
// Parameters:
//   - v: the value to clamp
//
// Returns:
//   - float32: v limited to [0, 1]
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PackChannel converts a linear [0, 1] color channel to an 8-bit value.
// Out-of-range input is clamped before quantization.
//
// Parameters:
//   - v: linear channel intensity
//
// Returns:
//   - byte: the quantized channel value
func PackChannel(v float32) byte {
	return byte(Clamp01(v)*255 + 0.5)
}

// WritePixel packs a linear RGB color into an RGBA framebuffer at the given
// pixel index. Alpha is always 255. The destination must hold at least
// (idx+1)*BytesPerPixel bytes.
//
// Parameters:
//   - dst: the RGBA framebuffer
//   - idx: pixel index (row-major, not a byte offset)
//   - c: linear RGB color
func WritePixel(dst []byte, idx int, c mgl32.Vec3) {
	off := idx * BytesPerPixel
	dst[off] = PackChannel(c.X())
	dst[off+1] = PackChannel(c.Y())
	dst[off+2] = PackChannel(c.Z())
	dst[off+3] = 255
}

// Lerp linearly interpolates between two colors or points.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor (not clamped)
//
// Returns:
//   - mgl32.Vec3: a + (b-a)*t
func Lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
