package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	t.Parallel()

	assert.Equal(t, float32(0), Clamp01(-0.5))
	assert.Equal(t, float32(0), Clamp01(0))
	assert.Equal(t, float32(0.25), Clamp01(0.25))
	assert.Equal(t, float32(1), Clamp01(1))
	assert.Equal(t, float32(1), Clamp01(7.3))
}

func TestPackChannel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0), PackChannel(-1))
	assert.Equal(t, byte(0), PackChannel(0))
	assert.Equal(t, byte(128), PackChannel(0.5))
	assert.Equal(t, byte(255), PackChannel(1))
	assert.Equal(t, byte(255), PackChannel(2))
}

func TestWritePixel(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 3*BytesPerPixel)
	WritePixel(buf, 1, mgl32.Vec3{1, 0.5, 0})

	// Neighbouring pixels untouched.
	assert.Equal(t, []byte{0, 0, 0, 0}, buf[0:4])
	assert.Equal(t, []byte{255, 128, 0, 255}, buf[4:8])
	assert.Equal(t, []byte{0, 0, 0, 0}, buf[8:12])
}

func TestLerp(t *testing.T) {
	t.Parallel()

	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{2, 4, -6}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, mgl32.Vec3{1, 2, -3}, Lerp(a, b, 0.5))
}
