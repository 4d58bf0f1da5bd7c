package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-4

// drag applies a primary-button drag with a single motion delta.
func drag(c Camera, dx, dy float32) {
	c.HandleEvent(ButtonDownEvent{Button: MouseButtonPrimary})
	c.HandleEvent(MotionEvent{DX: dx, DY: dy})
	c.HandleEvent(ButtonUpEvent{Button: MouseButtonPrimary})
}

func TestNewCameraDefaults(t *testing.T) {
	t.Parallel()

	c := NewCamera()

	assert.InDelta(t, 50.0, c.Radius(), epsilon)
	assert.Zero(t, c.Theta())
	assert.Zero(t, c.Phi())
	assert.InDelta(t, 50.0*math32.Pi/180.0, c.Fov(), epsilon)
	assert.InDelta(t, 0.005, c.MouseSensitivity(), epsilon)
	assert.False(t, c.Dragging())

	pos := c.Position()
	assert.InDelta(t, 50.0, pos.X(), epsilon)
	assert.InDelta(t, 0.0, pos.Y(), epsilon)
	assert.InDelta(t, 0.0, pos.Z(), epsilon)
}

func TestNewCameraValidation(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewCamera(WithRadius(0)) })
	assert.Panics(t, func() { NewCamera(WithRadius(-5)) })
	assert.Panics(t, func() { NewCamera(WithFov(0)) })
	assert.Panics(t, func() { NewCamera(WithMouseSensitivity(-0.001)) })
}

func TestNewCameraClampsInitialPhi(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithPhi(3.0))
	assert.InDelta(t, math32.Pi/2, c.Phi(), epsilon)

	c = NewCamera(WithPhi(-3.0))
	assert.InDelta(t, -math32.Pi/2, c.Phi(), epsilon)
}

func TestPositionNormEqualsRadius(t *testing.T) {
	t.Parallel()

	for _, radius := range []float32{1, 12.5, 50, 400} {
		for _, theta := range []float32{0, 0.7, math32.Pi, -2.4, 9.1} {
			for _, phi := range []float32{0, 0.4, -1.2, math32.Pi / 2, -math32.Pi / 2} {
				c := NewCamera(WithRadius(radius), WithTheta(theta), WithPhi(phi))
				assert.InDelta(t, radius, c.Position().Len(), float64(epsilon*radius),
					"radius=%v theta=%v phi=%v", radius, theta, phi)
			}
		}
	}
}

func TestBasisVectorsOrthonormal(t *testing.T) {
	t.Parallel()

	states := []struct{ theta, phi float32 }{
		{0, 0},
		{0.5, 0.25},
		{-1.3, -0.9},
		{math32.Pi, 1.2},
		{4.8, -1.5},
		{2.2, math32.Pi / 2},  // pole: fallback right vector
		{2.2, -math32.Pi / 2}, // pole: fallback right vector
	}

	for _, st := range states {
		c := NewCamera(WithTheta(st.theta), WithPhi(st.phi))
		forward, right, up, err := c.BasisVectors()
		require.NoError(t, err, "theta=%v phi=%v", st.theta, st.phi)

		assert.InDelta(t, 1.0, forward.Len(), epsilon)
		assert.InDelta(t, 1.0, right.Len(), epsilon)
		assert.InDelta(t, 1.0, up.Len(), epsilon)

		assert.InDelta(t, 0.0, forward.Dot(right), epsilon)
		assert.InDelta(t, 0.0, forward.Dot(up), epsilon)
		assert.InDelta(t, 0.0, right.Dot(up), epsilon)
	}
}

func TestBasisVectorsForwardLooksAtOrigin(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithTheta(0.8), WithPhi(0.3))
	forward, _, _, err := c.BasisVectors()
	require.NoError(t, err)

	want := c.Position().Mul(-1).Normalize()
	assert.InDelta(t, want.X(), forward.X(), epsilon)
	assert.InDelta(t, want.Y(), forward.Y(), epsilon)
	assert.InDelta(t, want.Z(), forward.Z(), epsilon)
}

func TestBasisVectorsPure(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithTheta(1.1), WithPhi(-0.6))

	f1, r1, u1, err := c.BasisVectors()
	require.NoError(t, err)
	f2, r2, u2, err := c.BasisVectors()
	require.NoError(t, err)

	// Recomputation from identical state must be bit-for-bit identical.
	assert.Equal(t, f1, f2)
	assert.Equal(t, r1, r2)
	assert.Equal(t, u1, u2)
}

func TestConsumeDirtyProtocol(t *testing.T) {
	t.Parallel()

	c := NewCamera()

	// A fresh camera is dirty so the first frame always renders.
	assert.True(t, c.ConsumeDirty())
	assert.False(t, c.ConsumeDirty())

	drag(c, 10, 0)
	assert.True(t, c.ConsumeDirty())
	assert.False(t, c.ConsumeDirty())
}

func TestDragScenario(t *testing.T) {
	t.Parallel()

	c := NewCamera()

	c.HandleEvent(ButtonDownEvent{Button: MouseButtonPrimary})
	assert.True(t, c.Dragging())

	c.HandleEvent(MotionEvent{DX: 100, DY: 0})
	assert.InDelta(t, 0.5, c.Theta(), epsilon)
	assert.Zero(t, c.Phi())

	c.HandleEvent(ButtonUpEvent{Button: MouseButtonPrimary})
	assert.False(t, c.Dragging())

	// Motion after release has no effect.
	theta := c.Theta()
	c.HandleEvent(MotionEvent{DX: 500, DY: 500})
	assert.Equal(t, theta, c.Theta())
	assert.Zero(t, c.Phi())
}

func TestMotionWithoutDragIsIgnored(t *testing.T) {
	t.Parallel()

	c := NewCamera()
	c.ConsumeDirty() // clear construction dirtiness

	c.HandleEvent(MotionEvent{DX: 42, DY: -17})

	assert.Zero(t, c.Theta())
	assert.Zero(t, c.Phi())
	assert.False(t, c.ConsumeDirty())
}

func TestNonPrimaryButtonsAreIgnored(t *testing.T) {
	t.Parallel()

	c := NewCamera()
	c.ConsumeDirty()

	c.HandleEvent(ButtonDownEvent{Button: MouseButtonMiddle})
	assert.False(t, c.Dragging())

	c.HandleEvent(MotionEvent{DX: 100, DY: 100})
	assert.Zero(t, c.Theta())
	assert.False(t, c.ConsumeDirty())

	// Releasing a non-primary button must not end a primary drag.
	c.HandleEvent(ButtonDownEvent{Button: MouseButtonPrimary})
	c.HandleEvent(ButtonUpEvent{Button: MouseButtonSecondary})
	assert.True(t, c.Dragging())
}

func TestPhiClampUnderRepeatedDrag(t *testing.T) {
	t.Parallel()

	t.Run("upward motion clamps at +pi/2", func(t *testing.T) {
		t.Parallel()
		c := NewCamera()
		c.HandleEvent(ButtonDownEvent{Button: MouseButtonPrimary})
		for i := 0; i < 20; i++ {
			c.HandleEvent(MotionEvent{DX: 0, DY: -100})
		}
		assert.Equal(t, float32(math32.Pi/2), c.Phi())
	})

	t.Run("downward motion clamps at -pi/2", func(t *testing.T) {
		t.Parallel()
		c := NewCamera()
		c.HandleEvent(ButtonDownEvent{Button: MouseButtonPrimary})
		for i := 0; i < 20; i++ {
			c.HandleEvent(MotionEvent{DX: 0, DY: 100})
		}
		assert.Equal(t, float32(-math32.Pi/2), c.Phi())
	})
}

func TestRayDirectionCenterPixelEqualsForward(t *testing.T) {
	t.Parallel()

	// Odd dimensions put an exact pixel center on the optical axis; the
	// result must match forward regardless of the field of view.
	for _, fov := range []float32{0.3, 50.0 * math32.Pi / 180.0, 1.9} {
		c := NewCamera(WithTheta(0.9), WithPhi(-0.4), WithFov(fov))

		const imgW, imgH = 101, 51
		dir, err := c.RayDirection((imgW-1)/2.0, (imgH-1)/2.0, imgW, imgH)
		require.NoError(t, err)

		forward, _, _, err := c.BasisVectors()
		require.NoError(t, err)

		assert.InDelta(t, forward.X(), dir.X(), epsilon, "fov=%v", fov)
		assert.InDelta(t, forward.Y(), dir.Y(), epsilon, "fov=%v", fov)
		assert.InDelta(t, forward.Z(), dir.Z(), epsilon, "fov=%v", fov)
	}
}

func TestRayDirectionUnitLength(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithTheta(2.1), WithPhi(0.7))

	const imgW, imgH = 320, 240
	for _, px := range []float32{0, 17.25, 159.5, 319} {
		for _, py := range []float32{0, 42.75, 119.5, 239} {
			dir, err := c.RayDirection(px, py, imgW, imgH)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, dir.Len(), epsilon, "px=%v py=%v", px, py)
		}
	}
}

func TestRayDirectionImageCorners(t *testing.T) {
	t.Parallel()

	c := NewCamera()
	forward, right, up, err := c.BasisVectors()
	require.NoError(t, err)

	const imgW, imgH = 200, 100

	// Top-left corner pixel: left of and above the optical axis.
	dir, err := c.RayDirection(0, 0, imgW, imgH)
	require.NoError(t, err)
	assert.Negative(t, dir.Dot(right))
	assert.Positive(t, dir.Dot(up))
	assert.Positive(t, dir.Dot(forward))

	// Bottom-right corner pixel: right of and below the optical axis.
	dir, err = c.RayDirection(imgW-1, imgH-1, imgW, imgH)
	require.NoError(t, err)
	assert.Positive(t, dir.Dot(right))
	assert.Negative(t, dir.Dot(up))
	assert.Positive(t, dir.Dot(forward))
}

func TestDegenerateGeometryFailsLoudly(t *testing.T) {
	t.Parallel()

	// The construction invariant keeps radius > 0; force a violation to
	// verify queries fail instead of emitting NaN vectors.
	c := NewCamera().(*cameraImpl)
	c.radius = 0

	_, _, _, err := c.BasisVectors()
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	_, err = c.RayDirection(10, 10, 64, 64)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestPoleBasisUsesContinuousLimit(t *testing.T) {
	t.Parallel()

	theta := float32(0.65)
	c := NewCamera(WithTheta(theta), WithPhi(math32.Pi/2))

	_, right, _, err := c.BasisVectors()
	require.NoError(t, err)

	want := mgl32.Vec3{-math32.Sin(theta), 0, math32.Cos(theta)}
	assert.InDelta(t, want.X(), right.X(), epsilon)
	assert.InDelta(t, want.Y(), right.Y(), epsilon)
	assert.InDelta(t, want.Z(), right.Z(), epsilon)
}

type unknownEvent struct{}

func (unknownEvent) isCameraEvent() {}

func TestUnknownEventIsNoOp(t *testing.T) {
	t.Parallel()

	c := NewCamera()
	c.ConsumeDirty()

	c.HandleEvent(unknownEvent{})

	assert.Zero(t, c.Theta())
	assert.Zero(t, c.Phi())
	assert.False(t, c.Dragging())
	assert.False(t, c.ConsumeDirty())
}

func TestUpdateIsInert(t *testing.T) {
	t.Parallel()

	c := NewCamera()
	c.ConsumeDirty()

	c.Update(0.016)
	c.Update(1.5)

	assert.Zero(t, c.Theta())
	assert.Zero(t, c.Phi())
	assert.False(t, c.ConsumeDirty())
}
