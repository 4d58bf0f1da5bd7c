package camera

import (
	"errors"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateGeometry is returned by basis and ray queries when the camera
// position coincides with the orbit origin, leaving the view direction
// undefined. It cannot occur while the positive-radius construction invariant
// holds; queries fail loudly rather than returning NaN vectors if it is ever
// violated.
var ErrDegenerateGeometry = errors.New("camera: position coincides with orbit origin")

const (
	defaultRadius      = 50.0
	defaultFov         = 50.0 * math32.Pi / 180.0
	defaultSensitivity = 0.005

	// originEpsilon is the position norm below which the orbit geometry is
	// treated as degenerate.
	originEpsilon = 1e-6

	// poleEpsilon is the worldUp x forward cross-product norm below which the
	// camera is considered to be looking straight along the world Y axis.
	poleEpsilon = 1e-6
)

// worldUp is the fixed world up axis the orbit frame is built against.
var worldUp = mgl32.Vec3{0, 1, 0}

type cameraImpl struct {
	mu *sync.RWMutex

	// Spherical coordinates around the orbit origin.
	radius float32
	theta  float32
	phi    float32

	fov         float32
	sensitivity float32

	dragging bool
	dirty    bool
}

// Camera is an orbit-style viewpoint around a fixed origin. It ingests
// pointer events to change orientation, exposes its position and orthonormal
// basis as pure functions of the stored spherical coordinates, and maps
// pixels to world-space ray directions for ray-based renderers.
//
// Queries (Position, BasisVectors, RayDirection and the accessors) never
// mutate state and may be called concurrently; HandleEvent and ConsumeDirty
// mutate and belong on the input/update thread.
type Camera interface {
	// HandleEvent applies a pointer event to the camera.
	// A primary-button press begins a drag, a primary-button release ends it,
	// and motion during a drag rotates the view: theta advances with the
	// horizontal delta and phi with the inverted vertical delta, clamped to
	// [-pi/2, pi/2]. All other events are no-ops; HandleEvent never fails.
	//
	// Parameters:
	//   - ev: the pointer event to apply
	HandleEvent(ev Event)

	// Update is the per-frame time-step hook. It currently performs no state
	// change and exists as a stable extension point for time-based motion
	// such as inertia or auto-rotation.
	//
	// Parameters:
	//   - dt: elapsed time since the previous frame in seconds
	Update(dt float32)

	// Position returns the camera's Cartesian position, recomputed from the
	// stored spherical coordinates on every call.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// BasisVectors returns the camera's orthonormal orientation frame,
	// recomputed fresh on every call. Forward points from the camera toward
	// the orbit origin, right is derived against the world up axis (0,1,0),
	// and up completes the frame. At phi = ±pi/2 exactly the right vector
	// takes its continuous limit instead of degenerating.
	//
	// Returns:
	//   - forward, right, up: mutually orthogonal unit vectors
	//   - error: ErrDegenerateGeometry if the position norm underflows
	BasisVectors() (forward, right, up mgl32.Vec3, err error)

	// RayDirection returns the unit world-space direction of the ray from the
	// camera through pixel (px, py) of an imgW x imgH image, using the
	// pixel-center convention (px, py may be fractional for sub-pixel
	// sampling). Callers must guarantee imgW > 0 and imgH > 0; a zero-area
	// image is a contract violation, not a handled error.
	//
	// Parameters:
	//   - px, py: pixel coordinates, row 0 at the top of the image
	//   - imgW, imgH: image dimensions in pixels
	//
	// Returns:
	//   - mgl32.Vec3: unit ray direction in world space
	//   - error: ErrDegenerateGeometry if the orientation frame is undefined
	RayDirection(px, py float32, imgW, imgH int) (mgl32.Vec3, error)

	// ConsumeDirty reports whether the orientation has changed since the
	// previous call and clears the flag. A freshly constructed camera reports
	// true once, so the first frame always renders. This is a consume-once
	// read intended for a single renderer's re-render check.
	//
	// Returns:
	//   - bool: true if the orientation changed since the last consume
	ConsumeDirty() bool

	// Radius returns the distance from the orbit origin to the camera.
	//
	// Returns:
	//   - float32: the orbit radius (always > 0)
	Radius() float32

	// Theta returns the azimuthal angle in radians. Unbounded; wraps
	// naturally through the trigonometric functions.
	//
	// Returns:
	//   - float32: the azimuth in radians
	Theta() float32

	// Phi returns the elevation angle in radians, always in [-pi/2, pi/2].
	//
	// Returns:
	//   - float32: the elevation in radians
	Phi() float32

	// Fov returns the vertical field of view in radians, fixed at
	// construction.
	//
	// Returns:
	//   - float32: vertical field of view in radians
	Fov() float32

	// MouseSensitivity returns the pixel-delta to angle-delta scale factor.
	//
	// Returns:
	//   - float32: radians of rotation per pixel of pointer motion
	MouseSensitivity() float32

	// Dragging reports whether a primary-button drag is in progress.
	//
	// Returns:
	//   - bool: true while the primary button is held down
	Dragging() bool
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new orbit Camera with the reference defaults
// (radius 50, theta 0, phi 0, 50° vertical fov, sensitivity 0.005) and then
// applies the provided options. The dirty flag starts set so the first
// ConsumeDirty read reports a change.
//
// NewCamera panics if an option leaves the radius, field of view, or
// sensitivity non-positive; these invariants back every later query.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.RWMutex{},
		radius:      defaultRadius,
		theta:       0,
		phi:         0,
		fov:         defaultFov,
		sensitivity: defaultSensitivity,
		dirty:       true,
	}
	for _, option := range options {
		option(c)
	}
	if c.radius <= 0 {
		panic("camera: NewCamera requires a positive orbit radius")
	}
	if c.fov <= 0 {
		panic("camera: NewCamera requires a positive field of view")
	}
	if c.sensitivity <= 0 {
		panic("camera: NewCamera requires a positive mouse sensitivity")
	}
	c.phi = mgl32.Clamp(c.phi, -math32.Pi/2, math32.Pi/2)
	return c
}

func (c *cameraImpl) HandleEvent(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := ev.(type) {
	case ButtonDownEvent:
		if e.Button == MouseButtonPrimary {
			c.dragging = true
		}
	case ButtonUpEvent:
		if e.Button == MouseButtonPrimary {
			c.dragging = false
		}
	case MotionEvent:
		if !c.dragging {
			return
		}
		c.theta += e.DX * c.sensitivity
		// Vertical delta is inverted so moving the pointer up tilts the view up.
		c.phi = mgl32.Clamp(c.phi-e.DY*c.sensitivity, -math32.Pi/2, math32.Pi/2)
		c.dirty = true
	}
}

func (c *cameraImpl) Update(_ float32) {
	// Reserved for time-based motion (inertia, auto-rotate).
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position()
}

func (c *cameraImpl) BasisVectors() (forward, right, up mgl32.Vec3, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.basisVectors()
}

func (c *cameraImpl) RayDirection(px, py float32, imgW, imgH int) (mgl32.Vec3, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	forward, right, up, err := c.basisVectors()
	if err != nil {
		return mgl32.Vec3{}, err
	}

	// Pixel-center convention: +0.5 aims through the middle of the pixel.
	// Y is flipped so image row 0 maps to the top of the view.
	xNdc := ((px+0.5)/float32(imgW))*2 - 1
	yNdc := 1 - ((py+0.5)/float32(imgH))*2

	aspect := float32(imgW) / float32(imgH)
	tanHalfFov := math32.Tan(c.fov / 2)

	xCam := xNdc * aspect * tanHalfFov
	yCam := yNdc * tanHalfFov

	dir := right.Mul(xCam).Add(up.Mul(yCam)).Add(forward)
	return dir.Normalize(), nil
}

func (c *cameraImpl) ConsumeDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.dirty
	c.dirty = false
	return was
}

func (c *cameraImpl) Radius() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.radius
}

func (c *cameraImpl) Theta() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theta
}

func (c *cameraImpl) Phi() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phi
}

func (c *cameraImpl) Fov() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fov
}

func (c *cameraImpl) MouseSensitivity() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sensitivity
}

func (c *cameraImpl) Dragging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dragging
}

// position converts the stored spherical coordinates to Cartesian, with phi
// measured as elevation from the equatorial plane and theta as azimuth.
// Caller must hold the mutex.
func (c *cameraImpl) position() mgl32.Vec3 {
	cosPhi := math32.Cos(c.phi)
	return mgl32.Vec3{
		c.radius * cosPhi * math32.Cos(c.theta),
		c.radius * math32.Sin(c.phi),
		c.radius * cosPhi * math32.Sin(c.theta),
	}
}

// basisVectors derives the orthonormal {forward, right, up} frame from the
// current position. Forward looks at the orbit origin; right is built against
// worldUp. When forward is parallel to worldUp (phi clamped to exactly ±pi/2)
// the cross product collapses, so right falls back to its continuous limit
// (-sin theta, 0, cos theta), which keeps the frame orthonormal and matches
// the value right converges to as phi approaches the pole.
// Caller must hold the mutex.
func (c *cameraImpl) basisVectors() (forward, right, up mgl32.Vec3, err error) {
	pos := c.position()
	length := pos.Len()
	if length < originEpsilon {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, ErrDegenerateGeometry
	}
	forward = pos.Mul(-1 / length)

	right = worldUp.Cross(forward)
	if rightLen := right.Len(); rightLen < poleEpsilon {
		right = mgl32.Vec3{-math32.Sin(c.theta), 0, math32.Cos(c.theta)}
	} else {
		right = right.Mul(1 / rightLen)
	}

	// forward and right are orthogonal unit vectors, so up is already unit.
	up = forward.Cross(right)
	return forward, right, up, nil
}
