package camera

// CameraBuilderOption is a functional option for configuring a Camera.
// Use the With* functions to create options that are applied to the camera
// instance during NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithRadius sets the distance from the orbit origin to the camera.
// Must be positive; NewCamera panics otherwise.
//
// Parameters:
//   - radius: distance from the orbit origin
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithRadius(radius float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.radius = radius
	}
}

// WithTheta sets the initial azimuthal angle.
//
// Parameters:
//   - theta: azimuth in radians (0 = +X axis)
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithTheta(theta float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.theta = theta
	}
}

// WithPhi sets the initial elevation angle. Values outside [-pi/2, pi/2]
// are clamped during NewCamera.
//
// Parameters:
//   - phi: elevation in radians (0 = equatorial plane)
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithPhi(phi float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.phi = phi
	}
}

// WithFov sets the vertical field of view used by ray projection.
// Fixed for the camera's lifetime; must be positive.
//
// Parameters:
//   - fov: vertical field of view in radians
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithMouseSensitivity sets the pointer-drag sensitivity.
// Must be positive.
//
// Parameters:
//   - sensitivity: radians of rotation per pixel of pointer motion
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithMouseSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sensitivity = sensitivity
	}
}
