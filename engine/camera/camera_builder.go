package camera

import "github.com/Carmen-Shannon/chassis-go/common"

// CameraOption is a functional option for configuring a Camera.
type CameraOption func(*cameraImpl)

// WithFov sets the vertical field of view.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraOption: functional option to set the field of view
func WithFov(fov float32) CameraOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the aspect ratio.
//
// Parameters:
//   - aspect: width / height
//
// Returns:
//   - CameraOption: functional option to set the aspect ratio
func WithAspect(aspect float32) CameraOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraOption: functional option to set the near plane
func WithNear(near float32) CameraOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraOption: functional option to set the far plane
func WithFar(far float32) CameraOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraOption: functional option to set the up vector
func WithUp(up common.Vec3) CameraOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithController attaches a ChaseCamera at construction.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraOption: functional option to attach the controller
func WithController(ctrl ChaseCamera) CameraOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
