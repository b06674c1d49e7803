package camera

import "github.com/Carmen-Shannon/chassis-go/common"

// State identifies the active chase-camera tracking mode. Exactly one mode is
// active at any time; the set is closed.
type State int

const (
	// Chase trails the body at the chase distance along its heading, at the
	// chase height, looking at the anchor point.
	Chase State = iota

	// Follow trails the body like Chase but with yaw lag relative to the
	// heading, giving a more inertial feel.
	Follow

	// Track holds the camera at a fixed world point (frozen when the mode is
	// entered) and keeps the anchor centered. Turn commands orbit the point
	// around the anchor.
	Track

	// Inside rigidly attaches the camera to the body's driver eye frame,
	// looking forward along the heading. No smoothing lag.
	Inside
)

// String returns the human-readable mode label used by the HUD.
func (s State) String() string {
	switch s {
	case Chase:
		return "Chase"
	case Follow:
		return "Follow"
	case Track:
		return "Track"
	case Inside:
		return "Inside"
	default:
		return "Unknown"
	}
}

// ChaseCamera tracks a moving rigid body and produces a camera position and
// look-at target every simulation step. It owns the discrete mode state
// machine and the continuous smoothing dynamics; the renderer consumes its
// Position/Target outputs once per frame.
//
// The controller is synchronous and assumes exclusive access during each
// call: Advance must never run concurrently with itself or with
// Initialize/SetState/Zoom/Turn without external synchronization. Internal
// locking only guards the Position/Target reads performed by the render
// goroutine.
//
// Initialize must be called before Advance, Position, or Target; violating
// this precondition panics, as do non-finite steps or body frames. A bad
// camera frame is visually obvious and hard to debug, so these programmer
// errors fail fast instead of producing garbage positions.
type ChaseCamera interface {
	// Initialize establishes the chassis anchor point, nominal chase
	// distance and height, and resets all smoothing state. The camera
	// position and target are valid immediately after it returns.
	//
	// Parameters:
	//   - anchor: the tracked point in body-local coordinates
	//   - dist: nominal chase distance in meters (clamped to the minimum)
	//   - height: chase height above the anchor in meters
	Initialize(anchor common.Vec3, dist, height float32)

	// Advance integrates the camera dynamics by step seconds, sub-stepping
	// internally so the smoothing is framerate-independent. The body frame
	// is sampled once at the start of the call. A zero step is a no-op.
	//
	// Parameters:
	//   - step: elapsed time in seconds (must be finite and >= 0)
	Advance(step float32)

	// Zoom accumulates one unit of zoom intent, consumed by the next
	// Advance. Direction +1 zooms in (decreases the chase distance, clamped
	// to the minimum), -1 zooms out.
	//
	// Parameters:
	//   - direction: +1 to zoom in, -1 to zoom out
	Zoom(direction int)

	// Turn accumulates one unit of orbit intent, consumed by the next
	// Advance. Direction +1 orbits left, -1 right; the orbit angle wraps at
	// a full rotation.
	//
	// Parameters:
	//   - direction: +1 to orbit left, -1 to orbit right
	Turn(direction int)

	// SetState switches the tracking mode immediately. Switching modes
	// changes behavior, not the smoothed camera state, so the transition
	// glides rather than jumps (Inside excepted: it rigidly redefines the
	// camera point). Panics on a value outside the defined mode set.
	//
	// Parameters:
	//   - state: the mode to activate
	SetState(state State)

	// State returns the active tracking mode.
	//
	// Returns:
	//   - State: the active mode
	State() State

	// StateName returns the human-readable label of the active mode.
	//
	// Returns:
	//   - string: the mode label
	StateName() string

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// Distance returns the current chase distance after zoom adjustments.
	//
	// Returns:
	//   - float32: chase distance in meters
	Distance() float32

	// Height returns the chase height set at initialization.
	//
	// Returns:
	//   - float32: chase height in meters
	Height() float32
}
