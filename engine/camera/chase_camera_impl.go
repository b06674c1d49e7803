package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/chassis-go/common"
	"github.com/Carmen-Shannon/chassis-go/vehicle"
)

// chaseCameraImpl is the single implementation of ChaseCamera. The smoothed
// camera location relaxes toward the raw mode target with first-order
// dynamics integrated by explicit Euler sub-steps, which is what produces the
// chase lag. Horizontal and vertical motion use separate gains so the camera
// settles faster in the plane than in height.
type chaseCameraImpl struct {
	mu *sync.Mutex

	body vehicle.Body

	initialized bool
	state       State

	// Initialization parameters
	anchor common.Vec3 // body-local anchor point
	dist   float32     // current chase distance (zoom-adjusted)
	height float32     // chase height above the anchor

	// Operator intent, accumulated by Zoom/Turn and consumed by Advance
	zoomIntent int
	turnIntent int

	// Continuous smoothing state
	loc        common.Vec3 // smoothed camera location
	target     common.Vec3 // look-at output
	angle      float32     // orbit angle offset from the heading
	followYaw  float32     // lagged heading yaw used by Follow
	trackPoint common.Vec3 // frozen camera point used by Track

	// Tuning
	maxSubstep    float32
	horizGain     float32
	vertGain      float32
	followYawGain float32
	zoomStep      float32
	turnStep      float32
	minDist       float32
}

var _ ChaseCamera = &chaseCameraImpl{}

// NewChaseCamera creates a chase camera tracking the given body. The camera
// is not usable until Initialize establishes the anchor and nominal
// distance/height.
//
// Parameters:
//   - body: the tracked body (must not be nil)
//   - options: functional options to tune the smoothing dynamics
//
// Returns:
//   - ChaseCamera: the newly created controller
func NewChaseCamera(body vehicle.Body, options ...ChaseCameraOption) ChaseCamera {
	if body == nil {
		panic("camera: NewChaseCamera requires a non-nil Body")
	}
	cc := &chaseCameraImpl{
		mu:   &sync.Mutex{},
		body: body,

		maxSubstep:    1e-3,
		horizGain:     5.0,
		vertGain:      2.5,
		followYawGain: 1.0,
		zoomStep:      0.5,
		turnStep:      float32(math.Pi / 12),
		minDist:       1.0,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *chaseCameraImpl) Initialize(anchor common.Vec3, dist, height float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if !anchor.Finite() || !finite(dist) || !finite(height) {
		panic("camera: Initialize called with non-finite parameters")
	}

	frame := cc.sampleFrame()

	cc.anchor = anchor
	cc.dist = max32(dist, cc.minDist)
	cc.height = height
	cc.angle = 0
	cc.zoomIntent = 0
	cc.turnIntent = 0
	cc.followYaw = headingYaw(frame)

	// Seed the smoothed state at the raw chase position so the outputs are
	// valid immediately, with no initial glide.
	anchorWorld := frame.TransformPoint(anchor)
	cc.loc = cc.rawChase(anchorWorld, cc.followYaw)
	cc.target = anchorWorld
	cc.trackPoint = cc.loc

	cc.initialized = true
}

func (cc *chaseCameraImpl) Advance(step float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.mustBeInitialized()
	if !finite(step) || step < 0 {
		panic(fmt.Sprintf("camera: Advance called with invalid step %v", step))
	}
	if step == 0 {
		return
	}

	// Sample the body once: the output of this call reflects the body state
	// at the start of the call.
	frame := cc.sampleFrame()
	driver := cc.body.DriverCoordsys()
	anchorWorld := frame.TransformPoint(cc.anchor)
	bodyYaw := headingYaw(frame)

	cc.consumeIntents(anchorWorld)

	// Exact-time integration: partition step into sub-steps no larger than
	// maxSubstep, accumulating until the full step is consumed with no
	// residual. Time bookkeeping is float64 so long steps do not drift.
	t := 0.0
	total := float64(step)
	for t < total {
		h := float64(cc.maxSubstep)
		if remaining := total - t; remaining < h {
			h = remaining
		}
		cc.integrate(float32(h), frame, driver, anchorWorld, bodyYaw)
		t += h
	}
}

// consumeIntents applies accumulated zoom/turn commands: one unit of intent
// is one discrete adjustment, then the intent resets. Caller must hold the
// mutex.
func (cc *chaseCameraImpl) consumeIntents(anchorWorld common.Vec3) {
	if cc.zoomIntent != 0 {
		cc.dist = max32(cc.dist-cc.zoomStep*float32(cc.zoomIntent), cc.minDist)
		cc.zoomIntent = 0
	}
	if cc.turnIntent != 0 {
		delta := cc.turnStep * float32(cc.turnIntent)
		if cc.state == Track {
			// Track orbits the frozen camera point around the anchor.
			rot := common.QuatFromAxisAngle(common.Vec3{0, 0, 1}, delta)
			offset := cc.trackPoint.Sub(anchorWorld)
			cc.trackPoint = anchorWorld.Add(rot.Rotate(offset))
		} else {
			cc.angle = common.WrapAngle(cc.angle + delta)
		}
		cc.turnIntent = 0
	}
}

// integrate advances the smoothing state by one sub-step h. Caller must hold
// the mutex.
func (cc *chaseCameraImpl) integrate(h float32, frame, driver common.Coordsys, anchorWorld common.Vec3, bodyYaw float32) {
	switch cc.state {
	case Inside:
		// Rigid attachment at the driver eye point, looking along the
		// heading. The smoothed state snaps so a later mode switch resumes
		// from here.
		eye := frame.TransformPoint(driver.Pos)
		forward := frame.Rot.Mul(driver.Rot).Rotate(common.Vec3{1, 0, 0})
		cc.loc = eye
		cc.target = eye.Add(forward)

	case Track:
		cc.relax(cc.trackPoint, h)
		cc.target = anchorWorld

	case Follow:
		// The heading used for the trailing offset lags the body yaw.
		cc.followYaw += common.WrapAngle(bodyYaw-cc.followYaw) * cc.followYawGain * h
		cc.followYaw = common.WrapAngle(cc.followYaw)
		cc.relax(cc.rawChase(anchorWorld, cc.followYaw), h)
		cc.target = anchorWorld

	default: // Chase
		cc.relax(cc.rawChase(anchorWorld, bodyYaw), h)
		cc.target = anchorWorld
	}
}

// relax blends the smoothed location toward the raw target over one sub-step,
// horizontal and vertical axes with their own gains.
func (cc *chaseCameraImpl) relax(raw common.Vec3, h float32) {
	cc.loc[0] += (raw[0] - cc.loc[0]) * cc.horizGain * h
	cc.loc[1] += (raw[1] - cc.loc[1]) * cc.horizGain * h
	cc.loc[2] += (raw[2] - cc.loc[2]) * cc.vertGain * h
}

// rawChase computes the unsmoothed camera position: dist behind the anchor
// along the given yaw (plus the orbit angle), at the chase height. Caller
// must hold the mutex.
func (cc *chaseCameraImpl) rawChase(anchorWorld common.Vec3, yaw float32) common.Vec3 {
	a := float64(yaw + cc.angle)
	dir := common.Vec3{float32(math.Cos(a)), float32(math.Sin(a)), 0}
	return anchorWorld.Sub(dir.Scale(cc.dist)).Add(common.Vec3{0, 0, cc.height})
}

// sampleFrame reads the body's world frame, panicking on non-finite values.
// Caller must hold the mutex.
func (cc *chaseCameraImpl) sampleFrame() common.Coordsys {
	frame := vehicle.Frame(cc.body)
	if !frame.Pos.Finite() || !frame.Rot.Finite() {
		panic("camera: tracked body frame is non-finite")
	}
	return frame
}

// headingYaw extracts the yaw of the body's forward (+X) axis projected onto
// the horizontal plane.
func headingYaw(frame common.Coordsys) float32 {
	h := frame.Rot.Rotate(common.Vec3{1, 0, 0})
	return float32(math.Atan2(float64(h[1]), float64(h[0])))
}

func (cc *chaseCameraImpl) Zoom(direction int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoomIntent += sign(direction)
}

func (cc *chaseCameraImpl) Turn(direction int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.turnIntent += sign(direction)
}

func (cc *chaseCameraImpl) SetState(state State) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if state < Chase || state > Inside {
		panic(fmt.Sprintf("camera: SetState called with undefined mode %d", state))
	}
	if state == Track && cc.state != Track {
		// Freeze the camera point where it is now; the target keeps
		// tracking the anchor.
		cc.trackPoint = cc.loc
	}
	if state == Follow && cc.state != Follow && cc.initialized {
		cc.followYaw = headingYaw(cc.sampleFrame())
	}
	cc.state = state
}

func (cc *chaseCameraImpl) State() State {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}

func (cc *chaseCameraImpl) StateName() string {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.String()
}

func (cc *chaseCameraImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.mustBeInitialized()
	return cc.loc[0], cc.loc[1], cc.loc[2]
}

func (cc *chaseCameraImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.mustBeInitialized()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *chaseCameraImpl) Distance() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dist
}

func (cc *chaseCameraImpl) Height() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.height
}

// mustBeInitialized panics if Initialize has not been called. Caller must
// hold the mutex.
func (cc *chaseCameraImpl) mustBeInitialized() {
	if !cc.initialized {
		panic("camera: chase camera used before Initialize")
	}
}

func finite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func sign(direction int) int {
	if direction < 0 {
		return -1
	}
	return 1
}
