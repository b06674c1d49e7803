package camera

// ChaseCameraOption is a functional option for configuring a ChaseCamera.
type ChaseCameraOption func(*chaseCameraImpl)

// WithMaxSubstep sets the maximum integration sub-step for the smoothing
// dynamics. Advance partitions its step into increments no larger than this.
//
// Parameters:
//   - substep: maximum sub-step in seconds (must be > 0 to take effect)
//
// Returns:
//   - ChaseCameraOption: functional option to set the sub-step bound
func WithMaxSubstep(substep float32) ChaseCameraOption {
	return func(cc *chaseCameraImpl) {
		if substep > 0 {
			cc.maxSubstep = substep
		}
	}
}

// WithHorizontalGain sets the relaxation gain for in-plane camera motion.
//
// Parameters:
//   - gain: relaxation rate in 1/s
//
// Returns:
//   - ChaseCameraOption: functional option to set the horizontal gain
func WithHorizontalGain(gain float32) ChaseCameraOption {
	return func(cc *chaseCameraImpl) {
		cc.horizGain = gain
	}
}

// WithVerticalGain sets the relaxation gain for vertical camera motion.
//
// Parameters:
//   - gain: relaxation rate in 1/s
//
// Returns:
//   - ChaseCameraOption: functional option to set the vertical gain
func WithVerticalGain(gain float32) ChaseCameraOption {
	return func(cc *chaseCameraImpl) {
		cc.vertGain = gain
	}
}

// WithFollowYawGain sets the heading lag gain used by Follow mode. Lower
// values give a looser angular coupling.
//
// Parameters:
//   - gain: yaw relaxation rate in 1/s
//
// Returns:
//   - ChaseCameraOption: functional option to set the follow yaw gain
func WithFollowYawGain(gain float32) ChaseCameraOption {
	return func(cc *chaseCameraImpl) {
		cc.followYawGain = gain
	}
}

// WithZoomStep sets the distance change applied per unit of zoom intent.
//
// Parameters:
//   - step: distance per zoom command in meters
//
// Returns:
//   - ChaseCameraOption: functional option to set the zoom step
func WithZoomStep(step float32) ChaseCameraOption {
	return func(cc *chaseCameraImpl) {
		cc.zoomStep = step
	}
}

// WithTurnStep sets the orbit angle change applied per unit of turn intent.
//
// Parameters:
//   - step: angle per turn command in radians
//
// Returns:
//   - ChaseCameraOption: functional option to set the turn step
func WithTurnStep(step float32) ChaseCameraOption {
	return func(cc *chaseCameraImpl) {
		cc.turnStep = step
	}
}

// WithMinDistance sets the minimum chase distance the camera can zoom in to,
// keeping it from crossing the tracked body.
//
// Parameters:
//   - dist: minimum distance in meters
//
// Returns:
//   - ChaseCameraOption: functional option to set the minimum distance
func WithMinDistance(dist float32) ChaseCameraOption {
	return func(cc *chaseCameraImpl) {
		cc.minDist = dist
	}
}
