// package vehicle defines the contracts the visualization engine needs from a
// simulated vehicle: a tracked rigid body for the chase camera, powertrain
// telemetry for the HUD, and the renderable suspension links. The physics
// solver itself lives outside this module; anything satisfying these
// interfaces can be visualized.
package vehicle

import "github.com/Carmen-Shannon/chassis-go/common"

// Body is the tracked rigid body (a vehicle chassis) the chase camera
// follows. Implementations are queried once per camera advance and are never
// mutated by the engine.
type Body interface {
	// Position returns the chassis reference-frame origin in world space.
	//
	// Returns:
	//   - common.Vec3: world-space position
	Position() common.Vec3

	// Rotation returns the chassis orientation as a unit quaternion. A body
	// with identity rotation faces +X with +Z up.
	//
	// Returns:
	//   - common.Quat: world-frame orientation
	Rotation() common.Quat

	// DriverCoordsys returns the driver eye frame in chassis-local
	// coordinates, used by the inside camera mode.
	//
	// Returns:
	//   - common.Coordsys: body-local driver eye position and orientation
	DriverCoordsys() common.Coordsys

	// Speed returns the forward speed in m/s, used by the HUD speed gauge.
	//
	// Returns:
	//   - float32: forward speed in m/s
	Speed() float32
}

// Frame returns the body's world coordsys (position + rotation) sampled as a
// single unit.
//
// Parameters:
//   - b: the body to sample
//
// Returns:
//   - common.Coordsys: the body's world frame
func Frame(b Body) common.Coordsys {
	return common.Coordsys{Pos: b.Position(), Rot: b.Rotation()}
}
