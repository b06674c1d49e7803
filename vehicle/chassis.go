package vehicle

import (
	"sync"

	"github.com/Carmen-Shannon/chassis-go/common"
)

// chassisImpl is a kinematic chassis driven by explicit Advance calls.
// It stands in for a full physics solver in the examples and tests: the
// chassis follows a commanded forward speed and yaw rate on the Z=elevation
// plane. Thread-safe; the engine tick goroutine advances it while the render
// goroutine reads its frame.
type chassisImpl struct {
	mu *sync.Mutex

	pos common.Vec3
	yaw float32

	speed   float32
	yawRate float32

	driver common.Coordsys
}

// Chassis is a self-propelled kinematic Body for demos and tests.
type Chassis interface {
	Body

	// SetSpeed sets the commanded forward speed.
	//
	// Parameters:
	//   - speed: forward speed in m/s (negative reverses)
	SetSpeed(speed float32)

	// SetYawRate sets the commanded yaw rate.
	//
	// Parameters:
	//   - rate: yaw rate in rad/s (positive turns left)
	SetYawRate(rate float32)

	// Advance integrates the chassis motion by step seconds.
	//
	// Parameters:
	//   - step: elapsed time in seconds
	Advance(step float32)
}

var _ Chassis = &chassisImpl{}

// NewChassis creates a kinematic chassis at the world origin facing +X.
//
// Parameters:
//   - options: functional options to configure the chassis
//
// Returns:
//   - Chassis: the newly created chassis
func NewChassis(options ...ChassisOption) Chassis {
	c := &chassisImpl{
		mu: &sync.Mutex{},
		driver: common.Coordsys{
			Pos: common.Vec3{0.2, 0.4, 1.1},
			Rot: common.QuatIdentity(),
		},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *chassisImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

func (c *chassisImpl) Rotation() common.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.QuatFromAxisAngle(common.Vec3{0, 0, 1}, c.yaw)
}

func (c *chassisImpl) DriverCoordsys() common.Coordsys {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.driver
}

func (c *chassisImpl) Speed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *chassisImpl) SetSpeed(speed float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
}

func (c *chassisImpl) SetYawRate(rate float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yawRate = rate
}

func (c *chassisImpl) Advance(step float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.yaw = common.WrapAngle(c.yaw + c.yawRate*step)
	heading := common.QuatFromAxisAngle(common.Vec3{0, 0, 1}, c.yaw).Rotate(common.Vec3{1, 0, 0})
	c.pos = c.pos.Add(heading.Scale(c.speed * step))
}

// ChassisOption is a functional option for configuring a Chassis.
type ChassisOption func(*chassisImpl)

// WithChassisPosition sets the initial chassis position.
//
// Parameters:
//   - pos: world-space starting position
//
// Returns:
//   - ChassisOption: functional option to set the position
func WithChassisPosition(pos common.Vec3) ChassisOption {
	return func(c *chassisImpl) {
		c.pos = pos
	}
}

// WithChassisYaw sets the initial heading angle about the vertical axis.
//
// Parameters:
//   - yaw: heading in radians (0 = +X)
//
// Returns:
//   - ChassisOption: functional option to set the yaw
func WithChassisYaw(yaw float32) ChassisOption {
	return func(c *chassisImpl) {
		c.yaw = yaw
	}
}

// WithDriverCoordsys sets the body-local driver eye frame.
//
// Parameters:
//   - cs: driver eye position and orientation in chassis coordinates
//
// Returns:
//   - ChassisOption: functional option to set the driver frame
func WithDriverCoordsys(cs common.Coordsys) ChassisOption {
	return func(c *chassisImpl) {
		c.driver = cs
	}
}
