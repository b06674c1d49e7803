package vehicle

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/chassis-go/common"
)

func TestChassisAdvanceStraight(t *testing.T) {
	c := NewChassis()
	c.SetSpeed(10)
	for i := 0; i < 100; i++ {
		c.Advance(0.01)
	}

	pos := c.Position()
	if math.Abs(float64(pos[0]-10)) > 1e-3 || math.Abs(float64(pos[1])) > 1e-3 {
		t.Fatalf("position = %v, want ~(10, 0, 0)", pos)
	}
	if c.Speed() != 10 {
		t.Fatalf("speed = %v, want 10", c.Speed())
	}
}

func TestChassisTurning(t *testing.T) {
	c := NewChassis()
	c.SetSpeed(5)
	c.SetYawRate(float32(math.Pi / 2)) // quarter turn per second
	for i := 0; i < 100; i++ {
		c.Advance(0.01)
	}

	// After one second the chassis faces +Y.
	heading := c.Rotation().Rotate(common.Vec3{1, 0, 0})
	if math.Abs(float64(heading[0])) > 1e-2 || math.Abs(float64(heading[1]-1)) > 1e-2 {
		t.Fatalf("heading = %v, want ~(0, 1, 0)", heading)
	}
}

func TestChassisOptions(t *testing.T) {
	driver := common.Coordsys{Pos: common.Vec3{0.5, 0, 1.2}, Rot: common.QuatIdentity()}
	c := NewChassis(
		WithChassisPosition(common.Vec3{1, 2, 3}),
		WithChassisYaw(float32(math.Pi)),
		WithDriverCoordsys(driver),
	)

	if c.Position() != (common.Vec3{1, 2, 3}) {
		t.Fatalf("position = %v", c.Position())
	}
	if c.DriverCoordsys() != driver {
		t.Fatalf("driver coordsys = %v", c.DriverCoordsys())
	}
	heading := c.Rotation().Rotate(common.Vec3{1, 0, 0})
	if math.Abs(float64(heading[0]+1)) > 1e-5 {
		t.Fatalf("heading = %v, want ~(-1, 0, 0)", heading)
	}
}

func TestFrameSamplesBody(t *testing.T) {
	c := NewChassis(WithChassisPosition(common.Vec3{4, 5, 6}))
	frame := Frame(c)
	if frame.Pos != (common.Vec3{4, 5, 6}) {
		t.Fatalf("frame pos = %v", frame.Pos)
	}
	p := frame.TransformPoint(common.Vec3{1, 0, 0})
	if p != (common.Vec3{5, 5, 6}) {
		t.Fatalf("transformed point = %v", p)
	}
}

func TestDemoPowertrainModes(t *testing.T) {
	c := NewChassis()
	p := NewDemoPowertrain(c, false)

	if p.Mode() != DriveNeutral || p.Gear() != 0 {
		t.Fatalf("at rest: mode %v gear %d", p.Mode(), p.Gear())
	}

	c.SetSpeed(20)
	if p.Mode() != DriveForward {
		t.Fatalf("forward: mode %v", p.Mode())
	}
	if p.Gear() < 1 || p.Gear() > 4 {
		t.Fatalf("gear %d out of range", p.Gear())
	}
	if p.MotorSpeed() <= 0 {
		t.Fatalf("motor speed %v, want > 0", p.MotorSpeed())
	}

	c.SetSpeed(-3)
	if p.Mode() != DriveReverse {
		t.Fatalf("reverse: mode %v", p.Mode())
	}
}

func TestDemoPowertrainWheelTorques(t *testing.T) {
	c := NewChassis()
	c.SetSpeed(15)

	two := NewDemoPowertrain(c, false)
	if n := len(two.WheelTorques()); n != 2 {
		t.Fatalf("2WD torque count = %d", n)
	}
	four := NewDemoPowertrain(c, true)
	torques := four.WheelTorques()
	if len(torques) != 4 {
		t.Fatalf("4WD torque count = %d", len(torques))
	}
	sum := float32(0)
	for _, q := range torques {
		sum += q
	}
	if math.Abs(float64(sum-four.TorqueConverterOutputTorque())) > 1e-3 {
		t.Fatalf("wheel torques %v do not sum to converter output %v", sum, four.TorqueConverterOutputTorque())
	}
}
