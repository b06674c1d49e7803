package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/chassis-go/common"
	"github.com/Carmen-Shannon/chassis-go/vehicle"
)

// stubBody is a scriptable tracked body for controller tests.
type stubBody struct {
	pos    common.Vec3
	rot    common.Quat
	driver common.Coordsys
	speed  float32
}

func newStubBody() *stubBody {
	return &stubBody{
		rot: common.QuatIdentity(),
		driver: common.Coordsys{
			Pos: common.Vec3{0.2, 0.4, 1.1},
			Rot: common.QuatIdentity(),
		},
	}
}

func (b *stubBody) Position() common.Vec3           { return b.pos }
func (b *stubBody) Rotation() common.Quat           { return b.rot }
func (b *stubBody) DriverCoordsys() common.Coordsys { return b.driver }
func (b *stubBody) Speed() float32                  { return b.speed }

func vecNear(t *testing.T, got common.Vec3, want common.Vec3, tol float32, msg string) {
	t.Helper()
	if got.Sub(want).Len() > tol {
		t.Fatalf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func cameraPos(cc ChaseCamera) common.Vec3 {
	x, y, z := cc.Position()
	return common.Vec3{x, y, z}
}

func cameraTarget(cc ChaseCamera) common.Vec3 {
	x, y, z := cc.Target()
	return common.Vec3{x, y, z}
}

func newInitializedCamera(body vehicle.Body, options ...ChaseCameraOption) ChaseCamera {
	cc := NewChaseCamera(body, options...)
	cc.Initialize(common.Vec3{0, 0, 1}, 6.0, 0.5)
	return cc
}

func TestNewChaseCameraNilBodyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil body")
		}
	}()
	NewChaseCamera(nil)
}

func TestAdvanceBeforeInitializePanics(t *testing.T) {
	cc := NewChaseCamera(newStubBody())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for Advance before Initialize")
		}
	}()
	cc.Advance(0.1)
}

func TestPositionBeforeInitializePanics(t *testing.T) {
	cc := NewChaseCamera(newStubBody())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for Position before Initialize")
		}
	}()
	cc.Position()
}

func TestNonFiniteStepPanics(t *testing.T) {
	cc := newInitializedCamera(newStubBody())
	for _, step := range []float32{float32(math.NaN()), float32(math.Inf(1)), -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for step %v", step)
				}
			}()
			cc.Advance(step)
		}()
	}
}

func TestNonFiniteBodyFramePanics(t *testing.T) {
	body := newStubBody()
	cc := newInitializedCamera(body)
	body.pos[0] = float32(math.NaN())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-finite body frame")
		}
	}()
	cc.Advance(0.1)
}

func TestInitializeSeedsValidOutputs(t *testing.T) {
	cc := newInitializedCamera(newStubBody())
	vecNear(t, cameraPos(cc), common.Vec3{-6, 0, 1.5}, 1e-5, "initial position")
	vecNear(t, cameraTarget(cc), common.Vec3{0, 0, 1}, 1e-5, "initial target")
}

func TestZeroStepIsNoOp(t *testing.T) {
	body := newStubBody()
	cc := newInitializedCamera(body)
	before := cameraPos(cc)
	body.pos = common.Vec3{10, 0, 0}
	cc.Advance(0)
	vecNear(t, cameraPos(cc), before, 0, "position after zero step")
}

func TestDeterminism(t *testing.T) {
	run := func() []common.Vec3 {
		body := newStubBody()
		cc := newInitializedCamera(body)
		var trajectory []common.Vec3
		for i := 0; i < 50; i++ {
			body.pos = common.Vec3{float32(i) * 0.3, float32(i) * 0.1, 0}
			body.rot = common.QuatFromAxisAngle(common.Vec3{0, 0, 1}, float32(i)*0.02)
			cc.Advance(0.02)
			trajectory = append(trajectory, cameraPos(cc))
		}
		return trajectory
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trajectories diverge at step %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSubstepExactness(t *testing.T) {
	body := newStubBody()
	one := newInitializedCamera(body)
	ten := newInitializedCamera(body)

	// Perturb both away from the raw target so there is smoothing motion.
	one.Turn(1)
	ten.Turn(1)

	one.Advance(1.0)
	for i := 0; i < 10; i++ {
		ten.Advance(0.1)
	}

	vecNear(t, cameraPos(one), cameraPos(ten), 1e-3, "sub-step partition")
}

func TestModeClosure(t *testing.T) {
	cc := newInitializedCamera(newStubBody())

	sequence := []struct {
		state State
		name  string
	}{
		{Follow, "Follow"},
		{Track, "Track"},
		{Inside, "Inside"},
		{Chase, "Chase"},
		{Track, "Track"},
	}
	for _, step := range sequence {
		cc.SetState(step.state)
		if cc.State() != step.state {
			t.Fatalf("State() = %v, want %v", cc.State(), step.state)
		}
		if cc.StateName() != step.name {
			t.Fatalf("StateName() = %q, want %q", cc.StateName(), step.name)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for undefined mode")
		}
	}()
	cc.SetState(State(42))
}

func TestZoomMonotonicityAndClamping(t *testing.T) {
	cc := newInitializedCamera(newStubBody(), WithMinDistance(2.0))

	// Zooming out strictly increases the distance.
	prev := cc.Distance()
	for i := 0; i < 10; i++ {
		cc.Zoom(-1)
		cc.Advance(0.01)
		if cc.Distance() <= prev {
			t.Fatalf("zoom out did not increase distance: %v -> %v", prev, cc.Distance())
		}
		prev = cc.Distance()
	}

	// Zooming in decreases it but never below the minimum.
	for i := 0; i < 100; i++ {
		cc.Zoom(1)
		cc.Advance(0.01)
	}
	if cc.Distance() != 2.0 {
		t.Fatalf("distance %v, want clamp at 2.0", cc.Distance())
	}
}

func TestIdleConvergence(t *testing.T) {
	body := newStubBody()
	cc := newInitializedCamera(body)
	cc.Turn(1) // displace from the raw target

	for i := 0; i < 2000; i++ {
		cc.Advance(0.01)
	}
	settled := cameraPos(cc)

	for i := 0; i < 100; i++ {
		cc.Advance(0.01)
	}
	vecNear(t, cameraPos(cc), settled, 1e-4, "camera drifted after settling")
}

func TestLongStepConvergence(t *testing.T) {
	cc := newInitializedCamera(newStubBody())
	cc.Turn(1)
	cc.Turn(-1) // cancel, but leave the smoothing dynamics to run
	cc.Advance(1000.0)

	vecNear(t, cameraPos(cc), common.Vec3{-6, 0, 1.5}, 1e-3, "converged chase position")
	vecNear(t, cameraTarget(cc), common.Vec3{0, 0, 1}, 1e-3, "converged target")
}

func TestTurnOrbitsAroundAnchor(t *testing.T) {
	cc := newInitializedCamera(newStubBody())
	cc.Turn(1)
	cc.Advance(1000.0)

	a := math.Pi / 12
	want := common.Vec3{
		-6 * float32(math.Cos(a)),
		-6 * float32(math.Sin(a)),
		1.5,
	}
	vecNear(t, cameraPos(cc), want, 1e-3, "orbited position")

	// The orbit distance from the anchor's vertical axis stays the chase
	// distance.
	pos := cameraPos(cc)
	radial := common.Vec3{pos[0], pos[1], 0}.Len()
	if math.Abs(float64(radial-6)) > 1e-3 {
		t.Fatalf("orbit radius %v, want 6", radial)
	}
}

func TestInsideModeIsRigid(t *testing.T) {
	body := newStubBody()
	body.pos = common.Vec3{3, -2, 0.4}
	body.rot = common.QuatFromAxisAngle(common.Vec3{0, 0, 1}, 0.7)
	cc := newInitializedCamera(body)

	cc.SetState(Inside)
	cc.Advance(1e-4) // one sub-step is enough: attachment is rigid

	frame := vehicle.Frame(body)
	wantEye := frame.TransformPoint(body.driver.Pos)
	vecNear(t, cameraPos(cc), wantEye, 1e-5, "driver eye position")

	forward := frame.Rot.Rotate(common.Vec3{1, 0, 0})
	vecNear(t, cameraTarget(cc), wantEye.Add(forward), 1e-5, "inside look direction")
}

func TestTrackModeFreezesCamera(t *testing.T) {
	body := newStubBody()
	cc := newInitializedCamera(body)
	cc.SetState(Track)
	frozen := cameraPos(cc)

	// Drive the body away; the camera must hold its point while the target
	// keeps tracking the anchor.
	for i := 0; i < 100; i++ {
		body.pos = common.Vec3{float32(i) * 0.5, 0, 0}
		cc.Advance(0.02)
	}
	vecNear(t, cameraPos(cc), frozen, 1e-3, "track point held")
	vecNear(t, cameraTarget(cc), body.pos.Add(common.Vec3{0, 0, 1}), 1e-5, "target follows anchor")
}

func TestFollowLagsChaseOnHeadingChange(t *testing.T) {
	bodyA := newStubBody()
	bodyB := newStubBody()
	chase := newInitializedCamera(bodyA)
	follow := newInitializedCamera(bodyB)
	follow.SetState(Follow)

	// Snap both bodies to a new heading: Chase reacts with the raw heading,
	// Follow's lagged yaw trails behind.
	rot := common.QuatFromAxisAngle(common.Vec3{0, 0, 1}, float32(math.Pi/2))
	bodyA.rot = rot
	bodyB.rot = rot
	chase.Advance(0.5)
	follow.Advance(0.5)

	chaseDelta := cameraPos(chase).Sub(common.Vec3{0, -6, 1.5}).Len()
	followDelta := cameraPos(follow).Sub(common.Vec3{0, -6, 1.5}).Len()
	if followDelta <= chaseDelta {
		t.Fatalf("follow (%v) should lag farther from the raw target than chase (%v)", followDelta, chaseDelta)
	}
}

func TestModeSwitchDoesNotJump(t *testing.T) {
	body := newStubBody()
	cc := newInitializedCamera(body)
	body.pos = common.Vec3{5, 0, 0}
	cc.Advance(0.05)
	before := cameraPos(cc)

	cc.SetState(Follow)
	after := cameraPos(cc)
	vecNear(t, after, before, 0, "switching modes moved the camera")

	cc.Advance(1e-3)
	moved := cameraPos(cc).Sub(before).Len()
	if moved > 0.1 {
		t.Fatalf("mode switch produced a %v jump in one sub-step", moved)
	}
}

func TestReinitializeResetsSmoothing(t *testing.T) {
	body := newStubBody()
	cc := newInitializedCamera(body)
	for i := 0; i < 20; i++ {
		cc.Zoom(-1)
		cc.Advance(0.01)
	}

	cc.Initialize(common.Vec3{0, 0, 1}, 6.0, 0.5)
	if cc.Distance() != 6.0 {
		t.Fatalf("distance %v after re-initialize, want 6.0", cc.Distance())
	}
	vecNear(t, cameraPos(cc), common.Vec3{-6, 0, 1.5}, 1e-5, "re-seeded position")
}
