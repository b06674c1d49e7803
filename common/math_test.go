package common

import (
	"math"
	"testing"
)

func near(t *testing.T, got, want, tol float32, msg string) {
	t.Helper()
	if float32(math.Abs(float64(got-want))) > tol {
		t.Fatalf("%s: got %v, want %v", msg, got, want)
	}
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}

	if d := a.Dot(b); d != 0 {
		t.Fatalf("dot = %v, want 0", d)
	}
	if c := a.Cross(b); c != (Vec3{0, 0, 1}) {
		t.Fatalf("cross = %v, want (0,0,1)", c)
	}
	if l := (Vec3{3, 4, 0}).Len(); l != 5 {
		t.Fatalf("len = %v, want 5", l)
	}
	u := Vec3{3, 4, 0}.Normalized()
	near(t, u[0], 0.6, 1e-6, "unit x")
	near(t, u[1], 0.8, 1e-6, "unit y")
	if z := (Vec3{}).Normalized(); z != (Vec3{}) {
		t.Fatalf("zero vector normalized = %v", z)
	}
}

func TestVec3Finite(t *testing.T) {
	if !(Vec3{1, 2, 3}).Finite() {
		t.Fatal("finite vector reported non-finite")
	}
	if (Vec3{float32(math.NaN()), 0, 0}).Finite() {
		t.Fatal("NaN vector reported finite")
	}
	if (Vec3{0, float32(math.Inf(1)), 0}).Finite() {
		t.Fatal("Inf vector reported finite")
	}
}

func TestQuatRotate(t *testing.T) {
	// 90° about Z takes +X to +Y.
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	v := q.Rotate(Vec3{1, 0, 0})
	near(t, v[0], 0, 1e-6, "x")
	near(t, v[1], 1, 1e-6, "y")
	near(t, v[2], 0, 1e-6, "z")

	// Identity leaves vectors alone.
	if got := QuatIdentity().Rotate(Vec3{1, 2, 3}); got != (Vec3{1, 2, 3}) {
		t.Fatalf("identity rotate = %v", got)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/4)
	b := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/4)
	v := a.Mul(b).Rotate(Vec3{1, 0, 0})
	near(t, v[0], 0, 1e-6, "composed x")
	near(t, v[1], 1, 1e-6, "composed y")
}

func TestCoordsysTransform(t *testing.T) {
	cs := Coordsys{
		Pos: Vec3{10, 0, 0},
		Rot: QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2),
	}
	p := cs.TransformPoint(Vec3{1, 0, 0})
	near(t, p[0], 10, 1e-6, "point x")
	near(t, p[1], 1, 1e-6, "point y")

	d := cs.TransformDir(Vec3{1, 0, 0})
	near(t, d[0], 0, 1e-6, "dir x")
	near(t, d[1], 1, 1e-6, "dir y")
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := WrapAngle(c.in)
		if got > math.Pi+1e-5 || got < -math.Pi-1e-5 {
			t.Fatalf("wrap(%v) = %v outside (-pi, pi]", c.in, got)
		}
		// Angles within float32 rounding of the ±π seam are the same
		// rotation, so compare circularly: the wrapped difference must
		// vanish.
		near(t, WrapAngle(got-c.want), 0, 1e-5, "wrap")
	}
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i)
	}
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Fatalf("identity * m = %v, want %v", out, m)
	}
}

func TestLookAtTransformsTargetToNegativeZ(t *testing.T) {
	var view [16]float32
	eye := Vec3{0, -10, 0}
	center := Vec3{0, 0, 0}
	LookAt(view[:], eye, center, Vec3{0, 0, 1})

	// The view matrix must map the target onto the -Z axis at the eye
	// distance.
	x := view[0]*center[0] + view[4]*center[1] + view[8]*center[2] + view[12]
	y := view[1]*center[0] + view[5]*center[1] + view[9]*center[2] + view[13]
	z := view[2]*center[0] + view[6]*center[1] + view[10]*center[2] + view[14]
	near(t, x, 0, 1e-5, "view x")
	near(t, y, 0, 1e-5, "view y")
	near(t, z, -10, 1e-5, "view z")
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math.Pi/4, 1.0, 1.0, 100.0)

	// A point on the near plane maps to depth 0, far plane to depth 1
	// (WebGPU clip space), after the perspective divide.
	depthAt := func(z float32) float32 {
		clipZ := proj[10]*z + proj[14]
		clipW := proj[11] * z
		return clipZ / clipW
	}
	near(t, depthAt(-1), 0, 1e-5, "near plane depth")
	near(t, depthAt(-100), 1, 1e-5, "far plane depth")
}
