package common

import "math"

// The vehicle world is Z-up: X is forward for a body at rest with identity
// rotation, Z is vertical. Matrices are flat 16-element slices in column-major
// order (WebGPU convention).

// Vec3 is a 3D vector or point in world or body-local coordinates.
type Vec3 [3]float32

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return v
	}
	return v.Scale(1 / l)
}

// Finite reports whether all components are finite (no NaN or Inf).
func (v Vec3) Finite() bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Quat is a rotation quaternion in (w, x, y, z) component order.
type Quat [4]float32

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{1, 0, 0, 0}
}

// QuatFromAxisAngle builds a quaternion rotating by angle radians about the
// given axis. The axis need not be normalized.
//
// Parameters:
//   - axis: rotation axis
//   - angle: rotation angle in radians
//
// Returns:
//   - Quat: the unit rotation quaternion
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	a := axis.Normalized()
	s := float32(math.Sin(float64(angle) / 2))
	c := float32(math.Cos(float64(angle) / 2))
	return Quat{c, a[0] * s, a[1] * s, a[2] * s}
}

// Mul returns the composed rotation q * o (o applied first).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		q[0]*o[0] - q[1]*o[1] - q[2]*o[2] - q[3]*o[3],
		q[0]*o[1] + q[1]*o[0] + q[2]*o[3] - q[3]*o[2],
		q[0]*o[2] - q[1]*o[3] + q[2]*o[0] + q[3]*o[1],
		q[0]*o[3] + q[1]*o[2] - q[2]*o[1] + q[3]*o[0],
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*u × (u × v + w*v), u = (x, y, z)
	u := Vec3{q[1], q[2], q[3]}
	t := u.Cross(v).Add(v.Scale(q[0])).Scale(2)
	return v.Add(u.Cross(t))
}

// Finite reports whether all components are finite (no NaN or Inf).
func (q Quat) Finite() bool {
	for _, c := range q {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Coordsys is a rigid frame: a position and a rotation. Body-local frames
// (the driver eye point, the camera anchor) are expressed as a Coordsys
// relative to the body and transformed into world space with the body frame.
type Coordsys struct {
	Pos Vec3
	Rot Quat
}

// TransformPoint maps a point from the frame's local coordinates to the
// parent coordinates.
func (c Coordsys) TransformPoint(p Vec3) Vec3 {
	return c.Pos.Add(c.Rot.Rotate(p))
}

// TransformDir maps a direction from the frame's local coordinates to the
// parent coordinates (rotation only).
func (c Coordsys) TransformDir(d Vec3) Vec3 {
	return c.Rot.Rotate(d)
}

// WrapAngle normalizes an angle to the (-π, π] range.
func WrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// Result: out = a * b. Aliasing out with a or b is allowed.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix for WebGPU clip space
// with depth in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Orthographic creates an orthographic projection matrix mapping the given
// rectangle to WebGPU clip space. Used by the HUD overlay pass, which works
// in pixel coordinates with the origin at the top-left corner.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right, bottom, top: view rectangle bounds
func Orthographic(out []float32, left, right, bottom, top float32) {
	Identity(out)
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (0,0,1 in the Z-up world)
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center)
	if z.Dot(z) == 0 {
		z = Vec3{0, 0, 1}
	}
	z = z.Normalized()

	x := up.Cross(z)
	if x.Dot(x) == 0 {
		x = Vec3{1, 0, 0}
	}
	x = x.Normalized()

	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}
