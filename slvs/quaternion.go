package slvs

import "math"

// MakeQuaternion builds a unit quaternion (w, x, y, z) rotating the standard
// basis so its U and V axes land on the given, mutually perpendicular unit
// vectors u and v — the inverse of QuaternionU/QuaternionV, used to seed a
// NormalIn3D entity's four parameters from a caller-supplied orientation
// instead of leaving them at an arbitrary initial guess.
func MakeQuaternion(ux, uy, uz, vx, vy, vz float64) (w, x, y, z float64) {
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx

	// Build the rotation matrix with columns u, v, n and extract the
	// quaternion from it via the standard trace-based decomposition.
	m00, m01, m02 := ux, vx, nx
	m10, m11, m12 := uy, vy, ny
	m20, m21, m22 := uz, vz, nz

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		w = 0.25 / s
		x = (m21 - m12) * s
		y = (m02 - m20) * s
		z = (m10 - m01) * s
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		w = (m21 - m12) / s
		x = 0.25 * s
		y = (m01 + m10) / s
		z = (m02 + m20) / s
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		w = (m02 - m20) / s
		x = (m01 + m10) / s
		y = 0.25 * s
		z = (m12 + m21) / s
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		w = (m10 - m01) / s
		x = (m02 + m20) / s
		y = (m12 + m21) / s
		z = 0.25 * s
	}
	return normalizeQuaternion(w, x, y, z)
}

func normalizeQuaternion(w, x, y, z float64) (float64, float64, float64, float64) {
	n := math.Sqrt(w*w + x*x + y*y + z*z)
	if n == 0 {
		return 1, 0, 0, 0
	}
	return w / n, x / n, y / n, z / n
}

// QuaternionU, QuaternionV and QuaternionN are the plain float64 mirrors of
// emit's symbolic quaternionU/V/N: the three columns of the rotation matrix
// a unit quaternion (w, x, y, z) represents.
func QuaternionU(w, x, y, z float64) (ux, uy, uz float64) {
	return w*w + x*x - (y*y + z*z),
		2 * (x*y + w*z),
		2 * (x*z - w*y)
}

func QuaternionV(w, x, y, z float64) (vx, vy, vz float64) {
	return 2 * (x*y - w*z),
		w*w - x*x + (y*y - z*z),
		2 * (y*z + w*x)
}

func QuaternionN(w, x, y, z float64) (nx, ny, nz float64) {
	return 2 * (x*z + w*y),
		2 * (y*z - w*x),
		w*w - x*x + (z*z - y*y)
}

// MatrixToQuaternion is the inverse of QuaternionU/V/N taken together: given
// the three columns of an orthonormal rotation matrix, it recovers a unit
// quaternion representing the same rotation. It is MakeQuaternion under a
// name matching the original embedding API's convention of taking the whole
// basis at once rather than just two axes.
func MatrixToQuaternion(ux, uy, uz, vx, vy, vz, nx, ny, nz float64) (w, x, y, z float64) {
	_ = nx
	_ = ny
	_ = nz
	return MakeQuaternion(ux, uy, uz, vx, vy, vz)
}
