package meistercharts

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// AffineMatrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type AffineMatrix [6]float64

// Identity is the identity transform.
var Identity = AffineMatrix{1, 0, 0, 1, 0, 0}

// Translation returns a pure translation matrix.
func Translation(dx, dy float64) AffineMatrix {
	return AffineMatrix{1, 0, 0, 1, dx, dy}
}

// Scaling returns a pure scale matrix.
func Scaling(sx, sy float64) AffineMatrix {
	return AffineMatrix{sx, 0, 0, sy, 0, 0}
}

// Rotation returns a rotation matrix. With Y growing downward a positive
// angle rotates clockwise on screen.
func Rotation(theta float64) AffineMatrix {
	sin, cos := math.Sincos(theta)
	return AffineMatrix{cos, sin, -sin, cos, 0, 0}
}

// Multiply returns m * o: o is applied first, then m.
func (m AffineMatrix) Multiply(o AffineMatrix) AffineMatrix {
	return AffineMatrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse transform.
// Returns Identity if the matrix is singular (determinant ≈ 0).
func (m AffineMatrix) Invert() AffineMatrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return AffineMatrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point.
func (m AffineMatrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ScaleX returns the length of the transformed unit X vector.
func (m AffineMatrix) ScaleX() float64 { return math.Hypot(m[0], m[1]) }

// ScaleY returns the length of the transformed unit Y vector.
func (m AffineMatrix) ScaleY() float64 { return math.Hypot(m[2], m[3]) }

// GeoM converts the matrix to an ebiten.GeoM.
func (m AffineMatrix) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// DefaultTransformStackCapacity bounds save/restore nesting. Reaching it
// means a Restore is missing, not that the UI is deeply nested.
const DefaultTransformStackCapacity = 10

// TransformStack is a bounded save/restore stack of affine transforms. All
// slots are allocated up front so the paint path never allocates.
//
// The active matrix lives at index Depth(). Save copies it one slot up;
// Restore drops back to the previous slot, whose contents were never touched
// in between.
type TransformStack struct {
	matrices []AffineMatrix
	depth    int
}

// NewTransformStack creates a stack with the given capacity. A capacity
// below 1 selects DefaultTransformStackCapacity.
func NewTransformStack(capacity int) *TransformStack {
	if capacity < 1 {
		capacity = DefaultTransformStackCapacity
	}
	s := &TransformStack{matrices: make([]AffineMatrix, capacity)}
	s.matrices[0] = Identity
	return s
}

// Capacity returns the number of slots.
func (s *TransformStack) Capacity() int { return len(s.matrices) }

// Depth returns the index of the active matrix.
func (s *TransformStack) Depth() int { return s.depth }

// Current returns the active matrix.
func (s *TransformStack) Current() AffineMatrix { return s.matrices[s.depth] }

// Reset sets the active matrix to identity.
func (s *TransformStack) Reset() {
	s.matrices[s.depth] = Identity
}

// Save pushes a copy of the active matrix. Panics with
// ErrTransformStackOverflow if no slot is left.
func (s *TransformStack) Save() {
	if s.depth+1 >= len(s.matrices) {
		usagePanic("save", ErrTransformStackOverflow, "depth %d, capacity %d", s.depth, len(s.matrices))
	}
	s.matrices[s.depth+1] = s.matrices[s.depth]
	s.depth++
}

// Restore pops back to the matrix active at the matching Save. Panics with
// ErrTransformStackUnderflow when nothing was saved.
func (s *TransformStack) Restore() {
	if s.depth == 0 {
		usagePanic("restore", ErrTransformStackUnderflow, "")
	}
	s.depth--
}

// unwind drops back to depth without validation. Used to recover the stack
// after a paint listener panicked mid-scope.
func (s *TransformStack) unwind(depth int) {
	if depth >= 0 && depth < s.depth {
		s.depth = depth
	}
}

// Translate moves the origin by (dx, dy) in the current coordinate system,
// so the offset is multiplied by the current scale (and rotated).
func (s *TransformStack) Translate(dx, dy float64) {
	m := &s.matrices[s.depth]
	m[4] += m[0]*dx + m[2]*dy
	m[5] += m[1]*dx + m[3]*dy
}

// TranslatePhysical moves the origin by (dx, dy) device pixels, ignoring the
// current scale and rotation.
func (s *TransformStack) TranslatePhysical(dx, dy float64) {
	m := &s.matrices[s.depth]
	m[4] += dx
	m[5] += dy
}

// Scale multiplies the current scale factors.
func (s *TransformStack) Scale(sx, sy float64) {
	m := &s.matrices[s.depth]
	m[0] *= sx
	m[1] *= sx
	m[2] *= sy
	m[3] *= sy
}

// Rotate composes a rotation (radians, clockwise on screen) into the
// current coordinate system.
func (s *TransformStack) Rotate(theta float64) {
	s.matrices[s.depth] = s.matrices[s.depth].Multiply(Rotation(theta))
}

// Transform composes m into the current coordinate system.
func (s *TransformStack) Transform(m AffineMatrix) {
	s.matrices[s.depth] = s.matrices[s.depth].Multiply(m)
}

// ScaleX returns the effective horizontal scale of the active matrix.
func (s *TransformStack) ScaleX() float64 { return s.matrices[s.depth].ScaleX() }

// ScaleY returns the effective vertical scale of the active matrix.
func (s *TransformStack) ScaleY() float64 { return s.matrices[s.depth].ScaleY() }

// ToDevice converts a point from the current coordinate system to device
// pixels.
func (s *TransformStack) ToDevice(x, y float64) (float64, float64) {
	return s.matrices[s.depth].Apply(x, y)
}

// FromDevice converts a device pixel to the current coordinate system.
func (s *TransformStack) FromDevice(x, y float64) (float64, float64) {
	return s.matrices[s.depth].Invert().Apply(x, y)
}
