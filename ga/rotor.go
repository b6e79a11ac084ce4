// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package ga

import (
	"math"

	"github.com/golang/geo/r3"
)

// Rotor is an even-grade element of the 3-D geometric algebra (scalar plus
// bivector, the bivector stored as its dual vector). Applying a rotor by the
// sandwich product rotates vectors; unit rotors compose by Mul.
type Rotor struct {
	S float64
	B r3.Vector
}

// IdentityRotor returns the rotor that leaves every vector unchanged.
func IdentityRotor() Rotor {
	return Rotor{S: 1}
}

// RotorAroundAxis returns the rotor rotating by angle around the given axis,
// following the right-hand rule. The axis need not be normalized but must be
// non-zero.
func RotorAroundAxis(axis r3.Vector, angle float64) Rotor {
	u := axis.Normalize()
	return Rotor{
		S: math.Cos(angle / 2),
		B: u.Mul(math.Sin(angle / 2)),
	}
}

// RotorBetween returns a rotor mapping the direction of from onto the
// direction of to along the shortest arc. For opposite directions the
// rotation plane is chosen arbitrarily among the valid ones.
func RotorBetween(from, to r3.Vector) Rotor {
	f := from.Normalize()
	t := to.Normalize()

	s := 1 + f.Dot(t)
	if s < 1e-12 {
		// Antipodal: rotate by π around any axis orthogonal to f.
		return RotorAroundAxis(f.Ortho(), math.Pi)
	}
	b := f.Cross(t)
	n := math.Sqrt(s*s + b.Dot(b))
	return Rotor{S: s / n, B: b.Mul(1 / n)}
}

// Mul composes two rotors; the result applies q first, then r.
func (r Rotor) Mul(q Rotor) Rotor {
	return Rotor{
		S: r.S*q.S - r.B.Dot(q.B),
		B: q.B.Mul(r.S).Add(r.B.Mul(q.S)).Add(r.B.Cross(q.B)),
	}
}

// Apply rotates v by the sandwich product r v r̃.
func (r Rotor) Apply(v r3.Vector) r3.Vector {
	t := r.B.Cross(v).Mul(2)
	return v.Add(t.Mul(r.S)).Add(r.B.Cross(t))
}

// ApplyAbout rotates v around the rotation axis translated to pass through
// the pivot point.
func (r Rotor) ApplyAbout(pivot, v r3.Vector) r3.Vector {
	return pivot.Add(r.Apply(v.Sub(pivot)))
}
