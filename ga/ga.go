// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package ga is the numeric substrate for the folding engine: vector
// products, rotors for rigid rotations, and sphere intersection. Positions
// are plain r3.Vector values; every function here is pure.
package ga

import (
	"math"

	"github.com/golang/geo/r3"
)

// Dist returns the Euclidean distance between a and b.
func Dist(a, b r3.Vector) float64 {
	return a.Sub(b).Norm()
}

// Wedge returns the wedge product of a and b as its dual vector,
// i.e. the cross product. Its norm is the area of the spanned
// parallelogram; it vanishes iff a and b are parallel.
func Wedge(a, b r3.Vector) r3.Vector {
	return a.Cross(b)
}

// Triple returns the trivector coefficient of a∧b∧c, i.e. the scalar
// triple product. It vanishes iff a, b and c are coplanar.
func Triple(a, b, c r3.Vector) float64 {
	return a.Cross(b).Dot(c)
}

// PerpendicularFoot returns the orthogonal projection of p onto the line
// through a and b. The line must not be degenerate (a != b).
func PerpendicularFoot(p, a, b r3.Vector) r3.Vector {
	d := b.Sub(a)
	t := p.Sub(a).Dot(d) / d.Dot(d)
	return a.Add(d.Mul(t))
}

// AngleAround returns the signed angle from u to v measured around the unit
// axis n, in (-π, π]. u and v are projected onto the plane normal to n first.
func AngleAround(u, v, n r3.Vector) float64 {
	return math.Atan2(u.Cross(v).Dot(n), u.Dot(v)-u.Dot(n)*v.Dot(n))
}
