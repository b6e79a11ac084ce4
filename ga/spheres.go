// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package ga

import (
	"errors"
	"math"

	"github.com/golang/geo/r3"
)

// Sphere is a sphere given by its center and one point on its surface.
type Sphere struct {
	Center  r3.Vector
	Surface r3.Vector
}

// Radius returns the sphere's radius.
func (s Sphere) Radius() float64 {
	return Dist(s.Center, s.Surface)
}

const discriminantEps = 1e-12

// IntersectThreeSpheres returns the common points of three spheres: two,
// one (tangential) or none, depending on the sign of the discriminant.
// The result is empty when the discriminant is negative; an error is
// returned only for degenerate configurations (coincident or collinear
// centers) where the intersection is not a finite point set.
//
// The first two points of a two-point result are ordered so that the first
// one lies on the positive side of the oriented center plane s0, s1, s2.
func IntersectThreeSpheres(s0, s1, s2 Sphere) ([]r3.Vector, error) {
	r0 := s0.Radius()
	r1 := s1.Radius()
	r2 := s2.Radius()

	// Local frame: ex along the center line s0→s1, ey in the center plane.
	d01 := s1.Center.Sub(s0.Center)
	d := d01.Norm()
	if d < discriminantEps {
		return nil, errors.New("ga: sphere centers coincide")
	}
	ex := d01.Mul(1 / d)

	d02 := s2.Center.Sub(s0.Center)
	i := ex.Dot(d02)
	eyRaw := d02.Sub(ex.Mul(i))
	j := eyRaw.Norm()
	if j < discriminantEps {
		return nil, errors.New("ga: sphere centers are collinear")
	}
	ey := eyRaw.Mul(1 / j)
	ez := ex.Cross(ey)

	x := (r0*r0 - r1*r1 + d*d) / (2 * d)
	y := (r0*r0 - r2*r2 + i*i + j*j - 2*i*x) / (2 * j)

	disc := r0*r0 - x*x - y*y
	base := s0.Center.Add(ex.Mul(x)).Add(ey.Mul(y))
	switch {
	case disc < -discriminantEps:
		return nil, nil
	case disc <= discriminantEps:
		return []r3.Vector{base}, nil
	default:
		z := math.Sqrt(disc)
		return []r3.Vector{base.Add(ez.Mul(z)), base.Sub(ez.Mul(z))}, nil
	}
}
