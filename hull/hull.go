// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package hull classifies point clouds by their convex hull. The folding
// engine uses it as a diagnostic: a fully folded polyhedron should have all
// of its vertices on the hull.
package hull

import (
	"errors"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-6
)

// Report describes how a point cloud relates to its convex hull.
type Report struct {
	// HullVertices is the number of input points on the hull.
	HullVertices int
	// Interior holds the indices of the input points strictly inside the
	// hull, in ascending order.
	Interior []int
}

// Convex reports whether every input point lies on the hull.
func (r *Report) Convex() bool {
	return len(r.Interior) == 0
}

type AnalyzeOptions struct {
	Eps float64
}

type AnalyzeOption func(*AnalyzeOptions)

func WithEps(eps float64) AnalyzeOption {
	if eps <= 0 {
		panic("WithEps: eps must be non-negative")
	}

	return func(o *AnalyzeOptions) {
		o.Eps = eps
	}
}

// Analyze computes the convex hull of the points and reports which of them
// ended up inside it.
func Analyze(points []r3.Vector, setters ...AnalyzeOption) (*Report, error) {
	opts := AnalyzeOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		set(&opts)
	}

	if len(points) < 4 {
		return nil, errors.New("hull: insufficient points for a hull (minimum 4 required)")
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(points, true, true, opts.Eps)

	onHull := make(map[int]bool, len(points))
	for _, idx := range ch.Indices {
		onHull[idx] = true
	}
	rep := &Report{HullVertices: len(onHull)}
	for i := range points {
		if !onHull[i] {
			rep.Interior = append(rep.Interior, i)
		}
	}
	return rep, nil
}
