// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hull

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

func tetrahedron() []r3.Vector {
	return []r3.Vector{
		{},
		{X: 1},
		{Y: 1},
		{Z: 1},
	}
}

func cube() []r3.Vector {
	var pts []r3.Vector
	for x := 0.0; x <= 1; x++ {
		for y := 0.0; y <= 1; y++ {
			for z := 0.0; z <= 1; z++ {
				pts = append(pts, r3.Vector{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func TestAnalyze_Tetrahedron(t *testing.T) {
	rep, err := Analyze(tetrahedron())
	if err != nil {
		t.Fatalf("Analyze(...) error = %v", err)
	}
	if !rep.Convex() {
		t.Errorf("Convex() = false, want true for a tetrahedron")
	}
	if rep.HullVertices != 4 {
		t.Errorf("HullVertices = %d, want 4", rep.HullVertices)
	}
}

func TestAnalyze_InteriorPoint(t *testing.T) {
	pts := append(cube(), r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})
	rep, err := Analyze(pts)
	if err != nil {
		t.Fatalf("Analyze(...) error = %v", err)
	}
	if rep.Convex() {
		t.Errorf("Convex() = true, want false with a center point")
	}
	if diff := cmp.Diff([]int{8}, rep.Interior); diff != "" {
		t.Errorf("Interior mismatch (-want +got):\n%s", diff)
	}
	if rep.HullVertices != 8 {
		t.Errorf("HullVertices = %d, want 8", rep.HullVertices)
	}
}

func TestAnalyze_TooFewPoints(t *testing.T) {
	if _, err := Analyze(tetrahedron()[:3]); err == nil {
		t.Errorf("Analyze(...) error = nil, want non-nil for 3 points")
	}
}

func TestWithEps_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("WithEps(0) did not panic")
		}
	}()
	WithEps(0)
}
