// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/hcschuetz/star-folding/ga"
	"github.com/hcschuetz/star-folding/mesh"
	"github.com/hcschuetz/star-folding/polygons"
)

var sq3 = math.Sqrt(3)

func TestParsePolygon_Dodecagon(t *testing.T) {
	edges, err := ParsePolygon(polygons.Dodecagon, defaultClosureEps)
	if err != nil {
		t.Fatalf("ParsePolygon(...) error = %v", err)
	}
	if len(edges) != 12 {
		t.Fatalf("ParsePolygon(...) returned %d edges, want 12", len(edges))
	}

	wantFrom := map[int]r3.Vector{
		0: {},
		1: {X: 1},
		3: {X: 3, Y: sq3},
		6: {X: 1, Y: 3 * sq3},
	}
	for i, want := range wantFrom {
		if got := edges[i].From; ga.Dist(got, want) > 1e-12 {
			t.Errorf("edges[%d].From = %v, want %v", i, got, want)
		}
	}
	wantInner := map[int]r3.Vector{
		0: {X: 0.5, Y: sq3 / 2},
		1: {X: 1, Y: sq3},
	}
	for i, want := range wantInner {
		if got := edges[i].Inner; ga.Dist(got, want) > 1e-12 {
			t.Errorf("edges[%d].Inner = %v, want %v", i, got, want)
		}
	}
}

func TestParsePolygon_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"dodecagon", polygons.Dodecagon, false},
		{"comments and blanks", "# heading\n\n// note\na 4 4\nb 10 10\n", false},
		{"not closed", "a 4\nb 3", true},
		{"single edge", "a 4 10", true},
		{"duplicate name", "a 4\na 10", true},
		{"step not a number", "a x", true},
		{"step out of range", "a 13\nb 4", true},
		{"missing steps", "a\nb 4 10", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePolygon(tt.text, defaultClosureEps)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePolygon(...) error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetup_RoundTrip(t *testing.T) {
	edges, err := ParsePolygon(polygons.Dodecagon, defaultClosureEps)
	if err != nil {
		t.Fatalf("ParsePolygon(...) error = %v", err)
	}
	w := mustStar(t)
	m := w.Mesh()

	if m.NumVertices() != 24 {
		t.Errorf("NumVertices() = %d, want 24", m.NumVertices())
	}
	if m.NumLoops() != 2 {
		t.Errorf("NumLoops() = %d, want 2", m.NumLoops())
	}

	n := len(edges)
	for k, e := range edges {
		tip := mustVertex(t, w, tipName(edges[(k+n-1)%n].Name, e.Name))
		if d := ga.Dist(tip.Pos, e.From); d > 1e-8 {
			t.Errorf("tip %s at %v, want the polygon corner %v (off by %g)", tip, tip.Pos, e.From, d)
		}
		inner := mustVertex(t, w, e.Name)
		if d := ga.Dist(inner.Pos, e.Inner); d > 1e-8 {
			t.Errorf("inner vertex %s at %v, want %v (off by %g)", inner, inner.Pos, e.Inner, d)
		}
	}
}

func TestSetup_BoundaryPeers(t *testing.T) {
	w := mustStar(t)
	boundary := w.Mesh().Boundary()
	if boundary == nil {
		t.Fatalf("Boundary() = nil, want the boundary loop")
	}
	if n := mustLoopLen(t, boundary); n != 24 {
		t.Errorf("boundary length = %d, want 24", n)
	}
	edges, _ := ParsePolygon(polygons.Dodecagon, defaultClosureEps)
	for _, e := range edges {
		v := mustVertex(t, w, e.Name)
		hb, err := incomingOnLoop(v, boundary)
		if err != nil {
			t.Fatalf("incomingOnLoop(%s) error = %v", v, err)
		}
		if hb.Peer != hb.Next {
			t.Errorf("boundary halves at %s are not peers", v)
		}
		if d := math.Abs(hb.Length() - hb.Next.Length()); d > 1e-12 {
			t.Errorf("peer segments at %s differ in length by %g", v, d)
		}
	}
}

func TestSetup_BadPolygon(t *testing.T) {
	w := mustWorkspace(t)
	if err := w.Setup("a 4"); err == nil {
		t.Errorf("Setup(...) error = nil, want non-nil for an open polygon")
	}
}

// Helpers

func mustWorkspace(t *testing.T, setters ...Option) *Workspace {
	t.Helper()
	w, err := New(setters...)
	if err != nil {
		t.Fatalf("New(...) error = %v", err)
	}
	return w
}

// mustStar builds the workspace for the dodecagon star used throughout the
// operator tests.
func mustStar(t *testing.T) *Workspace {
	t.Helper()
	w := mustWorkspace(t)
	if err := w.Setup(polygons.Dodecagon); err != nil {
		t.Fatalf("Setup(...) error = %v", err)
	}
	return w
}

func mustVertex(t *testing.T, w *Workspace, name string) *mesh.Vertex {
	t.Helper()
	v, err := w.Mesh().Vertex(name)
	if err != nil {
		t.Fatalf("Vertex(%q) error = %v", name, err)
	}
	return v
}

func mustLoopLen(t *testing.T, l *mesh.Loop) int {
	t.Helper()
	n, err := l.Len()
	if err != nil {
		t.Fatalf("Len() of %s error = %v", l, err)
	}
	return n
}
