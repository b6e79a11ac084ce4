// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"testing"

	"github.com/golang/geo/r3"
)

func TestSplitEdgeAcross(t *testing.T) {
	m := mustMesh(t)
	face, boundary, err := m.AddCore("f", "b", "v0", "v1")
	if err != nil {
		t.Fatalf("AddCore(...) error = %v", err)
	}
	v0, _ := m.Vertex("v0")
	v1, _ := m.Vertex("v1")
	v1.Pos = r3.Vector{X: 2}

	hes := mustHalfEdges(t, face)
	w, n1, err := m.SplitEdgeAcross(hes[1], "w") // hes[1]: v1 -> v0
	if err != nil {
		t.Fatalf("SplitEdgeAcross(...) error = %v", err)
	}
	if want := (r3.Vector{X: 1}); w.Pos != want {
		t.Errorf("new vertex at %v, want the midpoint %v", w.Pos, want)
	}
	if n1.From() != w || n1.To != v0 {
		t.Errorf("new half-edge %s, want w->v0", n1)
	}
	if got := mustCycleNames(t, face); !equalCycle(got, []string{"v0", "v1", "w"}) {
		t.Errorf("face cycle = %v, want v0 v1 w", got)
	}
	if got := mustCycleNames(t, boundary); !equalCycle(got, []string{"v0", "w", "v1"}) {
		t.Errorf("boundary cycle = %v, want v0 w v1", got)
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestSplitLoop_Diagonal(t *testing.T) {
	m, face, _ := mustQuad(t)
	he0 := mustHalfEdgeTo(t, face, "v1")
	he1 := mustHalfEdgeTo(t, face, "v3")

	diag, err := m.SplitLoop(he0, he1, CreateRight)
	if err != nil {
		t.Fatalf("SplitLoop(...) error = %v", err)
	}
	if diag.From().Name != "v1" || diag.To.Name != "v3" {
		t.Errorf("diagonal %s, want v1->v3", diag)
	}
	if diag.Loop != face {
		t.Errorf("diagonal in %s, want the reused loop %s", diag.Loop, face)
	}
	if m.NumLoops() != 3 {
		t.Errorf("NumLoops() = %d, want 3", m.NumLoops())
	}
	other, err := m.Loop("f.1")
	if err != nil {
		t.Fatalf("Loop(%q) error = %v", "f.1", err)
	}
	if got := mustCycleNames(t, face); !equalCycle(got, []string{"v0", "v1", "v3"}) {
		t.Errorf("left loop cycle = %v, want v0 v1 v3", got)
	}
	if got := mustCycleNames(t, other); !equalCycle(got, []string{"v1", "v2", "v3"}) {
		t.Errorf("right loop cycle = %v, want v1 v2 v3", got)
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestSplitLoop_Errors(t *testing.T) {
	m, face, boundary := mustQuad(t)
	he := mustHalfEdgeTo(t, face, "v1")

	if _, err := m.SplitLoop(he, he, CreateRight); err == nil {
		t.Errorf("SplitLoop(he, he, ...) error = nil, want non-nil")
	}
	other := mustHalfEdgeTo(t, boundary, "v3")
	if _, err := m.SplitLoop(he, other, CreateRight); err == nil {
		t.Errorf("SplitLoop across two loops error = nil, want non-nil")
	}
}

// Splitting the same loop twice must not reuse the first child's name.
func TestSplitLoop_Repeated(t *testing.T) {
	m, face, _ := mustQuad(t)
	if _, _, err := m.SplitEdgeAcross(mustHalfEdgeTo(t, face, "v1"), "v4"); err != nil {
		t.Fatalf("SplitEdgeAcross(...) error = %v", err)
	}
	if _, _, err := m.SplitEdgeAcross(mustHalfEdgeTo(t, face, "v3"), "v5"); err != nil {
		t.Fatalf("SplitEdgeAcross(...) error = %v", err)
	}
	// face is now the hexagon v0 v4 v1 v2 v5 v3

	if _, err := m.SplitLoop(mustHalfEdgeTo(t, face, "v4"), mustHalfEdgeTo(t, face, "v2"), CreateRight); err != nil {
		t.Fatalf("first SplitLoop(...) error = %v", err)
	}
	if _, err := m.SplitLoop(mustHalfEdgeTo(t, face, "v2"), mustHalfEdgeTo(t, face, "v3"), CreateRight); err != nil {
		t.Fatalf("second SplitLoop(...) error = %v", err)
	}
	second, err := m.Loop("f.1.1")
	if err != nil {
		t.Fatalf("Loop(%q) error = %v", "f.1.1", err)
	}
	if got := mustCycleNames(t, second); !equalCycle(got, []string{"v5", "v3", "v2"}) {
		t.Errorf("second child cycle = %v, want v5 v3 v2", got)
	}
	if got := mustCycleNames(t, face); !equalCycle(got, []string{"v0", "v4", "v2", "v3"}) {
		t.Errorf("reused loop cycle = %v, want v0 v4 v2 v3", got)
	}
	if m.NumLoops() != 4 {
		t.Errorf("NumLoops() = %d, want 4", m.NumLoops())
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestSplitEdgeAlong(t *testing.T) {
	m, face, _ := mustQuad(t)
	he := mustHalfEdgeTo(t, face, "v1") // v0 -> v1

	back, err := m.SplitEdgeAlong(he)
	if err != nil {
		t.Fatalf("SplitEdgeAlong(...) error = %v", err)
	}
	if back.From().Name != "v1" || back.To.Name != "v0" {
		t.Errorf("returned half-edge %s, want v1->v0", back)
	}
	sliver := he.Loop
	if sliver.Name != "f.0" {
		t.Errorf("sliver loop named %s, want f.0", sliver)
	}
	if n := mustLen(t, sliver); n != 2 {
		t.Errorf("sliver length = %d, want 2", n)
	}
	if n := mustLen(t, mustLoop(t, m, "f")); n != 4 {
		t.Errorf("original face length = %d, want 4", n)
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestSplitVertex(t *testing.T) {
	m, face, _ := mustQuad(t)
	v0 := mustHalfEdgeTo(t, face, "v0").To
	ins, err := v0.InEdges()
	if err != nil {
		t.Fatalf("InEdges() error = %v", err)
	}
	if len(ins) != 2 {
		t.Fatalf("InEdges() returned %d half-edges, want 2", len(ins))
	}

	seam, err := m.SplitVertex(ins[0], ins[1], CreateBoth)
	if err != nil {
		t.Fatalf("SplitVertex(...) error = %v", err)
	}
	if m.NumVertices() != 5 {
		t.Errorf("NumVertices() = %d, want 5", m.NumVertices())
	}
	if _, err := m.Vertex("v0"); err == nil {
		t.Errorf("Vertex(%q) error = nil, want the original gone after CreateBoth", "v0")
	}
	vL, err := m.Vertex("v0.0")
	if err != nil {
		t.Fatalf("Vertex(%q) error = %v", "v0.0", err)
	}
	vR, err := m.Vertex("v0.1")
	if err != nil {
		t.Fatalf("Vertex(%q) error = %v", "v0.1", err)
	}
	if vL.Pos != v0.Pos || vR.Pos != v0.Pos {
		t.Errorf("split vertices moved, want both at %v", v0.Pos)
	}
	if seam.From() != vL || seam.To != vR {
		t.Errorf("seam %s, want v0.0->v0.1", seam)
	}
	// Both incident loops grew by the seam edge.
	if n := mustLen(t, ins[0].Loop); n != 5 {
		t.Errorf("loop %s length = %d, want 5", ins[0].Loop, n)
	}
	if n := mustLen(t, ins[1].Loop); n != 5 {
		t.Errorf("loop %s length = %d, want 5", ins[1].Loop, n)
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestSplitVertex_Errors(t *testing.T) {
	m, face, _ := mustQuad(t)
	he0 := mustHalfEdgeTo(t, face, "v0")
	he1 := mustHalfEdgeTo(t, face, "v2")

	if _, err := m.SplitVertex(he0, he0, CreateBoth); err == nil {
		t.Errorf("SplitVertex(he, he, ...) error = nil, want non-nil")
	}
	if _, err := m.SplitVertex(he0, he1, CreateBoth); err == nil {
		t.Errorf("SplitVertex on different target vertices error = nil, want non-nil")
	}
}

// Splitting a vertex twice with CreateLeft derives v0.0 and then v0.0.0
// rather than colliding on v0.0.
func TestSplitVertex_Repeated(t *testing.T) {
	m, face, _ := mustQuad(t)
	v0 := mustHalfEdgeTo(t, face, "v0").To

	for i, want := range []string{"v0.0", "v0.0.0"} {
		ins, err := v0.InEdges()
		if err != nil {
			t.Fatalf("InEdges() error = %v", err)
		}
		if len(ins) != 2 {
			t.Fatalf("InEdges() returned %d half-edges, want 2", len(ins))
		}
		if _, err := m.SplitVertex(ins[0], ins[1], CreateLeft); err != nil {
			t.Fatalf("split %d error = %v", i, err)
		}
		if _, err := m.Vertex(want); err != nil {
			t.Fatalf("Vertex(%q) error = %v after split %d", want, err, i)
		}
	}
	if m.NumVertices() != 6 {
		t.Errorf("NumVertices() = %d, want 6", m.NumVertices())
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestContractEdge(t *testing.T) {
	m, face, boundary := mustQuad(t)
	he := mustHalfEdgeTo(t, face, "v2") // v1 -> v2
	v1 := he.From()

	if err := m.ContractEdge(he); err != nil {
		t.Fatalf("ContractEdge(...) error = %v", err)
	}
	if m.NumVertices() != 3 {
		t.Errorf("NumVertices() = %d, want 3", m.NumVertices())
	}
	if _, err := m.Vertex("v2"); err == nil {
		t.Errorf("Vertex(%q) error = nil, want the contracted vertex gone", "v2")
	}
	if want := (r3.Vector{X: 1}); v1.Pos != want {
		t.Errorf("surviving vertex at %v, want its old position %v", v1.Pos, want)
	}
	if got := mustCycleNames(t, face); !equalCycle(got, []string{"v0", "v1", "v3"}) {
		t.Errorf("face cycle = %v, want v0 v1 v3", got)
	}
	if n := mustLen(t, boundary); n != 3 {
		t.Errorf("boundary length = %d, want 3", n)
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestContractEdge_2Gon(t *testing.T) {
	m := mustMesh(t)
	face, _, err := m.AddCore("f", "b", "v0", "v1")
	if err != nil {
		t.Fatalf("AddCore(...) error = %v", err)
	}
	if err := m.ContractEdge(face.First); err == nil {
		t.Errorf("ContractEdge on a 2-gon error = nil, want non-nil")
	}
}

func TestDropEdge(t *testing.T) {
	m, face, _ := mustQuad(t)
	diag, err := m.SplitLoop(mustHalfEdgeTo(t, face, "v1"), mustHalfEdgeTo(t, face, "v3"), CreateRight)
	if err != nil {
		t.Fatalf("SplitLoop(...) error = %v", err)
	}
	keep := diag.Twin.Loop

	if err := m.DropEdge(diag); err != nil {
		t.Fatalf("DropEdge(...) error = %v", err)
	}
	if m.NumLoops() != 2 {
		t.Errorf("NumLoops() = %d, want 2", m.NumLoops())
	}
	if _, err := m.Loop("f"); err == nil {
		t.Errorf("Loop(%q) error = nil, want the absorbed loop gone", "f")
	}
	if got := mustCycleNames(t, keep); !equalCycle(got, []string{"v0", "v1", "v2", "v3"}) {
		t.Errorf("merged loop cycle = %v, want v0 v1 v2 v3", got)
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestDropEdge_Nil(t *testing.T) {
	m := mustMesh(t)
	if err := m.DropEdge(nil); err == nil {
		t.Errorf("DropEdge(nil) error = nil, want non-nil")
	}
}

// Helpers

func mustLoop(t *testing.T, m *Mesh, name string) *Loop {
	t.Helper()
	l, err := m.Loop(name)
	if err != nil {
		t.Fatalf("Loop(%q) error = %v", name, err)
	}
	return l
}

func mustCycleNames(t *testing.T, l *Loop) []string {
	t.Helper()
	vs, err := l.Vertices()
	if err != nil {
		t.Fatalf("Vertices() of %s error = %v", l, err)
	}
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return names
}

// equalCycle compares two vertex name cycles up to rotation.
func equalCycle(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for shift := range got {
		ok := true
		for i := range want {
			if got[(shift+i)%len(got)] != want[i] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
