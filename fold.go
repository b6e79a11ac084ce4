// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/hcschuetz/star-folding/ga"
	"github.com/hcschuetz/star-folding/mesh"
)

// NOTE: names are the only handles that survive topology edits.
func (w *Workspace) resolve(name string) (*mesh.Vertex, error) {
	return w.mesh.Vertex(name)
}

// boundaryIncoming returns the half-edge of the boundary loop pointing to v.
func (w *Workspace) boundaryIncoming(v *mesh.Vertex) (*mesh.HalfEdge, error) {
	b := w.mesh.Boundary()
	if b == nil {
		return nil, fmt.Errorf("starfold: mesh is already closed, %s is not boundary-adjacent", v)
	}
	he, err := incomingOnLoop(v, b)
	if err != nil {
		return nil, fmt.Errorf("starfold: %s is not boundary-adjacent: %w", v, err)
	}
	return he, nil
}

// sharedFace returns the unique face containing both a and b.
func (w *Workspace) sharedFace(a, b *mesh.Vertex) (*mesh.Loop, *mesh.HalfEdge, *mesh.HalfEdge, error) {
	var face *mesh.Loop
	var heA, heB *mesh.HalfEdge
	for _, l := range w.mesh.AllLoops() {
		if !l.IsFace {
			continue
		}
		hes, err := l.HalfEdges()
		if err != nil {
			return nil, nil, nil, err
		}
		var toA, toB *mesh.HalfEdge
		for _, he := range hes {
			switch he.To {
			case a:
				toA = he
			case b:
				toB = he
			}
		}
		if toA == nil || toB == nil {
			continue
		}
		if face != nil {
			return nil, nil, nil, fmt.Errorf("starfold: vertices %s and %s share more than one face (%s, %s)", a, b, face, l)
		}
		face, heA, heB = l, toA, toB
	}
	if face == nil {
		return nil, nil, nil, fmt.Errorf("starfold: vertices %s and %s share no face", a, b)
	}
	return face, heA, heB, nil
}

// ensureDiagonal makes sure a and b are joined by an edge, splitting their
// unique shared face when they are not.
func (w *Workspace) ensureDiagonal(a, b *mesh.Vertex) error {
	outs, err := a.OutEdges()
	if err != nil {
		return err
	}
	for _, he := range outs {
		if he.To == b {
			return nil
		}
	}
	f, heA, heB, err := w.sharedFace(a, b)
	if err != nil {
		return err
	}
	if _, err := w.mesh.SplitLoop(heA, heB, mesh.CreateRight); err != nil {
		return err
	}
	w.tracer.Record("split %s along %s-%s", f, a, b)
	return nil
}

// region collects the vertices reachable from the seeds without passing
// through a barrier vertex.
func region(seeds []*mesh.Vertex, barrier map[*mesh.Vertex]bool) (map[*mesh.Vertex]bool, error) {
	found := map[*mesh.Vertex]bool{}
	queue := make([]*mesh.Vertex, 0, len(seeds))
	for _, s := range seeds {
		if !barrier[s] && !found[s] {
			found[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		ns, err := v.Neighbors()
		if err != nil {
			return nil, err
		}
		for _, n := range ns {
			if !barrier[n] && !found[n] {
				found[n] = true
				queue = append(queue, n)
			}
		}
	}
	return found, nil
}

func rotateRegion(reg map[*mesh.Vertex]bool, rot ga.Rotor, pivot r3.Vector) {
	for v := range reg {
		v.Pos = rot.ApplyAbout(pivot, v.Pos)
	}
}

// loopNormal returns the unit normal of the loop's directed area, and false
// for degenerate (zero-area) loops.
func loopNormal(l *mesh.Loop) (r3.Vector, bool, error) {
	vs, err := l.Vertices()
	if err != nil {
		return r3.Vector{}, false, err
	}
	area := r3.Vector{}
	for i, v := range vs {
		area = area.Add(ga.Wedge(v.Pos, vs[(i+1)%len(vs)].Pos))
	}
	if area.Norm() < 1e-12 {
		return r3.Vector{}, false, nil
	}
	return area.Normalize(), true, nil
}

// baseName strips the ".0"/".1" suffixes a vertex name accumulates through
// splitting, yielding the name of the original star vertex.
func baseName(name string) string {
	for {
		switch {
		case strings.HasSuffix(name, ".0"):
			name = name[:len(name)-2]
		case strings.HasSuffix(name, ".1"):
			name = name[:len(name)-2]
		default:
			return name
		}
	}
}

// combineNames names a vertex merged from two. Copies of the same original
// vertex fall back to its base name.
func combineNames(a, b string) string {
	if ba, bb := baseName(a), baseName(b); ba == bb {
		return ba
	}
	return a + "=" + b
}

// zipBoundary glues the consecutive boundary peers hA and hB onto each
// other: their outer end vertices merge and the two edges fuse into one
// interior edge. Returns the fused half-edge.
func (w *Workspace) zipBoundary(hA, hB *mesh.HalfEdge) (*mesh.HalfEdge, error) {
	m := w.mesh
	if hA.Next != hB {
		return nil, fmt.Errorf("starfold: cannot glue non-consecutive boundary edges %s and %s", hA, hB)
	}
	if hA.Peer != hB {
		return nil, fmt.Errorf("starfold: boundary edges %s and %s are not peers", hA, hB)
	}
	if hB.Next == hA { // final 2-gon boundary
		if err := m.DropEdge(hA); err != nil {
			return nil, err
		}
		w.tracer.Record("glued final boundary pair at %s, mesh is closed", hB.To)
		return hB, nil
	}

	t1 := hA.From()
	t2 := hB.To
	if t1 == t2 {
		return nil, fmt.Errorf("starfold: glueing %s and %s would close a degenerate cone at %s", hA, hB, t1)
	}
	mergedName := combineNames(t1.Name, t2.Name)
	mergedPos := t1.Pos.Add(t2.Pos).Mul(0.5)

	// Split off the triangle {hA, hB, seam}, leaving the rest of the
	// boundary closed by the seam's twin.
	seam, err := m.SplitLoop(hA.Prev, hB, mesh.CreateRight)
	if err != nil {
		return nil, err
	}
	// seam: t1 -> t2 in the remaining boundary; contracting it merges the
	// two end vertices.
	if err := m.ContractEdge(seam); err != nil {
		return nil, err
	}
	if mergedName != t1.Name {
		if _, err := m.Vertex(mergedName); err == nil {
			mergedName = t1.Name + "=" + t2.Name
		}
		if err := m.RenameVertex(t1, mergedName); err != nil {
			return nil, err
		}
	}
	t1.Pos = mergedPos
	// The triangle is now the 2-gon {hA, hB}; dropping hA fuses the two
	// glued edges into one interior edge.
	if err := m.DropEdge(hA); err != nil {
		return nil, err
	}
	w.tracer.Record("glued boundary edges at %s, merged %s", hB.To, mergedName)
	return hB, nil
}

// coplanarMergeAt merges the two faces adjacent to the edge of he when they
// have become coplanar. Reports whether it merged.
func (w *Workspace) coplanarMergeAt(he *mesh.HalfEdge) (bool, error) {
	f1 := he.Loop
	f2 := he.Twin.Loop
	if !f1.IsFace || !f2.IsFace || f1 == f2 {
		return false, nil
	}
	n1, ok1, err := loopNormal(f1)
	if err != nil {
		return false, err
	}
	n2, ok2, err := loopNormal(f2)
	if err != nil {
		return false, err
	}
	if !ok1 || !ok2 {
		return false, nil
	}
	if n1.Cross(n2).Norm() > w.coincidenceEps || n1.Dot(n2) < 0 {
		return false, nil
	}
	merged := f2.Name
	if err := w.mesh.DropEdge(he); err != nil {
		return false, err
	}
	w.tracer.Record("coplanar faces merged into %s", merged)
	return true, nil
}
