// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/hcschuetz/star-folding/ga"
	"github.com/hcschuetz/star-folding/hull"
	"github.com/hcschuetz/star-folding/mesh"
)

// spring pulls a vertex to a fixed distance from another vertex. Distance 0
// pulls the two onto each other.
type spring struct {
	other *mesh.Vertex
	dist  float64
}

// Contract relaxes the triangulated mesh toward its folded shape and glues
// the boundary shut. Spring targets are sampled once: every edge keeps its
// length, copies of the same original vertex and all polygon tips contract
// onto each other. The summed per-iteration displacement is traced as
// badness.
func (w *Workspace) Contract(iterations int) error {
	m := w.mesh
	for _, l := range m.AllLoops() {
		if !l.IsFace {
			continue
		}
		n, err := l.Len()
		if err != nil {
			return err
		}
		if n != 3 {
			return fmt.Errorf("starfold: contract needs a triangulated surface, face %s has %d edges", l, n)
		}
	}
	if m.Boundary() == nil {
		return fmt.Errorf("starfold: mesh is already closed")
	}
	bhes, err := m.Boundary().HalfEdges()
	if err != nil {
		return err
	}

	vs := m.AllVertices()
	springs := make(map[*mesh.Vertex][]spring, len(vs))
	for _, v := range vs {
		ns, err := v.Neighbors()
		if err != nil {
			return err
		}
		for _, n := range ns {
			springs[v] = append(springs[v], spring{n, ga.Dist(v.Pos, n.Pos)})
		}
	}
	for i, a := range vs {
		for _, b := range vs[i+1:] {
			tips := strings.Contains(a.Name, "^") && strings.Contains(b.Name, "^")
			if tips || baseName(a.Name) == baseName(b.Name) {
				springs[a] = append(springs[a], spring{b, 0})
				springs[b] = append(springs[b], spring{a, 0})
			}
		}
	}

	for it := 0; it < iterations; it++ {
		next := make([]r3.Vector, len(vs))
		badness := 0.0
		for i, v := range vs {
			ss := springs[v]
			if len(ss) == 0 {
				next[i] = v.Pos
				continue
			}
			sum := r3.Vector{}
			for _, s := range ss {
				want := s.other.Pos
				if s.dist > 0 {
					d := v.Pos.Sub(s.other.Pos)
					if n := d.Norm(); n > 1e-12 {
						want = s.other.Pos.Add(d.Mul(s.dist / n))
					} else {
						// Coincident endpoints leave the direction
						// undefined; exert no pull.
						want = v.Pos
					}
				}
				sum = sum.Add(want)
			}
			next[i] = sum.Mul(1 / float64(len(ss)))
			badness += ga.Dist(next[i], v.Pos)
		}
		for i, v := range vs {
			v.Pos = next[i]
		}
		mismatch := 0.0
		for _, he := range bhes {
			if he.Peer != nil {
				mismatch = math.Max(mismatch, math.Abs(he.Length()-he.Peer.Length()))
			}
		}
		w.tracer.Record("contract iteration %d: badness %g, worst peer length mismatch %g", it, badness, mismatch)
		if badness == 0 {
			break
		}
	}

	if err := w.glueBoundary(); err != nil {
		return err
	}
	w.reportConvexity()
	return nil
}

// glueBoundary repeatedly glues consecutive peer pairs of the boundary until
// the whole boundary is gone.
func (w *Workspace) glueBoundary() error {
	for {
		b := w.mesh.Boundary()
		if b == nil {
			return nil
		}
		hes, err := b.HalfEdges()
		if err != nil {
			return err
		}
		var hA *mesh.HalfEdge
		for _, he := range hes {
			if he.Peer == he.Next {
				hA = he
				break
			}
		}
		if hA == nil {
			return fmt.Errorf("starfold: no glueable peer pair among the %d remaining boundary edges", len(hes))
		}
		if _, err := w.zipBoundary(hA, hA.Next); err != nil {
			return err
		}
	}
}

// reportConvexity traces whether all vertices of the folded mesh lie on its
// convex hull. Purely diagnostic.
func (w *Workspace) reportConvexity() {
	vs := w.mesh.AllVertices()
	pts := make([]r3.Vector, len(vs))
	for i, v := range vs {
		pts[i] = v.Pos
	}
	rep, err := hull.Analyze(pts)
	if err != nil {
		w.tracer.Record("convexity check skipped: %v", err)
		return
	}
	if rep.Convex() {
		w.tracer.Record("all %d vertices on the convex hull", rep.HullVertices)
		return
	}
	names := make([]string, len(rep.Interior))
	for i, idx := range rep.Interior {
		names[i] = vs[idx].Name
	}
	w.tracer.Record("not convex: %s inside the hull", strings.Join(names, ", "))
}
