// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/hcschuetz/star-folding/ga"
	"github.com/hcschuetz/star-folding/mesh"
)

const boundaryWalkLimit = 1 << 14

// Bend2 closes the boundary notch at q: the two boundary segments meeting at
// q are rotated onto each other about the hinge lines q-p and q-r, and then
// glued. The hinge endpoints p and r must lie on the boundary on opposite
// sides of q. The tip positions after rotation are fully determined up to a
// two-fold choice (intersection of three spheres); positive picks the
// solution on the positive side of the plane oriented by the hinge points in
// the order "p-side hinge, q, r-side hinge". If the glued faces end up
// coplanar they are merged into one.
func (w *Workspace) Bend2(positive bool, pName, qName, rName string) error {
	p, err := w.resolve(pName)
	if err != nil {
		return err
	}
	q, err := w.resolve(qName)
	if err != nil {
		return err
	}
	r, err := w.resolve(rName)
	if err != nil {
		return err
	}
	if p == q || q == r || p == r {
		return fmt.Errorf("starfold: bend2 needs three distinct vertices, got %s %s %s", p, q, r)
	}

	hbq, err := w.boundaryIncoming(q)
	if err != nil {
		return err
	}
	t1 := hbq.From()
	t2 := hbq.Next.To

	// Orient p and r: the one found first when walking the boundary onward
	// from q belongs to the t2 side.
	s1, s2, err := orientHinges(hbq, p, r)
	if err != nil {
		return err
	}

	if s1 != t1 {
		if err := w.ensureDiagonal(q, s1); err != nil {
			return err
		}
	}
	if s2 != t2 {
		if err := w.ensureDiagonal(q, s2); err != nil {
			return err
		}
	}

	barrier := map[*mesh.Vertex]bool{s1: true, q: true, s2: true}
	reg1, err := region([]*mesh.Vertex{t1}, barrier)
	if err != nil {
		return err
	}
	reg2, err := region([]*mesh.Vertex{t2}, barrier)
	if err != nil {
		return err
	}
	for v := range reg1 {
		if reg2[v] {
			return fmt.Errorf("starfold: bend2 parts around %s overlap at %s", q, v)
		}
	}

	// The merged tip position keeps its distances to both hinge lines'
	// endpoints: it lies on three spheres around s1, q and s2.
	sols, err := ga.IntersectThreeSpheres(
		ga.Sphere{Center: s1.Pos, Surface: t1.Pos},
		ga.Sphere{Center: q.Pos, Surface: t1.Pos},
		ga.Sphere{Center: s2.Pos, Surface: t2.Pos},
	)
	if err != nil {
		return fmt.Errorf("starfold: bend2 at %s: %w", q, err)
	}
	var target r3.Vector
	switch {
	case len(sols) == 0:
		return fmt.Errorf("starfold: bend2 at %s has no solution, tips cannot meet", q)
	case len(sols) == 1:
		target = sols[0]
	case positive:
		target = sols[0]
	default:
		target = sols[1]
	}

	if err := w.rotateOnto(reg1, t1, target, s1.Pos, q.Pos); err != nil {
		return err
	}
	if err := w.rotateOnto(reg2, t2, target, s2.Pos, q.Pos); err != nil {
		return err
	}
	if d := ga.Dist(t1.Pos, t2.Pos); d > w.coincidenceEps {
		return fmt.Errorf("starfold: bend2 tips %s and %s still %g apart after rotation", t1, t2, d)
	}

	fused, err := w.zipBoundary(hbq, hbq.Next)
	if err != nil {
		return err
	}
	if _, err := w.coplanarMergeAt(fused); err != nil {
		return err
	}
	w.tracer.Record("bend2: closed notch at %s with hinges %s and %s", q, s1, s2)
	return nil
}

// orientHinges walks the boundary onward from q's incoming half-edge and
// returns (p, r) ordered as (far-side hinge, near-side hinge): the hinge
// found first lies on the t2 side of q.
func orientHinges(hbq *mesh.HalfEdge, p, r *mesh.Vertex) (s1, s2 *mesh.Vertex, err error) {
	he := hbq.Next
	for i := 0; i < boundaryWalkLimit; i++ {
		switch he.To {
		case p:
			return r, p, nil
		case r:
			return p, r, nil
		}
		he = he.Next
		if he == hbq.Next {
			return nil, nil, fmt.Errorf("starfold: neither %s nor %s is on the boundary", p, r)
		}
	}
	return nil, nil, fmt.Errorf("starfold: boundary cycle not closed at %s", hbq)
}

// rotateOnto rigidly rotates the region about the line through a and b so
// that the mover vertex lands on target. Both points must keep the same
// distance to the line for this to be a rotation; the caller guarantees that
// via the sphere construction.
func (w *Workspace) rotateOnto(reg map[*mesh.Vertex]bool, mover *mesh.Vertex, target, a, b r3.Vector) error {
	axis := b.Sub(a)
	if axis.Norm() < w.coincidenceEps {
		return fmt.Errorf("starfold: hinge line through %s is degenerate", mover)
	}
	pivot := ga.PerpendicularFoot(mover.Pos, a, b)
	u := mover.Pos.Sub(pivot)
	v := target.Sub(pivot)
	if u.Norm() < w.coincidenceEps || v.Norm() < w.coincidenceEps {
		// Mover on the hinge line: nothing to rotate onto.
		if ga.Dist(mover.Pos, target) > w.coincidenceEps {
			return fmt.Errorf("starfold: %s lies on its hinge line but off the target", mover)
		}
		return nil
	}
	angle := ga.AngleAround(u, v, axis.Normalize())
	rotateRegion(reg, ga.RotorAroundAxis(axis, angle), pivot)
	return nil
}
