// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"fmt"

	"github.com/hcschuetz/star-folding/ga"
	"github.com/hcschuetz/star-folding/mesh"
)

// Reattach cuts the surface open along a new diagonal p-q and re-glues the
// smaller of the two parts at q's boundary notch, merging the faces that
// become coplanar there. The duplicated diagonal halves remain on the
// boundary as registered peers, to be glued later.
func (w *Workspace) Reattach(pName, qName string) error {
	m := w.mesh
	p, err := w.resolve(pName)
	if err != nil {
		return err
	}
	q, err := w.resolve(qName)
	if err != nil {
		return err
	}
	if p == q {
		return fmt.Errorf("starfold: cannot reattach %s at itself", p)
	}
	hbp, err := w.boundaryIncoming(p)
	if err != nil {
		return err
	}
	hbq, err := w.boundaryIncoming(q)
	if err != nil {
		return err
	}
	if hbq.Peer != hbq.Next {
		return fmt.Errorf("starfold: boundary edges at %s are not peers, cannot reattach there", q)
	}
	t1 := hbq.From()
	t2 := hbq.Next.To

	outs, err := p.OutEdges()
	if err != nil {
		return err
	}
	for _, he := range outs {
		if he.To == q {
			return fmt.Errorf("starfold: %s and %s are already joined by an edge", p, q)
		}
	}

	// Cut: split the shared face along p-q, duplicate the diagonal into a
	// degenerate 2-gon, split p between the two copies, and splice the
	// 2-gon into the boundary. The boundary then routes a -> p.1 -> q ->
	// p.0 -> b where it used to route a -> p -> b.
	_, heP, heQ, err := w.sharedFace(p, q)
	if err != nil {
		return err
	}
	dQP, err := m.SplitLoop(heQ, heP, mesh.CreateRight)
	if err != nil {
		return err
	}
	gPQ, err := m.SplitEdgeAlong(dQP)
	if err != nil {
		return err
	}
	seam, err := m.SplitVertex(dQP, hbp, mesh.CreateBoth)
	if err != nil {
		return err
	}
	if err := m.DropEdge(seam); err != nil {
		return err
	}
	if err := m.SetPeers(gPQ, dQP); err != nil {
		return err
	}
	p0 := dQP.To
	p1 := gPQ.From()
	w.tracer.Record("reattach: cut %s-%s open, boundary now runs through %s and %s", p, q, p1, p0)

	// The cut surface falls into two parts hinged at q.
	barrier := map[*mesh.Vertex]bool{q: true}
	compA, err := region([]*mesh.Vertex{p0}, barrier)
	if err != nil {
		return err
	}
	compB, err := region([]*mesh.Vertex{p1}, barrier)
	if err != nil {
		return err
	}
	for v := range compA {
		if compB[v] {
			return fmt.Errorf("starfold: cut %s-%s does not separate the surface, %s is reachable from both sides", p, q, v)
		}
	}
	if compA[t1] == compA[t2] {
		return fmt.Errorf("starfold: boundary neighbors %s and %s of %s are on the same side of the cut", t1, t2, q)
	}

	flap := compA
	if len(compB) < len(compA) {
		flap = compB
	}
	flapTip, mainTip := t1, t2
	flapHalf, mainHalf := hbq, hbq.Next
	if !flap[t1] {
		flapTip, mainTip = t2, t1
		flapHalf, mainHalf = hbq.Next, hbq
	}

	// Rotation 1 about q: the flap's tip direction onto the main tip
	// direction. The two segments have equal length (they are peers), so
	// the tips coincide afterwards.
	rotateRegion(flap, ga.RotorBetween(flapTip.Pos.Sub(q.Pos), mainTip.Pos.Sub(q.Pos)), q.Pos)

	// Rotation 2 about the glue segment: spin the flap until the faces on
	// both sides of the segment are coplanar again.
	axis := mainTip.Pos.Sub(q.Pos)
	if axis.Norm() < w.coincidenceEps {
		return fmt.Errorf("starfold: glue segment at %s is degenerate", q)
	}
	nFlap, okF, err := loopNormal(flapHalf.Twin.Loop)
	if err != nil {
		return err
	}
	nMain, okM, err := loopNormal(mainHalf.Twin.Loop)
	if err != nil {
		return err
	}
	if !okF || !okM {
		return fmt.Errorf("starfold: degenerate face at the glue segment of %s", q)
	}
	angle := ga.AngleAround(nFlap, nMain, axis.Normalize())
	rotateRegion(flap, ga.RotorAroundAxis(axis, angle), q.Pos)

	if d := ga.Dist(flapTip.Pos, mainTip.Pos); d > w.coincidenceEps {
		return fmt.Errorf("starfold: reattach tips %s and %s still %g apart after rotation", flapTip, mainTip, d)
	}

	fused, err := w.zipBoundary(hbq, hbq.Next)
	if err != nil {
		return err
	}
	merged, err := w.coplanarMergeAt(fused)
	if err != nil {
		return err
	}
	if !merged {
		return fmt.Errorf("starfold: faces at the reattached segment of %s are not coplanar", q)
	}
	w.tracer.Record("reattach: moved %d vertices onto the notch at %s", len(flap), q)
	return nil
}
