// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"fmt"

	"github.com/hcschuetz/star-folding/ga"
	"github.com/hcschuetz/star-folding/mesh"
)

// Bend creases the surface along the polyline given by the vertex names. For
// each consecutive pair (prev, cur) it splits the unique face containing
// both along a new diagonal prev–cur and rotates everything on the far side
// of that diagonal by angle radians about the line through the two vertices.
// Positive angles follow the right-hand rule around the direction from prev
// to cur, so swapping two names flips the turn direction. Faces stay planar
// because the diagonal endpoints lie on the rotation axis.
func (w *Workspace) Bend(angle float64, names []string) error {
	if len(names) < 2 {
		return fmt.Errorf("starfold: bend needs at least two vertices, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if err := w.bendStep(angle, names[i-1], names[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workspace) bendStep(angle float64, prevName, curName string) error {
	prev, err := w.resolve(prevName)
	if err != nil {
		return err
	}
	cur, err := w.resolve(curName)
	if err != nil {
		return err
	}
	if prev == cur {
		return fmt.Errorf("starfold: cannot bend from %s to itself", prev)
	}

	face, heP, heC, err := w.sharedFace(prev, cur)
	if err != nil {
		return err
	}
	if heP.Next == heC || heC.Next == heP {
		return fmt.Errorf("starfold: %s and %s are already joined by an edge of %s", prev, cur, face)
	}

	// The new loop holds the part of the face that follows prev and ends at
	// cur; that part and everything attached to it turns.
	diag, err := w.mesh.SplitLoop(heP, heC, mesh.CreateRight)
	if err != nil {
		return err
	}
	farLoop := diag.Twin.Loop
	farVerts, err := farLoop.Vertices()
	if err != nil {
		return err
	}
	seeds := make([]*mesh.Vertex, 0, len(farVerts))
	for _, v := range farVerts {
		if v != prev && v != cur {
			seeds = append(seeds, v)
		}
	}
	reg, err := region(seeds, map[*mesh.Vertex]bool{prev: true, cur: true})
	if err != nil {
		return err
	}

	axis := cur.Pos.Sub(prev.Pos)
	if axis.Norm() < w.coincidenceEps {
		return fmt.Errorf("starfold: bend axis %s-%s is degenerate", prev, cur)
	}
	rotateRegion(reg, ga.RotorAroundAxis(axis, angle), cur.Pos)
	w.tracer.Record("bend: split %s along %s-%s, rotated %d vertices by %g",
		face, prev, cur, len(reg), angle)
	return nil
}
