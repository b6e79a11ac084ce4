// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Check verifies the DCEL invariants and returns an error describing the
// first violation found: twin/prev/next reciprocity, loop labelling, live
// cross references, face planarity, peer reciprocity and peer edge lengths.
// A mesh that passes Check is safe for every edit primitive.
func (m *Mesh) Check() error {
	seen := map[*HalfEdge]bool{}
	boundaries := 0

	for _, l := range m.AllLoops() {
		if !l.IsFace {
			boundaries++
			if boundaries > 1 {
				return fmt.Errorf("mesh: more than one boundary loop, second is %s", l)
			}
		}
		hes, err := l.HalfEdges()
		if err != nil {
			return err
		}
		for _, he := range hes {
			if seen[he] {
				return fmt.Errorf("mesh: half-edge %s appears in two loop cycles", he)
			}
			seen[he] = true
			if err := m.checkHalfEdge(he, l); err != nil {
				return err
			}
		}
		if l.IsFace {
			if err := m.checkPlanar(l, hes); err != nil {
				return err
			}
		}
	}

	for he := range seen {
		if !seen[he.Twin] {
			return fmt.Errorf("mesh: twin of %s is orphaned outside every loop cycle", he)
		}
	}

	for _, v := range m.AllVertices() {
		if v.FirstOut == nil {
			return fmt.Errorf("mesh: vertex %s has no outgoing half-edge", v)
		}
		if v.FirstOut.From() != v {
			return fmt.Errorf("mesh: firstOut of vertex %s leaves %s instead", v, v.FirstOut.From())
		}
		ins, err := v.InEdges()
		if err != nil {
			return err
		}
		for _, in := range ins {
			if in.To != v {
				return fmt.Errorf("mesh: half-edge %s in the ring of %s targets %s", in, v, in.To)
			}
			if !seen[in] {
				return fmt.Errorf("mesh: half-edge %s at vertex %s is outside every loop cycle", in, v)
			}
		}
	}
	return nil
}

func (m *Mesh) checkHalfEdge(he *HalfEdge, l *Loop) error {
	if he.Loop != l {
		return fmt.Errorf("mesh: half-edge %s in cycle of %s is labelled %s", he, l, he.Loop)
	}
	if he.Twin == nil || he.Twin == he || he.Twin.Twin != he {
		return fmt.Errorf("mesh: broken twin relation at %s", he)
	}
	if he.Prev == nil || he.Prev.Next != he {
		return fmt.Errorf("mesh: broken prev/next relation at %s", he)
	}
	if he.Next == nil || he.Next.Prev != he {
		return fmt.Errorf("mesh: broken next/prev relation at %s", he)
	}
	if he.To == nil || m.verts[he.To.Name] != he.To {
		return fmt.Errorf("mesh: half-edge %s targets a dead vertex", he)
	}
	if m.loops[he.Loop.Name] != he.Loop {
		return fmt.Errorf("mesh: half-edge %s belongs to dead loop %s", he, he.Loop)
	}
	if he.Next.From() != he.To {
		return fmt.Errorf("mesh: half-edge %s followed by %s leaving %s", he, he.Next, he.Next.From())
	}
	if he.Peer != nil {
		if he.Peer.Peer != he {
			return fmt.Errorf("mesh: peer relation at %s is not reciprocal", he)
		}
		if he.Loop.IsFace {
			return fmt.Errorf("mesh: peer half-edge %s is not on the boundary", he)
		}
		dl := math.Abs(he.Length() - he.Peer.Length())
		if dl > m.peerEps*math.Max(1, he.Length()) {
			return fmt.Errorf("mesh: peer edges %s and %s differ in length by %g", he, he.Peer, dl)
		}
	}
	return nil
}

// checkPlanar verifies that all vertices of a face lie in one plane, using
// a zero-wedge test over windows of four consecutive vertices.
func (m *Mesh) checkPlanar(l *Loop, hes []*HalfEdge) error {
	n := len(hes)
	if n < 4 {
		return nil
	}
	pos := make([]r3.Vector, n)
	for i, he := range hes {
		pos[i] = he.To.Pos
	}
	for i := 0; i < n; i++ {
		a := pos[i]
		b := pos[(i+1)%n].Sub(a)
		c := pos[(i+2)%n].Sub(a)
		d := pos[(i+3)%n].Sub(a)
		scale := math.Max(1, b.Norm()*c.Norm()*d.Norm())
		if t := b.Cross(c).Dot(d); math.Abs(t) > m.planarEps*scale {
			return fmt.Errorf("mesh: face %s is not planar at %s (wedge %g)", l, hes[i].To, t)
		}
	}
	return nil
}
