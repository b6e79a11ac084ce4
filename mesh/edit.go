// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import "fmt"

// Create selects which records a split allocates. "Left" is the side of the
// first half-edge argument, "right" the side of the second. A reused record
// keeps its name; new records get the parent name with a ".0"/".1" suffix.
type Create int

const (
	CreateLeft Create = iota
	CreateRight
	CreateBoth
)

func (c Create) String() string {
	switch c {
	case CreateLeft:
		return "left"
	case CreateRight:
		return "right"
	case CreateBoth:
		return "both"
	}
	return fmt.Sprintf("Create(%d)", int(c))
}

// SplitVertex splits the common target vertex of he0 and he1 in two, one
// vertex per arc of the incoming half-edge ring, and closes both adjacent
// cycles with a new edge between them. Returns the new half-edge on the
// he0 side.
func (m *Mesh) SplitVertex(he0, he1 *HalfEdge, create Create) (*HalfEdge, error) {
	if he0 == nil || he1 == nil || he0 == he1 {
		return nil, fmt.Errorf("mesh: SplitVertex needs two distinct half-edges, got %s and %s", he0, he1)
	}
	v := he0.To
	if he1.To != v {
		return nil, fmt.Errorf("mesh: SplitVertex half-edges target different vertices %s and %s", he0.To, he1.To)
	}

	arc1, err := inArc(he0, he1)
	if err != nil {
		return nil, err
	}
	arc2, err := inArc(he1, he0)
	if err != nil {
		return nil, err
	}

	var vL, vR *Vertex
	switch create {
	case CreateLeft:
		if vL, err = m.MakeVertex(m.freshVertexName(v.Name, ".0")); err != nil {
			return nil, err
		}
		vR = v
	case CreateRight:
		vL = v
		if vR, err = m.MakeVertex(m.freshVertexName(v.Name, ".1")); err != nil {
			return nil, err
		}
	case CreateBoth:
		if vL, err = m.MakeVertex(m.freshVertexName(v.Name, ".0")); err != nil {
			return nil, err
		}
		if vR, err = m.MakeVertex(m.freshVertexName(v.Name, ".1")); err != nil {
			return nil, err
		}
		delete(m.verts, v.Name)
	default:
		return nil, fmt.Errorf("mesh: SplitVertex with invalid create mode %s", create)
	}
	vL.Pos = v.Pos
	vR.Pos = v.Pos

	for _, he := range arc1 {
		he.To = vL
	}
	for _, he := range arc2 {
		he.To = vR
	}

	nA, nB, err := m.MakeEdge(he0.Loop, he1.Loop, vL, vR) // nA: vL->vR, nB: vR->vL
	if err != nil {
		return nil, err
	}
	oldNext0 := he0.Next
	oldNext1 := he1.Next
	link(he0, nA)
	link(nA, oldNext0)
	link(he1, nB)
	link(nB, oldNext1)

	vL.FirstOut = he0.Twin
	vR.FirstOut = he1.Twin
	return nA, nil
}

// inArc walks by twin.Prev from start up to but excluding end.
func inArc(start, end *HalfEdge) ([]*HalfEdge, error) {
	var arc []*HalfEdge
	he := start
	for he != end {
		arc = append(arc, he)
		if he.Twin == nil || he.Twin.Prev == nil {
			return nil, fmt.Errorf("mesh: broken half-edge ring at %s", he)
		}
		he = he.Twin.Prev
		if he == start {
			return nil, fmt.Errorf("mesh: %s not in the half-edge ring of %s", end, start)
		}
		if len(arc) > maxCycle {
			return nil, fmt.Errorf("mesh: runaway half-edge ring at %s", start)
		}
	}
	return arc, nil
}

// SplitLoop splits the common loop of he0 and he1 along a new edge between
// he0.To and he1.To; the arc ending at he0 goes to the left loop, the arc
// ending at he1 to the right one. Returns the new half-edge in the left
// (he0-side) loop.
func (m *Mesh) SplitLoop(he0, he1 *HalfEdge, create Create) (*HalfEdge, error) {
	if he0 == nil || he1 == nil || he0 == he1 {
		return nil, fmt.Errorf("mesh: SplitLoop needs two distinct half-edges, got %s and %s", he0, he1)
	}
	l := he0.Loop
	if he1.Loop != l {
		return nil, fmt.Errorf("mesh: SplitLoop half-edges in different loops %s and %s", he0.Loop, he1.Loop)
	}
	if he0.To == he1.To {
		return nil, fmt.Errorf("mesh: SplitLoop diagonal endpoints coincide at %s", he0.To)
	}

	arc1, err := loopArc(he0, he1)
	if err != nil {
		return nil, err
	}
	arc2, err := loopArc(he1, he0)
	if err != nil {
		return nil, err
	}

	var lA, lB *Loop
	switch create {
	case CreateLeft:
		if lA, err = m.MakeLoop(m.freshLoopName(l.Name, ".0"), l.IsFace); err != nil {
			return nil, err
		}
		lB = l
	case CreateRight:
		lA = l
		if lB, err = m.MakeLoop(m.freshLoopName(l.Name, ".1"), l.IsFace); err != nil {
			return nil, err
		}
	case CreateBoth:
		if lA, err = m.MakeLoop(m.freshLoopName(l.Name, ".0"), l.IsFace); err != nil {
			return nil, err
		}
		if lB, err = m.MakeLoop(m.freshLoopName(l.Name, ".1"), l.IsFace); err != nil {
			return nil, err
		}
		delete(m.loops, l.Name)
	default:
		return nil, fmt.Errorf("mesh: SplitLoop with invalid create mode %s", create)
	}

	for _, he := range arc1 {
		he.Loop = lA
	}
	for _, he := range arc2 {
		he.Loop = lB
	}

	nA, nB, err := m.MakeEdge(lA, lB, he0.To, he1.To) // nA: he0.To->he1.To
	if err != nil {
		return nil, err
	}
	oldNext0 := he0.Next
	oldNext1 := he1.Next
	link(he0, nA)
	link(nA, oldNext1)
	link(he1, nB)
	link(nB, oldNext0)

	lA.First = nA
	lB.First = nB
	return nA, nil
}

// loopArc walks by Prev from start up to but excluding end.
func loopArc(start, end *HalfEdge) ([]*HalfEdge, error) {
	var arc []*HalfEdge
	he := start
	for he != end {
		arc = append(arc, he)
		if he.Prev == nil {
			return nil, fmt.Errorf("mesh: nil prev pointer at %s", he)
		}
		he = he.Prev
		if he == start {
			return nil, fmt.Errorf("mesh: %s not in the loop cycle of %s", end, start)
		}
		if len(arc) > maxCycle {
			return nil, fmt.Errorf("mesh: runaway loop cycle at %s", start)
		}
	}
	return arc, nil
}

// SplitEdgeAcross splits the undirected edge of he by a new vertex at its
// midpoint: he now ends there and a new edge continues to the old target.
func (m *Mesh) SplitEdgeAcross(he *HalfEdge, name string) (*Vertex, *HalfEdge, error) {
	if he == nil {
		return nil, nil, fmt.Errorf("mesh: SplitEdgeAcross on nil half-edge")
	}
	v := he.To
	tw := he.Twin

	w, err := m.MakeVertex(name)
	if err != nil {
		return nil, nil, err
	}
	w.Pos = he.From().Pos.Add(v.Pos).Mul(0.5)

	n1, n2, err := m.MakeEdge(he.Loop, tw.Loop, w, v) // n1: w->v, n2: v->w
	if err != nil {
		return nil, nil, err
	}

	oldNext := he.Next
	oldTwPrev := tw.Prev
	he.To = w
	link(he, n1)
	link(n1, oldNext)
	link(oldTwPrev, n2)
	link(n2, tw)

	w.FirstOut = n1
	if v.FirstOut == tw { // tw now leaves w
		v.FirstOut = n2.Twin.Next
	}
	return w, n1, nil
}

// SplitEdgeAlong duplicates the undirected edge of he; the sliver between
// the two copies becomes a degenerate 2-gon loop containing he.
func (m *Mesh) SplitEdgeAlong(he *HalfEdge) (*HalfEdge, error) {
	if he == nil {
		return nil, fmt.Errorf("mesh: SplitEdgeAlong on nil half-edge")
	}
	if he.Next == he {
		return nil, fmt.Errorf("mesh: SplitEdgeAlong on single-edge loop %s", he.Loop)
	}
	return m.SplitLoop(he, he.Prev, CreateLeft)
}

// ContractEdge collapses the edge of he, merging he.To into he.From. The
// merged vertex keeps he.From's name and position.
func (m *Mesh) ContractEdge(he *HalfEdge) error {
	if he == nil {
		return fmt.Errorf("mesh: ContractEdge on nil half-edge")
	}
	tw := he.Twin
	u := he.From()
	v := he.To
	if u == v {
		return fmt.Errorf("mesh: ContractEdge on self-loop at %s", u)
	}
	if he.Next.Next == he || tw.Next.Next == tw {
		return fmt.Errorf("mesh: ContractEdge would degenerate 2-gon loop %s", he.Loop)
	}

	ins, err := v.InEdges()
	if err != nil {
		return err
	}
	for _, in := range ins {
		if in != he {
			in.To = u
		}
	}

	pA, nA := he.Prev, he.Next
	pB, nB := tw.Prev, tw.Next
	switch {
	case nA == tw: // he.To is a leaf vertex
		link(pA, nB)
	case nB == he: // he.From is a leaf vertex
		link(pB, nA)
	default:
		link(pA, nA)
		link(pB, nB)
	}

	for _, l := range []*Loop{he.Loop, tw.Loop} {
		if l.First == he || l.First == tw {
			switch {
			case pA != he && pA != tw && pA.Loop == l:
				l.First = pA
			case pB != he && pB != tw && pB.Loop == l:
				l.First = pB
			default:
				return fmt.Errorf("mesh: ContractEdge emptied loop %s", l)
			}
		}
	}

	if u.FirstOut == he {
		switch {
		case nB != he && nB != tw:
			u.FirstOut = nB // leaves tw.To == u
		case nA != he && nA != tw:
			u.FirstOut = nA // left he.To, now re-targeted to u
		default:
			return fmt.Errorf("mesh: ContractEdge left vertex %s without edges", u)
		}
	}

	clearPeer(he)
	clearPeer(tw)
	delete(m.verts, v.Name)
	return nil
}

// DropEdge removes the edge of he and merges its loop into the twin's loop.
func (m *Mesh) DropEdge(he *HalfEdge) error {
	if he == nil {
		return fmt.Errorf("mesh: DropEdge on nil half-edge")
	}
	tw := he.Twin
	l := he.Loop
	keep := tw.Loop
	if l == keep {
		return fmt.Errorf("mesh: DropEdge with both sides in loop %s", l)
	}
	if he.Next == he || tw.Next == tw {
		return fmt.Errorf("mesh: DropEdge on single-edge loop")
	}

	absorbed, err := l.HalfEdges()
	if err != nil {
		return err
	}

	heNext := he.Next
	twNext := tw.Next
	link(he.Prev, twNext)
	link(tw.Prev, heNext)

	for _, x := range absorbed {
		if x != he {
			x.Loop = keep
		}
	}
	if keep.First == tw {
		keep.First = twNext
	}
	if he.To.FirstOut == tw {
		he.To.FirstOut = heNext
	}
	if tw.To.FirstOut == he {
		tw.To.FirstOut = twNext
	}

	clearPeer(he)
	clearPeer(tw)
	delete(m.loops, l.Name)
	return nil
}

// freshVertexName derives a child name from base; the suffix repeats until
// the name is free, so repeated splits never collide.
func (m *Mesh) freshVertexName(base, suffix string) string {
	name := base + suffix
	for {
		if _, ok := m.verts[name]; !ok {
			return name
		}
		name += suffix
	}
}

func (m *Mesh) freshLoopName(base, suffix string) string {
	name := base + suffix
	for {
		if _, ok := m.loops[name]; !ok {
			return name
		}
		name += suffix
	}
}

func clearPeer(he *HalfEdge) {
	if he.Peer != nil {
		he.Peer.Peer = nil
		he.Peer = nil
	}
}
