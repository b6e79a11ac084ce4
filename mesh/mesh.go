// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package mesh implements a doubly-connected edge list (half-edge mesh) for
// a 2-manifold with at most one boundary loop. The kernel maintains the
// structural invariants under topology edits; it knows vertex positions only
// for the planarity and peer-length checks, never to decide topology.
package mesh

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r3"
)

const (
	defaultPlanarEps = 1e-8
	defaultPeerEps   = 1e-3

	// maxCycle bounds every cycle walk; exceeding it means the DCEL has
	// degenerated into an orphaned or unterminated ring.
	maxCycle = 1 << 14
)

// Vertex is a named mesh vertex. ID is a monotonic allocation number used
// for debugging and deterministic iteration; Name is the handle operators
// use across calls.
type Vertex struct {
	Name     string
	ID       int
	Pos      r3.Vector
	FirstOut *HalfEdge
}

func (v *Vertex) String() string {
	if v == nil {
		return "<nil vertex>"
	}
	return v.Name
}

// Loop is a cyclic sequence of half-edges: either a flat face or the single
// boundary loop around the not yet folded part of the manifold.
type Loop struct {
	Name   string
	ID     int
	IsFace bool
	First  *HalfEdge
}

func (l *Loop) String() string {
	if l == nil {
		return "<nil loop>"
	}
	return l.Name
}

// HalfEdge is one direction of an undirected edge. From is derived as
// Twin.To. Peer links two boundary half-edges that must eventually be glued
// onto each other; the relation is symmetric.
type HalfEdge struct {
	To   *Vertex
	Loop *Loop
	Twin *HalfEdge
	Prev *HalfEdge
	Next *HalfEdge
	Peer *HalfEdge
}

// From returns the source vertex.
func (he *HalfEdge) From() *Vertex {
	return he.Twin.To
}

// Length returns the current geometric length of the edge.
func (he *HalfEdge) Length() float64 {
	return he.To.Pos.Sub(he.From().Pos).Norm()
}

func (he *HalfEdge) String() string {
	if he == nil {
		return "<nil half-edge>"
	}
	return fmt.Sprintf("%s->%s in %s", he.From(), he.To, he.Loop)
}

// Mesh owns all vertex, loop and half-edge records. Names are unique within
// each kind and are the only handles that survive topology edits.
type Mesh struct {
	verts map[string]*Vertex
	loops map[string]*Loop

	nextID int

	planarEps float64
	peerEps   float64
}

// Option configures a Mesh.
type Option func(*Mesh) error

// WithPlanarEps sets the tolerance of the face planarity check.
func WithPlanarEps(eps float64) Option {
	return func(m *Mesh) error {
		if eps <= 0 {
			return fmt.Errorf("mesh: planar eps must be positive, got %v", eps)
		}
		m.planarEps = eps
		return nil
	}
}

// WithPeerEps sets the tolerance of the peer edge-length check.
func WithPeerEps(eps float64) Option {
	return func(m *Mesh) error {
		if eps <= 0 {
			return fmt.Errorf("mesh: peer eps must be positive, got %v", eps)
		}
		m.peerEps = eps
		return nil
	}
}

// New returns an empty mesh.
func New(setters ...Option) (*Mesh, error) {
	m := &Mesh{
		verts:     map[string]*Vertex{},
		loops:     map[string]*Loop{},
		planarEps: defaultPlanarEps,
		peerEps:   defaultPeerEps,
	}
	for _, set := range setters {
		if err := set(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Vertex looks up a vertex by name.
func (m *Mesh) Vertex(name string) (*Vertex, error) {
	v, ok := m.verts[name]
	if !ok {
		return nil, fmt.Errorf("mesh: no vertex named %q", name)
	}
	return v, nil
}

// Loop looks up a loop by name.
func (m *Mesh) Loop(name string) (*Loop, error) {
	l, ok := m.loops[name]
	if !ok {
		return nil, fmt.Errorf("mesh: no loop named %q", name)
	}
	return l, nil
}

// NumVertices returns the number of live vertices.
func (m *Mesh) NumVertices() int {
	return len(m.verts)
}

// NumLoops returns the number of live loops, the boundary included.
func (m *Mesh) NumLoops() int {
	return len(m.loops)
}

// AllVertices returns the live vertices in allocation order.
func (m *Mesh) AllVertices() []*Vertex {
	vs := make([]*Vertex, 0, len(m.verts))
	for _, v := range m.verts {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].ID < vs[j].ID })
	return vs
}

// AllLoops returns the live loops in allocation order.
func (m *Mesh) AllLoops() []*Loop {
	ls := make([]*Loop, 0, len(m.loops))
	for _, l := range m.loops {
		ls = append(ls, l)
	}
	sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
	return ls
}

// Boundary returns the boundary loop, or nil once the mesh is closed.
func (m *Mesh) Boundary() *Loop {
	for _, l := range m.AllLoops() {
		if !l.IsFace {
			return l
		}
	}
	return nil
}

// MakeVertex allocates and registers a new isolated vertex.
func (m *Mesh) MakeVertex(name string) (*Vertex, error) {
	if _, ok := m.verts[name]; ok {
		return nil, fmt.Errorf("mesh: vertex name %q already in use", name)
	}
	m.nextID++
	v := &Vertex{Name: name, ID: m.nextID}
	m.verts[name] = v
	return v, nil
}

// MakeLoop allocates and registers a new empty loop.
func (m *Mesh) MakeLoop(name string, isFace bool) (*Loop, error) {
	if _, ok := m.loops[name]; ok {
		return nil, fmt.Errorf("mesh: loop name %q already in use", name)
	}
	m.nextID++
	l := &Loop{Name: name, ID: m.nextID, IsFace: isFace}
	m.loops[name] = l
	return l, nil
}

// MakeEdge allocates a twin pair of half-edges: one adjacent to loopA
// pointing to vb, its twin adjacent to loopB pointing to va. The pair is not
// linked into any prev/next chain; completing the cycles is the caller's
// responsibility.
func (m *Mesh) MakeEdge(loopA, loopB *Loop, va, vb *Vertex) (*HalfEdge, *HalfEdge, error) {
	if loopA == nil || loopB == nil || va == nil || vb == nil {
		return nil, nil, fmt.Errorf("mesh: MakeEdge with nil argument (%s, %s, %s, %s)", loopA, loopB, va, vb)
	}
	a := &HalfEdge{To: vb, Loop: loopA}
	b := &HalfEdge{To: va, Loop: loopB}
	a.Twin = b
	b.Twin = a
	return a, b, nil
}

// RenameVertex gives v a new unique name.
func (m *Mesh) RenameVertex(v *Vertex, name string) error {
	if v.Name == name {
		return nil
	}
	if _, ok := m.verts[name]; ok {
		return fmt.Errorf("mesh: vertex name %q already in use", name)
	}
	if m.verts[v.Name] != v {
		return fmt.Errorf("mesh: vertex %s is not registered", v)
	}
	delete(m.verts, v.Name)
	v.Name = name
	m.verts[name] = v
	return nil
}

// SetPeers registers a and b as a peer pair that must be glued eventually.
func (m *Mesh) SetPeers(a, b *HalfEdge) error {
	if a == nil || b == nil || a == b {
		return fmt.Errorf("mesh: invalid peer pair (%s, %s)", a, b)
	}
	if a.Peer != nil || b.Peer != nil {
		return fmt.Errorf("mesh: %s or %s already has a peer", a, b)
	}
	a.Peer = b
	b.Peer = a
	return nil
}

// AddCore bootstraps an empty mesh with a degenerate two-sided 2-gon: two
// vertices joined by two parallel edges, a face loop on one side and the
// boundary loop on the other. The star builder grows the face from this seed
// by edge splitting.
func (m *Mesh) AddCore(faceName, boundaryName, v0Name, v1Name string) (*Loop, *Loop, error) {
	if len(m.verts) != 0 || len(m.loops) != 0 {
		return nil, nil, fmt.Errorf("mesh: AddCore on non-empty mesh (%d vertices, %d loops)", len(m.verts), len(m.loops))
	}
	v0, err := m.MakeVertex(v0Name)
	if err != nil {
		return nil, nil, err
	}
	v1, err := m.MakeVertex(v1Name)
	if err != nil {
		return nil, nil, err
	}
	face, err := m.MakeLoop(faceName, true)
	if err != nil {
		return nil, nil, err
	}
	boundary, err := m.MakeLoop(boundaryName, false)
	if err != nil {
		return nil, nil, err
	}

	f0, b0, err := m.MakeEdge(face, boundary, v0, v1) // f0: v0->v1, b0: v1->v0
	if err != nil {
		return nil, nil, err
	}
	f1, b1, err := m.MakeEdge(face, boundary, v1, v0) // f1: v1->v0, b1: v0->v1
	if err != nil {
		return nil, nil, err
	}

	link(f0, f1)
	link(f1, f0)
	link(b0, b1)
	link(b1, b0)

	v0.FirstOut = f0
	v1.FirstOut = f1
	face.First = f0
	boundary.First = b0
	return face, boundary, nil
}

// link makes b follow a in its loop cycle.
func link(a, b *HalfEdge) {
	a.Next = b
	b.Prev = a
}

// HalfEdges returns the loop's half-edge cycle starting at First.
func (l *Loop) HalfEdges() ([]*HalfEdge, error) {
	if l.First == nil {
		return nil, fmt.Errorf("mesh: loop %s has no first half-edge", l)
	}
	var hes []*HalfEdge
	he := l.First
	for {
		hes = append(hes, he)
		he = he.Next
		if he == nil {
			return nil, fmt.Errorf("mesh: nil next pointer in loop %s", l)
		}
		if he == l.First {
			return hes, nil
		}
		if len(hes) > maxCycle {
			return nil, fmt.Errorf("mesh: runaway half-edge cycle in loop %s", l)
		}
	}
}

// Len returns the number of edges of the loop.
func (l *Loop) Len() (int, error) {
	hes, err := l.HalfEdges()
	return len(hes), err
}

// Vertices returns the loop's vertices in cycle order.
func (l *Loop) Vertices() ([]*Vertex, error) {
	hes, err := l.HalfEdges()
	if err != nil {
		return nil, err
	}
	vs := make([]*Vertex, len(hes))
	for i, he := range hes {
		vs[i] = he.To
	}
	return vs, nil
}

// InEdges returns the half-edges pointing to v, in twin.Prev walking order.
func (v *Vertex) InEdges() ([]*HalfEdge, error) {
	if v.FirstOut == nil {
		return nil, fmt.Errorf("mesh: vertex %s has no outgoing half-edge", v)
	}
	start := v.FirstOut.Twin
	var hes []*HalfEdge
	he := start
	for {
		if he == nil || he.Twin == nil || he.Twin.Prev == nil {
			return nil, fmt.Errorf("mesh: broken half-edge ring at vertex %s", v)
		}
		hes = append(hes, he)
		he = he.Twin.Prev
		if he == start {
			return hes, nil
		}
		if len(hes) > maxCycle {
			return nil, fmt.Errorf("mesh: runaway half-edge ring at vertex %s", v)
		}
	}
}

// OutEdges returns the half-edges leaving v.
func (v *Vertex) OutEdges() ([]*HalfEdge, error) {
	ins, err := v.InEdges()
	if err != nil {
		return nil, err
	}
	outs := make([]*HalfEdge, len(ins))
	for i, he := range ins {
		outs[i] = he.Twin
	}
	return outs, nil
}

// Neighbors returns the vertices connected to v by an edge.
func (v *Vertex) Neighbors() ([]*Vertex, error) {
	outs, err := v.OutEdges()
	if err != nil {
		return nil, err
	}
	ns := make([]*Vertex, len(outs))
	for i, he := range outs {
		ns[i] = he.To
	}
	return ns, nil
}
