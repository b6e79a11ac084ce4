// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/hcschuetz/star-folding/mesh"
)

// Snapshot is a read-only copy of the mesh state, decoupled from the live
// topology: renderers and tests can hold it across further operations.
type Snapshot struct {
	Vertices []SnapshotVertex
	Edges    []SnapshotEdge
	Loops    []SnapshotLoop
}

// SnapshotVertex is one vertex with its current position.
type SnapshotVertex struct {
	Name string
	Pos  r3.Vector
}

// SnapshotEdge is one undirected edge, named by its two end vertices.
type SnapshotEdge struct {
	From, To string
	// Boundary is set when one of the edge's half-edges lies on the
	// boundary loop.
	Boundary bool
}

// SnapshotLoop is one loop as its cyclic vertex name sequence.
type SnapshotLoop struct {
	Name     string
	IsFace   bool
	Vertices []string
}

// Snapshot captures the current mesh. The slices are ordered by creation,
// so successive snapshots of an unchanged mesh are equal.
func (w *Workspace) Snapshot() (*Snapshot, error) {
	if w.mesh == nil {
		return nil, fmt.Errorf("starfold: no mesh, call Setup first")
	}
	s := &Snapshot{}
	for _, v := range w.mesh.AllVertices() {
		s.Vertices = append(s.Vertices, SnapshotVertex{Name: v.Name, Pos: v.Pos})
	}
	seen := map[*mesh.HalfEdge]bool{}
	for _, l := range w.mesh.AllLoops() {
		hes, err := l.HalfEdges()
		if err != nil {
			return nil, err
		}
		names := make([]string, len(hes))
		for i, he := range hes {
			names[i] = he.To.Name
			if !seen[he.Twin] {
				seen[he] = true
				s.Edges = append(s.Edges, SnapshotEdge{
					From:     he.From().Name,
					To:       he.To.Name,
					Boundary: !he.Loop.IsFace || !he.Twin.Loop.IsFace,
				})
			}
		}
		s.Loops = append(s.Loops, SnapshotLoop{Name: l.Name, IsFace: l.IsFace, Vertices: names})
	}
	return s, nil
}
