// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package starfold

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/hcschuetz/star-folding/mesh"
)

// PolygonEdge is one edge of the outer polygon: its user-chosen name, the
// corner it starts from, and the inward vertex obtained by rotating the edge
// direction by 60°. The three points form an equilateral triangle, so the
// two star-boundary segments of the edge have equal length and can be glued
// onto each other when folding completes.
type PolygonEdge struct {
	Name  string
	From  r3.Vector
	Inner r3.Vector
}

// stepVector returns the displacement of one clock-direction step on the
// 30°-rotated triangular lattice: even steps are lattice neighbors at unit
// distance, odd steps are next-nearest neighbors at distance √3.
func stepVector(step int) (r3.Vector, error) {
	if step < 1 || step > 12 {
		return r3.Vector{}, fmt.Errorf("starfold: step %d out of range 1..12", step)
	}
	length := 1.0
	if step%2 == 1 {
		length = math.Sqrt(3)
	}
	angle := (4 - float64(step)) * math.Pi / 6
	return r3.Vector{X: length * math.Cos(angle), Y: length * math.Sin(angle)}, nil
}

// rotate60 rotates v by +60° in the polygon plane.
func rotate60(v r3.Vector) r3.Vector {
	const c, s = 0.5, 0.8660254037844386 // cos 60°, sin 60°
	return r3.Vector{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

// ParsePolygon parses a star definition: one line per outer-polygon edge,
// `<name> <step> [<step> ...]`, blank lines and lines starting with // or #
// ignored. The steps of all edges must add up to a closed polygon within
// closureEps (squared norm).
func ParsePolygon(text string, closureEps float64) ([]PolygonEdge, error) {
	var edges []PolygonEdge
	names := map[string]bool{}
	pos := r3.Vector{}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("starfold: line %d: edge needs a name and at least one step", i+1)
		}
		name := fields[0]
		if names[name] {
			return nil, fmt.Errorf("starfold: line %d: duplicate edge name %q", i+1, name)
		}
		names[name] = true

		d := r3.Vector{}
		for _, f := range fields[1:] {
			step, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("starfold: line %d: step %q is not an integer", i+1, f)
			}
			sv, err := stepVector(step)
			if err != nil {
				return nil, fmt.Errorf("starfold: line %d: %w", i+1, err)
			}
			d = d.Add(sv)
		}
		edges = append(edges, PolygonEdge{
			Name:  name,
			From:  pos,
			Inner: pos.Add(rotate60(d)),
		})
		pos = pos.Add(d)
	}

	if len(edges) < 2 {
		return nil, fmt.Errorf("starfold: polygon needs at least 2 edges, got %d", len(edges))
	}
	if pos.Norm2() > closureEps {
		return nil, fmt.Errorf("starfold: polygon not closed, ends %v away from start", pos)
	}
	return edges, nil
}

// tipName names the polygon corner between two adjacent edges.
func tipName(before, after string) string {
	return "[" + before + "^" + after + "]"
}

// buildStar builds the initial mesh: one face whose 2n vertices alternate
// polygon corners (tips) and inward edge vertices, and the boundary loop of
// its twins. The two boundary segments of each polygon edge are registered
// as peers.
func (w *Workspace) buildStar(edges []PolygonEdge) (*mesh.Mesh, error) {
	n := len(edges)
	names := make([]string, 0, 2*n)
	positions := make([]r3.Vector, 0, 2*n)
	for k, e := range edges {
		names = append(names, tipName(edges[(k+n-1)%n].Name, e.Name))
		positions = append(positions, e.From)
		names = append(names, e.Name)
		positions = append(positions, e.Inner)
	}

	m, err := mesh.New(mesh.WithPlanarEps(w.planarEps), mesh.WithPeerEps(w.peerEps))
	if err != nil {
		return nil, err
	}
	face, boundary, err := m.AddCore("star", "boundary", names[0], names[1])
	if err != nil {
		return nil, err
	}

	// Grow the seed 2-gon into the 2n-gon by splitting the closing edge.
	hes, err := face.HalfEdges()
	if err != nil {
		return nil, err
	}
	he := hes[1] // names[1] -> names[0]
	for _, name := range names[2:] {
		if _, he, err = m.SplitEdgeAcross(he, name); err != nil {
			return nil, err
		}
	}

	for i, name := range names {
		v, err := m.Vertex(name)
		if err != nil {
			return nil, err
		}
		v.Pos = positions[i]
	}

	for _, e := range edges {
		v, err := m.Vertex(e.Name)
		if err != nil {
			return nil, err
		}
		hb, err := incomingOnLoop(v, boundary)
		if err != nil {
			return nil, err
		}
		if err := m.SetPeers(hb, hb.Next); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// incomingOnLoop returns the unique half-edge pointing to v on the given
// loop.
func incomingOnLoop(v *mesh.Vertex, l *mesh.Loop) (*mesh.HalfEdge, error) {
	ins, err := v.InEdges()
	if err != nil {
		return nil, err
	}
	var found *mesh.HalfEdge
	for _, he := range ins {
		if he.Loop == l {
			if found != nil {
				return nil, fmt.Errorf("starfold: vertex %s occurs more than once on %s", v, l)
			}
			found = he
		}
	}
	if found == nil {
		return nil, fmt.Errorf("starfold: vertex %s is not on %s", v, l)
	}
	return found, nil
}
