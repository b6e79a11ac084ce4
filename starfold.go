// Copyright (c) 2026 The star-folding authors
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package starfold folds a flat star-shaped polygon (the unfolding of a
// polyhedron) into a 3-D polyhedral surface, driven by a small line-oriented
// script of folding operations. The topology lives in package mesh; the
// numeric work in package ga.
package starfold

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hcschuetz/star-folding/mesh"
)

const (
	defaultCoincidenceEps = 1e-8
	defaultNearbyEps      = 1e-4
	defaultPeerEps        = 1e-3
	defaultClosureEps     = 1e-6
	defaultPlanarEps      = 1e-8
)

// Tracer receives human-readable progress text from the folding operations.
// It is never used for control flow.
type Tracer interface {
	Record(format string, args ...any)
}

type nopTracer struct{}

func (nopTracer) Record(string, ...any) {}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(format string, args ...any)

// Record implements Tracer.
func (f TracerFunc) Record(format string, args ...any) { f(format, args...) }

// Workspace holds one evolving mesh and the tolerances of the folding
// operations. A failed operation leaves the mesh in the state it had at the
// point of failure; there is no rollback, re-run the script from scratch.
type Workspace struct {
	mesh   *mesh.Mesh
	tracer Tracer

	coincidenceEps float64
	nearbyEps      float64
	peerEps        float64
	closureEps     float64
	planarEps      float64
}

// Option configures a Workspace.
type Option func(*Workspace) error

// WithTracer directs progress text to t.
func WithTracer(t Tracer) Option {
	return func(w *Workspace) error {
		if t == nil {
			return fmt.Errorf("starfold: nil tracer")
		}
		w.tracer = t
		return nil
	}
}

func setEps(name string, dst *float64, eps float64) error {
	if eps <= 0 {
		return fmt.Errorf("starfold: %s eps must be positive, got %v", name, eps)
	}
	*dst = eps
	return nil
}

// WithCoincidenceEps sets the tolerance below which two points count as the
// same point (vertex merging, post-rotation alignment).
func WithCoincidenceEps(eps float64) Option {
	return func(w *Workspace) error { return setEps("coincidence", &w.coincidenceEps, eps) }
}

// WithNearbyEps sets the distance below which two distinct vertices are
// reported as suspiciously close.
func WithNearbyEps(eps float64) Option {
	return func(w *Workspace) error { return setEps("nearby", &w.nearbyEps, eps) }
}

// WithPeerEps sets the relative tolerance of the peer edge-length check.
func WithPeerEps(eps float64) Option {
	return func(w *Workspace) error { return setEps("peer", &w.peerEps, eps) }
}

// WithClosureEps sets the tolerance of the polygon closure check.
func WithClosureEps(eps float64) Option {
	return func(w *Workspace) error { return setEps("closure", &w.closureEps, eps) }
}

// WithPlanarEps sets the tolerance of the face planarity check.
func WithPlanarEps(eps float64) Option {
	return func(w *Workspace) error { return setEps("planar", &w.planarEps, eps) }
}

// New returns a workspace without a mesh; call Setup to build the star.
func New(setters ...Option) (*Workspace, error) {
	w := &Workspace{
		tracer:         nopTracer{},
		coincidenceEps: defaultCoincidenceEps,
		nearbyEps:      defaultNearbyEps,
		peerEps:        defaultPeerEps,
		closureEps:     defaultClosureEps,
		planarEps:      defaultPlanarEps,
	}
	for _, set := range setters {
		if err := set(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Mesh exposes the current mesh, mainly for tests and snapshots.
func (w *Workspace) Mesh() *mesh.Mesh {
	return w.mesh
}

// Setup parses a polygon definition and builds the initial star mesh,
// replacing any previous mesh.
func (w *Workspace) Setup(polygonText string) error {
	edges, err := ParsePolygon(polygonText, w.closureEps)
	if err != nil {
		return err
	}
	m, err := w.buildStar(edges)
	if err != nil {
		return err
	}
	if err := m.Check(); err != nil {
		return err
	}
	w.mesh = m
	w.tracer.Record("setup: star with %d vertices", m.NumVertices())
	return nil
}

// CheckConsistency re-runs the kernel invariant check on the current mesh.
func (w *Workspace) CheckConsistency() error {
	if w.mesh == nil {
		return fmt.Errorf("starfold: no mesh, call Setup first")
	}
	return w.mesh.Check()
}

// RunScript runs one operation per non-blank, non-comment line. It stops at
// the first failing operation, wrapping its error with the line number.
func (w *Workspace) RunScript(text string) error {
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := w.RunOperation(fields[0], fields[1:]); err != nil {
			return fmt.Errorf("line %d (%s): %w", i+1, fields[0], err)
		}
	}
	return nil
}

// RunOperation dispatches one named operation. After a successful operation
// the mesh has been re-checked and nearby-vertex diagnostics have been
// traced.
func (w *Workspace) RunOperation(name string, args []string) error {
	if w.mesh == nil {
		return fmt.Errorf("starfold: no mesh, call Setup first")
	}
	var err error
	switch name {
	case "bend":
		err = w.runBend(args)
	case "bend2":
		err = w.runBend2(args)
	case "reattach":
		err = w.runReattach(args)
	case "contract":
		err = w.runContract(args)
	default:
		return fmt.Errorf("starfold: unknown operation %q", name)
	}
	if err != nil {
		return err
	}
	if err := w.mesh.Check(); err != nil {
		return err
	}
	w.reportNearbyVertices()
	return nil
}

func (w *Workspace) runBend(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("starfold: bend needs an angle and at least two vertices, got %d arguments", len(args))
	}
	angle, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("starfold: bend angle %q is not a number", args[0])
	}
	return w.Bend(angle, args[1:])
}

func (w *Workspace) runBend2(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("starfold: bend2 needs a +/- flag and three vertices, got %d arguments", len(args))
	}
	var positive bool
	switch args[0] {
	case "+":
		positive = true
	case "-":
		positive = false
	default:
		return fmt.Errorf("starfold: bend2 flag must be + or -, got %q", args[0])
	}
	return w.Bend2(positive, args[1], args[2], args[3])
}

func (w *Workspace) runReattach(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("starfold: reattach needs two vertices, got %d arguments", len(args))
	}
	return w.Reattach(args[0], args[1])
}

func (w *Workspace) runContract(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("starfold: contract needs an iteration count, got %d arguments", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("starfold: contract count %q is not a non-negative integer", args[0])
	}
	return w.Contract(n)
}

// reportNearbyVertices traces pairs of distinct vertices that are closer
// than the nearby tolerance. Purely diagnostic.
func (w *Workspace) reportNearbyVertices() {
	vs := w.mesh.AllVertices()
	for i, a := range vs {
		for _, b := range vs[i+1:] {
			if d := a.Pos.Sub(b.Pos).Norm(); d < w.nearbyEps {
				w.tracer.Record("nearby vertices: %s and %s at distance %g", a, b, d)
			}
		}
	}
}
