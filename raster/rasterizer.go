// seehuhn.de/go/render3d - a software 3D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster converts polygons into horizontal pixel spans using an
// active edge table.
package raster

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/render3d/internal/logging"
)

var (
	// ErrTooFewVertices is returned for polygons with less than three vertices.
	ErrTooFewVertices = errors.New("raster: polygon has fewer than 3 vertices")

	// ErrOddEdgeCount is returned if a scanline intersects an odd number of
	// edges, so that the edges cannot be paired into spans.
	ErrOddEdgeCount = errors.New("raster: odd number of active edges")

	// ErrEdgeNotDrained is returned if edges are still active after the
	// last row of the polygon's bounding box.
	ErrEdgeNotDrained = errors.New("raster: active edges left after last row")

	// ErrMalformedPolygon is returned for vertices with non-finite coordinates.
	ErrMalformedPolygon = errors.New("raster: malformed polygon")

	// ErrUnsupportedCommand is returned by FillPath for unknown path commands.
	ErrUnsupportedCommand = errors.New("raster: unsupported path command")
)

// Projector maps a point in view space to screen coordinates and depth.
type Projector interface {
	Project(p mgl64.Vec3) (screen vec.Vec2, depth float64)
}

// SpanFunc receives the pixels xStart, ..., xEnd-1 of row y.
type SpanFunc func(y, xStart, xEnd int)

// Rasterizer converts polygons to spans of pixels.  A pixel belongs to a
// polygon if its centre lies inside; pixel centres on a left or top edge
// are inside, centres on a right or bottom edge are outside.
//
// Create one instance and reuse it for multiple polygons.  Internal buffers
// grow as needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds output to this screen rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls the accuracy of curve approximation in FillPath,
	// in pixels.  Must be positive.
	Flatness float64

	edges   []Edge     // edges of the current polygon
	pending []*Edge    // edges sorted by YTop, waiting to become active
	screen  []vec.Vec2 // projected vertices
	aet     ActiveEdgeTable

	rowMin, rowMax int // rows covered by the collected edges
}

// NewRasterizer returns a Rasterizer with the given clip rectangle.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Reset prepares the Rasterizer for a new clip rectangle, preserving
// internal buffer capacity.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Clip = clip
	r.beginEdges()
	r.screen = r.screen[:0]
	r.aet.Reset(0)
}

// FillPolygon projects the vertices of a polygon and emits its spans.
// Each vertex is projected exactly once, before any edge is built.
func (r *Rasterizer) FillPolygon(vertices []mgl64.Vec3, proj Projector, emit SpanFunc) error {
	if len(vertices) < 3 {
		return ErrTooFewVertices
	}
	r.screen = r.screen[:0]
	for _, v := range vertices {
		p, _ := proj.Project(v)
		r.screen = append(r.screen, p)
	}
	return r.FillPoints(r.screen, emit)
}

// FillPoints emits the spans of the polygon with the given screen-space
// vertices.  The polygon is closed implicitly.
func (r *Rasterizer) FillPoints(pts []vec.Vec2, emit SpanFunc) error {
	if len(pts) < 3 {
		return ErrTooFewVertices
	}
	r.beginEdges()
	if err := r.addContour(pts); err != nil {
		return err
	}
	return r.scan(emit)
}

// FillPath emits the spans of a set of closed contours, using the even-odd
// rule.  Every subpath is closed implicitly.  Curves are replaced by
// polygonal approximations, see Flatness.  Contours with fewer than three
// points enclose no area and are skipped.
func (r *Rasterizer) FillPath(p *path.Data, emit SpanFunc) error {
	r.beginEdges()
	flatness := r.Flatness
	if !(flatness > 0) {
		flatness = defaultFlatness
	}

	// r.screen collects the points of the current contour
	r.screen = r.screen[:0]
	flush := func() error {
		defer func() { r.screen = r.screen[:0] }()
		if len(r.screen) < 3 {
			if len(r.screen) > 0 {
				logging.Logger().Debug("raster: skipping short contour", "points", len(r.screen))
			}
			return nil
		}
		return r.addContour(r.screen)
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if err := flush(); err != nil {
				return err
			}
			r.screen = append(r.screen, p.Coords[coordIdx])
			coordIdx++

		case path.CmdLineTo:
			r.screen = append(r.screen, p.Coords[coordIdx])
			coordIdx++

		case path.CmdQuadTo:
			if len(r.screen) == 0 {
				return fmt.Errorf("%w: curve without current point", ErrMalformedPolygon)
			}
			current := r.screen[len(r.screen)-1]
			r.screen = flattenQuadratic(r.screen, current,
				p.Coords[coordIdx], p.Coords[coordIdx+1], flatness)
			coordIdx += 2

		case path.CmdCubeTo:
			if len(r.screen) == 0 {
				return fmt.Errorf("%w: curve without current point", ErrMalformedPolygon)
			}
			current := r.screen[len(r.screen)-1]
			r.screen = flattenCubic(r.screen, current,
				p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], flatness)
			coordIdx += 3

		case path.CmdClose:
			if err := flush(); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: %v", ErrUnsupportedCommand, cmd)
		}
	}
	if err := flush(); err != nil {
		return err
	}

	return r.scan(emit)
}

// beginEdges clears the edge list of the previous polygon.
func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.rowMin = math.MaxInt
	r.rowMax = math.MinInt
}

// addContour adds the edges of one closed contour.
func (r *Rasterizer) addContour(pts []vec.Vec2) error {
	for _, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("%w: vertex (%g, %g)", ErrMalformedPolygon, p.X, p.Y)
		}
	}

	n := len(pts)
	for i := range n {
		e, ok := NewEdge(pts[i], pts[(i+1)%n])
		if !ok {
			continue
		}
		r.edges = append(r.edges, e)
		r.rowMin = min(r.rowMin, e.YTop)
		r.rowMax = max(r.rowMax, e.YBottom)
	}
	return nil
}

// scan walks the rows of the collected edges from top to bottom and emits
// the spans between pairs of active edges.
func (r *Rasterizer) scan(emit SpanFunc) error {
	if len(r.edges) == 0 {
		logging.Logger().Debug("raster: polygon has no vertical extent")
		return nil
	}

	// The active edge table holds pointers into r.edges, so r.edges
	// must not grow from here on.
	r.pending = r.pending[:0]
	for i := range r.edges {
		r.pending = append(r.pending, &r.edges[i])
	}
	slices.SortStableFunc(r.pending, func(a, b *Edge) int {
		return cmp.Compare(a.YTop, b.YTop)
	})

	minY, maxY := r.rowMin, r.rowMax
	yStart := max(minY, int(r.Clip.LLy))
	yEnd := min(maxY, int(r.Clip.URy))
	if yStart >= yEnd {
		return nil
	}

	// seed the table at the first visible row
	t := &r.aet
	t.Reset(yStart)
	next := 0
	for next < len(r.pending) && r.pending[next].YTop <= yStart {
		e := r.pending[next]
		if e.YTop == yStart {
			t.Insert(e)
		} else if e.YBottom > yStart {
			t.seed(e)
		}
		next++
	}
	if yStart > minY {
		t.ResetTo(yStart)
	}

	for t.ScanLine() < yEnd {
		y := t.ScanLine()
		t.SortByX()
		if t.IsFillable() {
			n := t.Len()
			if n%2 != 0 {
				t.Reset(0)
				return fmt.Errorf("row %d: %d edges: %w", y, n, ErrOddEdgeCount)
			}
			for i := 0; i < n; i += 2 {
				r.emitSpan(y, t.At(i).X, t.At(i+1).X, emit)
			}
		}

		t.Advance()
		for next < len(r.pending) && r.pending[next].YTop == t.ScanLine() {
			t.Insert(r.pending[next])
			next++
		}
		t.Prune(t.ScanLine())
	}

	drained := t.Empty()
	left := t.Len()
	t.Reset(0)
	if yEnd == maxY && !drained {
		return fmt.Errorf("row %d: %d edges: %w", yEnd, left, ErrEdgeNotDrained)
	}
	return nil
}

// emitSpan converts the intersections of a pair of edges to pixel
// indices and passes the span on, clipped horizontally.
func (r *Rasterizer) emitSpan(y int, xLeft, xRight float64, emit SpanFunc) {
	xStart := int(math.Ceil(xLeft - 0.5))
	xEnd := int(math.Ceil(xRight - 0.5))
	xStart = max(xStart, int(r.Clip.LLx))
	xEnd = min(xEnd, int(r.Clip.URx))
	if xStart < xEnd {
		emit(y, xStart, xEnd)
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
