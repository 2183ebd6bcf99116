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

package raster

import (
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func mustEdge(t *testing.T, x0, y0, x1, y1 float64) *Edge {
	t.Helper()
	e, ok := NewEdge(vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y1})
	if !ok {
		t.Fatalf("edge (%g,%g)-(%g,%g) is degenerate", x0, y0, x1, y1)
	}
	return &e
}

func TestAdvanceAgreesWithResetTo(t *testing.T) {
	a := mustEdge(t, 0, 0, 37, 100)
	b := mustEdge(t, 50, 0, -13, 100)

	stepped := NewActiveEdgeTable(0)
	stepped.Insert(a)
	stepped.Insert(b)

	ac, bc := *a, *b
	direct := NewActiveEdgeTable(0)
	direct.Insert(&ac)
	direct.Insert(&bc)

	for k := 1; k < 100; k++ {
		stepped.Advance()
		direct.ResetTo(k)
		if stepped.ScanLine() != k || direct.ScanLine() != k {
			t.Fatalf("scanlines %d/%d, want %d", stepped.ScanLine(), direct.ScanLine(), k)
		}
		if math.Abs(a.X-ac.X) > 1e-9 || math.Abs(b.X-bc.X) > 1e-9 {
			t.Fatalf("row %d: advanced (%g, %g), direct (%g, %g)", k, a.X, b.X, ac.X, bc.X)
		}
	}
}

func TestInsertSetsX(t *testing.T) {
	e := mustEdge(t, 0, 0, 10, 10)
	tab := NewActiveEdgeTable(4)
	tab.Insert(e)
	if e.X != 4.5 {
		t.Errorf("X = %g, want 4.5", e.X)
	}
}

func TestInsertDegenerate(t *testing.T) {
	tab := NewActiveEdgeTable(0)
	tab.Insert(&Edge{YTop: 5, YBottom: 5})
	if !tab.Empty() {
		t.Errorf("degenerate edge was inserted, Len() = %d", tab.Len())
	}
}

func TestPrune(t *testing.T) {
	tab := NewActiveEdgeTable(0)
	short := mustEdge(t, 0, 0, 0, 2)
	long := mustEdge(t, 5, 0, 5, 4)
	tab.Insert(short)
	tab.Insert(long)

	tab.Advance()
	tab.Prune(tab.ScanLine())
	if tab.Len() != 2 {
		t.Fatalf("row 1: Len() = %d, want 2", tab.Len())
	}

	tab.Advance()
	tab.Prune(tab.ScanLine())
	if tab.Len() != 1 || tab.At(0) != long {
		t.Fatalf("row 2: want only the long edge, got %s", tab)
	}
}

func TestSortByXStable(t *testing.T) {
	tab := NewActiveEdgeTable(0)
	var edges []*Edge
	for _, x := range []float64{7, 3, 3, 1, 3} {
		e := mustEdge(t, x, 0, x, 10)
		edges = append(edges, e)
		tab.Insert(e)
	}
	tab.SortByX()

	want := []*Edge{edges[3], edges[1], edges[2], edges[4], edges[0]}
	for i, e := range want {
		if tab.At(i) != e {
			t.Fatalf("position %d holds %s, want %s", i, tab.At(i), e)
		}
	}
}

func TestSortByXCrossing(t *testing.T) {
	tab := NewActiveEdgeTable(0)
	a := mustEdge(t, 0, 0, 10, 10)
	b := mustEdge(t, 10, 0, 0, 10)
	tab.Insert(a)
	tab.Insert(b)

	tab.SortByX()
	if tab.At(0) != a {
		t.Fatal("row 0: a should be left")
	}
	for range 8 {
		tab.Advance()
	}
	tab.SortByX()
	if tab.At(0) != b {
		t.Fatal("row 8: b should be left after crossing")
	}
}

func TestIsFillable(t *testing.T) {
	tab := NewActiveEdgeTable(0)
	if tab.IsFillable() {
		t.Error("empty table is fillable")
	}
	tab.Insert(mustEdge(t, 0, 0, 0, 3))
	if !tab.IsFillable() {
		t.Error("table with covering edge is not fillable")
	}
	tab.ResetTo(3)
	if tab.IsFillable() {
		t.Error("table past the edge is fillable")
	}
}

func TestTableString(t *testing.T) {
	tab := NewActiveEdgeTable(2)
	tab.Insert(mustEdge(t, 1, 0, 1, 5))
	tab.Insert(mustEdge(t, 4, 0, 4, 5))
	s := tab.String()
	if strings.Count(s, "2: ") != 2 {
		t.Errorf("unexpected String() output %q", s)
	}
}

func TestReset(t *testing.T) {
	tab := NewActiveEdgeTable(0)
	tab.Insert(mustEdge(t, 0, 0, 0, 3))
	tab.Reset(7)
	if !tab.Empty() || tab.ScanLine() != 7 {
		t.Errorf("after Reset: Len() = %d, ScanLine() = %d", tab.Len(), tab.ScanLine())
	}
}
