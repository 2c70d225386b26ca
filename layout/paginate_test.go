package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGeometryCapacity(t *testing.T) {
	g := Geometry{Columns: 2, PageHeight: 842, Margin: 150, BlockHeight: 28}
	// floor((842-150)/28) = 24
	if got := g.PerColumn(); got != 24 {
		t.Fatalf("PerColumn = %d, want 24", got)
	}
	if got := g.PerPage(); got != 48 {
		t.Fatalf("PerPage = %d, want 48", got)
	}
	if got := g.RowY(100, 3); got != 184 {
		t.Fatalf("RowY = %g, want 184", got)
	}
}

func TestGeometryClampsDegenerateValues(t *testing.T) {
	g := Geometry{Columns: 0, PageHeight: 100, Margin: 150, BlockHeight: 28}
	if g.PerColumn() != 1 || g.PerPage() != 1 {
		t.Fatalf("expected capacity clamped to 1, got %d/%d", g.PerColumn(), g.PerPage())
	}
	if (Geometry{BlockHeight: 0}).PerColumn() != 1 {
		t.Fatalf("zero block height should clamp to 1")
	}
}

func TestPaginateSmallExample(t *testing.T) {
	// 每栏 2 个，每页 2 栏 → 每页 4 个
	g := Geometry{Columns: 2, PageHeight: 100, Margin: 40, BlockHeight: 30}
	got := Paginate(6, g)
	want := []Slot{
		{Page: 0, Column: 0, Row: 0},
		{Page: 0, Column: 0, Row: 1},
		{Page: 0, Column: 1, Row: 0},
		{Page: 0, Column: 1, Row: 1},
		{Page: 1, Column: 0, Row: 0, NewPage: true},
		{Page: 1, Column: 0, Row: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestPaginateIsBijection(t *testing.T) {
	for _, columns := range []int{1, 2, 3, 5} {
		for _, k := range []int{0, 1, 7, 48, 49, 200} {
			g := Geometry{Columns: columns, PageHeight: 842, Margin: 150, BlockHeight: 64}
			slots := Paginate(k, g)
			if len(slots) != k {
				t.Fatalf("columns=%d k=%d: got %d slots", columns, k, len(slots))
			}
			seen := map[Slot]bool{}
			perColumn, perPage := g.PerColumn(), g.PerPage()
			for i, s := range slots {
				key := Slot{Page: s.Page, Column: s.Column, Row: s.Row}
				if seen[key] {
					t.Fatalf("columns=%d k=%d: duplicate slot %+v", columns, k, key)
				}
				seen[key] = true
				// 槽位可以唯一还原输入下标，且保持输入顺序
				if back := s.Page*perPage + s.Column*perColumn + s.Row; back != i {
					t.Fatalf("columns=%d k=%d: slot %+v maps back to %d, want %d", columns, k, s, back, i)
				}
				if s.Column >= columns || s.Row >= perColumn {
					t.Fatalf("slot %+v out of bounds", s)
				}
				if s.NewPage != (i > 0 && i%perPage == 0) {
					t.Fatalf("index %d: NewPage = %v", i, s.NewPage)
				}
			}
		}
	}
}
