package cursor

import "testing"

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		delta      int
		listLen    int
		height     int
		wantPos    int
		wantOffset int
	}{
		{"down within view", 0, 1, 10, 5, 1, 0},
		{"up clamps at zero", 0, -3, 10, 5, 0, 0},
		{"down clamps at end", 8, 5, 10, 5, 9, 5},
		{"scrolls keeping margin", 2, 1, 20, 5, 3, 0},
		{"scrolls past margin", 3, 1, 20, 5, 4, 1},
		{"empty list", 0, 1, 0, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1)
			c.Jump(tt.start, tt.listLen, tt.height)
			c.Move(tt.delta, tt.listLen, tt.height)
			if c.Pos() != tt.wantPos || c.Offset() != tt.wantOffset {
				t.Errorf("got pos=%d offset=%d, want pos=%d offset=%d",
					c.Pos(), c.Offset(), tt.wantPos, tt.wantOffset)
			}
		})
	}
}

func TestClampToBounds(t *testing.T) {
	c := New(0)
	c.Jump(15, 20, 5)

	c.ClampToBounds(4, 5)

	if c.Pos() != 3 || c.Offset() != 0 {
		t.Errorf("got pos=%d offset=%d, want 3/0", c.Pos(), c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)
	c.Jump(12, 20, 5)

	start, end := c.VisibleRange(20, 5)

	if start != 8 || end != 13 {
		t.Errorf("VisibleRange = [%d,%d), want [8,13)", start, end)
	}
	if s, e := c.VisibleRange(0, 5); s != 0 || e != 0 {
		t.Errorf("empty VisibleRange = [%d,%d)", s, e)
	}
}

func TestHandleKey(t *testing.T) {
	c := New(0)
	if !c.HandleKey("G", 10, 4) || c.Pos() != 9 {
		t.Fatalf("G: pos=%d", c.Pos())
	}
	if !c.HandleKey("pgup", 10, 4) || c.Pos() != 7 {
		t.Fatalf("pgup: pos=%d", c.Pos())
	}
	if !c.HandleKey("g", 10, 4) || c.Pos() != 0 {
		t.Fatalf("g: pos=%d", c.Pos())
	}
	if c.HandleKey("x", 10, 4) {
		t.Error("x should not be handled")
	}
}
