package parallel

import (
	"sync"
	"testing"
)

func TestTileCount(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		wantTX, wantTY int
	}{
		{name: "exact multiple", width: 16, height: 8, wantTX: 2, wantTY: 2},
		{name: "round up x", width: 17, height: 8, wantTX: 3, wantTY: 2},
		{name: "round up y", width: 16, height: 9, wantTX: 2, wantTY: 3},
		{name: "single pixel", width: 1, height: 1, wantTX: 1, wantTY: 1},
		{name: "one tile", width: 8, height: 4, wantTX: 1, wantTY: 1},
		{name: "just over one tile", width: 9, height: 5, wantTX: 2, wantTY: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ty := TileCount(tt.width, tt.height)
			if tx != tt.wantTX || ty != tt.wantTY {
				t.Errorf("TileCount(%d, %d) = (%d, %d), want (%d, %d)",
					tt.width, tt.height, tx, ty, tt.wantTX, tt.wantTY)
			}
		})
	}
}

func TestForEachPixel_CoversEveryPixelOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Dimensions that are not a multiple of the tile size.
	const w, h = 21, 13

	var mu sync.Mutex
	counts := make(map[[2]int]int)

	ForEachPixel(pool, w, h, func(x, y int) {
		if x >= w || y >= h {
			// Edge-tile overrun, the invocation must bounds-guard.
			return
		}
		mu.Lock()
		counts[[2]int{x, y}]++
		mu.Unlock()
	})

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if counts[[2]int{x, y}] != 1 {
				t.Fatalf("pixel (%d,%d) invoked %d times, want 1", x, y, counts[[2]int{x, y}])
			}
		}
	}
	if len(counts) != w*h {
		t.Errorf("in-bounds invocations = %d, want %d", len(counts), w*h)
	}
}

func TestForEachPixel_InvokesOverrunCoordinates(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	// 9x5 needs 2x2 tiles of 8x4: total invocations 16x8.
	var mu sync.Mutex
	total := 0

	ForEachPixel(pool, 9, 5, func(x, y int) {
		mu.Lock()
		total++
		mu.Unlock()
	})

	want := 16 * 8
	if total != want {
		t.Errorf("total invocations = %d, want %d (rounded-up tile grid)", total, want)
	}
}

func TestForEachPixel_EmptyDispatch(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	ForEachPixel(pool, 0, 10, func(x, y int) { called = true })
	ForEachPixel(pool, 10, 0, func(x, y int) { called = true })
	if called {
		t.Error("ForEachPixel invoked fn for empty dispatch")
	}
}

func TestForEachPixel_ReturnsAfterCompletion(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Writes from one dispatch must be visible to the next.
	const w, h = 32, 32
	buf := make([]int, w*h)

	ForEachPixel(pool, w, h, func(x, y int) {
		if x >= w || y >= h {
			return
		}
		buf[y*w+x] = 1
	})
	ForEachPixel(pool, w, h, func(x, y int) {
		if x >= w || y >= h {
			return
		}
		buf[y*w+x]++
	})

	for i, v := range buf {
		if v != 2 {
			t.Fatalf("buf[%d] = %d, want 2 (pass barrier violated)", i, v)
		}
	}
}
