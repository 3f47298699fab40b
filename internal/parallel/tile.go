package parallel

// Tile size constants. 8x4 matches the compute workgroup used by the GPU
// backend, so both paths cover a level with the same invocation grid.
const (
	// TileWidth is the width of a dispatch tile in pixels.
	TileWidth = 8

	// TileHeight is the height of a dispatch tile in pixels.
	TileHeight = 4
)

// TileCount returns the number of tiles covering a width x height level,
// rounding up so edge pixels fall into partial tiles.
func TileCount(width, height int) (tx, ty int) {
	tx = (width + TileWidth - 1) / TileWidth
	ty = (height + TileHeight - 1) / TileHeight
	return tx, ty
}

// ForEachPixel invokes fn once per invocation of a width x height dispatch,
// tiled across the pool. Like a GPU dispatch with rounded-up workgroup
// counts, fn is also called for overrun coordinates in edge tiles
// (x >= width or y >= height); fn must bounds-guard its write.
// ForEachPixel returns only after every invocation has completed.
func ForEachPixel(pool *WorkerPool, width, height int, fn func(x, y int)) {
	if width <= 0 || height <= 0 {
		return
	}

	tx, ty := TileCount(width, height)
	work := make([]func(), 0, tx*ty)
	for tj := 0; tj < ty; tj++ {
		for ti := 0; ti < tx; ti++ {
			x0 := ti * TileWidth
			y0 := tj * TileHeight
			work = append(work, func() {
				for y := y0; y < y0+TileHeight; y++ {
					for x := x0; x < x0+TileWidth; x++ {
						fn(x, y)
					}
				}
			})
		}
	}

	pool.ExecuteAll(work)
}
