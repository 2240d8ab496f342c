// Package tiles partitions an image plane into the regular grid of
// rectangular regions that tile-local operations work over.
package tiles

import "fmt"

// Tile is one rectangular region of a Grid. Bounds are half-open pixel
// ranges: rows [Y0, Y1), columns [X0, X1).
type Tile struct {
	Row, Col       int
	Y0, Y1, X0, X1 int
}

// CenterY returns the vertical center of the tile in pixel coordinates.
func (t Tile) CenterY() float64 { return float64(t.Y0+t.Y1-1) / 2 }

// CenterX returns the horizontal center of the tile in pixel coordinates.
func (t Tile) CenterX() float64 { return float64(t.X0+t.X1-1) / 2 }

// Grid is a gap-free covering of an imageH x imageW plane by Rows*Cols
// tiles. Division remainders are folded into the last row and column, so
// tiles may differ in size by a few pixels.
type Grid struct {
	Rows, Cols     int
	ImageH, ImageW int
	tiles          []Tile
}

// New builds a grid. Requested tile counts must be at least 1 per axis;
// counts larger than the image dimension collapse to one pixel row or
// column per tile.
func New(imageH, imageW, rows, cols int) (*Grid, error) {
	if imageH < 1 || imageW < 1 {
		return nil, fmt.Errorf("invalid plane dimensions %dx%d", imageW, imageH)
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("tile count must be at least 1 per axis, got %dx%d", rows, cols)
	}
	if rows > imageH {
		rows = imageH
	}
	if cols > imageW {
		cols = imageW
	}

	g := &Grid{Rows: rows, Cols: cols, ImageH: imageH, ImageW: imageW}
	g.tiles = make([]Tile, 0, rows*cols)

	tileH := imageH / rows
	tileW := imageW / cols
	for r := 0; r < rows; r++ {
		y0 := r * tileH
		y1 := y0 + tileH
		if r == rows-1 {
			y1 = imageH
		}
		for c := 0; c < cols; c++ {
			x0 := c * tileW
			x1 := x0 + tileW
			if c == cols-1 {
				x1 = imageW
			}
			g.tiles = append(g.tiles, Tile{Row: r, Col: c, Y0: y0, Y1: y1, X0: x0, X1: x1})
		}
	}
	return g, nil
}

// At returns the tile at grid position (row, col).
func (g *Grid) At(row, col int) Tile {
	return g.tiles[row*g.Cols+col]
}

// Tiles returns all tiles in row-major order.
func (g *Grid) Tiles() []Tile { return g.tiles }

// RowCenters returns the vertical tile centers, ascending.
func (g *Grid) RowCenters() []float64 {
	centers := make([]float64, g.Rows)
	for r := 0; r < g.Rows; r++ {
		centers[r] = g.At(r, 0).CenterY()
	}
	return centers
}

// ColCenters returns the horizontal tile centers, ascending.
func (g *Grid) ColCenters() []float64 {
	centers := make([]float64, g.Cols)
	for c := 0; c < g.Cols; c++ {
		centers[c] = g.At(0, c).CenterX()
	}
	return centers
}

// Extract copies the tile's samples out of a row-major plane.
func (g *Grid) Extract(plane []float64, t Tile) []float64 {
	out := make([]float64, 0, (t.Y1-t.Y0)*(t.X1-t.X0))
	for y := t.Y0; y < t.Y1; y++ {
		out = append(out, plane[y*g.ImageW+t.X0:y*g.ImageW+t.X1]...)
	}
	return out
}
