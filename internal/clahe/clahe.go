// Package clahe implements contrast-limited adaptive histogram
// equalization over a single intensity plane: per-tile clipped mapping
// curves blended by bilinear interpolation between tile centers.
package clahe

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"contrast-conjurer/internal/equalize"
	"contrast-conjurer/internal/stats"
	"contrast-conjurer/internal/tiles"
)

// Options configures one enhancement call.
type Options struct {
	TileRows  int     // tile grid rows, >= 1
	TileCols  int     // tile grid columns, >= 1
	ClipLimit float64 // multiple of mean bin count; 0 disables clipping
	Levels    int     // quantization levels, >= 2
	Lo, Hi    float64 // declared intensity range of the plane
	OutputMax float64 // top of the output range (usually Hi)
}

func (o Options) validate() error {
	if o.TileRows < 1 || o.TileCols < 1 {
		return fmt.Errorf("tile count must be at least 1 per axis, got %dx%d", o.TileRows, o.TileCols)
	}
	if o.ClipLimit < 0 {
		return fmt.Errorf("clip limit must be non-negative, got %g", o.ClipLimit)
	}
	if o.Levels < 2 {
		return fmt.Errorf("quantization levels must be at least 2, got %d", o.Levels)
	}
	return nil
}

// neighbor describes, for one pixel coordinate on an axis, the two tile
// indices it sits between and its fractional position between their
// centers. Outside the first and last centers the weight clamps to the
// nearest valid tile instead of extrapolating.
type neighbor struct {
	lo, hi int
	t      float64
}

func axisNeighbors(n int, centers []float64) []neighbor {
	out := make([]neighbor, n)
	for p := 0; p < n; p++ {
		fp := float64(p)
		switch {
		case fp <= centers[0]:
			out[p] = neighbor{lo: 0, hi: 0}
		case fp >= centers[len(centers)-1]:
			last := len(centers) - 1
			out[p] = neighbor{lo: last, hi: last}
		default:
			i := 0
			for centers[i+1] < fp {
				i++
			}
			out[p] = neighbor{
				lo: i,
				hi: i + 1,
				t:  (fp - centers[i]) / (centers[i+1] - centers[i]),
			}
		}
	}
	return out
}

// Enhance runs CLAHE over a row-major w x h plane and returns a new plane
// of remapped values in [0, OutputMax]. The input plane is not modified.
//
// Tile mappings are built in parallel; interpolation starts only after
// every tile's curve is complete.
func Enhance(ctx context.Context, plane []float64, w, h int, opts Options) ([]float64, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(plane) != w*h {
		return nil, fmt.Errorf("plane length mismatch: got %d, want %d", len(plane), w*h)
	}

	grid, err := tiles.New(h, w, opts.TileRows, opts.TileCols)
	if err != nil {
		return nil, err
	}

	mappings := make([][]float64, len(grid.Tiles()))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, tile := range grid.Tiles() {
		i, tile := i, tile
		g.Go(func() error {
			region := grid.Extract(plane, tile)
			hist := stats.Histogram(region, opts.Levels, opts.Lo, opts.Hi)
			mappings[i] = equalize.BuildMapping(hist, opts.ClipLimit, opts.OutputMax)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rowN := axisNeighbors(h, grid.RowCenters())
	colN := axisNeighbors(w, grid.ColCenters())

	out := make([]float64, len(plane))
	for y := 0; y < h; y++ {
		ny := rowN[y]
		for x := 0; x < w; x++ {
			nx := colN[x]
			bin := stats.Quantize(plane[y*w+x], opts.Levels, opts.Lo, opts.Hi)

			topLeft := mappings[ny.lo*grid.Cols+nx.lo][bin]
			topRight := mappings[ny.lo*grid.Cols+nx.hi][bin]
			botLeft := mappings[ny.hi*grid.Cols+nx.lo][bin]
			botRight := mappings[ny.hi*grid.Cols+nx.hi][bin]

			top := (1-nx.t)*topLeft + nx.t*topRight
			bot := (1-nx.t)*botLeft + nx.t*botRight
			out[y*w+x] = (1-ny.t)*top + ny.t*bot
		}
	}
	return out, nil
}
