package layout

import (
	"math"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/geom"
)

// staggerPeriod is the number of cells in one long row plus one short row.
const staggerPeriod = StarColumns * 2

// StarGrid returns the reference cells used to place stars, already floated
// inside the canton. The first cell of every other row is half width, which
// shifts the following row by one star offset.
func StarGrid(m Metrics) []geom.Rect {
	cells := subdivide(m.CellSize(), m.CantonSize)

	for _, c := range NthChild(refs(cells), staggerPeriod, 1) {
		c.Size.W = m.StarOffset.X
	}

	FloatLeft(cells, m.CantonSize.W)
	return cells
}

// StarPoints returns the 50 star centers in canton coordinates, row by row
// from the top-left. A candidate is the bottom-right corner of a grid cell and
// is kept only while a star there ends strictly left of the canton's right
// edge.
//
// The scan is bounded by the grid: if the cells run out before 50 centers are
// found the function fails with [errors.ErrCodeLayoutExhausted].
func StarPoints(m Metrics) ([]geom.Point, error) {
	cells := StarGrid(m)
	points := make([]geom.Point, 0, StarCount)

	for _, c := range cells {
		center := c.BottomRight()
		if center.X+m.StarSize.W < m.CantonSize.W {
			points = append(points, center)
		}
		if len(points) == StarCount {
			return points, nil
		}
	}

	return nil, errors.New(errors.ErrCodeLayoutExhausted,
		"found %d of %d star positions in %d grid cells", len(points), StarCount, len(cells))
}

// subdivide returns enough zero-origin cells of the given size to cover the
// area of frame, rounding down.
func subdivide(cell, frame geom.Size) []geom.Rect {
	if cell.Area() <= 0 {
		return nil
	}
	n := int(math.Floor(frame.Area() / cell.Area()))

	cells := make([]geom.Rect, n)
	for i := range cells {
		cells[i] = geom.Rect{Size: cell}
	}
	return cells
}
