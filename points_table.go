package entropy

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// ReadPointTable reads a whitespace-separated table whose first two columns
// are x and y. Lines starting with '#' are comments.
func ReadPointTable(fname string) ([]Point, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, fmt.Errorf("read point table %s: %w", fname, err)
	}
	xs, ys := cols[0], cols[1]
	pts := make([]Point, len(xs))
	for i := range pts {
		pts[i] = Point{xs[i], ys[i]}
	}
	return pts, nil
}
