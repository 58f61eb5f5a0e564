// Package cluster implements average-linkage (UPGMA) agglomerative clustering
// with Euclidean distance, as used to order the rows and columns of a
// clustered heatmap.
package cluster

import (
	"math"
	"sort"

	"github.com/theodesp/unionfind"
	"gonum.org/v1/gonum/floats"
)

// Merge joins two nodes. Nodes below the leaf count are leaves; node n+k is
// the cluster created by the k'th merge.
type Merge struct {
	A, B   int
	Height float64
	Size   int
}

// Dendrogram is the full merge history plus the resulting leaf order.
type Dendrogram struct {
	Leaves int
	Merges []Merge
	Order  []int
}

// Distance is the Euclidean distance between a and b over the coordinates
// where both are finite. Vectors sharing no finite coordinate are at distance
// zero.
func Distance(a, b []float64) float64 {
	if allFinite(a) && allFinite(b) {
		if len(a) == 0 {
			return 0
		}
		return floats.Distance(a, b, 2)
	}

	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if isFinite(a[i]) && isFinite(b[i]) {
			x = append(x, a[i])
			y = append(y, b[i])
		}
	}

	if len(x) == 0 {
		return 0
	}

	return floats.Distance(x, y, 2)
}

// condensed holds the pairwise distances i<j of n items, row by row.
type condensed struct {
	n int
	d []float64
}

func newCondensed(rows [][]float64) condensed {
	n := len(rows)
	c := condensed{n: n, d: make([]float64, n*(n-1)/2)}

	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c.d[k] = Distance(rows[i], rows[j])
			k++
		}
	}

	return c
}

func (c condensed) index(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return c.n*i - i*(i+1)/2 + j - i - 1
}

func (c condensed) at(i, j int) float64 { return c.d[c.index(i, j)] }

func (c condensed) set(i, j int, v float64) { c.d[c.index(i, j)] = v }

// Linkage clusters the rows with the nearest-neighbor chain algorithm, which
// is exact for average linkage and needs O(n^2) time and memory. Merges are
// returned in order of increasing height.
func Linkage(rows [][]float64) Dendrogram {
	n := len(rows)
	out := Dendrogram{Leaves: n, Merges: make([]Merge, 0, n)}
	if n == 0 {
		return out
	}

	dist := newCondensed(rows)

	// A cluster lives in the slot of one of its leaves. Steps record slots.
	active := make([]bool, n)
	size := make([]int, n)
	for i := range active {
		active[i] = true
		size[i] = 1
	}

	steps := make([]Merge, 0, n-1)
	chain := make([]int, 0, n)
	for k := 0; k < n-1; k++ {
		if len(chain) == 0 {
			for i := range active {
				if active[i] {
					chain = append(chain, i)
					break
				}
			}
		}

		// Grow the chain until its last two clusters are reciprocal nearest
		// neighbors. Ties favor the previous link so the chain terminates.
		var x, y int
		var best float64
		for {
			x = chain[len(chain)-1]
			y, best = -1, math.Inf(1)
			if len(chain) > 1 {
				y = chain[len(chain)-2]
				best = dist.at(x, y)
			}

			for i := 0; i < n; i++ {
				if !active[i] || i == x {
					continue
				}
				if d := dist.at(x, i); y < 0 || d < best {
					y, best = i, d
				}
			}

			if len(chain) > 1 && y == chain[len(chain)-2] {
				break
			}
			chain = append(chain, y)
		}
		chain = chain[:len(chain)-2]

		if x > y {
			x, y = y, x
		}
		steps = append(steps, Merge{A: x, B: y, Height: best, Size: size[x] + size[y]})

		// Lance-Williams update for average linkage; the union moves into y
		for i := 0; i < n; i++ {
			if !active[i] || i == x || i == y {
				continue
			}
			d := (float64(size[x])*dist.at(i, x) + float64(size[y])*dist.at(i, y)) / float64(size[x]+size[y])
			dist.set(i, y, d)
		}
		size[y] += size[x]
		active[x] = false
	}

	// Chain order is not height order. A child never sorts after its parent:
	// heights are monotone and the sort is stable.
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Height < steps[j].Height })

	// Relabel slots as node IDs: leaves keep their index, the k'th merge is
	// node n+k.
	uf := unionfind.New(n)
	node := make([]int, n)
	for i := range node {
		node[i] = i
	}
	for k, step := range steps {
		ra, rb := uf.Root(step.A), uf.Root(step.B)
		out.Merges = append(out.Merges, Merge{
			A:      node[ra],
			B:      node[rb],
			Height: step.Height,
			Size:   step.Size,
		})

		uf.Union(ra, rb)
		node[uf.Root(ra)] = n + k
	}

	out.Order = out.leafOrder()

	return out
}

// Order returns the dendrogram leaf order of the rows.
func Order(rows [][]float64) []int {
	return Linkage(rows).Order
}

// Transpose turns columns into rows so they can be clustered too.
func Transpose(rows [][]float64) [][]float64 {
	if len(rows) == 0 {
		return nil
	}

	out := make([][]float64, len(rows[0]))
	for j := range out {
		out[j] = make([]float64, len(rows))
		for i := range rows {
			out[j][i] = rows[i][j]
		}
	}

	return out
}

func (d Dendrogram) leafOrder() []int {
	if d.Leaves == 0 {
		return nil
	}
	if len(d.Merges) == 0 {
		return []int{0}
	}

	order := make([]int, 0, d.Leaves)

	// Walk from the final merge with an explicit stack; A is visited before B.
	stack := []int{d.Leaves + len(d.Merges) - 1}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id < d.Leaves {
			order = append(order, id)
			continue
		}

		m := d.Merges[id-d.Leaves]
		stack = append(stack, m.B, m.A)
	}

	return order
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}

	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
