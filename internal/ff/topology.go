package ff

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Topology lists a system's atoms and bonded terms. Index tuples are written
// in force-field order: angles have the vertex in the middle, impropers are
// matched by their sorted type tuple so their order only affects the sign of
// the angle.
type Topology struct {
	Types     []string
	Charges   []float64
	Bonds     [][2]int
	Angles    [][3]int
	Dihedrals [][4]int
	Impropers [][4]int
}

func (t *Topology) NumAtoms() int {
	return len(t.Types)
}

// Validate checks per-atom slice lengths and that every term refers to
// distinct atoms in range.
func (t *Topology) Validate() error {
	n := len(t.Types)
	if len(t.Charges) != n {
		return fmt.Errorf("%w: %d types but %d charges", ErrMalformedTopology, n, len(t.Charges))
	}
	for i, b := range t.Bonds {
		if err := checkTerm("bond", i, b[:], n); err != nil {
			return err
		}
	}
	for i, a := range t.Angles {
		if err := checkTerm("angle", i, a[:], n); err != nil {
			return err
		}
	}
	for i, d := range t.Dihedrals {
		if err := checkTerm("dihedral", i, d[:], n); err != nil {
			return err
		}
	}
	for i, d := range t.Impropers {
		if err := checkTerm("improper", i, d[:], n); err != nil {
			return err
		}
	}
	return nil
}

func checkTerm(kind string, index int, atoms []int, n int) error {
	for i, a := range atoms {
		if a < 0 || a >= n {
			return fmt.Errorf("%w: %s %d atom %d out of range", ErrMalformedTopology, kind, index, a)
		}
		for _, b := range atoms[:i] {
			if a == b {
				return fmt.Errorf("%w: %s %d repeats atom %d", ErrMalformedTopology, kind, index, a)
			}
		}
	}
	return nil
}

// Graph returns the bond graph with one node per atom.
func (t *Topology) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range t.Types {
		g.AddNode(simple.Node(i))
	}
	for _, b := range t.Bonds {
		if b[0] == b[1] {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(b[0]), simple.Node(b[1])))
	}
	return g
}

// InferAngles enumerates every a-v-c path of the bond graph once, with a < c.
func (t *Topology) InferAngles() [][3]int {
	g := t.Graph()
	var out [][3]int
	for v := range t.Types {
		nb := neighbors(g, v)
		for x := 0; x < len(nb); x++ {
			for y := x + 1; y < len(nb); y++ {
				out = append(out, [3]int{nb[x], v, nb[y]})
			}
		}
	}
	return out
}

// InferDihedrals enumerates every proper dihedral i-j-k-l once, walking each
// bond j-k with j < k. Three-membered rings are skipped.
func (t *Topology) InferDihedrals() [][4]int {
	g := t.Graph()
	var out [][4]int
	for j := range t.Types {
		for _, k := range neighbors(g, j) {
			if k <= j {
				continue
			}
			for _, i := range neighbors(g, j) {
				if i == k {
					continue
				}
				for _, l := range neighbors(g, k) {
					if l == j || l == i {
						continue
					}
					out = append(out, [4]int{i, j, k, l})
				}
			}
		}
	}
	return out
}

func neighbors(g graph.Graph, id int) []int {
	nodes := graph.NodesOf(g.From(int64(id)))
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = int(n.ID())
	}
	sort.Ints(out)
	return out
}
