package stage

import (
	"sort"

	"github.com/san-kum/ffeval/internal/ff"
)

// NBFixEntry is a resolved override between two type indices.
type NBFixEntry struct {
	TypeA, TypeB       int
	Sigma, Epsilon     float64
	Sigma14, Epsilon14 float64
}

// Tables is the staged form of one (topology, parameter set) pair. It must
// not be modified after Stage returns.
type Tables struct {
	NumAtoms  int
	TypeNames []string  // distinct types, sorted
	TypeIndex []int     // per atom, index into TypeNames
	Charges   []float64 // per atom

	// Per type index.
	Sigma, Epsilon     []float64
	Sigma14, Epsilon14 []float64
	NBFix              []NBFixEntry

	Exclusions  *IndexTable // 1-2 and 1-3 partners, ascending
	BondAtoms   *IndexTable
	BondParams  *ValueTable // (k, r0) per BondAtoms column
	VdW14Atoms  *IndexTable
	VdW14Scale  *ValueTable
	Elec14Atoms *IndexTable
	Elec14Scale *ValueTable

	Angles      [][3]int
	AngleParams [][2]float64 // (k, theta0 in radians)

	Dihedrals      [][4]int
	DihedralParams *ValueTable // (k, phase, periodicity) triples
	Impropers      [][4]int
	ImproperParams *ValueTable // same layout; periodicity 0 marks a harmonic term
}

// Stage resolves all parameters of top against prm and builds the tables.
func Stage(top *ff.Topology, prm *ff.ParameterSet) (*Tables, error) {
	if err := top.Validate(); err != nil {
		return nil, err
	}
	n := top.NumAtoms()
	t := &Tables{
		NumAtoms:  n,
		TypeIndex: make([]int, n),
		Charges:   append([]float64(nil), top.Charges...),
	}

	if err := t.stageTypes(top, prm); err != nil {
		return nil, err
	}

	excl := make([][]int, n)
	bondAtoms := make([][]int, n)
	bondVals := make([][]float64, n)

	for i, b := range top.Bonds {
		bt, err := prm.Bond(top.Types[b[0]], top.Types[b[1]])
		if err != nil {
			return nil, paramErr("bond", i, top, b[:], err)
		}
		lo, hi := order(b[0], b[1])
		excl[lo] = append(excl[lo], hi)
		if contains(bondAtoms[lo], hi) {
			continue
		}
		bondAtoms[lo] = append(bondAtoms[lo], hi)
		bondVals[lo] = append(bondVals[lo], bt.K, bt.Req)
	}

	t.Angles = make([][3]int, len(top.Angles))
	t.AngleParams = make([][2]float64, len(top.Angles))
	for i, a := range top.Angles {
		at, err := prm.Angle(top.Types[a[0]], top.Types[a[1]], top.Types[a[2]])
		if err != nil {
			return nil, paramErr("angle", i, top, a[:], err)
		}
		lo, hi := order(a[0], a[2])
		excl[lo] = append(excl[lo], hi)
		t.Angles[i] = a
		t.AngleParams[i] = [2]float64{at.K, at.Theteq * ff.Deg2Rad}
	}

	for i := range excl {
		excl[i] = uniqueSorted(excl[i])
	}

	vdwAtoms := make([][]int, n)
	vdwVals := make([][]float64, n)
	elecAtoms := make([][]int, n)
	elecVals := make([][]float64, n)
	dihVals := make([][]float64, len(top.Dihedrals))

	t.Dihedrals = make([][4]int, len(top.Dihedrals))
	for i, d := range top.Dihedrals {
		terms, err := prm.Dihedral(top.Types[d[0]], top.Types[d[1]], top.Types[d[2]], top.Types[d[3]])
		if err != nil {
			return nil, paramErr("dihedral", i, top, d[:], err)
		}
		t.Dihedrals[i] = d
		for _, term := range terms {
			dihVals[i] = append(dihVals[i], term.K, term.Phase*ff.Deg2Rad, float64(term.Per))
		}

		lo, hi := order(d[0], d[3])
		if !contains(vdwAtoms[lo], hi) {
			vdwAtoms[lo] = append(vdwAtoms[lo], hi)
			vdwVals[lo] = append(vdwVals[lo], terms[0].VdWScale)
		}
		if !contains(elecAtoms[lo], hi) {
			elecAtoms[lo] = append(elecAtoms[lo], hi)
			elecVals[lo] = append(elecVals[lo], terms[0].ElecScale)
		}
	}

	impVals := make([][]float64, len(top.Impropers))
	t.Impropers = make([][4]int, len(top.Impropers))
	for i, d := range top.Impropers {
		a, b, c, e := top.Types[d[0]], top.Types[d[1]], top.Types[d[2]], top.Types[d[3]]
		t.Impropers[i] = d
		if it, ok := prm.Improper(a, b, c, e); ok {
			impVals[i] = []float64{it.K, it.PsiEq * ff.Deg2Rad, 0}
			continue
		}
		if pt, ok := prm.PeriodicImproper(a, b, c, e); ok {
			impVals[i] = []float64{pt.K, pt.Phase * ff.Deg2Rad, float64(pt.Per)}
			continue
		}
		return nil, paramErr("improper", i, top, d[:], ff.ErrMissingImproperParameter)
	}

	var err error
	if t.Exclusions, err = NewIndexTable(excl); err != nil {
		return nil, err
	}
	if t.BondAtoms, t.BondParams, err = pairedTables(bondAtoms, bondVals, 2); err != nil {
		return nil, err
	}
	if t.VdW14Atoms, t.VdW14Scale, err = pairedTables(vdwAtoms, vdwVals, 1); err != nil {
		return nil, err
	}
	if t.Elec14Atoms, t.Elec14Scale, err = pairedTables(elecAtoms, elecVals, 1); err != nil {
		return nil, err
	}
	if t.DihedralParams, err = NewValueTable(dihVals); err != nil {
		return nil, err
	}
	if t.ImproperParams, err = NewValueTable(impVals); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tables) stageTypes(top *ff.Topology, prm *ff.ParameterSet) error {
	seen := make(map[string]int)
	first := make(map[string]int)
	for i, name := range top.Types {
		if _, ok := seen[name]; !ok {
			seen[name] = 0
			first[name] = i
			t.TypeNames = append(t.TypeNames, name)
		}
	}
	sort.Strings(t.TypeNames)
	for i, name := range t.TypeNames {
		seen[name] = i
	}
	for i, name := range top.Types {
		t.TypeIndex[i] = seen[name]
	}

	nt := len(t.TypeNames)
	t.Sigma = make([]float64, nt)
	t.Epsilon = make([]float64, nt)
	t.Sigma14 = make([]float64, nt)
	t.Epsilon14 = make([]float64, nt)
	for i, name := range t.TypeNames {
		at, err := prm.AtomType(name)
		if err != nil {
			return &ff.ParameterError{Term: "atom", Index: first[name], Types: []string{name}, Wrapped: ff.ErrMissingTypeParameter}
		}
		t.Sigma[i], t.Epsilon[i] = at.Sigma, at.Epsilon
		t.Sigma14[i], t.Epsilon14[i] = at.Sigma14, at.Epsilon14
	}

	for _, f := range prm.NBFixes() {
		a, okA := seen[f.TypeA]
		b, okB := seen[f.TypeB]
		if !okA || !okB {
			continue
		}
		t.NBFix = append(t.NBFix, NBFixEntry{
			TypeA:     a,
			TypeB:     b,
			Sigma:     ff.RminToSigma(f.Rmin),
			Epsilon:   f.Epsilon,
			Sigma14:   ff.RminToSigma(f.Rmin14),
			Epsilon14: f.Epsilon14,
		})
	}
	return nil
}

func paramErr(term string, index int, top *ff.Topology, atoms []int, err error) error {
	types := make([]string, len(atoms))
	for i, a := range atoms {
		types[i] = top.Types[a]
	}
	return &ff.ParameterError{Term: term, Index: index, Types: types, Wrapped: err}
}

func order(a, b int) (int, int) {
	if b < a {
		return b, a
	}
	return a, b
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func uniqueSorted(s []int) []int {
	sort.Ints(s)
	out := s[:0]
	for _, v := range s {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
