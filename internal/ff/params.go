package ff

import (
	"fmt"
	"sort"
)

// Wildcard matches any atom type in the outer positions of a dihedral key.
const Wildcard = "X"

// AtomType holds the Lennard-Jones parameters of one atom type. Sigma14 and
// Epsilon14 apply to 1-4 pairs.
type AtomType struct {
	Name      string  `yaml:"name"`
	Sigma     float64 `yaml:"sigma"`
	Epsilon   float64 `yaml:"epsilon"`
	Sigma14   float64 `yaml:"sigma14"`
	Epsilon14 float64 `yaml:"epsilon14"`
}

// NBFix overrides the combination rule for one unordered type pair. Radii are
// r-min values as force-field files carry them.
type NBFix struct {
	TypeA     string  `yaml:"type_a"`
	TypeB     string  `yaml:"type_b"`
	Rmin      float64 `yaml:"rmin"`
	Epsilon   float64 `yaml:"epsilon"`
	Rmin14    float64 `yaml:"rmin14"`
	Epsilon14 float64 `yaml:"epsilon14"`
}

// BondType is a harmonic bond k*(r-req)^2.
type BondType struct {
	K   float64
	Req float64
}

// AngleType is a harmonic angle k*(theta-theteq)^2 with theteq in degrees.
type AngleType struct {
	K      float64
	Theteq float64
}

// DihedralTerm is one periodic component k*(1+cos(per*phi-phase)) with phase
// in degrees. VdWScale and ElecScale multiply the non-bonded energy of the
// dihedral's end atoms; only the first term of a type tuple is consulted.
type DihedralTerm struct {
	K         float64 `yaml:"k"`
	Phase     float64 `yaml:"phase"`
	Per       int     `yaml:"per"`
	VdWScale  float64 `yaml:"vdw_scale"`
	ElecScale float64 `yaml:"elec_scale"`
}

// ImproperType is a harmonic improper k*(psi-psieq)^2 with psieq in degrees.
type ImproperType struct {
	K     float64
	PsiEq float64
}

// PeriodicImproper is a cosine improper with phase in degrees.
type PeriodicImproper struct {
	K     float64
	Phase float64
	Per   int
}

// ParameterSet resolves force-field constants by atom type. Tuple keys are
// stored in canonical order so lookups are independent of direction.
type ParameterSet struct {
	atomTypes         map[string]AtomType
	nbfix             []NBFix
	bonds             map[[2]string]BondType
	angles            map[[3]string]AngleType
	dihedrals         map[[4]string][]DihedralTerm
	impropers         map[[4]string]ImproperType
	periodicImpropers map[[4]string]PeriodicImproper
}

func NewParameterSet() *ParameterSet {
	return &ParameterSet{
		atomTypes:         make(map[string]AtomType),
		bonds:             make(map[[2]string]BondType),
		angles:            make(map[[3]string]AngleType),
		dihedrals:         make(map[[4]string][]DihedralTerm),
		impropers:         make(map[[4]string]ImproperType),
		periodicImpropers: make(map[[4]string]PeriodicImproper),
	}
}

func (p *ParameterSet) AddAtomType(t AtomType) {
	p.atomTypes[t.Name] = t
}

// AddNBFix registers an override. A later entry for the same pair replaces
// the earlier one.
func (p *ParameterSet) AddNBFix(f NBFix) {
	for i, e := range p.nbfix {
		if samePair(e.TypeA, e.TypeB, f.TypeA, f.TypeB) {
			p.nbfix[i] = f
			return
		}
	}
	p.nbfix = append(p.nbfix, f)
}

func (p *ParameterSet) AddBond(a, b string, t BondType) {
	p.bonds[bondKey(a, b)] = t
}

func (p *ParameterSet) AddAngle(a, b, c string, t AngleType) {
	p.angles[angleKey(a, b, c)] = t
}

// AddDihedral appends periodic terms to the type tuple a-b-c-d.
func (p *ParameterSet) AddDihedral(a, b, c, d string, terms ...DihedralTerm) {
	k := dihedralKey(a, b, c, d)
	p.dihedrals[k] = append(p.dihedrals[k], terms...)
}

func (p *ParameterSet) AddImproper(a, b, c, d string, t ImproperType) {
	p.impropers[improperKey(a, b, c, d)] = t
}

func (p *ParameterSet) AddPeriodicImproper(a, b, c, d string, t PeriodicImproper) {
	p.periodicImpropers[improperKey(a, b, c, d)] = t
}

func (p *ParameterSet) AtomType(name string) (AtomType, error) {
	t, ok := p.atomTypes[name]
	if !ok {
		return AtomType{}, fmt.Errorf("%w: %s", ErrMissingTypeParameter, name)
	}
	return t, nil
}

// AtomTypes returns the registered types sorted by name.
func (p *ParameterSet) AtomTypes() []AtomType {
	out := make([]AtomType, 0, len(p.atomTypes))
	for _, t := range p.atomTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NBFixes returns the registered overrides in insertion order.
func (p *ParameterSet) NBFixes() []NBFix {
	out := make([]NBFix, len(p.nbfix))
	copy(out, p.nbfix)
	return out
}

// NBFixFor returns the override for the unordered pair (a, b).
func (p *ParameterSet) NBFixFor(a, b string) (NBFix, bool) {
	for _, e := range p.nbfix {
		if samePair(e.TypeA, e.TypeB, a, b) {
			return e, true
		}
	}
	return NBFix{}, false
}

func (p *ParameterSet) Bond(a, b string) (BondType, error) {
	t, ok := p.bonds[bondKey(a, b)]
	if !ok {
		return BondType{}, ErrMissingBondParameter
	}
	return t, nil
}

func (p *ParameterSet) Angle(a, b, c string) (AngleType, error) {
	t, ok := p.angles[angleKey(a, b, c)]
	if !ok {
		return AngleType{}, ErrMissingAngleParameter
	}
	return t, nil
}

// Dihedral returns the periodic terms of a-b-c-d. An exact match wins over
// the generic X-b-c-X entry.
func (p *ParameterSet) Dihedral(a, b, c, d string) ([]DihedralTerm, error) {
	if terms, ok := p.dihedrals[dihedralKey(a, b, c, d)]; ok && len(terms) > 0 {
		return terms, nil
	}
	if terms, ok := p.dihedrals[dihedralKey(Wildcard, b, c, Wildcard)]; ok && len(terms) > 0 {
		return terms, nil
	}
	return nil, ErrMissingDihedralParameter
}

func (p *ParameterSet) Improper(a, b, c, d string) (ImproperType, bool) {
	t, ok := p.impropers[improperKey(a, b, c, d)]
	return t, ok
}

func (p *ParameterSet) PeriodicImproper(a, b, c, d string) (PeriodicImproper, bool) {
	t, ok := p.periodicImpropers[improperKey(a, b, c, d)]
	return t, ok
}

// Bonds, Angles, Dihedrals, Impropers and PeriodicImpropers visit every
// entry under its canonical key. Iteration order is sorted by key.

func (p *ParameterSet) Bonds(fn func(types [2]string, t BondType)) {
	for _, k := range sortedKeys(p.bonds) {
		fn(k, p.bonds[k])
	}
}

func (p *ParameterSet) Angles(fn func(types [3]string, t AngleType)) {
	for _, k := range sortedKeys(p.angles) {
		fn(k, p.angles[k])
	}
}

func (p *ParameterSet) Dihedrals(fn func(types [4]string, terms []DihedralTerm)) {
	for _, k := range sortedKeys(p.dihedrals) {
		fn(k, p.dihedrals[k])
	}
}

func (p *ParameterSet) Impropers(fn func(types [4]string, t ImproperType)) {
	for _, k := range sortedKeys(p.impropers) {
		fn(k, p.impropers[k])
	}
}

func (p *ParameterSet) PeriodicImpropers(fn func(types [4]string, t PeriodicImproper)) {
	for _, k := range sortedKeys(p.periodicImpropers) {
		fn(k, p.periodicImpropers[k])
	}
}

func samePair(a, b, c, d string) bool {
	return (a == c && b == d) || (a == d && b == c)
}

func bondKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

func angleKey(a, b, c string) [3]string {
	if c < a {
		a, c = c, a
	}
	return [3]string{a, b, c}
}

func dihedralKey(a, b, c, d string) [4]string {
	fwd := [4]string{a, b, c, d}
	rev := [4]string{d, c, b, a}
	for i := range fwd {
		if fwd[i] != rev[i] {
			if rev[i] < fwd[i] {
				return rev
			}
			return fwd
		}
	}
	return fwd
}

func improperKey(a, b, c, d string) [4]string {
	k := [4]string{a, b, c, d}
	sort.Strings(k[:])
	return k
}

func sortedKeys[K [2]string | [3]string | [4]string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := names(&keys[i]), names(&keys[j])
		for n := range a {
			if a[n] != b[n] {
				return a[n] < b[n]
			}
		}
		return false
	})
	return keys
}

// names views a type-tuple key as a slice sharing its storage.
func names(p any) []string {
	switch k := p.(type) {
	case *[2]string:
		return k[:]
	case *[3]string:
		return k[:]
	case *[4]string:
		return k[:]
	}
	panic(fmt.Sprintf("ff: unsupported key %T", p))
}
