package models

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ffeval/internal/ff"
)

// SystemFile is the on-disk YAML form of a System.
type SystemFile struct {
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description,omitempty"`
	Types          []string    `yaml:"types"`
	Charges        []float64   `yaml:"charges"`
	Bonds          [][]int     `yaml:"bonds,omitempty"`
	Angles         [][]int     `yaml:"angles,omitempty"`
	Dihedrals      [][]int     `yaml:"dihedrals,omitempty"`
	Impropers      [][]int     `yaml:"impropers,omitempty"`
	InferAngles    bool        `yaml:"infer_angles,omitempty"`
	InferDihedrals bool        `yaml:"infer_dihedrals,omitempty"`
	Params         ParamsFile  `yaml:"params"`
	Frames         []FrameFile `yaml:"frames"`
}

type ParamsFile struct {
	AtomTypes         []ff.AtomType      `yaml:"atom_types"`
	NBFix             []ff.NBFix         `yaml:"nbfix,omitempty"`
	Bonds             []BondEntry        `yaml:"bonds,omitempty"`
	Angles            []AngleEntry       `yaml:"angles,omitempty"`
	Dihedrals         []DihedralEntry    `yaml:"dihedrals,omitempty"`
	Impropers         []ImproperEntry    `yaml:"impropers,omitempty"`
	PeriodicImpropers []PeriodicImpEntry `yaml:"periodic_impropers,omitempty"`
}

type BondEntry struct {
	Types []string `yaml:"types"`
	K     float64  `yaml:"k"`
	Req   float64  `yaml:"req"`
}

type AngleEntry struct {
	Types  []string `yaml:"types"`
	K      float64  `yaml:"k"`
	Theteq float64  `yaml:"theteq"`
}

type DihedralEntry struct {
	Types []string          `yaml:"types"`
	Terms []ff.DihedralTerm `yaml:"terms"`
}

type ImproperEntry struct {
	Types []string `yaml:"types"`
	K     float64  `yaml:"k"`
	PsiEq float64  `yaml:"psi_eq"`
}

type PeriodicImpEntry struct {
	Types []string `yaml:"types"`
	K     float64  `yaml:"k"`
	Phase float64  `yaml:"phase"`
	Per   int      `yaml:"per"`
}

type FrameFile struct {
	Box    []float64   `yaml:"box,flow,omitempty"`
	Coords [][]float64 `yaml:"coords"`
}

// LoadFile reads a system from a YAML file.
func LoadFile(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf SystemFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	sys, err := sf.System()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sys, nil
}

// SaveFile writes sys as YAML. Angles and dihedrals are written explicitly.
func SaveFile(path string, sys *System) error {
	data, err := yaml.Marshal(NewSystemFile(sys))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// System converts the file form, checking every tuple and vector length.
func (sf *SystemFile) System() (*System, error) {
	top := &ff.Topology{Types: sf.Types, Charges: sf.Charges}
	var err error
	if top.Bonds, err = tuples[[2]int]("bond", sf.Bonds); err != nil {
		return nil, err
	}
	if top.Angles, err = tuples[[3]int]("angle", sf.Angles); err != nil {
		return nil, err
	}
	if top.Dihedrals, err = tuples[[4]int]("dihedral", sf.Dihedrals); err != nil {
		return nil, err
	}
	if top.Impropers, err = tuples[[4]int]("improper", sf.Impropers); err != nil {
		return nil, err
	}
	if sf.InferAngles {
		top.Angles = top.InferAngles()
	}
	if sf.InferDihedrals {
		top.Dihedrals = top.InferDihedrals()
	}

	prm, err := sf.Params.ParameterSet()
	if err != nil {
		return nil, err
	}

	frames := make([]ff.Frame, len(sf.Frames))
	for i, fr := range sf.Frames {
		if frames[i], err = fr.Frame(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return &System{Name: sf.Name, Description: sf.Description, Topology: top, Params: prm, Frames: frames}, nil
}

func (pf *ParamsFile) ParameterSet() (*ff.ParameterSet, error) {
	prm := ff.NewParameterSet()
	for _, at := range pf.AtomTypes {
		prm.AddAtomType(at)
	}
	for _, f := range pf.NBFix {
		prm.AddNBFix(f)
	}
	for _, b := range pf.Bonds {
		if err := arity("bond", b.Types, 2); err != nil {
			return nil, err
		}
		prm.AddBond(b.Types[0], b.Types[1], ff.BondType{K: b.K, Req: b.Req})
	}
	for _, a := range pf.Angles {
		if err := arity("angle", a.Types, 3); err != nil {
			return nil, err
		}
		prm.AddAngle(a.Types[0], a.Types[1], a.Types[2], ff.AngleType{K: a.K, Theteq: a.Theteq})
	}
	for _, d := range pf.Dihedrals {
		if err := arity("dihedral", d.Types, 4); err != nil {
			return nil, err
		}
		prm.AddDihedral(d.Types[0], d.Types[1], d.Types[2], d.Types[3], d.Terms...)
	}
	for _, im := range pf.Impropers {
		if err := arity("improper", im.Types, 4); err != nil {
			return nil, err
		}
		prm.AddImproper(im.Types[0], im.Types[1], im.Types[2], im.Types[3], ff.ImproperType{K: im.K, PsiEq: im.PsiEq})
	}
	for _, im := range pf.PeriodicImpropers {
		if err := arity("periodic improper", im.Types, 4); err != nil {
			return nil, err
		}
		prm.AddPeriodicImproper(im.Types[0], im.Types[1], im.Types[2], im.Types[3],
			ff.PeriodicImproper{K: im.K, Phase: im.Phase, Per: im.Per})
	}
	return prm, nil
}

func (fr FrameFile) Frame() (ff.Frame, error) {
	var f ff.Frame
	switch len(fr.Box) {
	case 0:
	case 3:
		f.Box = r3.Vec{X: fr.Box[0], Y: fr.Box[1], Z: fr.Box[2]}
	default:
		return f, fmt.Errorf("%w: box has %d components", ff.ErrMalformedTopology, len(fr.Box))
	}
	f.Coords = make([]r3.Vec, len(fr.Coords))
	for i, c := range fr.Coords {
		if len(c) != 3 {
			return f, fmt.Errorf("%w: coordinate %d has %d components", ff.ErrMalformedTopology, i, len(c))
		}
		f.Coords[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}
	return f, nil
}

// NewSystemFile converts sys to its file form.
func NewSystemFile(sys *System) *SystemFile {
	top := sys.Topology
	sf := &SystemFile{
		Name:        sys.Name,
		Description: sys.Description,
		Types:       top.Types,
		Charges:     top.Charges,
		Bonds:       untuples(top.Bonds),
		Angles:      untuples(top.Angles),
		Dihedrals:   untuples(top.Dihedrals),
		Impropers:   untuples(top.Impropers),
	}

	prm := sys.Params
	sf.Params.AtomTypes = prm.AtomTypes()
	sf.Params.NBFix = prm.NBFixes()
	prm.Bonds(func(k [2]string, t ff.BondType) {
		sf.Params.Bonds = append(sf.Params.Bonds, BondEntry{Types: k[:], K: t.K, Req: t.Req})
	})
	prm.Angles(func(k [3]string, t ff.AngleType) {
		sf.Params.Angles = append(sf.Params.Angles, AngleEntry{Types: k[:], K: t.K, Theteq: t.Theteq})
	})
	prm.Dihedrals(func(k [4]string, terms []ff.DihedralTerm) {
		sf.Params.Dihedrals = append(sf.Params.Dihedrals, DihedralEntry{Types: k[:], Terms: terms})
	})
	prm.Impropers(func(k [4]string, t ff.ImproperType) {
		sf.Params.Impropers = append(sf.Params.Impropers, ImproperEntry{Types: k[:], K: t.K, PsiEq: t.PsiEq})
	})
	prm.PeriodicImpropers(func(k [4]string, t ff.PeriodicImproper) {
		sf.Params.PeriodicImpropers = append(sf.Params.PeriodicImpropers,
			PeriodicImpEntry{Types: k[:], K: t.K, Phase: t.Phase, Per: t.Per})
	})

	for _, f := range sys.Frames {
		fr := FrameFile{Coords: make([][]float64, len(f.Coords))}
		if f.Box != (r3.Vec{}) {
			fr.Box = []float64{f.Box.X, f.Box.Y, f.Box.Z}
		}
		for i, c := range f.Coords {
			fr.Coords[i] = []float64{c.X, c.Y, c.Z}
		}
		sf.Frames = append(sf.Frames, fr)
	}
	return sf
}

func tuples[T [2]int | [3]int | [4]int](kind string, rows [][]int) ([]T, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]T, len(rows))
	for i, row := range rows {
		dst := slots(&out[i])
		if len(row) != len(dst) {
			return nil, fmt.Errorf("%w: %s %d has %d atoms, want %d", ff.ErrMalformedTopology, kind, i, len(row), len(dst))
		}
		copy(dst, row)
	}
	return out, nil
}

func untuples[T [2]int | [3]int | [4]int](rows []T) [][]int {
	out := make([][]int, len(rows))
	for i := range rows {
		out[i] = append([]int(nil), slots(&rows[i])...)
	}
	return out
}

// slots views a fixed-size index tuple as a slice sharing its storage.
func slots(p any) []int {
	switch v := p.(type) {
	case *[2]int:
		return v[:]
	case *[3]int:
		return v[:]
	case *[4]int:
		return v[:]
	}
	panic(fmt.Sprintf("models: unsupported tuple %T", p))
}

func arity(kind string, types []string, n int) error {
	if len(types) != n {
		return fmt.Errorf("%w: %s entry %v needs %d types", ff.ErrMalformedTopology, kind, types, n)
	}
	return nil
}
