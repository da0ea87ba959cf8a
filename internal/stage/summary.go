package stage

import "log/slog"

// Summary reports the size of a staged system.
type Summary struct {
	Atoms          int
	Types          int
	NBFix          int
	Bonds          int
	Angles         int
	Dihedrals      int
	Impropers      int
	Pairs14        int
	ExclusionWidth int
	BondWidth      int
	Pair14Width    int
	TorsionWidth   int
}

func (t *Tables) Summary() Summary {
	s := Summary{
		Atoms:          t.NumAtoms,
		Types:          len(t.TypeNames),
		NBFix:          len(t.NBFix),
		Angles:         len(t.Angles),
		Dihedrals:      len(t.Dihedrals),
		Impropers:      len(t.Impropers),
		ExclusionWidth: t.Exclusions.Width(),
		BondWidth:      t.BondAtoms.Width(),
		Pair14Width:    t.VdW14Atoms.Width(),
		TorsionWidth:   t.DihedralParams.Width() / 3,
	}
	for i := 0; i < t.NumAtoms; i++ {
		s.Bonds += len(t.BondAtoms.Row(i))
		s.Pairs14 += len(t.VdW14Atoms.Row(i))
	}
	return s
}

// LogValue groups the summary for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("atoms", s.Atoms),
		slog.Int("types", s.Types),
		slog.Int("nbfix", s.NBFix),
		slog.Int("bonds", s.Bonds),
		slog.Int("angles", s.Angles),
		slog.Int("dihedrals", s.Dihedrals),
		slog.Int("impropers", s.Impropers),
		slog.Int("pairs14", s.Pairs14),
		slog.Int("exclusion_width", s.ExclusionWidth),
		slog.Int("bond_width", s.BondWidth),
		slog.Int("torsion_width", s.TorsionWidth),
	)
}
