package mux

// Mode selects between a real batch run and a dry run that stops short of
// invoking mkvmerge.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDryRun
)

func (m Mode) String() string {
	if m == ModeDryRun {
		return "dry-run"
	}
	return "normal"
}
