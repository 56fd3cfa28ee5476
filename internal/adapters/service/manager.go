package service

// UnitState is the (ActiveState, SubState) pair reported by the init system
// for one unit, e.g. ("active", "running") or ("inactive", "dead").
type UnitState struct {
	ActiveState string
	SubState    string
}

// Running reports whether the unit is confirmed healthy.
func (s UnitState) Running() bool {
	return s.ActiveState == "active" && s.SubState == "running"
}

// Dead reports whether the unit has fully stopped.
func (s UnitState) Dead() bool {
	return s.SubState == "dead"
}

// Manager is the common interface over init systems (systemd, openrc, ...).
type Manager interface {
	Name() string

	Start(unit string) error
	Stop(unit string) error

	// State queries the live (ActiveState, SubState) pair of a unit.
	State(unit string) (UnitState, error)
}
