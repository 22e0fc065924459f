// Package clockres queries the host's process- and thread-CPU-time clocks.
// Split out of the wasicore package so wasicore/clock.go stays
// platform-independent and delegates here.
package clockres

// ID mirrors wasicore.ClockID's CPU-clock values without importing the
// parent package (which would create an import cycle back into clockres).
type ID uint32

const (
	ProcessCputimeID ID = 2
	ThreadCputimeID  ID = 3
)
