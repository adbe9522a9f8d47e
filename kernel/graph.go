package kernel

import "github.com/sparcians/simkernel/dag"

// NewVertex creates and returns a new precedence vertex owned by the
// scheduler's DAG.
func (s *Scheduler) NewVertex(label string, isGOP bool) (*dag.Vertex, error) {
	return s.d.NewVertex(label, isGOP)
}

// Precedes records "a fires no later than b within the same tick".
func (s *Scheduler) Precedes(a, b Scheduleable) error {
	s.enterConfiguring()
	return Precedes(s.d, a, b)
}

// PrecedesGOP records "a fires no later than the named global ordering
// point".
func (s *Scheduler) PrecedesGOP(a Scheduleable, gopName string) error {
	s.enterConfiguring()
	return PrecedesGOP(s.d, a, gopName)
}

// GOPPrecedes records "the named global ordering point fires no later than
// b".
func (s *Scheduler) GOPPrecedes(gopName string, b Scheduleable) error {
	s.enterConfiguring()
	return GOPPrecedes(s.d, gopName, b)
}

// AssociateGOP registers s as an associate of the named GOP, transferring
// the GOP's group-id onto it at Finalize.
func (s *Scheduler) AssociateGOP(gopName string, target Scheduleable) error {
	s.enterConfiguring()
	return AssociateGOP(s.d, gopName, target)
}
