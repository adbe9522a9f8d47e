package kernel

import "github.com/sparcians/simkernel/dag"

// Precedes records "a fires no later than b within the same tick" as a DAG
// edge between their vertices. It is a pure edge-builder: it never
// schedules anything.
func Precedes(d *dag.DAG, a, b Scheduleable) error {
	return d.Link(a.Vertex(), b.Vertex(), a.Label()+" -> "+b.Label())
}

// PrecedesGOP records "a fires no later than the named global ordering
// point". The GOP vertex is created on first reference.
func PrecedesGOP(d *dag.DAG, a Scheduleable, gopName string) error {
	gop, err := d.FindOrCreateGOP(gopName)
	if err != nil {
		return err
	}
	return d.Link(a.Vertex(), gop, a.Label()+" -> GOP("+gopName+")")
}

// GOPPrecedes records "the named global ordering point fires no later than
// b". The GOP vertex is created on first reference.
func GOPPrecedes(d *dag.DAG, gopName string, b Scheduleable) error {
	gop, err := d.FindOrCreateGOP(gopName)
	if err != nil {
		return err
	}
	return d.Link(gop, b.Vertex(), "GOP("+gopName+") -> "+b.Label())
}

// AssociateGOP registers s as an associate of the named GOP: at Finalize,
// s's group-id is overwritten with the GOP's.
func AssociateGOP(d *dag.DAG, gopName string, s Scheduleable) error {
	gop, err := d.FindOrCreateGOP(gopName)
	if err != nil {
		return err
	}
	d.RegisterAssociate(gop, s.Vertex())
	return nil
}
