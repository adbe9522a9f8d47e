package dag

import "weak"

// OwnerBox is a strongly-held wrapper around an attachment value (typically
// a Scheduleable). The attachment's owner keeps the box alive; Vertex only
// ever observes it through a weak.Pointer, never extending its lifetime.
type OwnerBox struct {
	Value any
}

// SetOwner records a non-owning back-pointer from v to box. box must be
// kept alive by the caller for as long as the relation should remain
// observable; the DAG never retains a strong reference to it.
func (v *Vertex) SetOwner(box *OwnerBox) {
	v.owner = weak.Make(box)
}

// Owner returns the attachment previously set with SetOwner, and false if
// none was set or it has since been garbage collected.
func (v *Vertex) Owner() (any, bool) {
	box := v.owner.Value()
	if box == nil {
		return nil, false
	}
	return box.Value, true
}
