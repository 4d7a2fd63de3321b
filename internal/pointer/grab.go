package pointer

// Owner is anything that can hold the grab. GrabCancelled is invoked when
// another owner takes the grab away.
type Owner interface {
	GrabCancelled()
}

// Grab is the exclusive capture of move/release events. There is one per
// window; acquiring it for one owner implicitly takes it from the previous.
//
// All methods run on the event loop.
type Grab struct {
	holder Owner
}

func (g *Grab) Holder() Owner { return g.holder }

func (g *Grab) HeldBy(o Owner) bool { return o != nil && g.holder == o }

// Acquire makes o the holder. A different previous holder is notified after
// the transfer so it observes the grab as already gone.
func (g *Grab) Acquire(o Owner) {
	if o == nil || g.holder == o {
		return
	}
	prev := g.holder
	g.holder = o
	if prev != nil {
		prev.GrabCancelled()
	}
}

// Release drops the grab if o holds it. Releasing a grab that is not held
// (or held by someone else) is a no-op.
func (g *Grab) Release(o Owner) bool {
	if o == nil || g.holder != o {
		return false
	}
	g.holder = nil
	return true
}
