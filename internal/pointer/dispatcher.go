package pointer

// Target is a hit-testable handler.
type Target interface {
	Handler
	Bounds() Rect
}

// Dispatcher routes events for one window.
//
// Presses go through the FilterSet first, then to targets topmost-first
// (most recently added is topmost) until one accepts; Fallback sees presses
// nobody accepted. Move, release and cancel go to the grab holder when it is
// a Handler, otherwise to whoever accepted the press.
type Dispatcher struct {
	Grab     Grab
	Filters  FilterSet
	Fallback Handler

	targets []Target
	pressed Handler
}

func (d *Dispatcher) Add(t Target) {
	if t == nil {
		return
	}
	for _, x := range d.targets {
		if x == t {
			return
		}
	}
	d.targets = append(d.targets, t)
}

func (d *Dispatcher) Remove(t Target) {
	for i, x := range d.targets {
		if x == t {
			d.targets = append(d.targets[:i], d.targets[i+1:]...)
			break
		}
	}
	if h, ok := t.(Handler); ok && d.pressed == h {
		d.pressed = nil
	}
	if o, ok := t.(Owner); ok {
		d.Grab.Release(o)
	}
}

// Dispatch delivers ev and reports whether anything accepted it.
func (d *Dispatcher) Dispatch(ev Event) bool {
	switch ev.Kind {
	case Press:
		d.Filters.Run(ev)
		d.pressed = nil
		for i := len(d.targets) - 1; i >= 0; i-- {
			t := d.targets[i]
			if !t.Bounds().Contains(ev.Position) {
				continue
			}
			if t.HandlePointer(ev) {
				d.pressed = t
				return true
			}
		}
		if d.Fallback != nil && d.Fallback.HandlePointer(ev) {
			d.pressed = d.Fallback
			return true
		}
		return false
	default:
		h := d.current()
		if ev.Kind == Release || ev.Kind == Cancel {
			d.pressed = nil
		}
		if h == nil {
			return false
		}
		return h.HandlePointer(ev)
	}
}

func (d *Dispatcher) current() Handler {
	if h, ok := d.Grab.Holder().(Handler); ok {
		return h
	}
	return d.pressed
}
