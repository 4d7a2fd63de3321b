package listrow

// Action is one swipe-revealed (or main) action. The same Action may be
// triggered from many rows; the payload tells observers which one.
type Action struct {
	Text     string
	IconName string
	// Payload is passed to observers on trigger. When nil, the index of the
	// triggering row is passed instead.
	Payload  any
	Disabled bool

	triggered []func(payload any)
}

func NewAction(text, icon string) *Action {
	return &Action{Text: text, IconName: icon}
}

func (a *Action) OnTriggered(fn func(payload any)) {
	if fn != nil {
		a.triggered = append(a.triggered, fn)
	}
}

// Trigger notifies observers with v. Disabled actions do nothing.
func (a *Action) Trigger(v any) bool {
	if a == nil || a.Disabled {
		return false
	}
	for _, fn := range a.triggered {
		fn(v)
	}
	return true
}

// triggerFrom fires a with its payload, defaulting to the row index.
func (a *Action) triggerFrom(r *Row) bool {
	v := a.Payload
	if v == nil {
		v = r.Index()
	}
	return a.Trigger(v)
}

// TriggerAction fires a on behalf of r. Panels use it for taps and full
// swipes so the payload defaults to the row index.
func (r *Row) TriggerAction(a *Action) bool {
	if a == nil {
		return false
	}
	return a.triggerFrom(r)
}

// Actions is an ordered list of actions shown on one side of a row.
//
// A container has at most one owner (the component that created it) and
// may be referenced by any number of rows. While a row is swiped open, the
// container is connected to that row; swiping another row with the same
// container snaps the first one closed.
type Actions struct {
	items     []*Action
	owner     any
	connected *Row
}

func NewActions(items ...*Action) *Actions {
	a := &Actions{}
	for _, it := range items {
		if it != nil {
			a.items = append(a.items, it)
		}
	}
	return a
}

func (a *Actions) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

func (a *Actions) At(i int) *Action {
	if a == nil || i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// Items returns a copy of the action list.
func (a *Actions) Items() []*Action {
	if a == nil {
		return nil
	}
	return append([]*Action(nil), a.items...)
}

func (a *Actions) Append(act *Action) {
	if act != nil {
		a.items = append(a.items, act)
	}
}

func (a *Actions) Owner() any { return a.owner }

// SetOwner parents the container. Re-parenting a container that already
// has a different owner is rejected with a warning and leaves the existing
// owner in place.
func (a *Actions) SetOwner(owner any) bool {
	if a.owner != nil && a.owner != owner {
		log.Warnw("actions container already has an owner; reassignment ignored")
		return false
	}
	a.owner = owner
	return true
}

// Connected is the row currently showing this container, if any.
func (a *Actions) Connected() *Row {
	if a == nil {
		return nil
	}
	return a.connected
}

func (a *Actions) connect(r *Row) {
	if a == nil {
		return
	}
	prev := a.connected
	a.connected = r
	if prev != nil && prev != r {
		prev.SnapOut()
	}
}

func (a *Actions) disconnect(r *Row) {
	if a != nil && a.connected == r {
		a.connected = nil
	}
}
