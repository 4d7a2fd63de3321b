package pointer

// FilterFunc observes a press before it reaches any handler.
type FilterFunc func(ev Event)

// FilterSet is the window-level outside-press hook. Many components may
// install a filter under their own key; the hook itself is considered
// attached while at least one key is installed.
//
// Install and Remove are idempotent per key, so a component can call Remove
// on every exit path without tracking whether it installed anything.
type FilterSet struct {
	keys  []any
	funcs map[any]FilterFunc
}

func (s *FilterSet) Install(key any, fn FilterFunc) {
	if key == nil || fn == nil {
		return
	}
	if s.funcs == nil {
		s.funcs = map[any]FilterFunc{}
	}
	if _, ok := s.funcs[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.funcs[key] = fn
}

func (s *FilterSet) Remove(key any) bool {
	if _, ok := s.funcs[key]; !ok {
		return false
	}
	delete(s.funcs, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

func (s *FilterSet) Installed(key any) bool {
	_, ok := s.funcs[key]
	return ok
}

func (s *FilterSet) Active() bool { return len(s.keys) > 0 }

func (s *FilterSet) Len() int { return len(s.keys) }

// Run invokes the installed filters in installation order. Filters may
// remove themselves (or others) while running.
func (s *FilterSet) Run(ev Event) {
	if len(s.keys) == 0 {
		return
	}
	keys := append([]any(nil), s.keys...)
	for _, k := range keys {
		if fn, ok := s.funcs[k]; ok {
			fn(ev)
		}
	}
}
