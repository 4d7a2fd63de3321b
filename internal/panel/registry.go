// Package panel provides the style registry rows resolve their action panel
// from, and the default swipe panel drawn behind list rows.
package panel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("panel")

// Factory builds one panel instance. The result is type-checked by the row
// that asked for it, so a factory may return anything.
type Factory func() any

type version struct {
	major, minor int
}

func parseVersion(s string) (version, error) {
	s = strings.TrimSpace(s)
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		minor = "0"
	}
	ma, err := strconv.Atoi(major)
	if err != nil || ma < 0 {
		return version{}, fmt.Errorf("invalid style version %q", s)
	}
	mi, err := strconv.Atoi(minor)
	if err != nil || mi < 0 {
		return version{}, fmt.Errorf("invalid style version %q", s)
	}
	return version{major: ma, minor: mi}, nil
}

func (v version) less(o version) bool {
	if v.major != o.major {
		return v.major < o.major
	}
	return v.minor < o.minor
}

func (v version) String() string { return fmt.Sprintf("%d.%d", v.major, v.minor) }

type styleEntry struct {
	version version
	factory Factory
}

// Registry maps style documents (name + version) to panel factories.
type Registry struct {
	mu     sync.RWMutex
	styles map[string][]styleEntry
}

func NewRegistry() *Registry {
	return &Registry{styles: map[string][]styleEntry{}}
}

// Register adds a factory for name at version. Registering the same
// name/version again replaces the factory.
func (r *Registry) Register(name, ver string, f Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("style name is required")
	}
	if f == nil {
		return fmt.Errorf("style %s: factory is required", name)
	}
	v, err := parseVersion(ver)
	if err != nil {
		return fmt.Errorf("style %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.styles[name]
	for i := range list {
		if list[i].version == v {
			list[i].factory = f
			return nil
		}
	}
	list = append(list, styleEntry{version: v, factory: f})
	sort.Slice(list, func(i, j int) bool { return list[i].version.less(list[j].version) })
	r.styles[name] = list
	return nil
}

// Resolve builds a panel for the requested style. An exact version match
// wins; otherwise the newest registered version with the same major that is
// not newer than the request is used. Unknown styles resolve to nil.
func (r *Registry) Resolve(name, ver string) any {
	f := r.lookup(name, ver)
	if f == nil {
		log.Debugw("no panel registered for style", "style", name, "version", ver)
		return nil
	}
	return f()
}

func (r *Registry) lookup(name, ver string) Factory {
	want, err := parseVersion(ver)
	if err != nil {
		log.Warnw("unparseable style version", "style", name, "version", ver, "err", err)
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.styles[strings.TrimSpace(name)]
	var best Factory
	for _, e := range list {
		if e.version == want {
			return e.factory
		}
		if e.version.major == want.major && e.version.less(want) {
			best = e.factory
		}
	}
	return best
}

// Versions lists the registered versions of name, oldest first.
func (r *Registry) Versions(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.styles[name]
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.version.String())
	}
	return out
}
