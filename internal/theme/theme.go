// Package theme holds the ambient values rows read for visual defaults:
// density units and the colour palette. Gesture logic only consumes Units.
package theme

import (
	"sync"

	"swipelist/internal/notify"

	"github.com/charmbracelet/lipgloss"
)

const (
	TopicUnits   notify.Topic = "theme.units"
	TopicPalette notify.Topic = "theme.palette"
)

// Units converts density-independent grid units into view coordinates.
type Units struct {
	GridUnit float64
}

// DefaultGridUnit is one terminal cell per grid unit.
const DefaultGridUnit = 1.0

func (u Units) Dp(gu float64) float64 {
	g := u.GridUnit
	if g <= 0 {
		g = DefaultGridUnit
	}
	return gu * g
}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Palette is the set of semantic colours rows and panels use.
type Palette struct {
	Background      lipgloss.TerminalColor
	Foreground      lipgloss.TerminalColor
	Highlight       lipgloss.TerminalColor
	Selected        lipgloss.TerminalColor
	Divider         lipgloss.TerminalColor
	Muted           lipgloss.TerminalColor
	LeadingPanel    lipgloss.TerminalColor
	TrailingPanel   lipgloss.TerminalColor
	PanelForeground lipgloss.TerminalColor
}

func DefaultPalette() Palette {
	return Palette{
		Background:      ac("255", "235"),
		Foreground:      ac("235", "252"),
		Highlight:       ac("#e9e9e9", "#262626"),
		Selected:        ac("153", "24"),
		Divider:         ac("250", "238"),
		Muted:           ac("240", "243"),
		LeadingPanel:    ac("28", "22"),
		TrailingPanel:   ac("160", "124"),
		PanelForeground: ac("255", "255"),
	}
}

// Context is the per-window theme. Setters publish change events on the bus
// so rows and panels can refresh cached values.
type Context struct {
	mu      sync.RWMutex
	units   Units
	palette Palette
	name    string
	version string

	Bus *notify.Bus
}

func NewContext(bus *notify.Bus) *Context {
	if bus == nil {
		bus = notify.New()
	}
	return &Context{
		units:   Units{GridUnit: DefaultGridUnit},
		palette: DefaultPalette(),
		name:    "Ambiance",
		version: "1.3",
		Bus:     bus,
	}
}

func (c *Context) Units() Units {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.units
}

func (c *Context) Palette() Palette {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.palette
}

// Style returns the name and version of the style document panels should
// be resolved against.
func (c *Context) Style() (name, version string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name, c.version
}

func (c *Context) SetUnits(u Units) {
	if u.GridUnit <= 0 {
		u.GridUnit = DefaultGridUnit
	}
	c.mu.Lock()
	changed := c.units != u
	c.units = u
	c.mu.Unlock()
	if changed {
		c.Bus.Publish(TopicUnits, u)
	}
}

func (c *Context) SetPalette(p Palette) {
	c.mu.Lock()
	c.palette = p
	c.mu.Unlock()
	c.Bus.Publish(TopicPalette, p)
}

func (c *Context) SetStyle(name, version string) {
	c.mu.Lock()
	changed := c.name != name || c.version != version
	c.name, c.version = name, version
	pal := c.palette
	c.mu.Unlock()
	if changed {
		c.Bus.Publish(TopicPalette, pal)
	}
}
