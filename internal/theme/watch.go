package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/viper"
)

var log = logging.Logger("theme")

// LoadFile applies a theme document to c. The document is TOML:
//
//	grid_unit = 1
//	name = "Ambiance"
//	version = "1.3"
//
//	[palette]
//	highlight = "#e9e9e9|#262626"   # light|dark, or a single colour for both
func LoadFile(c *Context, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read theme %s: %w", path, err)
	}
	apply(c, v)
	return nil
}

// Watch loads path and re-applies it whenever the file changes. Unit and
// palette subscribers are notified through c.Bus. Changes are detected on a
// watcher goroutine; post, when non-nil, hands each re-apply to the caller's
// event loop.
func Watch(c *Context, path string, post func(func())) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	apply(c, v)
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		log.Debugw("theme file changed", "path", e.Name, "op", e.Op.String())
		if post != nil {
			post(func() { apply(c, v) })
			return
		}
		apply(c, v)
	})
	v.WatchConfig()
	return v, nil
}

func apply(c *Context, v *viper.Viper) {
	if v.IsSet("grid_unit") {
		c.SetUnits(Units{GridUnit: v.GetFloat64("grid_unit")})
	}
	name, version := c.Style()
	if s := strings.TrimSpace(v.GetString("name")); s != "" {
		name = s
	}
	if s := strings.TrimSpace(v.GetString("version")); s != "" {
		version = s
	}
	c.SetStyle(name, version)

	pal := c.Palette()
	set := func(key string, dst *lipgloss.TerminalColor) {
		raw := strings.TrimSpace(v.GetString("palette." + key))
		if raw == "" {
			return
		}
		*dst = parseColor(raw)
	}
	set("background", &pal.Background)
	set("foreground", &pal.Foreground)
	set("highlight", &pal.Highlight)
	set("selected", &pal.Selected)
	set("divider", &pal.Divider)
	set("muted", &pal.Muted)
	set("leading_panel", &pal.LeadingPanel)
	set("trailing_panel", &pal.TrailingPanel)
	set("panel_foreground", &pal.PanelForeground)
	c.SetPalette(pal)
}

func parseColor(raw string) lipgloss.TerminalColor {
	light, dark, ok := strings.Cut(raw, "|")
	if !ok {
		return lipgloss.Color(strings.TrimSpace(raw))
	}
	return ac(strings.TrimSpace(light), strings.TrimSpace(dark))
}
