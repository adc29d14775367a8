package shell

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

//go:embed applets.yaml
var defaultApplets []byte

// Icon ids used by the Control Panel
const (
	IconControlPanel = "controlPanel"
	IconFile         = "file"
)

// Applet is one Control Panel item
type Applet struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	AppID       string `yaml:"app_id" json:"app_id"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

type manifest struct {
	Applets []Applet `yaml:"applets"`
}

// ParseApplets decodes an applet manifest
func ParseApplets(data []byte) ([]Applet, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse applet manifest: %w", err)
	}

	seen := make(map[string]bool, len(m.Applets))
	for i, a := range m.Applets {
		if a.Name == "" || a.AppID == "" {
			return nil, fmt.Errorf("applet %d: name and app_id are required", i)
		}
		if strings.Contains(a.Name, paths.Separator) {
			return nil, fmt.Errorf("applet %q: name must not contain %q", a.Name, paths.Separator)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("applet %q: duplicate name", a.Name)
		}
		seen[a.Name] = true
	}
	return m.Applets, nil
}

// ControlPanel serves the virtual "/Control Panel" folder and injects it
// into the root listing
type ControlPanel struct {
	path     string
	applets  []Applet
	launcher Launcher
}

// ControlPanelCapabilities is what NewControlPanel's result supports
const ControlPanelCapabilities = CapIcon | CapColumns | CapOpen

// NewControlPanel creates the extension with the built-in applets
func NewControlPanel(launcher Launcher) (*ControlPanel, error) {
	applets, err := ParseApplets(defaultApplets)
	if err != nil {
		return nil, err
	}
	return NewControlPanelWith(applets, launcher), nil
}

// NewControlPanelWith creates the extension with a custom applet list
func NewControlPanelWith(applets []Applet, launcher Launcher) *ControlPanel {
	return &ControlPanel{
		path:     paths.ControlPanel,
		applets:  append([]Applet(nil), applets...),
		launcher: launcher,
	}
}

// Name implements Extension
func (c *ControlPanel) Name() string { return "control-panel" }

// Applets returns the configured applets
func (c *ControlPanel) Applets() []Applet {
	return append([]Applet(nil), c.applets...)
}

// HandlesPath implements Extension
func (c *ControlPanel) HandlesPath(path string) bool {
	return path == c.path || strings.HasPrefix(path, c.path+paths.Separator)
}

// Stat implements Extension
func (c *ControlPanel) Stat(_ context.Context, path string) (*vfs.Stat, error) {
	if path == c.path {
		return vfs.NewVirtualStat(paths.Base(c.path), true), nil
	}
	if a, ok := c.applet(path); ok {
		return vfs.NewVirtualStat(a.Name, false), nil
	}
	return nil, fmt.Errorf("stat %s: %w", path, ErrNotFound)
}

// ReadDir implements Extension
func (c *ControlPanel) ReadDir(_ context.Context, dir string) ([]string, bool) {
	switch dir {
	case paths.Root:
		return []string{paths.Base(c.path)}, true
	case c.path:
		names := make([]string, len(c.applets))
		for i, a := range c.applets {
			names[i] = a.Name
		}
		return names, true
	}
	return nil, false
}

// Icon implements IconProvider
func (c *ControlPanel) Icon(path string) (string, bool) {
	if path == c.path {
		return IconControlPanel, true
	}
	a, ok := c.applet(path)
	if !ok {
		return "", false
	}
	if a.Icon != "" {
		return a.Icon, true
	}
	if a.AppID != "" {
		return a.AppID, true
	}
	return IconFile, true
}

// Columns implements ColumnProvider
func (c *ControlPanel) Columns(string) []Column {
	return []Column{
		{Label: "Name", Key: ColName},
		{Label: "Description", Key: ColDescription},
	}
}

// ColumnValue implements ColumnProvider
func (c *ControlPanel) ColumnValue(path, key string, _ *vfs.Stat) (string, bool) {
	a, ok := c.applet(path)
	if !ok || key != ColDescription {
		return "", false
	}
	return a.Description, true
}

// Open implements Opener. The folder navigates; applets launch their app.
func (c *ControlPanel) Open(ctx context.Context, path string, nav Navigator) (bool, error) {
	if path == c.path {
		if nav == nil {
			return false, nil
		}
		return true, nav.NavigateTo(ctx, c.path)
	}
	a, ok := c.applet(path)
	if !ok {
		return false, nil
	}
	if c.launcher == nil {
		return false, fmt.Errorf("launch %s: no launcher configured", a.AppID)
	}
	return true, c.launcher.Launch(ctx, a.AppID)
}

func (c *ControlPanel) applet(path string) (Applet, bool) {
	if paths.Parent(path) != c.path {
		return Applet{}, false
	}
	name := paths.Base(path)
	for _, a := range c.applets {
		if a.Name == name {
			return a, true
		}
	}
	return Applet{}, false
}

// EventLauncher launches apps by publishing a request for the desktop
// shell to act on
type EventLauncher struct {
	Events events.Publisher
}

// Launch implements Launcher
func (l EventLauncher) Launch(_ context.Context, appID string) error {
	if appID == "" {
		return fmt.Errorf("launch: empty app id")
	}
	if l.Events != nil {
		l.Events.Publish(events.AppLaunchRequested, appID)
	}
	return nil
}
