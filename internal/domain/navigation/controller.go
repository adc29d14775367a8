// Package navigation resolves user-entered locations, checks that the
// drive behind them is mounted and moves the explorer's current folder,
// keeping back/forward history and the MRU list up to date.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/drives"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/history"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// ErrNotDirectory is returned when the target resolves to a file
var ErrNotDirectory = errors.New("not a directory")

// Stater resolves paths, including shell-extension paths
type Stater interface {
	Stat(ctx context.Context, path string) (*vfs.Stat, error)
}

// MountPrompter asks the user to insert media into an empty drive
type MountPrompter interface {
	PromptMount(driveRoot string) drives.Prompt
}

// Deps wires a Controller
type Deps struct {
	Stater   Stater
	Mounts   vfs.MountTable
	Prompter MountPrompter
	History  *history.History
	Events   events.Publisher
	Log      *logging.Logger
	Metrics  *monitoring.Metrics
}

// Controller owns the current folder
type Controller struct {
	mu      sync.RWMutex
	current string

	stat     Stater
	mounts   vfs.MountTable
	prompter MountPrompter
	history  *history.History
	events   events.Publisher
	log      *logging.Logger
	metrics  *monitoring.Metrics
}

// NewController creates a controller whose current folder is the root
func NewController(d Deps) *Controller {
	if d.History == nil {
		d.History = history.New(history.DefaultMRUSize)
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	return &Controller{
		current:  paths.Root,
		stat:     d.Stater,
		mounts:   d.Mounts,
		prompter: d.Prompter,
		history:  d.History,
		events:   d.Events,
		log:      d.Log.Named("navigation"),
		metrics:  d.Metrics,
	}
}

// CurrentPath returns the current folder
func (c *Controller) CurrentPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// History exposes back/forward and MRU state
func (c *Controller) History() *history.History {
	return c.history
}

// Resolve turns user input into a canonical path
func Resolve(input string) string {
	return paths.ToInternal(input)
}

// NavigateTo implements shell.Navigator
func (c *Controller) NavigateTo(ctx context.Context, path string) error {
	return c.Navigate(ctx, path, false, false)
}

// Navigate moves to path. A drive without media triggers an insert prompt
// instead; the filesystem is not consulted and nil is returned. Targets
// that do not resolve to a directory are logged and returned as errors
// without changing any state. historyNav suppresses the history push and
// skipMRU the MRU update.
func (c *Controller) Navigate(ctx context.Context, path string, historyNav, skipMRU bool) error {
	if path == "" {
		return nil
	}
	target := Resolve(path)

	if root := paths.DriveRoot(target); root != "" && c.mounts != nil && !c.mounts.Has(root) {
		c.metrics.RecordNavigation(monitoring.StatusSkipped)
		if c.prompter != nil {
			c.prompter.PromptMount(root)
		}
		c.log.Debug("Drive not mounted", zap.String("drive", root))
		return nil
	}

	st, err := c.stat.Stat(ctx, target)
	if err == nil && !st.IsDirectory() {
		err = fmt.Errorf("%s: %w", target, ErrNotDirectory)
	}
	if err != nil {
		c.metrics.RecordNavigation(monitoring.StatusError)
		c.log.Warn("Navigation failed", zap.String("path", target), zap.Error(err))
		return err
	}

	if !historyNav {
		c.history.Push(target)
	}

	c.mu.Lock()
	c.current = target
	c.mu.Unlock()

	if !skipMRU {
		c.history.AddToMRU(target, false)
	}

	c.metrics.RecordNavigation(monitoring.StatusSuccess)
	c.events.Publish(events.Navigated, target)
	return nil
}

// GoUp navigates to the parent folder. It does nothing at the root.
func (c *Controller) GoUp(ctx context.Context) error {
	current := c.CurrentPath()
	if current == paths.Root {
		return nil
	}
	return c.Navigate(ctx, paths.Parent(current), false, false)
}

// GoBack replays the previous history entry
func (c *Controller) GoBack(ctx context.Context) error {
	path, ok := c.history.Back()
	if !ok {
		return nil
	}
	return c.Navigate(ctx, path, true, false)
}

// GoForward replays the next history entry
func (c *Controller) GoForward(ctx context.Context) error {
	path, ok := c.history.Forward()
	if !ok {
		return nil
	}
	return c.Navigate(ctx, path, true, false)
}

// SelectMRU handles a manual pick from the MRU list: the entry is pinned
// and navigated to without adding a new MRU entry
func (c *Controller) SelectMRU(ctx context.Context, id int) error {
	entry, ok := c.history.MarkManualByID(id)
	if !ok {
		return fmt.Errorf("no MRU entry %d", id)
	}
	return c.Navigate(ctx, entry.Path, false, true)
}

// Refresh re-reads the current folder. If it no longer exists the nearest
// surviving ancestor becomes current instead; a folder on a drive whose
// media was ejected falls back to the root. History, the MRU list and the
// navigation counters are left alone and only DirectoryChanged is published.
func (c *Controller) Refresh(ctx context.Context) error {
	current := c.CurrentPath()
	if root := paths.DriveRoot(current); root != "" && c.mounts != nil && !c.mounts.Has(root) {
		c.log.Debug("Drive no longer mounted", zap.String("drive", root))
		current = paths.Root
	}

	for {
		st, err := c.stat.Stat(ctx, current)
		if err == nil && !st.IsDirectory() {
			err = fmt.Errorf("%s: %w", current, ErrNotDirectory)
		}
		if err == nil {
			break
		}
		if current == paths.Root || !vfs.IsNotExist(err) {
			c.log.Warn("Refresh failed", zap.String("path", current), zap.Error(err))
			return err
		}
		current = paths.Parent(current)
	}

	c.mu.Lock()
	c.current = current
	c.mu.Unlock()

	c.events.Publish(events.DirectoryChanged, current)
	return nil
}
