// Package explorer assembles one file-manager workspace: the mounted
// drives, recycle bin, clipboard and undo stack shared by every window,
// and the windows themselves, each with its own navigation history.
package explorer

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/clipboard"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/dialog"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/drives"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/listing"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/undo"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// Options configures a Workspace. Zero values fall back to defaults.
type Options struct {
	Explorer config.ExplorerConfig
	Reserved []string

	// CDrive backs C:; nil keeps the drive in memory
	CDrive        billy.Filesystem
	CDriveOptions []vfs.Option

	Bus      *events.Bus
	Dialogs  dialog.Dialogs
	Launcher shell.Launcher
	Log      *logging.Logger
	Metrics  *monitoring.Metrics
}

// Workspace owns the state shared by all explorer windows
type Workspace struct {
	cfg     config.ExplorerConfig
	bus     *events.Bus
	ownsBus bool

	fs        *vfs.MountFS
	shell     *shell.Registry
	panel     *shell.ControlPanel
	launcher  shell.Launcher
	drives    *drives.Manager
	recycle   *recycle.Manager
	clipboard *clipboard.Manager
	undo      *undo.Manager
	dialogs   dialog.Dialogs
	lister    *listing.Lister

	log     *logging.Logger
	metrics *monitoring.Metrics

	mu        sync.RWMutex
	windows   map[string]*Window // Protected by mu
	focusedID string             // Protected by mu
}

// NewWorkspace mounts C:, prepares the recycle bin and wires every manager
func NewWorkspace(ctx context.Context, opts Options) (*Workspace, error) {
	cfg := opts.Explorer
	defaults := config.Default().Explorer
	if cfg.StartPath == "" {
		cfg.StartPath = defaults.StartPath
	}
	if cfg.RecyclePath == "" {
		cfg.RecyclePath = defaults.RecyclePath
	}
	if cfg.MRUSize <= 0 {
		cfg.MRUSize = defaults.MRUSize
	}

	ws := &Workspace{
		cfg:     cfg,
		bus:     opts.Bus,
		log:     opts.Log.Named("explorer"),
		metrics: opts.Metrics,
		windows: make(map[string]*Window),
	}
	if ws.bus == nil {
		ws.bus = events.NewBus(cfg.EventBuffer)
		ws.ownsBus = true
	}
	ws.metrics.RegisterEventDrops(ws.bus.Dropped)

	ws.dialogs = opts.Dialogs
	if ws.dialogs == nil {
		ws.dialogs = dialog.NewRecorder(cfg.AutoConfirm)
	}

	cdrive := opts.CDrive
	if cdrive == nil {
		cdrive = memfs.New()
	}
	ws.fs = vfs.New(nil)
	if err := ws.fs.Mount(paths.SystemDrive, cdrive, opts.CDriveOptions...); err != nil {
		return nil, fmt.Errorf("mount %s: %w", paths.SystemDrive, err)
	}
	// media drives are listed even when empty
	for _, point := range []string{paths.FloppyDrive, paths.CDDrive} {
		if err := ws.fs.Mkdir(ctx, point, true); err != nil {
			return nil, fmt.Errorf("create %s: %w", point, err)
		}
	}

	launcher := opts.Launcher
	if launcher == nil {
		launcher = shell.EventLauncher{Events: ws.bus}
	}
	ws.launcher = launcher
	panel, err := shell.NewControlPanel(launcher)
	if err != nil {
		return nil, err
	}
	ws.panel = panel
	ws.shell = shell.NewRegistry(ws.fs)
	if err := ws.shell.Register(panel, shell.ControlPanelCapabilities); err != nil {
		return nil, err
	}

	ws.drives = drives.NewManager(ws.fs, opts.Reserved, ws.bus, opts.Log).
		WithMetrics(opts.Metrics).
		WithDialogs(ws.dialogs).
		OnEject(ws.leaveDrive)

	ws.recycle = recycle.NewManager(ws.fs, cfg.RecyclePath, ws.bus, opts.Log).WithMetrics(opts.Metrics)
	if err := ws.recycle.Init(ctx); err != nil {
		return nil, fmt.Errorf("init recycle bin: %w", err)
	}

	ws.clipboard = clipboard.NewManager(ws.bus).WithMetrics(opts.Metrics)
	ws.undo = undo.NewManager(ws.bus).WithMetrics(opts.Metrics)

	ws.lister, err = listing.New(listing.Deps{
		FS:        ws.fs,
		Shell:     ws.shell,
		Recycle:   ws.recycle,
		Clipboard: ws.clipboard,
		Labels:    ws.drives,
		Hidden:    cfg.Hidden,
		Log:       opts.Log,
	})
	if err != nil {
		return nil, err
	}

	ws.log.Info("Workspace ready")
	return ws, nil
}

// Close closes every window and, when the workspace created it, the bus
func (ws *Workspace) Close() {
	ws.mu.Lock()
	ws.windows = make(map[string]*Window)
	ws.focusedID = ""
	ws.mu.Unlock()

	if ws.ownsBus {
		ws.bus.Close()
	}
}

// Config returns the effective explorer settings
func (ws *Workspace) Config() config.ExplorerConfig { return ws.cfg }

// Shared managers
func (ws *Workspace) Bus() *events.Bus                  { return ws.bus }
func (ws *Workspace) FS() *vfs.MountFS                  { return ws.fs }
func (ws *Workspace) Shell() *shell.Registry            { return ws.shell }
func (ws *Workspace) ControlPanel() *shell.ControlPanel { return ws.panel }
func (ws *Workspace) Drives() *drives.Manager           { return ws.drives }
func (ws *Workspace) Recycle() *recycle.Manager         { return ws.recycle }
func (ws *Workspace) Clipboard() *clipboard.Manager     { return ws.clipboard }
func (ws *Workspace) Undo() *undo.Manager               { return ws.undo }
func (ws *Workspace) Dialogs() dialog.Dialogs           { return ws.dialogs }
func (ws *Workspace) Lister() *listing.Lister           { return ws.lister }

// Messages returns recorded dialogs when the workspace records them
func (ws *Workspace) Messages() []dialog.Message {
	if r, ok := ws.dialogs.(*dialog.Recorder); ok {
		return r.Messages()
	}
	return nil
}

// DrainMessages returns recorded dialogs and forgets them
func (ws *Workspace) DrainMessages() []dialog.Message {
	if r, ok := ws.dialogs.(*dialog.Recorder); ok {
		return r.Drain()
	}
	return nil
}

// SetConfirmAnswer changes what recorded confirmations answer. It reports
// false when dialogs are not recorded.
func (ws *Workspace) SetConfirmAnswer(answer bool) bool {
	r, ok := ws.dialogs.(*dialog.Recorder)
	if ok {
		r.SetAnswer(answer)
	}
	return ok
}

// EmptyRecycleBin asks for confirmation and permanently deletes
// everything in the bin. An empty bin is left alone.
func (ws *Workspace) EmptyRecycleBin(ctx context.Context) (bool, error) {
	empty, err := ws.recycle.IsEmpty(ctx)
	if err != nil || empty {
		return false, err
	}
	if !ws.dialogs.Confirm("Confirm Empty Recycle Bin",
		"Are you sure you want to permanently delete all items in the Recycle Bin?") {
		return false, nil
	}
	if err := ws.recycle.Empty(ctx); err != nil {
		return false, err
	}
	ws.refreshWindowsAt(ctx, ws.recycle.Root())
	return true, nil
}

// RestoreItems moves recycled items back to their original locations
func (ws *Workspace) RestoreItems(ctx context.Context, items []string) ([]string, error) {
	ids := make([]string, 0, len(items))
	for _, p := range items {
		if ws.recycle.IsRecycledItemPath(p) {
			ids = append(ids, paths.Base(p))
		}
	}
	restored, err := ws.recycle.RestoreItems(ctx, ids)
	if err != nil {
		dialog.ShowError(ws.dialogs, dialog.OpRestore, err, "items")
	}
	ws.refreshWindowsAt(ctx, ws.recycle.Root())
	return restored, err
}

// leaveDrive sends every window showing a folder on root back to My
// Computer once the drive's media is gone
func (ws *Workspace) leaveDrive(ctx context.Context, root string) {
	for _, w := range ws.Windows() {
		if paths.DriveRoot(w.CurrentPath()) != root {
			continue
		}
		if err := w.Navigator().NavigateTo(ctx, paths.Root); err != nil {
			ws.log.Warn("Failed to leave ejected drive",
				zap.String("window", w.ID),
				zap.String("drive", root),
				zap.Error(err))
		}
	}
}

// refreshWindowsAt re-reads every window showing dir
func (ws *Workspace) refreshWindowsAt(ctx context.Context, dir string) {
	for _, w := range ws.Windows() {
		if w.CurrentPath() == dir {
			if err := w.Refresh(ctx); err != nil {
				ws.log.Warn("Refresh failed", zap.String("window", w.ID), zap.Error(err))
			}
		}
	}
}
