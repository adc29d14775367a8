// Package listing builds the directory view and the properties sheet:
// sorted entries with display names, icons and detail columns, resolved
// through the shell registry and the recycle bin metadata.
package listing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/clipboard"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// SniffLimit caps how large a file may be before its type is decided by
// extension alone
const SniffLimit = 512 * 1024

const dateLayout = "1/2/2006 03:04 PM"

// Item is one row of the directory view
type Item struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	DisplayName string            `json:"display_name"`
	IsDir       bool              `json:"is_dir"`
	Size        int64             `json:"size"`
	Modified    time.Time         `json:"modified"`
	Type        string            `json:"type"`
	Icon        string            `json:"icon"`
	Cut         bool              `json:"cut,omitempty"`
	Virtual     bool              `json:"virtual,omitempty"`
	Columns     map[string]string `json:"columns"`
}

// Listing is the rendered content of one folder
type Listing struct {
	Path    string         `json:"path"`
	Address string         `json:"address"`
	Title   string         `json:"title"`
	Icon    string         `json:"icon"`
	Columns []shell.Column `json:"columns"`
	Items   []Item         `json:"items"`
	Status  string         `json:"status"`
}

// Deps wires a Lister
type Deps struct {
	FS        vfs.FS
	Shell     *shell.Registry
	Recycle   *recycle.Manager
	Clipboard *clipboard.Manager
	Labels    paths.LabelProvider
	Hidden    []string
	Log       *logging.Logger
}

// Lister renders folders. Safe for concurrent use.
type Lister struct {
	fs        vfs.FS
	shell     *shell.Registry
	recycle   *recycle.Manager
	clipboard *clipboard.Manager
	labels    paths.LabelProvider
	hidden    []string
	log       *logging.Logger

	mu       sync.Mutex
	collator *collate.Collator
	printer  *message.Printer
}

// New creates a Lister. Hidden entries are doublestar patterns; a pattern
// without a separator matches entry names, otherwise full paths.
func New(d Deps) (*Lister, error) {
	for _, p := range d.Hidden {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid hidden pattern %q", p)
		}
	}
	return &Lister{
		fs:        d.FS,
		shell:     d.Shell,
		recycle:   d.Recycle,
		clipboard: d.Clipboard,
		labels:    d.Labels,
		hidden:    append([]string(nil), d.Hidden...),
		log:       d.Log.Named("listing"),
		collator:  collate.New(language.English),
		printer:   message.NewPrinter(language.English),
	}, nil
}

// List renders dir
func (l *Lister) List(ctx context.Context, dir string) (*Listing, error) {
	names, err := l.shell.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	names = l.visible(dir, names)
	l.sort(names)

	var recycled map[string]recycle.Entry
	if l.recycle.IsRecycleBinPath(dir) {
		recycled, err = l.recycledEntries(ctx)
		if err != nil {
			return nil, err
		}
	}

	out := &Listing{
		Path:    dir,
		Address: paths.FormatForDisplay(dir),
		Title:   paths.DisplayName(dir, l.labels),
		Icon:    l.folderIcon(ctx, dir),
		Columns: l.shell.Columns(dir),
		Items:   make([]Item, 0, len(names)),
	}

	for _, name := range names {
		full := paths.Join(dir, name)
		st, err := l.shell.Stat(ctx, full)
		if err != nil {
			l.log.Warn("Could not stat", zap.String("path", full), zap.Error(err))
			continue
		}
		out.Items = append(out.Items, l.item(ctx, full, name, st, recycled, out.Columns))
	}
	out.Status = fmt.Sprintf("%d object(s)", len(out.Items))
	return out, nil
}

func (l *Lister) item(ctx context.Context, full, name string, st *vfs.Stat, recycled map[string]recycle.Entry, cols []shell.Column) Item {
	it := Item{
		Name:        name,
		Path:        full,
		DisplayName: paths.DisplayName(full, l.labels),
		IsDir:       st.IsDir,
		Size:        st.Size,
		Modified:    st.MTime,
		Virtual:     st.Virtual,
		Cut:         l.clipboard != nil && l.clipboard.IsCut(full),
	}

	typeName := name
	if entry, ok := recycled[name]; ok {
		typeName = entry.OriginalName
		it.DisplayName = paths.DisplayName(entry.OriginalName, l.labels)
	}

	if st.IsDir {
		it.Type = TypeFolder
		it.Icon = FolderIcon(typeName)
	} else {
		assoc := l.fileType(ctx, full, typeName, st)
		it.Type = assoc.Name
		it.Icon = assoc.Icon
	}

	if l.recycle.IsRecycleBinPath(full) {
		it.Icon = l.recycleIcon(ctx)
	} else if icon, ok := l.shell.Icon(full); ok {
		it.Icon = icon
	}
	if v, ok := l.shell.ColumnValue(full, shell.ColType, st); ok {
		it.Type = v
	}

	it.Columns = make(map[string]string, len(cols))
	for _, c := range cols {
		it.Columns[c.Key] = l.columnValue(full, c.Key, st, &it)
	}
	return it
}

func (l *Lister) columnValue(full, key string, st *vfs.Stat, it *Item) string {
	switch key {
	case shell.ColName:
		return it.DisplayName
	case shell.ColType:
		return it.Type
	}
	if v, ok := l.shell.ColumnValue(full, key, st); ok {
		return v
	}
	switch key {
	case shell.ColSize:
		if st.IsDir {
			return ""
		}
		return l.FormatSize(st.Size)
	case shell.ColModified:
		if st.MTime.IsZero() {
			return ""
		}
		return st.MTime.Format(dateLayout)
	}
	return ""
}

// fileType decides a file's association, sniffing small files whose
// extension is unknown
func (l *Lister) fileType(ctx context.Context, full, name string, st *vfs.Stat) Association {
	if a, ok := Lookup(name); ok {
		return a
	}
	if st.Virtual || st.Size == 0 || st.Size > SniffLimit {
		return Detect(name, nil)
	}
	data, err := l.fs.ReadFile(ctx, full)
	if err != nil {
		return Detect(name, nil)
	}
	return Detect(name, data)
}

// folderIcon picks the icon for the open folder itself
func (l *Lister) folderIcon(ctx context.Context, dir string) string {
	if l.recycle.IsRecycleBinPath(dir) {
		return l.recycleIcon(ctx)
	}
	if icon, ok := l.shell.Icon(dir); ok {
		return icon
	}
	switch {
	case dir == paths.Root:
		return IconComputer
	case paths.IsDriveRoot(dir):
		return FolderIcon(paths.Base(dir))
	}
	return IconFolderOpen
}

func (l *Lister) recycleIcon(ctx context.Context) string {
	empty, err := l.recycle.IsEmpty(ctx)
	if err == nil && !empty {
		return IconRecycleFull
	}
	return IconRecycleEmpty
}

func (l *Lister) recycledEntries(ctx context.Context) (map[string]recycle.Entry, error) {
	entries, err := l.recycle.Entries(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]recycle.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return byID, nil
}

// visible drops the recycle metadata file and configured hidden entries
func (l *Lister) visible(dir string, names []string) []string {
	metadata := ""
	if l.recycle.IsRecycleBinPath(dir) {
		metadata = paths.Base(l.recycle.MetadataPath())
	}

	out := names[:0]
	for _, name := range names {
		if name == metadata || l.isHidden(paths.Join(dir, name), name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (l *Lister) isHidden(full, name string) bool {
	for _, p := range l.hidden {
		target := name
		if strings.Contains(p, paths.Separator) {
			target = full
		}
		if ok, _ := doublestar.Match(p, target); ok {
			return true
		}
	}
	return false
}

func (l *Lister) sort(names []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.collator.SortStrings(names)
}

// FormatSize renders a detail-view size, rounded up to whole kilobytes
func (l *Lister) FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 KB"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.printer.Sprintf("%d KB", ceilKB(bytes))
}

func ceilKB(bytes int64) int64 {
	return (bytes + 1023) / 1024
}

// FileType resolves the association of the file at path. Recycled items
// resolve by their original name.
func (l *Lister) FileType(ctx context.Context, path string) (Association, error) {
	st, err := l.shell.Stat(ctx, path)
	if err != nil {
		return Association{}, err
	}
	name := paths.Base(path)
	if entry, ok, _ := l.recycle.EntryForPath(ctx, path); ok {
		name = entry.OriginalName
	}
	return l.fileType(ctx, path, name, st), nil
}
