package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// UnknownTime is shown for timestamps outside the user drive
const UnknownTime = "(unknown)"

const propertiesDateLayout = "Monday, January 2, 2006, 3:04:05 PM"

// Properties is the content of a properties sheet
type Properties struct {
	Title         string `json:"title"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Type          string `json:"type"`
	LocationLabel string `json:"location_label"`
	Location      string `json:"location"`
	Size          string `json:"size"`
	SizeBytes     int64  `json:"size_bytes"`
	Contains      string `json:"contains,omitempty"`
	Created       string `json:"created,omitempty"`
	Modified      string `json:"modified,omitempty"`
	Accessed      string `json:"accessed,omitempty"`
}

type statted struct {
	path string
	st   *vfs.Stat
}

// Properties describes one item in detail or summarizes several
func (l *Lister) Properties(ctx context.Context, items []string) (*Properties, error) {
	if len(items) == 0 {
		return nil, errors.New("no items selected")
	}

	stats := make([]statted, 0, len(items))
	for _, p := range items {
		st, err := l.shell.Stat(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("properties of %s: %w", p, err)
		}
		stats = append(stats, statted{path: p, st: st})
	}

	if len(stats) == 1 {
		return l.single(ctx, stats[0]), nil
	}
	return l.multiple(ctx, stats), nil
}

func (l *Lister) single(ctx context.Context, item statted) *Properties {
	name := paths.Base(item.path)
	props := &Properties{
		Title:         paths.DisplayName(item.path, l.labels) + " Properties",
		LocationLabel: "Location",
		Location:      paths.FormatForDisplay(item.path),
	}

	if l.recycle.IsRecycledItemPath(item.path) {
		if entry, ok, _ := l.recycle.EntryForPath(ctx, item.path); ok {
			name = entry.OriginalName
			props.Location = paths.FormatForDisplay(entry.OriginalPath)
			props.LocationLabel = "Origin"
		}
	}
	props.Name = name

	if item.st.IsDir {
		props.Type = TypeFileFolder
		props.Icon = FolderIcon(name)
		props.SizeBytes = l.treeSize(ctx, item.path)
		props.Contains = l.contains(ctx, item.path)
	} else {
		assoc := l.fileType(ctx, item.path, name, item.st)
		props.Type = assoc.Name
		props.Icon = assoc.Icon
		props.SizeBytes = item.st.Size
	}
	props.Size = l.formatLongSize(props.SizeBytes)

	userDrive := paths.DriveRoot(item.path) == paths.SystemDrive
	props.Created = formatStamp(userDrive, item.st.BirthTime)
	props.Modified = formatStamp(userDrive, item.st.MTime)
	props.Accessed = formatStamp(userDrive, item.st.ATime)
	return props
}

func (l *Lister) multiple(ctx context.Context, items []statted) *Properties {
	var (
		files, folders int
		total          int64
		types          = make(map[string]struct{})
		onlyType       string
	)
	for _, it := range items {
		if it.st.IsDir {
			folders++
			total += l.treeSize(ctx, it.path)
			onlyType = TypeFileFolder
		} else {
			files++
			total += it.st.Size
			onlyType = l.fileType(ctx, it.path, paths.Base(it.path), it.st).Name
		}
		types[onlyType] = struct{}{}
	}

	typ := TypeMultiple
	if len(types) == 1 {
		typ = onlyType
	}

	return &Properties{
		Title:         "Properties",
		Name:          countLabel(files, folders),
		Icon:          IconFileSet,
		Type:          typ,
		LocationLabel: "Location",
		Location:      "All in " + paths.FormatForDisplay(paths.Parent(items[0].path)),
		Size:          l.formatLongSize(total),
		SizeBytes:     total,
	}
}

// treeSize sums file sizes beneath dir. Unreadable entries are logged and
// skipped so a partial total is still reported.
func (l *Lister) treeSize(ctx context.Context, dir string) int64 {
	names, err := l.shell.ReadDir(ctx, dir)
	if err != nil {
		l.log.Warn("Error calculating recursive size", zap.String("path", dir), zap.Error(err))
		return 0
	}
	var size int64
	for _, name := range names {
		child := paths.Join(dir, name)
		st, err := l.shell.Stat(ctx, child)
		if err != nil {
			l.log.Warn("Error calculating recursive size", zap.String("path", child), zap.Error(err))
			continue
		}
		if st.IsDir {
			size += l.treeSize(ctx, child)
		} else {
			size += st.Size
		}
	}
	return size
}

func (l *Lister) contains(ctx context.Context, dir string) string {
	names, err := l.shell.ReadDir(ctx, dir)
	if err != nil {
		return countLabel(0, 0)
	}
	var files, folders int
	for _, name := range names {
		st, err := l.shell.Stat(ctx, paths.Join(dir, name))
		if err != nil {
			continue
		}
		if st.IsDir {
			folders++
		} else {
			files++
		}
	}
	return countLabel(files, folders)
}

func (l *Lister) formatLongSize(bytes int64) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.printer.Sprintf("%dKB (%d bytes)", ceilKB(bytes), bytes)
}

func countLabel(files, folders int) string {
	f, d := "Files", "Folders"
	if files == 1 {
		f = "File"
	}
	if folders == 1 {
		d = "Folder"
	}
	return fmt.Sprintf("%d %s, %d %s", files, f, folders, d)
}

func formatStamp(userDrive bool, t time.Time) string {
	if !userDrive || t.IsZero() {
		return UnknownTime
	}
	return t.Format(propertiesDateLayout)
}
