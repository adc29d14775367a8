// Package naming computes collision-free names for pasted, moved, restored
// and newly created items.
//
// Three rules exist:
//
//	copy:   X, Copy of X, Copy (2) of X, Copy (3) of X ...
//	move:   X, X (1), X (2) ...            suffix before the extension
//	create: New Folder, New Folder (2) ... suffix before the extension
//
// The copy rule always strips an existing "Copy of" or "Copy (N) of"
// prefix first, so copying a copy never yields "Copy of Copy of X".
package naming

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// Default names for new items
const (
	NewFolderName   = "New Folder"
	NewTextFileName = "New Text Document.txt"
)

// maxAttempts bounds the suffix search so a broken backend cannot spin forever
const maxAttempts = 100000

var (
	copyNPattern = regexp.MustCompile(`^Copy \((\d+)\) of (.+)$`)
	copyPattern  = regexp.MustCompile(`^Copy of (.+)$`)
)

// BaseName recovers X from "Copy of X" or "Copy (N) of X"
func BaseName(name string) string {
	if m := copyNPattern.FindStringSubmatch(name); m != nil {
		return m[2]
	}
	if m := copyPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// CopyName returns the n-th candidate of the copy rule for base.
// n == 0 is the base itself, n == 1 is "Copy of base".
func CopyName(base string, n int) string {
	switch {
	case n <= 0:
		return base
	case n == 1:
		return "Copy of " + base
	default:
		return fmt.Sprintf("Copy (%d) of %s", n, base)
	}
}

// SuffixName inserts " (n)" before the extension of name. Directories and
// names whose only dot is the leading one take the suffix at the end.
func SuffixName(name string, n int, isDir bool) string {
	stem, ext := SplitExt(name, isDir)
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// SplitExt splits name into stem and extension (including the dot)
func SplitExt(name string, isDir bool) (string, string) {
	if isDir {
		return name, ""
	}
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// CopyTarget returns the path a copy of name should take inside dir
func CopyTarget(ctx context.Context, fsys vfs.FS, dir, name string) (string, error) {
	target := paths.Join(dir, name)
	taken, err := vfs.Exists(ctx, fsys, target)
	if err != nil || !taken {
		return target, err
	}

	base := BaseName(name)
	for n := 1; n <= maxAttempts; n++ {
		target = paths.Join(dir, CopyName(base, n))
		taken, err = vfs.Exists(ctx, fsys, target)
		if err != nil {
			return "", err
		}
		if !taken {
			return target, nil
		}
	}
	return "", fmt.Errorf("no free copy name for %q in %s", name, dir)
}

// MoveTarget returns the path a moved item called name should take inside dir
func MoveTarget(ctx context.Context, fsys vfs.FS, dir, name string, isDir bool) (string, error) {
	return suffixed(ctx, fsys, dir, name, isDir, 1)
}

// NewItemName returns a free name for a brand-new item starting from base
func NewItemName(ctx context.Context, fsys vfs.FS, dir, base string, isDir bool) (string, error) {
	target, err := suffixed(ctx, fsys, dir, base, isDir, 2)
	if err != nil {
		return "", err
	}
	return paths.Base(target), nil
}

func suffixed(ctx context.Context, fsys vfs.FS, dir, name string, isDir bool, first int) (string, error) {
	target := paths.Join(dir, name)
	taken, err := vfs.Exists(ctx, fsys, target)
	if err != nil || !taken {
		return target, err
	}

	for n := first; n < first+maxAttempts; n++ {
		target = paths.Join(dir, SuffixName(name, n, isDir))
		taken, err = vfs.Exists(ctx, fsys, target)
		if err != nil {
			return "", err
		}
		if !taken {
			return target, nil
		}
	}
	return "", fmt.Errorf("no free name for %q in %s", name, dir)
}
