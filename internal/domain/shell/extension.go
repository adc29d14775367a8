// Package shell lets extensions claim parts of the path space and serve
// virtual entries there, layered over the real filesystem.
//
// Every extension implements Extension. Icons, columns and open handling
// are optional capabilities: an extension declares them when it is
// registered and the registry verifies that the matching interface is
// implemented, so dispatch never probes for methods at call time.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
)

// ErrNotFound is returned by extensions for paths they claim but do not have
var ErrNotFound = fmt.Errorf("shell item not found: %w", vfs.ErrNotExist)

// Capability is a bitmask of optional extension behavior
type Capability uint8

const (
	CapIcon Capability = 1 << iota
	CapColumns
	CapOpen
)

// Has reports whether c includes every bit of other
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c.Has(CapIcon) {
		parts = append(parts, "icon")
	}
	if c.Has(CapColumns) {
		parts = append(parts, "columns")
	}
	if c.Has(CapOpen) {
		parts = append(parts, "open")
	}
	return strings.Join(parts, "|")
}

// Extension is the required surface of a shell extension
type Extension interface {
	// Name identifies the extension in logs and listings
	Name() string

	// HandlesPath reports whether the extension owns path
	HandlesPath(path string) bool

	// Stat describes a path the extension owns
	Stat(ctx context.Context, path string) (*vfs.Stat, error)

	// ReadDir returns virtual entries to merge into the listing of dir.
	// ok is false when the extension has nothing to add there.
	ReadDir(ctx context.Context, dir string) (names []string, ok bool)
}

// IconProvider supplies icon ids for owned paths
type IconProvider interface {
	Icon(path string) (string, bool)
}

// Column is one detail-view column
type Column struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// Column keys understood by the default listing
const (
	ColName        = "name"
	ColSize        = "size"
	ColType        = "type"
	ColModified    = "modified"
	ColDescription = "description"
)

// ColumnProvider overrides detail-view columns for owned directories
type ColumnProvider interface {
	Columns(dir string) []Column
	ColumnValue(path, key string, st *vfs.Stat) (string, bool)
}

// Navigator is what an opener may use to change the current folder
type Navigator interface {
	NavigateTo(ctx context.Context, path string) error
}

// Opener handles double-click on owned paths. handled is false when the
// default open behavior should run instead.
type Opener interface {
	Open(ctx context.Context, path string, nav Navigator) (handled bool, err error)
}

// Launcher starts applications by id
type Launcher interface {
	Launch(ctx context.Context, appID string) error
}

var errCapability = errors.New("extension does not implement declared capability")

func verify(ext Extension, caps Capability) error {
	if caps.Has(CapIcon) {
		if _, ok := ext.(IconProvider); !ok {
			return fmt.Errorf("%s: icon: %w", ext.Name(), errCapability)
		}
	}
	if caps.Has(CapColumns) {
		if _, ok := ext.(ColumnProvider); !ok {
			return fmt.Errorf("%s: columns: %w", ext.Name(), errCapability)
		}
	}
	if caps.Has(CapOpen) {
		if _, ok := ext.(Opener); !ok {
			return fmt.Errorf("%s: open: %w", ext.Name(), errCapability)
		}
	}
	return nil
}
