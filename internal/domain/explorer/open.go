package explorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/listing"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// ErrNoAssociation is returned when no application opens a file
var ErrNoAssociation = errors.New("no association")

// OpenAction says what opening an item did
type OpenAction string

const (
	OpenNavigated  OpenAction = "navigated"
	OpenLaunched   OpenAction = "launched"
	OpenHandled    OpenAction = "handled"
	OpenProperties OpenAction = "properties"
)

// OpenResult reports the outcome of Open
type OpenResult struct {
	Action     OpenAction          `json:"action"`
	Path       string              `json:"path"`
	AppID      string              `json:"app_id,omitempty"`
	Properties *listing.Properties `json:"properties,omitempty"`
}

// Open activates an item the way a double-click does. Recycled items show
// their properties, shell items are handled by their extension, folders
// are navigated into and files launch their associated application.
func (w *Window) Open(ctx context.Context, path string) (*OpenResult, error) {
	p := paths.ToInternal(path)

	if w.ws.recycle.IsRecycledItemPath(p) {
		props, err := w.ws.lister.Properties(ctx, []string{p})
		if err != nil {
			return nil, err
		}
		return &OpenResult{Action: OpenProperties, Path: p, Properties: props}, nil
	}

	handled, err := w.ws.shell.Open(ctx, p, w.nav)
	if err != nil {
		return nil, err
	}
	if handled {
		return &OpenResult{Action: OpenHandled, Path: p}, nil
	}

	st, err := w.ws.shell.Stat(ctx, p)
	if err != nil {
		return nil, err
	}
	if st.IsDir {
		if err := w.nav.NavigateTo(ctx, p); err != nil {
			return nil, err
		}
		return &OpenResult{Action: OpenNavigated, Path: w.CurrentPath()}, nil
	}

	assoc, err := w.ws.lister.FileType(ctx, p)
	if err != nil {
		return nil, err
	}
	if assoc.AppID == "" {
		name := paths.Base(p)
		w.ws.dialogs.Alert("Open", fmt.Sprintf("Cannot open file: %s (No association)", name))
		return nil, fmt.Errorf("%s: %w", name, ErrNoAssociation)
	}
	if err := w.ws.launcher.Launch(ctx, assoc.AppID); err != nil {
		return nil, err
	}
	return &OpenResult{Action: OpenLaunched, Path: p, AppID: assoc.AppID}, nil
}
