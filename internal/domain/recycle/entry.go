package recycle

import "time"

// Entry describes one soft-deleted item. The payload lives at
// <root>/<ID> until it is restored or the bin is emptied.
type Entry struct {
	ID           string    `json:"id"`
	OriginalPath string    `json:"originalPath"`
	OriginalName string    `json:"originalName"`
	DeletionDate time.Time `json:"deletionDate"`
}

// Metadata is the on-disk sidecar, keyed by id
type Metadata map[string]Entry
