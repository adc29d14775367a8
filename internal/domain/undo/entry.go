package undo

// Kind tags an undo entry
type Kind string

const (
	KindRename Kind = "rename"
	KindMove   Kind = "move"
	KindCopy   Kind = "copy"
	KindDelete Kind = "delete"
	KindCreate Kind = "create"
)

// Entry is one reversible operation. The concrete types below carry what
// is needed to invert them; the inversion itself lives with the file
// operations.
type Entry interface {
	Kind() Kind
}

// RenameEntry records a rename from From to To
type RenameEntry struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MoveEntry records a cut-paste; From[i] was moved to To[i]
type MoveEntry struct {
	From []string `json:"from"`
	To   []string `json:"to"`
}

// CopyEntry records the paths a copy-paste created
type CopyEntry struct {
	Created []string `json:"created"`
}

// DeleteEntry records the recycle ids produced by a soft delete
type DeleteEntry struct {
	RecycledIDs []string `json:"recycled_ids"`
}

// CreateEntry records a newly created file or folder
type CreateEntry struct {
	Path string `json:"path"`
}

func (RenameEntry) Kind() Kind { return KindRename }
func (MoveEntry) Kind() Kind   { return KindMove }
func (CopyEntry) Kind() Kind   { return KindCopy }
func (DeleteEntry) Kind() Kind { return KindDelete }
func (CreateEntry) Kind() Kind { return KindCreate }

// Label derives the menu text for undoing entry
func Label(entry Entry) string {
	if entry == nil {
		return "Undo"
	}
	switch entry.Kind() {
	case KindMove:
		return "Undo Move"
	case KindCopy:
		return "Undo Copy"
	case KindDelete:
		return "Undo Delete"
	case KindRename:
		return "Undo Rename"
	case KindCreate:
		return "Undo Create"
	default:
		return "Undo"
	}
}
