package dialog

import (
	"fmt"
	"strings"
)

// Operation names the action that failed, for error dialog wording
type Operation string

const (
	OpDelete   Operation = "delete"
	OpRename   Operation = "rename"
	OpCreate   Operation = "create"
	OpNavigate Operation = "navigate"
	OpRead     Operation = "read"
	OpMove     Operation = "move"
	OpCopy     Operation = "copy"
	OpRestore  Operation = "restore"
)

var gerunds = map[Operation]string{
	OpDelete:   "Deleting",
	OpRename:   "Renaming",
	OpCreate:   "Creating",
	OpNavigate: "Navigating",
	OpRead:     "Reading",
	OpMove:     "Moving",
	OpCopy:     "Copying",
	OpRestore:  "Restoring",
}

// FileSystemError builds the title and text of the dialog shown when op
// fails on item
func FileSystemError(op Operation, err error, item string) (title, text string) {
	var base string
	switch op {
	case OpDelete:
		base = "Could not delete " + item
	case OpRename:
		base = "Cannot rename " + item
	case OpCreate:
		base = "Could not create " + item
	case OpNavigate:
		base = "Cannot navigate to " + item
	case OpRead:
		base = "Cannot read " + item
	case OpMove:
		base = "Could not move " + item
	case OpCopy:
		base = "Could not copy " + item
	case OpRestore:
		base = "Could not restore " + item
	default:
		base = "Operation failed"
	}

	gerund, ok := gerunds[op]
	if !ok && op != "" {
		gerund = strings.ToUpper(string(op[:1])) + string(op[1:])
	}

	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return "Error " + gerund, fmt.Sprintf("%s: %s", strings.TrimSpace(base), msg)
}

// ShowError reports a filesystem failure through d
func ShowError(d Dialogs, op Operation, err error, item string) {
	if d == nil {
		return
	}
	d.Alert(FileSystemError(op, err, item))
}
