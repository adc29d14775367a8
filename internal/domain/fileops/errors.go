package fileops

import (
	"errors"
	"fmt"
)

var (
	// ErrNameCollision matches every CollisionError
	ErrNameCollision = errors.New("name collision")

	// ErrInvalidName rejects empty names and names containing separators
	ErrInvalidName = errors.New("invalid file name")

	// ErrProtected refuses operations on drive roots, the recycle bin and
	// shell-extension items
	ErrProtected = errors.New("item is protected")

	// ErrPasteIntoSelf refuses pasting a folder into itself or a subfolder
	ErrPasteIntoSelf = errors.New("the destination folder is a subfolder of the source folder")
)

// CollisionError reports that an undo cannot proceed because the original
// location is occupied
type CollisionError struct {
	Name string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("The destination already contains an item named '%s'.", e.Name)
}

// Is lets errors.Is(err, ErrNameCollision) match
func (e *CollisionError) Is(target error) bool {
	return target == ErrNameCollision
}
