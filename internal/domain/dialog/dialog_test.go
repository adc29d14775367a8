package dialog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderConfirm(t *testing.T) {
	r := NewRecorder(true)
	assert.True(t, r.Confirm("Confirm File Delete", "Sure?"))

	r.SetAnswer(false)
	assert.False(t, r.Confirm("Confirm File Delete", "Really?"))

	msgs := r.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, KindConfirm, msgs[0].Kind)
	require.NotNil(t, msgs[0].Answer)
	assert.True(t, *msgs[0].Answer)
	assert.False(t, *msgs[1].Answer)
}

func TestRecorderAlertAndDrain(t *testing.T) {
	r := NewRecorder(true)
	_, ok := r.Last()
	assert.False(t, ok)

	r.Alert("Undo", "Could not undo operation: boom")
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, KindAlert, last.Kind)
	assert.Equal(t, "Undo", last.Title)
	assert.Nil(t, last.Answer)

	assert.Len(t, r.Drain(), 1)
	assert.Empty(t, r.Messages())
}

func TestRecorderBounded(t *testing.T) {
	r := NewRecorder(true)
	for i := 0; i < DefaultHistory+5; i++ {
		r.Alert("t", fmt.Sprint(i))
	}

	msgs := r.Messages()
	require.Len(t, msgs, DefaultHistory)
	assert.Equal(t, "5", msgs[0].Text)
}

func TestFileSystemError(t *testing.T) {
	err := errors.New("permission denied")

	tests := []struct {
		op        Operation
		item      string
		wantTitle string
		wantText  string
	}{
		{OpDelete, "items", "Error Deleting", "Could not delete items: permission denied"},
		{OpRename, "a.txt", "Error Renaming", "Cannot rename a.txt: permission denied"},
		{OpCreate, "folder", "Error Creating", "Could not create folder: permission denied"},
		{OpNavigate, `C:\x`, "Error Navigating", `Cannot navigate to C:\x: permission denied`},
		{OpRead, "a.txt", "Error Reading", "Cannot read a.txt: permission denied"},
		{OpMove, "items", "Error Moving", "Could not move items: permission denied"},
		{OpCopy, "items", "Error Copying", "Could not copy items: permission denied"},
		{Operation("frobnicate"), "", "Error Frobnicate", "Operation failed: permission denied"},
	}
	for _, tt := range tests {
		title, text := FileSystemError(tt.op, err, tt.item)
		assert.Equal(t, tt.wantTitle, title, tt.op)
		assert.Equal(t, tt.wantText, text, tt.op)
	}
}

func TestShowError(t *testing.T) {
	r := NewRecorder(true)
	ShowError(r, OpDelete, errors.New("boom"), "items")
	ShowError(nil, OpDelete, errors.New("boom"), "items")

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "Error Deleting", last.Title)
}
