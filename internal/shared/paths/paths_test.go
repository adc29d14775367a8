package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLabels struct {
	floppy    string
	cd        string
	removable map[byte]bool
}

func (s stubLabels) FloppyLabel() string                 { return s.floppy }
func (s stubLabels) CDLabel() string                     { return s.cd }
func (s stubLabels) IsRemovableMounted(letter byte) bool { return s.removable[letter] }

func TestJoin(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{"/", "C:", "/C:"},
		{"/C:", "Windows", "/C:/Windows"},
		{"/C:/", "Windows", "/C:/Windows"},
		{"/C:", "/Windows", "/C:/Windows"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Join(tt.base, tt.name))
	}
}

func TestParent(t *testing.T) {
	assert.Equal(t, "/", Parent("/"))
	assert.Equal(t, "/", Parent("/C:"))
	assert.Equal(t, "/C:", Parent("/C:/Windows"))
	assert.Equal(t, "/C:/Windows", Parent("/C:/Windows/System"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/", "/"},
		{"//C://Windows//", "/C:/Windows"},
		{"C:/Windows/", "/C:/Windows"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestToInternal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Computer", "/"},
		{"", "/"},
		{`C:\Windows`, "/C:/Windows"},
		{`c:\`, "/C:"},
		{"/C:/Windows/", "/C:/Windows"},
		{"Control Panel", "/Control Panel"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToInternal(tt.in), tt.in)
	}
}

func TestFormatForDisplay(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "My Computer"},
		{"My Computer", "My Computer"},
		{"/c:", `C:\`},
		{"/C:/Windows/System", `C:\Windows\System`},
		{"/Control Panel", "Control Panel"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatForDisplay(tt.in), tt.in)
	}
}

func TestDisplayName(t *testing.T) {
	labels := stubLabels{removable: map[byte]bool{'F': true}}

	assert.Equal(t, "My Computer", DisplayName("/", labels))
	assert.Equal(t, "3½ Floppy (A:)", DisplayName("/A:", labels))
	assert.Equal(t, "CD-ROM (E:)", DisplayName("/E:", labels))
	assert.Equal(t, "Removable Disk (F:)", DisplayName("/F:", labels))
	assert.Equal(t, "(C:)", DisplayName("/C:", labels))
	assert.Equal(t, "Windows", DisplayName("/C:/Windows", labels))

	labels.floppy = "BOOTDISK"
	labels.cd = "Encarta 95"
	assert.Equal(t, "BOOTDISK (A:)", DisplayName("/A:", labels))
	assert.Equal(t, "Encarta 95 (E:)", DisplayName("e:", labels))
}

func TestDisplayNameWithoutProvider(t *testing.T) {
	assert.Equal(t, "3½ Floppy (A:)", DisplayName("/A:", nil))
	assert.Equal(t, "(G:)", DisplayName("/G:", nil))
}

func TestDrives(t *testing.T) {
	assert.Equal(t, "/C:", DriveRoot("/c:/Windows"))
	assert.Equal(t, "", DriveRoot("/Control Panel"))
	assert.Equal(t, "/F:", DriveRootFor('f'))
	assert.True(t, IsDriveRoot("/A:"))
	assert.False(t, IsDriveRoot("/A:/docs"))

	letter, ok := DriveLetter("e:")
	assert.True(t, ok)
	assert.Equal(t, byte('E'), letter)

	_, ok = DriveLetter("AB:")
	assert.False(t, ok)
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("/C:/Recycled/abc", RecycleBin))
	assert.True(t, Within(RecycleBin, RecycleBin))
	assert.False(t, Within("/C:/RecycledX", RecycleBin))
	assert.True(t, IsRootItem("/C:"))
	assert.False(t, IsRootItem("/"))
	assert.False(t, IsRootItem("/C:/Windows"))
}
