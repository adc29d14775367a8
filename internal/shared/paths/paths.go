package paths

import (
	"regexp"
	"strings"
)

// Well-known locations
const (
	// Root is the virtual "My Computer" directory that holds the drive roots
	Root = "/"

	// RootLabel is what the root displays as
	RootLabel = "My Computer"

	Separator = "/"
)

// Drive roots
const (
	FloppyDrive = "/A:"
	SystemDrive = "/C:"
	CDDrive     = "/E:"
)

// Reserved system locations on the system drive
const (
	// RecycleBin holds soft-deleted payloads keyed by recycle id
	RecycleBin = "/C:/Recycled"

	// RecycleMetadata is the sidecar file name inside RecycleBin
	RecycleMetadata = ".metadata.json"

	// ControlPanel is the virtual settings folder served by a shell extension
	ControlPanel = "/Control Panel"
)

var driveSegment = regexp.MustCompile(`^[A-Za-z]:$`)

// LabelProvider reports labels for removable media so drive roots can be
// rendered like "3½ Floppy (A:)" or "Removable Disk (F:)".
type LabelProvider interface {
	FloppyLabel() string
	CDLabel() string
	IsRemovableMounted(letter byte) bool
}

// Join appends name to base without doubling separators at the root.
func Join(base, name string) string {
	name = strings.TrimPrefix(name, Separator)
	if base == Root {
		return Root + name
	}
	if strings.HasSuffix(base, Separator) {
		return base + name
	}
	return base + Separator + name
}

// Parent returns the containing directory. The root is its own parent.
func Parent(path string) string {
	if path == Root {
		return Root
	}
	parts := segments(path)
	if len(parts) <= 1 {
		return Root
	}
	return Separator + strings.Join(parts[:len(parts)-1], Separator)
}

// Name returns the last path segment, or rootName for the root.
func Name(path, rootName string) string {
	if path == Root || path == RootLabel {
		return rootName
	}
	parts := segments(path)
	if len(parts) == 0 {
		return path
	}
	return parts[len(parts)-1]
}

// Base returns the last path segment, with the root label for "/".
func Base(path string) string {
	return Name(path, RootLabel)
}

// Normalize collapses repeated and trailing separators.
func Normalize(path string) string {
	if path == "" || path == Root {
		return Root
	}
	return Separator + strings.Join(segments(path), Separator)
}

// ToInternal converts user input (address bar, "My Computer", "C:\Windows")
// into the canonical internal form.
func ToInternal(path string) string {
	if path == "" || path == RootLabel {
		return Root
	}
	p := strings.ReplaceAll(path, `\`, Separator)
	if !strings.HasPrefix(p, Separator) {
		p = Separator + p
	}
	p = Normalize(p)
	parts := segments(p)
	if len(parts) > 0 && driveSegment.MatchString(parts[0]) {
		parts[0] = strings.ToUpper(parts[0])
		return Separator + strings.Join(parts, Separator)
	}
	return p
}

// FormatForDisplay renders a path the way the address bar shows it,
// e.g. "/c:/Windows" becomes `C:\Windows`.
func FormatForDisplay(path string) string {
	if path == Root || path == RootLabel {
		return RootLabel
	}
	p := strings.ReplaceAll(path, `\`, Separator)
	parts := segments(p)
	if len(parts) == 0 {
		return RootLabel
	}
	if driveSegment.MatchString(parts[0]) {
		drive := strings.ToUpper(parts[0])
		if len(parts) == 1 {
			return drive + `\`
		}
		return drive + `\` + strings.Join(parts[1:], `\`)
	}
	return strings.Join(parts, `\`)
}

// DisplayName resolves the human label for a path or bare segment.
// Drive segments consult labels; a nil provider yields the stock labels.
func DisplayName(path string, labels LabelProvider) string {
	if path == Root || path == RootLabel {
		return RootLabel
	}
	parts := segments(path)
	if len(parts) == 0 {
		return path
	}
	name := parts[len(parts)-1]
	letter, ok := DriveLetter(name)
	if !ok {
		return name
	}
	drive := string(letter) + ":"

	switch letter {
	case 'A':
		if labels != nil && labels.FloppyLabel() != "" {
			return labels.FloppyLabel() + " (" + drive + ")"
		}
		return "3½ Floppy (" + drive + ")"
	case 'E':
		if labels != nil && labels.CDLabel() != "" {
			return labels.CDLabel() + " (" + drive + ")"
		}
		return "CD-ROM (" + drive + ")"
	}
	if labels != nil && labels.IsRemovableMounted(letter) {
		return "Removable Disk (" + drive + ")"
	}
	return "(" + drive + ")"
}

// DriveLetter reports the upper-cased letter when segment looks like "C:".
func DriveLetter(segment string) (byte, bool) {
	if !driveSegment.MatchString(segment) {
		return 0, false
	}
	return strings.ToUpper(segment)[0], true
}

// DriveRoot returns the "/X:" prefix of path, or "" when path is not on a drive.
func DriveRoot(path string) string {
	parts := segments(path)
	if len(parts) == 0 || !driveSegment.MatchString(parts[0]) {
		return ""
	}
	return Separator + strings.ToUpper(parts[0])
}

// DriveRootFor builds "/X:" for a letter.
func DriveRootFor(letter byte) string {
	return Separator + strings.ToUpper(string(letter)) + ":"
}

// IsDriveRoot reports whether path is exactly a drive root like "/C:".
func IsDriveRoot(path string) bool {
	parts := segments(path)
	return len(parts) == 1 && driveSegment.MatchString(parts[0])
}

// IsRootItem reports whether path sits directly under the root.
func IsRootItem(path string) bool {
	return path != Root && Parent(Normalize(path)) == Root
}

// Within reports whether path equals dir or lies beneath it.
func Within(path, dir string) bool {
	if dir == Root {
		return true
	}
	return path == dir || strings.HasPrefix(path, dir+Separator)
}

// Depth returns the number of segments in path.
func Depth(path string) int {
	return len(segments(path))
}

func segments(path string) []string {
	raw := strings.Split(path, Separator)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
