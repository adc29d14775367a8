package listing

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// Icon ids for built-in items
const (
	IconComputer     = "computer"
	IconDrive        = "drive"
	IconFloppy       = "disketteDrive"
	IconCD           = "cdDrive"
	IconFolderClosed = "folderClosed"
	IconFolderOpen   = "folderOpen"
	IconRecycleEmpty = "recycleBinEmpty"
	IconRecycleFull  = "recycleBinFull"
	IconFile         = "file"
	IconFileSet      = "fileSet"
)

// Type names shown for folders and unknown files
const (
	TypeFolder     = "Folder"
	TypeFileFolder = "File Folder"
	TypeFile       = "File"
	TypeMultiple   = "Multiple Types"
)

// Association maps a file extension to a type name and icon
type Association struct {
	Name string
	Icon string

	// AppID is the application that opens the file, if any
	AppID string
}

var associations = map[string]Association{
	".txt":  {"Text Document", "textFile", "notepad"},
	".md":   {"Markdown Document", "textFile", "notepad"},
	".log":  {"Text Document", "textFile", "notepad"},
	".ini":  {"Configuration Settings", "settingsFile", "notepad"},
	".json": {"JSON File", "textFile", "notepad"},
	".htm":  {"HTML Document", "htmlFile", "internet-explorer"},
	".html": {"HTML Document", "htmlFile", "internet-explorer"},
	".css":  {"Cascading Style Sheet", "textFile", "notepad"},
	".js":   {"JavaScript File", "scriptFile", "notepad"},
	".bmp":  {"Bitmap Image", "imageFile", "image-viewer"},
	".gif":  {"GIF Image", "imageFile", "image-viewer"},
	".jpg":  {"JPEG Image", "imageFile", "image-viewer"},
	".jpeg": {"JPEG Image", "imageFile", "image-viewer"},
	".png":  {"PNG Image", "imageFile", "image-viewer"},
	".ico":  {"Icon", "imageFile", "image-viewer"},
	".wav":  {"Wave Sound", "audioFile", "media-player"},
	".mp3":  {"MP3 Audio", "audioFile", "media-player"},
	".mid":  {"MIDI Sequence", "audioFile", "media-player"},
	".mp4":  {"MPEG-4 Video", "videoFile", "media-player"},
	".avi":  {"Video Clip", "videoFile", "media-player"},
	".zip":  {"Compressed Folder", "zipFile", ""},
	".iso":  {"Disc Image File", "cdFile", ""},
	".exe":  {"Application", "application", ""},
	".bat":  {"MS-DOS Batch File", "application", ""},
	".pdf":  {"PDF Document", "pdfFile", "pdf-viewer"},
}

// mime families consulted when the extension is unknown
var mimeFamilies = []struct {
	prefix string
	assoc  Association
}{
	{"text/html", Association{"HTML Document", "htmlFile", "internet-explorer"}},
	{"text/", Association{"Text Document", "textFile", "notepad"}},
	{"image/", Association{"Image", "imageFile", "image-viewer"}},
	{"audio/", Association{"Sound", "audioFile", "media-player"}},
	{"video/", Association{"Video Clip", "videoFile", "media-player"}},
	{"application/zip", Association{"Compressed Folder", "zipFile", ""}},
	{"application/pdf", Association{"PDF Document", "pdfFile", "pdf-viewer"}},
	{"application/json", Association{"JSON File", "textFile", "notepad"}},
}

// Lookup returns the association for name by extension only
func Lookup(name string) (Association, bool) {
	a, ok := associations[strings.ToLower(ext(name))]
	return a, ok
}

// Detect resolves a file's association, sniffing content when the
// extension is not known. Content is optional.
func Detect(name string, content []byte) Association {
	if a, ok := Lookup(name); ok {
		return a
	}
	if len(content) > 0 {
		mime := mimetype.Detect(content)
		for m := mime; m != nil; m = m.Parent() {
			for _, f := range mimeFamilies {
				if strings.HasPrefix(m.String(), f.prefix) {
					return f.assoc
				}
			}
		}
	}
	return Association{Name: TypeFile, Icon: IconFile}
}

// FolderIcon picks the icon for a directory entry name
func FolderIcon(name string) string {
	letter, ok := paths.DriveLetter(name)
	switch {
	case !ok:
		return IconFolderClosed
	case letter == 'A':
		return IconFloppy
	case letter == 'E':
		return IconCD
	}
	return IconDrive
}

func ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i:]
}
