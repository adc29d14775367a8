// Package paths implements the path algebra of the file manager.
//
// Internal paths are absolute and forward-slash delimited. Drive roots look
// like "/A:" or "/C:" and the root "/" is the virtual "My Computer" folder
// that contains them. Paths are kept normalized: no empty segments and no
// trailing separator except for the root.
//
// # Layout
//
//	/                   (My Computer)
//	  ├── A:            (floppy, mounted on demand)
//	  ├── C:            (system drive)
//	  │   └── Recycled/ (recycle bin, .metadata.json sidecar)
//	  ├── E:            (CD-ROM, mounted on demand)
//	  └── Control Panel (virtual, served by a shell extension)
//
// # Usage
//
//	p := paths.Join(paths.SystemDrive, "Documents") // /C:/Documents
//	paths.FormatForDisplay(p)                        // C:\Documents
//	paths.Parent(p)                                  // /C:
//	paths.ToInternal(`c:\Documents\`)                // /C:/Documents
package paths
