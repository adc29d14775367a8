// Package vfs provides the virtual filesystem the file manager runs on.
//
// MountFS stitches go-billy filesystems into a single tree: an in-memory
// root serves "/" and drive letters such as "/C:" or "/A:" are mounted on
// top of it. Mount points appear in their parent's listing. Renames that
// would cross from one backend to another fail with ErrCrossDevice so the
// caller can fall back to CopyRecursive plus Remove (see MoveRecursive).
//
// # Usage
//
//	fsys := vfs.New(nil)
//	_ = fsys.Mount("/C:", memfs.New())
//	_ = fsys.Mkdir(ctx, "/C:/Windows", false)
//	names, _ := fsys.ReadDir(ctx, "/") // [C:]
package vfs
