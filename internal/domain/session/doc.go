// Package session saves and restores explorer window layouts.
//
// A session records every open window's folder and view mode plus which
// window had focus. Sessions are JSON files in a billy filesystem, so a
// host directory or an in-memory store can back them.
//
// Restoration Process:
//  1. Load the session from the cache or the store
//  2. Close all current windows
//  3. Reopen each saved window at its folder
//  4. Restore view modes and focus
//
// Example Usage:
//
//	manager := session.NewManager(workspace, osfs.New(dir), log)
//	sess, err := manager.Save(ctx, "Work", "")
//	err = manager.Restore(ctx, sess.ID)
package session
