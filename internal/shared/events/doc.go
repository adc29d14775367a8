// Package events carries change notifications from the file manager's
// managers to whoever renders them.
//
// Managers receive a Publisher at construction and announce changes such
// as ClipboardChanged or RecycleBinChanged. Events carry no state; a
// listener reacts by re-reading the manager it cares about.
//
//	bus := events.NewBus(0)
//	ch := bus.Subscribe(events.UndoChanged)
//	undo := undo.NewManager(bus, logger)
//	undo.Push(entry)
//	<-ch
package events
