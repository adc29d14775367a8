// Package history tracks back/forward navigation and the most recently
// used folder list shown in the explorer's drop-down.
package history

import (
	"sync"
	"time"
)

// DefaultMRUSize caps the MRU list
const DefaultMRUSize = 10

// MRUEntry is one recently visited folder. IDs increase monotonically and
// are never reused, so the same path may appear under several IDs.
type MRUEntry struct {
	ID               int       `json:"id"`
	Path             string    `json:"path"`
	Timestamp        time.Time `json:"timestamp"`
	ManuallySelected bool      `json:"manually_selected"`
}

// History is a browser-style back/forward list plus an MRU list with a
// manual-selection pin. Safe for concurrent use.
type History struct {
	mu sync.Mutex

	entries []string
	index   int

	mru        []MRUEntry
	mruSize    int
	nextMRUID  int
	pinnedID   int // 0 when nothing is pinned
	pinnedPath string

	now func() time.Time
}

// New creates an empty history with the given MRU capacity
func New(mruSize int) *History {
	if mruSize <= 0 {
		mruSize = DefaultMRUSize
	}
	return &History{
		index:     -1,
		mruSize:   mruSize,
		nextMRUID: 1,
		now:       time.Now,
	}
}

// Push records a visit. Forward entries beyond the cursor are discarded
// first; a path equal to the current entry is not pushed twice.
func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	if h.index >= 0 && h.entries[h.index] == path {
		return
	}
	h.entries = append(h.entries, path)
	h.index = len(h.entries) - 1
}

// CanGoBack reports whether Back would move the cursor
func (h *History) CanGoBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.index > 0
}

// CanGoForward reports whether Forward would move the cursor
func (h *History) CanGoForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.index < len(h.entries)-1
}

// Back moves the cursor back and returns the path there
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index <= 0 {
		return "", false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the cursor forward and returns the path there
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

// Current returns the path under the cursor
func (h *History) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < 0 {
		return "", false
	}
	return h.entries[h.index], true
}

// Entries returns a copy of the back/forward list and the cursor position
func (h *History) Entries() ([]string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.entries...), h.index
}

// AddToMRU appends path to the MRU list. A non-manual add after a manual
// pin first truncates everything after the pinned entry and clears the
// pin. A manual add pins the new entry.
func (h *History) AddToMRU(path string, manual bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pinnedID != 0 && !manual {
		if i := h.indexOf(h.pinnedID); i >= 0 {
			h.mru = h.mru[:i+1]
		}
		h.pinnedID = 0
		h.pinnedPath = ""
	}

	entry := MRUEntry{
		ID:               h.nextMRUID,
		Path:             path,
		Timestamp:        h.now(),
		ManuallySelected: manual,
	}
	h.nextMRUID++
	h.mru = append(h.mru, entry)

	if len(h.mru) > h.mruSize {
		h.mru = append([]MRUEntry(nil), h.mru[len(h.mru)-h.mruSize:]...)
	}

	if manual {
		h.pinnedID = entry.ID
		h.pinnedPath = path
	}
}

// MarkManual flags the first MRU entry for path as manually selected.
// The pinned path changes but the pinned ID does not.
func (h *History) MarkManual(path string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.mru {
		if h.mru[i].Path == path {
			h.mru[i].ManuallySelected = true
			h.pinnedPath = path
			return true
		}
	}
	return false
}

// MarkManualByID pins the MRU entry with id
func (h *History) MarkManualByID(id int) (MRUEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(id)
	if i < 0 {
		return MRUEntry{}, false
	}
	h.mru[i].ManuallySelected = true
	h.pinnedID = id
	h.pinnedPath = h.mru[i].Path
	return h.mru[i], true
}

// MRU returns a copy of the MRU list, oldest first
func (h *History) MRU() []MRUEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]MRUEntry(nil), h.mru...)
}

// SelectedMRUID returns the pinned entry if it survives, otherwise an entry
// for the pinned path, otherwise the most recent entry
func (h *History) SelectedMRUID() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pinnedID != 0 && h.indexOf(h.pinnedID) >= 0 {
		return h.pinnedID, true
	}
	if h.pinnedPath != "" {
		if e, ok := h.latest(func(e MRUEntry) bool { return e.Path == h.pinnedPath }); ok {
			return e.ID, true
		}
	}
	if e, ok := h.latest(nil); ok {
		return e.ID, true
	}
	return 0, false
}

// SelectedMRUPath returns the pinned path if it is still listed, otherwise
// the path of the most recent entry
func (h *History) SelectedMRUPath() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pinnedPath != "" {
		for _, e := range h.mru {
			if e.Path == h.pinnedPath {
				return h.pinnedPath, true
			}
		}
	}
	if e, ok := h.latest(nil); ok {
		return e.Path, true
	}
	return "", false
}

func (h *History) indexOf(id int) int {
	for i, e := range h.mru {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (h *History) latest(match func(MRUEntry) bool) (MRUEntry, bool) {
	var (
		best  MRUEntry
		found bool
	)
	for _, e := range h.mru {
		if match != nil && !match(e) {
			continue
		}
		if !found || e.ID > best.ID {
			best, found = e, true
		}
	}
	return best, found
}
