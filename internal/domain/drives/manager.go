// Package drives manages removable media: the floppy drive A:, the CD-ROM
// drive E: and any number of removable disks on the remaining letters.
// Inserting media mounts a billy filesystem into the mount tree; ejecting
// unmounts it. Each media type publishes its own change event.
package drives

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/dialog"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

var (
	ErrDriveBusy       = errors.New("drive already has media")
	ErrNoMedia         = errors.New("no media in drive")
	ErrNoFreeLetter    = errors.New("no more drive letters available")
	ErrNotRemovable    = errors.New("not a removable drive")
	errNilBackend      = errors.New("nil media backend")
	extensionPattern   = regexp.MustCompile(`\.[^/.]+$`)
	defaultReservation = []byte{'A', 'B', 'C', 'E'}
)

// Kind classifies a drive
type Kind string

const (
	KindFloppy    Kind = "floppy"
	KindFixed     Kind = "fixed"
	KindCDROM     Kind = "cdrom"
	KindRemovable Kind = "removable"
)

// Mounter is the part of the mount tree drives needs
type Mounter interface {
	vfs.FS
	Mount(point string, backend billy.Filesystem, opts ...vfs.Option) error
	Unmount(point string) error
	Has(point string) bool
}

// Drive describes one drive letter as shown under My Computer
type Drive struct {
	Letter  string `json:"letter"`
	Root    string `json:"root"`
	Kind    Kind   `json:"kind"`
	Label   string `json:"label"`
	Display string `json:"display"`
	Mounted bool   `json:"mounted"`
}

// Prompt is a pending request for the user to insert media
type Prompt struct {
	Drive string    `json:"drive"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
	Time  time.Time `json:"time"`
}

// Manager tracks media labels and mounts. It implements
// paths.LabelProvider for display names.
type Manager struct {
	mu          sync.RWMutex
	fs          Mounter
	floppyLabel string
	cdLabel     string
	removable   map[byte]string
	reserved    []byte
	pending     *Prompt

	events  events.Publisher
	dialogs dialog.Dialogs
	ejected []func(ctx context.Context, root string)
	log     *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a drive manager over the mount tree. reserved lists
// letters never handed to removable disks (A, B, C and E when empty).
func NewManager(fsys Mounter, reserved []string, pub events.Publisher, log *logging.Logger) *Manager {
	if pub == nil {
		pub = events.Nop{}
	}
	m := &Manager{
		fs:        fsys,
		removable: make(map[byte]string),
		reserved:  defaultReservation,
		events:    pub,
		log:       log.Named("drives"),
	}
	if len(reserved) > 0 {
		m.reserved = nil
		for _, r := range reserved {
			if letter, ok := paths.DriveLetter(strings.TrimSpace(r) + ":"); ok {
				m.reserved = append(m.reserved, letter)
			}
		}
	}
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithDialogs shows insert-media prompts through d
func (m *Manager) WithDialogs(d dialog.Dialogs) *Manager {
	m.dialogs = d
	return m
}

// OnEject registers fn to run after media leaves a drive. It is called
// with the drive root once the backend is unmounted and the change event
// has been published.
func (m *Manager) OnEject(fn func(ctx context.Context, root string)) *Manager {
	m.mu.Lock()
	m.ejected = append(m.ejected, fn)
	m.mu.Unlock()
	return m
}

// FloppyLabel implements paths.LabelProvider
func (m *Manager) FloppyLabel() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.floppyLabel
}

// CDLabel implements paths.LabelProvider
func (m *Manager) CDLabel() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cdLabel
}

// IsRemovableMounted implements paths.LabelProvider
func (m *Manager) IsRemovableMounted(letter byte) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.removable[upper(letter)]
	return ok
}

// RemovableLabel returns the label of the disk mounted at letter
func (m *Manager) RemovableLabel(letter byte) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	label, ok := m.removable[upper(letter)]
	return label, ok
}

// InsertFloppy mounts backend at A: labelled with label
func (m *Manager) InsertFloppy(label string, backend billy.Filesystem) error {
	if backend == nil {
		return errNilBackend
	}

	m.mu.Lock()
	if m.fs.Has(paths.FloppyDrive) {
		m.mu.Unlock()
		return fmt.Errorf("%s: %w", paths.FloppyDrive, ErrDriveBusy)
	}
	if err := m.fs.Mount(paths.FloppyDrive, backend); err != nil {
		m.mu.Unlock()
		return err
	}
	m.floppyLabel = label
	m.clearPendingLocked(paths.FloppyDrive)
	m.mu.Unlock()

	m.changed(events.FloppyChanged, paths.FloppyDrive)
	m.log.Info("Floppy inserted", zap.String("label", label))
	return nil
}

// EjectFloppy unmounts A:. Ejecting an empty drive is a no-op.
func (m *Manager) EjectFloppy(ctx context.Context) error {
	m.mu.Lock()
	if !m.fs.Has(paths.FloppyDrive) {
		m.mu.Unlock()
		return nil
	}
	if err := m.fs.Unmount(paths.FloppyDrive); err != nil {
		m.mu.Unlock()
		return err
	}
	m.floppyLabel = ""
	m.mu.Unlock()

	m.changed(events.FloppyChanged, paths.FloppyDrive)
	m.notifyEjected(ctx, paths.FloppyDrive)
	return nil
}

// InsertCD mounts a disc image at E:. The label is the image file name
// without its extension and the disc is read-only.
func (m *Manager) InsertCD(imageName string, backend billy.Filesystem) error {
	if backend == nil {
		return errNilBackend
	}
	label := extensionPattern.ReplaceAllString(imageName, "")

	m.mu.Lock()
	if m.fs.Has(paths.CDDrive) {
		m.mu.Unlock()
		return fmt.Errorf("%s: %w", paths.CDDrive, ErrDriveBusy)
	}
	if err := m.fs.Mount(paths.CDDrive, ReadOnly(backend)); err != nil {
		m.mu.Unlock()
		return err
	}
	m.cdLabel = label
	m.clearPendingLocked(paths.CDDrive)
	m.mu.Unlock()

	m.changed(events.CDChanged, paths.CDDrive)
	m.log.Info("Disc inserted", zap.String("label", label))
	return nil
}

// EjectCD unmounts E:. Ejecting an empty drive is a no-op.
func (m *Manager) EjectCD(ctx context.Context) error {
	m.mu.Lock()
	if !m.fs.Has(paths.CDDrive) {
		m.mu.Unlock()
		return nil
	}
	if err := m.fs.Unmount(paths.CDDrive); err != nil {
		m.mu.Unlock()
		return err
	}
	m.cdLabel = ""
	m.mu.Unlock()

	m.changed(events.CDChanged, paths.CDDrive)
	m.notifyEjected(ctx, paths.CDDrive)
	return nil
}

// AvailableLetter returns the first letter free for a removable disk
func (m *Manager) AvailableLetter() (byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.availableLocked()
}

func (m *Manager) availableLocked() (byte, bool) {
	for letter := byte('A'); letter <= 'Z'; letter++ {
		if m.isReserved(letter) {
			continue
		}
		if _, used := m.removable[letter]; used {
			continue
		}
		if m.fs.Has(paths.DriveRootFor(letter)) {
			continue
		}
		return letter, true
	}
	return 0, false
}

// InsertRemovable mounts backend on the first free letter and returns it
func (m *Manager) InsertRemovable(ctx context.Context, label string, backend billy.Filesystem) (byte, error) {
	if backend == nil {
		return 0, errNilBackend
	}

	m.mu.Lock()
	letter, ok := m.availableLocked()
	if !ok {
		m.mu.Unlock()
		return 0, ErrNoFreeLetter
	}
	point := paths.DriveRootFor(letter)

	// the mount point also exists as a plain directory in the root tree
	if err := m.fs.Mkdir(ctx, point, true); err != nil {
		m.mu.Unlock()
		return 0, fmt.Errorf("create mount point %s: %w", point, err)
	}
	if err := m.fs.Mount(point, backend); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	m.removable[letter] = label
	m.clearPendingLocked(point)
	m.mu.Unlock()

	m.changed(events.RemovableDiskChanged, point)
	m.log.Info("Removable disk inserted",
		zap.String("drive", point),
		zap.String("label", label))
	return letter, nil
}

// EjectRemovable unmounts the removable disk at letter and removes its
// mount point directory
func (m *Manager) EjectRemovable(ctx context.Context, letter byte) error {
	letter = upper(letter)
	point := paths.DriveRootFor(letter)

	m.mu.Lock()
	if _, ok := m.removable[letter]; !ok {
		m.mu.Unlock()
		if m.isReserved(letter) {
			return fmt.Errorf("%s: %w", point, ErrNotRemovable)
		}
		return fmt.Errorf("%s: %w", point, ErrNoMedia)
	}
	if err := m.fs.Unmount(point); err != nil {
		m.mu.Unlock()
		return err
	}
	delete(m.removable, letter)
	m.mu.Unlock()

	if err := m.fs.Remove(ctx, point, false); err != nil && !vfs.IsNotExist(err) {
		m.log.Warn("Failed to remove mount point", zap.String("drive", point), zap.Error(err))
	}

	m.changed(events.RemovableDiskChanged, point)
	m.notifyEjected(ctx, point)
	return nil
}

// PromptMount asks the user to insert media into the drive at driveRoot.
// The prompt stays pending until media is inserted or it is dismissed.
func (m *Manager) PromptMount(driveRoot string) Prompt {
	letter, ok := paths.DriveLetter(strings.TrimPrefix(paths.DriveRoot(driveRoot), paths.Separator))
	if !ok {
		return Prompt{}
	}
	drive := string(letter) + `:\`

	prompt := Prompt{Drive: paths.DriveRootFor(letter), Time: time.Now()}
	switch prompt.Drive {
	case paths.FloppyDrive:
		prompt.Title = "3½ Floppy (A:)"
		prompt.Text = "Insert floppy disk into drive " + drive
	case paths.CDDrive:
		prompt.Title = "CD-ROM (E:)"
		prompt.Text = "Please insert a disc into drive " + drive
	default:
		prompt.Title = "Removable Disk (" + string(letter) + ":)"
		prompt.Text = "Please insert a disk into drive " + drive
	}

	m.mu.Lock()
	m.pending = &prompt
	m.mu.Unlock()

	if m.dialogs != nil {
		m.dialogs.Alert(prompt.Title, prompt.Text)
	}
	m.events.Publish(events.MountRequested, prompt.Drive)
	return prompt
}

// PendingPrompt returns the outstanding insert-media prompt, if any
func (m *Manager) PendingPrompt() (Prompt, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pending == nil {
		return Prompt{}, false
	}
	return *m.pending, true
}

// DismissPrompt drops the outstanding prompt
func (m *Manager) DismissPrompt() {
	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()
}

// Drives lists the drive letters shown under My Computer: the floppy and
// CD drives always, plus every mounted drive
func (m *Manager) Drives() []Drive {
	m.mu.RLock()
	defer m.mu.RUnlock()

	letters := map[byte]bool{'A': true, 'E': true}
	for l := byte('A'); l <= 'Z'; l++ {
		if m.fs.Has(paths.DriveRootFor(l)) {
			letters[l] = true
		}
	}

	out := make([]Drive, 0, len(letters))
	for l := range letters {
		root := paths.DriveRootFor(l)
		d := Drive{
			Letter:  string(l),
			Root:    root,
			Mounted: m.fs.Has(root),
			Display: paths.DisplayName(root, m.labelsLocked()),
		}
		switch l {
		case 'A':
			d.Kind, d.Label = KindFloppy, m.floppyLabel
		case 'E':
			d.Kind, d.Label = KindCDROM, m.cdLabel
		default:
			if label, ok := m.removable[l]; ok {
				d.Kind, d.Label = KindRemovable, label
			} else {
				d.Kind = KindFixed
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letter < out[j].Letter })
	return out
}

func (m *Manager) isReserved(letter byte) bool {
	for _, r := range m.reserved {
		if r == letter {
			return true
		}
	}
	return false
}

func (m *Manager) clearPendingLocked(point string) {
	if m.pending != nil && m.pending.Drive == point {
		m.pending = nil
	}
}

func (m *Manager) changed(eventType events.EventType, point string) {
	mounted := 0
	for _, d := range m.Drives() {
		if d.Mounted {
			mounted++
		}
	}
	m.metrics.SetMountedDrives(mounted)
	m.events.Publish(eventType, point)
}

func (m *Manager) notifyEjected(ctx context.Context, root string) {
	m.mu.RLock()
	hooks := append(([]func(context.Context, string))(nil), m.ejected...)
	m.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, root)
	}
}

// labelsLocked serves DisplayName while mu is already held
func (m *Manager) labelsLocked() paths.LabelProvider {
	return lockedLabels{m}
}

type lockedLabels struct{ m *Manager }

func (l lockedLabels) FloppyLabel() string { return l.m.floppyLabel }
func (l lockedLabels) CDLabel() string     { return l.m.cdLabel }
func (l lockedLabels) IsRemovableMounted(letter byte) bool {
	_, ok := l.m.removable[upper(letter)]
	return ok
}

func upper(letter byte) byte {
	if letter >= 'a' && letter <= 'z' {
		return letter - 'a' + 'A'
	}
	return letter
}
