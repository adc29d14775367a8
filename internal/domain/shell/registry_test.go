package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

type mockLauncher struct {
	mock.Mock
}

func (m *mockLauncher) Launch(ctx context.Context, appID string) error {
	return m.Called(ctx, appID).Error(0)
}

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) NavigateTo(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

// bare claims /Bare and implements no optional capability
type bare struct{}

func (bare) Name() string              { return "bare" }
func (bare) HandlesPath(p string) bool { return p == "/Bare" }
func (bare) Stat(context.Context, string) (*vfs.Stat, error) {
	return vfs.NewVirtualStat("Bare", true), nil
}
func (bare) ReadDir(_ context.Context, dir string) ([]string, bool) {
	if dir == paths.Root {
		return []string{"Bare", "C:"}, true
	}
	return nil, false
}

func setup(t *testing.T) (*Registry, *mockLauncher) {
	t.Helper()
	fsys := vfs.New(nil)
	require.NoError(t, fsys.Mount(paths.SystemDrive, memfs.New()))

	launcher := &mockLauncher{}
	cp, err := NewControlPanel(launcher)
	require.NoError(t, err)

	r := NewRegistry(fsys)
	require.NoError(t, r.Register(cp, ControlPanelCapabilities))
	return r, launcher
}

func TestRegisterVerifiesCapabilities(t *testing.T) {
	r := NewRegistry(vfs.New(nil))

	err := r.Register(bare{}, CapColumns)
	assert.ErrorIs(t, err, errCapability)
	assert.Empty(t, r.Extensions())

	require.NoError(t, r.Register(bare{}, 0))
	require.NoError(t, r.Register(bare{}, 0))
	assert.Len(t, r.Extensions(), 1)
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "none", Capability(0).String())
	assert.Equal(t, "icon|columns|open", ControlPanelCapabilities.String())
	assert.True(t, ControlPanelCapabilities.Has(CapIcon|CapOpen))
	assert.False(t, CapIcon.Has(CapOpen))
}

func TestReadDirUnion(t *testing.T) {
	ctx := context.Background()
	r, _ := setup(t)
	require.NoError(t, r.Register(bare{}, 0))

	names, err := r.ReadDir(ctx, paths.Root)
	require.NoError(t, err)
	assert.Equal(t, []string{"C:", "Control Panel", "Bare"}, names)

	names, err = r.ReadDir(ctx, paths.ControlPanel)
	require.NoError(t, err)
	assert.Equal(t, []string{"Display", "Desktop Themes", "Sound", "Theme to CSS", "Mouse"}, names)

	_, err = r.ReadDir(ctx, "/C:/missing")
	assert.True(t, vfs.IsNotExist(err))
}

func TestStatDispatch(t *testing.T) {
	ctx := context.Background()
	r, _ := setup(t)

	st, err := r.Stat(ctx, paths.ControlPanel)
	require.NoError(t, err)
	assert.True(t, st.IsDirectory())
	assert.True(t, st.Virtual)
	assert.False(t, st.MTime.IsZero())

	st, err = r.Stat(ctx, "/Control Panel/Mouse")
	require.NoError(t, err)
	assert.False(t, st.IsDirectory())

	_, err = r.Stat(ctx, "/Control Panel/Printers")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, vfs.IsNotExist(err))

	st, err = r.Stat(ctx, "/C:")
	require.NoError(t, err)
	assert.False(t, st.Virtual)

	_, err = r.Stat(ctx, "/nowhere")
	assert.True(t, vfs.IsNotExist(err))
}

func TestColumns(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, RootColumns, r.Columns(paths.Root))
	assert.Equal(t, DefaultColumns, r.Columns("/C:"))
	assert.Equal(t, []Column{{"Name", ColName}, {"Description", ColDescription}}, r.Columns(paths.ControlPanel))

	cols := r.Columns(paths.Root)
	cols[0].Label = "changed"
	assert.Equal(t, "Name", r.Columns(paths.Root)[0].Label)
}

func TestColumnValue(t *testing.T) {
	r, _ := setup(t)

	v, ok := r.ColumnValue("/Control Panel/Display", ColDescription, nil)
	require.True(t, ok)
	assert.Equal(t, "Customize your display settings.", v)

	v, ok = r.ColumnValue("/C:", ColType, nil)
	require.True(t, ok)
	assert.Equal(t, TypeDisk, v)

	v, ok = r.ColumnValue(paths.ControlPanel, ColType, nil)
	require.True(t, ok)
	assert.Equal(t, TypeSystemFolder, v)

	_, ok = r.ColumnValue("/C:/file.txt", ColType, nil)
	assert.False(t, ok)
	_, ok = r.ColumnValue("/Control Panel/Display", ColSize, nil)
	assert.False(t, ok)
}

func TestIcons(t *testing.T) {
	r, _ := setup(t)

	icon, ok := r.Icon(paths.ControlPanel)
	require.True(t, ok)
	assert.Equal(t, IconControlPanel, icon)

	icon, ok = r.Icon("/Control Panel/Mouse")
	require.True(t, ok)
	assert.Equal(t, "cursorexplorer", icon)

	_, ok = r.Icon("/C:/file.txt")
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	r, launcher := setup(t)
	nav := &mockNavigator{}

	nav.On("NavigateTo", ctx, paths.ControlPanel).Return(nil).Once()
	handled, err := r.Open(ctx, paths.ControlPanel, nav)
	require.NoError(t, err)
	assert.True(t, handled)

	launcher.On("Launch", ctx, "soundschemeexplorer").Return(nil).Once()
	handled, err = r.Open(ctx, "/Control Panel/Sound", nav)
	require.NoError(t, err)
	assert.True(t, handled)

	launcher.On("Launch", ctx, "cursorexplorer").Return(errors.New("no such app")).Once()
	_, err = r.Open(ctx, "/Control Panel/Mouse", nav)
	assert.Error(t, err)

	handled, err = r.Open(ctx, "/C:/readme.txt", nav)
	require.NoError(t, err)
	assert.False(t, handled)

	nav.AssertExpectations(t)
	launcher.AssertExpectations(t)
}

func TestParseApplets(t *testing.T) {
	_, err := ParseApplets([]byte("applets:\n  - name: X\n"))
	assert.Error(t, err)

	_, err = ParseApplets([]byte("applets:\n  - name: a/b\n    app_id: x\n"))
	assert.Error(t, err)

	_, err = ParseApplets([]byte("applets:\n  - name: A\n    app_id: x\n  - name: A\n    app_id: y\n"))
	assert.Error(t, err)

	applets, err := ParseApplets([]byte("applets:\n  - id: p\n    name: Printers\n    app_id: printers\n    icon: printer\n"))
	require.NoError(t, err)
	require.Len(t, applets, 1)

	cp := NewControlPanelWith(applets, nil)
	icon, ok := cp.Icon("/Control Panel/Printers")
	require.True(t, ok)
	assert.Equal(t, "printer", icon)

	_, err = cp.Open(context.Background(), "/Control Panel/Printers", nil)
	assert.Error(t, err, "no launcher configured")
}

func TestEventLauncher(t *testing.T) {
	bus := events.NewBus(4)
	defer bus.Close()
	ch := bus.Subscribe(events.AppLaunchRequested)

	l := EventLauncher{Events: bus}
	require.NoError(t, l.Launch(context.Background(), "displayproperties"))
	assert.Error(t, l.Launch(context.Background(), ""))

	ev := <-ch
	assert.Equal(t, "displayproperties", ev.Path)
}
