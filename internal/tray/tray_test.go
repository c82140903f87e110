package tray

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/wurstmineberg/bitbar-server-status/internal/menu"
	"github.com/wurstmineberg/bitbar-server-status/internal/tr"
	"go.uber.org/zap"
)

type fakeBuilder struct {
	err error
}

func (f *fakeBuilder) Run(_ context.Context, _ time.Time) (menu.Menu, error) {
	if f.err != nil {
		return nil, f.err
	}

	return menu.Menu{menu.Text("1"), menu.Separator(), menu.Text("wurstmineberg")}, nil
}

type fakePlatform struct {
	opened []string
	ran    [][]string
}

func (f *fakePlatform) LauncherProfilesPath() (string, error) { return "", nil }

func (f *fakePlatform) StartMinecraftCommand() []string { return nil }

func (f *fakePlatform) IsMinecraftRunning() (bool, error) { return false, nil }

func (f *fakePlatform) OpenURL(url string) error {
	f.opened = append(f.opened, url)

	return nil
}

func (f *fakePlatform) Run(command []string) error {
	f.ran = append(f.ran, command)

	return nil
}

func newTestTray(t *testing.T, builder Builder, plat *fakePlatform) (*Tray, *[]string) {
	t.Helper()

	translator, errTr := tr.New("en-GB")
	require.NoError(t, errTr)

	var notified []string

	tray := New(zap.NewNop(), builder, plat, translator, time.Minute, nil)
	tray.notifyFunc = func(_ string, message string) error {
		notified = append(notified, message)

		return nil
	}

	return tray, &notified
}

func TestBuild(t *testing.T) {
	builder := &fakeBuilder{}
	tray, notified := newTestTray(t, builder, &fakePlatform{})

	require.Equal(t, "wurstmineberg", tray.build(context.Background())[2].Text)

	builder.err = errors.New("server unreachable")
	for i := 0; i < 3; i++ {
		items := tray.build(context.Background())
		require.Equal(t, "server unreachable", items[2].Text)
	}

	require.Equal(t, []string{"server unreachable"}, *notified)

	builder.err = nil
	tray.build(context.Background())

	builder.err = errors.New("server unreachable")
	tray.build(context.Background())
	require.Len(t, *notified, 2)
}

func TestActivate(t *testing.T) {
	plat := &fakePlatform{}
	tray, _ := newTestTray(t, &fakeBuilder{}, plat)

	tray.activate(Entry{Href: "https://wurstmineberg.de/"})
	require.Equal(t, []string{"https://wurstmineberg.de/"}, plat.opened)
	require.Empty(t, tray.refreshCh)

	tray.activate(Entry{Command: []string{"wurstmineberg", "defer", "1h"}})
	require.Equal(t, [][]string{{"wurstmineberg", "defer", "1h"}}, plat.ran)
	require.Len(t, tray.refreshCh, 1)

	// Pending refreshes coalesce.
	tray.Refresh()
	require.Len(t, tray.refreshCh, 1)
}

func TestWatchFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plugins")
	watched := filepath.Join(dir, "wurstmineberg.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	require.NoError(t, watchFiles(ctx, zap.NewNop(), []string{watched}, func() {
		changed <- struct{}{}
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(watched, []byte("zoom: 2\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-changed:
		t.Fatal("unexpected second notification")
	case <-time.After(watchDebounce * 2):
	}
}
