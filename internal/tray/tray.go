// Package tray shows the menu in the system tray as a long running process,
// for desktops without a BitBar compatible host.
package tray

import (
	"context"
	"time"

	"fyne.io/systray"
	"github.com/gen2brain/beeep"
	"github.com/wurstmineberg/bitbar-server-status/internal/asset"
	"github.com/wurstmineberg/bitbar-server-status/internal/menu"
	"github.com/wurstmineberg/bitbar-server-status/internal/platform"
	"github.com/wurstmineberg/bitbar-server-status/internal/plugin"
	"github.com/wurstmineberg/bitbar-server-status/internal/tr"
	"go.uber.org/zap"
)

const notifyTitle = "Wurstmineberg"

type Builder interface {
	Run(ctx context.Context, now time.Time) (menu.Menu, error)
}

type Tray struct {
	log        *zap.Logger
	builder    Builder
	platform   platform.Platform
	tr         *tr.Translator
	interval   time.Duration
	watched    []string
	refreshCh  chan struct{}
	lastErr    string
	notifyFunc func(title string, message string) error
}

// New creates a tray that rebuilds its menu every interval and whenever one of
// the watched files changes.
func New(logger *zap.Logger, builder Builder, plat platform.Platform, translator *tr.Translator,
	interval time.Duration, watched []string,
) *Tray {
	return &Tray{
		log:       logger.Named("tray"),
		builder:   builder,
		platform:  plat,
		tr:        translator,
		interval:  interval,
		watched:   watched,
		refreshCh: make(chan struct{}, 1),
		notifyFunc: func(title string, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Refresh schedules a rebuild of the menu.
func (t *Tray) Refresh() {
	select {
	case t.refreshCh <- struct{}{}:
	default:
	}
}

func (t *Tray) OnReady(ctx context.Context, cancel context.CancelFunc) func() {
	return func() {
		systray.SetTemplateIcon(asset.Icon(1), asset.Icon(1))
		systray.SetTooltip(notifyTitle)

		if errWatch := watchFiles(ctx, t.log, t.watched, t.Refresh); errWatch != nil {
			t.log.Warn("Config changes will not be picked up until the next refresh", zap.Error(errWatch))
		}

		go t.loop(ctx, cancel)
	}
}

func (t *Tray) OnExit() {
	t.log.Debug("Tray exited")
}

func (t *Tray) loop(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		itemsCtx, cancelItems := context.WithCancel(ctx)
		t.update(itemsCtx, cancel)

		select {
		case <-ctx.Done():
			cancelItems()
			systray.Quit()

			return
		case <-ticker.C:
		case <-t.refreshCh:
		}

		cancelItems()
	}
}

// build runs the menu builder, substituting the error menu on failure.
func (t *Tray) build(ctx context.Context) menu.Menu {
	items, errBuild := t.builder.Run(ctx, time.Now())
	if errBuild == nil {
		t.lastErr = ""

		return items
	}

	t.log.Error("Failed to build menu", zap.Error(errBuild))

	// Only notify once per distinct failure, the tray retries every interval.
	if message := errBuild.Error(); message != t.lastErr {
		t.lastErr = message

		if errNotify := t.notifyFunc(notifyTitle, message); errNotify != nil {
			t.log.Warn("Failed to send notification", zap.Error(errNotify))
		}
	}

	return plugin.ErrorMenu(errBuild, t.tr)
}

func (t *Tray) update(ctx context.Context, cancel context.CancelFunc) {
	header, entries := Layout(t.build(ctx))

	systray.ResetMenu()

	icon := header.TemplateImage
	if len(icon) == 0 {
		icon = asset.Icon(1)
	}

	systray.SetTemplateIcon(icon, icon)
	systray.SetTitle(header.Text)

	for _, entry := range entries {
		t.add(ctx, nil, entry)
	}

	if len(entries) > 0 {
		systray.AddSeparator()
	}

	refresh := systray.AddMenuItem(t.tr.Tr("tray_refresh", "Refresh", nil), "")
	quit := systray.AddMenuItem(t.tr.Tr("tray_quit", "Quit", nil), "")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-refresh.ClickedCh:
				t.Refresh()
			case <-quit.ClickedCh:
				t.log.Debug("User quit")
				cancel()

				return
			}
		}
	}()
}

func (t *Tray) add(ctx context.Context, parent *systray.MenuItem, entry Entry) {
	if entry.Separator {
		if parent == nil {
			systray.AddSeparator()
		}

		return
	}

	var item *systray.MenuItem
	if parent == nil {
		item = systray.AddMenuItem(entry.Title, entry.Title)
	} else {
		item = parent.AddSubMenuItem(entry.Title, entry.Title)
	}

	if len(entry.Icon) > 0 {
		item.SetIcon(entry.Icon)
	}

	if entry.Disabled {
		item.Disable()
	}

	for _, child := range entry.Children {
		t.add(ctx, item, child)
	}

	if !entry.Clickable() {
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-item.ClickedCh:
				t.activate(entry)
			}
		}
	}()
}

func (t *Tray) activate(entry Entry) {
	if entry.Href != "" {
		if errOpen := t.platform.OpenURL(entry.Href); errOpen != nil {
			t.log.Error("Failed to open browser", zap.String("url", entry.Href), zap.Error(errOpen))
		}

		return
	}

	if errRun := t.platform.Run(entry.Command); errRun != nil {
		t.log.Error("Failed to run menu command", zap.Strings("command", entry.Command), zap.Error(errRun))

		return
	}

	t.Refresh()
}
