package plugin

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/internal/asset"
	"github.com/wurstmineberg/bitbar-server-status/internal/avatar"
	"github.com/wurstmineberg/bitbar-server-status/internal/config"
	"github.com/wurstmineberg/bitbar-server-status/internal/launcher"
	"github.com/wurstmineberg/bitbar-server-status/internal/menu"
	"github.com/wurstmineberg/bitbar-server-status/internal/model"
	"github.com/wurstmineberg/bitbar-server-status/internal/platform"
	"github.com/wurstmineberg/bitbar-server-status/internal/tr"
	"go.uber.org/zap"
)

const (
	MainWorld      = "wurstmineberg"
	wikiURLPrefix  = "https://minecraft.fandom.com/wiki/Java_Edition_"
	reportBugURL   = "https://github.com/wurstmineberg/bitbar-server-status/issues/new"
	alternateColor = "blue"
)

var ErrUnknownWorld = errors.New("unknown world name in versionMatch config")

// API is the part of the Wurstmineberg API the menu is built from.
type API interface {
	avatar.Source
	Worlds(ctx context.Context) (model.Worlds, error)
	People(ctx context.Context) (model.People, error)
}

type Plugin struct {
	log        *zap.Logger
	paths      config.Paths
	api        API
	platform   platform.Platform
	tr         *tr.Translator
	executable string
	normalizer avatar.Normalizer
}

// New creates the menu builder. executable is the path the defer entries
// call back into.
func New(logger *zap.Logger, paths config.Paths, client API, plat platform.Platform,
	translator *tr.Translator, executable string,
) *Plugin {
	return &Plugin{
		log:        logger.Named("plugin"),
		paths:      paths,
		api:        client,
		platform:   plat,
		tr:         translator,
		executable: executable,
		normalizer: avatar.NewNormalizer(),
	}
}

// Run builds the menu for the current server state. An empty menu means the
// plugin should be hidden.
func (p *Plugin) Run(ctx context.Context, now time.Time) (menu.Menu, error) {
	data, errData := config.LoadData(p.paths)
	if errData != nil {
		return nil, errData
	}

	if data.IsDeferred(now) {
		p.log.Debug("Menu deferred", zap.Time("until", *data.Deferred))

		return menu.Menu{}, nil
	}

	cfg, errConfig := config.LoadConfig(p.paths)
	if errConfig != nil {
		return nil, errConfig
	}

	worlds, errWorlds := p.api.Worlds(ctx)
	if errWorlds != nil {
		return nil, errors.Wrap(errWorlds, "Failed to fetch world status")
	}

	worlds.Exclude(cfg.IgnoredPlayers)

	if errMatch := p.matchVersions(cfg.VersionMatch, worlds); errMatch != nil {
		return nil, errMatch
	}

	mainStatus := worlds[MainWorld]
	total := worlds.TotalOnline()

	showAnyway := cfg.ShowIfOffline
	if mainStatus.Running {
		showAnyway = cfg.ShowIfEmpty
	}

	if total == 0 && !showAnyway {
		return menu.Menu{}, nil
	}

	people, errPeople := p.api.People(ctx)
	if errPeople != nil {
		return nil, errors.Wrap(errPeople, "Failed to fetch people")
	}

	var opts []avatar.ResolverOption
	if cfg.RecursiveAvatarFallbacks {
		opts = append(opts, avatar.WithRecursiveFallbacks())
	}

	cache, errCache := avatar.Load(p.log, p.paths.AvatarCacheFile(),
		avatar.NewResolver(p.log, p.api, p.normalizer, opts...), p.normalizer)
	if errCache != nil {
		return nil, errCache
	}

	items := menu.Menu{p.header(cfg, worlds, people, total)}

	for _, worldName := range worlds.Names() {
		worldItems, errWorld := p.world(ctx, cfg, cache, people, worldName, worlds[worldName])
		if errWorld != nil {
			return nil, errWorld
		}

		items = append(items, worldItems...)
	}

	items = append(items, menu.Separator(), p.startItem())

	deferItems, errDefer := p.deferItems(cfg.DeferSpecs)
	if errDefer != nil {
		return nil, errDefer
	}

	items = append(items, deferItems...)

	if errSave := cache.Save(); errSave != nil {
		return nil, errSave
	}

	return items, nil
}

func (p *Plugin) header(cfg config.Config, worlds model.Worlds, people model.People, total int) menu.Item {
	head := menu.Item{TemplateImage: asset.Icon(cfg.Zoom)}

	switch {
	case total > 0:
		head.Text = strconv.Itoa(total)
	case !worlds[MainWorld].Running:
		head.Text = "!"
	}

	if cfg.SingleColor && total == 1 {
		for _, status := range worlds {
			for _, uid := range status.List {
				if person, found := people.Get(uid); found && person.FavColor != nil {
					head.Color = person.FavColor.Hex()
				}
			}
		}
	}

	return head
}

func (p *Plugin) world(ctx context.Context, cfg config.Config, cache *avatar.Cache, people model.People,
	name string, status model.WorldStatus,
) (menu.Menu, error) {
	if !(name == MainWorld && !status.Running) && len(status.List) == 0 {
		return nil, nil
	}

	items := menu.Menu{menu.Separator(), menu.Text(name)}

	if status.Running {
		items = append(items, p.versionItem(cfg.VersionLink, status.Version))
	} else {
		items = append(items, menu.Text(p.tr.Tr("menu_offline", "Offline", nil)))
	}

	for _, uid := range status.List {
		person, _ := people.Get(uid)

		image, errImage := cache.GetOrFetch(ctx, uid)
		if errImage != nil {
			return nil, errImage
		}

		item := menu.Item{
			Text:  person.DisplayName(uid),
			Href:  model.ProfileURL(uid),
			Image: image,
		}

		if person.FavColor != nil {
			item.Color = person.FavColor.Hex()
		}

		if person.Discord != nil {
			altImage, errAlt := cache.GetOrFetch(ctx, uid)
			if errAlt != nil {
				return nil, errAlt
			}

			item.Alternate = &menu.Item{
				Text:  "@" + person.Discord.DisplayName(),
				Color: alternateColor,
				Href:  person.Discord.URL(),
				Image: altImage,
			}
		}

		items = append(items, item)
	}

	return items, nil
}

func (p *Plugin) versionItem(link config.VersionLink, version string) menu.Item {
	text := p.tr.Tr("menu_version", "Version: {{.Version}}", map[string]any{"Version": version})
	item := menu.Text(text)

	switch link {
	case config.VersionLinkEnabled:
		item.Href = wikiURLPrefix + version
	case config.VersionLinkAlternate:
		item.Alternate = &menu.Item{Text: text, Color: alternateColor, Href: wikiURLPrefix + version}
	case config.VersionLinkDisabled:
	}

	return item
}

func (p *Plugin) startItem() menu.Item {
	running, errRunning := p.platform.IsMinecraftRunning()
	if errRunning != nil {
		p.log.Warn("Failed to check for a running launcher", zap.Error(errRunning))
	}

	if running {
		return menu.Item{Text: p.tr.Tr("menu_minecraft_running", "Minecraft is running", nil), Disabled: true}
	}

	return menu.Item{
		Text:    p.tr.Tr("menu_start_minecraft", "Start Minecraft", nil),
		Command: p.platform.StartMinecraftCommand(),
	}
}

func (p *Plugin) deferItems(specs [][]string) (menu.Menu, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	items := menu.Menu{menu.Separator()}

	for _, spec := range specs {
		item := menu.Item{
			Text:    p.tr.Tr("menu_defer_until", "Defer Until {{.Spec}}", map[string]any{"Spec": strings.Join(spec, " ")}),
			Command: append([]string{p.executable, "defer"}, spec...),
			Refresh: true,
		}

		if errValidate := item.Validate(); errValidate != nil {
			return nil, errValidate
		}

		items = append(items, item)
	}

	return items, nil
}

// matchVersions points launcher profiles at the version their world runs.
func (p *Plugin) matchVersions(versionMatch map[string]string, worlds model.Worlds) error {
	if len(versionMatch) == 0 {
		return nil
	}

	profilesPath, errPath := p.platform.LauncherProfilesPath()
	if errPath != nil {
		return errPath
	}

	launcherData, errLoad := launcher.Load(profilesPath)
	if errLoad != nil {
		return errLoad
	}

	profileIDs := make([]string, 0, len(versionMatch))
	for profileID := range versionMatch {
		profileIDs = append(profileIDs, profileID)
	}

	sort.Strings(profileIDs)

	modified := false

	for _, profileID := range profileIDs {
		worldName := versionMatch[profileID]

		status, found := worlds[worldName]
		if !found {
			return errors.Wrapf(ErrUnknownWorld, "%q for profile %q", worldName, profileID)
		}

		changed, errSet := launcherData.SetVersion(profileID, status.Version)
		if errSet != nil {
			return errSet
		}

		modified = modified || changed
	}

	if !modified {
		return nil
	}

	p.log.Info("Updating launcher profiles", zap.String("path", profilesPath))

	return launcherData.Save(profilesPath)
}
