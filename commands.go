package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fyne.io/systray"
	"github.com/gen2brain/beeep"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/wurstmineberg/bitbar-server-status/internal/api"
	"github.com/wurstmineberg/bitbar-server-status/internal/config"
	"github.com/wurstmineberg/bitbar-server-status/internal/platform"
	"github.com/wurstmineberg/bitbar-server-status/internal/plugin"
	"github.com/wurstmineberg/bitbar-server-status/internal/tr"
	"github.com/wurstmineberg/bitbar-server-status/internal/tray"
	"go.uber.org/zap"
)

const appName = "Wurstmineberg"

type application struct {
	version  Version
	env      config.Env
	paths    config.Paths
	log      *zap.Logger
	tr       *tr.Translator
	platform platform.Platform
}

func (a *application) setup(_ *cobra.Command, _ []string) error {
	env, errEnv := config.LoadEnv()
	if errEnv != nil {
		return errEnv
	}

	a.env = env
	a.paths = config.DefaultPaths()
	a.log = MustCreateLogger(env, a.paths)

	translator, errTr := tr.New()
	if errTr != nil {
		return errTr
	}

	a.tr = translator
	a.platform = platform.New()
	beeep.AppName = appName

	a.log.Debug("Starting",
		zap.String("version", a.version.Version),
		zap.String("commit", a.version.Commit),
		zap.String("date", a.version.Date),
		zap.String("via", a.version.BuiltBy))

	return nil
}

func (a *application) sync(_ *cobra.Command, _ []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *application) plugin() (*plugin.Plugin, error) {
	executable, errExecutable := os.Executable()
	if errExecutable != nil {
		return nil, errors.Wrap(errExecutable, "Failed to locate own executable")
	}

	client := api.New(a.log, a.env.APIURL, a.env.HTTPTimeout, "bitbar-server-status/"+a.version.Version)

	return plugin.New(a.log, a.paths, client, a.platform, a.tr, executable), nil
}

func (a *application) notifyError(err error) {
	if errNotify := beeep.Notify(appName, err.Error(), ""); errNotify != nil {
		a.log.Warn("Failed to send notification", zap.Error(errNotify))
	}
}

// runMenu prints the menu for the BitBar host. Failures are shown as a menu
// rather than an exit code since the host discards stderr.
func (a *application) runMenu(cmd *cobra.Command, _ []string) error {
	builder, errPlugin := a.plugin()
	if errPlugin != nil {
		return plugin.ErrorMenu(errPlugin, a.tr).Render(cmd.OutOrStdout())
	}

	items, errRun := builder.Run(cmd.Context(), time.Now())
	if errRun != nil {
		a.log.Error("Failed to build menu", zap.Error(errRun))

		items = plugin.ErrorMenu(errRun, a.tr)
	}

	return items.Render(cmd.OutOrStdout())
}

func (a *application) runDefer(_ *cobra.Command, args []string) error {
	until, errParse := config.ParseTimespec(args, time.Now())
	if errParse != nil {
		a.notifyError(errParse)

		return errParse
	}

	data, errLoad := config.LoadData(a.paths)
	if errLoad != nil {
		a.notifyError(errLoad)

		return errLoad
	}

	data.Deferred = &until

	if errSave := data.Save(a.paths); errSave != nil {
		a.notifyError(errSave)

		return errSave
	}

	a.log.Info("Menu deferred", zap.Time("until", until))

	return nil
}

func (a *application) runTray(cmd *cobra.Command, _ []string) error {
	builder, errPlugin := a.plugin()
	if errPlugin != nil {
		return errPlugin
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watched := append(a.paths.ConfigFiles(), a.paths.DataFile())
	trayApp := tray.New(a.log, builder, a.platform, a.tr, a.env.TrayInterval, watched)

	systray.Run(trayApp.OnReady(ctx, cancel), trayApp.OnExit)

	return nil
}

func newRootCmd(versionInfo Version) *cobra.Command {
	app := &application{version: versionInfo}

	rootCmd := &cobra.Command{
		Use:               "wurstmineberg",
		Short:             "Show who is online on the Wurstmineberg Minecraft server",
		Long:              "Prints a BitBar/SwiftBar menu listing the players online on the Wurstmineberg Minecraft server.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
		PersistentPostRun: app.sync,
		RunE:              app.runMenu,
	}

	deferCmd := &cobra.Command{
		Use:   "defer <timespec>...",
		Short: "Hide the menu until the given time",
		Example: `  wurstmineberg defer 2h
  wurstmineberg defer 18:30
  wurstmineberg defer tomorrow 09:00
  wurstmineberg defer friday`,
		RunE: app.runDefer,
	}

	trayCmd := &cobra.Command{
		Use:   "tray",
		Short: "Show the menu in the system tray",
		Args:  cobra.NoArgs,
		RunE:  app.runTray,
	}

	versionCmd := &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionInfo.String())
		},
	}

	rootCmd.AddCommand(deferCmd, trayCmd, versionCmd)

	return rootCmd
}
