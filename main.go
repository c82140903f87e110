package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	// Build info embedded by goreleaser.
	version = "master" //nolint:gochecknoglobals
	commit  = "latest" //nolint:gochecknoglobals
	date    = "n/a"    //nolint:gochecknoglobals
	builtBy = "src"    //nolint:gochecknoglobals
)

type Version struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

func (v Version) String() string {
	return fmt.Sprintf("%s (commit %s, built %s by %s)", v.Version, v.Commit, v.Date, v.BuiltBy)
}

func run() int {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	versionInfo := Version{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}

	if errExecute := newRootCmd(versionInfo).ExecuteContext(rootCtx); errExecute != nil {
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
