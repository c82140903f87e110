package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wurstmineberg/bitbar-server-status/internal/config"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer

	rootCmd := newRootCmd(Version{Version: "v1.2.3", Commit: "abc", Date: "2023-01-01", BuiltBy: "test"})
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "v1.2.3 (commit abc, built 2023-01-01 by test)\n", out.String())
}

func TestMustCreateLogger(t *testing.T) {
	paths := config.Paths{CacheRoot: filepath.Join(t.TempDir(), "cache")}

	logger := MustCreateLogger(config.Env{LogLevel: "info", DebugLogEnabled: true}, paths)
	logger.Info("hello")
	_ = logger.Sync()

	require.FileExists(t, paths.LogFile())

	require.Panics(t, func() {
		MustCreateLogger(config.Env{LogLevel: "loud"}, paths)
	})
}
