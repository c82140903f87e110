package config

import (
	"os"
	"path/filepath"

	"github.com/kirsle/configdir"
	"github.com/mitchellh/go-homedir"
)

const (
	pluginDirName  = "bitbar"
	pluginFileStem = "wurstmineberg"
)

// Paths holds the root directories every file of the plugin lives under.
type Paths struct {
	ConfigRoot string
	DataRoot   string
	CacheRoot  string
	// NativeConfigRoot is the platform's own config directory, e.g.
	// ~/Library/Application Support on macOS. Config files found there are
	// used when ConfigRoot has none.
	NativeConfigRoot string
}

// DefaultPaths resolves the XDG base directories on every platform, so the
// files stay where BitBar plugins have always kept them, including on macOS.
func DefaultPaths() Paths {
	return Paths{
		ConfigRoot:       xdgRoot("XDG_CONFIG_HOME", "~/.config"),
		DataRoot:         xdgRoot("XDG_DATA_HOME", "~/.local/share"),
		CacheRoot:        xdgRoot("XDG_CACHE_HOME", "~/.cache"),
		NativeConfigRoot: configdir.LocalConfig(),
	}
}

// xdgRoot follows the base directory spec: relative values are ignored.
func xdgRoot(envKey string, fallback string) string {
	if value := os.Getenv(envKey); value != "" && filepath.IsAbs(value) {
		return value
	}

	expanded, errExpand := homedir.Expand(fallback)
	if errExpand != nil {
		return filepath.Join(os.TempDir(), pluginFileStem)
	}

	return filepath.FromSlash(expanded)
}

func (p Paths) ConfigDir() string {
	return filepath.Join(p.ConfigRoot, pluginDirName, "plugins")
}

// ConfigFiles lists the candidate config files in order of preference.
func (p Paths) ConfigFiles() []string {
	files := configFiles(p.ConfigRoot)

	if p.NativeConfigRoot != "" && filepath.Clean(p.NativeConfigRoot) != filepath.Clean(p.ConfigRoot) {
		files = append(files, configFiles(p.NativeConfigRoot)...)
	}

	return files
}

func configFiles(root string) []string {
	dir := filepath.Join(root, pluginDirName, "plugins")

	return []string{
		filepath.Join(dir, pluginFileStem+".json"),
		filepath.Join(dir, pluginFileStem+".yaml"),
	}
}

func (p Paths) DataFile() string {
	return filepath.Join(p.DataRoot, pluginDirName, "plugin-cache", pluginFileStem+".json")
}

func (p Paths) CacheDir() string {
	return filepath.Join(p.CacheRoot, pluginDirName, "plugin", pluginFileStem)
}

func (p Paths) AvatarCacheFile() string {
	return filepath.Join(p.CacheDir(), "avatars.json")
}

func (p Paths) LogFile() string {
	return filepath.Join(p.CacheDir(), pluginFileStem+".log")
}
