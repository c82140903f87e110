package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/internal/model"
	"github.com/wurstmineberg/bitbar-server-status/pkg/util"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidVersionLink = errors.New(`versionLink must be a boolean or the string "alt"`)
	ErrInvalidZoom        = errors.New("zoom must be a positive integer")
)

// VersionLink controls whether the world version entry links to the wiki.
type VersionLink int

const (
	VersionLinkEnabled VersionLink = iota
	VersionLinkAlternate
	VersionLinkDisabled
)

func (v *VersionLink) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return ErrInvalidVersionLink
	}

	switch value.ShortTag() {
	case "!!str":
		if value.Value == "alt" {
			*v = VersionLinkAlternate

			return nil
		}

		return errors.Wrapf(ErrInvalidVersionLink, "Got %q", value.Value)
	case "!!bool":
	default:
		return errors.Wrapf(ErrInvalidVersionLink, "Got %q", value.Value)
	}

	var enabled bool
	if errDecode := value.Decode(&enabled); errDecode != nil {
		return errors.Wrapf(ErrInvalidVersionLink, "Got %q", value.Value)
	}

	if enabled {
		*v = VersionLinkEnabled
	} else {
		*v = VersionLinkDisabled
	}

	return nil
}

type Config struct {
	DeferSpecs               [][]string        `yaml:"deferSpecs"`
	IgnoredPlayers           []model.UID       `yaml:"ignoredPlayers"`
	ShowIfEmpty              bool              `yaml:"showIfEmpty"`
	ShowIfOffline            bool              `yaml:"showIfOffline"`
	SingleColor              bool              `yaml:"singleColor"`
	VersionLink              VersionLink       `yaml:"versionLink"`
	VersionMatch             map[string]string `yaml:"versionMatch"`
	Zoom                     uint8             `yaml:"zoom"`
	RecursiveAvatarFallbacks bool              `yaml:"recursiveAvatarFallbacks"`
}

func Default() Config {
	return Config{
		DeferSpecs:     [][]string{},
		IgnoredPlayers: []model.UID{},
		SingleColor:    true,
		VersionLink:    VersionLinkEnabled,
		VersionMatch:   map[string]string{},
		Zoom:           1,
	}
}

// LoadConfig reads the first config file that exists. Without any config
// file the defaults are used.
func LoadConfig(paths Paths) (Config, error) {
	for _, configPath := range paths.ConfigFiles() {
		if !util.Exists(configPath) {
			continue
		}

		configFile, errOpen := os.Open(configPath)
		if errOpen != nil {
			return Config{}, errors.Wrap(errOpen, "Failed to open config file")
		}

		config, errRead := ReadConfig(configFile)

		util.IgnoreClose(configFile)

		if errRead != nil {
			return Config{}, errors.Wrapf(errRead, "Failed to read config file %s", configPath)
		}

		return config, nil
	}

	return Default(), nil
}

// ReadConfig decodes a JSON or YAML config document on top of the defaults.
func ReadConfig(input io.Reader) (Config, error) {
	config := Default()

	if errDecode := yaml.NewDecoder(input).Decode(&config); errDecode != nil && !errors.Is(errDecode, io.EOF) {
		return Config{}, errors.Wrap(errDecode, "Failed to decode config")
	}

	if config.Zoom == 0 {
		return Config{}, ErrInvalidZoom
	}

	return config, nil
}
