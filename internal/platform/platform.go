package platform

import (
	"os/exec"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/go-ps"
	"github.com/pkg/errors"
)

var ErrOpenURL = errors.New("failed to open url")

type Platform interface {
	// LauncherProfilesPath is the Minecraft launcher's profile list.
	LauncherProfilesPath() (string, error)
	// StartMinecraftCommand launches the Minecraft launcher.
	StartMinecraftCommand() []string
	IsMinecraftRunning() (bool, error)
	OpenURL(url string) error
	Run(command []string) error
}

type system struct {
	launcherProfiles string
	startCommand     []string
	openURL          func(url string) error
	binaryNames      []string
}

func (s system) LauncherProfilesPath() (string, error) {
	expanded, errExpand := homedir.Expand(s.launcherProfiles)
	if errExpand != nil {
		return "", errors.Wrap(errExpand, "Failed to expand launcher profiles path")
	}

	return expanded, nil
}

func (s system) StartMinecraftCommand() []string {
	return append([]string(nil), s.startCommand...)
}

func (s system) IsMinecraftRunning() (bool, error) {
	processes, errPs := ps.Processes()
	if errPs != nil {
		return false, errors.Wrap(errPs, "Failed to read processes")
	}

	for _, process := range processes {
		for _, name := range s.binaryNames {
			if matchesExecutable(process.Executable(), name) {
				return true, nil
			}
		}
	}

	return false, nil
}

// matchesExecutable compares a process name against a binary name. Linux
// reports process names truncated to 15 bytes.
func matchesExecutable(executable string, name string) bool {
	const procNameLimit = 15

	if strings.EqualFold(executable, name) {
		return true
	}

	return len(executable) == procNameLimit && len(name) > procNameLimit &&
		strings.EqualFold(executable, name[:procNameLimit])
}

func (s system) OpenURL(url string) error {
	if errOpen := s.openURL(url); errOpen != nil {
		return errors.Wrapf(ErrOpenURL, "%s: %v", url, errOpen)
	}

	return nil
}

// Run starts command without waiting for it to exit.
func (s system) Run(command []string) error {
	if len(command) == 0 {
		return errors.New("Empty command")
	}

	if errRun := exec.Command(command[0], command[1:]...).Start(); errRun != nil { //nolint:gosec
		return errors.Wrap(errRun, "Failed to start process")
	}

	return nil
}
