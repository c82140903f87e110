//go:build !darwin && !windows

package platform

import "github.com/pkg/browser"

func New() Platform {
	return system{
		launcherProfiles: "~/.minecraft/launcher_profiles.json",
		startCommand:     []string{"minecraft-launcher"},
		openURL:          browser.OpenURL,
		binaryNames:      []string{"minecraft-launcher"},
	}
}
