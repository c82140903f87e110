//go:build darwin

package platform

import "github.com/pkg/browser"

func New() Platform {
	return system{
		launcherProfiles: "~/Library/Application Support/minecraft/launcher_profiles.json",
		startCommand:     []string{"/usr/bin/open", "-a", "Minecraft"},
		openURL:          browser.OpenURL,
		binaryNames:      []string{"launcher", "Minecraft"},
	}
}
