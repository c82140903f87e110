//go:build windows

package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/browser"
)

func New() Platform {
	return system{
		launcherProfiles: filepath.Join(os.Getenv("APPDATA"), ".minecraft", "launcher_profiles.json"),
		startCommand:     []string{"explorer.exe", "shell:AppsFolder\\Microsoft.4297127D64EC6_8wekyb3d8bbwe!Minecraft"},
		openURL:          browser.OpenURL,
		binaryNames:      []string{"MinecraftLauncher.exe", "Minecraft.exe"},
	}
}
