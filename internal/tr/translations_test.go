package tr_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wurstmineberg/bitbar-server-status/internal/tr"
)

func TestTranslator(t *testing.T) {
	english, errEn := tr.New("en-US")
	require.NoError(t, errEn)
	require.Equal(t, "Start Minecraft", english.Tr("menu_start_minecraft", "fallback", nil))
	require.Equal(t, "Version: 1.20.1", english.Tr("menu_version", "Version: {{.Version}}",
		map[string]any{"Version": "1.20.1"}))

	german, errDe := tr.New("de-DE")
	require.NoError(t, errDe)
	require.Equal(t, "Minecraft starten", german.Tr("menu_start_minecraft", "Start Minecraft", nil))
	require.Equal(t, "Ausblenden bis morgen", german.Tr("menu_defer_until", "Defer Until {{.Spec}}",
		map[string]any{"Spec": "morgen"}))

	unknown, errUnknown := tr.New("not a locale")
	require.NoError(t, errUnknown)
	require.Equal(t, "Offline", unknown.Tr("menu_offline", "Offline", nil))
	require.Equal(t, "Missing", unknown.Tr("menu_missing", "Missing", nil))
}
