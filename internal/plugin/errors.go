package plugin

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/internal/api"
	"github.com/wurstmineberg/bitbar-server-status/internal/asset"
	"github.com/wurstmineberg/bitbar-server-status/internal/menu"
	"github.com/wurstmineberg/bitbar-server-status/internal/tr"
)

// ErrorMenu is shown in place of the regular menu when building it failed.
func ErrorMenu(err error, translator *tr.Translator) menu.Menu {
	items := menu.Menu{
		{TemplateImage: asset.Icon(1)},
		menu.Separator(),
		menu.Text(err.Error()),
	}

	if url, found := api.ErrorURL(err); found {
		items = append(items, menu.Item{
			Text: translator.Tr("menu_error_url", "URL: {{.URL}}", map[string]any{"URL": url}),
			Href: url,
		})
	}

	items = append(items,
		menu.Text(fmt.Sprintf("debug: %T", errors.Cause(err))),
		menu.Item{
			Text:  translator.Tr("menu_report_bug", "Report a Bug", nil),
			Color: alternateColor,
			Href:  reportBugURL,
		},
	)

	return items
}
