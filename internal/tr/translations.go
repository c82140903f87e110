package tr

import (
	"embed"

	"github.com/jeandeaual/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var localeFS embed.FS

type Translator struct {
	bundle *i18n.Bundle
	*i18n.Localizer
}

// New loads the embedded message files. Without explicit locales the user's
// system locales are used.
func New(userLocales ...string) (*Translator, error) {
	const defaultLocale = "en-GB"

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, langFile := range []string{"active.en.yaml", "active.de.yaml"} {
		_, errLoad := bundle.LoadMessageFileFS(localeFS, langFile)
		if errLoad != nil {
			return nil, errors.Wrap(errLoad, "Failed to load message bundle")
		}
	}

	if len(userLocales) == 0 {
		detected, errDetect := locale.GetLocales()
		if errDetect != nil || len(detected) == 0 {
			detected = []string{defaultLocale}
		}

		userLocales = detected
	}

	validLanguages := make([]string, len(userLocales))

	for index, userLocale := range userLocales {
		langTag, langTagErr := language.Parse(userLocale)
		if langTagErr != nil {
			// Fallback to our default
			if langTag, langTagErr = language.Parse(defaultLocale); langTagErr != nil {
				return nil, errors.Wrapf(langTagErr, "Failed to parse language tag: %s", userLocale)
			}
		}

		validLanguages[index] = langTag.String()
	}

	return &Translator{
		bundle:    bundle,
		Localizer: i18n.NewLocalizer(bundle, validLanguages...),
	}, nil
}

// Tr localizes a message, falling back to other when no translation exists.
func (t *Translator) Tr(id string, other string, data map[string]any) string {
	message, errLocalize := t.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: other},
		TemplateData:   data,
	})
	// A missing translation still yields the rendered default message.
	if errLocalize != nil && message == "" {
		return other
	}

	return message
}
