// Package menu renders menus in the text format BitBar and SwiftBar plugins
// print to stdout. Lines up to the first separator are shown in the menu bar,
// everything after it in the dropdown.
package menu

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// MaxCommandParts is the most a BitBar command can hold, including the
// executable.
const MaxCommandParts = 6

var ErrCommandLength = errors.New("command must have 1 to 6 parts including the executable")

// BitBar has no escaping for item text: a line break ends the item and the
// first "|" starts the parameters.
var textReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", "\u00a6") //nolint:gochecknoglobals

type Item struct {
	Text          string
	Href          string
	Color         string
	Image         []byte
	TemplateImage []byte
	Command       []string
	Refresh       bool
	Disabled      bool
	// Alternate replaces this item while the option key is held.
	Alternate *Item

	separator bool
}

func Separator() Item {
	return Item{separator: true}
}

func Text(text string) Item {
	return Item{Text: text}
}

func (i Item) IsSeparator() bool {
	return i.separator
}

func (i Item) Validate() error {
	if i.Command != nil && (len(i.Command) == 0 || len(i.Command) > MaxCommandParts) {
		return errors.Wrapf(ErrCommandLength, "got %d", len(i.Command))
	}

	if i.Alternate != nil {
		return i.Alternate.Validate()
	}

	return nil
}

type Menu []Item

// Render writes the menu. An empty menu writes nothing, which hides the
// plugin from the menu bar.
func (m Menu) Render(w io.Writer) error {
	out := bufio.NewWriter(w)

	for _, item := range m {
		if errValidate := item.Validate(); errValidate != nil {
			return errValidate
		}

		if item.separator {
			if _, errWrite := out.WriteString("---\n"); errWrite != nil {
				return errors.Wrap(errWrite, "Failed to write menu")
			}

			continue
		}

		if _, errWrite := out.WriteString(item.line(false)); errWrite != nil {
			return errors.Wrap(errWrite, "Failed to write menu")
		}

		if item.Alternate != nil {
			if _, errWrite := out.WriteString(item.Alternate.line(true)); errWrite != nil {
				return errors.Wrap(errWrite, "Failed to write menu")
			}
		}
	}

	return errors.Wrap(out.Flush(), "Failed to flush menu")
}

func (i Item) line(alternate bool) string {
	var params []string

	add := func(key string, value string) {
		params = append(params, key+"="+quote(value))
	}

	if i.Href != "" {
		add("href", i.Href)
	}

	if i.Color != "" {
		add("color", i.Color)
	}

	if len(i.Image) > 0 {
		add("image", base64.StdEncoding.EncodeToString(i.Image))
	}

	if len(i.TemplateImage) > 0 {
		add("templateImage", base64.StdEncoding.EncodeToString(i.TemplateImage))
	}

	if len(i.Command) > 0 {
		add("bash", i.Command[0])

		for idx, param := range i.Command[1:] {
			add(fmt.Sprintf("param%d", idx+1), param)
		}

		add("terminal", "false")
	}

	if i.Refresh {
		add("refresh", "true")
	}

	if i.Disabled {
		add("disabled", "true")
	}

	if alternate {
		add("alternate", "true")
	}

	text := textReplacer.Replace(i.Text)
	if len(params) == 0 {
		return text + "\n"
	}

	return text + " | " + strings.Join(params, " ") + "\n"
}

func quote(value string) string {
	if !strings.ContainsAny(value, " \t\"'|") {
		return value
	}

	return `"` + strings.ReplaceAll(strings.ReplaceAll(value, `\`, `\\`), `"`, `\"`) + `"`
}
