package tray

import (
	"github.com/wurstmineberg/bitbar-server-status/internal/menu"
)

// Entry is a single dropdown row of the tray menu.
type Entry struct {
	Title     string
	Icon      []byte
	Href      string
	Command   []string
	Disabled  bool
	Separator bool
	Children  []Entry
}

// Clickable reports whether selecting the entry does anything.
func (e Entry) Clickable() bool {
	return !e.Disabled && (e.Href != "" || len(e.Command) > 0)
}

// Layout splits a BitBar menu into the menu bar header and the dropdown
// entries. The tray has no option key, so alternates become a submenu
// holding both variants.
func Layout(items menu.Menu) (menu.Item, []Entry) {
	var (
		header  menu.Item
		entries []Entry
	)

	inDropdown := false

	for _, item := range items {
		if !inDropdown {
			if item.IsSeparator() {
				inDropdown = true
			} else if header.Text == "" && len(header.TemplateImage) == 0 {
				header = item
			}

			continue
		}

		if item.IsSeparator() {
			if len(entries) > 0 && !entries[len(entries)-1].Separator {
				entries = append(entries, Entry{Separator: true})
			}

			continue
		}

		entry := toEntry(item)

		if item.Alternate != nil {
			entry = Entry{
				Title:    item.Text,
				Icon:     item.Image,
				Children: []Entry{toEntry(item), toEntry(*item.Alternate)},
			}
		}

		entries = append(entries, entry)
	}

	return header, entries
}

func toEntry(item menu.Item) Entry {
	return Entry{
		Title:    item.Text,
		Icon:     item.Image,
		Href:     item.Href,
		Command:  item.Command,
		Disabled: item.Disabled,
	}
}
