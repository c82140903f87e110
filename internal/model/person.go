package model

import (
	"fmt"
	"sort"
)

const (
	PeopleURLRoot  = "https://wurstmineberg.de/people/"
	discordURLRoot = "https://discordapp.com/users/"
)

type Color struct {
	Red   uint8 `json:"red"`
	Green uint8 `json:"green"`
	Blue  uint8 `json:"blue"`
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

type DiscordData struct {
	Nick      *string   `json:"nick"`
	Snowflake Snowflake `json:"snowflake"`
	Username  string    `json:"username"`
}

// DisplayName prefers the server nickname over the account name. An empty
// nickname is still a nickname.
func (d DiscordData) DisplayName() string {
	if d.Nick != nil {
		return *d.Nick
	}

	return d.Username
}

func (d DiscordData) URL() string {
	return fmt.Sprintf("%s%s/", discordURLRoot, d.Snowflake)
}

type Person struct {
	Discord  *DiscordData `json:"discord"`
	FavColor *Color       `json:"favColor"`
	Name     *string      `json:"name"`
}

// DisplayName falls back to the id when the person has no name set.
func (p Person) DisplayName(uid UID) string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}

	return uid.String()
}

func ProfileURL(uid UID) string {
	return PeopleURLRoot + uid.String()
}

type People struct {
	People map[UID]Person `json:"people"`
}

// Get returns the zero Person for unknown ids.
func (p People) Get(uid UID) (Person, bool) {
	person, found := p.People[uid]

	return person, found
}

type WorldStatus struct {
	List    []UID  `json:"list"`
	Running bool   `json:"running"`
	Version string `json:"version"`
}

type Worlds map[string]WorldStatus

// Names returns the world names in lexical order.
func (w Worlds) Names() []string {
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (w Worlds) TotalOnline() int {
	total := 0
	for _, status := range w {
		total += len(status.List)
	}

	return total
}

// Exclude drops every ignored player from every world list.
func (w Worlds) Exclude(ignored []UID) {
	if len(ignored) == 0 {
		return
	}

	skip := make(map[UID]struct{}, len(ignored))
	for _, uid := range ignored {
		skip[uid] = struct{}{}
	}

	for name, status := range w {
		kept := status.List[:0]

		for _, uid := range status.List {
			if _, found := skip[uid]; !found {
				kept = append(kept, uid)
			}
		}

		status.List = kept
		w[name] = status
	}
}

// AvatarInfo describes where an avatar can be downloaded. Fallbacks may nest.
type AvatarInfo struct {
	URL       string       `json:"url"`
	Fallbacks []AvatarInfo `json:"fallbacks"`
}

// Flatten lists every nested fallback URL depth first, parents before their
// own fallbacks.
func (a AvatarInfo) Flatten() []string {
	var urls []string

	for _, fallback := range a.Fallbacks {
		urls = append(urls, fallback.URL)
		urls = append(urls, fallback.Flatten()...)
	}

	return urls
}

// FirstLevel lists only the direct fallback URLs.
func (a AvatarInfo) FirstLevel() []string {
	urls := make([]string, len(a.Fallbacks))
	for i, fallback := range a.Fallbacks {
		urls[i] = fallback.URL
	}

	return urls
}
