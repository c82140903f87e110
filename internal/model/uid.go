package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidUID = errors.New("invalid player id")

type UIDKind int

const (
	KindSnowflake UIDKind = iota + 1
	KindWmbID
)

const (
	prefixSnowflake = "snowflake:"
	prefixWmbID     = "wmb:"
)

// Snowflake is a Discord user id.
type Snowflake uint64

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// UnmarshalJSON accepts both JSON numbers and numeric strings, since the API
// has used both encodings over time.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))

	value, errParse := strconv.ParseUint(raw, 10, 64)
	if errParse != nil {
		return errors.Wrapf(ErrInvalidUID, "Invalid snowflake %s", raw)
	}

	*s = Snowflake(value)

	return nil
}

// UID identifies a person, either by Discord snowflake or by Wurstmineberg id.
// The zero value is invalid.
type UID struct {
	kind      UIDKind
	snowflake Snowflake
	wmbID     string
}

func NewSnowflake(snowflake Snowflake) UID {
	return UID{kind: KindSnowflake, snowflake: snowflake}
}

func NewWmbID(wmbID string) UID {
	return UID{kind: KindWmbID, wmbID: wmbID}
}

func (u UID) Kind() UIDKind {
	return u.kind
}

func (u UID) Snowflake() (Snowflake, bool) {
	return u.snowflake, u.kind == KindSnowflake
}

func (u UID) WmbID() (string, bool) {
	return u.wmbID, u.kind == KindWmbID
}

func (u UID) Valid() bool {
	switch u.kind {
	case KindSnowflake:
		return true
	case KindWmbID:
		return u.wmbID != ""
	default:
		return false
	}
}

// String returns the untagged form used in API paths and labels.
func (u UID) String() string {
	switch u.kind {
	case KindSnowflake:
		return u.snowflake.String()
	case KindWmbID:
		return u.wmbID
	default:
		return ""
	}
}

// Less orders snowflakes before wmb ids, then by value.
func (u UID) Less(other UID) bool {
	if u.kind != other.kind {
		return u.kind < other.kind
	}

	if u.kind == KindSnowflake {
		return u.snowflake < other.snowflake
	}

	return u.wmbID < other.wmbID
}

// MarshalText produces the tagged form, e.g. "snowflake:86841168427495424" or
// "wmb:fenhl". This is the form used for every file this program owns.
func (u UID) MarshalText() ([]byte, error) {
	switch u.kind {
	case KindSnowflake:
		return []byte(prefixSnowflake + u.snowflake.String()), nil
	case KindWmbID:
		return []byte(prefixWmbID + u.wmbID), nil
	default:
		return nil, ErrInvalidUID
	}
}

// UnmarshalText accepts the tagged form and, for data coming from the API, the
// untagged form. Untagged input made of decimal digits only is read as a
// snowflake, anything else as a wmb id.
func (u *UID) UnmarshalText(text []byte) error {
	parsed, errParse := ParseUID(string(text))
	if errParse != nil {
		return errParse
	}

	*u = parsed

	return nil
}

func (u *UID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '"' {
		var snowflake Snowflake
		if errSnowflake := snowflake.UnmarshalJSON(trimmed); errSnowflake != nil {
			return errSnowflake
		}

		*u = NewSnowflake(snowflake)

		return nil
	}

	var text string
	if errString := json.Unmarshal(trimmed, &text); errString != nil {
		return errors.Wrap(errString, "Failed to decode player id")
	}

	return u.UnmarshalText([]byte(text))
}

func ParseUID(text string) (UID, error) {
	switch {
	case strings.HasPrefix(text, prefixSnowflake):
		value, errParse := strconv.ParseUint(strings.TrimPrefix(text, prefixSnowflake), 10, 64)
		if errParse != nil {
			return UID{}, errors.Wrapf(ErrInvalidUID, "Invalid snowflake %q", text)
		}

		return NewSnowflake(Snowflake(value)), nil
	case strings.HasPrefix(text, prefixWmbID):
		wmbID := strings.TrimPrefix(text, prefixWmbID)
		if wmbID == "" {
			return UID{}, errors.Wrap(ErrInvalidUID, "Empty wmb id")
		}

		return NewWmbID(wmbID), nil
	case text == "":
		return UID{}, errors.Wrap(ErrInvalidUID, "Empty player id")
	}

	if value, errParse := strconv.ParseUint(text, 10, 64); errParse == nil {
		return NewSnowflake(Snowflake(value)), nil
	}

	return NewWmbID(text), nil
}
