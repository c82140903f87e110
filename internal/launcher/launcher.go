// Package launcher edits the Minecraft launcher's profile list so that a
// profile's version follows the version a world is running.
package launcher

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/pkg/util"
)

var ErrUnknownProfile = errors.New("no such profile in launcher data")

const lastVersionKey = "lastVersionId"

// Data is launcher_profiles.json. Fields this program does not use are kept
// as raw JSON so that saving never drops anything the launcher wrote.
type Data struct {
	Profiles map[string]map[string]json.RawMessage
	extra    map[string]json.RawMessage
}

func Load(path string) (*Data, error) {
	body, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil, errors.Wrap(errRead, "Failed to read launcher data")
	}

	var raw map[string]json.RawMessage
	if errDecode := json.Unmarshal(body, &raw); errDecode != nil {
		return nil, errors.Wrapf(errDecode, "Failed to decode launcher data %s", path)
	}

	data := &Data{Profiles: map[string]map[string]json.RawMessage{}, extra: raw}

	if profiles, found := raw["profiles"]; found {
		if errProfiles := json.Unmarshal(profiles, &data.Profiles); errProfiles != nil {
			return nil, errors.Wrap(errProfiles, "Failed to decode launcher profiles")
		}
	}

	delete(data.extra, "profiles")

	return data, nil
}

func (d *Data) Version(profileID string) (string, error) {
	profile, found := d.Profiles[profileID]
	if !found {
		return "", errors.Wrapf(ErrUnknownProfile, "%q", profileID)
	}

	var version string
	if rawVersion, hasVersion := profile[lastVersionKey]; hasVersion {
		if errDecode := json.Unmarshal(rawVersion, &version); errDecode != nil {
			return "", errors.Wrapf(errDecode, "Invalid %s in profile %q", lastVersionKey, profileID)
		}
	}

	return version, nil
}

// SetVersion points the profile at version and reports whether anything
// changed.
func (d *Data) SetVersion(profileID string, version string) (bool, error) {
	current, errCurrent := d.Version(profileID)
	if errCurrent != nil {
		return false, errCurrent
	}

	if current == version {
		return false, nil
	}

	encoded, errEncode := json.Marshal(version)
	if errEncode != nil {
		return false, errors.Wrap(errEncode, "Failed to encode version")
	}

	d.Profiles[profileID][lastVersionKey] = encoded

	return true, nil
}

func (d *Data) Save(path string) error {
	out := make(map[string]any, len(d.extra)+1)
	for key, value := range d.extra {
		out[key] = value
	}

	out["profiles"] = d.Profiles

	return util.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return errors.Wrap(encoder.Encode(out), "Failed to encode launcher data")
	})
}
