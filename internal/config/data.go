package config

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/pkg/util"
)

// Data is the plugin's small persistent state.
type Data struct {
	Deferred *time.Time `json:"deferred"`
}

func LoadData(paths Paths) (Data, error) {
	dataFile, errOpen := os.Open(paths.DataFile())
	if errOpen != nil {
		if os.IsNotExist(errOpen) {
			return Data{}, nil
		}

		return Data{}, errors.Wrap(errOpen, "Failed to open data file")
	}

	defer util.IgnoreClose(dataFile)

	var data Data
	if errDecode := json.NewDecoder(dataFile).Decode(&data); errDecode != nil {
		return Data{}, errors.Wrapf(errDecode, "Failed to decode data file %s", paths.DataFile())
	}

	return data, nil
}

func (d Data) Save(paths Paths) error {
	return util.WriteFileAtomic(paths.DataFile(), 0o644, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return errors.Wrap(encoder.Encode(d), "Failed to encode data file")
	})
}

// IsDeferred reports whether the menu is hidden at now.
func (d Data) IsDeferred(now time.Time) bool {
	return d.Deferred != nil && !d.Deferred.Before(now)
}
