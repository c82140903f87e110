package avatar

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/internal/model"
	"github.com/wurstmineberg/bitbar-server-status/pkg/util"
	"go.uber.org/zap"
)

var ErrNoAvatar = errors.New("no avatar source configured")

type ImageResolver interface {
	Resolve(ctx context.Context, uid model.UID) (image.Image, error)
}

// Cache maps people to their encoded avatar thumbnails. Entries never expire.
// Changes stay in memory until Save is called. Not safe for concurrent use.
type Cache struct {
	path       string
	entries    map[model.UID][]byte
	resolver   ImageResolver
	normalizer Normalizer
	log        *zap.Logger
}

// Load reads the cache file at path. A missing file yields an empty cache,
// a file that cannot be read or decoded is an error.
func Load(logger *zap.Logger, path string, resolver ImageResolver, normalizer Normalizer) (*Cache, error) {
	cache := &Cache{
		path:       path,
		entries:    map[model.UID][]byte{},
		resolver:   resolver,
		normalizer: normalizer,
		log:        logger.Named("avatar"),
	}

	cacheFile, errOpen := os.Open(path)
	if errOpen != nil {
		if os.IsNotExist(errOpen) {
			cache.log.Debug("No avatar cache yet", zap.String("path", path))

			return cache, nil
		}

		return nil, errors.Wrap(errOpen, "Failed to open avatar cache")
	}

	defer util.LogClose(cache.log, cacheFile)

	if errDecode := json.NewDecoder(cacheFile).Decode(&cache.entries); errDecode != nil {
		return nil, errors.Wrapf(errDecode, "Failed to decode avatar cache %s", path)
	}

	if cache.entries == nil {
		cache.entries = map[model.UID][]byte{}
	}

	cache.log.Debug("Loaded avatar cache", zap.String("path", path), zap.Int("count", len(cache.entries)))

	return cache, nil
}

func (c *Cache) Path() string {
	return c.path
}

func (c *Cache) Len() int {
	return len(c.entries)
}

// Keys returns the cached ids in a stable order.
func (c *Cache) Keys() []model.UID {
	keys := make([]model.UID, 0, len(c.entries))
	for uid := range c.entries {
		keys = append(keys, uid)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})

	return keys
}

func (c *Cache) Get(uid model.UID) ([]byte, bool) {
	value, found := c.entries[uid]

	return value, found
}

// GetOrFetch returns the cached thumbnail for uid, resolving and storing it
// first when it is missing.
func (c *Cache) GetOrFetch(ctx context.Context, uid model.UID) ([]byte, error) {
	if value, found := c.entries[uid]; found {
		return value, nil
	}

	if c.resolver == nil {
		return nil, ErrNoAvatar
	}

	img, errResolve := c.resolver.Resolve(ctx, uid)
	if errResolve != nil {
		return nil, errResolve
	}

	thumbnail, errThumb := c.normalizer.Thumbnail(img)
	if errThumb != nil {
		return nil, errors.Wrapf(errThumb, "Failed to create thumbnail for %s", uid)
	}

	c.entries[uid] = thumbnail

	c.log.Debug("Cached avatar", zap.Stringer("uid", uid), zap.Int("bytes", len(thumbnail)))

	return thumbnail, nil
}

// Save replaces the cache file with the full in-memory mapping.
func (c *Cache) Save() error {
	errWrite := util.WriteFileAtomic(c.path, 0o644, func(w io.Writer) error {
		if errEncode := json.NewEncoder(w).Encode(c.entries); errEncode != nil {
			return errors.Wrap(errEncode, "Failed to encode avatar cache")
		}

		return nil
	})
	if errWrite != nil {
		return errors.Wrapf(errWrite, "Failed to save avatar cache %s", c.path)
	}

	return nil
}
