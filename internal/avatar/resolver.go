package avatar

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/internal/api"
	"github.com/wurstmineberg/bitbar-server-status/internal/model"
	"go.uber.org/zap"
)

// Source is the part of the API the resolver needs.
type Source interface {
	AvatarInfo(ctx context.Context, uid model.UID) (model.AvatarInfo, error)
	Image(ctx context.Context, imageURL string) (api.Image, error)
}

type ResolverOption func(r *Resolver)

// WithRecursiveFallbacks makes the resolver walk nested fallbacks depth first
// instead of only the first level.
func WithRecursiveFallbacks() ResolverOption {
	return func(r *Resolver) {
		r.recursive = true
	}
}

// Resolver downloads the avatar of a person, trying the fallback images in
// order when the primary image cannot be used.
type Resolver struct {
	source     Source
	normalizer Normalizer
	recursive  bool
	log        *zap.Logger
}

func NewResolver(logger *zap.Logger, source Source, normalizer Normalizer, opts ...ResolverOption) *Resolver {
	resolver := &Resolver{
		source:     source,
		normalizer: normalizer,
		log:        logger.Named("resolver"),
	}

	for _, opt := range opts {
		opt(resolver)
	}

	return resolver
}

func (r *Resolver) fetch(ctx context.Context, imageURL string) (image.Image, error) {
	img, errImg := r.source.Image(ctx, imageURL)
	if errImg != nil {
		return nil, errImg
	}

	return r.normalizer.Decode(img.Body, img.ContentType)
}

// Resolve returns the decoded avatar image for uid. A failure to load the
// avatar info is returned as is. When the primary image and every fallback
// fail, the primary image's error is returned.
func (r *Resolver) Resolve(ctx context.Context, uid model.UID) (image.Image, error) {
	info, errInfo := r.source.AvatarInfo(ctx, uid)
	if errInfo != nil {
		return nil, errors.Wrapf(errInfo, "Failed to fetch avatar info for %s", uid)
	}

	img, errPrimary := r.fetch(ctx, info.URL)
	if errPrimary == nil {
		return img, nil
	}

	r.log.Debug("Primary avatar failed", zap.Stringer("uid", uid),
		zap.String("url", info.URL), zap.Error(errPrimary))

	fallbacks := info.FirstLevel()
	if r.recursive {
		fallbacks = info.Flatten()
	}

	for _, fallbackURL := range fallbacks {
		fallback, errFallback := r.fetch(ctx, fallbackURL)
		if errFallback != nil {
			r.log.Debug("Fallback avatar failed", zap.Stringer("uid", uid),
				zap.String("url", fallbackURL), zap.Error(errFallback))

			continue
		}

		return fallback, nil
	}

	return nil, errors.Wrapf(errPrimary, "Failed to fetch avatar for %s", uid)
}
