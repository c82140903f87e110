package avatar_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/wurstmineberg/bitbar-server-status/internal/api"
	"github.com/wurstmineberg/bitbar-server-status/internal/avatar"
	"github.com/wurstmineberg/bitbar-server-status/internal/model"
	"go.uber.org/zap"
)

type imageResponse struct {
	img api.Image
	err error
}

// fakeSource counts every call so tests can assert which URLs were tried.
type fakeSource struct {
	infos     map[model.UID]model.AvatarInfo
	infoErr   error
	images    map[string]imageResponse
	infoCalls int
	imageLog  []string
}

func (f *fakeSource) AvatarInfo(_ context.Context, uid model.UID) (model.AvatarInfo, error) {
	f.infoCalls++

	if f.infoErr != nil {
		return model.AvatarInfo{}, f.infoErr
	}

	info, found := f.infos[uid]
	if !found {
		return model.AvatarInfo{}, &api.StatusError{URL: "info/" + uid.String(), Code: http.StatusNotFound}
	}

	return info, nil
}

func (f *fakeSource) Image(_ context.Context, imageURL string) (api.Image, error) {
	f.imageLog = append(f.imageLog, imageURL)

	resp, found := f.images[imageURL]
	if !found {
		return api.Image{}, &api.StatusError{URL: imageURL, Code: http.StatusNotFound}
	}

	return resp.img, resp.err
}

func (f *fakeSource) calls() int {
	return f.infoCalls + len(f.imageLog)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	alice := model.NewWmbID("alice")
	pngImage := api.Image{Body: encodePNG(t, 40), ContentType: "image/png"}
	jpegImage := api.Image{Body: encodeJPEG(t, 32), ContentType: "image/jpeg"}

	t.Run("Primary succeeds", func(t *testing.T) {
		source := &fakeSource{
			infos:  map[model.UID]model.AvatarInfo{alice: {URL: "A", Fallbacks: []model.AvatarInfo{{URL: "B"}}}},
			images: map[string]imageResponse{"A": {img: pngImage}, "B": {img: jpegImage}},
		}

		img, errResolve := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer()).Resolve(ctx, alice)
		require.NoError(t, errResolve)
		require.Equal(t, 40, img.Bounds().Dx())
		require.Equal(t, []string{"A"}, source.imageLog)
	})

	t.Run("First fallback succeeds", func(t *testing.T) {
		source := &fakeSource{
			infos: map[model.UID]model.AvatarInfo{alice: {URL: "A", Fallbacks: []model.AvatarInfo{
				{URL: "B"}, {URL: "C"},
			}}},
			images: map[string]imageResponse{"B": {img: jpegImage}, "C": {img: pngImage}},
		}

		img, errResolve := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer()).Resolve(ctx, alice)
		require.NoError(t, errResolve)
		require.Equal(t, 32, img.Bounds().Dx())
		require.Equal(t, []string{"A", "B"}, source.imageLog)
	})

	t.Run("Undecodable fallback is skipped", func(t *testing.T) {
		source := &fakeSource{
			infos: map[model.UID]model.AvatarInfo{alice: {URL: "A", Fallbacks: []model.AvatarInfo{
				{URL: "B"}, {URL: "C"}, {URL: "D"},
			}}},
			images: map[string]imageResponse{
				"A": {img: api.Image{Body: []byte("hello"), ContentType: "text/plain"}},
				"B": {img: api.Image{Body: []byte("garbage"), ContentType: "image/png"}},
				"C": {img: pngImage},
				"D": {img: jpegImage},
			},
		}

		img, errResolve := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer()).Resolve(ctx, alice)
		require.NoError(t, errResolve)
		require.Equal(t, 40, img.Bounds().Dx())
		require.Equal(t, []string{"A", "B", "C"}, source.imageLog)
	})

	t.Run("All fail returns primary error", func(t *testing.T) {
		errFallback := errors.New("fallback transport failure")
		source := &fakeSource{
			infos: map[model.UID]model.AvatarInfo{alice: {URL: "A", Fallbacks: []model.AvatarInfo{
				{URL: "B"}, {URL: "C"},
			}}},
			images: map[string]imageResponse{
				"B": {err: errFallback},
				"C": {img: api.Image{Body: []byte("nope"), ContentType: "image/webp"}},
			},
		}

		img, errResolve := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer()).Resolve(ctx, alice)
		require.Error(t, errResolve)
		require.Nil(t, img)
		require.NotErrorIs(t, errResolve, errFallback)
		require.NotErrorIs(t, errResolve, avatar.ErrDecode)

		var statusErr *api.StatusError
		require.True(t, errors.As(errResolve, &statusErr))
		require.Equal(t, "A", statusErr.URL)
		require.Equal(t, http.StatusNotFound, statusErr.Code)
		require.Equal(t, []string{"A", "B", "C"}, source.imageLog)
	})

	t.Run("Empty fallback list", func(t *testing.T) {
		source := &fakeSource{
			infos: map[model.UID]model.AvatarInfo{alice: {URL: "A"}},
			images: map[string]imageResponse{
				"A": {img: api.Image{Body: []byte("x"), ContentType: "text/plain"}},
			},
		}

		_, errResolve := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer()).Resolve(ctx, alice)
		require.ErrorIs(t, errResolve, avatar.ErrUnsupportedMIME)
		require.Equal(t, []string{"A"}, source.imageLog)
	})

	t.Run("Metadata failure is fatal", func(t *testing.T) {
		errInfo := errors.New("metadata down")
		source := &fakeSource{infoErr: errInfo}

		_, errResolve := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer()).Resolve(ctx, alice)
		require.ErrorIs(t, errResolve, errInfo)
		require.Empty(t, source.imageLog)
	})

	nested := model.AvatarInfo{URL: "A", Fallbacks: []model.AvatarInfo{
		{URL: "B", Fallbacks: []model.AvatarInfo{{URL: "B1"}}},
		{URL: "C"},
	}}

	t.Run("Nested fallbacks ignored by default", func(t *testing.T) {
		source := &fakeSource{
			infos:  map[model.UID]model.AvatarInfo{alice: nested},
			images: map[string]imageResponse{"B1": {img: pngImage}},
		}

		_, errResolve := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer()).Resolve(ctx, alice)
		require.Error(t, errResolve)
		require.Equal(t, []string{"A", "B", "C"}, source.imageLog)
	})

	t.Run("Nested fallbacks walked when recursive", func(t *testing.T) {
		source := &fakeSource{
			infos:  map[model.UID]model.AvatarInfo{alice: nested},
			images: map[string]imageResponse{"B1": {img: pngImage}, "C": {img: jpegImage}},
		}

		resolver := avatar.NewResolver(zap.NewNop(), source, avatar.NewNormalizer(), avatar.WithRecursiveFallbacks())
		img, errResolve := resolver.Resolve(ctx, alice)
		require.NoError(t, errResolve)
		require.Equal(t, 40, img.Bounds().Dx())
		require.Equal(t, []string{"A", "B", "B1"}, source.imageLog)
	})
}
