package avatar

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ThumbnailSize is the edge length of cached avatars in pixels.
// TODO scale by the configured zoom once the menu renderer can pass a DPI hint
// alongside the image.
const ThumbnailSize = 16

var (
	ErrUnsupportedMIME = errors.New("unsupported MIME type")
	ErrDecode          = errors.New("failed to decode image")
	ErrEncode          = errors.New("failed to encode image")
)

type decodeFunc func(r io.Reader) (image.Image, error)

var decoders = map[string]decodeFunc{ //nolint:gochecknoglobals
	"image/bmp":  bmp.Decode,
	"image/gif":  gif.Decode,
	"image/jpeg": jpeg.Decode,
	"image/png":  png.Decode,
	"image/webp": webp.Decode,
}

// Normalizer turns arbitrary avatar images into small square PNG icons.
type Normalizer struct {
	Size int
}

func NewNormalizer() Normalizer {
	return Normalizer{Size: ThumbnailSize}
}

// Decode reads raw image bytes. When contentType is set it selects the
// decoder and anything outside the allow list is rejected without looking at
// the bytes. An empty contentType sniffs the format from the data.
func (n Normalizer) Decode(raw []byte, contentType string) (image.Image, error) {
	if contentType == "" {
		img, errDecode := imaging.Decode(bytes.NewReader(raw))
		if errDecode != nil {
			return nil, errors.Wrap(ErrDecode, errDecode.Error())
		}

		return img, nil
	}

	mediaType, _, errParse := mime.ParseMediaType(contentType)
	if errParse != nil {
		return nil, errors.Wrapf(ErrUnsupportedMIME, "Malformed content type %q", contentType)
	}

	decode, found := decoders[strings.ToLower(mediaType)]
	if !found {
		return nil, errors.Wrapf(ErrUnsupportedMIME, "Cannot decode %s", mediaType)
	}

	img, errDecode := decode(bytes.NewReader(raw))
	if errDecode != nil {
		return nil, errors.Wrapf(ErrDecode, "%s: %v", mediaType, errDecode)
	}

	return img, nil
}

// Thumbnail resizes img to exactly Size x Size with nearest neighbour
// sampling and encodes it as PNG. The aspect ratio is not preserved.
func (n Normalizer) Thumbnail(img image.Image) ([]byte, error) {
	size := n.Size
	if size <= 0 {
		size = ThumbnailSize
	}

	resized := imaging.Resize(img, size, size, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if errEncode := imaging.Encode(&buf, resized, imaging.PNG); errEncode != nil {
		return nil, errors.Wrap(ErrEncode, errEncode.Error())
	}

	return buf.Bytes(), nil
}

func (n Normalizer) Normalize(raw []byte, contentType string) ([]byte, error) {
	img, errDecode := n.Decode(raw, contentType)
	if errDecode != nil {
		return nil, errDecode
	}

	return n.Thumbnail(img)
}
