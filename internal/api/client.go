package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wurstmineberg/bitbar-server-status/internal/model"
	"github.com/wurstmineberg/bitbar-server-status/pkg/util"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://wurstmineberg.de/api/v3"
	DefaultTimeout = time.Second * 30
)

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Invalid response code %d from %s", e.Code, e.URL)
}

// ErrorURL returns the URL a failed request was sent to, if err carries one.
func ErrorURL(err error) (string, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.URL, true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.URL, true
	}

	return "", false
}

// Image is a downloaded image body along with its declared Content-Type. The
// content type is empty when the server did not send one.
type Image struct {
	Body        []byte
	ContentType string
}

// Client talks to the Wurstmineberg API.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       *zap.Logger
}

func New(logger *zap.Logger, baseURL string, timeout time.Duration, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		log:       logger.Named("api"),
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, http.Header, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if errReq != nil {
		return nil, nil, errors.Wrap(errReq, "Failed to create request")
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, errResp := c.client.Do(req)
	if errResp != nil {
		return nil, nil, errors.Wrap(errResp, "Failed to perform request")
	}

	defer util.LogClose(c.log, resp.Body)

	c.log.Debug("Fetched", zap.String("url", fullURL), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, &StatusError{URL: fullURL, Code: resp.StatusCode}
	}

	body, errBody := io.ReadAll(resp.Body)
	if errBody != nil {
		return nil, nil, errors.Wrap(errBody, "Failed to read response body")
	}

	return body, resp.Header, nil
}

func (c *Client) get(ctx context.Context, fullURL string, results any) error {
	body, _, errFetch := c.fetch(ctx, fullURL)
	if errFetch != nil {
		return errFetch
	}

	if errJSON := json.Unmarshal(body, results); errJSON != nil {
		return errors.Wrapf(errJSON, "Failed to unmarshal json response from %s", fullURL)
	}

	return nil
}

func (c *Client) Worlds(ctx context.Context) (model.Worlds, error) {
	var worlds model.Worlds
	if errGet := c.get(ctx, c.url("/server/worlds.json?list=1"), &worlds); errGet != nil {
		return nil, errGet
	}

	return worlds, nil
}

func (c *Client) People(ctx context.Context) (model.People, error) {
	var people model.People
	if errGet := c.get(ctx, c.url("/people.json"), &people); errGet != nil {
		return model.People{}, errGet
	}

	if people.People == nil {
		people.People = map[model.UID]model.Person{}
	}

	return people, nil
}

func (c *Client) AvatarInfo(ctx context.Context, uid model.UID) (model.AvatarInfo, error) {
	var info model.AvatarInfo

	path := fmt.Sprintf("/person/%s/avatar.json", url.PathEscape(uid.String()))
	if errGet := c.get(ctx, c.url(path), &info); errGet != nil {
		return model.AvatarInfo{}, errGet
	}

	if info.URL == "" {
		return model.AvatarInfo{}, errors.Errorf("Avatar info for %s has no url", uid)
	}

	return info, nil
}

func (c *Client) Image(ctx context.Context, imageURL string) (Image, error) {
	body, header, errFetch := c.fetch(ctx, imageURL)
	if errFetch != nil {
		return Image{}, errFetch
	}

	return Image{Body: body, ContentType: header.Get("Content-Type")}, nil
}
