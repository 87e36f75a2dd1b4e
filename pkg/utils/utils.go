package utils

import (
	"bytes"
	"crypto/rand"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

var ErrEmptyImage = errors.New("empty image payload")

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ImageSize(data []byte) (width int, height int, err error)
	CacheBust(rawURL string, t time.Time) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ImageSize reads only the header of an encoded frame to find its native resolution.
func (u *utils) ImageSize(data []byte) (int, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrEmptyImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}

	return cfg.Width, cfg.Height, nil
}

// CacheBust sets the t query parameter to t in unix milliseconds.
func (u *utils) CacheBust(rawURL string, t time.Time) string {
	token := strconv.FormatInt(t.UnixMilli(), 10)

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL + "?t=" + token
	}

	q := parsed.Query()
	q.Set("t", token)
	parsed.RawQuery = q.Encode()

	return parsed.String()
}
