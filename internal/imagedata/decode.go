// Package imagedata turns uploaded image files into self-contained data URIs.
package imagedata

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for DecodeConfig
	_ "image/jpeg" // register JPEG for DecodeConfig
	_ "image/png"  // register PNG for DecodeConfig
	"io"
	"net/http"
	"strings"
)

// DefaultMaxBytes caps uploads when a Decoder has no explicit limit.
const DefaultMaxBytes = 5 << 20

// Decoder reads image files and encodes them as data URIs.
type Decoder struct {
	MaxBytes int64
}

// NewDecoder returns a Decoder accepting files up to maxBytes.
func NewDecoder(maxBytes int64) *Decoder {
	return &Decoder{MaxBytes: maxBytes}
}

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Decode reads r fully and returns a base64 data URI. The read stops early
// if ctx is cancelled. The name is only used in error messages.
func (d *Decoder) Decode(ctx context.Context, name string, r io.Reader) (string, error) {
	limit := d.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(&ctxReader{ctx: ctx, r: r}, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%s is larger than %d bytes", name, limit)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%s is empty", name)
	}

	mime := http.DetectContentType(data)
	if !allowedTypes[mime] {
		return "", fmt.Errorf("%s is not a supported image (detected %s)", name, mime)
	}
	if mime != "image/webp" {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return "", fmt.Errorf("%s is not a valid %s: %w", name, strings.TrimPrefix(mime, "image/"), err)
		}
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ctxReader fails reads once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// DecodeDataURI returns the MIME type and raw bytes of a base64 data URI.
func DecodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI has no payload")
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid data URI payload: %w", err)
	}
	return mime, data, nil
}
