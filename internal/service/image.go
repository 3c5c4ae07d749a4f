package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxImageBytes caps the decoded size of an entry image.
const MaxImageBytes = 5 << 20

// ImageUpload is an image attached to a create or update request, either as
// a stream (multipart file) or as an already encoded data URL.
type ImageUpload struct {
	Reader      io.Reader
	ContentType string
	Filename    string
	DataURL     string
}

// encodeImage returns the data URL for img. A nil upload yields "".
func encodeImage(img *ImageUpload) (string, error) {
	if img == nil {
		return "", nil
	}
	if img.DataURL != "" {
		return validateDataURL(img.DataURL)
	}
	if img.Reader == nil {
		return "", nil
	}

	data, err := io.ReadAll(io.LimitReader(img.Reader, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", nil
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxImageBytes)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		mime = strings.TrimSpace(strings.Split(img.ContentType, ";")[0])
	}
	if !strings.HasPrefix(mime, "image/") || !looksLikeImage(data, mime) {
		return "", fmt.Errorf("%w: unsupported type %q", ErrInvalidImage, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// looksLikeImage rejects bodies sniffed as text for non-SVG declared types.
func looksLikeImage(data []byte, mime string) bool {
	if mime == "image/svg+xml" {
		return bytes.Contains(data, []byte("<svg"))
	}
	return !strings.HasPrefix(http.DetectContentType(data), "text/")
}

func validateDataURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return "", fmt.Errorf("%w: malformed data URL", ErrInvalidImage)
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(decoded) > MaxImageBytes {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxImageBytes)
	}
	return s, nil
}
