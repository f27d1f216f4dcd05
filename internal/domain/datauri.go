package domain

import (
	"encoding/base64"
	"errors"
	"strings"
)

const base64Marker = ";base64,"

// ErrInvalidDataURI is returned for inline images without a base64 marker or with a bad payload.
var ErrInvalidDataURI = errors.New("invalid format: expected data:<mime>;base64,<payload>")

// ParseDataURI decodes "data:image/png;base64,...." into its MIME type and bytes.
// A missing "data:" prefix is tolerated and yields application/octet-stream.
func ParseDataURI(uri string) (*InlineImage, error) {
	idx := strings.Index(uri, base64Marker)
	if idx < 0 {
		return nil, ErrInvalidDataURI
	}
	mime := strings.TrimSpace(strings.TrimPrefix(uri[:idx], "data:"))
	if mime == "" {
		mime = "application/octet-stream"
	}
	payload := strings.TrimSpace(uri[idx+len(base64Marker):])
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, ErrInvalidDataURI
		}
	}
	if len(data) == 0 {
		return nil, ErrInvalidDataURI
	}
	return &InlineImage{MIMEType: mime, Data: data}, nil
}
