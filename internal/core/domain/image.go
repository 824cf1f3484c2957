package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURLPrefix = "data:"

// EncodedImage is a self-contained image as a data URL:
// "data:<media type>;base64,<body>". The empty value means absent.
type EncodedImage string

// EncodeImage builds a data URL from raw bytes and a media type.
func EncodeImage(mediaType string, data []byte) EncodedImage {
	return EncodedImage(dataURLPrefix + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// IsAbsent returns true if no image is stored.
func (e EncodedImage) IsAbsent() bool {
	return e == ""
}

// MediaType returns the declared media type, or "" if the payload is malformed.
func (e EncodedImage) MediaType() string {
	mediaType, _, ok := e.split()
	if !ok {
		return ""
	}
	return mediaType
}

// IsValid returns true if the payload declares an image media type and
// its body is valid base64.
func (e EncodedImage) IsValid() bool {
	_, _, err := e.Decode()
	return err == nil
}

// Decode returns the media type and raw bytes of the image.
func (e EncodedImage) Decode() (string, []byte, error) {
	mediaType, body, ok := e.split()
	if !ok || !strings.HasPrefix(mediaType, "image/") {
		return "", nil, ErrInvalidPayload
	}
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return mediaType, data, nil
}

// Size returns the approximate decoded size in bytes.
func (e EncodedImage) Size() int {
	_, body, ok := e.split()
	if !ok {
		return 0
	}
	return base64.StdEncoding.DecodedLen(len(body))
}

func (e EncodedImage) split() (mediaType, body string, ok bool) {
	s := string(e)
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", "", false
	}
	header, body, found := strings.Cut(s[len(dataURLPrefix):], ",")
	if !found {
		return "", "", false
	}
	mediaType, enc, found := strings.Cut(header, ";")
	if !found || enc != "base64" || mediaType == "" {
		return "", "", false
	}
	return mediaType, body, true
}
