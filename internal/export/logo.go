package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// MaxLogoBytes is the largest logo file accepted
const MaxLogoBytes = 2 << 20

var (
	ErrLogoTooLarge = errors.New("logo file is too large; please choose an image under 2MB")
	ErrLogoNotImage = errors.New("logo file is not an image")
)

// LoadLogo reads an image file and returns it as a data URI
func LoadLogo(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open logo: %w", err)
	}
	defer f.Close()

	// Read one byte past the limit to detect oversized files
	data, err := io.ReadAll(io.LimitReader(f, MaxLogoBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	return EncodeLogo(data)
}

// EncodeLogo validates raw image bytes and returns them as a data URI
func EncodeLogo(data []byte) (string, error) {
	if len(data) > MaxLogoBytes {
		return "", ErrLogoTooLarge
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrLogoNotImage, contentType)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeLogo splits a data URI into its content type and bytes
func DecodeLogo(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("logo is not a data URI")
	}
	contentType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, errors.New("logo data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return contentType, data, nil
}
