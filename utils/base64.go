package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// DecodeBase64Image accepts either a raw base64 string or a data URI
// ("data:image/png;base64,....") and returns the bytes plus MIME type.
func DecodeBase64Image(s string) ([]byte, string, error) {
	mime := "image/png"

	if strings.HasPrefix(s, "data:") {
		semi := strings.Index(s, ";base64,")
		if semi < 0 {
			return nil, "", errors.New("malformed data URI")
		}
		mime = s[len("data:"):semi]
		s = s[semi+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", err
	}
	return data, mime, nil
}
