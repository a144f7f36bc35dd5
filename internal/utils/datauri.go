package utils

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

// dataURIPattern matches "data:<mime>;base64,<payload>".
var dataURIPattern = regexp.MustCompile(`^data:([^;]+);base64,(.*)$`)

// BuildDataURI encodes raw bytes as a base64 data URI with the given media type.
func BuildDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// IsDataURI reports whether s has valid data-URI syntax. It does not decode
// the payload.
func IsDataURI(s string) bool {
	return dataURIPattern.MatchString(s)
}

// ParseDataURI decodes a data URI back into its media type and raw bytes.
func ParseDataURI(s string) (string, []byte, error) {
	match := dataURIPattern.FindStringSubmatch(s)
	if match == nil {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return match[1], data, nil
}
