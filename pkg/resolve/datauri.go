package resolve

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// DataURI is a decoded data URI.
type DataURI struct {
	// MIME is the declared media type, without parameters.
	MIME string

	// Data is the decoded payload.
	Data []byte
}

// IsDataURI reports whether uri uses the data scheme.
func IsDataURI(uri string) bool {
	return len(uri) >= 5 && strings.EqualFold(uri[:5], "data:")
}

// ParseDataURI decodes a data URI of the form
// data:[<mediatype>][;base64],<data>. Non-base64 data is percent-decoded.
func ParseDataURI(uri string) (DataURI, error) {
	if !IsDataURI(uri) {
		return DataURI{}, fmt.Errorf("%w: missing data: scheme", ErrDataURI)
	}
	header, data, ok := strings.Cut(uri[5:], ",")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: missing comma", ErrDataURI)
	}

	params := strings.Split(header, ";")
	isBase64 := false
	if last := params[len(params)-1]; strings.EqualFold(last, "base64") {
		isBase64 = true
		params = params[:len(params)-1]
	}
	mime := strings.TrimSpace(params[0])
	if mime == "" {
		mime = "text/plain"
	}

	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			// Some exporters drop the padding.
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
			if err != nil {
				return DataURI{}, fmt.Errorf("%w: %v", ErrDataURI, err)
			}
		}
		return DataURI{MIME: mime, Data: decoded}, nil
	}

	decoded, err := url.PathUnescape(data)
	if err != nil {
		return DataURI{}, fmt.Errorf("%w: %v", ErrDataURI, err)
	}
	return DataURI{MIME: mime, Data: []byte(decoded)}, nil
}

// EncodeDataURI returns data as a base64 data URI of the given media type.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
