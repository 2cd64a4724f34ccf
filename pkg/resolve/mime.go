package resolve

import (
	"path"
	"strings"

	"github.com/h2non/filetype"
)

// DetectMIME sniffs the media type of image bytes. It returns false when
// the content matches no known signature.
func DetectMIME(data []byte) (string, bool) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	return kind.MIME.Value, true
}

// ImageMIME picks the media type recorded for an embedded image: the
// sniffed type, else the declared one, else a guess from the URI
// extension.
func ImageMIME(data []byte, declared, uri string) string {
	if mime, ok := DetectMIME(data); ok {
		return mime
	}
	if declared != "" {
		return declared
	}
	switch strings.ToLower(path.Ext(uri)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".ktx2":
		return "image/ktx2"
	}
	return "application/octet-stream"
}
