package file

import (
	"bytes"
	"net/http"
	"strings"
)

// allowedTypes maps every accepted MIME type to the extension stored objects get.
var allowedTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// sniffType detects the MIME type from the content. The declared type and
// name are only trusted to tell SVG apart from other XML.
func sniffType(head []byte, filename string) (string, bool) {
	detected := http.DetectContentType(head)
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	if _, ok := allowedTypes[detected]; ok {
		return detected, true
	}
	if (detected == "text/xml" || detected == "text/plain") && looksLikeSVG(head, filename) {
		return "image/svg+xml", true
	}
	return detected, false
}

func looksLikeSVG(head []byte, filename string) bool {
	if !strings.HasSuffix(strings.ToLower(filename), ".svg") {
		return false
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}
