// Package content holds the content-addressing rules: which files are
// accepted, how they are fingerprinted and where they are stored.
package content

import "strings"

// AllowedExtensions is the set of accepted file extensions, lowercase.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Extension returns the lowercase text after the last dot of filename, or ""
// when there is none.
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// Allowed reports whether filename carries an accepted extension.
func Allowed(filename string) bool {
	return AllowedExtensions[Extension(filename)]
}

// ContentType maps an extension to its MIME type.
func ContentType(ext string) string {
	if ct, ok := contentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsJPEG reports whether ext names a JPEG file.
func IsJPEG(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == "jpg" || ext == "jpeg"
}
