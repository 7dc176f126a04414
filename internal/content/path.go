package content

import (
	"fmt"
	"time"
)

// Paths derives storage keys and the public URLs they are served under.
type Paths struct {
	Domain string
}

// NewPaths creates a Paths serving objects from domain.
func NewPaths(domain string) Paths {
	return Paths{Domain: domain}
}

// Key returns img/<year>/<month>/<digest>.<ext> for the month containing now.
// The same digest and extension always map to the same key within a month.
func (p Paths) Key(digest, ext string, now time.Time) string {
	return fmt.Sprintf("img/%04d/%02d/%s.%s", now.Year(), int(now.Month()), digest, ext)
}

// PublicURL returns the browser-accessible URL for key.
func (p Paths) PublicURL(key string) string {
	return "https://" + p.Domain + "/" + key
}
