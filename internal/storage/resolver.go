// Package storage resolves stored image paths to public URLs.
package storage

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Resolver maps storage paths from the image table onto the public CDN
// base. Paths are recorded relative to the bucket with a leading bucket
// segment, which is stripped before joining.
type Resolver struct {
	baseURL string
	bucket  string
}

func NewResolver(baseURL, bucket string) *Resolver {
	return &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}
}

// PublicURL returns the canonical public URL for a stored image path.
func (r *Resolver) PublicURL(storagePath string) string {
	p := strings.TrimPrefix(storagePath, r.bucket+"/")
	p = strings.TrimPrefix(p, "/")
	return fmt.Sprintf("%s/%s/%s", r.baseURL, r.bucket, p)
}

var idSuffixRe = regexp.MustCompile(`-\d+(\.[a-zA-Z0-9]+)$`)

// AltURL returns the fallback URL tried when the canonical one 404s:
// the same path with the trailing "-<id>" suffix stripped from the file
// name. Earlier uploads were stored without the id suffix, so both
// spellings exist in the bucket. ok is false when the path carries no
// suffix and there is nothing to fall back to.
func (r *Resolver) AltURL(storagePath string) (string, bool) {
	base := path.Base(storagePath)
	if !idSuffixRe.MatchString(base) {
		return "", false
	}
	alt := path.Join(path.Dir(storagePath), idSuffixRe.ReplaceAllString(base, "$1"))
	return r.PublicURL(alt), true
}
