package imagedata

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugExtensions are tried in order by FindBySlug.
var slugExtensions = []string{".webp", ".jpg", ".png"}

// Slug converts a product name to a file-name friendly form:
// "Hamburguesa Clásica" becomes "hamburguesa-clasica".
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		stripped = strings.ToLower(name)
	}

	var b strings.Builder
	dash := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// FindBySlug looks for <dir>/<slug(name)> with a .webp, .jpg or .png
// extension and returns the first existing path.
func FindBySlug(dir, name string) (string, bool) {
	slug := Slug(name)
	if dir == "" || slug == "" {
		return "", false
	}
	for _, ext := range slugExtensions {
		path := filepath.Join(dir, slug+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
