package cache

import (
	"regexp"
	"strings"
)

// compileGlob translates a glob pattern into an anchored regexp where each
// '*' matches zero or more characters. All other characters are literal,
// so the translation cannot fail.
func compileGlob(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}
