package verifier

import (
	"regexp"
	"sync"
)

// Meta tags appear with property/name before content or the other way
// around; both orderings are checked. Patterns are compiled once per tag
// name and cached, since the catalog probes the same handful of names for
// every page.
var (
	metaMu    sync.Mutex
	metaCache = map[string][2]*regexp.Regexp{}
)

func metaPatterns(name string) [2]*regexp.Regexp {
	metaMu.Lock()
	defer metaMu.Unlock()

	if cached, ok := metaCache[name]; ok {
		return cached
	}
	escaped := regexp.QuoteMeta(name)
	patterns := [2]*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta[^>]*(?:property|name)=["'](?:og:|twitter:)?` + escaped + `["'][^>]*content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]*content=["']([^"']+)["'][^>]*(?:property|name)=["'](?:og:|twitter:)?` + escaped + `["']`),
	}
	metaCache[name] = patterns
	return patterns
}

// extractMeta pulls the content attribute of a meta tag from an HTML
// document. Returns "" when the tag is absent.
func extractMeta(content, name string) string {
	for _, pattern := range metaPatterns(name) {
		if match := pattern.FindStringSubmatch(content); match != nil {
			return match[1]
		}
	}
	return ""
}
