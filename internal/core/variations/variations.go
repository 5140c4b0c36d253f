// Package variations expands a username into platform-appropriate alternate
// handles. Generation is deterministic and side-effect-free so the same
// input always probes the same candidates in the same order.
package variations

import (
	"sort"
	"strings"
)

// blueskySuffix is the default handle domain on Bluesky. Bare usernames are
// not valid handles there, so the suffixed form is always tried first.
const blueskySuffix = ".bsky.social"

// domainExtensions are common custom-domain handles tried on Bluesky.
var domainExtensions = []string{".com", ".net", ".org", ".io", ".dev"}

// variationPlatforms is the allow-list of platforms where alternate handles
// are worth the extra probes. Everything else gets only the original
// username.
var variationPlatforms = map[string]bool{
	"bluesky":    true,
	"github":     true,
	"gitlab":     true,
	"twitter":    true,
	"instagram":  true,
	"reddit":     true,
	"linkedin":   true,
	"tiktok":     true,
	"youtube":    true,
	"steam":      true,
	"twitch":     true,
	"medium":     true,
	"soundcloud": true,
}

// ShouldTry reports whether a platform benefits from handle variations.
func ShouldTry(platformID string) bool {
	return variationPlatforms[platformID]
}

// Generate returns the ordered candidate handles for a username on a
// platform. The original username is always present. For every platform but
// Bluesky it comes first, followed by deduplicated alternates sorted by
// (length, lexicographic); on Bluesky the domain-suffixed form leads.
func Generate(username, platformID string) []string {
	set := map[string]bool{username: true}

	switch platformID {
	case "bluesky":
		lower := strings.ToLower(username)
		set[lower+blueskySuffix] = true
		set[username+blueskySuffix] = true
		for _, ext := range domainExtensions {
			set[username+ext] = true
			set[lower+ext] = true
		}
	case "github", "gitlab":
		if !strings.ContainsAny(username, "_-") {
			set[strings.ReplaceAll(username, ".", "-")] = true
			set[strings.ReplaceAll(username, ".", "_")] = true
			set[strings.ReplaceAll(username, ".", "")] = true
		}
	case "twitter":
		if !strings.Contains(username, "_") {
			set[username+"_"] = true
			set["_"+username] = true
			set[strings.ReplaceAll(username, ".", "_")] = true
			set[strings.ReplaceAll(username, "-", "_")] = true
		}
	case "instagram":
		if !strings.ContainsAny(username, "._") {
			set[strings.ReplaceAll(username, "-", ".")] = true
			set[strings.ReplaceAll(username, "-", "_")] = true
			set[username+"_"] = true
			set["_"+username] = true
		}
	case "reddit", "steam":
		if !strings.ContainsAny(username, "_-") {
			set[strings.ReplaceAll(username, ".", "_")] = true
			set[strings.ReplaceAll(username, ".", "-")] = true
			set[strings.ReplaceAll(username, ".", "")] = true
		}
	case "linkedin":
		if !strings.Contains(username, "-") {
			set[strings.ReplaceAll(username, ".", "-")] = true
			set[strings.ReplaceAll(username, "_", "-")] = true
			set[strings.ReplaceAll(username, ".", "")] = true
		}
	case "tiktok":
		if !strings.ContainsAny(username, "._") {
			set[strings.ReplaceAll(username, "-", ".")] = true
			set[strings.ReplaceAll(username, "-", "_")] = true
		}
	case "youtube":
		if !strings.ContainsAny(username, "._-") {
			set[strings.ReplaceAll(username, " ", "")] = true
		}
	}

	if strings.Contains(username, ".") {
		set[strings.ReplaceAll(username, ".", "")] = true
	}
	if strings.Count(username, ".") == 1 {
		parts := strings.SplitN(username, ".", 2)
		set[parts[0]+parts[1]] = true
		set[parts[0]+"_"+parts[1]] = true
		set[parts[0]+"-"+parts[1]] = true
	}

	if platformID == "bluesky" {
		first := strings.ToLower(username) + blueskySuffix
		return ordered(first, set)
	}
	return ordered(username, set)
}

// ordered puts first at the head and the remaining set members after it,
// sorted by length then lexicographically.
func ordered(first string, set map[string]bool) []string {
	rest := make([]string, 0, len(set))
	for v := range set {
		if v != first {
			rest = append(rest, v)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		if len(rest[i]) != len(rest[j]) {
			return len(rest[i]) < len(rest[j])
		}
		return rest[i] < rest[j]
	})
	return append([]string{first}, rest...)
}
