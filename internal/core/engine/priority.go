package engine

import (
	"sort"
	"strings"

	"github.com/accountlens/accountlens/internal/core/catalog"
)

// High-traffic names are probed first so the result stream surfaces the
// answers users care about most while slower sites are still in flight.
// Unmatched names keep their relative order after all matched ones.
var priorityPlatforms = []string{
	"github",
	"twitter",
	"instagram",
	"reddit",
	"tiktok",
	"youtube",
	"bluesky",
	"facebook",
	"linkedin",
	"twitch",
}

var prioritySites = []string{
	"github",
	"tiktok",
	"snapchat",
	"spotify",
	"telegram",
	"steam",
	"flickr",
	"vimeo",
	"slack",
	"giphy",
}

func priorityIndex(list []string, name string) int {
	lower := strings.ToLower(name)
	for i, candidate := range list {
		if candidate == lower {
			return i
		}
	}
	return len(list)
}

func orderPlatforms(platforms []catalog.Platform) {
	sort.SliceStable(platforms, func(i, j int) bool {
		return priorityIndex(priorityPlatforms, platforms[i].ID) < priorityIndex(priorityPlatforms, platforms[j].ID)
	})
}

func orderSites(sites []catalog.Site) {
	sort.SliceStable(sites, func(i, j int) bool {
		return priorityIndex(prioritySites, sites[i].ID()) < priorityIndex(prioritySites, sites[j].ID())
	})
}
