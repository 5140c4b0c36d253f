// Package catalog holds the immutable platform and site-definition catalogs.
// Both are loaded once at process start and shared read-only across all
// concurrent verifications.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/accountlens/accountlens/internal/core"
)

// Platform describes one curated platform and how to probe it.
type Platform struct {
	ID                string               `yaml:"id" json:"id"`
	Name              string               `yaml:"name" json:"name"`
	Category          string               `yaml:"category" json:"category"`
	Tier              int                  `yaml:"tier" json:"tier"`
	Enabled           bool                 `yaml:"enabled" json:"enabled"`
	URLTemplate       string               `yaml:"url_template" json:"url_template"`
	Method            core.DetectionMethod `yaml:"method" json:"method"`
	APIEndpoint       string               `yaml:"api_endpoint,omitempty" json:"api_endpoint,omitempty"`
	NotFoundFragments []string             `yaml:"not_found_indicators,omitempty" json:"not_found_indicators,omitempty"`
}

// ProfileURL renders the public profile URL for a username.
func (p Platform) ProfileURL(username string) string {
	return strings.ReplaceAll(p.URLTemplate, "{username}", username)
}

// EndpointURL renders the API endpoint URL for a username.
func (p Platform) EndpointURL(username string) string {
	return strings.ReplaceAll(p.APIEndpoint, "{username}", username)
}

// Platforms is the loaded platform catalog.
type Platforms struct {
	byID  map[string]Platform
	order []string
}

type platformsFile struct {
	Platforms []Platform `yaml:"platforms"`
}

// NewPlatforms builds a catalog from explicit descriptors only, without the
// built-in set.
func NewPlatforms(platforms []Platform) *Platforms {
	c := &Platforms{byID: make(map[string]Platform, len(platforms))}
	for _, p := range platforms {
		c.add(p)
	}
	return c
}

// LoadPlatforms builds the catalog from the built-in descriptors, optionally
// merged with overrides from a YAML file. Overrides replace built-in entries
// with the same id and append new ones.
func LoadPlatforms(path string) (*Platforms, error) {
	c := &Platforms{byID: make(map[string]Platform)}
	for _, p := range builtinPlatforms {
		c.add(p)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read platform catalog: %w", err)
		}
		var file platformsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse platform catalog: %w", err)
		}
		for _, p := range file.Platforms {
			if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.URLTemplate) == "" {
				continue
			}
			c.add(p)
		}
	}

	return c, nil
}

func (c *Platforms) add(p Platform) {
	if _, exists := c.byID[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.byID[p.ID] = p
}

// Get returns a platform by id.
func (c *Platforms) Get(id string) (Platform, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Enabled returns enabled platforms, optionally filtered by tier, sorted by
// (tier, name).
func (c *Platforms) Enabled(tiers []int) []Platform {
	wanted := make(map[int]bool, len(tiers))
	for _, t := range tiers {
		wanted[t] = true
	}

	platforms := make([]Platform, 0, len(c.order))
	for _, id := range c.order {
		p := c.byID[id]
		if !p.Enabled {
			continue
		}
		if len(wanted) > 0 && !wanted[p.Tier] {
			continue
		}
		platforms = append(platforms, p)
	}

	sort.Slice(platforms, func(i, j int) bool {
		if platforms[i].Tier != platforms[j].Tier {
			return platforms[i].Tier < platforms[j].Tier
		}
		return platforms[i].Name < platforms[j].Name
	})
	return platforms
}

// All returns every platform in load order.
func (c *Platforms) All() []Platform {
	platforms := make([]Platform, 0, len(c.order))
	for _, id := range c.order {
		platforms = append(platforms, c.byID[id])
	}
	return platforms
}

// EnabledCount reports how many platforms are enabled.
func (c *Platforms) EnabledCount() int {
	count := 0
	for _, p := range c.byID {
		if p.Enabled {
			count++
		}
	}
	return count
}
