package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Site is one externally-sourced existence-detection rule in the
// WhatsMyName data format: a check URL plus status/string signatures for the
// exists and missing cases.
type Site struct {
	Name          string            `json:"name"`
	CheckURL      string            `json:"uri_check"`
	PrettyURL     string            `json:"uri_pretty,omitempty"`
	ExistsCode    int               `json:"e_code"`
	ExistsString  string            `json:"e_string,omitempty"`
	MissingCode   int               `json:"m_code"`
	MissingString string            `json:"m_string,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	Category      string            `json:"cat,omitempty"`
	Known         []string          `json:"known,omitempty"`
}

// ID derives the platform id from the site name.
func (s Site) ID() string {
	id := strings.ToLower(s.Name)
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "/", "_")
	return id
}

// URLFor renders the check URL for a username. The placeholder may occur
// more than once; every occurrence is replaced.
func (s Site) URLFor(username string) string {
	return strings.ReplaceAll(s.CheckURL, "{account}", username)
}

// ProfileURL renders the human-facing profile URL, preferring the pretty
// template when present.
func (s Site) ProfileURL(username string) string {
	template := s.PrettyURL
	if template == "" {
		template = s.CheckURL
	}
	return strings.ReplaceAll(template, "{account}", username)
}

// Sites is the loaded site-definition catalog.
type Sites struct {
	byID  map[string]Site
	order []string
}

type sitesFile struct {
	Sites []json.RawMessage `json:"sites"`
}

// LoadSites reads a WhatsMyName-format JSON file. Entries missing a name or
// check URL are skipped rather than failing the whole load; absent codes
// default to 200/404.
func LoadSites(path string) (*Sites, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open site definitions: %w", err)
	}
	defer f.Close()
	return ReadSites(f)
}

// ReadSites parses site definitions from a reader.
func ReadSites(r io.Reader) (*Sites, error) {
	var file sitesFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse site definitions: %w", err)
	}

	catalog := &Sites{byID: make(map[string]Site, len(file.Sites))}
	for _, raw := range file.Sites {
		site := Site{ExistsCode: 200, MissingCode: 404}
		if err := json.Unmarshal(raw, &site); err != nil {
			continue
		}
		if strings.TrimSpace(site.Name) == "" || strings.TrimSpace(site.CheckURL) == "" {
			continue
		}
		id := site.ID()
		if _, exists := catalog.byID[id]; !exists {
			catalog.order = append(catalog.order, id)
		}
		catalog.byID[id] = site
	}
	return catalog, nil
}

// EmptySites returns a catalog with no entries, for when no dataset is
// configured.
func EmptySites() *Sites {
	return &Sites{byID: make(map[string]Site)}
}

// Get returns a site by derived id.
func (c *Sites) Get(id string) (Site, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// All returns every site in file order.
func (c *Sites) All() []Site {
	sites := make([]Site, 0, len(c.order))
	for _, id := range c.order {
		sites = append(sites, c.byID[id])
	}
	return sites
}

// Len reports the number of loaded sites.
func (c *Sites) Len() int {
	return len(c.order)
}
