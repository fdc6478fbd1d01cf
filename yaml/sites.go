// Package yaml loads the declarative site table from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/repometa"
	"gopkg.in/yaml.v3"
)

// siteFile is the on-disk layout of a site table.
//
//	sites:
//	  - url: repositorio.example.br
//	    family: dspace7
//	    acronym: UFX
//	    name: Universidade Federal X
type siteFile struct {
	Sites []siteEntry `yaml:"sites"`
}

type siteEntry struct {
	URL     string `yaml:"url"`
	Family  string `yaml:"family"`
	Acronym string `yaml:"acronym"`
	Name    string `yaml:"name"`
}

// LoadSites reads the site table at path. An empty path or a missing file
// yields an empty table. Entries with an unknown family or no URL are rejected with
// EINVALID.
func LoadSites(path string) ([]repometa.SiteEntry, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open site table: %w", err)
	}
	defer f.Close()

	return DecodeSites(f)
}

// DecodeSites parses a site table from r.
func DecodeSites(r io.Reader) ([]repometa.SiteEntry, error) {
	var file siteFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, repometa.Errorf(repometa.EINVALID, "parse site table: %v", err)
	}

	sites := make([]repometa.SiteEntry, 0, len(file.Sites))
	for i, raw := range file.Sites {
		family, err := repometa.ParseFamily(raw.Family)
		if err != nil {
			return nil, repometa.Errorf(repometa.EINVALID, "site %d (%s): %s", i+1, raw.URL, repometa.ErrorMessage(err))
		}
		entry := repometa.SiteEntry{
			URL:     raw.URL,
			Family:  family,
			Acronym: raw.Acronym,
			Name:    raw.Name,
		}
		if err := entry.Validate(); err != nil {
			return nil, repometa.Errorf(repometa.EINVALID, "site %d: %s", i+1, repometa.ErrorMessage(err))
		}
		sites = append(sites, entry)
	}
	return sites, nil
}

// EncodeSites writes sites in the format read by DecodeSites.
func EncodeSites(w io.Writer, sites []repometa.SiteEntry) error {
	file := siteFile{Sites: make([]siteEntry, 0, len(sites))}
	for _, s := range sites {
		file.Sites = append(file.Sites, siteEntry{
			URL:     s.URL,
			Family:  string(s.Family),
			Acronym: s.Acronym,
			Name:    s.Name,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return err
	}
	return enc.Close()
}
