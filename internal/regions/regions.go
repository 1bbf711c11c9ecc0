// Package regions maps world regions to the Seshat study sites (NGAs) they
// contain, for each dataset release.
package regions

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/MichaelHoltonPrice/pyseshat/internal/dataset"
)

// Region is a named world region and its NGAs in curated order.
type Region struct {
	Name  string   `yaml:"name" json:"name"`
	Sites []string `yaml:"sites" json:"sites"`
}

//go:embed regions.yaml
var registryYAML []byte

type registryFile struct {
	Versions map[string][]Region `yaml:"versions"`
}

// registry is decoded once and never mutated; accessors hand out copies.
var registry = mustDecode(registryYAML)

func mustDecode(data []byte) map[string][]Region {
	reg, err := decode(data)
	if err != nil {
		panic(fmt.Sprintf("regions: %v", err))
	}
	return reg
}

// decode parses a registry document and checks that every version is known
// and that no site is listed under more than one region.
func decode(data []byte) (map[string][]Region, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	for version, regs := range f.Versions {
		if err := dataset.ValidateVersion(version); err != nil {
			return nil, err
		}
		seen := map[string]string{}
		for _, r := range regs {
			for _, s := range r.Sites {
				if prev, ok := seen[s]; ok {
					return nil, fmt.Errorf("%s: site %q listed under both %q and %q", version, s, prev, r.Name)
				}
				seen[s] = r.Name
			}
		}
	}
	for _, v := range dataset.Versions() {
		if _, ok := f.Versions[v]; !ok {
			return nil, fmt.Errorf("no regions for version %s", v)
		}
	}
	return f.Versions, nil
}

// For returns the regions of version in curated order.
func For(version string) ([]Region, error) {
	if err := dataset.ValidateVersion(version); err != nil {
		return nil, err
	}
	src := registry[version]
	out := make([]Region, len(src))
	for i, r := range src {
		out[i] = Region{Name: r.Name, Sites: slices.Clone(r.Sites)}
	}
	return out, nil
}

// Map returns the region-to-sites mapping of version.
func Map(version string) (map[string][]string, error) {
	regs, err := For(version)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(regs))
	for _, r := range regs {
		out[r.Name] = r.Sites
	}
	return out, nil
}

// AllSites returns every NGA of version, sorted ascending.
func AllSites(version string) ([]string, error) {
	regs, err := For(version)
	if err != nil {
		return nil, err
	}
	var sites []string
	for _, r := range regs {
		sites = append(sites, r.Sites...)
	}
	sort.Strings(sites)
	return sites, nil
}

// RegionOf returns the region containing site in version.
func RegionOf(version, site string) (string, error) {
	if err := dataset.ValidateVersion(version); err != nil {
		return "", err
	}
	for _, r := range registry[version] {
		if slices.Contains(r.Sites, site) {
			return r.Name, nil
		}
	}
	return "", &dataset.InvalidArgumentError{Param: version + " site", Value: site, Allowed: mustAllSites(version)}
}

func mustAllSites(version string) []string {
	sites, _ := AllSites(version)
	return sites
}
