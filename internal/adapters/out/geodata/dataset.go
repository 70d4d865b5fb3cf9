// Package geodata serves the administrative units of Bangladesh from an
// embedded YAML document. It implements address.Dataset.
package geodata

import (
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed bangladesh.yaml
var bangladeshYAML string

type document struct {
	Divisions []struct {
		Name      string `yaml:"name"`
		Districts []struct {
			Name     string   `yaml:"name"`
			Upazilas []string `yaml:"upazilas"`
		} `yaml:"districts"`
	} `yaml:"divisions"`
}

// Dataset is an immutable division > district > upazila tree. Lookups of
// unknown names return nil.
type Dataset struct {
	divisions    []string
	districts    map[string][]string
	subDistricts map[string][]string
}

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
	errDefault     error
)

// Default returns the embedded Bangladesh dataset, parsed once.
func Default() (*Dataset, error) {
	defaultOnce.Do(func() {
		defaultDataset, errDefault = Load(strings.NewReader(bangladeshYAML))
	})
	return defaultDataset, errDefault
}

// Load parses a dataset document. Names must be non-empty; division names
// must be unique and district names must be unique across the whole tree.
func Load(r io.Reader) (*Dataset, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode address dataset: %w", err)
	}

	ds := &Dataset{
		divisions:    make([]string, 0, len(doc.Divisions)),
		districts:    make(map[string][]string, len(doc.Divisions)),
		subDistricts: make(map[string][]string),
	}

	for _, division := range doc.Divisions {
		name := strings.TrimSpace(division.Name)
		if name == "" {
			return nil, fmt.Errorf("address dataset: division without a name")
		}
		if _, dup := ds.districts[name]; dup {
			return nil, fmt.Errorf("address dataset: duplicate division %q", name)
		}

		districts := make([]string, 0, len(division.Districts))
		for _, district := range division.Districts {
			dname := strings.TrimSpace(district.Name)
			if dname == "" {
				return nil, fmt.Errorf("address dataset: district without a name in %q", name)
			}
			if _, dup := ds.subDistricts[dname]; dup {
				return nil, fmt.Errorf("address dataset: duplicate district %q", dname)
			}
			districts = append(districts, dname)
			ds.subDistricts[dname] = slices.Clone(district.Upazilas)
		}

		ds.divisions = append(ds.divisions, name)
		ds.districts[name] = districts
	}

	return ds, nil
}

// Divisions returns all divisions in document order.
func (d *Dataset) Divisions() []string {
	return slices.Clone(d.divisions)
}

// DistrictsOf returns the districts of division.
func (d *Dataset) DistrictsOf(division string) []string {
	return slices.Clone(d.districts[division])
}

// SubDistrictsOf returns the upazilas of district.
func (d *Dataset) SubDistrictsOf(district string) []string {
	return slices.Clone(d.subDistricts[district])
}
