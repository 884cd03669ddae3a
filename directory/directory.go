// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/danielhkuo/polling-watch/models"
)

// Unknown is used for location fields that cannot be resolved.
const Unknown = "N/A"

var (
	ErrDuplicateUnit = errors.New("duplicate polling unit")
	ErrEmptyName     = errors.New("polling unit name is required")
)

// Directory is the immutable list of known polling units, keyed by name.
type Directory struct {
	units  []models.PollingUnit
	byName map[string]int
}

// New builds a directory from units, preserving their order.
func New(units []models.PollingUnit) (*Directory, error) {
	d := &Directory{
		units:  make([]models.PollingUnit, 0, len(units)),
		byName: make(map[string]int, len(units)),
	}
	for _, pu := range units {
		pu.Name = strings.TrimSpace(pu.Name)
		if pu.Name == "" {
			return nil, ErrEmptyName
		}
		if _, exists := d.byName[pu.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnit, pu.Name)
		}
		d.byName[pu.Name] = len(d.units)
		d.units = append(d.units, pu)
	}
	return d, nil
}

// Default returns the built-in Jigawa directory.
func Default() *Directory {
	d, err := New(defaultUnits)
	if err != nil {
		panic(err)
	}
	return d
}

// LoadCSV reads a directory with a name,lga,ward header row.
func LoadCSV(r io.Reader) (*Directory, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read directory header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "lga", "ward"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("directory header missing column %q", required)
		}
	}

	var units []models.PollingUnit
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read directory row: %w", err)
		}
		units = append(units, models.PollingUnit{
			Name: row[cols["name"]],
			LGA:  strings.TrimSpace(row[cols["lga"]]),
			Ward: strings.TrimSpace(row[cols["ward"]]),
		})
	}

	return New(units)
}

// LoadFile opens path and parses it with LoadCSV.
func LoadFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory file: %w", err)
	}
	defer f.Close()

	return LoadCSV(f)
}

// Len returns the number of polling units. A nil directory is empty.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.units)
}

// Lookup finds a polling unit by exact name.
func (d *Directory) Lookup(name string) (models.PollingUnit, bool) {
	if d == nil {
		return models.PollingUnit{}, false
	}
	i, ok := d.byName[name]
	if !ok {
		return models.PollingUnit{}, false
	}
	return d.units[i], true
}

// Units returns a copy of all polling units in directory order.
func (d *Directory) Units() []models.PollingUnit {
	if d == nil {
		return []models.PollingUnit{}
	}
	out := make([]models.PollingUnit, len(d.units))
	copy(out, d.units)
	return out
}

// Locate returns the ward and LGA for a polling unit name. Names missing from
// the directory fall back to ward N/A and the text after the first ", ".
func (d *Directory) Locate(name string) (ward, lga string) {
	if pu, ok := d.Lookup(name); ok {
		return pu.Ward, pu.LGA
	}
	lga = Unknown
	if _, rest, found := strings.Cut(name, ", "); found && rest != "" {
		lga = rest
	}
	return Unknown, lga
}

// Enrich overwrites the record's ward and LGA from the directory.
func (d *Directory) Enrich(r *models.ResultRecord) {
	r.Ward, r.LGA = d.Locate(r.PollingUnit)
}

// LGAs returns the distinct LGA names, sorted.
func (d *Directory) LGAs() []string {
	if d == nil {
		return []string{}
	}
	return uniqueSorted(d.units, func(pu models.PollingUnit) (string, bool) {
		return pu.LGA, true
	})
}

// Wards returns the distinct ward names of one LGA, sorted.
func (d *Directory) Wards(lga string) []string {
	if d == nil || lga == "" {
		return []string{}
	}
	return uniqueSorted(d.units, func(pu models.PollingUnit) (string, bool) {
		return pu.Ward, pu.LGA == lga
	})
}

func uniqueSorted(units []models.PollingUnit, pick func(models.PollingUnit) (string, bool)) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, pu := range units {
		v, ok := pick(pu)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
