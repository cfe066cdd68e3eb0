// Package contacts loads the per-city contact files that outreach reminders
// are matched against. Each file is "<City Name>.txt" with one contact per
// line, "Name — optional note".
package contacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tripcheck/internal/geo"
)

// Contact is one line of a city file.
type Contact struct {
	Name string
	Note string
}

// City is one contact file, keyed by its normalized filename.
type City struct {
	Key      string // normalized, e.g. "new orleans, la"
	Display  string // filename without extension, as the user wrote it
	Contacts []Contact
}

// Directory is the loaded contacts directory.
type Directory struct {
	cities map[string]City
}

// Load reads every .txt file in dir. Filenames are the city identity; the
// file contents are opaque contact lines.
func Load(dir string) (*Directory, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read contacts dir %s: %w", dir, err)
	}

	cities := map[string]City{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		display := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		key := geo.Normalize(display)
		if key == "" {
			continue
		}

		list, err := parseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		cities[key] = City{Key: key, Display: display, Contacts: list}
	}

	return &Directory{cities: cities}, nil
}

// Keys returns the normalized city keys in sorted order.
func (d *Directory) Keys() []string {
	out := make([]string, 0, len(d.cities))
	for k := range d.cities {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (d *Directory) Get(key string) (City, bool) {
	c, ok := d.cities[key]
	return c, ok
}

func (d *Directory) Len() int {
	return len(d.cities)
}

func parseFile(path string) ([]Contact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contacts file %s: %w", path, err)
	}

	var out []Contact
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, parseLine(line))
	}
	return out, nil
}

// parseLine splits "Name — note" on the first em-dash. The note is optional.
func parseLine(line string) Contact {
	name, note, _ := strings.Cut(line, "—")
	return Contact{
		Name: strings.TrimSpace(name),
		Note: strings.TrimSpace(note),
	}
}
