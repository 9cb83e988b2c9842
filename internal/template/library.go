package template

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var embeddedCatalog []byte

// catalogFile is the on-disk TOML shape: family defaults plus named
// presets, matching the embedded catalog.
type catalogFile struct {
	Defaults  map[string]Template `toml:"defaults"`
	Templates []Template          `toml:"templates"`
}

// Library is the read-only catalog of package families. It is built once
// by Load and never mutated afterwards, so concurrent readers need no
// locking.
type Library struct {
	defaults map[Family]Template
	presets  map[string]*Template
}

// Load builds the library from the embedded catalog, then overlays any
// *.toml files found in dir (empty dir = embedded only). User presets
// with the same name replace embedded ones.
func Load(dir string) (*Library, error) {
	lib := &Library{
		defaults: make(map[Family]Template),
		presets:  make(map[string]*Template),
	}

	if err := lib.merge(embeddedCatalog, "embedded catalog"); err != nil {
		return nil, err
	}

	if dir == "" {
		return lib, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return nil, fmt.Errorf("reading catalog dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
		if err := lib.merge(data, path); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func (l *Library) merge(data []byte, source string) error {
	var cat catalogFile
	if err := toml.Unmarshal(data, &cat); err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}
	for fam, def := range cat.Defaults {
		def.Family = Family(fam)
		l.defaults[Family(fam)] = def
	}
	for i := range cat.Templates {
		t := cat.Templates[i]
		if t.Name == "" {
			return fmt.Errorf("%s: preset %d has no name", source, i)
		}
		if _, ok := l.defaults[t.Family]; !ok {
			return fmt.Errorf("%s: preset %q: %w: family %q", source, t.Name, ErrTemplateNotFound, t.Family)
		}
		l.presets[t.Name] = &t
	}
	return nil
}

// Families returns the known family tags, sorted.
func (l *Library) Families() []Family {
	fams := make([]Family, 0, len(l.defaults))
	for f := range l.defaults {
		fams = append(fams, f)
	}
	sort.Slice(fams, func(i, j int) bool { return fams[i] < fams[j] })
	return fams
}

// Lookup returns the parameter schema for a family: a template carrying
// the family's default dimensions, to be completed by the caller and
// checked with Validate.
func (l *Library) Lookup(family Family) (*Template, error) {
	def, ok := l.defaults[family]
	if !ok {
		return nil, fmt.Errorf("%w: family %q", ErrTemplateNotFound, family)
	}
	t := def // copy; the caller owns the returned value
	return &t, nil
}

// Preset returns the named catalog template (e.g. "LQFP-64"). The
// returned template is shared and must not be modified.
func (l *Library) Preset(name string) (*Template, error) {
	t, ok := l.presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: preset %q", ErrTemplateNotFound, name)
	}
	return t, nil
}

// Presets returns all preset names, sorted.
func (l *Library) Presets() []string {
	names := make([]string, 0, len(l.presets))
	for n := range l.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve finds a template by preset name first, then by family tag with
// defaults. It is the lookup used by the CLI, where the argument may be
// either form.
func (l *Library) Resolve(nameOrFamily string) (*Template, error) {
	if t, err := l.Preset(nameOrFamily); err == nil {
		return t, nil
	}
	return l.Lookup(Family(strings.ToUpper(nameOrFamily)))
}
