// Package maps loads tile catalogs and world maps, either from files or from
// the built-in assets.
package maps

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

//go:embed assets/catalog.yaml
var defaultCatalogYAML []byte

//go:embed assets/world.map
var defaultWorldMap []byte

// ErrCatalog is wrapped by every catalog decoding failure.
var ErrCatalog = errors.New("maps: invalid tile catalog")

type catalogFile struct {
	Tiles []tileEntry `yaml:"tiles"`
}

type tileEntry struct {
	Name      string `yaml:"name"`
	Glyph     string `yaml:"glyph"`
	Color     string `yaml:"color"`
	Collision bool   `yaml:"collision"`
}

// LoadCatalog decodes a YAML tile catalog.
func LoadCatalog(r io.Reader) (*world.Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalog, err)
	}
	if len(f.Tiles) == 0 {
		return nil, fmt.Errorf("%w: no tiles", ErrCatalog)
	}

	types := make([]world.TileType, len(f.Tiles))
	for i, t := range f.Tiles {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: tile %d has no name", ErrCatalog, i)
		}
		if utf8.RuneCountInString(t.Glyph) != 1 {
			return nil, fmt.Errorf("%w: tile %d (%s) glyph %q must be one character", ErrCatalog, i, t.Name, t.Glyph)
		}
		glyph, _ := utf8.DecodeRuneInString(t.Glyph)
		color := core.ColorDefault
		if t.Color != "" {
			c, ok := core.ParseColor(t.Color)
			if !ok {
				return nil, fmt.Errorf("%w: tile %d (%s) unknown color %q", ErrCatalog, i, t.Name, t.Color)
			}
			color = c
		}
		types[i] = world.TileType{Name: t.Name, Glyph: glyph, Color: color, Collision: t.Collision}
	}
	return world.NewCatalog(types), nil
}

// DefaultCatalog returns the built-in tile catalog.
func DefaultCatalog() (*world.Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalogYAML))
}

// DefaultMap parses the built-in world against c.
func DefaultMap(c *world.Catalog) (*world.Grid, error) {
	return world.LoadMap(bytes.NewReader(defaultWorldMap), c)
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*world.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("maps: open catalog: %w", err)
	}
	defer f.Close()
	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadMapFile reads and validates a map from disk.
func LoadMapFile(path string, c *world.Catalog) (*world.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("maps: open map: %w", err)
	}
	defer f.Close()
	g, err := world.LoadMap(f, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Load resolves the catalog and map named by cfg, falling back to the
// built-in assets, and checks the map against the expected dimensions.
func Load(cfg config.WorldConfig) (*world.Grid, *world.Catalog, error) {
	var (
		catalog *world.Catalog
		err     error
	)
	if cfg.Catalog != "" {
		catalog, err = LoadCatalogFile(cfg.Catalog)
	} else {
		catalog, err = DefaultCatalog()
	}
	if err != nil {
		return nil, nil, err
	}

	var grid *world.Grid
	if cfg.Map != "" {
		grid, err = LoadMapFile(cfg.Map, catalog)
	} else {
		grid, err = DefaultMap(catalog)
	}
	if err != nil {
		return nil, nil, err
	}

	if (cfg.Cols > 0 && grid.Cols() != cfg.Cols) || (cfg.Rows > 0 && grid.Rows() != cfg.Rows) {
		return nil, nil, fmt.Errorf("%w: map is %dx%d, config expects %dx%d",
			world.ErrMapDimensions, grid.Cols(), grid.Rows(), cfg.Cols, cfg.Rows)
	}
	return grid, catalog, nil
}
