package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/maps"
	"github.com/vovakirdan/tilequest/internal/world"
)

var flagCheckCatalog string

var checkMapCmd = &cobra.Command{
	Use:   "check-map <file>",
	Short: "Validate a map file against a tile catalog",
	Long: `Parse a map file, check every cell against the tile catalog and print
a per-layer summary. Exits non-zero when the map is malformed.

Examples:
  tilequest check-map ./world.map
  tilequest check-map ./cave.map --catalog ./cave.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckMap,
}

func init() {
	checkMapCmd.Flags().StringVar(&flagCheckCatalog, "catalog", "", "Tile catalog file (default: built-in tiles)")
}

func runCheckMap(_ *cobra.Command, args []string) error {
	var (
		catalog *world.Catalog
		err     error
	)
	if flagCheckCatalog != "" {
		catalog, err = maps.LoadCatalogFile(flagCheckCatalog)
	} else {
		catalog, err = maps.DefaultCatalog()
	}
	if err != nil {
		return err
	}

	grid, err := maps.LoadMapFile(args[0], catalog)
	if err != nil {
		return err
	}

	stats := grid.Stats(catalog)
	fmt.Printf("%s: %dx%d tiles, %d tile types\n", args[0], grid.Cols(), grid.Rows(), catalog.Len())
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %s\n", "Layer", "Tiles", "Solid")
	fmt.Printf("  %-10s  %-6s  %s\n", "-----", "-----", "-----")
	for layer, name := range []string{"ground", "decoration", "overhead"} {
		fmt.Printf("  %-10s  %-6d  %d\n", name, stats.Filled[layer], stats.Collidable[layer])
	}
	logger.Debug("map checked", "path", args[0], "cols", grid.Cols(), "rows", grid.Rows())
	return nil
}
