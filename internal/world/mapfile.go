package world

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseMap reads a layered map in text form. Each non-blank line is one row
// of whitespace-separated tile indices; the file holds every row of layer 0,
// then layer 1, then layer 2. Lines starting with '#' are comments.
//
// Width is taken from the first row and height from the row count divided by
// LayerCount. Ragged rows or a row count that does not split evenly into
// layers yield ErrMapDimensions.
func ParseMap(r io.Reader) (*Grid, error) {
	var rows [][]int
	cols := -1

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if cols < 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d",
				ErrMapDimensions, lineNo, len(fields), cols)
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("world: map line %d column %d: %w", lineNo, i, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("world: read map: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrMapDimensions)
	}
	if len(rows)%LayerCount != 0 {
		return nil, fmt.Errorf("%w: %d rows do not split into %d layers",
			ErrMapDimensions, len(rows), LayerCount)
	}

	height := len(rows) / LayerCount
	g, err := NewGrid(cols, height)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		layer, r := i/height, i%height
		for c, v := range row {
			g.SetTile(layer, c, r, v)
		}
	}
	return g, nil
}

// LoadMap parses a map and validates it against the catalog.
func LoadMap(r io.Reader, c *Catalog) (*Grid, error) {
	g, err := ParseMap(r)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(c); err != nil {
		return nil, err
	}
	return g, nil
}
