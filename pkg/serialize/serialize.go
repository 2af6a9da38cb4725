// Package serialize implements the bit-exact ".dat" grid format (§6): one
// line per row, top-to-bottom, each line a comma-separated list of uids
// left-to-right, empty cells written as -1. Grounded on
// pkg/common/backup.go's file-writing idiom and
// original_source/project/wfc/serialize.py.
package serialize

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eng618/wfc-loom/pkg/catalog"
	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
	"github.com/eng618/wfc-loom/pkg/wfclog"
)

// Serialize writes g's uids to <dir>/<name>.dat and returns the path.
func Serialize(g *grid.Grid, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("serialize: create dir: %w", err)
	}

	path := filepath.Join(dir, name+".dat")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("serialize: create file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for x := 0; x < g.Height; x++ {
		uids := make([]string, g.Width)
		for y := 0; y < g.Width; y++ {
			p := model.Point{X: x, Y: y}
			if pat := g.At(p); pat != nil {
				uids[y] = strconv.Itoa(pat.UID)
			} else {
				uids[y] = strconv.Itoa(model.HiddenUID)
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(uids, ",")); err != nil {
			return "", fmt.Errorf("serialize: write row %d: %w", x, err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("serialize: flush: %w", err)
	}

	wfclog.Verbose("Serialized grid to: %s", path)
	return path, nil
}

// Deserialize reads a ".dat" file at path into a new Grid sized
// height x width, resolving each uid via repo. A -1 entry leaves the cell
// empty.
func Deserialize(path string, repo catalog.PatternCatalog, height, width int) (*grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deserialize: read file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != height {
		return nil, fmt.Errorf("deserialize: expected %d rows, got %d", height, len(lines))
	}

	g := grid.New(height, width, repo.AllPatterns())
	g.Initialize()

	for x, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != width {
			return nil, fmt.Errorf("deserialize: row %d: expected %d cols, got %d", x, width, len(fields))
		}
		for y, field := range fields {
			uid, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("deserialize: row %d col %d: %w", x, y, err)
			}
			if uid == model.HiddenUID {
				continue
			}
			pattern, ok := repo.ByUID(uid)
			if !ok {
				return nil, fmt.Errorf("deserialize: row %d col %d: unknown uid %d", x, y, uid)
			}
			g.Place(model.Point{X: x, Y: y}, pattern)
		}
	}

	return g, nil
}
