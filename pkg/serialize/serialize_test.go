package serialize_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eng618/wfc-loom/pkg/catalog"
	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
	"github.com/eng618/wfc-loom/pkg/serialize"
)

func threeCellPalette() (*catalog.Repository, []*model.MetaPattern) {
	repo := catalog.NewRepository()
	palette := make([]*model.MetaPattern, 2)
	for i := range palette {
		palette[i] = &model.MetaPattern{UID: i, Rules: model.NewRuleSet()}
		_ = repo.Add(palette[i])
	}
	for _, mp := range palette {
		for _, d := range model.AllDirections {
			for _, other := range palette {
				mp.Rules.Add(d, other.UID)
			}
		}
	}
	return repo, palette
}

// TestSerializeThreeCellGrid checks the S5 line format on a 3-row,
// 1-column grid: serialize(g, dir, "t") produces exactly 3 lines, one uid
// each, with the empty cell written as -1.
func TestSerializeThreeCellGrid(t *testing.T) {
	_, palette := threeCellPalette()
	g := grid.New(3, 1, palette)
	g.Place(model.Point{X: 0, Y: 0}, palette[0])
	g.Place(model.Point{X: 1, Y: 0}, palette[1])
	// leave row 2 empty

	dir := t.TempDir()
	path, err := serialize.Serialize(g, dir, "t")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0\n1\n-1\n", string(data))
}

func TestSerializeRoundTripPreservesGridContents(t *testing.T) {
	repo, palette := threeCellPalette()
	g := grid.New(2, 2, palette)
	g.Place(model.Point{X: 0, Y: 0}, palette[0])
	g.Place(model.Point{X: 1, Y: 1}, palette[1])

	dir := t.TempDir()
	path, err := serialize.Serialize(g, dir, "roundtrip")
	require.NoError(t, err)

	restored, err := serialize.Deserialize(path, repo, 2, 2)
	require.NoError(t, err)

	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			p := model.Point{X: x, Y: y}
			want := g.At(p)
			got := restored.At(p)
			if want == nil {
				assert.Nil(t, got)
				continue
			}
			require.NotNil(t, got)
			assert.Equal(t, want.UID, got.UID)
		}
	}
}

func TestDeserializeRowCountMismatch(t *testing.T) {
	_, palette := threeCellPalette()
	g := grid.New(1, 1, palette)

	dir := t.TempDir()
	path, err := serialize.Serialize(g, dir, "onecell")
	require.NoError(t, err)

	repo := catalog.NewRepository()
	_ = repo.Add(palette[0])
	_, err = serialize.Deserialize(path, repo, 2, 1)
	assert.Error(t, err)
}

func TestDeserializeUnknownUID(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.dat"
	require.NoError(t, os.WriteFile(path, []byte("5\n"), 0o644))

	repo := catalog.NewRepository()
	_, err := serialize.Deserialize(path, repo, 1, 1)
	assert.Error(t, err)
}

func TestDeserializeFileMissing(t *testing.T) {
	repo := catalog.NewRepository()
	_, err := serialize.Deserialize("/nonexistent/path.dat", repo, 1, 1)
	assert.Error(t, err)
}
