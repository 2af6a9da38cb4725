// Package grid implements the constraint propagator: the entropy field,
// valid-pattern computation, and the cascading BFS update that follows a
// placement or a reset (§4.1).
package grid

import (
	"github.com/eng618/wfc-loom/pkg/model"
)

// NeighborDir pairs a neighbor point with the direction from the origin
// point to that neighbor.
type NeighborDir struct {
	Point     model.Point
	Direction model.Direction
}

// Grid is the mutable height x width array of optional MetaPattern plus its
// parallel entropy field (§3).
type Grid struct {
	Height  int
	Width   int
	palette []*model.MetaPattern

	cells   []*model.MetaPattern // row-major, len == Height*Width
	entropy []int                // row-major, len == Height*Width

	// tabu holds, per cell, the uids a rollback penalty has permanently
	// forbidden at that site for the remainder of the generation (§4.5).
	tabu map[model.Point]map[int]struct{}
}

// New constructs a Grid over the given palette and immediately initializes
// it (all cells empty, entropy = len(palette) everywhere).
func New(height, width int, palette []*model.MetaPattern) *Grid {
	g := &Grid{Height: height, Width: width, palette: palette}
	g.Initialize()
	return g
}

// Initialize resets the array to all-empty and the entropy field to
// len(palette) everywhere, and clears any accumulated rollback tabus.
func (g *Grid) Initialize() {
	n := g.Height * g.Width
	g.cells = make([]*model.MetaPattern, n)
	g.entropy = make([]int, n)
	for i := range g.entropy {
		g.entropy[i] = len(g.palette)
	}
	g.tabu = make(map[model.Point]map[int]struct{})
}

func (g *Grid) index(p model.Point) int {
	return p.X*g.Width + p.Y
}

// At returns the MetaPattern placed at p, or nil if p is empty.
func (g *Grid) At(p model.Point) *model.MetaPattern {
	return g.cells[g.index(p)]
}

// EntropyAt returns the entropy recorded for p.
func (g *Grid) EntropyAt(p model.Point) int {
	return g.entropy[g.index(p)]
}

// IsCollapsed reports whether every cell holds a MetaPattern.
func (g *Grid) IsCollapsed() bool {
	for _, c := range g.cells {
		if c == nil {
			return false
		}
	}
	return true
}

// ZeroEntropyCell returns the first empty cell (row-major scan from (0,0))
// whose entropy is 0 — a contradiction marker (§4.1).
func (g *Grid) ZeroEntropyCell() (model.Point, bool) {
	for x := 0; x < g.Height; x++ {
		for y := 0; y < g.Width; y++ {
			p := model.Point{X: x, Y: y}
			if g.At(p) == nil && g.EntropyAt(p) == 0 {
				return p, true
			}
		}
	}
	return model.Point{}, false
}

// Neighbors returns the up-to-four in-bounds neighbors of p.
func (g *Grid) Neighbors(p model.Point) []model.Point {
	nd := g.NeighborsWithDirection(p)
	out := make([]model.Point, len(nd))
	for i, n := range nd {
		out[i] = n.Point
	}
	return out
}

// NeighborsWithDirection returns the up-to-four in-bounds neighbors of p,
// each paired with the direction from p to that neighbor.
func (g *Grid) NeighborsWithDirection(p model.Point) []NeighborDir {
	out := make([]NeighborDir, 0, 4)
	for _, d := range model.AllDirections {
		dx, dy := d.Delta()
		n := p.Add(dx, dy)
		if n.InBounds(g.Height, g.Width) {
			out = append(out, NeighborDir{Point: n, Direction: d})
		}
	}
	return out
}

// isForbidden reports whether a rollback penalty has forbidden uid at p.
func (g *Grid) isForbidden(p model.Point, uid int) bool {
	forbidden, ok := g.tabu[p]
	if !ok {
		return false
	}
	_, forbid := forbidden[uid]
	return forbid
}

// Forbid permanently excludes uid from the candidate set at p for the
// remainder of the generation (the §4.5 rollback-penalty tabu).
func (g *Grid) Forbid(p model.Point, uid int) {
	if g.tabu[p] == nil {
		g.tabu[p] = make(map[int]struct{})
	}
	g.tabu[p][uid] = struct{}{}
}

// ValidPatterns returns the depth-0 intersection, over every collapsed
// in-bounds neighbor n in direction d from p, of grid[n].Rules[opposite(d)]
// (the neighbor's rule pointing back toward p). Empty neighbors
// contribute no constraint. Candidates forbidden by a rollback tabu at p
// are excluded. The collapse loop uses this by default (§4.1).
func (g *Grid) ValidPatterns(p model.Point) []*model.MetaPattern {
	possible := make(map[int]struct{}, len(g.palette))
	for _, mp := range g.palette {
		possible[mp.UID] = struct{}{}
	}

	for _, nd := range g.NeighborsWithDirection(p) {
		neighbor := g.At(nd.Point)
		if neighbor == nil {
			continue
		}
		allowed := neighbor.Rules.UIDs(nd.Direction.Opposite())
		possible = intersect(possible, allowed)
	}

	return g.materialize(possible, p)
}

// ValidPatternsLookahead is the depth-1 variant (§4.1): when a neighbor is
// empty, it contributes the union, over every pattern still possible at
// that neighbor, of that pattern's rules[opposite(d)] — instead of no constraint at
// all. Collapsed neighbors behave exactly as in ValidPatterns.
func (g *Grid) ValidPatternsLookahead(p model.Point) []*model.MetaPattern {
	possible := make(map[int]struct{}, len(g.palette))
	for _, mp := range g.palette {
		possible[mp.UID] = struct{}{}
	}

	for _, nd := range g.NeighborsWithDirection(p) {
		neighbor := g.At(nd.Point)
		opp := nd.Direction.Opposite()

		if neighbor != nil {
			possible = intersect(possible, neighbor.Rules.UIDs(opp))
			continue
		}

		union := make(map[int]struct{})
		for _, candidate := range g.ValidPatterns(nd.Point) {
			for _, uid := range candidate.Rules.UIDs(opp) {
				union[uid] = struct{}{}
			}
		}
		possible = intersectSet(possible, union)
	}

	return g.materialize(possible, p)
}

func (g *Grid) materialize(uids map[int]struct{}, at model.Point) []*model.MetaPattern {
	out := make([]*model.MetaPattern, 0, len(uids))
	for _, mp := range g.palette {
		if _, ok := uids[mp.UID]; !ok {
			continue
		}
		if g.isForbidden(at, mp.UID) {
			continue
		}
		out = append(out, mp)
	}
	return out
}

func intersect(set map[int]struct{}, allowed []int) map[int]struct{} {
	allowedSet := make(map[int]struct{}, len(allowed))
	for _, uid := range allowed {
		allowedSet[uid] = struct{}{}
	}
	return intersectSet(set, allowedSet)
}

func intersectSet(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for uid := range a {
		if _, ok := b[uid]; ok {
			out[uid] = struct{}{}
		}
	}
	return out
}

// Place sets grid[p] = pattern and zeroes its entropy.
func (g *Grid) Place(p model.Point, pattern *model.MetaPattern) {
	g.cells[g.index(p)] = pattern
	g.entropy[g.index(p)] = 0
}

// Reset clears p back to empty, restores its entropy to len(palette), and
// re-propagates from p (§4.1).
func (g *Grid) Reset(p model.Point) {
	g.cells[g.index(p)] = nil
	g.entropy[g.index(p)] = len(g.palette)
	g.UpdateEntropy(p)
}

// UpdateEntropy performs the breadth-first entropy recomputation described
// in §4.1: seed with p's in-bounds neighbors, skip non-empty cells, prune
// at fixpoint, and enqueue the unvisited neighbors of a cell only when its
// entropy actually changed. The
// traversal terminates because entropy is monotone non-increasing after a
// placement and bounded below by zero, and visited cells are never
// re-enqueued.
func (g *Grid) UpdateEntropy(p model.Point) {
	visited := map[model.Point]struct{}{p: {}}
	queue := g.Neighbors(p)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}

		if g.At(cur) != nil {
			continue
		}

		newEntropy := len(g.ValidPatterns(cur))
		oldEntropy := g.EntropyAt(cur)
		if newEntropy == oldEntropy {
			continue
		}
		g.entropy[g.index(cur)] = newEntropy

		for _, n := range g.Neighbors(cur) {
			if _, seen := visited[n]; !seen {
				queue = append(queue, n)
			}
		}
	}
}

// FindLeastEntropyCell returns, among cells with entropy > 0, one with
// minimum entropy; ties are broken by smallest Euclidean distance to the
// grid center, then by row-major scan order (§4.1, §5).
func (g *Grid) FindLeastEntropyCell() (model.Point, bool) {
	center := model.Rect{Width: g.Width, Height: g.Height}.Center()

	found := false
	var best model.Point
	bestEntropy := 0
	bestDistSq := 0

	for x := 0; x < g.Height; x++ {
		for y := 0; y < g.Width; y++ {
			p := model.Point{X: x, Y: y}
			e := g.EntropyAt(p)
			if e <= 0 {
				continue
			}

			dx, dy := p.X-center.X, p.Y-center.Y
			distSq := dx*dx + dy*dy

			if !found || e < bestEntropy || (e == bestEntropy && distSq < bestDistSq) {
				found = true
				best = p
				bestEntropy = e
				bestDistSq = distSq
			}
		}
	}

	return best, found
}

// Snapshot captures the grid's current GridState (every cell's entropy,
// walkability, and uid) for the history log (§3).
func (g *Grid) Snapshot() model.GridState {
	state := model.GridState{
		Width:  g.Width,
		Height: g.Height,
		Cells:  make([]model.CellState, len(g.cells)),
	}
	for i, c := range g.cells {
		if c == nil {
			state.Cells[i] = model.CellState{Entropy: g.entropy[i], PatternUID: model.HiddenUID}
			continue
		}
		state.Cells[i] = model.CellState{
			Entropy:    g.entropy[i],
			IsWalkable: c.IsWalkable,
			PatternUID: c.UID,
		}
	}
	return state
}

// Restore overwrites the grid's dimensions and cell/entropy arrays from a
// previously captured GridState; the rollback tabu is left untouched. The
// engine's rollback does not use it: it resets cells one at a time.
func (g *Grid) Restore(state model.GridState, byUID func(uid int) (*model.MetaPattern, bool)) {
	g.Height, g.Width = state.Height, state.Width
	g.cells = make([]*model.MetaPattern, len(state.Cells))
	g.entropy = make([]int, len(state.Cells))
	for i, c := range state.Cells {
		g.entropy[i] = c.Entropy
		if c.PatternUID == model.HiddenUID {
			continue
		}
		if mp, ok := byUID(c.PatternUID); ok {
			g.cells[i] = mp
		}
	}
}
