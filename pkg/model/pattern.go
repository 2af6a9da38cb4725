package model

// HiddenUID is the sentinel uid for an empty/hidden cell (§3).
const HiddenUID = -1

// Pattern is one image variant of a MetaPattern: a visual choice that never
// affects adjacency, only rendering/weighting among variants of the same
// tile identity.
type Pattern struct {
	ImagePath string
	Weight    float64
}

// RuleSet maps a Direction to the set of neighbor uids a MetaPattern
// permits in that direction. Neighbor MetaPatterns are stored by uid, not
// by pointer: this keeps MetaPattern
// construction acyclic and lets the catalog resolve uids on demand instead
// of requiring a two-pass pointer-patching construction.
type RuleSet struct {
	allowed [4]map[int]struct{}
}

// NewRuleSet returns an empty RuleSet with all four directions initialized.
func NewRuleSet() *RuleSet {
	rs := &RuleSet{}
	for _, d := range AllDirections {
		rs.allowed[d] = make(map[int]struct{})
	}
	return rs
}

// Add permits uid as a neighbor in direction d.
func (rs *RuleSet) Add(d Direction, uid int) {
	if rs.allowed[d] == nil {
		rs.allowed[d] = make(map[int]struct{})
	}
	rs.allowed[d][uid] = struct{}{}
}

// Allows reports whether uid is a permitted neighbor in direction d.
func (rs *RuleSet) Allows(d Direction, uid int) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.allowed[d][uid]
	return ok
}

// UIDs returns the set of permitted neighbor uids in direction d, in no
// particular order.
func (rs *RuleSet) UIDs(d Direction) []int {
	if rs == nil {
		return nil
	}
	out := make([]int, 0, len(rs.allowed[d]))
	for uid := range rs.allowed[d] {
		out = append(out, uid)
	}
	return out
}

// MetaPattern is an atomic tile identity: a uid, its adjacency rules, a
// selection weight, and the visual Pattern variants that share it (§3).
type MetaPattern struct {
	UID        int
	Name       string
	IsWalkable bool
	Tags       map[string]struct{}
	Weight     float64
	Rules      *RuleSet
	Patterns   []Pattern
}

// HasTag reports whether the MetaPattern carries the given tag.
func (mp *MetaPattern) HasTag(tag string) bool {
	_, ok := mp.Tags[tag]
	return ok
}
