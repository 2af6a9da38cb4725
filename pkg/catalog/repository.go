// Package catalog implements the in-memory pattern palette: lookup by uid,
// tag, or special text rule, and the bidirectional-consistency validator
// (§4.6, §3's invariant). The Repository is built once per generation
// session by an external loader (pkg/catalogio is this repo's) and is
// read-only thereafter; the core never mutates it.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/eng618/wfc-loom/pkg/model"
)

// TextRuleAll is the reserved word that resolves to every pattern in the
// palette (§4.6).
const TextRuleAll = "all"

// PatternCatalog is the opaque contract the core consumes (§4.6): lookup by
// uid/tag, and resolution of a textual catalog-JSON rule entry (a tag, or
// "all") into a set of MetaPatterns. Numeric and string-form uid entries
// are not handled by ResolveTextRule; the loader resolves those itself.
type PatternCatalog interface {
	AllPatterns() []*model.MetaPattern
	ByUID(uid int) (*model.MetaPattern, bool)
	ByTag(tag string) []*model.MetaPattern
	ResolveTextRule(text string) ([]*model.MetaPattern, error)
}

// Repository is the default PatternCatalog: a name-keyed registry in the
// same shape as the teacher's pkg/generator/registry.go (a sync.RWMutex
// guarding a map), adapted to index patterns by uid and tag instead of
// strategies by name.
type Repository struct {
	mu      sync.RWMutex
	byUID   map[int]*model.MetaPattern
	byTag   map[string][]*model.MetaPattern
	ordered []*model.MetaPattern // insertion order, for deterministic AllPatterns()
}

// NewRepository returns an empty Repository ready to accept patterns via Add.
func NewRepository() *Repository {
	return &Repository{
		byUID: make(map[int]*model.MetaPattern),
		byTag: make(map[string][]*model.MetaPattern),
	}
}

// Add registers a MetaPattern. It is the loader's job (pkg/catalogio) to
// call Add for every catalog entry before the Repository is handed to the
// core; Add itself performs no rule resolution.
func (r *Repository) Add(mp *model.MetaPattern) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mp.UID == model.HiddenUID {
		return fmt.Errorf("catalog: uid %d is reserved for the empty cell sentinel", model.HiddenUID)
	}
	if _, exists := r.byUID[mp.UID]; exists {
		return fmt.Errorf("catalog: duplicate uid %d (%s)", mp.UID, mp.Name)
	}

	r.byUID[mp.UID] = mp
	r.ordered = append(r.ordered, mp)
	for tag := range mp.Tags {
		r.byTag[tag] = append(r.byTag[tag], mp)
	}
	return nil
}

// AllPatterns returns every registered MetaPattern in insertion order.
func (r *Repository) AllPatterns() []*model.MetaPattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.MetaPattern, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByUID looks up a MetaPattern by its uid.
func (r *Repository) ByUID(uid int) (*model.MetaPattern, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mp, ok := r.byUID[uid]
	return mp, ok
}

// ByTag returns every MetaPattern carrying the given tag, sorted by uid for
// determinism.
func (r *Repository) ByTag(tag string) []*model.MetaPattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.byTag[tag]
	out := make([]*model.MetaPattern, len(matches))
	copy(out, matches)
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

// ResolveTextRule resolves a catalog-JSON rule entry: the reserved word
// "all" returns every pattern, anything else is treated as a tag (§4.6).
// Numeric uids (including string-form integers like "12") are resolved by
// the caller before reaching here — see pkg/catalogio's rule expansion.
func (r *Repository) ResolveTextRule(text string) ([]*model.MetaPattern, error) {
	if text == TextRuleAll {
		return r.AllPatterns(), nil
	}
	matches := r.ByTag(text)
	if len(matches) == 0 {
		return nil, fmt.Errorf("catalog: tag %q matches no pattern", text)
	}
	return matches, nil
}
