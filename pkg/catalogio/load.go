// Package catalogio loads a catalog.Repository from the JSON shape
// described in spec §6. This is the spec's external "Factory" collaborator:
// the core (pkg/catalog, pkg/grid, pkg/wfc, ...) never imports this
// package, and never sees anything but an already-built catalog.Repository.
package catalogio

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/eng618/wfc-loom/pkg/catalog"
	"github.com/eng618/wfc-loom/pkg/model"
)

// rawPattern is one "patterns[]" image variant entry.
type rawPattern struct {
	ImagePath string  `json:"image_path"`
	Weight    float64 `json:"weight"`
}

// rawRules holds the unresolved per-direction rule-entry lists: each entry
// is either a JSON number, a string-form integer ("12"), a tag, or "all".
type rawRules struct {
	Up    []json.RawMessage `json:"up"`
	Down  []json.RawMessage `json:"down"`
	Left  []json.RawMessage `json:"left"`
	Right []json.RawMessage `json:"right"`
}

// rawMetaPattern is one "patterns[]" catalog entry.
type rawMetaPattern struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	IsWalkable int          `json:"is_walkable"`
	Tags       []string     `json:"tags"`
	Weight     float64      `json:"weight"`
	Patterns   []rawPattern `json:"patterns"`
	Rules      rawRules     `json:"rules"`
}

// rawCatalog is the top-level catalog JSON document (§6).
type rawCatalog struct {
	ImagesFolder string           `json:"images_folder"`
	Patterns     []rawMetaPattern `json:"patterns"`
}

// LoadFile reads and parses a catalog JSON file, builds every MetaPattern,
// expands its rule entries, registers it in a fresh catalog.Repository, and
// runs the bidirectional-consistency validator. Loading proceeds even when
// the report carries asymmetries — per §4.6, the caller inspects the
// report and decides whether to abort.
func LoadFile(path string) (*catalog.Repository, catalog.ValidationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, catalog.ValidationReport{}, fmt.Errorf("catalogio: read %s: %w", path, err)
	}
	return Load(data)
}

// Load parses raw catalog JSON bytes the same way LoadFile does.
func Load(data []byte) (*catalog.Repository, catalog.ValidationReport, error) {
	var raw rawCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, catalog.ValidationReport{}, fmt.Errorf("catalogio: parse catalog: %w", err)
	}

	repo := catalog.NewRepository()

	// Pass 1: construct every MetaPattern (without rules) and register it,
	// so pass 2 can resolve uid/tag/"all" rule entries against a complete
	// repository — this is the two-phase "assign rules post-construction"
	// scheme §3 describes for handling mutual MetaPattern references.
	for _, rp := range raw.Patterns {
		mp := &model.MetaPattern{
			UID:        rp.ID,
			Name:       rp.Name,
			IsWalkable: rp.IsWalkable != 0,
			Weight:     rp.Weight,
			Tags:       make(map[string]struct{}, len(rp.Tags)),
		}
		for _, t := range rp.Tags {
			mp.Tags[t] = struct{}{}
		}
		for _, p := range rp.Patterns {
			mp.Patterns = append(mp.Patterns, model.Pattern{ImagePath: p.ImagePath, Weight: p.Weight})
		}
		if err := repo.Add(mp); err != nil {
			return nil, catalog.ValidationReport{}, err
		}
	}

	// Pass 2: resolve and assign rules now that every MetaPattern exists.
	for _, rp := range raw.Patterns {
		mp, _ := repo.ByUID(rp.ID)
		rules := model.NewRuleSet()
		for _, d := range model.AllDirections {
			entries := rulesForDirection(rp.Rules, d)
			uids, err := resolveRuleEntries(repo, entries)
			if err != nil {
				return nil, catalog.ValidationReport{}, fmt.Errorf("catalogio: pattern %d rules.%s: %w", rp.ID, d, err)
			}
			for _, uid := range uids {
				rules.Add(d, uid)
			}
		}
		mp.Rules = rules
	}

	report := catalog.Validate(repo.AllPatterns())
	return repo, report, nil
}

func rulesForDirection(r rawRules, d model.Direction) []json.RawMessage {
	switch d {
	case model.Up:
		return r.Up
	case model.Down:
		return r.Down
	case model.Left:
		return r.Left
	case model.Right:
		return r.Right
	default:
		return nil
	}
}

// resolveRuleEntries expands a list of raw rule-entry JSON values into
// concrete uids: a JSON number or a string-form integer ("12") is a uid
// directly; any other string is resolved through the catalog (tag or
// "all", §4.6, §6).
func resolveRuleEntries(repo *catalog.Repository, entries []json.RawMessage) ([]int, error) {
	seen := make(map[int]struct{})
	var uids []int

	add := func(uid int) {
		if _, ok := seen[uid]; !ok {
			seen[uid] = struct{}{}
			uids = append(uids, uid)
		}
	}

	for _, raw := range entries {
		var asInt int
		if err := json.Unmarshal(raw, &asInt); err == nil {
			add(asInt)
			continue
		}

		var asString string
		if err := json.Unmarshal(raw, &asString); err != nil {
			return nil, fmt.Errorf("rule entry %s is neither a number nor a string", raw)
		}

		if n, err := strconv.Atoi(asString); err == nil {
			add(n)
			continue
		}

		matches, err := repo.ResolveTextRule(asString)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m.UID)
		}
	}

	return uids, nil
}
