package flatten

import (
	"maps"
	"slices"
)

// hints assembles the caching hints of a pass.
//
// Policy: content surfaces are always cacheable. A wrapper is recached only
// when its container was just entered across a node-type boundary (or on
// the very first pass); otherwise its cached output is reused untouched.
// An intra-container switch invalidates the content it deactivated.
func (p *pass) hints() CachingHints {
	for id := range p.cacheable {
		delete(p.invalidated, id)
	}

	h := CachingHints{
		CacheableIDs:              sortedKeys(p.cacheable),
		InvalidatedIDs:            sortedKeys(p.invalidated),
		WrapperIDs:                []string{},
		ContentIDs:                []string{},
		IsCrossNodeTypeNavigation: p.prev != nil && p.cross,
	}

	modes := make(map[string]RenderingMode, len(p.cacheable)+len(p.invalidated))
	maps.Copy(modes, p.invalidated)
	maps.Copy(modes, p.cacheable)
	for _, id := range sortedKeys(modes) {
		if modes[id] == ModeWrapper {
			h.WrapperIDs = append(h.WrapperIDs, id)
		} else {
			h.ContentIDs = append(h.ContentIDs, id)
		}
	}
	return h
}

func sortedKeys(m map[string]RenderingMode) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	if keys == nil {
		keys = []string{}
	}
	return keys
}
