package ifacedoc

import (
	"context"
	"strings"
)

// MaxHierarchyDepth bounds the resolver's walk through the parent table.
// Real inheritance chains are short; the bound guards against malformed
// tables.
const MaxHierarchyDepth = 15

// HierarchyTable holds the two lookup mappings extracted from the site's
// hierarchy script resource: child key to parent key, and child key to the
// parent's display name. It is built once per crawl session and treated as
// read-only afterwards.
type HierarchyTable struct {
	ParentKeyOf  map[string]string
	ParentNameOf map[string]string
}

// HierarchyLoader loads the hierarchy table, caching it for the lifetime of
// the crawl. A load failure yields an empty table rather than an error that
// would abort extraction.
type HierarchyLoader interface {
	Load(ctx context.Context) (*HierarchyTable, error)
}

// Resolve builds the ordered ancestor chain for an interface name.
//
// Table keys are namespace-decorated, so the first key containing name as a
// substring wins. The walk follows ParentKeyOf links, recording display
// names, and stops at a terminal key, a previously visited key (cycle), or
// MaxHierarchyDepth. The result is ordered base-first: index 0 is the most
// distant ancestor and the last element is name itself. Names never repeat.
// An unknown name returns nil.
func (t *HierarchyTable) Resolve(name string) []string {
	if t == nil || len(t.ParentKeyOf) == 0 {
		return nil
	}

	// Map iteration order is randomized, so pick the lexicographically
	// smallest matching key to keep resolution deterministic. An exact
	// match always wins.
	startKey := ""
	if _, ok := t.ParentKeyOf[name]; ok {
		startKey = name
	} else {
		for key := range t.ParentKeyOf {
			if !strings.Contains(key, name) {
				continue
			}
			if startKey == "" || key < startKey {
				startKey = key
			}
		}
	}
	if startKey == "" {
		return nil
	}

	chain := []string{name}
	inChain := map[string]struct{}{name: {}}
	visited := map[string]struct{}{startKey: {}}

	currentKey := startKey
	for depth := 0; depth < MaxHierarchyDepth; depth++ {
		parentKey, ok := t.ParentKeyOf[currentKey]
		if !ok {
			break
		}
		if parentName, ok := t.ParentNameOf[currentKey]; ok {
			if _, dup := inChain[parentName]; !dup {
				chain = append(chain, parentName)
				inChain[parentName] = struct{}{}
			}
		}
		if _, seen := visited[parentKey]; seen {
			break // cycle; return the partial chain
		}
		visited[parentKey] = struct{}{}
		currentKey = parentKey
	}

	// Accumulated child-first; reverse so the base class comes first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
