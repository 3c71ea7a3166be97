package docc

import (
	"sort"

	"github.com/swiftlang/swift-docc-sub006/internal/unifiedgraph"
)

// Query is a read-only view over the unified graphs a loader produced,
// used by tooling that inspects a loaded bundle without walking the maps
// by hand.
type Query struct {
	graphs map[string]*unifiedgraph.UnifiedGraph
}

// Query returns a query view over the loader's unified graphs. Call after
// LoadAll.
func (l *GraphLoader) Query() *Query {
	return &Query{graphs: l.graphs}
}

// Modules returns the loaded module names, sorted.
func (q *Query) Modules() []string {
	return sortedKeys(q.graphs)
}

// Graph returns the unified graph for a module.
func (q *Query) Graph(module string) (*UnifiedGraph, bool) {
	g, ok := q.graphs[module]
	return g, ok
}

// Symbol returns a module's unified symbol by precise identifier.
func (q *Query) Symbol(module, preciseID string) (*UnifiedSymbol, bool) {
	g, ok := q.graphs[module]
	if !ok {
		return nil, false
	}
	sym, ok := g.Symbols[preciseID]
	return sym, ok
}

// SymbolsWithKind returns the precise identifiers of a module's symbols
// whose kind matches under any selector, sorted.
func (q *Query) SymbolsWithKind(module, kindIdentifier string) []string {
	g, ok := q.graphs[module]
	if !ok {
		return nil
	}
	var ids []string
	for _, id := range g.SymbolIDs() {
		sym := g.Symbols[id]
		for _, sel := range sym.Selectors() {
			if sym.Kinds[sel].Identifier == kindIdentifier {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}

// RelationshipsFrom returns every relationship whose source is the given
// symbol, across all selectors and the orphan bucket.
func (q *Query) RelationshipsFrom(module, preciseID string) []Relationship {
	g, ok := q.graphs[module]
	if !ok {
		return nil
	}
	var out []Relationship
	for _, rel := range g.AllRelationships() {
		if rel.Source == preciseID {
			out = append(out, rel)
		}
	}
	return out
}

// ModuleSummary is the per-module load summary the CLI renders.
type ModuleSummary struct {
	Module        string   `json:"module"`
	Symbols       int      `json:"symbols"`
	Relationships int      `json:"relationships"`
	Orphans       int      `json:"orphanRelationships"`
	Platforms     []string `json:"platforms,omitempty"`
}

// Summaries returns one summary per loaded module, sorted by module name.
func (q *Query) Summaries() []ModuleSummary {
	out := make([]ModuleSummary, 0, len(q.graphs))
	for _, module := range q.Modules() {
		g := q.graphs[module]
		var relCount int
		for _, sel := range g.Selectors() {
			relCount += len(g.Relationships[sel])
		}
		var platforms []string
		for name := range g.RegisteredPlatforms() {
			platforms = append(platforms, string(name))
		}
		sort.Strings(platforms)
		out = append(out, ModuleSummary{
			Module:        module,
			Symbols:       len(g.Symbols),
			Relationships: relCount,
			Orphans:       len(g.Orphans),
			Platforms:     platforms,
		})
	}
	return out
}
