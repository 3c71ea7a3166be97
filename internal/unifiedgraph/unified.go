// Package unifiedgraph merges the per-platform and per-extension symbol
// graphs that describe one module into a single logical graph. Symbol data
// is partitioned by selector — an (interface language, platform) pair — so
// one precise identifier carries every platform's view of the same logical
// symbol.
package unifiedgraph

import (
	"sort"

	"github.com/swiftlang/swift-docc-sub006/internal/platform"
	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
)

// Selector identifies one view of a unified symbol: the interface language
// it was decoded from and the platform its graph was compiled for. Platform
// is empty for platform-agnostic graphs.
type Selector struct {
	InterfaceLanguage string
	Platform          platform.Name
}

// SelectorForGraph derives the selector a graph's data files under. The
// second result is false when the graph has no symbols, leaving its
// interface language — and therefore its selector — ambiguous.
func SelectorForGraph(g *symbolgraph.SymbolGraph) (Selector, bool) {
	lang := g.InterfaceLanguage()
	if lang == "" {
		return Selector{}, false
	}
	return Selector{
		InterfaceLanguage: lang,
		Platform:          platform.NameForPlatform(g.Module.Platform),
	}, true
}

// UnifiedSymbol is one logical symbol across every selector it was decoded
// under. Invariant: a precise identifier denotes the same logical symbol in
// every selector; per-selector maps hold each graph's view of it.
type UnifiedSymbol struct {
	PreciseID      string
	Kinds          map[Selector]symbolgraph.Kind
	PathComponents map[Selector][]string
	Names          map[Selector]symbolgraph.Names
	DocComments    map[Selector]*symbolgraph.DocComment
	AccessLevels   map[Selector]symbolgraph.AccessLevel
	Mixins         map[Selector]*symbolgraph.MixinSet

	// fromExtension records, per selector, whether the data came from an
	// extension graph. Main-graph data replaces extension-graph data when
	// both describe the same selector.
	fromExtension map[Selector]bool
}

func newUnifiedSymbol(preciseID string) *UnifiedSymbol {
	return &UnifiedSymbol{
		PreciseID:      preciseID,
		Kinds:          make(map[Selector]symbolgraph.Kind),
		PathComponents: make(map[Selector][]string),
		Names:          make(map[Selector]symbolgraph.Names),
		DocComments:    make(map[Selector]*symbolgraph.DocComment),
		AccessLevels:   make(map[Selector]symbolgraph.AccessLevel),
		Mixins:         make(map[Selector]*symbolgraph.MixinSet),
		fromExtension:  make(map[Selector]bool),
	}
}

// record stores one graph's view of the symbol under sel. Ownership of an
// already-populated selector follows a single rule: main-graph data replaces
// extension-graph data, anything else keeps the first writer. Callers add
// graphs in sorted-path order, so "first" is deterministic.
func (u *UnifiedSymbol) record(sel Selector, sym *symbolgraph.Symbol, fromExtension bool) {
	if _, exists := u.Kinds[sel]; exists {
		if !(u.fromExtension[sel] && !fromExtension) {
			return
		}
	}
	clone := sym.Clone()
	u.Kinds[sel] = clone.Kind
	u.PathComponents[sel] = clone.PathComponents
	u.Names[sel] = clone.Names
	u.DocComments[sel] = clone.DocComment
	u.AccessLevels[sel] = clone.AccessLevel
	mixins := clone.Mixins
	u.Mixins[sel] = &mixins
	u.fromExtension[sel] = fromExtension
}

// Selectors returns every selector the symbol has data for, sorted so
// iteration is deterministic.
func (u *UnifiedSymbol) Selectors() []Selector {
	sels := make([]Selector, 0, len(u.Kinds))
	for sel := range u.Kinds {
		sels = append(sels, sel)
	}
	sortSelectors(sels)
	return sels
}

// AvailabilityFor returns the availability mixin recorded under sel, or nil.
func (u *UnifiedSymbol) AvailabilityFor(sel Selector) symbolgraph.Availability {
	if m := u.Mixins[sel]; m != nil {
		return m.Availability()
	}
	return nil
}

// SetAvailabilityFor replaces the availability mixin recorded under sel.
func (u *UnifiedSymbol) SetAvailabilityFor(sel Selector, av symbolgraph.Availability) {
	m := u.Mixins[sel]
	if m == nil {
		m = &symbolgraph.MixinSet{}
		u.Mixins[sel] = m
	}
	m.Set(av)
}

// TitleFor returns the symbol's display title under sel.
func (u *UnifiedSymbol) TitleFor(sel Selector) string {
	return u.Names[sel].Title
}

// UnifiedGraph is the merged view of every symbol graph describing one
// module: symbols keyed by precise identifier, relationships partitioned by
// selector, and an orphan bucket for edges whose graph had no symbols to
// derive a selector from.
type UnifiedGraph struct {
	ModuleName    string
	Metadata      map[Selector]symbolgraph.Metadata
	Modules       map[Selector]symbolgraph.Module
	Symbols       map[string]*UnifiedSymbol
	Relationships map[Selector][]symbolgraph.Relationship
	Orphans       []symbolgraph.Relationship
}

// NewUnifiedGraph returns an empty unified graph for a module.
func NewUnifiedGraph(moduleName string) *UnifiedGraph {
	return &UnifiedGraph{
		ModuleName:    moduleName,
		Metadata:      make(map[Selector]symbolgraph.Metadata),
		Modules:       make(map[Selector]symbolgraph.Module),
		Symbols:       make(map[string]*UnifiedSymbol),
		Relationships: make(map[Selector][]symbolgraph.Relationship),
	}
}

// merge folds one decoded graph into the unified graph.
func (g *UnifiedGraph) merge(sg *symbolgraph.SymbolGraph, fromExtension bool) {
	sel, ok := SelectorForGraph(sg)
	if !ok {
		// No symbols, so no selector: relationships land in the orphan
		// bucket and metadata is keyed under the platform alone.
		g.Orphans = symbolgraph.DeduplicateRelationships(append(g.Orphans, sg.Relationships...))
		platformOnly := Selector{Platform: platform.NameForPlatform(sg.Module.Platform)}
		g.Metadata[platformOnly] = sg.Metadata
		g.Modules[platformOnly] = sg.Module
		return
	}

	g.Metadata[sel] = sg.Metadata
	g.Modules[sel] = sg.Module

	ids := make([]string, 0, len(sg.Symbols))
	for id := range sg.Symbols {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		unified, exists := g.Symbols[id]
		if !exists {
			unified = newUnifiedSymbol(id)
			g.Symbols[id] = unified
		}
		unified.record(sel, sg.Symbols[id], fromExtension)
	}

	g.Relationships[sel] = symbolgraph.DeduplicateRelationships(
		append(g.Relationships[sel], sg.Relationships...))
}

// Selectors returns every selector the graph has relationship or module
// data for, sorted.
func (g *UnifiedGraph) Selectors() []Selector {
	set := make(map[Selector]struct{})
	for sel := range g.Modules {
		set[sel] = struct{}{}
	}
	for sel := range g.Relationships {
		set[sel] = struct{}{}
	}
	sels := make([]Selector, 0, len(set))
	for sel := range set {
		sels = append(sels, sel)
	}
	sortSelectors(sels)
	return sels
}

// RegisteredPlatforms returns the set of platform names any merged graph
// was compiled for. The availability fallback pass consults this to decide
// whether a fallback platform was ever covered directly.
func (g *UnifiedGraph) RegisteredPlatforms() map[platform.Name]struct{} {
	out := make(map[platform.Name]struct{})
	for sel, mod := range g.Modules {
		name := platform.NameForPlatform(mod.Platform)
		if name == "" {
			name = sel.Platform
		}
		if name != "" {
			out[name] = struct{}{}
		}
	}
	return out
}

// SymbolIDs returns the precise identifiers of all unified symbols, sorted.
func (g *UnifiedGraph) SymbolIDs() []string {
	ids := make([]string, 0, len(g.Symbols))
	for id := range g.Symbols {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AllRelationships returns every selector-attributed relationship plus the
// orphans, deduplicated, in deterministic order.
func (g *UnifiedGraph) AllRelationships() []symbolgraph.Relationship {
	var all []symbolgraph.Relationship
	for _, sel := range g.Selectors() {
		all = append(all, g.Relationships[sel]...)
	}
	all = append(all, g.Orphans...)
	return symbolgraph.DeduplicateRelationships(all)
}

func sortSelectors(sels []Selector) {
	sort.Slice(sels, func(i, j int) bool {
		if sels[i].InterfaceLanguage != sels[j].InterfaceLanguage {
			return sels[i].InterfaceLanguage < sels[j].InterfaceLanguage
		}
		return sels[i].Platform < sels[j].Platform
	})
}
