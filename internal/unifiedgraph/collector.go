package unifiedgraph

import "github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"

// GraphAssociation selects which module an extension graph's symbols unify
// under. Legacy extension-block graphs associate with the module they
// extend; extended-type-format graphs associate with the module doing the
// extending, whose name already prefixes every synthesized path.
type GraphAssociation int

const (
	AssociateExtensionsWithExtendedModule GraphAssociation = iota
	AssociateExtensionsWithExtendingModule
)

// Collector accumulates decoded symbol graphs and groups them into one
// UnifiedGraph per module name. Callers must add graphs in a deterministic
// order (the loader sorts by file path) because first-writer-wins decisions
// happen at add time.
type Collector struct {
	association GraphAssociation
	graphs      map[string]*UnifiedGraph
}

// NewCollector returns a collector using the given association strategy.
func NewCollector(association GraphAssociation) *Collector {
	return &Collector{
		association: association,
		graphs:      make(map[string]*UnifiedGraph),
	}
}

// Association returns the collector's association strategy.
func (c *Collector) Association() GraphAssociation { return c.association }

// Add merges one decoded graph. moduleName is the module the graph was
// grouped under by filename parsing; extendingModule is the extending
// module for extension graphs ("" for main graphs) and overrides the
// grouping when the collector associates extensions with their extending
// module.
func (c *Collector) Add(sg *symbolgraph.SymbolGraph, moduleName, extendingModule string) {
	isExtension := extendingModule != ""
	if isExtension && c.association == AssociateExtensionsWithExtendingModule {
		moduleName = extendingModule
	}

	unified, ok := c.graphs[moduleName]
	if !ok {
		unified = NewUnifiedGraph(moduleName)
		c.graphs[moduleName] = unified
	}
	unified.merge(sg, isExtension)
}

// Graphs returns the unified graph per module name.
func (c *Collector) Graphs() map[string]*UnifiedGraph { return c.graphs }
