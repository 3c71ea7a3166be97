package docc

import (
	"github.com/swiftlang/swift-docc-sub006/internal/diagnostics"
	"github.com/swiftlang/swift-docc-sub006/internal/platform"
	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
	"github.com/swiftlang/swift-docc-sub006/internal/unifiedgraph"
)

// Public type aliases for internal types used in the loader API. These are
// Go type aliases (=) — identical to the internal types at compile time.
// External consumers use these names; no conversion is needed.

type SymbolGraph = symbolgraph.SymbolGraph
type Symbol = symbolgraph.Symbol
type Relationship = symbolgraph.Relationship
type AvailabilityItem = symbolgraph.AvailabilityItem
type SemanticVersion = symbolgraph.SemanticVersion

type UnifiedGraph = unifiedgraph.UnifiedGraph
type UnifiedSymbol = unifiedgraph.UnifiedSymbol
type Selector = unifiedgraph.Selector

type PlatformName = platform.Name
type PlatformConfig = platform.Config
type DefaultAvailability = platform.DefaultAvailability

type Diagnostic = diagnostics.Diagnostic
type DiagnosticEngine = diagnostics.Engine
