package docc

import (
	"github.com/swiftlang/swift-docc-sub006/internal/platform"
	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
	"github.com/swiftlang/swift-docc-sub006/internal/unifiedgraph"
)

// fillDefaultAvailability synthesizes availability items for platforms the
// bundle declares default availability for, on every symbol that carries no
// explicit annotation for that platform. The synthesized item names the
// platform alone unless the bundle opts into inheriting the declared
// introduced version.
func (l *GraphLoader) fillDefaultAvailability(graph *unifiedgraph.UnifiedGraph) {
	defaults := l.bundle.DefaultAvailability[graph.ModuleName]
	if len(defaults) == 0 {
		return
	}

	for _, id := range graph.SymbolIDs() {
		sym := graph.Symbols[id]
		for _, sel := range sym.Selectors() {
			av := sym.AvailabilityFor(sel)
			changed := false
			for _, def := range defaults {
				domain := string(def.Platform)
				if av.HasDomain(domain) {
					continue
				}
				item := symbolgraph.AvailabilityItem{Domain: domain}
				if l.bundle.InheritDefaultAvailabilityVersions && def.Introduced != nil {
					introduced := *def.Introduced
					item.Introduced = &introduced
				}
				av = append(av, item)
				changed = true
			}
			if changed {
				sym.SetAvailabilityFor(sel, av)
			}
		}
	}
}

// fillFallbackAvailability copies availability records onto platforms that
// inherit from another platform (Mac Catalyst and iPadOS from iOS) when no
// decoded graph was compiled for the inheriting platform directly. The
// whole record is copied — introduced, deprecated, obsoleted, and flags —
// retagged with the inheriting platform's domain. A symbol that already
// carries an explicit annotation for the inheriting platform is never
// overwritten.
func (l *GraphLoader) fillFallbackAvailability(graph *unifiedgraph.UnifiedGraph) {
	registered := graph.RegisteredPlatforms()

	for _, pair := range l.platforms.FallbackPlatforms() {
		if _, covered := registered[pair.Inheriting]; covered {
			// A graph was compiled for this platform; its own availability
			// is authoritative.
			continue
		}
		inheriting := string(pair.Inheriting)
		inherited := string(pair.Inherited)

		for _, id := range graph.SymbolIDs() {
			sym := graph.Symbols[id]
			for _, sel := range sym.Selectors() {
				av := sym.AvailabilityFor(sel)
				if av == nil || av.HasDomain(inheriting) {
					continue
				}
				item, ok := av.ForDomain(inherited)
				if !ok {
					continue
				}
				sym.SetAvailabilityFor(sel, append(av, item.ForDomain(inheriting)))
			}
		}
	}
}

// DefaultAvailabilityFor is a convenience for building bundle metadata: it
// parses an optional dotted version string into a default availability
// entry.
func DefaultAvailabilityFor(name platform.Name, introduced string) (platform.DefaultAvailability, error) {
	entry := platform.DefaultAvailability{Platform: name}
	if introduced != "" {
		v, err := symbolgraph.ParseVersion(introduced)
		if err != nil {
			return platform.DefaultAvailability{}, err
		}
		entry.Introduced = &v
	}
	return entry, nil
}
