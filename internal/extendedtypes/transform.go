// Package extendedtypes rewrites symbol graphs from the legacy extension
// block format (one synthetic symbol per source-level `extension X {}`
// block) into the extended type format (one symbol per logically extended
// type, with synthesized ancestors and module-declaration edges).
package extendedtypes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
)

// IsUsingExtensionBlockFormat reports whether the graph still contains any
// extension-block symbols. The loader probes every extension graph with
// this to detect bundles that mix formats.
func IsUsingExtensionBlockFormat(g *symbolgraph.SymbolGraph) bool {
	for _, s := range g.Symbols {
		if s.Kind.Identifier == symbolgraph.KindExtension {
			return true
		}
	}
	return false
}

// InvalidReferencePathError is the fatal error for a synthesized symbol
// whose path components cannot form a URL-safe reference path.
type InvalidReferencePathError struct {
	PreciseID string
	Component string
}

func (e *InvalidReferencePathError) Error() string {
	return fmt.Sprintf("symbol %s: path component %q is not URL-safe", e.PreciseID, e.Component)
}

// extendedType accumulates the extension blocks contributing to one
// logically extended type while edges are grouped.
type extendedType struct {
	canonicalID    string
	symbol         *symbolgraph.Symbol
	targetFallback string
	contributors   []*symbolgraph.Symbol
}

// Transform rewrites g in place from the extension block format to the
// extended type format, returning whether it applied. A graph with no
// extension-block symbols is untouched and reported as (false, nil); the
// loader uses that signal to pick a graph-association strategy.
//
// moduleName is the extending module. It is prepended to every symbol's
// path components so that reference URLs disambiguate the extending module
// from the extended one.
//
// After a successful transform no extension-block symbols remain: each is
// either folded into an extended-type symbol or, when nothing relates it to
// a target type, discarded along with its dangling member edges.
func Transform(g *symbolgraph.SymbolGraph, moduleName string) (bool, error) {
	// Step 1: extract the extension-block symbols.
	blocks := make(map[string]*symbolgraph.Symbol)
	for id, s := range g.Symbols {
		if s.Kind.Identifier == symbolgraph.KindExtension {
			blocks[id] = s
		}
	}
	if len(blocks) == 0 {
		return false, nil
	}
	for id := range blocks {
		delete(g.Symbols, id)
	}

	// Step 2: prepend the extending module's name to every path.
	for _, s := range g.Symbols {
		s.PathComponents = append([]string{moduleName}, s.PathComponents...)
	}
	for _, b := range blocks {
		b.PathComponents = append([]string{moduleName}, b.PathComponents...)
	}

	// Step 3: pull the edges touching extension blocks out of the graph.
	var (
		extensionToRels []symbolgraph.Relationship
		memberOfRels    []symbolgraph.Relationship
		conformsToRels  []symbolgraph.Relationship
		kept            []symbolgraph.Relationship
	)
	for _, rel := range g.Relationships {
		switch {
		case rel.Kind == symbolgraph.RelExtensionTo && blocks[rel.Source] != nil:
			extensionToRels = append(extensionToRels, rel)
		case rel.Kind == symbolgraph.RelMemberOf && blocks[rel.Target] != nil:
			memberOfRels = append(memberOfRels, rel)
		case rel.Kind == symbolgraph.RelConformsTo && blocks[rel.Source] != nil:
			conformsToRels = append(conformsToRels, rel)
		default:
			kept = append(kept, rel)
		}
	}

	// Step 4: group blocks by extended target in a stable order by source
	// identifier. Whichever run of the compiler produced these files, the
	// first block in this order claims the canonical identifier, so
	// unrelated compilation runs merge identically.
	sort.SliceStable(extensionToRels, func(i, j int) bool {
		return extensionToRels[i].Source < extensionToRels[j].Source
	})

	byTarget := make(map[string]*extendedType)
	var targetOrder []string
	blockToExtended := make(map[string]string)

	for _, rel := range extensionToRels {
		block := blocks[rel.Source]
		ext, ok := byTarget[rel.Target]
		if !ok {
			ext = &extendedType{
				canonicalID:    block.PreciseID(),
				symbol:         synthesizeExtendedType(g, block, rel),
				targetFallback: rel.TargetFallback,
			}
			byTarget[rel.Target] = ext
			targetOrder = append(targetOrder, rel.Target)
		} else {
			// Later blocks only widen access and offer doc comments.
			ext.symbol.AccessLevel = symbolgraph.MaxAccessLevel(ext.symbol.AccessLevel, block.AccessLevel)
		}
		ext.contributors = append(ext.contributors, block)
		blockToExtended[block.PreciseID()] = ext.canonicalID
	}

	// Step 8 (before registering, so the comment travels with the symbol):
	// give each extended type the longest doc comment among its blocks,
	// tie-broken by block identifier.
	for _, target := range targetOrder {
		attachDocComment(byTarget[target])
	}

	// Steps 5-6: register the extended types and synthesize unknown
	// ancestors for nested ones, linked by inContextOf edges.
	var synthesized []symbolgraph.Relationship
	ancestors := make(map[string]*symbolgraph.Symbol) // path digest → symbol
	var ancestorOrder []*symbolgraph.Symbol
	ancestorModule := make(map[string]string) // ancestor id → extended module

	pathToExtended := make(map[string]*symbolgraph.Symbol, len(targetOrder))
	for _, target := range targetOrder {
		sym := byTarget[target].symbol
		g.AddSymbol(sym)
		pathToExtended[pathDigest(sym.PathComponents)] = sym
	}

	for _, target := range targetOrder {
		ext := byTarget[target]
		sym := ext.symbol
		extModule := extendedModuleName(ext, moduleName)
		child := sym
		// Walk up the path, stopping before the module-name component.
		for depth := len(sym.PathComponents) - 1; depth >= 2; depth-- {
			parentPath := sym.PathComponents[:depth]
			parent, ok := pathToExtended[pathDigest(parentPath)]
			if !ok {
				parent, ok = ancestors[pathDigest(parentPath)]
				if !ok {
					parent = synthesizeAncestor(parentPath, child)
					ancestors[pathDigest(parentPath)] = parent
					ancestorOrder = append(ancestorOrder, parent)
					ancestorModule[parent.PreciseID()] = extModule
					g.AddSymbol(parent)
				}
			}
			parent.AccessLevel = symbolgraph.MaxAccessLevel(parent.AccessLevel, child.AccessLevel)
			synthesized = append(synthesized, symbolgraph.Relationship{
				Source: child.PreciseID(),
				Target: parent.PreciseID(),
				Kind:   symbolgraph.RelInContextOf,
			})
			child = parent
		}
	}

	// Step 9: one extended-module symbol per extended module, target of a
	// declaredIn edge from every top-level extended type.
	extendedModules := make(map[string]*symbolgraph.Symbol)
	var moduleOrder []string
	topLevel := func(s *symbolgraph.Symbol) bool { return len(s.PathComponents) == 2 }

	registerDeclaredIn := func(sym *symbolgraph.Symbol, extendedModuleName string) {
		mod, ok := extendedModules[extendedModuleName]
		if !ok {
			mod = &symbolgraph.Symbol{
				Identifier: symbolgraph.Identifier{
					Precise:           "s:e:module:" + extendedModuleName,
					InterfaceLanguage: sym.Identifier.InterfaceLanguage,
				},
				Kind: symbolgraph.Kind{
					Identifier:  symbolgraph.KindExtendedModule,
					DisplayName: "Extended Module",
				},
				PathComponents: []string{moduleName, extendedModuleName},
				Names:          symbolgraph.Names{Title: extendedModuleName},
				AccessLevel:    sym.AccessLevel,
			}
			extendedModules[extendedModuleName] = mod
			moduleOrder = append(moduleOrder, extendedModuleName)
			g.AddSymbol(mod)
		}
		mod.AccessLevel = symbolgraph.MaxAccessLevel(mod.AccessLevel, sym.AccessLevel)
		synthesized = append(synthesized, symbolgraph.Relationship{
			Source: sym.PreciseID(),
			Target: mod.PreciseID(),
			Kind:   symbolgraph.RelDeclaredIn,
		})
	}

	for _, target := range targetOrder {
		ext := byTarget[target]
		if topLevel(ext.symbol) {
			registerDeclaredIn(ext.symbol, extendedModuleName(ext, moduleName))
		}
	}
	for _, parent := range ancestorOrder {
		if topLevel(parent) {
			registerDeclaredIn(parent, ancestorModule[parent.PreciseID()])
		}
	}

	// Step 7: redirect the extracted member and conformance edges from
	// extension blocks to their extended types. Edges naming a block that
	// never related to a target type have nowhere to go and are dropped
	// with the block.
	for _, rel := range memberOfRels {
		if extID, ok := blockToExtended[rel.Target]; ok {
			rel.Target = extID
			kept = append(kept, rel)
		}
	}
	for _, rel := range conformsToRels {
		if extID, ok := blockToExtended[rel.Source]; ok {
			rel.Source = extID
			kept = append(kept, rel)
		}
	}

	kept = append(kept, synthesized...)
	g.Relationships = symbolgraph.DeduplicateRelationships(kept)

	// Every synthesized reference path must be URL-safe; a violation is
	// fatal because every downstream URL would be malformed.
	for _, target := range targetOrder {
		if err := validatePath(byTarget[target].symbol); err != nil {
			return false, err
		}
	}
	for _, parent := range ancestorOrder {
		if err := validatePath(parent); err != nil {
			return false, err
		}
	}
	for _, name := range moduleOrder {
		if err := validatePath(extendedModules[name]); err != nil {
			return false, err
		}
	}

	return true, nil
}

// synthesizeExtendedType builds the extended-type symbol for a target's
// first-seen extension block.
func synthesizeExtendedType(g *symbolgraph.SymbolGraph, block *symbolgraph.Symbol, rel symbolgraph.Relationship) *symbolgraph.Symbol {
	kind := extendedKindFor(g, block, rel)
	sym := &symbolgraph.Symbol{
		Identifier:     block.Identifier,
		Kind:           kind,
		PathComponents: append([]string(nil), block.PathComponents...),
		Names: symbolgraph.Names{
			Title: strings.Join(block.PathComponents[1:], "."),
		},
		AccessLevel: block.AccessLevel,
	}
	if ext := block.Mixins.SwiftExtension(); ext != nil {
		copied := *ext
		sym.Mixins.Set(&copied)
	}
	if gen := block.Mixins.Generics(); gen != nil {
		copied := *gen
		sym.Mixins.Set(&copied)
	}
	return sym
}

// extendedKindFor maps the extended symbol's original kind to the matching
// extended-type kind. The mapping is exhaustive over the type kinds the
// format defines; anything else becomes an unknown extended type.
func extendedKindFor(g *symbolgraph.SymbolGraph, block *symbolgraph.Symbol, rel symbolgraph.Relationship) symbolgraph.Kind {
	originalKind := ""
	if target, ok := g.Symbols[rel.Target]; ok {
		originalKind = target.Kind.Identifier
	} else if ext := block.Mixins.SwiftExtension(); ext != nil {
		originalKind = ext.TypeKind
	}

	switch originalKind {
	case symbolgraph.KindStruct:
		return symbolgraph.Kind{Identifier: symbolgraph.KindExtendedStruct, DisplayName: "Extended Structure"}
	case symbolgraph.KindClass:
		return symbolgraph.Kind{Identifier: symbolgraph.KindExtendedClass, DisplayName: "Extended Class"}
	case symbolgraph.KindEnum:
		return symbolgraph.Kind{Identifier: symbolgraph.KindExtendedEnum, DisplayName: "Extended Enumeration"}
	case symbolgraph.KindProtocol:
		return symbolgraph.Kind{Identifier: symbolgraph.KindExtendedProtocol, DisplayName: "Extended Protocol"}
	default:
		return symbolgraph.Kind{Identifier: symbolgraph.KindUnknownExtendedType, DisplayName: "Extended Type"}
	}
}

// synthesizeAncestor builds an unknown-extended-type symbol for a nested
// extended type's enclosing type that was never directly extended.
func synthesizeAncestor(path []string, child *symbolgraph.Symbol) *symbolgraph.Symbol {
	components := append([]string(nil), path...)
	return &symbolgraph.Symbol{
		Identifier: symbolgraph.Identifier{
			Precise:           "s:e:" + strings.Join(components, "."),
			InterfaceLanguage: child.Identifier.InterfaceLanguage,
		},
		Kind: symbolgraph.Kind{
			Identifier:  symbolgraph.KindUnknownExtendedType,
			DisplayName: "Extended Type",
		},
		PathComponents: components,
		Names:          symbolgraph.Names{Title: strings.Join(components[1:], ".")},
		AccessLevel:    child.AccessLevel,
	}
}

// attachDocComment selects the longest doc comment (by line count) among an
// extended type's contributing blocks. Contributors are sorted by
// identifier first so ties resolve the same way in every run.
func attachDocComment(ext *extendedType) {
	if !ext.symbol.DocComment.IsEmpty() {
		return
	}
	contributors := append([]*symbolgraph.Symbol(nil), ext.contributors...)
	sort.Slice(contributors, func(i, j int) bool {
		return contributors[i].PreciseID() < contributors[j].PreciseID()
	})

	var best *symbolgraph.DocComment
	for _, block := range contributors {
		if block.DocComment.LineCount() > best.LineCount() {
			best = block.DocComment
		}
	}
	if !best.IsEmpty() {
		ext.symbol.DocComment = best
	}
}

// extendedModuleName resolves which module an extended type's target lives
// in: the extension metadata names it directly; otherwise the target
// fallback's "Module.Type" spelling; otherwise the extending module itself.
func extendedModuleName(ext *extendedType, extendingModule string) string {
	if mixin := ext.symbol.Mixins.SwiftExtension(); mixin != nil && mixin.ExtendedModule != "" {
		return mixin.ExtendedModule
	}
	for _, block := range ext.contributors {
		if mixin := block.Mixins.SwiftExtension(); mixin != nil && mixin.ExtendedModule != "" {
			return mixin.ExtendedModule
		}
	}
	if module, _, ok := strings.Cut(ext.targetFallback, "."); ok && module != "" {
		return module
	}
	return extendingModule
}

func pathDigest(components []string) string {
	return strings.Join(components, "\x00")
}

// validatePath rejects synthesized path components that cannot appear in a
// reference URL path segment.
func validatePath(sym *symbolgraph.Symbol) error {
	for _, component := range sym.PathComponents {
		if component == "" || strings.ContainsAny(component, " /\\?#%\t\n") {
			return &InvalidReferencePathError{PreciseID: sym.PreciseID(), Component: component}
		}
	}
	return nil
}
