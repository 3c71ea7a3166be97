// Package linkbuilder turns symbol graph edges into bidirectional
// documentation-node links. Every function here takes one edge plus a
// Context and mutates the documentation graph; none of them fail. A missing
// source is a warning diagnostic and the edge is dropped; a missing target
// degrades to an unresolved reference carrying a fallback display name.
package linkbuilder

import (
	"fmt"
	"strings"

	"github.com/swiftlang/swift-docc-sub006/internal/diagnostics"
	"github.com/swiftlang/swift-docc-sub006/internal/docmodel"
	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
)

// Context bundles the lookup state the relationship builder works against:
// the per-module symbol index, an optional cross-module index, the node
// cache, the topic graph, and the diagnostic sink.
type Context struct {
	// LocalSymbols maps precise identifiers of this module's symbols to
	// their documentation references.
	LocalSymbols map[string]docmodel.ResolvedReference

	// ExternalSymbols maps precise identifiers resolved from other modules.
	ExternalSymbols map[string]docmodel.ResolvedReference

	// Nodes is the documentation node cache, keyed by reference.
	Nodes map[docmodel.ResolvedReference]*docmodel.Node

	// Parents maps a symbol's reference to its enclosing symbol's
	// reference, built from memberOf edges during registration.
	Parents map[docmodel.ResolvedReference]docmodel.ResolvedReference

	Topics      *docmodel.TopicGraph
	Diagnostics diagnostics.Sink
	ModuleName  string

	// InheritDocs keeps documentation inherited from other modules instead
	// of stripping it.
	InheritDocs bool
}

// localSymbol resolves a precise identifier to its local node's symbol
// payload. A miss — no reference, no node, or a non-symbol payload — emits
// one SymbolNodeNotFound warning and returns ok=false.
func (c *Context) localSymbol(preciseID string) (docmodel.ResolvedReference, *docmodel.Symbol, bool) {
	ref, ok := c.LocalSymbols[preciseID]
	if ok {
		if node := c.Nodes[ref]; node != nil {
			if sym := node.Symbol(); sym != nil {
				return ref, sym, true
			}
		}
	}
	c.Diagnostics.Emit(diagnostics.Diagnostic{
		Identifier: diagnostics.IDSymbolNodeNotFound,
		Severity:   diagnostics.SeverityWarning,
		Summary:    fmt.Sprintf("No symbol matching %q found locally; the relationship was skipped", preciseID),
	})
	return docmodel.ResolvedReference{}, nil, false
}

// resolveTarget resolves an edge's target to a topic reference: local
// first, then the external index, then an unresolved reference carrying the
// fallback display name (or the raw identifier when no fallback exists).
// The second result is the target's symbol payload when locally known.
func (c *Context) resolveTarget(rel symbolgraph.Relationship) (docmodel.TopicReference, *docmodel.Symbol) {
	if ref, ok := c.LocalSymbols[rel.Target]; ok {
		if node := c.Nodes[ref]; node != nil {
			return ref, node.Symbol()
		}
		return ref, nil
	}
	if ref, ok := c.ExternalSymbols[rel.Target]; ok {
		return ref, nil
	}
	title := rel.TargetFallback
	if title == "" {
		title = rel.Target
	}
	return docmodel.UnresolvedReference{Title: title}, nil
}

// AddConformance links a conformsTo edge in both directions. A protocol
// source reads as inheritance (protocol refining protocol); any other
// source reads as conformance. The inverse group on the target mirrors the
// distinction.
func AddConformance(rel symbolgraph.Relationship, ctx *Context) {
	srcRef, srcSym, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}
	targetRef, targetSym := ctx.resolveTarget(rel)

	sourceGroup := docmodel.RelationConformsTo
	inverseGroup := docmodel.RelationConformingTypes
	if srcSym.KindIdentifier == symbolgraph.KindProtocol {
		sourceGroup = docmodel.RelationInheritsFrom
		inverseGroup = docmodel.RelationInheritedBy
	}

	srcSym.Relationships.Add(sourceGroup, targetRef, rel.Constraints)
	if targetSym != nil {
		targetSym.Relationships.Add(inverseGroup, srcRef, rel.Constraints)
	}
}

// AddInheritance links an inheritsFrom edge in both directions: the source
// inherits from the target, the target is inherited by the source.
func AddInheritance(rel symbolgraph.Relationship, ctx *Context) {
	srcRef, srcSym, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}
	targetRef, targetSym := ctx.resolveTarget(rel)

	srcSym.Relationships.Add(docmodel.RelationInheritsFrom, targetRef, rel.Constraints)
	if targetSym != nil {
		targetSym.Relationships.Add(docmodel.RelationInheritedBy, srcRef, rel.Constraints)
	}
}

// AddImplementation processes a defaultImplementationOf edge: the source
// provides a default implementation of the target protocol requirement.
// When the requirement is locally known it gains a default-implementations
// entry titled after the implementor's enclosing type, and the implementor
// becomes a child of the requirement in the topic graph.
func AddImplementation(rel symbolgraph.Relationship, ctx *Context) {
	implRef, _, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}
	reqRef, reqSym := resolveLocalOnly(rel.Target, ctx)
	if reqSym == nil {
		// Requirement from another module; nothing local to attach to.
		return
	}

	parentTitle := ctx.ModuleName
	if parentRef, ok := ctx.Parents[implRef]; ok {
		if parentNode := ctx.Nodes[parentRef]; parentNode != nil {
			parentTitle = parentNode.Title
		}
	}

	reqSym.DefaultImplementations = append(reqSym.DefaultImplementations, docmodel.Implementation{
		Reference:   implRef,
		ParentTitle: parentTitle,
	})
	ctx.Topics.AddEdge(reqRef, implRef)
}

// AddRequirement marks the source symbol as a protocol requirement. No
// relationship is recorded; this is metadata on the symbol.
func AddRequirement(rel symbolgraph.Relationship, ctx *Context) {
	_, srcSym, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}
	srcSym.IsRequired = true
}

// AddOptionalRequirement marks the source symbol as an optional protocol
// requirement.
func AddOptionalRequirement(rel symbolgraph.Relationship, ctx *Context) {
	_, srcSym, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}
	srcSym.IsRequired = false
}

// AddInheritedDefaultImplementation records inheritance provenance from an
// edge's source origin. Documentation inherited from the same module is
// always kept. Documentation inherited from another module is stripped
// unless the inherit-docs flag is on or the comment was authored in this
// module rather than carried over from the origin.
func AddInheritedDefaultImplementation(rel symbolgraph.Relationship, ctx *Context) {
	if rel.SourceOrigin == nil {
		return
	}
	_, srcSym, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}
	srcSym.Origin = rel.SourceOrigin

	if _, originIsLocal := ctx.LocalSymbols[rel.SourceOrigin.Identifier]; originIsLocal {
		return
	}
	if ctx.InheritDocs {
		return
	}
	if srcSym.DocComment != nil && srcSym.DocComment.ModuleName == ctx.ModuleName {
		return
	}
	srcSym.DocComment = nil
}

// AddOverloadRelationship links an overloadOf edge: the source is one
// overload, the target its overload group. The group node is flagged in the
// topic graph and gains the overload as a child.
func AddOverloadRelationship(rel symbolgraph.Relationship, ctx *Context) {
	overloadRef, _, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}
	groupRef, groupSym := resolveLocalOnly(rel.Target, ctx)
	if groupSym == nil {
		ctx.Diagnostics.Emit(diagnostics.Diagnostic{
			Identifier: diagnostics.IDSymbolNodeNotFound,
			Severity:   diagnostics.SeverityWarning,
			Summary:    fmt.Sprintf("No overload group matching %q found locally; the relationship was skipped", rel.Target),
		})
		return
	}
	ctx.Topics.MarkOverloadGroup(groupRef)
	ctx.Topics.AddEdge(groupRef, overloadRef)
}

// AddProtocolExtensionMemberConstraint synthesizes a "Self == Protocol"
// constraint on a member declared in an extension of an externally defined
// protocol, so readers can tell which protocol's extension the member came
// from. The protocol's name comes from the extension node when it resolves
// locally, otherwise from the edge's fallback name.
func AddProtocolExtensionMemberConstraint(rel symbolgraph.Relationship, ctx *Context) {
	_, memberSym, ok := ctx.localSymbol(rel.Source)
	if !ok {
		return
	}

	protocolName := ""
	if ref, ok := ctx.LocalSymbols[rel.Target]; ok {
		if node := ctx.Nodes[ref]; node != nil {
			protocolName = node.Title
		}
	}
	if protocolName == "" && rel.TargetFallback != "" {
		if _, name, found := strings.Cut(rel.TargetFallback, "."); found {
			protocolName = name
		} else {
			protocolName = rel.TargetFallback
		}
	}
	if protocolName == "" {
		return
	}

	for _, c := range memberSym.Constraints {
		if c.LeftTypeName == "Self" {
			return
		}
	}
	memberSym.Constraints = append(memberSym.Constraints, symbolgraph.GenericConstraint{
		Kind:          symbolgraph.ConstraintSameType,
		LeftTypeName:  "Self",
		RightTypeName: protocolName,
	})
}

// resolveLocalOnly looks a precise identifier up in the local index without
// emitting diagnostics, returning the symbol payload when present.
func resolveLocalOnly(preciseID string, ctx *Context) (docmodel.ResolvedReference, *docmodel.Symbol) {
	ref, ok := ctx.LocalSymbols[preciseID]
	if !ok {
		return docmodel.ResolvedReference{}, nil
	}
	node := ctx.Nodes[ref]
	if node == nil {
		return ref, nil
	}
	return ref, node.Symbol()
}
