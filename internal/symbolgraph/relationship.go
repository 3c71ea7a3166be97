package symbolgraph

import "strings"

// RelationshipKind names the semantic of a graph edge.
type RelationshipKind string

// Relationship kinds this package acts on. Kinds outside this set decode
// fine and flow through merging untouched; only the relationship builder
// needs to recognize them.
const (
	RelMemberOf                RelationshipKind = "memberOf"
	RelConformsTo              RelationshipKind = "conformsTo"
	RelInheritsFrom            RelationshipKind = "inheritsFrom"
	RelRequirementOf           RelationshipKind = "requirementOf"
	RelOptionalRequirementOf   RelationshipKind = "optionalRequirementOf"
	RelExtensionTo             RelationshipKind = "extensionTo"
	RelDefaultImplementationOf RelationshipKind = "defaultImplementationOf"
	RelOverloadOf              RelationshipKind = "overloadOf"
	RelDeclaredIn              RelationshipKind = "declaredIn"
	RelInContextOf             RelationshipKind = "inContextOf"
)

// SourceOrigin records where an inherited symbol originally came from: the
// precise identifier and display name of the declaration that provided it.
type SourceOrigin struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"displayName"`
}

// Relationship is one directed edge between two symbols. TargetFallback
// carries a human-readable name for targets that cannot be resolved (symbols
// from other modules); Constraints carries the edge's generic constraints.
type Relationship struct {
	Source         string
	Target         string
	Kind           RelationshipKind
	TargetFallback string
	SourceOrigin   *SourceOrigin
	Constraints    []GenericConstraint
}

// RelationshipKey is the equality and hashing contract for relationships:
// two edges are the same iff source, target, kind, fallback name, and
// constraints all match. Constraints are folded into a canonical digest
// string so the key stays comparable.
type RelationshipKey struct {
	Source         string
	Target         string
	Kind           RelationshipKind
	TargetFallback string
	Constraints    string
}

// Key returns the relationship's deduplication key.
func (r Relationship) Key() RelationshipKey {
	return RelationshipKey{
		Source:         r.Source,
		Target:         r.Target,
		Kind:           r.Kind,
		TargetFallback: r.TargetFallback,
		Constraints:    constraintsDigest(r.Constraints),
	}
}

// constraintsDigest renders constraints in declaration order. Order is part
// of the identity: the compiler emits constraints deterministically, so two
// edges that differ in order are genuinely different edges.
func constraintsDigest(constraints []GenericConstraint) string {
	if len(constraints) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range constraints {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(c.Kind)
		b.WriteByte(':')
		b.WriteString(c.LeftTypeName)
		b.WriteByte(':')
		b.WriteString(c.RightTypeName)
	}
	return b.String()
}

// DeduplicateRelationships returns the edges with duplicates (by Key)
// removed, preserving first-seen order.
func DeduplicateRelationships(rels []Relationship) []Relationship {
	seen := make(map[RelationshipKey]struct{}, len(rels))
	out := rels[:0:0]
	for _, r := range rels {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
