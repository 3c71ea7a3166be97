package docmodel

import "github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"

// RelationGroupKind names one group of a symbol's relationships section.
type RelationGroupKind string

const (
	RelationConformsTo      RelationGroupKind = "conformsTo"
	RelationInheritsFrom    RelationGroupKind = "inheritsFrom"
	RelationConformingTypes RelationGroupKind = "conformingTypes"
	RelationInheritedBy     RelationGroupKind = "inheritedBy"
)

// relationEntry is one target within a relationship group.
type relationEntry struct {
	Target      TopicReference
	Constraints []symbolgraph.GenericConstraint
}

// RelationshipsSection accumulates a symbol's documented relationships,
// grouped by kind in first-added order.
type RelationshipsSection struct {
	groups map[RelationGroupKind][]relationEntry
	order  []RelationGroupKind
}

// Add records a target under a group, with the generic constraints that
// scope the relationship (nil when unconstrained).
func (s *RelationshipsSection) Add(kind RelationGroupKind, target TopicReference, constraints []symbolgraph.GenericConstraint) {
	if s.groups == nil {
		s.groups = make(map[RelationGroupKind][]relationEntry)
	}
	if _, ok := s.groups[kind]; !ok {
		s.order = append(s.order, kind)
	}
	s.groups[kind] = append(s.groups[kind], relationEntry{Target: target, Constraints: constraints})
}

// Targets returns the targets recorded under a group, in insertion order.
func (s *RelationshipsSection) Targets(kind RelationGroupKind) []TopicReference {
	entries := s.groups[kind]
	out := make([]TopicReference, len(entries))
	for i, e := range entries {
		out[i] = e.Target
	}
	return out
}

// ConstraintsFor returns the constraints recorded with the first entry for
// target under a group.
func (s *RelationshipsSection) ConstraintsFor(kind RelationGroupKind, target TopicReference) []symbolgraph.GenericConstraint {
	for _, e := range s.groups[kind] {
		if e.Target == target {
			return e.Constraints
		}
	}
	return nil
}

// Groups returns the group kinds in first-added order.
func (s *RelationshipsSection) Groups() []RelationGroupKind {
	return s.order
}

// IsEmpty reports whether no relationships have been recorded.
func (s *RelationshipsSection) IsEmpty() bool { return len(s.order) == 0 }

// Implementation is one entry of a protocol requirement's default
// implementations section: where the implementation lives and the display
// title of the type providing it.
type Implementation struct {
	Reference   TopicReference
	ParentTitle string
}
