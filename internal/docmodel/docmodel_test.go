package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
)

func TestRelationshipsSection_GroupsInFirstAddedOrder(t *testing.T) {
	t.Parallel()

	var s RelationshipsSection
	assert.True(t, s.IsEmpty())

	a := ResolvedReference{Path: "/documentation/M/A"}
	b := ResolvedReference{Path: "/documentation/M/B"}
	constraints := []symbolgraph.GenericConstraint{
		{Kind: symbolgraph.ConstraintConformance, LeftTypeName: "T", RightTypeName: "Hashable"},
	}

	s.Add(RelationInheritsFrom, a, nil)
	s.Add(RelationConformsTo, b, constraints)
	s.Add(RelationInheritsFrom, b, nil)

	assert.False(t, s.IsEmpty())
	assert.Equal(t, []RelationGroupKind{RelationInheritsFrom, RelationConformsTo}, s.Groups())
	assert.Equal(t, []TopicReference{a, b}, s.Targets(RelationInheritsFrom))
	assert.Equal(t, constraints, s.ConstraintsFor(RelationConformsTo, b))
	assert.Nil(t, s.ConstraintsFor(RelationConformsTo, a))
}

func TestNode_SymbolPayload(t *testing.T) {
	t.Parallel()

	sym := &Symbol{Title: "Thing"}
	node := &Node{Title: "Thing", Semantic: sym}
	assert.Same(t, sym, node.Symbol())

	article := &Node{Title: "Guide", Semantic: &Article{Title: "Guide"}}
	assert.Nil(t, article.Symbol())

	collection := &Node{Title: "Essentials", Semantic: &Collection{Title: "Essentials"}}
	assert.Nil(t, collection.Symbol())
}

func TestTopicGraph(t *testing.T) {
	t.Parallel()

	g := NewTopicGraph()
	parent := ResolvedReference{Path: "/documentation/M/P"}
	child := ResolvedReference{Path: "/documentation/M/P/c"}

	g.AddEdge(parent, child)
	g.AddEdge(parent, child) // duplicates collapse
	require.Len(t, g.Children(parent), 1)
	assert.Equal(t, []ResolvedReference{parent}, g.Parents(child))

	assert.False(t, g.IsOverloadGroup(parent))
	g.MarkOverloadGroup(parent)
	assert.True(t, g.IsOverloadGroup(parent))
}
