package docmodel

// TopicGraph records the curation hierarchy between documentation nodes:
// which node is a child of which, and which nodes act as overload groups.
type TopicGraph struct {
	children       map[ResolvedReference][]ResolvedReference
	parents        map[ResolvedReference][]ResolvedReference
	overloadGroups map[ResolvedReference]bool
}

// NewTopicGraph returns an empty topic graph.
func NewTopicGraph() *TopicGraph {
	return &TopicGraph{
		children:       make(map[ResolvedReference][]ResolvedReference),
		parents:        make(map[ResolvedReference][]ResolvedReference),
		overloadGroups: make(map[ResolvedReference]bool),
	}
}

// AddEdge records child under parent. Duplicate edges collapse.
func (t *TopicGraph) AddEdge(parent, child ResolvedReference) {
	for _, existing := range t.children[parent] {
		if existing == child {
			return
		}
	}
	t.children[parent] = append(t.children[parent], child)
	t.parents[child] = append(t.parents[child], parent)
}

// Children returns parent's children in insertion order.
func (t *TopicGraph) Children(parent ResolvedReference) []ResolvedReference {
	return t.children[parent]
}

// Parents returns child's parents in insertion order.
func (t *TopicGraph) Parents(child ResolvedReference) []ResolvedReference {
	return t.parents[child]
}

// MarkOverloadGroup flags ref as an overload-group node.
func (t *TopicGraph) MarkOverloadGroup(ref ResolvedReference) {
	t.overloadGroups[ref] = true
}

// IsOverloadGroup reports whether ref was flagged as an overload group.
func (t *TopicGraph) IsOverloadGroup(ref ResolvedReference) bool {
	return t.overloadGroups[ref]
}
