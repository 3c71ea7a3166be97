package docmodel

import "github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"

// Semantic is a documentation node's payload. The variant is closed —
// Symbol, Article, or Collection — and consumers switch exhaustively
// instead of testing runtime types open-endedly.
type Semantic interface {
	isSemantic()
}

// Symbol is the semantic payload of a node documenting one API symbol.
// The relationship builder mutates it: relationship groups, requirement
// flags, inheritance provenance, and default implementations all land here.
type Symbol struct {
	Title          string
	KindIdentifier string
	DocComment     *symbolgraph.DocComment

	// IsRequired marks a protocol requirement; optional requirements
	// record false explicitly.
	IsRequired bool

	// Origin records where an inherited symbol originally came from.
	Origin *symbolgraph.SourceOrigin

	// Constraints carries generic constraints synthesized onto the symbol,
	// such as the Self constraint for members of external protocol
	// extensions.
	Constraints []symbolgraph.GenericConstraint

	Relationships          RelationshipsSection
	DefaultImplementations []Implementation
}

func (*Symbol) isSemantic() {}

// Article is the payload of a free-form documentation page.
type Article struct {
	Title string
}

func (*Article) isSemantic() {}

// Collection is the payload of a curated group of other nodes.
type Collection struct {
	Title string
}

func (*Collection) isSemantic() {}

// Node is one entry of the documentation graph. Nodes are created by symbol
// registration; the relationship builder only looks them up and mutates
// their semantic payload.
type Node struct {
	Reference ResolvedReference
	Title     string
	Semantic  Semantic
}

// Symbol returns the node's payload when it documents a symbol, or nil for
// any other payload.
func (n *Node) Symbol() *Symbol {
	switch s := n.Semantic.(type) {
	case *Symbol:
		return s
	case *Article, *Collection:
		return nil
	default:
		return nil
	}
}
