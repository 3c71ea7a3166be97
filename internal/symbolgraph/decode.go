package symbolgraph

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// cfg honors encoding/json semantics (struct tags, json.Unmarshaler) while
// keeping jsoniter's streaming iterator available for partitioned decoding.
var cfg = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode decodes one symbol graph JSON document on the calling goroutine.
func Decode(data []byte) (*SymbolGraph, error) {
	graph := NewSymbolGraph()
	merged := make(map[string]indexedSymbol)

	err := walkGraph(data, graph, func(index int, iter *jsoniter.Iterator) error {
		sym, err := decodeSymbol(iter)
		if err != nil {
			return err
		}
		insertSymbol(merged, indexedSymbol{sym: sym, index: index})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for id, is := range merged {
		graph.Symbols[id] = is.sym
	}
	return graph, nil
}

// indexedSymbol pairs a decoded symbol with its index in the document's
// symbols array. The index participates in duplicate resolution because it
// is a property of the bytes, not of worker scheduling.
type indexedSymbol struct {
	sym   *Symbol
	index int
}

// preferredSymbol picks which of two symbols sharing a precise identifier to
// keep. Duplicates are a data anomaly; the choice must be deterministic
// regardless of which decode worker saw which copy first:
//
//  1. keep the symbol that has a documentation comment,
//  2. then the one carrying more mixins,
//  3. then the one at the lower array index.
func preferredSymbol(a, b indexedSymbol) indexedSymbol {
	aDoc := !a.sym.DocComment.IsEmpty()
	bDoc := !b.sym.DocComment.IsEmpty()
	if aDoc != bDoc {
		if aDoc {
			return a
		}
		return b
	}
	if a.sym.Mixins.Len() != b.sym.Mixins.Len() {
		if a.sym.Mixins.Len() > b.sym.Mixins.Len() {
			return a
		}
		return b
	}
	if a.index <= b.index {
		return a
	}
	return b
}

// insertSymbol adds a decoded symbol to an accumulator map, resolving
// precise-identifier collisions through preferredSymbol.
func insertSymbol(acc map[string]indexedSymbol, cand indexedSymbol) {
	id := cand.sym.PreciseID()
	if existing, ok := acc[id]; ok {
		acc[id] = preferredSymbol(existing, cand)
		return
	}
	acc[id] = cand
}

// walkGraph streams over one symbol graph document. Metadata, module, and
// relationships decode into g when g is non-nil and are skipped otherwise.
// onSymbol is invoked for every element of the symbols array with its index;
// a nil onSymbol skips the whole array without allocating elements.
func walkGraph(data []byte, g *SymbolGraph, onSymbol func(index int, iter *jsoniter.Iterator) error) error {
	iter := jsoniter.ParseBytes(cfg, data)

	for field := iter.ReadObject(); field != ""; field = iter.ReadObject() {
		switch field {
		case "metadata":
			if g != nil {
				iter.ReadVal(&g.Metadata)
			} else {
				iter.Skip()
			}
		case "module":
			if g != nil {
				iter.ReadVal(&g.Module)
			} else {
				iter.Skip()
			}
		case "relationships":
			if g == nil {
				iter.Skip()
				break
			}
			for iter.ReadArray() {
				rel, err := decodeRelationship(iter)
				if err != nil {
					return err
				}
				g.Relationships = append(g.Relationships, rel)
			}
		case "symbols":
			if onSymbol == nil {
				iter.Skip()
				break
			}
			index := 0
			for iter.ReadArray() {
				if err := onSymbol(index, iter); err != nil {
					return err
				}
				index++
			}
		default:
			iter.Skip()
		}
		if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
			break
		}
	}

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return fmt.Errorf("malformed symbol graph: %w", iter.Error)
	}
	return nil
}

// decodeSymbol decodes one element of the symbols array. Recognized mixin
// keys decode into their typed form; anything else is preserved raw under
// its key.
func decodeSymbol(iter *jsoniter.Iterator) (*Symbol, error) {
	sym := &Symbol{}
	var rawKind Kind

	for field := iter.ReadObject(); field != ""; field = iter.ReadObject() {
		switch field {
		case "identifier":
			iter.ReadVal(&sym.Identifier)
		case "kind":
			iter.ReadVal(&rawKind)
		case "pathComponents":
			iter.ReadVal(&sym.PathComponents)
		case "names":
			iter.ReadVal(&sym.Names)
		case "docComment":
			var dc DocComment
			iter.ReadVal(&dc)
			sym.DocComment = &dc
		case "accessLevel":
			sym.AccessLevel = AccessLevel(iter.ReadString())
		case "isVirtual":
			sym.IsVirtual = iter.ReadBool()
		case "availability":
			var items []AvailabilityItem
			iter.ReadVal(&items)
			sym.Mixins.Set(Availability(items))
		case "declarationFragments":
			var fragments []DeclarationFragment
			iter.ReadVal(&fragments)
			sym.Mixins.Set(DeclarationFragments(fragments))
		case "swiftGenerics":
			var generics Generics
			iter.ReadVal(&generics)
			sym.Mixins.Set(&generics)
		case "swiftExtension":
			var ext SwiftExtension
			iter.ReadVal(&ext)
			sym.Mixins.Set(&ext)
		default:
			raw := iter.SkipAndReturnBytes()
			sym.Mixins.Set(UnknownMixin{Key: field, Raw: raw})
		}
		if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
			break
		}
	}

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("malformed symbol: %w", iter.Error)
	}
	if sym.Identifier.Precise == "" {
		return nil, errors.New("malformed symbol: missing precise identifier")
	}

	sym.Kind = Kind{
		Identifier:  NormalizeKindIdentifier(rawKind.Identifier, sym.Identifier.InterfaceLanguage),
		DisplayName: rawKind.DisplayName,
	}
	return sym, nil
}

// decodeRelationship decodes one element of the relationships array.
func decodeRelationship(iter *jsoniter.Iterator) (Relationship, error) {
	var rel Relationship

	for field := iter.ReadObject(); field != ""; field = iter.ReadObject() {
		switch field {
		case "source":
			rel.Source = iter.ReadString()
		case "target":
			rel.Target = iter.ReadString()
		case "kind":
			rel.Kind = RelationshipKind(iter.ReadString())
		case "targetFallback":
			rel.TargetFallback = iter.ReadString()
		case "sourceOrigin":
			var origin SourceOrigin
			iter.ReadVal(&origin)
			rel.SourceOrigin = &origin
		case "swiftConstraints":
			iter.ReadVal(&rel.Constraints)
		default:
			iter.Skip()
		}
		if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
			break
		}
	}

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return Relationship{}, fmt.Errorf("malformed relationship: %w", iter.Error)
	}
	return rel, nil
}
