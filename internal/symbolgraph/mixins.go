package symbolgraph

import "encoding/json"

// MixinKind identifies one of the known keyed mixin payloads a symbol can
// carry. The set is closed: payloads under keys this package does not
// recognize decode into UnknownMixin so they survive a round trip.
type MixinKind uint8

const (
	MixinKindAvailability MixinKind = iota
	MixinKindDeclarationFragments
	MixinKindGenerics
	MixinKindSwiftExtension
	MixinKindUnknown
)

// Mixin is one keyed payload attached to a symbol.
type Mixin interface {
	MixinKind() MixinKind
}

// DeclarationFragments is the declaration-fragments mixin: the symbol's
// declaration broken into syntax-highlighting tokens.
type DeclarationFragments []DeclarationFragment

// MixinKind implements Mixin.
func (DeclarationFragments) MixinKind() MixinKind { return MixinKindDeclarationFragments }

// GenericConstraint is one constraint in a generic signature.
type GenericConstraint struct {
	Kind          string `json:"kind"`
	LeftTypeName  string `json:"lhs"`
	RightTypeName string `json:"rhs"`
}

// Generic constraint kinds.
const (
	ConstraintConformance = "conformance"
	ConstraintSuperclass  = "superclass"
	ConstraintSameType    = "sameType"
)

// GenericParameter is one parameter in a generic signature.
type GenericParameter struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Depth int    `json:"depth"`
}

// Generics is the generic-signature mixin: type parameters and the
// constraints placed on them.
type Generics struct {
	Parameters  []GenericParameter  `json:"parameters,omitempty"`
	Constraints []GenericConstraint `json:"constraints,omitempty"`
}

// MixinKind implements Mixin.
func (*Generics) MixinKind() MixinKind { return MixinKindGenerics }

// SwiftExtension is the extension-metadata mixin carried by symbols declared
// inside an extension: which module declares the extended type, that type's
// kind, and any constraints on the extension.
type SwiftExtension struct {
	ExtendedModule string              `json:"extendedModule"`
	TypeKind       string              `json:"typeKind,omitempty"`
	Constraints    []GenericConstraint `json:"constraints,omitempty"`
}

// MixinKind implements Mixin.
func (*SwiftExtension) MixinKind() MixinKind { return MixinKindSwiftExtension }

// UnknownMixin preserves a payload under a key this package does not model,
// for forward compatibility with newer symbol graph formats.
type UnknownMixin struct {
	Key string
	Raw json.RawMessage
}

// MixinKind implements Mixin.
func (UnknownMixin) MixinKind() MixinKind { return MixinKindUnknown }

// MixinSet is a small insertion-ordered collection of mixins, at most one
// per known kind plus any number of unknown payloads keyed by their JSON key.
type MixinSet struct {
	entries []Mixin
}

// Set stores a mixin, replacing an existing entry of the same kind (or, for
// unknown mixins, the same key) in place to preserve insertion order.
func (s *MixinSet) Set(m Mixin) {
	for i, existing := range s.entries {
		if existing.MixinKind() != m.MixinKind() {
			continue
		}
		if u, ok := existing.(UnknownMixin); ok {
			if nu, ok := m.(UnknownMixin); !ok || u.Key != nu.Key {
				continue
			}
		}
		s.entries[i] = m
		return
	}
	s.entries = append(s.entries, m)
}

// Get returns the first mixin of the given kind.
func (s *MixinSet) Get(kind MixinKind) (Mixin, bool) {
	for _, m := range s.entries {
		if m.MixinKind() == kind {
			return m, true
		}
	}
	return nil, false
}

// Len returns the number of stored mixins.
func (s *MixinSet) Len() int { return len(s.entries) }

// All returns the mixins in insertion order. The slice is shared; callers
// must not modify it.
func (s *MixinSet) All() []Mixin { return s.entries }

// Availability returns the availability mixin, or nil if absent.
func (s *MixinSet) Availability() Availability {
	if m, ok := s.Get(MixinKindAvailability); ok {
		return m.(Availability)
	}
	return nil
}

// DeclarationFragments returns the declaration-fragments mixin, or nil.
func (s *MixinSet) DeclarationFragments() DeclarationFragments {
	if m, ok := s.Get(MixinKindDeclarationFragments); ok {
		return m.(DeclarationFragments)
	}
	return nil
}

// Generics returns the generic-signature mixin, or nil.
func (s *MixinSet) Generics() *Generics {
	if m, ok := s.Get(MixinKindGenerics); ok {
		return m.(*Generics)
	}
	return nil
}

// SwiftExtension returns the extension-metadata mixin, or nil.
func (s *MixinSet) SwiftExtension() *SwiftExtension {
	if m, ok := s.Get(MixinKindSwiftExtension); ok {
		return m.(*SwiftExtension)
	}
	return nil
}

// Clone deep-copies the set. Slice-backed mixins get fresh backing arrays so
// mutating one copy's availability never leaks into another.
func (s MixinSet) Clone() MixinSet {
	if len(s.entries) == 0 {
		return MixinSet{}
	}
	out := MixinSet{entries: make([]Mixin, len(s.entries))}
	for i, m := range s.entries {
		switch v := m.(type) {
		case Availability:
			out.entries[i] = append(Availability(nil), v...)
		case DeclarationFragments:
			out.entries[i] = append(DeclarationFragments(nil), v...)
		case *Generics:
			g := Generics{
				Parameters:  append([]GenericParameter(nil), v.Parameters...),
				Constraints: append([]GenericConstraint(nil), v.Constraints...),
			}
			out.entries[i] = &g
		case *SwiftExtension:
			e := SwiftExtension{
				ExtendedModule: v.ExtendedModule,
				TypeKind:       v.TypeKind,
				Constraints:    append([]GenericConstraint(nil), v.Constraints...),
			}
			out.entries[i] = &e
		case UnknownMixin:
			out.entries[i] = UnknownMixin{Key: v.Key, Raw: append(json.RawMessage(nil), v.Raw...)}
		default:
			out.entries[i] = m
		}
	}
	return out
}
