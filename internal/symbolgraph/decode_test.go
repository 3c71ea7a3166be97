package symbolgraph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGraph = `{
  "metadata": {
    "formatVersion": {"major": 0, "minor": 6, "patch": 0},
    "generator": "swift-symbolgraph-extract"
  },
  "module": {
    "name": "Sparkle",
    "platform": {
      "architecture": "arm64",
      "vendor": "apple",
      "operatingSystem": {"name": "macosx", "minimumVersion": {"major": 12}}
    }
  },
  "symbols": [
    {
      "identifier": {"precise": "s:7Sparkle7UpdaterC", "interfaceLanguage": "swift"},
      "kind": {"identifier": "swift.class", "displayName": "Class"},
      "pathComponents": ["Updater"],
      "names": {"title": "Updater"},
      "accessLevel": "public",
      "docComment": {"lines": [{"text": "Checks for updates."}]},
      "availability": [
        {"domain": "macOS", "introduced": {"major": 12}}
      ],
      "declarationFragments": [
        {"kind": "keyword", "spelling": "class"},
        {"kind": "identifier", "spelling": "Updater"}
      ],
      "location": {"uri": "file:///Updater.swift", "position": {"line": 3, "character": 0}}
    },
    {
      "identifier": {"precise": "s:7Sparkle7UpdaterC5checkyyF", "interfaceLanguage": "swift"},
      "kind": {"identifier": "swift.method", "displayName": "Instance Method"},
      "pathComponents": ["Updater", "check()"],
      "names": {"title": "check()"},
      "accessLevel": "open",
      "swiftGenerics": {
        "parameters": [{"name": "T", "index": 0, "depth": 0}],
        "constraints": [{"kind": "conformance", "lhs": "T", "rhs": "Equatable"}]
      },
      "swiftExtension": {"extendedModule": "Sparkle"}
    }
  ],
  "relationships": [
    {
      "kind": "memberOf",
      "source": "s:7Sparkle7UpdaterC5checkyyF",
      "target": "s:7Sparkle7UpdaterC"
    },
    {
      "kind": "conformsTo",
      "source": "s:7Sparkle7UpdaterC",
      "target": "s:SQ",
      "targetFallback": "Swift.Equatable",
      "sourceOrigin": {"identifier": "s:base", "displayName": "Base.check()"},
      "swiftConstraints": [{"kind": "sameType", "lhs": "Self", "rhs": "Updater"}]
    }
  ]
}`

func TestDecode_Envelope(t *testing.T) {
	t.Parallel()

	g, err := Decode([]byte(testGraph))
	require.NoError(t, err)

	assert.Equal(t, "swift-symbolgraph-extract", g.Metadata.Generator)
	assert.Equal(t, SemanticVersion{Minor: 6}, g.Metadata.FormatVersion)
	assert.Equal(t, "Sparkle", g.Module.Name)
	assert.Equal(t, "macosx", g.Module.Platform.OperatingSystemName())
	assert.Equal(t, "swift", g.InterfaceLanguage())
}

func TestDecode_Symbols(t *testing.T) {
	t.Parallel()

	g, err := Decode([]byte(testGraph))
	require.NoError(t, err)
	require.Len(t, g.Symbols, 2)

	cls := g.Symbols["s:7Sparkle7UpdaterC"]
	require.NotNil(t, cls)
	// Kind identifiers lose their language prefix during decoding.
	assert.Equal(t, KindClass, cls.Kind.Identifier)
	assert.Equal(t, "Class", cls.Kind.DisplayName)
	assert.Equal(t, AccessPublic, cls.AccessLevel)
	assert.Equal(t, "Checks for updates.", cls.DocComment.Text())

	av := cls.Mixins.Availability()
	require.Len(t, av, 1)
	assert.Equal(t, "macOS", av[0].Domain)
	require.NotNil(t, av[0].Introduced)
	assert.Equal(t, 12, av[0].Introduced.Major)

	frags := cls.Mixins.DeclarationFragments()
	require.Len(t, frags, 2)
	assert.Equal(t, "class", frags[0].Spelling)

	// Unrecognized mixin keys round through raw bytes untouched.
	unknown, ok := cls.Mixins.Get(MixinKindUnknown)
	require.True(t, ok)
	raw := unknown.(UnknownMixin)
	assert.Equal(t, "location", raw.Key)
	assert.Contains(t, string(raw.Raw), "Updater.swift")

	method := g.Symbols["s:7Sparkle7UpdaterC5checkyyF"]
	require.NotNil(t, method)
	assert.Equal(t, "method", method.Kind.Identifier)

	generics := method.Mixins.Generics()
	require.NotNil(t, generics)
	require.Len(t, generics.Constraints, 1)
	assert.Equal(t, ConstraintConformance, generics.Constraints[0].Kind)
	assert.Equal(t, "T", generics.Constraints[0].LeftTypeName)

	ext := method.Mixins.SwiftExtension()
	require.NotNil(t, ext)
	assert.Equal(t, "Sparkle", ext.ExtendedModule)
}

func TestDecode_Relationships(t *testing.T) {
	t.Parallel()

	g, err := Decode([]byte(testGraph))
	require.NoError(t, err)
	require.Len(t, g.Relationships, 2)

	assert.Equal(t, RelMemberOf, g.Relationships[0].Kind)

	conforms := g.Relationships[1]
	assert.Equal(t, RelConformsTo, conforms.Kind)
	assert.Equal(t, "Swift.Equatable", conforms.TargetFallback)
	require.NotNil(t, conforms.SourceOrigin)
	assert.Equal(t, "s:base", conforms.SourceOrigin.Identifier)
	require.Len(t, conforms.Constraints, 1)
	assert.Equal(t, ConstraintSameType, conforms.Constraints[0].Kind)
}

func TestDecode_MissingPreciseIdentifier(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"symbols": [{"kind": {"identifier": "swift.class"}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precise identifier")
}

func TestDecode_MalformedDocument(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"symbols": [{`))
	assert.Error(t, err)
}

func TestDecode_EmptyGraph(t *testing.T) {
	t.Parallel()

	g, err := Decode([]byte(`{"module": {"name": "Empty"}, "symbols": [], "relationships": []}`))
	require.NoError(t, err)
	assert.Empty(t, g.Symbols)
	assert.Empty(t, g.Relationships)
	assert.Equal(t, "", g.InterfaceLanguage())
}

// =============================================================================
// Duplicate precise identifiers
// =============================================================================

// dupGraph builds a graph whose symbols array holds two entries sharing one
// precise identifier.
func dupGraph(first, second string) string {
	return fmt.Sprintf(`{"symbols": [%s, %s]}`, first, second)
}

const dupID = `"identifier": {"precise": "s:dup", "interfaceLanguage": "swift"}`

func TestDecode_DuplicatePrefersDocumented(t *testing.T) {
	t.Parallel()

	bare := `{` + dupID + `, "names": {"title": "Bare"}}`
	documented := `{` + dupID + `, "names": {"title": "Documented"}, "docComment": {"lines": [{"text": "docs"}]}}`

	// The documented copy wins regardless of array position.
	for _, doc := range []string{dupGraph(bare, documented), dupGraph(documented, bare)} {
		g, err := Decode([]byte(doc))
		require.NoError(t, err)
		require.Len(t, g.Symbols, 1)
		assert.Equal(t, "Documented", g.Symbols["s:dup"].Names.Title)
	}
}

func TestDecode_DuplicatePrefersMoreMixins(t *testing.T) {
	t.Parallel()

	plain := `{` + dupID + `, "names": {"title": "Plain"}}`
	rich := `{` + dupID + `, "names": {"title": "Rich"}, "availability": [{"domain": "macOS"}], "declarationFragments": []}`

	for _, doc := range []string{dupGraph(plain, rich), dupGraph(rich, plain)} {
		g, err := Decode([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, "Rich", g.Symbols["s:dup"].Names.Title)
	}
}

func TestDecode_DuplicateTieBreaksOnIndex(t *testing.T) {
	t.Parallel()

	a := `{` + dupID + `, "names": {"title": "First"}}`
	b := `{` + dupID + `, "names": {"title": "Second"}}`

	g, err := Decode([]byte(dupGraph(a, b)))
	require.NoError(t, err)
	assert.Equal(t, "First", g.Symbols["s:dup"].Names.Title)
}

// =============================================================================
// Relationship deduplication
// =============================================================================

func TestDeduplicateRelationships(t *testing.T) {
	t.Parallel()

	edge := Relationship{Source: "a", Target: "b", Kind: RelMemberOf}
	withFallback := Relationship{Source: "a", Target: "b", Kind: RelMemberOf, TargetFallback: "M.B"}
	constrained := Relationship{Source: "a", Target: "b", Kind: RelMemberOf, Constraints: []GenericConstraint{
		{Kind: ConstraintConformance, LeftTypeName: "T", RightTypeName: "Hashable"},
	}}

	got := DeduplicateRelationships([]Relationship{edge, withFallback, edge, constrained, constrained, edge})
	require.Len(t, got, 3)
	assert.Equal(t, edge, got[0])
	assert.Equal(t, withFallback, got[1])
	assert.Equal(t, constrained, got[2])
}

func TestRelationshipKey_ConstraintOrderMatters(t *testing.T) {
	t.Parallel()

	c1 := GenericConstraint{Kind: ConstraintConformance, LeftTypeName: "T", RightTypeName: "A"}
	c2 := GenericConstraint{Kind: ConstraintConformance, LeftTypeName: "T", RightTypeName: "B"}

	r1 := Relationship{Source: "s", Target: "t", Kind: RelConformsTo, Constraints: []GenericConstraint{c1, c2}}
	r2 := Relationship{Source: "s", Target: "t", Kind: RelConformsTo, Constraints: []GenericConstraint{c2, c1}}
	assert.NotEqual(t, r1.Key(), r2.Key())
}

func TestNormalizeKindIdentifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "struct", NormalizeKindIdentifier("swift.struct", "swift"))
	assert.Equal(t, "func.op", NormalizeKindIdentifier("swift.func.op", "swift"))
	assert.Equal(t, "objc.class", NormalizeKindIdentifier("objc.class", "swift"))
	assert.Equal(t, "struct", NormalizeKindIdentifier("struct", "swift"))
	assert.Equal(t, "swift.struct", NormalizeKindIdentifier("swift.struct", ""))
}

func TestSymbolClone_Isolation(t *testing.T) {
	t.Parallel()

	orig := &Symbol{
		Identifier:     Identifier{Precise: "s:x", InterfaceLanguage: "swift"},
		PathComponents: []string{"A", "B"},
		DocComment:     &DocComment{Lines: []DocLine{{Text: "one"}}},
	}
	orig.Mixins.Set(Availability{{Domain: "macOS"}})

	clone := orig.Clone()
	clone.PathComponents[0] = "Z"
	clone.DocComment.Lines[0].Text = "changed"
	clone.Mixins.Set(Availability{{Domain: "iOS"}})

	assert.Equal(t, "A", orig.PathComponents[0])
	assert.Equal(t, "one", orig.DocComment.Lines[0].Text)
	assert.Equal(t, "macOS", orig.Mixins.Availability()[0].Domain)
}

func TestMaxAccessLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, AccessPublic, MaxAccessLevel(AccessInternal, AccessPublic))
	assert.Equal(t, AccessOpen, MaxAccessLevel(AccessOpen, AccessPublic))
	assert.Equal(t, AccessPrivate, MaxAccessLevel(AccessPrivate, AccessLevel("mystery")))
	assert.Equal(t, AccessFilePrivate, MaxAccessLevel(AccessPrivate, AccessFilePrivate))
}

func TestAvailabilityItem_ForDomain_DeepCopy(t *testing.T) {
	t.Parallel()

	introduced := SemanticVersion{Major: 13}
	deprecated := SemanticVersion{Major: 15}
	item := AvailabilityItem{
		Domain:     "iOS",
		Introduced: &introduced,
		Deprecated: &deprecated,
		Message:    "use the new API",
	}

	copied := item.ForDomain("macCatalyst")
	assert.Equal(t, "macCatalyst", copied.Domain)
	assert.Equal(t, "use the new API", copied.Message)
	require.NotNil(t, copied.Introduced)

	copied.Introduced.Major = 99
	assert.Equal(t, 13, item.Introduced.Major)
}

func TestMixinSet_ReplaceAndOrder(t *testing.T) {
	t.Parallel()

	var s MixinSet
	s.Set(Availability{{Domain: "iOS"}})
	s.Set(DeclarationFragments{{Spelling: "struct"}})
	s.Set(UnknownMixin{Key: "location", Raw: []byte(`1`)})
	s.Set(UnknownMixin{Key: "spi", Raw: []byte(`true`)})

	// Same-kind set replaces in place; unknown mixins key on their field name.
	s.Set(Availability{{Domain: "macOS"}})
	s.Set(UnknownMixin{Key: "location", Raw: []byte(`2`)})

	require.Equal(t, 4, s.Len())
	assert.Equal(t, "macOS", s.Availability()[0].Domain)

	var unknownKeys []string
	for _, m := range s.All() {
		if u, ok := m.(UnknownMixin); ok {
			unknownKeys = append(unknownKeys, u.Key+"="+string(u.Raw))
		}
	}
	assert.Equal(t, "location=2,spi=true", strings.Join(unknownKeys, ","))
}
