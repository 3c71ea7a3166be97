package docc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftlang/swift-docc-sub006/internal/platform"
	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
	"github.com/swiftlang/swift-docc-sub006/internal/unifiedgraph"
)

func loadOne(t *testing.T, files map[string]string, opts ...LoaderOption) map[string]*unifiedgraph.UnifiedGraph {
	t.Helper()
	loader := NewGraphLoader(memoryProvider(files), opts...)
	graphs, err := loader.LoadAll(context.Background(), pathsOf(files))
	require.NoError(t, err)
	return graphs
}

func iosSelector() unifiedgraph.Selector {
	return unifiedgraph.Selector{InterfaceLanguage: "swift", Platform: platform.IOS}
}

func TestDefaultAvailabilityFill(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"MyKit.symbols.json": mainGraphJSON("MyKit", "ios",
			`[{"domain": "iOS", "introduced": {"major": 13}}]`),
	}

	introduced := symbolgraph.SemanticVersion{Major: 12}
	bundle := BundleInfo{
		DefaultAvailability: map[string][]platform.DefaultAvailability{
			"MyKit": {
				{Platform: platform.MacOS, Introduced: &introduced},
				{Platform: platform.IOS, Introduced: &symbolgraph.SemanticVersion{Major: 11}},
			},
		},
		InheritDefaultAvailabilityVersions: true,
	}

	graphs := loadOne(t, files, WithBundleInfo(bundle))
	sym := graphs["MyKit"].Symbols["s:thing"]
	av := sym.AvailabilityFor(iosSelector())

	// The declared macOS default materializes with its introduced version.
	macOS, ok := av.ForDomain("macOS")
	require.True(t, ok)
	require.NotNil(t, macOS.Introduced)
	assert.Equal(t, 12, macOS.Introduced.Major)

	// The explicit iOS annotation is never replaced by a default.
	iOS, ok := av.ForDomain("iOS")
	require.True(t, ok)
	assert.Equal(t, 13, iOS.Introduced.Major)
}

func TestDefaultAvailabilityFill_WithoutInheritedVersions(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"MyKit.symbols.json": mainGraphJSON("MyKit", "ios",
			`[{"domain": "iOS", "introduced": {"major": 13}}]`),
	}

	introduced := symbolgraph.SemanticVersion{Major: 12}
	bundle := BundleInfo{
		DefaultAvailability: map[string][]platform.DefaultAvailability{
			"MyKit": {{Platform: platform.MacOS, Introduced: &introduced}},
		},
	}

	graphs := loadOne(t, files, WithBundleInfo(bundle))
	av := graphs["MyKit"].Symbols["s:thing"].AvailabilityFor(iosSelector())

	// The default names the platform only; the version stays out.
	macOS, ok := av.ForDomain("macOS")
	require.True(t, ok)
	assert.Nil(t, macOS.Introduced)
}

func TestFallbackAvailabilityFill(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"MyKit.symbols.json": mainGraphJSON("MyKit", "ios",
			`[{"domain": "iOS", "introduced": {"major": 13}, "deprecated": {"major": 15}, "message": "moved"}]`),
	}

	graphs := loadOne(t, files)
	av := graphs["MyKit"].Symbols["s:thing"].AvailabilityFor(iosSelector())

	// No graph was compiled for Mac Catalyst or iPadOS, so both inherit the
	// whole iOS record.
	for _, domain := range []string{"macCatalyst", "iPadOS"} {
		item, ok := av.ForDomain(domain)
		require.True(t, ok, "missing fallback for %s", domain)
		require.NotNil(t, item.Introduced)
		assert.Equal(t, 13, item.Introduced.Major)
		require.NotNil(t, item.Deprecated)
		assert.Equal(t, 15, item.Deprecated.Major)
		assert.Equal(t, "moved", item.Message)
	}
}

func TestFallbackAvailabilityFill_ExplicitAnnotationWins(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"MyKit.symbols.json": mainGraphJSON("MyKit", "ios",
			`[{"domain": "iOS", "introduced": {"major": 13}},
			  {"domain": "macCatalyst", "introduced": {"major": 14}}]`),
	}

	graphs := loadOne(t, files)
	av := graphs["MyKit"].Symbols["s:thing"].AvailabilityFor(iosSelector())

	item, ok := av.ForDomain("macCatalyst")
	require.True(t, ok)
	assert.Equal(t, 14, item.Introduced.Major)
}

func TestFallbackAvailabilityFill_SkipsCoveredPlatforms(t *testing.T) {
	t.Parallel()

	// A graph was compiled for Mac Catalyst directly, so its availability is
	// authoritative and the iOS record is not copied over.
	catalystGraph := `{
		"module": {"name": "MyKit", "platform": {"operatingSystem": {"name": "ios"}, "environment": "macabi"}},
		"symbols": [{
			"identifier": {"precise": "s:other", "interfaceLanguage": "swift"},
			"kind": {"identifier": "swift.struct", "displayName": "Structure"},
			"pathComponents": ["Other"],
			"names": {"title": "Other"},
			"accessLevel": "public"
		}],
		"relationships": []
	}`
	files := map[string]string{
		"ios/MyKit.symbols.json": mainGraphJSON("MyKit", "ios",
			`[{"domain": "iOS", "introduced": {"major": 13}}]`),
		"catalyst/MyKit.symbols.json": catalystGraph,
	}

	graphs := loadOne(t, files)
	av := graphs["MyKit"].Symbols["s:thing"].AvailabilityFor(iosSelector())
	assert.False(t, av.HasDomain("macCatalyst"))

	// iPadOS was never covered, so it still inherits.
	assert.True(t, av.HasDomain("iPadOS"))
}

func TestDefaultAvailabilityFor(t *testing.T) {
	t.Parallel()

	entry, err := DefaultAvailabilityFor(platform.MacOS, "12.1")
	require.NoError(t, err)
	assert.Equal(t, platform.MacOS, entry.Platform)
	require.NotNil(t, entry.Introduced)
	assert.Equal(t, symbolgraph.SemanticVersion{Major: 12, Minor: 1}, *entry.Introduced)

	entry, err = DefaultAvailabilityFor(platform.Linux, "")
	require.NoError(t, err)
	assert.Nil(t, entry.Introduced)

	_, err = DefaultAvailabilityFor(platform.MacOS, "not-a-version")
	assert.Error(t, err)
}
