package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
)

func TestNameForOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		osName      string
		environment string
		want        Name
	}{
		{"ios", "", IOS},
		{"iphoneos", "", IOS},
		{"ios", "macabi", MacCatalyst},
		{"iphoneos", "macabi", MacCatalyst},
		{"macos", "", MacOS},
		{"macosx", "", MacOS},
		{"iPadOS", "", IPadOS},
		{"appletvos", "", TvOS},
		{"watchos", "", WatchOS},
		{"xros", "", VisionOS},
		{"linux", "", Linux},
		{"freebsd", "", Name("freebsd")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NameForOS(tt.osName, tt.environment),
			"NameForOS(%q, %q)", tt.osName, tt.environment)
	}
}

func TestNameForPlatform(t *testing.T) {
	t.Parallel()

	agnostic := symbolgraph.Platform{Architecture: "arm64"}
	assert.Equal(t, Name(""), NameForPlatform(agnostic))

	catalyst := symbolgraph.Platform{
		OperatingSystem: &symbolgraph.OperatingSystem{Name: "ios"},
		Environment:     "macabi",
	}
	assert.Equal(t, MacCatalyst, NameForPlatform(catalyst))
}

func TestConfig_Fallbacks(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	inherited, ok := cfg.FallbackFor(MacCatalyst)
	require.True(t, ok)
	assert.Equal(t, IOS, inherited)

	inherited, ok = cfg.FallbackFor(IPadOS)
	require.True(t, ok)
	assert.Equal(t, IOS, inherited)

	_, ok = cfg.FallbackFor(MacOS)
	assert.False(t, ok)

	// Sorted by inheriting platform so iteration is deterministic.
	assert.Equal(t, []FallbackPair{
		{Inheriting: IPadOS, Inherited: IOS},
		{Inheriting: MacCatalyst, Inherited: IOS},
	}, cfg.FallbackPlatforms())
}
