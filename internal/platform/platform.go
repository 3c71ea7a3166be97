// Package platform names the platforms a symbol graph can target and the
// fallback relationships between them. Everything here is plain immutable
// data: a Config is built once and passed by reference to whoever needs it,
// never consulted through package-level state.
package platform

import (
	"sort"
	"strings"

	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
)

// Name is a canonical platform display name, used as the availability
// domain on synthesized availability items.
type Name string

// Canonical platform names.
const (
	IOS         Name = "iOS"
	MacOS       Name = "macOS"
	MacCatalyst Name = "macCatalyst"
	IPadOS      Name = "iPadOS"
	TvOS        Name = "tvOS"
	WatchOS     Name = "watchOS"
	VisionOS    Name = "visionOS"
	Linux       Name = "Linux"
)

// NameForOS maps an operating-system name and environment from a symbol
// graph's platform triple to a canonical Name. The "macabi" environment on
// iOS is Mac Catalyst. Unrecognized names pass through unchanged so graphs
// for platforms this package has never heard of still unify correctly.
func NameForOS(osName, environment string) Name {
	switch strings.ToLower(osName) {
	case "ios", "iphoneos":
		if environment == "macabi" {
			return MacCatalyst
		}
		return IOS
	case "macos", "macosx":
		return MacOS
	case "ipados":
		return IPadOS
	case "tvos", "appletvos":
		return TvOS
	case "watchos":
		return WatchOS
	case "visionos", "xros":
		return VisionOS
	case "linux":
		return Linux
	default:
		return Name(osName)
	}
}

// NameForPlatform derives the canonical Name for a graph's target platform.
// Platform-agnostic graphs (no operating system) yield "".
func NameForPlatform(p symbolgraph.Platform) Name {
	osName := p.OperatingSystemName()
	if osName == "" {
		return ""
	}
	return NameForOS(osName, p.Environment)
}

// DefaultAvailability is one entry of a bundle's default-availability table:
// a platform the module supports, and optionally the version the module was
// introduced in on that platform.
type DefaultAvailability struct {
	Platform   Name
	Introduced *symbolgraph.SemanticVersion
}

// Config is the immutable platform configuration consulted during
// availability synthesis. Fallbacks maps a platform to the platform it
// inherits availability from when no symbol graph was compiled for it
// directly (Mac Catalyst and iPadOS both run iOS binaries).
type Config struct {
	fallbacks map[Name]Name
}

// DefaultConfig returns the standard fallback table.
func DefaultConfig() *Config {
	return &Config{
		fallbacks: map[Name]Name{
			MacCatalyst: IOS,
			IPadOS:      IOS,
		},
	}
}

// FallbackFor returns the platform that name inherits availability from,
// if any.
func (c *Config) FallbackFor(name Name) (Name, bool) {
	fallback, ok := c.fallbacks[name]
	return fallback, ok
}

// FallbackPair is one (inheriting, inherited) entry of the fallback table.
type FallbackPair struct {
	Inheriting Name
	Inherited  Name
}

// FallbackPlatforms returns every fallback pair sorted by inheriting
// platform name, so passes that iterate the table are deterministic.
func (c *Config) FallbackPlatforms() []FallbackPair {
	pairs := make([]FallbackPair, 0, len(c.fallbacks))
	for inheriting, inherited := range c.fallbacks {
		pairs = append(pairs, FallbackPair{Inheriting: inheriting, Inherited: inherited})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Inheriting < pairs[j].Inheriting })
	return pairs
}
