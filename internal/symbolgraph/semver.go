package symbolgraph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// SemanticVersion is a dotted version as it appears in symbol graphs and
// bundle configuration: one to three numeric components plus optional
// prerelease and build metadata suffixes.
type SemanticVersion struct {
	Major         int    `json:"major"`
	Minor         int    `json:"minor"`
	Patch         int    `json:"patch"`
	Prerelease    string `json:"prerelease,omitempty"`
	BuildMetadata string `json:"buildMetadata,omitempty"`
}

// ParseVersion parses a dotted version string such as "13", "13.1", or
// "13.1.2-beta+exp". Missing components default to zero.
func ParseVersion(s string) (SemanticVersion, error) {
	var v SemanticVersion
	rest := s

	if i := strings.IndexByte(rest, '+'); i >= 0 {
		v.BuildMetadata = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		v.Prerelease = rest[i+1:]
		rest = rest[:i]
	}

	parts := strings.Split(rest, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return SemanticVersion{}, fmt.Errorf("invalid semantic version %q", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return SemanticVersion{}, fmt.Errorf("invalid semantic version %q", s)
		}
		nums[i] = n
	}
	v.Major = nums[0]
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}

	// Round-trip through x/mod/semver to reject anything it considers
	// malformed (bad prerelease or metadata characters).
	if !semver.IsValid(v.Canonical()) {
		return SemanticVersion{}, fmt.Errorf("invalid semantic version %q", s)
	}
	return v, nil
}

// String renders the version as "major.minor.patch" with prerelease and
// build metadata suffixes when present.
func (v SemanticVersion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.BuildMetadata != "" {
		b.WriteByte('+')
		b.WriteString(v.BuildMetadata)
	}
	return b.String()
}

// Canonical returns the "v"-prefixed form understood by golang.org/x/mod/semver.
func (v SemanticVersion) Canonical() string {
	return "v" + v.String()
}

// Compare orders two versions per semantic versioning precedence rules,
// returning -1, 0, or 1. Build metadata is ignored, as semver requires.
func (v SemanticVersion) Compare(o SemanticVersion) int {
	return semver.Compare(v.Canonical(), o.Canonical())
}

// UnmarshalJSON accepts both encodings found in the wild: the structured
// object form emitted by symbol graphs ({"major": 13, "minor": 1}) and the
// dotted string form used in bundle configuration ("13.1").
func (v *SemanticVersion) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseVersion(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}

	type alias SemanticVersion
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*v = SemanticVersion(a)
	return nil
}
